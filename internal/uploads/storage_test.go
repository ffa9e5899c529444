package uploads

import "testing"

func TestSanitizeExt(t *testing.T) {
	cases := map[string]string{
		"photo.JPG":    ".jpg",
		"photo.jpeg":   ".jpeg",
		"diagram.svg":  ".svg",
		"clip.mp4":     ".mp4",
		"archive.zip":  "",
		"noextension":  "",
		"evil.sh":      "",
		"double.tar.gz": "",
	}
	for in, want := range cases {
		if got := sanitizeExt(in); got != want {
			t.Fatalf("sanitizeExt(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestContentTypeFor(t *testing.T) {
	if got := contentTypeFor("a.PNG"); got != "image/png" {
		t.Fatalf("unexpected content type: %s", got)
	}
	if got := contentTypeFor("a.unknown"); got != "application/octet-stream" {
		t.Fatalf("unknown extensions default to octet-stream, got %s", got)
	}
}

func TestNewObjectID(t *testing.T) {
	a, b := newObjectID(), newObjectID()
	if len(a) != 24 || a == b {
		t.Fatalf("expected distinct 24-char hex ids, got %q %q", a, b)
	}
}
