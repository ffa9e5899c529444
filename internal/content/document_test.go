package content

import (
	"reflect"
	"testing"
)

func TestMerge_NilDocYieldsDefaults(t *testing.T) {
	sec, ok := Lookup("hero")
	if !ok {
		t.Fatalf("hero section not registered")
	}
	got := Merge(sec.Defaults, nil, sec.ImageFields)
	if got["titleLine1"] != "Creating meaningful connections" {
		t.Fatalf("unexpected default headline: %v", got["titleLine1"])
	}
	if !reflect.DeepEqual(got, sec.Defaults) {
		t.Fatalf("nil doc should merge to the defaults unchanged")
	}
}

func TestMerge_PartialDocKeepsMissingDefaults(t *testing.T) {
	sec, _ := Lookup("hero")
	doc := Document{"titleLine1": "Hello"}
	got := Merge(sec.Defaults, doc, sec.ImageFields)
	if got["titleLine1"] != "Hello" {
		t.Fatalf("stored field should override default, got %v", got["titleLine1"])
	}
	if got["subtitle"] != sec.Defaults["subtitle"] {
		t.Fatalf("absent field should fall back to default, got %v", got["subtitle"])
	}
	if got["ctaLabel"] != "See my work" {
		t.Fatalf("absent cta should fall back, got %v", got["ctaLabel"])
	}
}

func TestMerge_NilFieldValuesSkipped(t *testing.T) {
	sec, _ := Lookup("hero")
	doc := Document{"subtitle": nil}
	got := Merge(sec.Defaults, doc, sec.ImageFields)
	if got["subtitle"] != sec.Defaults["subtitle"] {
		t.Fatalf("nil stored value should not clobber the default")
	}
}

func TestMerge_ImageFieldGuard(t *testing.T) {
	sec, _ := Lookup("hero")

	// junk values keep the default portrait
	for _, bad := range []any{"", "portrait.jpg", "ftp://x/y.png", 42, true} {
		got := Merge(sec.Defaults, Document{"portraitUrl": bad}, sec.ImageFields)
		if got["portraitUrl"] != sec.Defaults["portraitUrl"] {
			t.Fatalf("invalid image value %v should keep the default", bad)
		}
	}

	// usable URLs pass through
	for _, good := range []string{
		"http://cdn.example.com/p.jpg",
		"https://cdn.example.com/p.jpg",
		"data:image/png;base64,iVBORw0KGgo=",
	} {
		got := Merge(sec.Defaults, Document{"portraitUrl": good}, sec.ImageFields)
		if got["portraitUrl"] != good {
			t.Fatalf("valid image URL %q should override, got %v", good, got["portraitUrl"])
		}
	}

	// the guard only applies to registered image fields
	got := Merge(sec.Defaults, Document{"subtitle": "not a url"}, sec.ImageFields)
	if got["subtitle"] != "not a url" {
		t.Fatalf("non-image field should take any value")
	}
}

func TestClone_ListsDoNotAlias(t *testing.T) {
	sec, _ := Lookup("services")
	cp := sec.Defaults.Clone()
	items := Items(cp)
	items[0] = Document{"id": float64(99)}
	orig := Items(sec.Defaults)
	if m, ok := orig[0].(Document); !ok || m["id"] != float64(1) {
		t.Fatalf("mutating a clone's list leaked into the source")
	}
}

func TestIsImageURL(t *testing.T) {
	cases := map[any]bool{
		"https://x/y.png": true,
		"http://x/y.png":  true,
		"data:image/gif;base64,R0lGOD": true,
		"/relative/path.png":           false,
		"":                             false,
	}
	for in, want := range cases {
		if IsImageURL(in) != want {
			t.Fatalf("IsImageURL(%v) != %v", in, want)
		}
	}
	if IsImageURL(123) {
		t.Fatalf("non-string values are never image URLs")
	}
}

func TestSectionRegistryComplete(t *testing.T) {
	want := []string{"header", "hero", "about", "services", "projects", "skills",
		"experience", "testimonials", "tools", "marketing", "contentStrategy", "footer"}
	all := Sections()
	if len(all) != len(want) {
		t.Fatalf("expected %d sections, got %d", len(want), len(all))
	}
	for i, key := range want {
		if all[i].Key != key {
			t.Fatalf("section %d: got %q want %q", i, all[i].Key, key)
		}
		if _, ok := Lookup(key); !ok {
			t.Fatalf("Lookup(%q) failed", key)
		}
	}
	if _, ok := Lookup("nonsense"); ok {
		t.Fatalf("Lookup should reject unknown keys")
	}
}
