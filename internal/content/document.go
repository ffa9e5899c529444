package content

import "strings"

// Document is a section content record as stored in the document store.
// Shapes are fixed per section key by convention only; the store enforces
// nothing, so readers must tolerate any subset of fields being absent.
type Document map[string]any

// Clone returns a shallow copy of the document. List values are copied one
// level deep so draft edits don't alias the source slice.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		if list, ok := v.([]any); ok {
			cp := make([]any, len(list))
			copy(cp, list)
			out[k] = cp
			continue
		}
		out[k] = v
	}
	return out
}

// Merge produces the render model for a section: defaults overridden
// field-by-field by whatever fields are present in doc. Fields listed in
// imageFields only override when the stored value looks like a usable URL;
// otherwise the default survives. A nil doc yields the defaults unchanged.
func Merge(defaults Document, doc Document, imageFields []string) Document {
	out := defaults.Clone()
	if doc == nil {
		return out
	}
	for k, v := range doc {
		if v == nil {
			continue
		}
		if isImageField(k, imageFields) && !IsImageURL(v) {
			continue
		}
		out[k] = v
	}
	return out
}

func isImageField(name string, imageFields []string) bool {
	for _, f := range imageFields {
		if f == name {
			return true
		}
	}
	return false
}

// IsImageURL reports whether v is a string that can be rendered as an image
// source: an absolute http(s) URL or an embedded data URL.
func IsImageURL(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "data:")
}
