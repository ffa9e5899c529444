package content

import "fmt"

// ItemsKey is the conventional wrapper key list-shaped sections store their
// entries under.
const ItemsKey = "items"

// Items extracts the entry list from a draft, or nil when absent.
func Items(doc Document) []any {
	list, _ := doc[ItemsKey].([]any)
	return list
}

// NextItemID computes the identifier for a new list entry. Numeric sections
// use max(existing ids)+1; padded sections use the zero-padded entry count
// plus one ("01", "02", ...). Identifiers are caller-assigned; the store
// never generates them.
func NextItemID(items []any, padded bool) any {
	if padded {
		return fmt.Sprintf("%02d", len(items)+1)
	}
	max := float64(0)
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			if d, ok2 := it.(Document); ok2 {
				m = d
			} else {
				continue
			}
		}
		if id, ok := m["id"].(float64); ok && id > max {
			max = id
		}
	}
	return max + 1
}

// AppendItem returns a copy of draft with a new placeholder entry added to
// its list. The placeholder takes its shape from the section's first default
// entry: label-like fields get a non-empty placeholder, body fields start
// empty, nested lists start empty. Durability is the caller's concern: the
// draft only reaches the store on save.
func AppendItem(sec Section, draft Document) Document {
	out := draft.Clone()
	items := Items(out)
	item := placeholderItem(sec)
	item["id"] = NextItemID(items, sec.PaddedIDs)
	out[ItemsKey] = append(items, item)
	return out
}

// RemoveItem returns a copy of draft with the entry at index deleted.
// Out-of-range indexes leave the draft unchanged.
func RemoveItem(draft Document, index int) Document {
	out := draft.Clone()
	items := Items(out)
	if index < 0 || index >= len(items) {
		return out
	}
	out[ItemsKey] = append(items[:index:index], items[index+1:]...)
	return out
}

var labelFields = map[string]bool{"title": true, "name": true, "label": true, "role": true, "author": true}

func placeholderItem(sec Section) Document {
	item := Document{}
	tmpl := Items(sec.Defaults)
	if len(tmpl) == 0 {
		return Document{"title": "New item"}
	}
	shape, ok := tmpl[0].(Document)
	if !ok {
		return Document{"title": "New item"}
	}
	for k, v := range shape {
		switch {
		case k == "id":
			// assigned by the caller
		case labelFields[k]:
			item[k] = "New item"
		default:
			switch v.(type) {
			case string:
				item[k] = ""
			case float64:
				item[k] = float64(0)
			case []any:
				item[k] = []any{}
			default:
				item[k] = v
			}
		}
	}
	return item
}
