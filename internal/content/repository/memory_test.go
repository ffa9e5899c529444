package repository

import (
	"context"
	"reflect"
	"testing"

	"github.com/folioworks/folioworks/internal/content"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, content.Collection, "hero"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for absent key, got %v", err)
	}

	doc := content.Document{
		"titleLine1": "Hello",
		"items": []any{
			content.Document{"id": float64(1), "label": "About"},
		},
	}
	if err := s.Set(ctx, content.Collection, "hero", doc); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, err := s.Get(ctx, content.Collection, "hero")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Fatalf("round trip mismatch:\n got=%v\nwant=%v", got, doc)
	}

	// returned documents don't alias the stored one
	got["titleLine1"] = "mutated"
	again, _ := s.Get(ctx, content.Collection, "hero")
	if again["titleLine1"] != "Hello" {
		t.Fatalf("Get must return an isolated copy")
	}
}

func TestMemoryStore_SetIsFullReplace(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first := content.Document{"titleLine1": "A", "subtitle": "keepme?"}
	if err := s.Set(ctx, content.Collection, "hero", first); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	second := content.Document{"titleLine1": "B"}
	if err := s.Set(ctx, content.Collection, "hero", second); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	got, err := s.Get(ctx, content.Collection, "hero")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if _, ok := got["subtitle"]; ok {
		t.Fatalf("Set must replace the whole document, found leftover field: %v", got)
	}
	if got["titleLine1"] != "B" {
		t.Fatalf("unexpected value after replace: %v", got["titleLine1"])
	}
}

func TestMemoryStore_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_ = s.Set(ctx, content.Collection, "hero", content.Document{"v": "hero"})
	_ = s.Set(ctx, content.Collection, "about", content.Document{"v": "about"})
	_ = s.Set(ctx, "messages", "hero", content.Document{"v": "other-collection"})

	got, _ := s.Get(ctx, content.Collection, "hero")
	if got["v"] != "hero" {
		t.Fatalf("collection/key addressing leaked: %v", got)
	}
}

func TestMemoryStore_SubscribeImmediateAndOrdered(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var seen []any
	unsub := s.Subscribe(ctx, content.Collection, "hero", func(doc content.Document) {
		if doc == nil {
			seen = append(seen, nil)
			return
		}
		seen = append(seen, doc["titleLine1"])
	})
	defer unsub()

	// immediate delivery for an absent key is nil
	if len(seen) != 1 || seen[0] != nil {
		t.Fatalf("expected one immediate nil delivery, got %v", seen)
	}

	for _, v := range []string{"one", "two", "three"} {
		_ = s.Set(ctx, content.Collection, "hero", content.Document{"titleLine1": v})
	}
	want := []any{nil, "one", "two", "three"}
	if !reflect.DeepEqual(seen, want) {
		t.Fatalf("deliveries out of order:\n got=%v\nwant=%v", seen, want)
	}
}

func TestMemoryStore_SubscribeExistingKeyDeliversCurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Set(ctx, content.Collection, "about", content.Document{"heading": "About me"})

	var got content.Document
	unsub := s.Subscribe(ctx, content.Collection, "about", func(doc content.Document) { got = doc })
	defer unsub()

	if got == nil || got["heading"] != "About me" {
		t.Fatalf("expected immediate delivery of current document, got %v", got)
	}
}

func TestMemoryStore_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	calls := 0
	unsub := s.Subscribe(ctx, content.Collection, "hero", func(content.Document) { calls++ })
	_ = s.Set(ctx, content.Collection, "hero", content.Document{"v": 1})
	unsub()
	_ = s.Set(ctx, content.Collection, "hero", content.Document{"v": 2})

	if calls != 2 { // immediate + first set only
		t.Fatalf("expected 2 deliveries, got %d", calls)
	}
}

func TestMemoryStore_SubscribeOtherKeyNotNotified(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	calls := 0
	unsub := s.Subscribe(ctx, content.Collection, "hero", func(content.Document) { calls++ })
	defer unsub()

	_ = s.Set(ctx, content.Collection, "about", content.Document{"v": 1})
	if calls != 1 { // immediate delivery only
		t.Fatalf("writes to other keys must not notify, got %d calls", calls)
	}
}
