package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/folioworks/folioworks/internal/content"
)

var (
	ErrNotFound = errors.New("document not found")
)

// ChangeFunc receives the current document for a watched key. A nil document
// means the key does not exist (yet, or anymore).
type ChangeFunc func(doc content.Document)

// Store is the document-store boundary: full-document reads and writes
// addressed by (collection, key), plus change subscriptions. Set is a full
// replace: there is no field-level merge on write, and concurrent writers
// race with last-writer-wins semantics.
type Store interface {
	Get(ctx context.Context, collection, key string) (content.Document, error)
	Set(ctx context.Context, collection, key string, doc content.Document) error
	// Subscribe delivers the current document immediately, then again after
	// every subsequent Set on the same key, until the returned unsubscribe
	// function is called. Delivery per key follows publish order; nothing is
	// guaranteed across keys.
	Subscribe(ctx context.Context, collection, key string, fn ChangeFunc) func()
}

// hub is the in-process fan-out for Subscribe. Callbacks are invoked
// synchronously from Set, so subscribers must not block.
type hub struct {
	mu   sync.Mutex
	subs map[string]map[int]ChangeFunc
	next int
}

func newHub() *hub {
	return &hub{subs: make(map[string]map[int]ChangeFunc)}
}

func hubKey(collection, key string) string { return collection + "/" + key }

func (h *hub) add(collection, key string, fn ChangeFunc) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	k := hubKey(collection, key)
	if h.subs[k] == nil {
		h.subs[k] = make(map[int]ChangeFunc)
	}
	id := h.next
	h.next++
	h.subs[k][id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[k], id)
	}
}

func (h *hub) publish(collection, key string, doc content.Document) {
	h.mu.Lock()
	fns := make([]ChangeFunc, 0, len(h.subs[hubKey(collection, key)]))
	for _, fn := range h.subs[hubKey(collection, key)] {
		fns = append(fns, fn)
	}
	h.mu.Unlock()
	for _, fn := range fns {
		fn(doc.Clone())
	}
}
