package repository

import (
	"context"
	"sync"

	"github.com/folioworks/folioworks/internal/content"
)

// MemoryStore is an in-memory Store used for unit tests and for running the
// service without a database. It shares the same subscription semantics as
// the Mongo-backed store.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]content.Document
	hub  *hub
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]content.Document), hub: newHub()}
}

func (m *MemoryStore) Get(ctx context.Context, collection, key string) (content.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.docs[hubKey(collection, key)]
	if !ok {
		return nil, ErrNotFound
	}
	return d.Clone(), nil
}

func (m *MemoryStore) Set(ctx context.Context, collection, key string, doc content.Document) error {
	m.mu.Lock()
	m.docs[hubKey(collection, key)] = doc.Clone()
	m.mu.Unlock()
	m.hub.publish(collection, key, doc)
	return nil
}

func (m *MemoryStore) Subscribe(ctx context.Context, collection, key string, fn ChangeFunc) func() {
	cur, err := m.Get(ctx, collection, key)
	if err != nil {
		cur = nil
	}
	fn(cur)
	return m.hub.add(collection, key, fn)
}
