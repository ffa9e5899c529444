package messages

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryRepository is an in-memory Repository used for unit tests and for
// running the service without a database.
type MemoryRepository struct {
	mu    sync.RWMutex
	seq   int
	store map[string]*Message
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*Message)}
}

func (r *MemoryRepository) Create(ctx context.Context, m *Message) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	m.ID = fmt.Sprintf("msg_%06d", r.seq)
	m.CreatedAt = time.Now().UTC()
	cp := *m
	r.store[m.ID] = &cp
	return m.ID, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Message, 0, len(r.store))
	for _, m := range r.store {
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.store[id]; !ok {
		return ErrNotFound
	}
	delete(r.store, id)
	return nil
}
