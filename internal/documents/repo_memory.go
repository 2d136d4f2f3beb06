package documents

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Document
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: map[string]Document{}}
}

func (r *MemoryRepo) Create(_ context.Context, d Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[d.ID] = d
	return nil
}

func (r *MemoryRepo) Update(_ context.Context, d Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[d.ID]
	if !ok || cur.UserID != d.UserID {
		return ErrNotFound
	}
	r.items[d.ID] = d
	return nil
}

func (r *MemoryRepo) GetByID(_ context.Context, userID, id string) (Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.items[id]
	if !ok || d.UserID != userID {
		return Document{}, ErrNotFound
	}
	return d, nil
}

func (r *MemoryRepo) ListByUser(_ context.Context, userID string) ([]Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Document, 0)
	for _, d := range r.items {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[id]
	if !ok || d.UserID != userID {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}
