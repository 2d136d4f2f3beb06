package companies

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo keeps companies in process memory. Used for local
// development and tests; production runs PGRepo.
type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Company
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: map[string]Company{}}
}

func (r *MemoryRepo) Create(_ context.Context, c Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[c.ID] = c
	return nil
}

func (r *MemoryRepo) Update(_ context.Context, c Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[c.ID]
	if !ok || cur.UserID != c.UserID {
		return ErrNotFound
	}
	r.items[c.ID] = c
	return nil
}

func (r *MemoryRepo) GetByID(_ context.Context, userID, id string) (Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok || c.UserID != userID {
		return Company{}, ErrNotFound
	}
	return c, nil
}

func (r *MemoryRepo) ListByUser(_ context.Context, userID string) ([]Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Company, 0)
	for _, c := range r.items {
		if c.UserID == userID {
			out = append(out, c)
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
	c, ok := r.items[id]
	if !ok || c.UserID != userID {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}
