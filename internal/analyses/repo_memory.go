package analyses

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Analysis
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: map[string]Analysis{}}
}

func (r *MemoryRepo) Create(_ context.Context, a Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[a.ID] = a
	return nil
}

func (r *MemoryRepo) Update(_ context.Context, a Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[a.ID]
	if !ok || cur.UserID != a.UserID {
		return ErrNotFound
	}
	r.items[a.ID] = a
	return nil
}

func (r *MemoryRepo) GetByID(_ context.Context, userID, id string) (Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok || a.UserID != userID {
		return Analysis{}, ErrNotFound
	}
	return a, nil
}

func (r *MemoryRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]Analysis, 0)
	for _, a := range r.items {
		if a.UserID == userID {
			all = append(all, a)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if offset >= len(all) {
		return []Analysis{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}
