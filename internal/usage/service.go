package usage

import (
	"context"
	"sync"
	"time"
)

// Service enforces the per-user monthly analysis quota. The mutex
// serializes consume so concurrent requests cannot overspend a record
// held in the same process.
type Service struct {
	Store Store
	Now   func() time.Time

	mu sync.Mutex
}

func NewService(store Store) *Service {
	return &Service{Store: store, Now: time.Now}
}

// Current returns the user's quota window, creating or rolling it over
// as needed.
func (s *Service) Current(ctx context.Context, userID, plan string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked(ctx, userID, plan)
}

// Consume spends one analysis from the user's window. Returns
// ErrLimitReached when no allowance is left.
func (s *Service) Consume(ctx context.Context, userID, plan string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.currentLocked(ctx, userID, plan)
	if err != nil {
		return Record{}, err
	}
	if rec.Used >= rec.Limit {
		return rec, ErrLimitReached
	}
	rec.Used++
	if err := s.Store.Put(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Refund returns one analysis to the window, for jobs that failed
// before producing a result.
func (s *Service) Refund(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok, err := s.Store.Get(ctx, userID)
	if err != nil || !ok || rec.Used == 0 {
		return err
	}
	rec.Used--
	return s.Store.Put(ctx, rec)
}

func (s *Service) currentLocked(ctx context.Context, userID, plan string) (Record, error) {
	now := s.Now().UTC()
	rec, ok, err := s.Store.Get(ctx, userID)
	if err != nil {
		return Record{}, err
	}
	if !ok {
		rec = Record{
			UserID:   userID,
			Plan:     plan,
			Limit:    PlanLimit(plan),
			ResetsAt: nextReset(now),
		}
		if err := s.Store.Put(ctx, rec); err != nil {
			return Record{}, err
		}
		return rec, nil
	}
	changed := false
	if !now.Before(rec.ResetsAt) {
		rec.Used = 0
		rec.ResetsAt = nextReset(now)
		changed = true
	}
	if plan != "" && rec.Plan != plan {
		rec.Plan = plan
		rec.Limit = PlanLimit(plan)
		changed = true
	}
	if changed {
		if err := s.Store.Put(ctx, rec); err != nil {
			return Record{}, err
		}
	}
	return rec, nil
}

// nextReset is midnight UTC on the first of the following month.
func nextReset(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}
