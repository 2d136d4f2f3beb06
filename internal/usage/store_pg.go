package usage

import (
	"context"
	"database/sql"
	"errors"
)

// PGStore implements Store using Postgres.
type PGStore struct {
	DB *sql.DB
}

func (s *PGStore) Get(ctx context.Context, userID string) (Record, bool, error) {
	const query = `SELECT user_id, plan, usage_limit, used, resets_at FROM usage WHERE user_id = $1 LIMIT 1`
	var rec Record
	err := s.DB.QueryRowContext(ctx, query, userID).Scan(&rec.UserID, &rec.Plan, &rec.Limit, &rec.Used, &rec.ResetsAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

func (s *PGStore) Put(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO usage (user_id, plan, usage_limit, used, resets_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id) DO UPDATE SET
  plan = EXCLUDED.plan,
  usage_limit = EXCLUDED.usage_limit,
  used = EXCLUDED.used,
  resets_at = EXCLUDED.resets_at`
	_, err := s.DB.ExecContext(ctx, query, rec.UserID, rec.Plan, rec.Limit, rec.Used, rec.ResetsAt)
	return err
}
