package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const analysisColumns = `id, program_id, company_id, user_id, status, plan, result, error_code, error_message, error_retryable, started_at, completed_at, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, a Analysis) error {
	planJSON, resultJSON, err := marshalPayload(a)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`INSERT INTO analyses (%s) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`, analysisColumns)
	code, message, retryable := failureColumns(a)
	_, err = r.DB.ExecContext(ctx, query,
		a.ID, a.ProgramID, a.CompanyID, a.UserID, a.Status,
		planJSON, nullableJSON(resultJSON), code, message, retryable,
		a.StartedAt, a.CompletedAt, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

func (r *PGRepo) Update(ctx context.Context, a Analysis) error {
	planJSON, resultJSON, err := marshalPayload(a)
	if err != nil {
		return err
	}
	const query = `
UPDATE analyses SET
  status = $3, plan = $4, result = $5, error_code = $6, error_message = $7,
  error_retryable = $8, started_at = $9, completed_at = $10, updated_at = $11
WHERE id = $1 AND user_id = $2`
	code, message, retryable := failureColumns(a)
	res, err := r.DB.ExecContext(ctx, query,
		a.ID, a.UserID, a.Status, planJSON, nullableJSON(resultJSON),
		code, message, retryable, a.StartedAt, a.CompletedAt, a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Analysis, error) {
	query := fmt.Sprintf(`SELECT %s FROM analyses WHERE id = $1 AND user_id = $2 LIMIT 1`, analysisColumns)
	a, err := scanAnalysis(r.DB.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, ErrNotFound
	}
	return a, err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`SELECT %s FROM analyses WHERE user_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`, analysisColumns)
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var a Analysis
	var planJSON []byte
	var resultJSON []byte
	var code, message sql.NullString
	var retryable sql.NullBool
	var startedAt, completedAt sql.NullTime
	err := row.Scan(
		&a.ID,
		&a.ProgramID,
		&a.CompanyID,
		&a.UserID,
		&a.Status,
		&planJSON,
		&resultJSON,
		&code,
		&message,
		&retryable,
		&startedAt,
		&completedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return Analysis{}, err
	}
	if err := json.Unmarshal(planJSON, &a.Plan); err != nil {
		return Analysis{}, fmt.Errorf("analysis %s plan: %w", a.ID, err)
	}
	if len(resultJSON) > 0 {
		a.Result = &Result{}
		if err := json.Unmarshal(resultJSON, a.Result); err != nil {
			return Analysis{}, fmt.Errorf("analysis %s result: %w", a.ID, err)
		}
	}
	if code.Valid {
		a.Failure = &FailureInfo{
			Code:      code.String,
			Message:   message.String,
			Retryable: retryable.Valid && retryable.Bool,
		}
	}
	if startedAt.Valid {
		a.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		a.CompletedAt = &completedAt.Time
	}
	return a, nil
}

func marshalPayload(a Analysis) (planJSON, resultJSON []byte, err error) {
	if planJSON, err = json.Marshal(a.Plan); err != nil {
		return nil, nil, fmt.Errorf("analysis %s plan: %w", a.ID, err)
	}
	if a.Result != nil {
		if resultJSON, err = json.Marshal(a.Result); err != nil {
			return nil, nil, fmt.Errorf("analysis %s result: %w", a.ID, err)
		}
	}
	return planJSON, resultJSON, nil
}

// nullableJSON writes NULL instead of a typed nil slice when there is
// no payload.
func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}

func failureColumns(a Analysis) (code, message sql.NullString, retryable sql.NullBool) {
	if a.Failure == nil {
		return
	}
	code = sql.NullString{String: a.Failure.Code, Valid: true}
	message = sql.NullString{String: a.Failure.Message, Valid: true}
	retryable = sql.NullBool{Bool: a.Failure.Retryable, Valid: true}
	return
}
