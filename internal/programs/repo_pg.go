package programs

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

const programColumns = `id, name, summary, target_sizes, target_industries, requirements, criteria_keywords, min_amount, max_amount, deadline, created_at`

// List returns programs ordered by name, with limit/offset.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Program, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`SELECT %s FROM programs ORDER BY name LIMIT $1 OFFSET $2`, programColumns)
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Program{}
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID returns a program by its ID.
func (r *PGRepo) GetByID(ctx context.Context, programID string) (Program, error) {
	query := fmt.Sprintf(`SELECT %s FROM programs WHERE id = $1 LIMIT 1`, programColumns)
	p, err := scanProgram(r.DB.QueryRowContext(ctx, query, programID))
	if errors.Is(err, sql.ErrNoRows) {
		return Program{}, ErrNotFound
	}
	return p, err
}

// ListSuccessCases returns success cases recorded for a program.
func (r *PGRepo) ListSuccessCases(ctx context.Context, programID string) ([]SuccessCase, error) {
	const query = `
SELECT id, program_id, title, key_phrases, success_factors, created_at
FROM success_cases
WHERE program_id = $1
ORDER BY created_at`
	rows, err := r.DB.QueryContext(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SuccessCase{}
	for rows.Next() {
		var c SuccessCase
		var phrasesJSON, factorsJSON []byte
		if err := rows.Scan(&c.ID, &c.ProgramID, &c.Title, &phrasesJSON, &factorsJSON, &c.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(phrasesJSON, &c.KeyPhrases); err != nil {
			return nil, fmt.Errorf("success case %s key_phrases: %w", c.ID, err)
		}
		if err := json.Unmarshal(factorsJSON, &c.SuccessFactors); err != nil {
			return nil, fmt.Errorf("success case %s success_factors: %w", c.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgram(row rowScanner) (Program, error) {
	var p Program
	var sizesJSON, industriesJSON, requirementsJSON, keywordsJSON []byte
	var deadline sql.NullTime
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Summary,
		&sizesJSON,
		&industriesJSON,
		&requirementsJSON,
		&keywordsJSON,
		&p.MinAmount,
		&p.MaxAmount,
		&deadline,
		&p.CreatedAt,
	)
	if err != nil {
		return Program{}, err
	}
	if err := json.Unmarshal(sizesJSON, &p.TargetSizes); err != nil {
		return Program{}, fmt.Errorf("program %s target_sizes: %w", p.ID, err)
	}
	if err := json.Unmarshal(industriesJSON, &p.TargetIndustries); err != nil {
		return Program{}, fmt.Errorf("program %s target_industries: %w", p.ID, err)
	}
	if err := json.Unmarshal(requirementsJSON, &p.Requirements); err != nil {
		return Program{}, fmt.Errorf("program %s requirements: %w", p.ID, err)
	}
	if err := json.Unmarshal(keywordsJSON, &p.CriteriaKeywords); err != nil {
		return Program{}, fmt.Errorf("program %s criteria_keywords: %w", p.ID, err)
	}
	if deadline.Valid {
		p.Deadline = &deadline.Time
	}
	return p, nil
}
