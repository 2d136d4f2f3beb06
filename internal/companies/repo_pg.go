package companies

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

const companyColumns = `id, user_id, name, industry, business_description, employee_count, annual_revenue, founded_year, strengths, challenges, objectives, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, c Company) error {
	strengths, challenges, objectives, err := marshalLists(c)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`INSERT INTO companies (%s) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`, companyColumns)
	_, err = r.DB.ExecContext(ctx, query,
		c.ID, c.UserID, c.Name, c.Industry, c.BusinessDescription,
		c.EmployeeCount, c.AnnualRevenue, c.FoundedYear,
		strengths, challenges, objectives, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *PGRepo) Update(ctx context.Context, c Company) error {
	strengths, challenges, objectives, err := marshalLists(c)
	if err != nil {
		return err
	}
	const query = `
UPDATE companies SET
  name = $3, industry = $4, business_description = $5, employee_count = $6,
  annual_revenue = $7, founded_year = $8, strengths = $9, challenges = $10,
  objectives = $11, updated_at = $12
WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query,
		c.ID, c.UserID, c.Name, c.Industry, c.BusinessDescription,
		c.EmployeeCount, c.AnnualRevenue, c.FoundedYear,
		strengths, challenges, objectives, c.UpdatedAt,
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

func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE id = $1 AND user_id = $2 LIMIT 1`, companyColumns)
	c, err := scanCompany(r.DB.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Company{}, ErrNotFound
	}
	return c, err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE user_id = $1 ORDER BY created_at DESC, id`, companyColumns)
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM companies WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(row rowScanner) (Company, error) {
	var c Company
	var strengthsJSON, challengesJSON, objectivesJSON []byte
	var revenue sql.NullInt64
	var founded sql.NullInt32
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Industry,
		&c.BusinessDescription,
		&c.EmployeeCount,
		&revenue,
		&founded,
		&strengthsJSON,
		&challengesJSON,
		&objectivesJSON,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return Company{}, err
	}
	if revenue.Valid {
		v := revenue.Int64
		c.AnnualRevenue = &v
	}
	if founded.Valid {
		v := int(founded.Int32)
		c.FoundedYear = &v
	}
	if err := json.Unmarshal(strengthsJSON, &c.Strengths); err != nil {
		return Company{}, fmt.Errorf("company %s strengths: %w", c.ID, err)
	}
	if err := json.Unmarshal(challengesJSON, &c.Challenges); err != nil {
		return Company{}, fmt.Errorf("company %s challenges: %w", c.ID, err)
	}
	if err := json.Unmarshal(objectivesJSON, &c.Objectives); err != nil {
		return Company{}, fmt.Errorf("company %s objectives: %w", c.ID, err)
	}
	return c, nil
}

func marshalLists(c Company) (strengths, challenges, objectives []byte, err error) {
	if strengths, err = json.Marshal(emptyIfNil(c.Strengths)); err != nil {
		return
	}
	if challenges, err = json.Marshal(emptyIfNil(c.Challenges)); err != nil {
		return
	}
	objectives, err = json.Marshal(emptyIfNil(c.Objectives))
	return
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
