package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, user_id, company_id, file_name, mime_type, size_bytes, storage_key, extracted_text_key, extracted_at, created_at`

func (r *PGRepo) Create(ctx context.Context, d Document) error {
	query := fmt.Sprintf(`INSERT INTO documents (%s) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`, documentColumns)
	_, err := r.DB.ExecContext(ctx, query,
		d.ID, d.UserID, nullString(d.CompanyID), d.FileName, d.MimeType,
		d.SizeBytes, d.StorageKey, d.ExtractedTextKey, d.ExtractedAt, d.CreatedAt,
	)
	return err
}

func (r *PGRepo) Update(ctx context.Context, d Document) error {
	const query = `
UPDATE documents SET extracted_text_key = $3, extracted_at = $4
WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, d.ID, d.UserID, d.ExtractedTextKey, d.ExtractedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM documents WHERE id = $1 AND user_id = $2 LIMIT 1`, documentColumns)
	d, err := scanDocument(r.DB.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	return d, err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM documents WHERE user_id = $1 ORDER BY created_at DESC, id`, documentColumns)
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM documents WHERE id = $1 AND user_id = $2`, id, userID)
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

func scanDocument(row rowScanner) (Document, error) {
	var d Document
	var companyID sql.NullString
	var extractedAt sql.NullTime
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&companyID,
		&d.FileName,
		&d.MimeType,
		&d.SizeBytes,
		&d.StorageKey,
		&d.ExtractedTextKey,
		&extractedAt,
		&d.CreatedAt,
	)
	if err != nil {
		return Document{}, err
	}
	if companyID.Valid {
		d.CompanyID = companyID.String
	}
	if extractedAt.Valid {
		d.ExtractedAt = &extractedAt.Time
	}
	return d, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
