package programs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "name", "summary", "target_sizes", "target_industries",
		"requirements", "criteria_keywords", "min_amount", "max_amount",
		"deadline", "created_at",
	}).AddRow(
		"monodukuri-2025", "ものづくり補助金", "革新的な開発を支援",
		[]byte(`["中小企業"]`), []byte(`["製造業"]`),
		[]byte(`[{"text":"3〜5年の事業計画を策定すること","mandatory":true}]`),
		[]byte(`["革新性","DX"]`), int64(1_000_000), int64(12_500_000),
		nil, now,
	)
	mock.ExpectQuery("SELECT (.+) FROM programs WHERE id = \\$1").
		WithArgs("monodukuri-2025").
		WillReturnRows(rows)

	p, err := repo.GetByID(context.Background(), "monodukuri-2025")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p.Name != "ものづくり補助金" {
		t.Fatalf("name = %q", p.Name)
	}
	if len(p.Requirements) != 1 || !p.Requirements[0].Mandatory {
		t.Fatalf("requirements = %+v", p.Requirements)
	}
	if len(p.CriteriaKeywords) != 2 {
		t.Fatalf("criteriaKeywords = %v", p.CriteriaKeywords)
	}
	if p.Deadline != nil {
		t.Fatalf("deadline = %v, want nil", p.Deadline)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT (.+) FROM programs").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListSuccessCases(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "program_id", "title", "key_phrases", "success_factors", "created_at",
	}).AddRow(
		"case-1", "monodukuri-2025", "IoT活用の生産性向上",
		[]byte(`["DX","IoT"]`), []byte(`["明確な数値目標"]`), now,
	)
	mock.ExpectQuery("SELECT (.+) FROM success_cases").
		WithArgs("monodukuri-2025").
		WillReturnRows(rows)

	cases, err := repo.ListSuccessCases(context.Background(), "monodukuri-2025")
	if err != nil {
		t.Fatalf("ListSuccessCases: %v", err)
	}
	if len(cases) != 1 || len(cases[0].KeyPhrases) != 2 {
		t.Fatalf("cases = %+v", cases)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
