package analyses

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/matching"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	analysis := Analysis{
		ID:        "analysis-1",
		ProgramID: "monodukuri-2025",
		CompanyID: "company-1",
		UserID:    "user-1",
		Status:    StatusQueued,
		Plan:      matching.ProjectPlan{Title: "IoT導入計画"},
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(
			analysis.ID,
			analysis.ProgramID,
			analysis.CompanyID,
			analysis.UserID,
			analysis.Status,
			sqlmock.AnyArg(), // plan
			nil,              // result
			nil,              // error_code
			nil,              // error_message
			nil,              // error_retryable
			nil,              // started_at
			nil,              // completed_at
			analysis.CreatedAt,
			analysis.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), analysis); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateFailureWritesNullResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	analysis := Analysis{
		ID:        "analysis-1",
		ProgramID: "monodukuri-2025",
		CompanyID: "company-1",
		UserID:    "user-1",
		Status:    StatusFailed,
		Plan:      matching.ProjectPlan{Title: "IoT導入計画"},
		Failure: &FailureInfo{
			Code:      failCodeStorage,
			Message:   "backend unavailable",
			Retryable: true,
		},
		StartedAt: &now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("UPDATE analyses SET").
		WithArgs(
			analysis.ID,
			analysis.UserID,
			analysis.Status,
			sqlmock.AnyArg(), // plan
			nil,              // result stays NULL on failure
			failCodeStorage,
			"backend unavailable",
			true,
			analysis.StartedAt,
			nil, // completed_at
			analysis.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Update(context.Background(), analysis); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDRoundTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	completed := now.Add(2 * time.Second)
	planJSON := []byte(`{"title":"IoT導入計画","purpose":"生産性向上","background":"","implementation":"","expectedResults":null,"budget":3000000,"timeline":""}`)
	resultJSON := []byte(`{"matchScore":79,"eligibility":{"isEligible":true,"reasons":[],"missingRequirements":[]},"keywordAnalysis":{"matchedKeywords":["DX"],"suggestedKeywords":[],"keywordDensity":{"DX":1}},"recommendations":{"strengths":[],"weaknesses":[],"improvements":[]}}`)

	rows := sqlmock.NewRows([]string{
		"id", "program_id", "company_id", "user_id", "status", "plan", "result",
		"error_code", "error_message", "error_retryable", "started_at", "completed_at",
		"created_at", "updated_at",
	}).AddRow(
		"analysis-1", "monodukuri-2025", "company-1", "user-1", StatusCompleted,
		planJSON, resultJSON, nil, nil, nil, now, completed, now, completed,
	)
	mock.ExpectQuery("SELECT (.+) FROM analyses WHERE id = \\$1 AND user_id = \\$2").
		WithArgs("analysis-1", "user-1").
		WillReturnRows(rows)

	a, err := repo.GetByID(context.Background(), "user-1", "analysis-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if a.Plan.Title != "IoT導入計画" {
		t.Fatalf("plan title = %q", a.Plan.Title)
	}
	if a.Result == nil || a.Result.MatchScore != 79 {
		t.Fatalf("result = %+v", a.Result)
	}
	if a.Failure != nil {
		t.Fatalf("unexpected failure: %+v", a.Failure)
	}
	if a.CompletedAt == nil || !a.CompletedAt.Equal(completed) {
		t.Fatalf("completedAt = %v", a.CompletedAt)
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
	mock.ExpectQuery("SELECT (.+) FROM analyses").
		WithArgs("missing", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), "user-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
