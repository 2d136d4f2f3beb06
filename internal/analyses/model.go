// Package analyses runs match analyses: it resolves program rules and
// success cases, optionally drafts application prose through the LLM
// client, scores the plan with the matching core and persists the result.
package analyses

import (
	"time"

	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/llm"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/matching"
)

// Analysis statuses. An analysis is created queued, moves to processing
// when the worker picks it up and ends completed or failed.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// FailureInfo describes a terminal failure.
type FailureInfo struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

// Result is the stored outcome: the match scoring plus any drafted prose.
type Result struct {
	matching.AnalysisResult
	GeneratedContent *llm.DraftContent `json:"generatedContent,omitempty"`
}

// Analysis is one scoring job for a company against a program.
type Analysis struct {
	ID          string               `json:"id"`
	ProgramID   string               `json:"programId"`
	CompanyID   string               `json:"companyId"`
	UserID      string               `json:"userId"`
	Status      string               `json:"status"`
	Plan        matching.ProjectPlan `json:"plan"`
	Result      *Result              `json:"result,omitempty"`
	Failure     *FailureInfo         `json:"failure,omitempty"`
	StartedAt   *time.Time           `json:"startedAt,omitempty"`
	CompletedAt *time.Time           `json:"completedAt,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}
