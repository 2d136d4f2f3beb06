package analyses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/companies"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/llm"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/matching"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/programs"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/shared/metrics"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/shared/telemetry"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/usage"
)

// CreateInput is the payload for starting an analysis.
type CreateInput struct {
	CompanyID string               `json:"companyId"`
	Plan      matching.ProjectPlan `json:"plan"`
}

// Service creates analyses and completes them asynchronously.
type Service struct {
	Repo      Repo
	Programs  programs.Repo
	Companies companies.Repo
	Usage     *usage.Service
	LLM       llm.Client
	Now       func() time.Time

	// DraftTimeout caps the LLM drafting step of one analysis.
	DraftTimeout time.Duration
}

func NewService(repo Repo, progs programs.Repo, comps companies.Repo, quota *usage.Service, client llm.Client) *Service {
	return &Service{
		Repo:         repo,
		Programs:     progs,
		Companies:    comps,
		Usage:        quota,
		LLM:          client,
		Now:          time.Now,
		DraftTimeout: 60 * time.Second,
	}
}

// Create validates the request, spends one quota unit and enqueues the
// analysis. Completion happens on a background goroutine; callers poll
// GET /analyses/:id.
func (s *Service) Create(ctx context.Context, userID, plan, programID, requestID string, in CreateInput) (Analysis, error) {
	if strings.TrimSpace(in.CompanyID) == "" {
		return Analysis{}, fmt.Errorf("%w: companyId is required", ErrInvalid)
	}
	if strings.TrimSpace(in.Plan.Title) == "" {
		return Analysis{}, fmt.Errorf("%w: plan.title is required", ErrInvalid)
	}

	program, err := s.Programs.GetByID(ctx, programID)
	if err != nil {
		return Analysis{}, err
	}
	company, err := s.Companies.GetByID(ctx, userID, in.CompanyID)
	if err != nil {
		return Analysis{}, err
	}

	if _, err := s.Usage.Consume(ctx, userID, plan); err != nil {
		return Analysis{}, err
	}

	now := s.Now().UTC()
	a := Analysis{
		ID:        uuid.NewString(),
		ProgramID: program.ID,
		CompanyID: company.ID,
		UserID:    userID,
		Status:    StatusQueued,
		Plan:      in.Plan,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		// The quota unit was spent but no job exists; give it back.
		if refundErr := s.Usage.Refund(ctx, userID); refundErr != nil {
			telemetry.Error("usage refund failed", map[string]any{
				"request_id": requestID,
				"user_id":    userID,
				"error":      refundErr.Error(),
			})
		}
		return Analysis{}, err
	}

	metrics.IncAnalysisStarted()
	telemetry.Info("analysis queued", map[string]any{
		"request_id":  requestID,
		"analysis_id": a.ID,
		"program_id":  a.ProgramID,
	})

	go s.completeAsync(backgroundWithRequestID(requestID), a, program, company)
	return a, nil
}

// Get returns one analysis.
func (s *Service) Get(ctx context.Context, userID, id string) (Analysis, error) {
	return s.Repo.GetByID(ctx, userID, id)
}

// List returns the user's analyses, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) completeAsync(ctx context.Context, a Analysis, program programs.Program, company companies.Company) {
	// Runs outside the request goroutine, so the HTTP recovery
	// middleware cannot catch panics here.
	defer func() {
		if r := recover(); r != nil {
			s.failAnalysis(ctx, a, failCodeInternal, fmt.Errorf("panic: %v", r))
		}
	}()

	started := s.Now().UTC()
	a.Status = StatusProcessing
	a.StartedAt = &started
	a.UpdatedAt = started
	if err := s.Repo.Update(ctx, a); err != nil {
		s.failAnalysis(ctx, a, failCodeStorage, err)
		return
	}

	cases, err := s.Programs.ListSuccessCases(ctx, program.ID)
	if err != nil {
		s.failAnalysis(ctx, a, failCodeProgram, err)
		return
	}

	profile := company.Profile()
	hasContent, keyPhrases, draft := s.draftContent(ctx, a, program, company)

	result := matching.Analyze(matching.AnalyzeInput{
		Company:           profile,
		Plan:              a.Plan,
		Rules:             program.Rules(),
		Cases:             programs.MatchingCases(cases),
		CriteriaKeywords:  program.CriteriaKeywords,
		Evaluator:         textEvaluator(profile, a.Plan),
		HasContent:        hasContent,
		ContentKeyPhrases: keyPhrases,
	})

	completed := s.Now().UTC()
	a.Status = StatusCompleted
	a.Result = &Result{AnalysisResult: result, GeneratedContent: draft}
	a.CompletedAt = &completed
	a.UpdatedAt = completed
	if err := s.Repo.Update(ctx, a); err != nil {
		s.failAnalysis(ctx, a, failCodeStorage, err)
		return
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(completed.Sub(started).Milliseconds()))
	telemetry.Info("analysis completed", map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"analysis_id": a.ID,
		"program_id":  a.ProgramID,
		"match_score": result.MatchScore,
		"eligible":    result.Eligibility.IsEligible,
	})
}

// draftContent runs the LLM drafting step. Drafting failures degrade the
// analysis to score-only instead of failing it.
func (s *Service) draftContent(ctx context.Context, a Analysis, program programs.Program, company companies.Company) (bool, int, *llm.DraftContent) {
	if s.LLM == nil {
		return false, 0, nil
	}

	draftCtx, cancel := context.WithTimeout(ctx, s.DraftTimeout)
	defer cancel()

	raw, err := s.LLM.DraftApplication(draftCtx, llm.DraftInput{
		ProgramName:    program.Name,
		ProgramSummary: program.Summary,
		CompanyName:    company.Name,
		Industry:       company.Industry,
		Description:    company.BusinessDescription,
		Strengths:      company.Strengths,
		PlanTitle:      a.Plan.Title,
		PlanPurpose:    a.Plan.Purpose,
		PlanBackground: a.Plan.Background,
		Implementation: a.Plan.Implementation,
	})
	if err == nil {
		var content llm.DraftContent
		content, err = llm.ParseDraft(raw)
		if err == nil {
			return true, len(content.KeyPhrases), &content
		}
	}

	metrics.IncDraftFailed()
	telemetry.Warn("draft generation failed, scoring without content", map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"analysis_id": a.ID,
		"error":       sanitizeError(err),
	})
	return false, 0, nil
}

func (s *Service) failAnalysis(ctx context.Context, a Analysis, code string, cause error) {
	now := s.Now().UTC()
	a.Status = StatusFailed
	a.Failure = &FailureInfo{
		Code:      code,
		Message:   sanitizeError(cause),
		Retryable: code == failCodeStorage || code == failCodeProgram,
	}
	a.CompletedAt = &now
	a.UpdatedAt = now
	if err := s.Repo.Update(ctx, a); err != nil {
		telemetry.Error("failed analysis could not be persisted", map[string]any{
			"request_id":  requestIDFromContext(ctx),
			"analysis_id": a.ID,
			"error":       err.Error(),
		})
	}

	if err := s.Usage.Refund(ctx, a.UserID); err != nil {
		telemetry.Error("usage refund failed", map[string]any{
			"request_id":  requestIDFromContext(ctx),
			"analysis_id": a.ID,
			"error":       err.Error(),
		})
	}

	metrics.IncAnalysisFailed()
	telemetry.Error("analysis failed", map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"analysis_id": a.ID,
		"program_id":  a.ProgramID,
		"code":        code,
		"error":       sanitizeError(cause),
	})
}

// sanitizeError keeps stored messages short and single-line.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.Join(strings.Fields(err.Error()), " ")
	if len(msg) > 500 {
		msg = msg[:500]
	}
	return msg
}

// textEvaluator checks a mandatory requirement against the applicant's
// narrative: the requirement counts as addressed when its text appears in
// the combined profile and plan text, or one of the applicant's stated
// objectives or strengths appears in the requirement text. Comparison is
// case-folded substring containment, same as keyword matching.
func textEvaluator(profile matching.CompanyProfile, plan matching.ProjectPlan) matching.RequirementEvaluator {
	parts := []string{
		profile.BusinessDescription,
		matching.ProjectText(plan),
	}
	parts = append(parts, profile.Strengths...)
	parts = append(parts, profile.Objectives...)
	narrative := strings.ToLower(strings.Join(parts, " "))

	claims := make([]string, 0, len(profile.Objectives)+len(profile.Strengths))
	for _, v := range append(append([]string{}, profile.Objectives...), profile.Strengths...) {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			claims = append(claims, v)
		}
	}

	return matching.EvaluatorFunc(func(req matching.Requirement, _ matching.CompanyProfile) (bool, error) {
		text := strings.ToLower(strings.TrimSpace(req.Text))
		if text == "" {
			return true, nil
		}
		if strings.Contains(narrative, text) {
			return true, nil
		}
		for _, claim := range claims {
			if strings.Contains(text, claim) {
				return true, nil
			}
		}
		return false, nil
	})
}
