package programs

import (
	"time"

	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/matching"
)

// Program is a government subsidy scheme with eligibility rules and an
// award ceiling.
type Program struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	Summary          string                 `json:"summary"`
	TargetSizes      []string               `json:"targetSizes"`
	TargetIndustries []string               `json:"targetIndustries"`
	Requirements     []matching.Requirement `json:"requirements"`
	CriteriaKeywords []string               `json:"criteriaKeywords"`
	MinAmount        int64                  `json:"minAmount"`
	MaxAmount        int64                  `json:"maxAmount"`
	Deadline         *time.Time             `json:"deadline,omitempty"`
	CreatedAt        time.Time              `json:"createdAt"`
}

// SuccessCase is a historical adopted application for a program.
type SuccessCase struct {
	ID             string    `json:"id"`
	ProgramID      string    `json:"programId"`
	Title          string    `json:"title"`
	KeyPhrases     []string  `json:"keyPhrases"`
	SuccessFactors []string  `json:"successFactors"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Rules converts the program's gates to the scoring core's shape.
func (p Program) Rules() matching.ProgramRules {
	return matching.ProgramRules{
		TargetSizes:      p.TargetSizes,
		TargetIndustries: p.TargetIndustries,
		Requirements:     p.Requirements,
		MinAmount:        p.MinAmount,
		MaxAmount:        p.MaxAmount,
	}
}

// MatchingCases converts stored success cases to the scoring core's shape.
func MatchingCases(cases []SuccessCase) []matching.SuccessCase {
	out := make([]matching.SuccessCase, 0, len(cases))
	for _, c := range cases {
		out = append(out, matching.SuccessCase{
			KeyPhrases:     c.KeyPhrases,
			SuccessFactors: c.SuccessFactors,
		})
	}
	return out
}
