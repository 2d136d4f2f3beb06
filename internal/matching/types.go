// Package matching scores a draft subsidy application against a program's
// eligibility rules and the keyword patterns of past adopted applications.
// Everything in this package is pure: no I/O, no clock, no randomness.
package matching

// CompanyProfile describes the applying business at analysis time.
type CompanyProfile struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Industry            string   `json:"industry"`
	BusinessDescription string   `json:"businessDescription"`
	EmployeeCount       int      `json:"employeeCount"`
	AnnualRevenue       *int64   `json:"annualRevenue,omitempty"`
	FoundedYear         *int     `json:"foundedYear,omitempty"`
	Strengths           []string `json:"strengths"`
	Challenges          []string `json:"challenges"`
	Objectives          []string `json:"objectives"`
}

// ProjectPlan is the applicant's draft project for the subsidy.
type ProjectPlan struct {
	Title           string   `json:"title"`
	Purpose         string   `json:"purpose"`
	Background      string   `json:"background"`
	Implementation  string   `json:"implementation"`
	ExpectedResults []string `json:"expectedResults"`
	Budget          int64    `json:"budget"` // JPY
	Timeline        string   `json:"timeline"`
}

// Requirement is a single program requirement.
type Requirement struct {
	Text      string `json:"text"`
	Mandatory bool   `json:"mandatory"`
}

// ProgramRules are the eligibility gates of a subsidy program.
type ProgramRules struct {
	TargetSizes      []string      `json:"targetSizes"`
	TargetIndustries []string      `json:"targetIndustries"`
	Requirements     []Requirement `json:"requirements"`
	MinAmount        int64         `json:"minAmount"`
	MaxAmount        int64         `json:"maxAmount"`
}

// SuccessCase is a historical adopted application used as reference data.
type SuccessCase struct {
	KeyPhrases     []string `json:"keyPhrases"`
	SuccessFactors []string `json:"successFactors"`
}

// Eligibility is the outcome of the eligibility check.
// MissingRequirements is non-empty exactly when IsEligible is false.
type Eligibility struct {
	IsEligible          bool     `json:"isEligible"`
	Reasons             []string `json:"reasons"`
	MissingRequirements []string `json:"missingRequirements"`
}

// KeywordAnalysis reports how the project text overlaps the keyword universe.
type KeywordAnalysis struct {
	MatchedKeywords   []string       `json:"matchedKeywords"`
	SuggestedKeywords []string       `json:"suggestedKeywords"`
	KeywordDensity    map[string]int `json:"keywordDensity"`
}

// Recommendations are the derived strengths/weaknesses/improvements.
type Recommendations struct {
	Strengths    []string `json:"strengths"`
	Weaknesses   []string `json:"weaknesses"`
	Improvements []string `json:"improvements"`
}

// AnalysisResult is the full outcome of one analysis. It is constructed
// fresh per call and never mutated afterwards.
type AnalysisResult struct {
	MatchScore      int             `json:"matchScore"`
	Eligibility     Eligibility     `json:"eligibility"`
	KeywordAnalysis KeywordAnalysis `json:"keywordAnalysis"`
	Recommendations Recommendations `json:"recommendations"`
}

// RequirementEvaluator decides whether the company satisfies a requirement.
// Implementations live outside this package; evaluation failures are treated
// as "not met" by the eligibility checker.
type RequirementEvaluator interface {
	Evaluate(req Requirement, profile CompanyProfile) (bool, error)
}

// EvaluatorFunc adapts a plain function to RequirementEvaluator.
type EvaluatorFunc func(req Requirement, profile CompanyProfile) (bool, error)

// Evaluate implements RequirementEvaluator.
func (f EvaluatorFunc) Evaluate(req Requirement, profile CompanyProfile) (bool, error) {
	return f(req, profile)
}
