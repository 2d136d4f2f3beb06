package matching

// AnalyzeInput carries everything one analysis needs. The caller resolves
// program rules, success cases and generated content before calling in;
// nothing here blocks or performs I/O.
type AnalyzeInput struct {
	Company          CompanyProfile
	Plan             ProjectPlan
	Rules            ProgramRules
	Cases            []SuccessCase
	CriteriaKeywords []string
	Evaluator        RequirementEvaluator

	// Content generation outcome from the (external) drafting step.
	HasContent        bool
	ContentKeyPhrases int
}

// Analyze runs the full scoring pipeline: eligibility gates, success-case
// keyword mining, project-text matching, score combination and
// recommendation generation. Identical inputs produce identical results.
func Analyze(input AnalyzeInput) AnalysisResult {
	eligibility := CheckEligibility(input.Company, input.Rules, input.Evaluator)

	caseAnalysis := AnalyzeSuccessCases(input.Cases)
	universe := KeywordUniverse(input.CriteriaKeywords, caseAnalysis.TopKeywords)
	keywords := MatchKeywords(ProjectText(input.Plan), universe)

	score := CombineScore(eligibility, keywords, input.HasContent, input.ContentKeyPhrases)
	recommendations := GenerateRecommendations(score, keywords, input.Company, input.Plan, input.Rules)

	return AnalysisResult{
		MatchScore:      score,
		Eligibility:     eligibility,
		KeywordAnalysis: keywords,
		Recommendations: recommendations,
	}
}
