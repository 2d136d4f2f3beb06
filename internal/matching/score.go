package matching

// Fixed point budget: eligibility 40, keyword overlap 30, content 30.
const (
	eligibilityBudget      = 40
	missingRequirementCost = 10
	keywordBudget          = 30
	pointsPerKeyword       = 3
	contentBasePoints      = 20
	contentRichBonus       = 10
	contentRichThreshold   = 5
)

// CombineScore folds the eligibility and keyword results together with the
// content-generation outcome into the final 0-100 match score.
func CombineScore(elig Eligibility, keywords KeywordAnalysis, hasContent bool, contentKeyPhrases int) int {
	score := 0

	if elig.IsEligible {
		score += eligibilityBudget
	} else {
		partial := eligibilityBudget - missingRequirementCost*len(elig.MissingRequirements)
		if partial > 0 {
			score += partial
		}
	}

	keywordPoints := pointsPerKeyword * len(keywords.MatchedKeywords)
	if keywordPoints > keywordBudget {
		keywordPoints = keywordBudget
	}
	score += keywordPoints

	if hasContent {
		score += contentBasePoints
		if contentKeyPhrases >= contentRichThreshold {
			score += contentRichBonus
		}
	}

	return clampScore(score)
}

// clampScore keeps the score inside [0,100]. The capped sub-scores cannot
// exceed the range, but the clamp stays as a guard.
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
