package matching

import (
	"sort"
	"strings"
)

const (
	maxTopKeywords      = 20
	maxSuggestedKeyword = 10
	commonFactorRatio   = 0.3
)

// CaseAnalysis summarizes the keyword patterns of past adopted applications.
type CaseAnalysis struct {
	TopKeywords   []string `json:"topKeywords"`
	CommonFactors []string `json:"commonFactors"`
}

// AnalyzeSuccessCases mines key phrases and success factors from past
// adopted applications. Keywords are ranked by descending frequency with
// ties broken by first appearance; factors are kept when they appear in at
// least 30% of cases.
func AnalyzeSuccessCases(cases []SuccessCase) CaseAnalysis {
	if len(cases) == 0 {
		return CaseAnalysis{TopKeywords: []string{}, CommonFactors: []string{}}
	}

	phraseCounts := make(map[string]int)
	phraseOrder := []string{}
	factorCounts := make(map[string]int)
	factorOrder := []string{}

	for _, c := range cases {
		for _, phrase := range c.KeyPhrases {
			if phraseCounts[phrase] == 0 {
				phraseOrder = append(phraseOrder, phrase)
			}
			phraseCounts[phrase]++
		}
		for _, factor := range c.SuccessFactors {
			if factorCounts[factor] == 0 {
				factorOrder = append(factorOrder, factor)
			}
			factorCounts[factor]++
		}
	}

	top := append([]string{}, phraseOrder...)
	sort.SliceStable(top, func(i, j int) bool {
		return phraseCounts[top[i]] > phraseCounts[top[j]]
	})
	if len(top) > maxTopKeywords {
		top = top[:maxTopKeywords]
	}

	// ceil(0.3 * caseCount) without floating point surprises
	threshold := (len(cases)*3 + 9) / 10

	common := []string{}
	for _, factor := range factorOrder {
		if factorCounts[factor] >= threshold {
			common = append(common, factor)
		}
	}

	return CaseAnalysis{TopKeywords: top, CommonFactors: common}
}

// ProjectText builds the text the matcher searches: title, purpose,
// background and implementation, space-joined in that order.
func ProjectText(plan ProjectPlan) string {
	return strings.Join([]string{plan.Title, plan.Purpose, plan.Background, plan.Implementation}, " ")
}

// MatchKeywords counts case-insensitive, non-overlapping literal substring
// occurrences of each universe keyword in the project text. Keywords are
// never interpreted as patterns. Keywords absent from the text become
// suggestions, capped at 10 in universe order.
func MatchKeywords(projectText string, universe []string) KeywordAnalysis {
	folded := strings.ToLower(projectText)

	matched := []string{}
	suggested := []string{}
	density := map[string]int{}
	seen := make(map[string]bool, len(universe))

	for _, keyword := range universe {
		if keyword == "" || seen[keyword] {
			continue
		}
		seen[keyword] = true

		count := strings.Count(folded, strings.ToLower(keyword))
		if count > 0 {
			matched = append(matched, keyword)
			density[keyword] = count
			continue
		}
		if len(suggested) < maxSuggestedKeyword {
			suggested = append(suggested, keyword)
		}
	}

	return KeywordAnalysis{
		MatchedKeywords:   matched,
		SuggestedKeywords: suggested,
		KeywordDensity:    density,
	}
}

// KeywordUniverse merges evaluation-criteria keywords with mined top
// keywords, preserving order and dropping duplicates.
func KeywordUniverse(criteria []string, topKeywords []string) []string {
	out := make([]string, 0, len(criteria)+len(topKeywords))
	seen := make(map[string]bool, len(criteria)+len(topKeywords))
	for _, group := range [][]string{criteria, topKeywords} {
		for _, keyword := range group {
			if keyword == "" || seen[keyword] {
				continue
			}
			seen[keyword] = true
			out = append(out, keyword)
		}
	}
	return out
}
