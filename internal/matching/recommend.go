package matching

import (
	"fmt"
	"strings"
)

const (
	highAlignmentScore   = 70
	lowAlignmentScore    = 50
	strongKeywordCount   = 10
	weakSuggestionCount  = 5
	minExpectedResults   = 3
	improvementKeywordsN = 5
)

// GenerateRecommendations derives strengths, weaknesses and improvements
// from the scoring outputs. Every rule is evaluated; none short-circuits.
func GenerateRecommendations(matchScore int, keywords KeywordAnalysis, profile CompanyProfile, plan ProjectPlan, rules ProgramRules) Recommendations {
	strengths := []string{}
	weaknesses := []string{}
	improvements := []string{}

	if matchScore >= highAlignmentScore {
		strengths = append(strengths, "募集要項との整合性が高い")
	}
	if len(keywords.MatchedKeywords) >= strongKeywordCount {
		strengths = append(strengths, "重要キーワードを適切に含んでいる")
	}
	if len(profile.Strengths) > 0 {
		strengths = append(strengths, "企業の強みが明確")
	}

	if matchScore < lowAlignmentScore {
		weaknesses = append(weaknesses, "募集要項との整合性が低い")
	}
	if len(keywords.SuggestedKeywords) > weakSuggestionCount {
		weaknesses = append(weaknesses, "重要キーワードが不足している")
	}
	if len(plan.ExpectedResults) < minExpectedResults {
		weaknesses = append(weaknesses, "期待される成果が不明確")
	}

	if len(keywords.SuggestedKeywords) > 0 {
		cited := keywords.SuggestedKeywords
		if len(cited) > improvementKeywordsN {
			cited = cited[:improvementKeywordsN]
		}
		improvements = append(improvements, fmt.Sprintf("キーワード「%s」を事業計画に盛り込んでください", strings.Join(cited, "、")))
	}
	if plan.Budget < rules.MinAmount {
		improvements = append(improvements, fmt.Sprintf("事業規模を拡大してください（最低補助額は%d円です）", rules.MinAmount))
	}
	improvements = append(improvements,
		"具体的な数値目標を設定してください",
		"地域経済への波及効果を明記してください",
	)

	return Recommendations{
		Strengths:    strengths,
		Weaknesses:   weaknesses,
		Improvements: improvements,
	}
}
