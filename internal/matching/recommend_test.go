package matching

import (
	"strings"
	"testing"
)

func TestGenerateRecommendationsStrengths(t *testing.T) {
	keywords := KeywordAnalysis{
		MatchedKeywords: make([]string, 10),
	}
	profile := CompanyProfile{Strengths: []string{"熟練した職人技術"}}
	plan := ProjectPlan{ExpectedResults: []string{"a", "b", "c"}}

	recs := GenerateRecommendations(75, keywords, profile, plan, ProgramRules{})

	for _, want := range []string{
		"募集要項との整合性が高い",
		"重要キーワードを適切に含んでいる",
		"企業の強みが明確",
	} {
		if !contains(recs.Strengths, want) {
			t.Fatalf("strengths %v missing %q", recs.Strengths, want)
		}
	}
	if len(recs.Weaknesses) != 0 {
		t.Fatalf("unexpected weaknesses: %v", recs.Weaknesses)
	}
}

func TestGenerateRecommendationsWeaknesses(t *testing.T) {
	keywords := KeywordAnalysis{
		SuggestedKeywords: []string{"a", "b", "c", "d", "e", "f"},
	}
	recs := GenerateRecommendations(40, keywords, CompanyProfile{}, ProjectPlan{}, ProgramRules{})

	for _, want := range []string{
		"募集要項との整合性が低い",
		"重要キーワードが不足している",
		"期待される成果が不明確",
	} {
		if !contains(recs.Weaknesses, want) {
			t.Fatalf("weaknesses %v missing %q", recs.Weaknesses, want)
		}
	}
}

func TestGenerateRecommendationsImprovements(t *testing.T) {
	keywords := KeywordAnalysis{
		SuggestedKeywords: []string{"DX", "生産性向上", "販路開拓", "地域活性化", "新規事業", "雇用創出"},
	}
	plan := ProjectPlan{Budget: 300_000}
	rules := ProgramRules{MinAmount: 500_000}

	recs := GenerateRecommendations(60, keywords, CompanyProfile{}, plan, rules)

	if len(recs.Improvements) != 4 {
		t.Fatalf("expected 4 improvements, got %v", recs.Improvements)
	}
	// first five suggested keywords only, comma-joined
	first := recs.Improvements[0]
	if !strings.Contains(first, "DX、生産性向上、販路開拓、地域活性化、新規事業") {
		t.Fatalf("keyword improvement malformed: %q", first)
	}
	if strings.Contains(first, "雇用創出") {
		t.Fatalf("keyword improvement should cite at most 5 keywords: %q", first)
	}
	if !strings.Contains(recs.Improvements[1], "500000円") {
		t.Fatalf("budget improvement should cite the minimum award: %q", recs.Improvements[1])
	}
}

func TestGenerateRecommendationsFixedTailAlwaysPresent(t *testing.T) {
	recs := GenerateRecommendations(100, KeywordAnalysis{}, CompanyProfile{}, ProjectPlan{Budget: 1_000_000, ExpectedResults: []string{"a", "b", "c"}}, ProgramRules{})

	if len(recs.Improvements) != 2 {
		t.Fatalf("expected only the two fixed improvements, got %v", recs.Improvements)
	}
	if recs.Improvements[0] != "具体的な数値目標を設定してください" {
		t.Fatalf("unexpected fixed improvement: %q", recs.Improvements[0])
	}
	if recs.Improvements[1] != "地域経済への波及効果を明記してください" {
		t.Fatalf("unexpected fixed improvement: %q", recs.Improvements[1])
	}
}
