package matching

import (
	"bytes"
	"encoding/json"
	"testing"
)

func testInput() AnalyzeInput {
	return AnalyzeInput{
		Company: CompanyProfile{
			ID:            "company-1",
			Name:          "株式会社サンプル製作所",
			Industry:      "製造業",
			EmployeeCount: 15,
			Strengths:     []string{"高精度加工技術"},
		},
		Plan: ProjectPlan{
			Title:           "DX導入による生産管理の高度化",
			Purpose:         "生産性向上と納期短縮を実現する",
			Background:      "手作業による生産管理が限界に達している",
			Implementation:  "生産管理システムを導入し、IoTセンサーで稼働を可視化する",
			ExpectedResults: []string{"生産性20%向上", "納期30%短縮", "不良率半減"},
			Budget:          2_000_000,
		},
		Rules: ProgramRules{
			TargetSizes:      []string{SizeSmall},
			TargetIndustries: []string{"製造業"},
			MinAmount:        500_000,
			MaxAmount:        10_000_000,
		},
		Cases: []SuccessCase{
			{KeyPhrases: []string{"DX", "生産性向上"}, SuccessFactors: []string{"明確な数値目標"}},
			{KeyPhrases: []string{"DX", "IoT"}, SuccessFactors: []string{"明確な数値目標"}},
			{KeyPhrases: []string{"DX"}, SuccessFactors: []string{"地域連携"}},
		},
		CriteriaKeywords: []string{"生産性向上", "販路開拓"},
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	got := Analyze(testInput())

	if !got.Eligibility.IsEligible {
		t.Fatalf("expected eligible, got %+v", got.Eligibility)
	}
	// "DX" mined from success cases must match the literal substring in "DX導入".
	if !contains(got.KeywordAnalysis.MatchedKeywords, "DX") {
		t.Fatalf("DX not matched: %v", got.KeywordAnalysis.MatchedKeywords)
	}
	if got.KeywordAnalysis.KeywordDensity["DX"] != 1 {
		t.Fatalf("density[DX] = %d, want 1", got.KeywordAnalysis.KeywordDensity["DX"])
	}
	if got.MatchScore < 0 || got.MatchScore > 100 {
		t.Fatalf("score out of range: %d", got.MatchScore)
	}
	for kw := range got.KeywordAnalysis.KeywordDensity {
		if !contains(got.KeywordAnalysis.MatchedKeywords, kw) {
			t.Fatalf("density key %q not in matched keywords", kw)
		}
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	input := testInput()

	first, err := json.Marshal(Analyze(input))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(Analyze(input))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("pipeline not deterministic:\n%s\n%s", first, second)
	}
}

func TestAnalyzeEmptySuccessCases(t *testing.T) {
	input := testInput()
	input.Cases = nil
	input.CriteriaKeywords = nil

	got := Analyze(input)
	if len(got.KeywordAnalysis.MatchedKeywords) != 0 || len(got.KeywordAnalysis.SuggestedKeywords) != 0 {
		t.Fatalf("empty universe should yield empty keyword analysis, got %+v", got.KeywordAnalysis)
	}
	if got.MatchScore != 40 {
		t.Fatalf("eligible with no keywords and no content should score 40, got %d", got.MatchScore)
	}
}

func TestAnalyzeWithGeneratedContent(t *testing.T) {
	input := testInput()
	input.HasContent = true
	input.ContentKeyPhrases = 6

	without := Analyze(testInput())
	with := Analyze(input)
	if with.MatchScore != without.MatchScore+30 {
		t.Fatalf("rich content should add 30 points: %d vs %d", without.MatchScore, with.MatchScore)
	}
}
