package matching

import (
	"reflect"
	"strconv"
	"testing"
)

func TestAnalyzeSuccessCasesEmptyInput(t *testing.T) {
	got := AnalyzeSuccessCases(nil)
	if len(got.TopKeywords) != 0 || len(got.CommonFactors) != 0 {
		t.Fatalf("expected empty analysis for zero cases, got %+v", got)
	}
	got = AnalyzeSuccessCases([]SuccessCase{})
	if len(got.TopKeywords) != 0 || len(got.CommonFactors) != 0 {
		t.Fatalf("expected empty analysis for empty slice, got %+v", got)
	}
}

func TestAnalyzeSuccessCasesFrequencyRanking(t *testing.T) {
	cases := []SuccessCase{
		{KeyPhrases: []string{"DX", "生産性向上"}},
		{KeyPhrases: []string{"DX", "販路開拓"}},
		{KeyPhrases: []string{"DX"}},
	}

	got := AnalyzeSuccessCases(cases)
	if len(got.TopKeywords) != 3 {
		t.Fatalf("expected 3 keywords, got %v", got.TopKeywords)
	}
	if got.TopKeywords[0] != "DX" {
		t.Fatalf("most frequent phrase should rank first, got %v", got.TopKeywords)
	}
	// ties keep first-seen order
	if got.TopKeywords[1] != "生産性向上" || got.TopKeywords[2] != "販路開拓" {
		t.Fatalf("tie break should preserve encounter order, got %v", got.TopKeywords)
	}
}

func TestAnalyzeSuccessCasesTopKeywordCap(t *testing.T) {
	phrases := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		phrases = append(phrases, "キーワード"+strconv.Itoa(i))
	}
	got := AnalyzeSuccessCases([]SuccessCase{{KeyPhrases: phrases}})
	if len(got.TopKeywords) != 20 {
		t.Fatalf("expected 20 keywords, got %d", len(got.TopKeywords))
	}
}

func TestAnalyzeSuccessCasesCommonFactorThreshold(t *testing.T) {
	// 10 cases: threshold is ceil(0.3*10)=3 appearances.
	cases := make([]SuccessCase, 0, 10)
	for i := 0; i < 10; i++ {
		sc := SuccessCase{SuccessFactors: []string{"明確な数値目標"}}
		if i < 2 {
			sc.SuccessFactors = append(sc.SuccessFactors, "地域連携")
		}
		if i < 3 {
			sc.SuccessFactors = append(sc.SuccessFactors, "外部専門家の活用")
		}
		cases = append(cases, sc)
	}

	got := AnalyzeSuccessCases(cases)
	expected := []string{"明確な数値目標", "外部専門家の活用"}
	if !reflect.DeepEqual(got.CommonFactors, expected) {
		t.Fatalf("common factors = %v, want %v", got.CommonFactors, expected)
	}
}

func TestMatchKeywordsSubstringAndDensity(t *testing.T) {
	text := "DX導入による生産性向上を目指す。DX人材の育成も行う。"
	got := MatchKeywords(text, []string{"DX", "生産性向上", "販路開拓"})

	if !reflect.DeepEqual(got.MatchedKeywords, []string{"DX", "生産性向上"}) {
		t.Fatalf("matched = %v", got.MatchedKeywords)
	}
	if got.KeywordDensity["DX"] != 2 {
		t.Fatalf("density[DX] = %d, want 2", got.KeywordDensity["DX"])
	}
	if !reflect.DeepEqual(got.SuggestedKeywords, []string{"販路開拓"}) {
		t.Fatalf("suggested = %v", got.SuggestedKeywords)
	}
}

func TestMatchKeywordsCaseInsensitive(t *testing.T) {
	got := MatchKeywords("it導入で業務を効率化する", []string{"IT導入"})
	if len(got.MatchedKeywords) != 1 || got.KeywordDensity["IT導入"] != 1 {
		t.Fatalf("expected case-insensitive match, got %+v", got)
	}
}

func TestMatchKeywordsLiteralNotPattern(t *testing.T) {
	// Keywords containing regex metacharacters must match literally.
	got := MatchKeywords("補助率は1/2（上限50万円）です", []string{"1/2（上限50万円）", "(上限", "a.c"})
	if got.KeywordDensity["1/2（上限50万円）"] != 1 {
		t.Fatalf("literal keyword not matched: %+v", got)
	}
	if contains(got.MatchedKeywords, "a.c") {
		t.Fatalf("dot must not act as a wildcard: %v", got.MatchedKeywords)
	}
}

func TestMatchKeywordsEmptyTextAndUniverse(t *testing.T) {
	got := MatchKeywords("", []string{"DX", "販路開拓"})
	if len(got.MatchedKeywords) != 0 {
		t.Fatalf("no match expected for empty text, got %v", got.MatchedKeywords)
	}
	if len(got.SuggestedKeywords) != 2 {
		t.Fatalf("all keywords should be suggested, got %v", got.SuggestedKeywords)
	}

	got = MatchKeywords("何らかの計画", nil)
	if len(got.MatchedKeywords) != 0 || len(got.SuggestedKeywords) != 0 {
		t.Fatalf("empty universe should produce empty result, got %+v", got)
	}
}

func TestMatchKeywordsSuggestedCapAndDisjoint(t *testing.T) {
	universe := make([]string, 0, 15)
	for i := 0; i < 15; i++ {
		universe = append(universe, "未使用語"+strconv.Itoa(i))
	}
	universe = append(universe, "計画")

	got := MatchKeywords("この計画", universe)
	if len(got.SuggestedKeywords) != 10 {
		t.Fatalf("suggested should cap at 10, got %d", len(got.SuggestedKeywords))
	}
	for _, kw := range got.MatchedKeywords {
		if got.KeywordDensity[kw] < 1 {
			t.Fatalf("matched keyword %q has density %d", kw, got.KeywordDensity[kw])
		}
		if contains(got.SuggestedKeywords, kw) {
			t.Fatalf("keyword %q in both matched and suggested", kw)
		}
	}
}

func TestKeywordUniverseDedupPreservesOrder(t *testing.T) {
	got := KeywordUniverse([]string{"DX", "販路開拓", ""}, []string{"生産性向上", "DX"})
	expected := []string{"DX", "販路開拓", "生産性向上"}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("universe = %v, want %v", got, expected)
	}
}
