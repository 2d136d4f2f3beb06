package matching

import "testing"

func TestCombineScore(t *testing.T) {
	eligible := Eligibility{IsEligible: true}
	matched := func(n int) KeywordAnalysis {
		kws := make([]string, n)
		for i := range kws {
			kws[i] = "kw"
		}
		return KeywordAnalysis{MatchedKeywords: kws}
	}

	cases := []struct {
		name     string
		elig     Eligibility
		keywords KeywordAnalysis
		content  bool
		phrases  int
		expected int
	}{
		{
			name:     "full_marks",
			elig:     eligible,
			keywords: matched(12),
			content:  true,
			phrases:  6,
			expected: 100,
		},
		{
			name:     "ineligible_two_missing_no_content",
			elig:     Eligibility{MissingRequirements: []string{"a", "b"}},
			keywords: matched(0),
			expected: 20,
		},
		{
			name:     "eligibility_floor_at_zero",
			elig:     Eligibility{MissingRequirements: []string{"a", "b", "c", "d", "e"}},
			keywords: matched(0),
			expected: 0,
		},
		{
			name:     "keyword_points_capped",
			elig:     Eligibility{MissingRequirements: []string{"a", "b", "c", "d"}},
			keywords: matched(50),
			expected: 30,
		},
		{
			name:     "content_without_rich_bonus",
			elig:     eligible,
			keywords: matched(2),
			content:  true,
			phrases:  4,
			expected: 66,
		},
		{
			name:     "content_rich_bonus_at_threshold",
			elig:     eligible,
			keywords: matched(0),
			content:  true,
			phrases:  5,
			expected: 70,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CombineScore(tc.elig, tc.keywords, tc.content, tc.phrases)
			if got != tc.expected {
				t.Fatalf("CombineScore = %d, want %d", got, tc.expected)
			}
		})
	}
}

func TestCombineScoreAlwaysInRange(t *testing.T) {
	missing := []string{}
	for m := 0; m <= 10; m++ {
		for k := 0; k <= 40; k += 4 {
			for _, content := range []bool{false, true} {
				for _, phrases := range []int{0, 4, 5, 20} {
					elig := Eligibility{IsEligible: m == 0, MissingRequirements: missing}
					kws := make([]string, k)
					score := CombineScore(elig, KeywordAnalysis{MatchedKeywords: kws}, content, phrases)
					if score < 0 || score > 100 {
						t.Fatalf("score %d out of range (missing=%d matched=%d content=%v phrases=%d)", score, m, k, content, phrases)
					}
				}
			}
		}
		missing = append(missing, "要件")
	}
}
