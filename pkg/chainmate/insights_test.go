package chainmate

import (
	"reflect"
	"testing"
)

func TestGeneratePortfolioInsights(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		score      int
		tokenCount int
		topPct     string
		totalValue float64
		want       []string
	}{
		{
			name:  "nothing fires",
			score: 50, tokenCount: 10, topPct: "30.0%", totalValue: 50_000,
			want: []string{},
		},
		{
			name:  "low diversity",
			score: 20, tokenCount: 10, topPct: "30.0%", totalValue: 50_000,
			want: []string{insightConcentrated},
		},
		{
			name:  "high diversity",
			score: 90, tokenCount: 10, topPct: "30.0%", totalValue: 50_000,
			want: []string{insightDiversified},
		},
		{
			name:  "few tokens",
			score: 50, tokenCount: 3, topPct: "40.0%", totalValue: 50_000,
			want: []string{insightFewTokens},
		},
		{
			name:  "many tokens",
			score: 50, tokenCount: 25, topPct: "30.0%", totalValue: 50_000,
			want: []string{insightManyTokens},
		},
		{
			name:  "dominant top holding",
			score: 50, tokenCount: 10, topPct: "62.5%", totalValue: 50_000,
			want: []string{insightDominance},
		},
		{
			name:  "high value takes front position",
			score: 20, tokenCount: 3, topPct: "80.0%", totalValue: 2_000_000,
			want: []string{insightHighValue, insightConcentrated, insightFewTokens, insightDominance},
		},
		{
			name:  "small portfolio appended last",
			score: 20, tokenCount: 3, topPct: "80.0%", totalValue: 500,
			want: []string{insightConcentrated, insightFewTokens, insightDominance, insightSmallValue},
		},
		{
			name:  "boundary values fire nothing",
			score: 30, tokenCount: 5, topPct: "50.0%", totalValue: 1_000_000,
			want: []string{},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := GeneratePortfolioInsights(tc.score, tc.tokenCount, tc.topPct, tc.totalValue)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("insights = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParsePercentage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  float64
	}{
		{input: "60.0%", want: 60},
		{input: "0%", want: 0},
		{input: "100.0%", want: 100},
		{input: "not-a-number", want: 0},
		{input: "", want: 0},
	}
	for _, tc := range tests {
		if got := parsePercentage(tc.input); got != tc.want {
			t.Fatalf("parsePercentage(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
