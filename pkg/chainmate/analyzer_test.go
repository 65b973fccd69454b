package chainmate

import (
	"context"
	"math"
	"reflect"
	"testing"
)

func TestAnalyzePortfolioInvalidAddress(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{}
	core := newTestCore(t, provider)

	_, err := core.AnalyzePortfolio(context.Background(), "0x123")
	if !IsErrorCode(err, ErrCodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if provider.calls != 0 {
		t.Fatalf("provider was called %d times for an invalid address", provider.calls)
	}
}

func TestAnalyzePortfolioEmptyWallet(t *testing.T) {
	t.Parallel()

	core := newTestCore(t, &fakeProvider{tokens: []TokenBalance{}})

	analysis, err := core.AnalyzePortfolio(context.Background(), testWallet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.TotalValueUSD != 0 || analysis.TokenCount != 0 || analysis.DiversityScore != 0 {
		t.Fatalf("expected zero-valued analysis, got %+v", analysis)
	}
	if analysis.PortfolioHealth != HealthConcentrated {
		t.Fatalf("health = %q, want %q", analysis.PortfolioHealth, HealthConcentrated)
	}
	if len(analysis.SectorBreakdown) != 0 {
		t.Fatalf("expected empty sector breakdown, got %v", analysis.SectorBreakdown)
	}
	if analysis.TopHolding.Symbol != "N/A" || analysis.TopHolding.Percentage != "0%" {
		t.Fatalf("unexpected top holding: %+v", analysis.TopHolding)
	}
	if len(analysis.AIInsights) != 1 || analysis.AIInsights[0] != insightNoHoldings {
		t.Fatalf("unexpected insights: %v", analysis.AIInsights)
	}
	if analysis.LastActivity != "Unknown" {
		t.Fatalf("lastActivity = %q, want Unknown", analysis.LastActivity)
	}
}

func TestAnalyzePortfolioTwoTokens(t *testing.T) {
	t.Parallel()

	core := newTestCore(t, &fakeProvider{tokens: []TokenBalance{
		token("UNI", "Uniswap", 400, "2024-03-01T10:00:00Z"),
		token("ETH", "Ethereum", 600, "2024-03-02T09:00:00Z"),
	}})

	analysis, err := core.AnalyzePortfolio(context.Background(), testWallet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.TotalValueUSD != 1000 {
		t.Fatalf("totalValueUSD = %v, want 1000", analysis.TotalValueUSD)
	}
	if analysis.Tokens[0].Symbol != "ETH" || analysis.Tokens[1].Symbol != "UNI" {
		t.Fatalf("tokens not sorted descending by value: %+v", analysis.Tokens)
	}
	if analysis.TopHolding.Symbol != "ETH" || analysis.TopHolding.Percentage != "60.0%" {
		t.Fatalf("unexpected top holding: %+v", analysis.TopHolding)
	}
	if analysis.DiversityScore != 97 {
		t.Fatalf("diversityScore = %d, want 97", analysis.DiversityScore)
	}
	if analysis.PortfolioHealth != HealthDiversified {
		t.Fatalf("health = %q, want %q", analysis.PortfolioHealth, HealthDiversified)
	}
	if analysis.LastActivity != "2024-03-02T09:00:00Z" {
		t.Fatalf("lastActivity = %q", analysis.LastActivity)
	}
	if got := analysis.SectorBreakdown[SectorLayer1]; got.ValueUSD != 600 || got.Percentage != "60.0%" {
		t.Fatalf("layer1 sector = %+v", got)
	}
	if got := analysis.SectorBreakdown[SectorDeFi]; got.ValueUSD != 400 || got.Percentage != "40.0%" {
		t.Fatalf("defi sector = %+v", got)
	}
}

func TestAnalyzePortfolioSectorSum(t *testing.T) {
	t.Parallel()

	core := newTestCore(t, &fakeProvider{tokens: []TokenBalance{
		token("ETH", "Ethereum", 1234.56, "2024-01-01T00:00:00Z"),
		token("UNI", "Uniswap", 78.9, "2024-01-02T00:00:00Z"),
		token("DOGE", "Dogecoin", 0.42, "2024-01-03T00:00:00Z"),
		token("FETAI", "Fetch Token", 999.99, "2024-01-04T00:00:00Z"),
		token("USDC", "USD Coin", 310.07, "2024-01-05T00:00:00Z"),
	}})

	analysis, err := core.AnalyzePortfolio(context.Background(), testWallet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := 0.0
	for _, sector := range analysis.SectorBreakdown {
		sum += sector.ValueUSD
	}
	if rel := math.Abs(sum-analysis.TotalValueUSD) / analysis.TotalValueUSD; rel > 1e-6 {
		t.Fatalf("sector sum %v differs from total %v (rel %v)", sum, analysis.TotalValueUSD, rel)
	}
}

func TestAnalyzePortfolioIdempotent(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{tokens: []TokenBalance{
		token("ETH", "Ethereum", 600, "2024-03-02T09:00:00Z"),
		token("UNI", "Uniswap", 400, "2024-03-01T10:00:00Z"),
	}}
	core := newTestCore(t, provider)

	first, err := core.AnalyzePortfolio(context.Background(), testWallet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := core.AnalyzePortfolio(context.Background(), testWallet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("analyses differ across identical runs:\n%+v\n%+v", first, second)
	}
	if provider.calls != 2 {
		t.Fatalf("expected one fetch per request, got %d", provider.calls)
	}
}

func TestAnalyzePortfolioProviderFailure(t *testing.T) {
	t.Parallel()

	core := newTestCore(t, &fakeProvider{err: NewError(ErrCodeUpstreamFetch, "rate limited")})

	_, err := core.AnalyzePortfolio(context.Background(), testWallet)
	if !IsErrorCode(err, ErrCodeUpstreamFetch) {
		t.Fatalf("expected upstream fetch error, got %v", err)
	}
	if ErrorMessage(err) != "rate limited" {
		t.Fatalf("expected upstream message to surface, got %q", ErrorMessage(err))
	}
}

func TestLatestActivitySkipsUnparseable(t *testing.T) {
	t.Parallel()

	tokens := []TokenBalance{
		token("A", "A", 1, "garbage"),
		token("B", "B", 2, "2024-05-01T00:00:00Z"),
		token("C", "C", 3, "2023-01-01T00:00:00Z"),
	}
	if got := latestActivity(tokens); got != "2024-05-01T00:00:00Z" {
		t.Fatalf("latestActivity = %q", got)
	}
}
