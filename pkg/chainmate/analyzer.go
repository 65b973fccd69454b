package chainmate

import (
	"context"
	"sort"
	"strings"
	"time"
)

// AnalyzePortfolio fetches the wallet's token balances and computes the full
// portfolio analysis. The address is validated before any upstream call; a
// wallet with zero holdings is a valid terminal outcome, not an error. No
// retries are performed here; retry policy, if any, belongs to the caller.
func (c *Core) AnalyzePortfolio(ctx context.Context, wallet string) (*PortfolioAnalysis, error) {
	wallet = strings.TrimSpace(wallet)
	if !IsValidAddress(wallet) {
		return nil, NewError(ErrCodeValidation, "Invalid wallet address format")
	}

	tokens, err := c.provider.TokenBalances(ctx, wallet)
	if err != nil {
		return nil, err
	}

	analysis := buildAnalysis(wallet, tokens)
	c.logger.Info("portfolio analyzed",
		"wallet", wallet,
		"tokens", analysis.TokenCount,
		"total_value_usd", analysis.TotalValueUSD,
		"diversity_score", analysis.DiversityScore,
		"health", analysis.PortfolioHealth,
	)
	return analysis, nil
}

// buildAnalysis assembles a PortfolioAnalysis from fetched balances. Pure:
// identical inputs produce identical results.
func buildAnalysis(wallet string, tokens []TokenBalance) *PortfolioAnalysis {
	if len(tokens) == 0 {
		return emptyAnalysis(wallet)
	}

	sorted := make([]TokenBalance, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value > sorted[j].Value
	})

	totalValueUSD := 0.0
	values := make([]float64, len(sorted))
	for i, token := range sorted {
		totalValueUSD += token.Value
		values[i] = token.Value
	}

	top := sorted[0]
	topHolding := TopHolding{
		Symbol:     top.Symbol,
		Name:       top.Name,
		ValueUSD:   top.Value,
		Percentage: formatPercentage(top.Value, totalValueUSD),
	}

	score := DiversityScore(values)

	insights := GeneratePortfolioInsights(score, len(sorted), topHolding.Percentage, totalValueUSD)

	return &PortfolioAnalysis{
		WalletAddress:   wallet,
		TotalValueUSD:   totalValueUSD,
		TokenCount:      len(sorted),
		TopHolding:      topHolding,
		DiversityScore:  score,
		PortfolioHealth: HealthForScore(score),
		SectorBreakdown: sectorBreakdown(sorted, totalValueUSD),
		LastActivity:    latestActivity(sorted),
		Tokens:          sorted,
		AIInsights:      insights,
	}
}

// emptyAnalysis is the terminal branch for a wallet with no holdings.
func emptyAnalysis(wallet string) *PortfolioAnalysis {
	return &PortfolioAnalysis{
		WalletAddress: wallet,
		TotalValueUSD: 0,
		TokenCount:    0,
		TopHolding: TopHolding{
			Symbol:     "N/A",
			Name:       "No tokens found",
			ValueUSD:   0,
			Percentage: "0%",
		},
		DiversityScore:  0,
		PortfolioHealth: HealthConcentrated,
		SectorBreakdown: map[string]SectorValue{},
		LastActivity:    "Unknown",
		Tokens:          []TokenBalance{},
		AIInsights:      []string{insightNoHoldings},
	}
}

// sectorBreakdown classifies each token and aggregates value per sector.
// The sum of all sector values equals the portfolio total.
func sectorBreakdown(tokens []TokenBalance, totalValueUSD float64) map[string]SectorValue {
	breakdown := map[string]SectorValue{}
	for _, token := range tokens {
		sector := ClassifySector(token.Symbol, token.Name)
		entry := breakdown[sector]
		entry.ValueUSD += token.Value
		breakdown[sector] = entry
	}
	for sector, entry := range breakdown {
		entry.Percentage = formatPercentage(entry.ValueUSD, totalValueUSD)
		breakdown[sector] = entry
	}
	return breakdown
}

// latestActivity returns the most recent balance-update timestamp across all
// tokens. Timestamps that fail to parse never win the comparison.
func latestActivity(tokens []TokenBalance) string {
	latest := tokens[0].LastBalanceUpdate
	latestTime, _ := parseActivityTime(latest)
	for _, token := range tokens[1:] {
		t, ok := parseActivityTime(token.LastBalanceUpdate)
		if ok && t.After(latestTime) {
			latest = token.LastBalanceUpdate
			latestTime = t
		}
	}
	return latest
}

func parseActivityTime(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
