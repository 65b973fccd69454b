package chainmate

import (
	"strconv"
	"strings"
)

// Insight thresholds.
const (
	insightLowDiversityBelow = 30
	insightHighDiversityOver = 80
	insightFewTokensBelow    = 5
	insightManyTokensOver    = 20
	insightDominancePctOver  = 50.0
	insightHighValueOverUSD  = 1_000_000.0
	insightSmallValueUnder   = 1_000.0
)

// Insight texts.
const (
	insightConcentrated = "Portfolio is highly concentrated - consider diversifying to reduce risk"
	insightDiversified  = "Well-diversified portfolio with good risk distribution"
	insightFewTokens    = "Portfolio has few tokens - may benefit from additional positions"
	insightManyTokens   = "Large number of positions - consider consolidating smaller holdings"
	insightDominance    = "Top holding dominates portfolio - high concentration risk"
	insightHighValue    = "High-value portfolio detected - consider advanced risk management strategies"
	insightSmallValue   = "Small portfolio size - focus on building core positions first"
	insightNoHoldings   = "This wallet has no token holdings or is not on supported networks"
)

// GeneratePortfolioInsights evaluates the insight rules in their fixed order
// and returns the fired insight texts. The ordering is part of the content
// contract: the high-value notice always takes the front position and the
// small-portfolio note is always appended last, no matter which other rules
// fired. An empty slice means no rule fired; callers must not substitute a
// default message here.
func GeneratePortfolioInsights(diversityScore, tokenCount int, topHoldingPct string, totalValueUSD float64) []string {
	insights := []string{}

	if diversityScore < insightLowDiversityBelow {
		insights = append(insights, insightConcentrated)
	} else if diversityScore > insightHighDiversityOver {
		insights = append(insights, insightDiversified)
	}

	if tokenCount < insightFewTokensBelow {
		insights = append(insights, insightFewTokens)
	} else if tokenCount > insightManyTokensOver {
		insights = append(insights, insightManyTokens)
	}

	if parsePercentage(topHoldingPct) > insightDominancePctOver {
		insights = append(insights, insightDominance)
	}

	if totalValueUSD > insightHighValueOverUSD {
		insights = append([]string{insightHighValue}, insights...)
	} else if totalValueUSD < insightSmallValueUnder {
		insights = append(insights, insightSmallValue)
	}

	return insights
}

// parsePercentage reads a formatted percentage string ("60.0%") back into a
// float. Malformed input counts as zero, which keeps the dominance rule off.
func parsePercentage(s string) float64 {
	trimmed := strings.TrimSuffix(strings.TrimSpace(s), "%")
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return value
}
