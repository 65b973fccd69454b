package chainmate

import "strings"

// Intent vocabulary. The same keyword sets are surfaced to the language
// model as tool-selection guidance in the agent instructions.
var (
	portfolioKeywords = []string{"portfolio", "my wallet", "what do i own", "my tokens"}
	whaleKeywords     = []string{"whale", "biggest holder", "top holder"}
)

// DetectIntent classifies a free-text query. Matching is case-insensitive
// and stateless. An embedded wallet address is extracted first and attached
// to the result under every tag, including unknown.
func DetectIntent(query string) Intent {
	lower := strings.ToLower(query)
	address := ExtractAddress(query)

	if containsAny(lower, portfolioKeywords) || (strings.Contains(lower, "analyze") && address != "") {
		return Intent{Tag: IntentPortfolioAnalysis, Address: address}
	}
	if containsAny(lower, whaleKeywords) {
		return Intent{Tag: IntentWhaleAnalysis, Address: address}
	}
	return Intent{Tag: IntentUnknown, Address: address}
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
