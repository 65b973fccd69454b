package chainmate

import "strings"

// Sector bucket names.
const (
	SectorAIML   = "AI/ML"
	SectorLayer1 = "Layer 1"
	SectorDeFi   = "DeFi"
	SectorMemes  = "Memes"
	SectorOther  = "Other"
)

// Symbol allow-lists for sector classification, matched lowercase.
var (
	layer1Symbols = []string{"eth", "btc", "sol"}
	defiSymbols   = []string{"uni", "aave", "comp", "link"}
	memeSymbols   = []string{"doge", "shib", "pepe"}
)

// ClassifySector assigns a token to exactly one sector bucket. Rules are
// evaluated in a fixed priority order; the first match wins, so a token
// carrying both AI and meme markers lands in AI/ML.
func ClassifySector(symbol, name string) string {
	symbol = strings.ToLower(symbol)
	name = strings.ToLower(name)

	switch {
	case strings.Contains(symbol, "ai") || strings.Contains(name, "artificial") || strings.Contains(name, "machine"):
		return SectorAIML
	case containsString(layer1Symbols, symbol):
		return SectorLayer1
	case strings.Contains(name, "defi") || containsString(defiSymbols, symbol):
		return SectorDeFi
	case strings.Contains(name, "meme") || containsString(memeSymbols, symbol):
		return SectorMemes
	default:
		return SectorOther
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
