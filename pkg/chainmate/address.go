package chainmate

import "regexp"

// Pre-compiled wallet address patterns. The anchored form is the validator;
// the unanchored form scans free text for embedded addresses.
var (
	reAddress       = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	reAddressInText = regexp.MustCompile(`0x[a-fA-F0-9]{40}`)
)

// IsValidAddress reports whether s is a well-formed wallet address:
// "0x" followed by exactly 40 hex characters. No other format is accepted.
func IsValidAddress(s string) bool {
	return reAddress.MatchString(s)
}

// ExtractAddress returns the first wallet address embedded in free text,
// or the empty string when none is present.
func ExtractAddress(text string) string {
	return reAddressInText.FindString(text)
}
