package chainmate

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// formatUSD renders a USD value with thousands separators and two decimals,
// e.g. "$1,234,567.89".
func formatUSD(value float64) string {
	return "$" + humanize.CommafWithDigits(value, 2)
}

// formatPercentage renders a ratio share with one decimal place and a
// trailing percent sign, e.g. "60.0%".
func formatPercentage(value, total float64) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", value/total*100)
}

// displayBalance converts a raw string-encoded integer amount into a
// human-readable balance with four decimal places. Decimal arithmetic keeps
// the full precision of amounts too large for float64.
func displayBalance(amount string, decimals int) string {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "0.0000"
	}
	return d.Shift(int32(-decimals)).StringFixed(4)
}
