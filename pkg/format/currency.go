// Package format renders amounts, rates and durations for display.
package format

import (
	"fmt"
	"math"

	"github.com/iwvelando/fincalc/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 && formatted != "0.00" {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Percentage renders a percentage value with two decimals (e.g., "4.50%").
func Percentage(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

// formatPositiveCurrency rounds to cents and groups thousands the way
// English locales do.
func formatPositiveCurrency(value float64) string {
	return message.NewPrinter(language.English).Sprintf("%.2f", mathutil.Round(value))
}
