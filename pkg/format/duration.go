package format

import (
	"fmt"
	"math"

	"github.com/iwvelando/fincalc/pkg/constants"
)

// Years renders a fractional number of years as whole years and months,
// e.g. 4.3 becomes "4 years, 4 months".
func Years(years float64) string {
	if years <= 0 || math.IsNaN(years) {
		return "0 months"
	}

	fullYears := int(math.Floor(years))
	months := int(math.Round((years - float64(fullYears)) * constants.MonthsPerYear))
	if months == constants.MonthsPerYear {
		fullYears++
		months = 0
	}

	switch {
	case fullYears == 0:
		return plural(months, "month")
	case months == 0:
		return plural(fullYears, "year")
	default:
		return plural(fullYears, "year") + ", " + plural(months, "month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
