package validation

import (
	"fmt"

	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/mathutil"
)

// NonNegative rejects negative and non-finite amounts.
func NonNegative(field string, value float64) error {
	if !mathutil.IsFinite(value) {
		return fmt.Errorf("%w: %s must be a finite number, got %v", calcerr.ErrInvalidInput, field, value)
	}
	if value < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %v", calcerr.ErrInvalidInput, field, value)
	}
	return nil
}

// TermYears rejects terms outside 1..MaxTermYears.
func TermYears(field string, years int) error {
	if years <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", calcerr.ErrInvalidInput, field, years)
	}
	if years > constants.MaxTermYears {
		return fmt.Errorf("%w: %s exceeds the maximum of %d years, got %d",
			calcerr.ErrInvalidInput, field, constants.MaxTermYears, years)
	}
	return nil
}

// All returns the first non-nil error.
func All(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Finite rejects computed values that left the float64 range.
func Finite(field string, values ...float64) error {
	for _, v := range values {
		if !mathutil.IsFinite(v) {
			return fmt.Errorf("%w: %s is not representable, got %v", calcerr.ErrOverflow, field, v)
		}
	}
	return nil
}
