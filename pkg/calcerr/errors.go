// Package calcerr defines the error kinds reported by the evaluator and the
// financial formula engine. Callers classify errors with errors.Is or Kind.
package calcerr

import "errors"

var (
	// ErrDivisionByZero is returned when the evaluator divides by exactly zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidInput is returned for inputs a formula cannot be solved for.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnreachable is returned when a savings goal cannot be reached.
	ErrUnreachable = errors.New("goal unreachable")

	// ErrOverflow is returned when an evaluator result leaves the float range.
	ErrOverflow = errors.New("numeric overflow")
)

// Stable kind identifiers, used in API responses.
const (
	KindDivisionByZero = "division_by_zero"
	KindInvalidInput   = "invalid_input"
	KindUnreachable    = "unreachable"
	KindOverflow       = "overflow"
)

// Kind returns the kind identifier for err, or "" when err is not a
// calculation error.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDivisionByZero):
		return KindDivisionByZero
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrUnreachable):
		return KindUnreachable
	case errors.Is(err, ErrOverflow):
		return KindOverflow
	}
	return ""
}

// IsCalculation reports whether err is one of the calculation error kinds.
func IsCalculation(err error) bool {
	return Kind(err) != ""
}
