package validation

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/fincalc/pkg/calcerr"
)

func TestNonNegative(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		expectErr bool
	}{
		{"Zero", 0, false},
		{"Positive", 300000, false},
		{"Negative", -1, true},
		{"NaN", math.NaN(), true},
		{"Infinity", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NonNegative("principal", tt.value)
			if tt.expectErr {
				if !errors.Is(err, calcerr.ErrInvalidInput) {
					t.Errorf("NonNegative(%v) = %v, expected ErrInvalidInput", tt.value, err)
				}
			} else if err != nil {
				t.Errorf("NonNegative(%v) unexpected error: %v", tt.value, err)
			}
		})
	}
}

func TestTermYears(t *testing.T) {
	tests := []struct {
		name      string
		years     int
		expectErr bool
	}{
		{"One year", 1, false},
		{"Thirty years", 30, false},
		{"Maximum", 100, false},
		{"Zero", 0, true},
		{"Negative", -5, true},
		{"Above maximum", 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TermYears("term", tt.years)
			if tt.expectErr && !errors.Is(err, calcerr.ErrInvalidInput) {
				t.Errorf("TermYears(%d) = %v, expected ErrInvalidInput", tt.years, err)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("TermYears(%d) unexpected error: %v", tt.years, err)
			}
		})
	}
}

func TestAll(t *testing.T) {
	if err := All(nil, nil); err != nil {
		t.Errorf("All(nil, nil) = %v, expected nil", err)
	}
	first := errors.New("first")
	if err := All(nil, first, errors.New("second")); err != first {
		t.Errorf("All() = %v, expected first error", err)
	}
}

func TestFinite(t *testing.T) {
	tests := []struct {
		name      string
		values    []float64
		expectErr bool
	}{
		{"No values", nil, false},
		{"Finite values", []float64{0, -1, 1e308}, false},
		{"NaN", []float64{1, math.NaN()}, true},
		{"Positive infinity", []float64{math.Inf(1)}, true},
		{"Negative infinity", []float64{2, math.Inf(-1), 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Finite("payment", tt.values...)
			if tt.expectErr && !errors.Is(err, calcerr.ErrOverflow) {
				t.Errorf("Finite(%v) = %v, expected ErrOverflow", tt.values, err)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("Finite(%v) unexpected error: %v", tt.values, err)
			}
		})
	}
}
