package testutil

import (
	"testing"

	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/loans"
)

func TestFindPayment(t *testing.T) {
	schedule := []loans.AmortizationRow{
		{PaymentNumber: 1, RemainingBalance: 900},
		{PaymentNumber: 2, RemainingBalance: 800},
		{PaymentNumber: 3, RemainingBalance: 700},
	}

	tests := []struct {
		name            string
		paymentNumber   int
		expectFound     bool
		expectedBalance float64
	}{
		{"first payment", 1, true, 900},
		{"last payment", 3, true, 700},
		{"payment beyond term", 4, false, 0},
		{"payment zero", 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := FindPayment(schedule, tt.paymentNumber)
			if !tt.expectFound {
				if row != nil {
					t.Errorf("expected nil, got %+v", row)
				}
				return
			}
			if row == nil {
				t.Fatalf("expected payment %d to be found", tt.paymentNumber)
			}
			if row.RemainingBalance != tt.expectedBalance {
				t.Errorf("RemainingBalance = %v, expected %v", row.RemainingBalance, tt.expectedBalance)
			}
		})
	}

	// The returned pointer refers to the slice element.
	FindPayment(schedule, 2).Interest = 5
	if schedule[1].Interest != 5 {
		t.Error("expected FindPayment to return a pointer into the schedule")
	}
}

func TestFindProjection(t *testing.T) {
	projections := []finance.YearlyProjection{{Year: 1, FutureValue: 10}, {Year: 2, FutureValue: 21}}

	if p := FindProjection(projections, 2); p == nil || p.FutureValue != 21 {
		t.Errorf("unexpected projection %+v", p)
	}
	if p := FindProjection(projections, 3); p != nil {
		t.Errorf("expected nil, got %+v", p)
	}
	if p := FindProjection(nil, 1); p != nil {
		t.Errorf("expected nil for empty projections, got %+v", p)
	}
}
