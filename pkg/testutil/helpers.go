// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/loans"
)

// FindPayment finds the amortization row with the given payment number.
// Returns a pointer into the schedule if found, nil otherwise.
func FindPayment(schedule []loans.AmortizationRow, paymentNumber int) *loans.AmortizationRow {
	for i := range schedule {
		if schedule[i].PaymentNumber == paymentNumber {
			return &schedule[i]
		}
	}
	return nil
}

// FindProjection finds the projection for the given year, nil if absent.
func FindProjection(projections []finance.YearlyProjection, year int) *finance.YearlyProjection {
	for i := range projections {
		if projections[i].Year == year {
			return &projections[i]
		}
	}
	return nil
}
