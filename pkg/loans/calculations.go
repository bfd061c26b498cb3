// Package loans provides loan and mortgage amortization calculations.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/mathutil"
	"github.com/iwvelando/fincalc/pkg/validation"
)

// AmortizationRow holds the values for a given payment.
type AmortizationRow struct {
	PaymentNumber    int     `json:"paymentNumber" yaml:"paymentNumber"`
	Payment          float64 `json:"payment" yaml:"payment"`
	Principal        float64 `json:"principal" yaml:"principal"`
	Interest         float64 `json:"interest" yaml:"interest"`
	RemainingBalance float64 `json:"remainingBalance" yaml:"remainingBalance"`
}

// LoanResult summarises a fixed-rate loan without a schedule.
type LoanResult struct {
	Principal      float64 `json:"principal" yaml:"principal"`
	InterestRate   float64 `json:"interestRate" yaml:"interestRate"`
	TermYears      int     `json:"termYears" yaml:"termYears"`
	MonthlyPayment float64 `json:"monthlyPayment" yaml:"monthlyPayment"`
	TotalInterest  float64 `json:"totalInterest" yaml:"totalInterest"`
	TotalPayment   float64 `json:"totalPayment" yaml:"totalPayment"`
}

// MortgageResult summarises a mortgage and carries its full amortization
// schedule.
//
// MonthlyPayment and TotalPayment include property tax and insurance while
// the schedule rows and TotalInterest reflect the loan-only payment.
type MortgageResult struct {
	Principal         float64           `json:"principal" yaml:"principal"`
	InterestRate      float64           `json:"interestRate" yaml:"interestRate"`
	TermYears         int               `json:"termYears" yaml:"termYears"`
	AnnualPropertyTax float64           `json:"annualPropertyTax" yaml:"annualPropertyTax"`
	AnnualInsurance   float64           `json:"annualInsurance" yaml:"annualInsurance"`
	MonthlyPayment    float64           `json:"monthlyPayment" yaml:"monthlyPayment"`
	TotalInterest     float64           `json:"totalInterest" yaml:"totalInterest"`
	TotalPayment      float64           `json:"totalPayment" yaml:"totalPayment"`
	Schedule          []AmortizationRow `json:"schedule" yaml:"schedule"`
}

// LoanOnlyPayment returns the monthly payment without tax and insurance.
func (m MortgageResult) LoanOnlyPayment() float64 {
	if len(m.Schedule) == 0 {
		return m.MonthlyPayment - (m.AnnualPropertyTax+m.AnnualInsurance)/constants.MonthsPerYear
	}
	return m.Schedule[0].Payment
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicInterestRate := mathutil.MonthlyRate(annualInterestRate)
	power := math.Pow(1.00+periodicInterestRate, float64(termMonths))
	if power == 1.00 {
		// Rate too small to register in float64.
		return principal / float64(termMonths)
	}
	return principal * periodicInterestRate * power / (power - 1.00)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * mathutil.MonthlyRate(annualInterestRate)
}

// GenerateSchedule creates the amortization schedule for a level payment.
// The remaining balance is clamped at zero to absorb floating-point drift in
// the final payments.
func GenerateSchedule(principal, annualInterestRate float64, termMonths int, payment float64) []AmortizationRow {
	if termMonths <= 0 {
		return nil
	}

	schedule := make([]AmortizationRow, 0, termMonths)
	remaining := principal
	for month := 1; month <= termMonths; month++ {
		interest := CalculateInterestPayment(remaining, annualInterestRate)
		principalPortion := payment - interest
		remaining -= principalPortion
		if remaining < 0 {
			remaining = 0
		}
		schedule = append(schedule, AmortizationRow{
			PaymentNumber:    month,
			Payment:          payment,
			Principal:        principalPortion,
			Interest:         interest,
			RemainingBalance: remaining,
		})
	}
	return schedule
}

func validateLoan(principal, annualInterestRate float64, termYears int) error {
	return validation.All(
		validation.NonNegative("principal", principal),
		validation.NonNegative("interest rate", annualInterestRate),
		validation.TermYears("term", termYears),
	)
}

// ComputeLoan calculates the payment and totals of a fixed-rate loan.
func ComputeLoan(principal, annualInterestRate float64, termYears int) (LoanResult, error) {
	if err := validateLoan(principal, annualInterestRate, termYears); err != nil {
		return LoanResult{}, fmt.Errorf("loan: %w", err)
	}

	termMonths := termYears * constants.MonthsPerYear
	monthlyPayment := CalculateMonthlyPayment(principal, annualInterestRate, termMonths)
	totalPayment := monthlyPayment * float64(termMonths)
	if err := validation.Finite("payment", monthlyPayment, totalPayment, totalPayment-principal); err != nil {
		return LoanResult{}, fmt.Errorf("loan: %w", err)
	}

	return LoanResult{
		Principal:      principal,
		InterestRate:   annualInterestRate,
		TermYears:      termYears,
		MonthlyPayment: monthlyPayment,
		TotalInterest:  totalPayment - principal,
		TotalPayment:   totalPayment,
	}, nil
}

// ComputeMortgage calculates a mortgage payment, its totals and the full
// amortization schedule. The annual property tax and insurance are pro-rated
// into the reported monthly payment and added once to the total payment; they
// do not take part in the principal and interest split.
func ComputeMortgage(principal, annualInterestRate float64, termYears int, annualPropertyTax, annualInsurance float64) (MortgageResult, error) {
	err := validation.All(
		validateLoan(principal, annualInterestRate, termYears),
		validation.NonNegative("property tax", annualPropertyTax),
		validation.NonNegative("insurance", annualInsurance),
	)
	if err != nil {
		return MortgageResult{}, fmt.Errorf("mortgage: %w", err)
	}

	termMonths := termYears * constants.MonthsPerYear
	monthlyPayment := CalculateMonthlyPayment(principal, annualInterestRate, termMonths)
	totalPayment := monthlyPayment * float64(termMonths)
	escrow := annualPropertyTax + annualInsurance

	result := MortgageResult{
		Principal:         principal,
		InterestRate:      annualInterestRate,
		TermYears:         termYears,
		AnnualPropertyTax: annualPropertyTax,
		AnnualInsurance:   annualInsurance,
		MonthlyPayment:    monthlyPayment + escrow/constants.MonthsPerYear,
		TotalInterest:     totalPayment - principal,
		TotalPayment:      totalPayment + escrow,
	}
	if err := validation.Finite("payment", result.MonthlyPayment, result.TotalInterest, result.TotalPayment); err != nil {
		return MortgageResult{}, fmt.Errorf("mortgage: %w", err)
	}

	result.Schedule = GenerateSchedule(principal, annualInterestRate, termMonths, monthlyPayment)
	for _, row := range result.Schedule {
		if err := validation.Finite("schedule", row.Principal, row.Interest, row.RemainingBalance); err != nil {
			return MortgageResult{}, fmt.Errorf("mortgage: payment %d: %w", row.PaymentNumber, err)
		}
	}
	return result, nil
}
