// Package finance provides compound growth calculations for investments and
// savings goals.
package finance

import (
	"fmt"
	"math"

	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/mathutil"
	"github.com/iwvelando/fincalc/pkg/validation"
)

// InvestmentResult holds the outcome of compounding a lump sum and a stream of
// monthly contributions.
type InvestmentResult struct {
	Principal           float64 `json:"principal" yaml:"principal"`
	MonthlyContribution float64 `json:"monthlyContribution" yaml:"monthlyContribution"`
	InterestRate        float64 `json:"interestRate" yaml:"interestRate"`
	Years               int     `json:"years" yaml:"years"`
	FutureValue         float64 `json:"futureValue" yaml:"futureValue"`
	TotalContributed    float64 `json:"totalContributed" yaml:"totalContributed"`
	TotalInterest       float64 `json:"totalInterest" yaml:"totalInterest"`
}

// YearlyProjection is the state of an investment at the end of a year.
type YearlyProjection struct {
	Year             int     `json:"year" yaml:"year"`
	FutureValue      float64 `json:"futureValue" yaml:"futureValue"`
	TotalContributed float64 `json:"totalContributed" yaml:"totalContributed"`
	TotalInterest    float64 `json:"totalInterest" yaml:"totalInterest"`
}

// FutureValue returns the value of principal compounded monthly at
// monthlyRate for months periods plus an ordinary annuity of contribution.
func FutureValue(principal, contribution, monthlyRate float64, months int) float64 {
	n := float64(months)
	growth := math.Pow(1+monthlyRate, n)
	if monthlyRate == 0 || growth == 1 {
		return principal + contribution*n
	}
	return principal*growth + contribution*(growth-1)/monthlyRate
}

// ComputeInvestment calculates the future value of an investment with monthly
// contributions, compounded monthly.
func ComputeInvestment(principal, monthlyContribution, annualInterestRate float64, years int) (InvestmentResult, error) {
	err := validation.All(
		validation.NonNegative("principal", principal),
		validation.NonNegative("monthly contribution", monthlyContribution),
		validation.NonNegative("interest rate", annualInterestRate),
		validation.TermYears("years", years),
	)
	if err != nil {
		return InvestmentResult{}, fmt.Errorf("investment: %w", err)
	}

	months := years * constants.MonthsPerYear
	futureValue := FutureValue(principal, monthlyContribution, mathutil.MonthlyRate(annualInterestRate), months)
	totalContributed := principal + monthlyContribution*float64(months)
	if err := validation.Finite("future value", futureValue, totalContributed, futureValue-totalContributed); err != nil {
		return InvestmentResult{}, fmt.Errorf("investment: %w", err)
	}

	return InvestmentResult{
		Principal:           principal,
		MonthlyContribution: monthlyContribution,
		InterestRate:        annualInterestRate,
		Years:               years,
		FutureValue:         futureValue,
		TotalContributed:    totalContributed,
		TotalInterest:       futureValue - totalContributed,
	}, nil
}

// ProjectInvestment returns the year-end values for the first
// min(years, maxYears) years of an investment.
func ProjectInvestment(principal, monthlyContribution, annualInterestRate float64, years, maxYears int) ([]YearlyProjection, error) {
	horizon := years
	if maxYears > 0 && maxYears < horizon {
		horizon = maxYears
	}

	projections := make([]YearlyProjection, 0, max(horizon, 0))
	for year := 1; year <= horizon; year++ {
		result, err := ComputeInvestment(principal, monthlyContribution, annualInterestRate, year)
		if err != nil {
			return nil, err
		}
		projections = append(projections, YearlyProjection{
			Year:             year,
			FutureValue:      result.FutureValue,
			TotalContributed: result.TotalContributed,
			TotalInterest:    result.TotalInterest,
		})
	}
	return projections, nil
}

// InvestmentReport pairs an investment result with its yearly projections.
type InvestmentReport struct {
	InvestmentResult `yaml:",inline"`
	Projections      []YearlyProjection `json:"projections" yaml:"projections"`
}
