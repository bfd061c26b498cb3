package finance

import (
	"fmt"
	"math"

	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/mathutil"
	"github.com/iwvelando/fincalc/pkg/validation"
)

// SavingsGoalResult holds the time needed to grow current savings to a target.
type SavingsGoalResult struct {
	TargetAmount        float64 `json:"targetAmount" yaml:"targetAmount"`
	CurrentSavings      float64 `json:"currentSavings" yaml:"currentSavings"`
	MonthlyContribution float64 `json:"monthlyContribution" yaml:"monthlyContribution"`
	InterestRate        float64 `json:"interestRate" yaml:"interestRate"`
	TimeToTarget        float64 `json:"timeToTarget" yaml:"timeToTarget"` // years
	TotalInterest       float64 `json:"totalInterest" yaml:"totalInterest"`
}

// MonthsToTarget returns TimeToTarget expressed in months.
func (s SavingsGoalResult) MonthsToTarget() float64 {
	return s.TimeToTarget * constants.MonthsPerYear
}

// TotalContributed returns the savings plus the contributions made until the
// target is reached.
func (s SavingsGoalResult) TotalContributed() float64 {
	return s.CurrentSavings + s.MonthlyContribution*s.MonthsToTarget()
}

// ComputeSavingsGoal calculates how long it takes to reach targetAmount from
// currentSavings with a monthly contribution, compounded monthly.
//
// A target at or below the current savings is already met and reports zero
// time. Without contributions the savings must be positive and earn interest.
func ComputeSavingsGoal(targetAmount, currentSavings, monthlyContribution, annualInterestRate float64) (SavingsGoalResult, error) {
	err := validation.All(
		validation.NonNegative("target amount", targetAmount),
		validation.NonNegative("current savings", currentSavings),
		validation.NonNegative("monthly contribution", monthlyContribution),
		validation.NonNegative("interest rate", annualInterestRate),
	)
	if err != nil {
		return SavingsGoalResult{}, fmt.Errorf("savings goal: %w", err)
	}

	result := SavingsGoalResult{
		TargetAmount:        targetAmount,
		CurrentSavings:      currentSavings,
		MonthlyContribution: monthlyContribution,
		InterestRate:        annualInterestRate,
	}
	if targetAmount <= currentSavings {
		return result, nil
	}

	months, err := monthsToTarget(targetAmount, currentSavings, monthlyContribution, mathutil.MonthlyRate(annualInterestRate))
	if err != nil {
		return SavingsGoalResult{}, fmt.Errorf("savings goal: %w", err)
	}

	result.TimeToTarget = months / constants.MonthsPerYear
	if monthlyContribution == 0 {
		result.TotalInterest = targetAmount - currentSavings
	} else {
		result.TotalInterest = targetAmount - (currentSavings + monthlyContribution*months)
	}
	if err := validation.Finite("total interest", result.TotalInterest); err != nil {
		return SavingsGoalResult{}, fmt.Errorf("savings goal: %w", err)
	}
	return result, nil
}

// monthsToTarget solves for the number of months needed; target > current.
func monthsToTarget(target, current, contribution, monthlyRate float64) (float64, error) {
	var months float64
	switch {
	case contribution == 0:
		if current <= 0 {
			return 0, fmt.Errorf("%w: current savings must be positive without a monthly contribution", calcerr.ErrInvalidInput)
		}
		if monthlyRate == 0 {
			return 0, fmt.Errorf("%w: savings do not grow without contributions or interest", calcerr.ErrUnreachable)
		}
		months = math.Log(target/current) / math.Log1p(monthlyRate)
	case monthlyRate == 0:
		months = (target - current) / contribution
	default:
		arg := (contribution + (target-current)*monthlyRate) / (contribution + current*monthlyRate)
		if !(arg > 0) || !mathutil.IsFinite(arg) {
			return 0, fmt.Errorf("%w: contribution and rate cannot reach %.2f", calcerr.ErrUnreachable, target)
		}
		if arg == 1 {
			months = (target - current) / contribution
		} else {
			months = math.Log(arg) / math.Log1p(monthlyRate)
		}
	}

	if !mathutil.IsFinite(months) || months < 0 {
		return 0, fmt.Errorf("%w: no finite time reaches %.2f", calcerr.ErrUnreachable, target)
	}
	return months, nil
}
