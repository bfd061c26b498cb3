// Package calculator wires the financial formulas and the expression
// evaluator behind a single logged entry point shared by the CLI and the
// HTTP API.
package calculator

import (
	"fmt"

	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/evaluator"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/loans"
	"github.com/iwvelando/fincalc/pkg/mathutil"
	"go.uber.org/zap"
)

// MortgageRequest holds the mortgage calculator inputs. Rates are annual
// percentages.
type MortgageRequest struct {
	Principal   float64 `json:"principal" yaml:"principal"`
	Rate        float64 `json:"rate" yaml:"rate"`
	TermYears   int     `json:"termYears" yaml:"termYears"`
	PropertyTax float64 `json:"propertyTax" yaml:"propertyTax"`
	Insurance   float64 `json:"insurance" yaml:"insurance"`
}

// LoanRequest holds the loan calculator inputs.
type LoanRequest struct {
	Principal float64 `json:"principal" yaml:"principal"`
	Rate      float64 `json:"rate" yaml:"rate"`
	TermYears int     `json:"termYears" yaml:"termYears"`
}

// InvestmentRequest holds the investment calculator inputs. ProjectionYears
// caps the yearly projections; zero disables them.
type InvestmentRequest struct {
	Principal           float64 `json:"principal" yaml:"principal"`
	MonthlyContribution float64 `json:"monthlyContribution" yaml:"monthlyContribution"`
	Rate                float64 `json:"rate" yaml:"rate"`
	Years               int     `json:"years" yaml:"years"`
	ProjectionYears     int     `json:"projectionYears" yaml:"projectionYears"`
}

// SavingsRequest holds the savings goal inputs.
type SavingsRequest struct {
	TargetAmount        float64 `json:"targetAmount" yaml:"targetAmount"`
	CurrentSavings      float64 `json:"currentSavings" yaml:"currentSavings"`
	MonthlyContribution float64 `json:"monthlyContribution" yaml:"monthlyContribution"`
	Rate                float64 `json:"rate" yaml:"rate"`
}

// Service runs calculations and logs their outcome.
type Service struct {
	logger *zap.Logger
}

// New returns a Service logging to logger.
func New(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// With returns a Service whose log lines carry the given fields.
func (s *Service) With(fields ...zap.Field) *Service {
	return &Service{logger: s.logger.With(fields...)}
}

// report logs err at Warn when it is a calculation error and at Error
// otherwise; nil errors are logged at Debug with the success message.
func (s *Service) report(op, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("op", op))
	switch {
	case err == nil:
		s.logger.Debug(msg, fields...)
	case calcerr.IsCalculation(err):
		s.logger.Warn("calculation rejected",
			append(fields, zap.String("kind", calcerr.Kind(err)), zap.Error(err))...)
	default:
		s.logger.Error("calculation failed", append(fields, zap.Error(err))...)
	}
}

// Mortgage computes a mortgage with its amortization schedule.
func (s *Service) Mortgage(req MortgageRequest) (loans.MortgageResult, error) {
	result, err := loans.ComputeMortgage(req.Principal, req.Rate, req.TermYears, req.PropertyTax, req.Insurance)
	s.report("calculator.Mortgage", "computed mortgage", err,
		zap.Float64("principal", req.Principal),
		zap.Float64("monthlyPayment", result.MonthlyPayment),
	)
	if n := len(result.Schedule); n > 0 && !mathutil.IsZero(result.Schedule[n-1].RemainingBalance) {
		s.logger.Warn("schedule leaves a remaining balance",
			zap.String("op", "calculator.Mortgage"),
			zap.Float64("remainingBalance", result.Schedule[n-1].RemainingBalance),
		)
	}
	return result, err
}

// Loan computes a fixed-rate loan.
func (s *Service) Loan(req LoanRequest) (loans.LoanResult, error) {
	result, err := loans.ComputeLoan(req.Principal, req.Rate, req.TermYears)
	s.report("calculator.Loan", "computed loan", err,
		zap.Float64("principal", req.Principal),
		zap.Float64("monthlyPayment", result.MonthlyPayment),
	)
	return result, err
}

// Investment computes the future value of an investment together with its
// yearly projections.
func (s *Service) Investment(req InvestmentRequest) (finance.InvestmentReport, error) {
	var report finance.InvestmentReport

	result, err := finance.ComputeInvestment(req.Principal, req.MonthlyContribution, req.Rate, req.Years)
	if err == nil && req.ProjectionYears > 0 {
		report.Projections, err = finance.ProjectInvestment(req.Principal, req.MonthlyContribution,
			req.Rate, req.Years, req.ProjectionYears)
	}
	if err == nil {
		report.InvestmentResult = result
	}

	s.report("calculator.Investment", "computed investment", err,
		zap.Int("years", req.Years),
		zap.Float64("futureValue", report.FutureValue),
		zap.Int("projections", len(report.Projections)),
	)
	if err != nil {
		return finance.InvestmentReport{}, err
	}
	if !mathutil.WithinRelativeTolerance(report.FutureValue, report.TotalContributed+report.TotalInterest, constants.RelativeTolerance) {
		s.logger.Warn("future value does not reconcile with contributions and interest",
			zap.String("op", "calculator.Investment"),
			zap.Float64("futureValue", report.FutureValue),
		)
	}
	return report, nil
}

// SavingsGoal computes the time needed to reach a savings target.
func (s *Service) SavingsGoal(req SavingsRequest) (finance.SavingsGoalResult, error) {
	result, err := finance.ComputeSavingsGoal(req.TargetAmount, req.CurrentSavings, req.MonthlyContribution, req.Rate)
	s.report("calculator.SavingsGoal", "computed savings goal", err,
		zap.Float64("targetAmount", req.TargetAmount),
		zap.Float64("timeToTarget", result.TimeToTarget),
	)
	reached := result.TotalContributed() + result.TotalInterest
	if err == nil && result.TimeToTarget > 0 && !mathutil.WithinTolerance(reached, req.TargetAmount, constants.CurrencyTolerance) {
		s.logger.Warn("savings goal does not reconcile with its target",
			zap.String("op", "calculator.SavingsGoal"),
			zap.Float64("reached", reached),
		)
	}
	return result, err
}

// Evaluate parses tokens into calculator actions and applies them to state.
// On failure the returned state is the last one reached before the failing
// action.
func (s *Service) Evaluate(state evaluator.State, tokens []string) (evaluator.State, error) {
	actions, err := evaluator.ParseActions(tokens)
	if err != nil {
		s.report("calculator.Evaluate", "", err, zap.Strings("tokens", tokens))
		return state, fmt.Errorf("evaluate: %w", err)
	}

	next, err := evaluator.Run(state, actions...)
	s.report("calculator.Evaluate", "evaluated expression", err,
		zap.Int("actions", len(actions)),
		zap.String("display", next.Display),
	)
	if err != nil {
		return next, fmt.Errorf("evaluate: %w", err)
	}
	return next, nil
}
