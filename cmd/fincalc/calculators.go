package main

import (
	"github.com/iwvelando/fincalc/internal/calculator"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// floatDefault returns the flag value when it was set on the command line
// and fallback from the configuration otherwise.
func floatDefault(flags *pflag.FlagSet, name string, value, fallback float64) float64 {
	if flags.Changed(name) {
		return value
	}
	return fallback
}

func intDefault(flags *pflag.FlagSet, name string, value, fallback int) int {
	if flags.Changed(name) {
		return value
	}
	return fallback
}

func (a *app) mortgageCommand() *cobra.Command {
	var req calculator.MortgageRequest

	cmd := &cobra.Command{
		Use:   "mortgage",
		Short: "Monthly payment, totals and amortization schedule of a mortgage",
		Example: `  fincalc mortgage --principal 300000 --rate 4.5 --term 30
  fincalc mortgage --principal 175000 --rate 4.5 --term 15 --output-format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := a.conf.Defaults.Mortgage
			f := cmd.Flags()
			result, err := a.service.Mortgage(calculator.MortgageRequest{
				Principal:   floatDefault(f, "principal", req.Principal, d.Principal),
				Rate:        floatDefault(f, "rate", req.Rate, d.Rate),
				TermYears:   intDefault(f, "term", req.TermYears, d.TermYears),
				PropertyTax: floatDefault(f, "property-tax", req.PropertyTax, d.PropertyTax),
				Insurance:   floatDefault(f, "insurance", req.Insurance, d.Insurance),
			})
			if err != nil {
				return err
			}
			return a.write(result)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&req.Principal, "principal", constants.DefaultMortgagePrincipal, "loan amount")
	f.Float64Var(&req.Rate, "rate", constants.DefaultMortgageRate, "annual interest rate in percent")
	f.IntVar(&req.TermYears, "term", constants.DefaultMortgageTermYears, "term in years")
	f.Float64Var(&req.PropertyTax, "property-tax", constants.DefaultMortgagePropertyTax, "annual property tax")
	f.Float64Var(&req.Insurance, "insurance", constants.DefaultMortgageInsurance, "annual homeowner's insurance")
	return cmd
}

func (a *app) loanCommand() *cobra.Command {
	var req calculator.LoanRequest

	cmd := &cobra.Command{
		Use:     "loan",
		Short:   "Monthly payment and totals of a fixed-rate loan",
		Example: `  fincalc loan --principal 25000 --rate 7.5 --term 5`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := a.conf.Defaults.Loan
			f := cmd.Flags()
			result, err := a.service.Loan(calculator.LoanRequest{
				Principal: floatDefault(f, "principal", req.Principal, d.Principal),
				Rate:      floatDefault(f, "rate", req.Rate, d.Rate),
				TermYears: intDefault(f, "term", req.TermYears, d.TermYears),
			})
			if err != nil {
				return err
			}
			return a.write(result)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&req.Principal, "principal", constants.DefaultLoanPrincipal, "loan amount")
	f.Float64Var(&req.Rate, "rate", constants.DefaultLoanRate, "annual interest rate in percent")
	f.IntVar(&req.TermYears, "term", constants.DefaultLoanTermYears, "term in years")
	return cmd
}

func (a *app) investmentCommand() *cobra.Command {
	var req calculator.InvestmentRequest

	cmd := &cobra.Command{
		Use:     "investment",
		Short:   "Future value of an investment with monthly contributions",
		Example: `  fincalc investment --principal 10000 --contribution 500 --rate 8 --years 20`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := a.conf.Defaults.Investment
			f := cmd.Flags()
			result, err := a.service.Investment(calculator.InvestmentRequest{
				Principal:           floatDefault(f, "principal", req.Principal, d.Principal),
				MonthlyContribution: floatDefault(f, "contribution", req.MonthlyContribution, d.MonthlyContribution),
				Rate:                floatDefault(f, "rate", req.Rate, d.Rate),
				Years:               intDefault(f, "years", req.Years, d.Years),
				ProjectionYears:     intDefault(f, "projection-years", req.ProjectionYears, a.conf.Output.ProjectionYears),
			})
			if err != nil {
				return err
			}
			return a.write(result)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&req.Principal, "principal", constants.DefaultInvestmentPrincipal, "initial investment")
	f.Float64Var(&req.MonthlyContribution, "contribution", constants.DefaultInvestmentContribution, "monthly contribution")
	f.Float64Var(&req.Rate, "rate", constants.DefaultInvestmentRate, "annual return in percent")
	f.IntVar(&req.Years, "years", constants.DefaultInvestmentYears, "investment horizon in years")
	f.IntVar(&req.ProjectionYears, "projection-years", constants.DefaultProjectionYears, "number of yearly projections to report, 0 for none")
	return cmd
}

func (a *app) savingsCommand() *cobra.Command {
	var req calculator.SavingsRequest

	cmd := &cobra.Command{
		Use:     "savings",
		Short:   "Time needed to reach a savings goal",
		Example: `  fincalc savings --target 50000 --current 10000 --contribution 500 --rate 4`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := a.conf.Defaults.Savings
			f := cmd.Flags()
			result, err := a.service.SavingsGoal(calculator.SavingsRequest{
				TargetAmount:        floatDefault(f, "target", req.TargetAmount, d.TargetAmount),
				CurrentSavings:      floatDefault(f, "current", req.CurrentSavings, d.CurrentSavings),
				MonthlyContribution: floatDefault(f, "contribution", req.MonthlyContribution, d.MonthlyContribution),
				Rate:                floatDefault(f, "rate", req.Rate, d.Rate),
			})
			if err != nil {
				return err
			}
			return a.write(result)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&req.TargetAmount, "target", constants.DefaultSavingsTarget, "savings target")
	f.Float64Var(&req.CurrentSavings, "current", constants.DefaultSavingsCurrent, "current savings")
	f.Float64Var(&req.MonthlyContribution, "contribution", constants.DefaultSavingsContribution, "monthly contribution")
	f.Float64Var(&req.Rate, "rate", constants.DefaultSavingsRate, "annual interest rate in percent")
	return cmd
}
