// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/evaluator"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/format"
	"github.com/iwvelando/fincalc/pkg/loans"
	"github.com/iwvelando/fincalc/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// DefaultScheduleRows is the number of amortization rows shown in pretty output.
const DefaultScheduleRows = 12

// Options tunes the rendering of results.
type Options struct {
	// ScheduleRows limits the amortization rows in pretty output; zero uses
	// DefaultScheduleRows and a negative value shows the full schedule.
	ScheduleRows int
}

// Write renders result in the requested format. Supported results are the
// engine result records, finance.InvestmentReport and evaluator.State.
func Write(w io.Writer, outputFormat string, result interface{}, opts Options) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, result, opts)
	case constants.OutputFormatCSV:
		return CsvFormat(w, result)
	case constants.OutputFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case constants.OutputFormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(result); err != nil {
			return err
		}
		return encoder.Close()
	}
	return fmt.Errorf("unsupported output format %q", outputFormat)
}

// PrettyFormat outputs a human-readable rather than machine-readable summary.
func PrettyFormat(w io.Writer, result interface{}, opts Options) error {
	p := message.NewPrinter(language.English)

	switch r := result.(type) {
	case loans.MortgageResult:
		_, _ = fmt.Fprintf(w, "--- Mortgage ---\n")
		_, _ = fmt.Fprintf(w, "Principal          | %s\n", format.Currency(r.Principal))
		_, _ = fmt.Fprintf(w, "Interest rate      | %s\n", format.Percentage(r.InterestRate))
		_, _ = fmt.Fprintf(w, "Term               | %d years\n", r.TermYears)
		_, _ = fmt.Fprintf(w, "Monthly payment    | %s\n", format.Currency(r.MonthlyPayment))
		_, _ = fmt.Fprintf(w, "  principal+int.   | %s\n", format.Currency(r.LoanOnlyPayment()))
		_, _ = fmt.Fprintf(w, "  tax+insurance    | %s\n", format.Currency((r.AnnualPropertyTax+r.AnnualInsurance)/constants.MonthsPerYear))
		_, _ = fmt.Fprintf(w, "Total interest     | %s\n", format.Currency(r.TotalInterest))
		_, _ = fmt.Fprintf(w, "Total payment      | %s\n", format.Currency(r.TotalPayment))
		writePrettySchedule(w, p, r.Schedule, opts.ScheduleRows)
	case loans.LoanResult:
		_, _ = fmt.Fprintf(w, "--- Loan ---\n")
		_, _ = fmt.Fprintf(w, "Principal          | %s\n", format.Currency(r.Principal))
		_, _ = fmt.Fprintf(w, "Interest rate      | %s\n", format.Percentage(r.InterestRate))
		_, _ = fmt.Fprintf(w, "Term               | %d years\n", r.TermYears)
		_, _ = fmt.Fprintf(w, "Monthly payment    | %s\n", format.Currency(r.MonthlyPayment))
		_, _ = fmt.Fprintf(w, "Total interest     | %s\n", format.Currency(r.TotalInterest))
		_, _ = fmt.Fprintf(w, "Total payment      | %s\n", format.Currency(r.TotalPayment))
	case finance.InvestmentReport:
		if err := PrettyFormat(w, r.InvestmentResult, opts); err != nil {
			return err
		}
		if len(r.Projections) > 0 {
			_, _ = fmt.Fprintf(w, "\nYear | Value         | Contributed   | Interest\n")
			_, _ = fmt.Fprintf(w, "____ | _____________ | _____________ | ________\n")
			for _, row := range r.Projections {
				_, _ = p.Fprintf(w, "%4d | $%.2f | $%.2f | $%.2f\n",
					row.Year, row.FutureValue, row.TotalContributed, row.TotalInterest)
			}
		}
	case finance.InvestmentResult:
		_, _ = fmt.Fprintf(w, "--- Investment ---\n")
		_, _ = fmt.Fprintf(w, "Initial investment | %s\n", format.Currency(r.Principal))
		_, _ = fmt.Fprintf(w, "Monthly contrib.   | %s\n", format.Currency(r.MonthlyContribution))
		_, _ = fmt.Fprintf(w, "Annual return      | %s\n", format.Percentage(r.InterestRate))
		_, _ = fmt.Fprintf(w, "Years              | %d\n", r.Years)
		_, _ = fmt.Fprintf(w, "Future value       | %s\n", format.Currency(r.FutureValue))
		_, _ = fmt.Fprintf(w, "Total contributed  | %s\n", format.Currency(r.TotalContributed))
		_, _ = fmt.Fprintf(w, "Total interest     | %s\n", format.Currency(r.TotalInterest))
		_, _ = fmt.Fprintf(w, "Interest share     | %s\n",
			format.Percentage(mathutil.CalculatePercentage(r.TotalInterest, r.FutureValue)))
	case finance.SavingsGoalResult:
		_, _ = fmt.Fprintf(w, "--- Savings goal ---\n")
		_, _ = fmt.Fprintf(w, "Target amount      | %s\n", format.Currency(r.TargetAmount))
		_, _ = fmt.Fprintf(w, "Current savings    | %s\n", format.Currency(r.CurrentSavings))
		_, _ = fmt.Fprintf(w, "Monthly contrib.   | %s\n", format.Currency(r.MonthlyContribution))
		_, _ = fmt.Fprintf(w, "Annual rate        | %s\n", format.Percentage(r.InterestRate))
		_, _ = fmt.Fprintf(w, "Time to target     | %s\n", format.Years(r.TimeToTarget))
		_, _ = fmt.Fprintf(w, "Total contributed  | %s\n", format.Currency(r.TotalContributed()))
		_, _ = fmt.Fprintf(w, "Total interest     | %s\n", format.Currency(r.TotalInterest))
	case evaluator.State:
		_, _ = fmt.Fprintf(w, "%s\n", r.Display)
	default:
		return fmt.Errorf("cannot format result of type %T", result)
	}
	return nil
}

func writePrettySchedule(w io.Writer, p *message.Printer, schedule []loans.AmortizationRow, rows int) {
	if rows == 0 {
		rows = DefaultScheduleRows
	}
	if rows < 0 || rows > len(schedule) {
		rows = len(schedule)
	}
	if rows == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "\nPayment | Principal   | Interest    | Balance\n")
	_, _ = fmt.Fprintf(w, "_______ | ___________ | ___________ | _______\n")
	for _, row := range schedule[:rows] {
		_, _ = p.Fprintf(w, "%7d | $%.2f | $%.2f | $%.2f\n",
			row.PaymentNumber, row.Principal, row.Interest, row.RemainingBalance)
	}
	if rows < len(schedule) {
		_, _ = fmt.Fprintf(w, "... %d more payments\n", len(schedule)-rows)
	}
}

// CsvFormat outputs in comma-separated value format. Mortgages produce their
// amortization schedule and investment reports their yearly projections;
// other results produce field,value rows.
func CsvFormat(w io.Writer, result interface{}) error {
	writer := csv.NewWriter(w)

	var records [][]string
	switch r := result.(type) {
	case loans.MortgageResult:
		records = append(records, []string{"payment", "amount", "principal", "interest", "remaining balance"})
		for _, row := range r.Schedule {
			records = append(records, []string{
				strconv.Itoa(row.PaymentNumber),
				money(row.Payment),
				money(row.Principal),
				money(row.Interest),
				money(row.RemainingBalance),
			})
		}
	case loans.LoanResult:
		records = fieldRecords(
			"principal", money(r.Principal),
			"interest rate", rate(r.InterestRate),
			"term years", strconv.Itoa(r.TermYears),
			"monthly payment", money(r.MonthlyPayment),
			"total interest", money(r.TotalInterest),
			"total payment", money(r.TotalPayment),
		)
	case finance.InvestmentReport:
		records = append(records, []string{"year", "future value", "total contributed", "total interest"})
		for _, row := range r.Projections {
			records = append(records, []string{
				strconv.Itoa(row.Year),
				money(row.FutureValue),
				money(row.TotalContributed),
				money(row.TotalInterest),
			})
		}
	case finance.InvestmentResult:
		records = fieldRecords(
			"principal", money(r.Principal),
			"monthly contribution", money(r.MonthlyContribution),
			"interest rate", rate(r.InterestRate),
			"years", strconv.Itoa(r.Years),
			"future value", money(r.FutureValue),
			"total contributed", money(r.TotalContributed),
			"total interest", money(r.TotalInterest),
		)
	case finance.SavingsGoalResult:
		records = fieldRecords(
			"target amount", money(r.TargetAmount),
			"current savings", money(r.CurrentSavings),
			"monthly contribution", money(r.MonthlyContribution),
			"interest rate", rate(r.InterestRate),
			"time to target years", strconv.FormatFloat(r.TimeToTarget, 'f', 4, 64),
			"total interest", money(r.TotalInterest),
		)
	case evaluator.State:
		records = fieldRecords("display", r.Display)
	default:
		return fmt.Errorf("cannot format result of type %T", result)
	}

	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func fieldRecords(pairs ...string) [][]string {
	records := [][]string{{"field", "value"}}
	for i := 0; i+1 < len(pairs); i += 2 {
		records = append(records, []string{pairs[i], pairs[i+1]})
	}
	return records
}

// rate keeps every significant digit of a percentage rate.
func rate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func money(v float64) string {
	return strconv.FormatFloat(mathutil.Round(v), 'f', 2, 64)
}
