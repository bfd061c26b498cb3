// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for fincalc.
type Configuration struct {
	Logging  LoggingConfig `yaml:"logging,omitempty"`
	Output   OutputConfig  `yaml:"output,omitempty"`
	Server   ServerConfig  `yaml:"server,omitempty"`
	Defaults Defaults      `yaml:"defaults,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format          string `yaml:"format,omitempty"`          // pretty, csv, json, yaml
	ScheduleRows    int    `yaml:"scheduleRows,omitempty"`    // amortization rows in pretty output, -1 for all
	ProjectionYears int    `yaml:"projectionYears,omitempty"` // yearly investment projections
}

// ServerConfig points the serve command at its own configuration file. A
// non-empty Address overrides the address from that file.
type ServerConfig struct {
	ConfigFile string `yaml:"configFile,omitempty"`
	Address    string `yaml:"address,omitempty"`
}

// Defaults holds the inputs used when a calculator flag is not given.
type Defaults struct {
	Mortgage   MortgageDefaults   `yaml:"mortgage"`
	Loan       LoanDefaults       `yaml:"loan"`
	Investment InvestmentDefaults `yaml:"investment"`
	Savings    SavingsDefaults    `yaml:"savings"`
}

// MortgageDefaults are the default mortgage inputs.
type MortgageDefaults struct {
	Principal   float64 `yaml:"principal"`
	Rate        float64 `yaml:"rate"`
	TermYears   int     `yaml:"termYears"`
	PropertyTax float64 `yaml:"propertyTax"`
	Insurance   float64 `yaml:"insurance"`
}

// LoanDefaults are the default loan inputs.
type LoanDefaults struct {
	Principal float64 `yaml:"principal"`
	Rate      float64 `yaml:"rate"`
	TermYears int     `yaml:"termYears"`
}

// InvestmentDefaults are the default investment inputs.
type InvestmentDefaults struct {
	Principal           float64 `yaml:"principal"`
	MonthlyContribution float64 `yaml:"monthlyContribution"`
	Rate                float64 `yaml:"rate"`
	Years               int     `yaml:"years"`
}

// SavingsDefaults are the default savings goal inputs.
type SavingsDefaults struct {
	TargetAmount        float64 `yaml:"targetAmount"`
	CurrentSavings      float64 `yaml:"currentSavings"`
	MonthlyContribution float64 `yaml:"monthlyContribution"`
	Rate                float64 `yaml:"rate"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")

	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.scheduleRows", 0)
	v.SetDefault("output.projectionYears", constants.DefaultProjectionYears)

	v.SetDefault("server.configFile", constants.DefaultServerConfigFile)
	v.SetDefault("server.address", "")

	v.SetDefault("defaults.mortgage.principal", constants.DefaultMortgagePrincipal)
	v.SetDefault("defaults.mortgage.rate", constants.DefaultMortgageRate)
	v.SetDefault("defaults.mortgage.termYears", constants.DefaultMortgageTermYears)
	v.SetDefault("defaults.mortgage.propertyTax", constants.DefaultMortgagePropertyTax)
	v.SetDefault("defaults.mortgage.insurance", constants.DefaultMortgageInsurance)

	v.SetDefault("defaults.loan.principal", constants.DefaultLoanPrincipal)
	v.SetDefault("defaults.loan.rate", constants.DefaultLoanRate)
	v.SetDefault("defaults.loan.termYears", constants.DefaultLoanTermYears)

	v.SetDefault("defaults.investment.principal", constants.DefaultInvestmentPrincipal)
	v.SetDefault("defaults.investment.monthlyContribution", constants.DefaultInvestmentContribution)
	v.SetDefault("defaults.investment.rate", constants.DefaultInvestmentRate)
	v.SetDefault("defaults.investment.years", constants.DefaultInvestmentYears)

	v.SetDefault("defaults.savings.targetAmount", constants.DefaultSavingsTarget)
	v.SetDefault("defaults.savings.currentSavings", constants.DefaultSavingsCurrent)
	v.SetDefault("defaults.savings.monthlyContribution", constants.DefaultSavingsContribution)
	v.SetDefault("defaults.savings.rate", constants.DefaultSavingsRate)
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there, layered over built-in defaults and FINCALC_*
// environment variables. When optional is set a missing file is not an
// error and the defaults are returned.
func LoadConfiguration(configPath string, optional bool) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		_, statErr := os.Stat(configPath)
		switch {
		case statErr == nil:
			v.SetConfigFile(configPath)
			v.SetConfigType("yml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file, %s", err)
			}
		case optional && errors.Is(statErr, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("error reading config file, %s", statErr)
		}
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}
	if c.Output.ProjectionYears < 0 {
		warnings = append(warnings, fmt.Sprintf("output.projectionYears must not be negative, got %d", c.Output.ProjectionYears))
	}

	d := c.Defaults
	checks := []error{
		validation.NonNegative("defaults.mortgage.principal", d.Mortgage.Principal),
		validation.NonNegative("defaults.mortgage.rate", d.Mortgage.Rate),
		validation.TermYears("defaults.mortgage.termYears", d.Mortgage.TermYears),
		validation.NonNegative("defaults.mortgage.propertyTax", d.Mortgage.PropertyTax),
		validation.NonNegative("defaults.mortgage.insurance", d.Mortgage.Insurance),
		validation.NonNegative("defaults.loan.principal", d.Loan.Principal),
		validation.NonNegative("defaults.loan.rate", d.Loan.Rate),
		validation.TermYears("defaults.loan.termYears", d.Loan.TermYears),
		validation.NonNegative("defaults.investment.principal", d.Investment.Principal),
		validation.NonNegative("defaults.investment.monthlyContribution", d.Investment.MonthlyContribution),
		validation.NonNegative("defaults.investment.rate", d.Investment.Rate),
		validation.TermYears("defaults.investment.years", d.Investment.Years),
		validation.NonNegative("defaults.savings.targetAmount", d.Savings.TargetAmount),
		validation.NonNegative("defaults.savings.currentSavings", d.Savings.CurrentSavings),
		validation.NonNegative("defaults.savings.monthlyContribution", d.Savings.MonthlyContribution),
		validation.NonNegative("defaults.savings.rate", d.Savings.Rate),
	}
	for _, err := range checks {
		if err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	return warnings
}
