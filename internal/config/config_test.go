package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/fincalc/pkg/constants"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		optional   bool
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Non-existent optional config file",
			configPath: "nonexistent.yaml",
			optional:   true,
		},
		{
			name:       "No config file",
			configPath: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath, tt.optional)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	config, err := LoadConfiguration("", true)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Output.Format != constants.OutputFormatPretty {
		t.Errorf("Output.Format = %q, expected %q", config.Output.Format, constants.OutputFormatPretty)
	}
	if config.Output.ProjectionYears != constants.DefaultProjectionYears {
		t.Errorf("Output.ProjectionYears = %d, expected %d", config.Output.ProjectionYears, constants.DefaultProjectionYears)
	}
	if config.Server.ConfigFile != constants.DefaultServerConfigFile {
		t.Errorf("Server.ConfigFile = %q, expected %q", config.Server.ConfigFile, constants.DefaultServerConfigFile)
	}
	if config.Defaults.Mortgage.Principal != constants.DefaultMortgagePrincipal {
		t.Errorf("Defaults.Mortgage.Principal = %v", config.Defaults.Mortgage.Principal)
	}
	if config.Defaults.Mortgage.TermYears != constants.DefaultMortgageTermYears {
		t.Errorf("Defaults.Mortgage.TermYears = %v", config.Defaults.Mortgage.TermYears)
	}
	if config.Defaults.Loan.Rate != constants.DefaultLoanRate {
		t.Errorf("Defaults.Loan.Rate = %v", config.Defaults.Loan.Rate)
	}
	if config.Defaults.Investment.MonthlyContribution != constants.DefaultInvestmentContribution {
		t.Errorf("Defaults.Investment.MonthlyContribution = %v", config.Defaults.Investment.MonthlyContribution)
	}
	if config.Defaults.Savings.TargetAmount != constants.DefaultSavingsTarget {
		t.Errorf("Defaults.Savings.TargetAmount = %v", config.Defaults.Savings.TargetAmount)
	}

	if warnings := config.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected built-in defaults to validate cleanly, got %v", warnings)
	}
}

func TestLoadConfigurationFile(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: console
output:
  format: json
  scheduleRows: -1
defaults:
  mortgage:
    principal: 175000
    rate: 3.25
    termYears: 15
  savings:
    rate: 2.5
`)

	config, err := LoadConfiguration(path, false)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Logging.Level != "debug" || config.Logging.Format != "console" {
		t.Errorf("unexpected logging config %+v", config.Logging)
	}
	if config.Output.Format != constants.OutputFormatJSON {
		t.Errorf("Output.Format = %q, expected json", config.Output.Format)
	}
	if config.Output.ScheduleRows != -1 {
		t.Errorf("Output.ScheduleRows = %d, expected -1", config.Output.ScheduleRows)
	}
	if config.Defaults.Mortgage.Principal != 175000 || config.Defaults.Mortgage.Rate != 3.25 ||
		config.Defaults.Mortgage.TermYears != 15 {
		t.Errorf("unexpected mortgage defaults %+v", config.Defaults.Mortgage)
	}
	// Keys absent from the file keep their built-in defaults.
	if config.Defaults.Mortgage.PropertyTax != constants.DefaultMortgagePropertyTax {
		t.Errorf("Defaults.Mortgage.PropertyTax = %v", config.Defaults.Mortgage.PropertyTax)
	}
	if config.Defaults.Savings.Rate != 2.5 {
		t.Errorf("Defaults.Savings.Rate = %v", config.Defaults.Savings.Rate)
	}
	if config.Defaults.Savings.CurrentSavings != constants.DefaultSavingsCurrent {
		t.Errorf("Defaults.Savings.CurrentSavings = %v", config.Defaults.Savings.CurrentSavings)
	}
}

func TestLoadConfigurationEnvironment(t *testing.T) {
	t.Setenv("FINCALC_OUTPUT_FORMAT", "yaml")
	t.Setenv("FINCALC_DEFAULTS_LOAN_PRINCIPAL", "12000")

	config, err := LoadConfiguration("", true)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if config.Output.Format != constants.OutputFormatYAML {
		t.Errorf("Output.Format = %q, expected yaml", config.Output.Format)
	}
	if config.Defaults.Loan.Principal != 12000 {
		t.Errorf("Defaults.Loan.Principal = %v, expected 12000", config.Defaults.Loan.Principal)
	}
}

func TestLoadConfigurationMalformed(t *testing.T) {
	path := writeConfig(t, "output: [unterminated\n")
	if _, err := LoadConfiguration(path, false); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidateConfiguration(t *testing.T) {
	valid := func() *Configuration {
		config, err := LoadConfiguration("", true)
		if err != nil {
			t.Fatalf("LoadConfiguration() error = %v", err)
		}
		return config
	}

	tests := []struct {
		name    string
		mutate  func(c *Configuration)
		warning string
	}{
		{
			name:    "unknown output format",
			mutate:  func(c *Configuration) { c.Output.Format = "xml" },
			warning: "got xml",
		},
		{
			name:    "negative projection years",
			mutate:  func(c *Configuration) { c.Output.ProjectionYears = -2 },
			warning: "output.projectionYears",
		},
		{
			name:    "negative mortgage principal",
			mutate:  func(c *Configuration) { c.Defaults.Mortgage.Principal = -1 },
			warning: "defaults.mortgage.principal",
		},
		{
			name:    "zero loan term",
			mutate:  func(c *Configuration) { c.Defaults.Loan.TermYears = 0 },
			warning: "defaults.loan.termYears",
		},
		{
			name:    "excessive investment horizon",
			mutate:  func(c *Configuration) { c.Defaults.Investment.Years = constants.MaxTermYears + 1 },
			warning: "defaults.investment.years",
		},
		{
			name:    "negative savings rate",
			mutate:  func(c *Configuration) { c.Defaults.Savings.Rate = -4 },
			warning: "defaults.savings.rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)
			warnings := config.ValidateConfiguration()
			if len(warnings) != 1 {
				t.Fatalf("expected 1 warning, got %v", warnings)
			}
			if !strings.Contains(warnings[0], tt.warning) {
				t.Errorf("warning %q does not mention %q", warnings[0], tt.warning)
			}
		})
	}
}
