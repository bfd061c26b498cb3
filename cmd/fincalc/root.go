package main

import (
	"io"

	"github.com/iwvelando/fincalc/internal/calculator"
	"github.com/iwvelando/fincalc/internal/config"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/output"
	"github.com/iwvelando/fincalc/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by all subcommands once the persistent
// pre-run has loaded configuration and logging.
type app struct {
	out io.Writer

	configPath     string
	outputFormat   string
	logLevel       string
	configRequired bool

	conf    *config.Configuration
	logger  *zap.Logger
	service *calculator.Service
}

func newRootCommand(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:   "fincalc",
		Short: "Financial calculators and a chained four-function calculator",
		Long: `fincalc computes mortgage and loan payments with amortization schedules,
the future value of investments with monthly contributions and the time
needed to reach a savings goal. It also evaluates calculator key sequences
and can serve all calculators as a JSON HTTP API.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	flags.StringVar(&a.outputFormat, "output-format", "", "type of output override: pretty, csv, json, yaml")
	flags.StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		a.mortgageCommand(),
		a.loanCommand(),
		a.investmentCommand(),
		a.savingsCommand(),
		a.calcCommand(),
		a.serveCommand(),
	)
	return root
}

// setup loads the configuration, builds the logger and settles the output
// format. A missing config file is only an error when --config was given.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.configRequired = cmd.Flags().Changed("config")

	conf, err := config.LoadConfiguration(a.configPath, !a.configRequired)
	if err != nil {
		return err
	}
	a.conf = conf

	logger, err := initializeLogger(conf.Logging, a.logLevel)
	if err != nil {
		return err
	}
	a.logger = logger
	a.service = calculator.New(logger)

	if a.outputFormat == "" {
		a.outputFormat = conf.Output.Format
	}
	if a.outputFormat == "" {
		a.outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(a.outputFormat); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.setup"),
		)
	}
	return nil
}

func (a *app) write(result interface{}) error {
	return output.Write(a.out, a.outputFormat, result, output.Options{
		ScheduleRows: a.conf.Output.ScheduleRows,
	})
}
