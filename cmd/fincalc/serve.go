package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/fincalc/internal/config"
	"github.com/iwvelando/fincalc/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) serveCommand() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators as a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig(a.conf.Server.ConfigFile)
			if err != nil {
				return err
			}
			if a.conf.Server.Address != "" {
				cfg.Address = a.conf.Server.Address
			}
			if address != "" {
				cfg.Address = address
			}

			logger := a.logger
			// The server file may carry its own logging section.
			if cfg.Logging != (config.LoggingConfig{}) {
				logger, err = initializeLogger(cfg.Logging, a.logLevel)
				if err != nil {
					return err
				}
				defer func() {
					_ = logger.Sync()
				}()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = server.Run(ctx, cfg, logger, version)
			if err != nil {
				logger.Error("calculator API stopped",
					zap.String("op", "main.serve"),
					zap.Error(err),
				)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "listen address override, e.g. :8080")
	return cmd
}
