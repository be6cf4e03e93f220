package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"money-calculator/config"
)

var (
	logLevel  string
	logFormat string
	appCtx    *app
)

// Execute runs the command line until it finishes or the process is interrupted
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "moneycalc",
		Short:        "Convert money between currencies at today's exchange rate",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if logFormat != "" {
				cfg.LogFormat = logFormat
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)
			appCtx = newApp(cfg, logger)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (default LOG_LEVEL or info)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "logfmt or json (default LOG_FORMAT or logfmt)")

	root.AddCommand(currenciesCmd(), convertCmd(), serveCmd())
	return root
}
