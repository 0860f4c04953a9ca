// Package cli implements the cloudsaver command line: offline analysis and
// report generation over local billing exports, and the HTTP server.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/cloudsaver/internal/config"
	"github.com/JonMunkholm/cloudsaver/internal/core"
	"github.com/JonMunkholm/cloudsaver/internal/logging"
)

// app carries state shared by subcommands once the root has loaded it.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	logLevel string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "cloudsaver",
		Short: "Find cost savings in cloud billing exports",
		Long: `cloudsaver analyzes AWS, Azure and Google Cloud billing CSV exports,
suggests savings (downsizing, idle storage cleanup, archive tiers,
reserved pricing) and renders the results as CSV or PDF reports.

Settings are read from the environment and an optional .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from LOG_LEVEL)")

	root.AddCommand(newAnalyzeCmd(a))
	root.AddCommand(newReportCmd(a))
	root.AddCommand(newServeCmd(a))
	return root
}

// load reads .env and the environment. Logs go to stderr so command output
// on stdout stays machine readable.
func (a *app) load() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}

	a.cfg = cfg
	a.logger = logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format).With("service", "cloudsaver")
	slog.SetDefault(a.logger)
	return nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorText(err))
		os.Exit(1)
	}
}

// errorText adds the support code and suggested action to errors the user
// can act on. Flag and argument errors are printed as cobra reports them.
func errorText(err error) string {
	if !core.IsUserFacing(err) {
		return "Error: " + err.Error()
	}
	return fmt.Sprintf("Error: %v\n%s", err, core.FormatUserError(err))
}
