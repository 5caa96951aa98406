// Command admctl is the admin console: it authenticates a caller, gates the
// user/product/report resources by role, and keeps all state in local storage
// so it survives restarts without a backing server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/and161185/admin-console/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// newLogger builds a stderr logger so command output on stdout stays clean.
func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("bad log level %q: %w", level, err)
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "admctl",
		Short:         "Local admin console",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newVersionCmd(),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newSignupCmd(a),
		newUsersCmd(a),
		newProductsCmd(a),
		newReportCmd(a),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "admctl %s (%s)\n", version, buildDate)
		},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	a, err := newApp(cfg, logger)
	if err != nil {
		logger.Error("startup", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer a.close()

	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}
