package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/contexlog/internal/demo"
	"github.com/oshokin/contexlog/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// requests overrides the configured number of simulated requests.
	requests int

	// rootCmd represents the base command running the demo workload.
	rootCmd = &cobra.Command{
		Use:   "contexlog-demo",
		Short: "Run a concurrent logging demo with per-request context.",
		Long: `Runs a burst of simulated requests, each in its own goroutine with its own
log context, and prints the resulting log lines. Use it to check that request
fields never leak between concurrent goroutines and to preview the output
format and colors on a real terminal.

The log level comes from the LOG_LEVEL environment variable unless the
configuration file overrides it.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &demo.Options{
				ConfigPath: configPath,
				Requests:   requests,
			}

			return demo.Run(ctx, options)
		},
	}
)

// Execute runs the contexlog-demo CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file (built-in defaults when omitted)")
	rootCmd.Flags().IntVarP(&requests, "requests", "n", 0, "number of simulated requests (overrides configuration)")
}
