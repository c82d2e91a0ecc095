package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/reactive"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reactivebench",
		Short: "Exercise the reactive engine",
		Long: `reactivebench runs synthetic workloads against the reactive engine
and a small demo on the event loop.

The runtime is configured from the environment:

  REACTIVE_LOG_LEVEL     debug, info, warn or error (default info)
  REACTIVE_SETTLE_LIMIT  flush rounds before Settle gives up (default 100)
  REACTIVE_DEBUG         log every flush (default false)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configure()
		},
	}

	rootCmd.AddCommand(
		benchCmd(),
		demoCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// runtimeOptions holds the options loaded from the environment,
// for runtimes living on other goroutines.
var runtimeOptions []reactive.Option

func configure() error {
	cfg, err := reactive.LoadConfig()
	if err != nil {
		return err
	}

	opts, err := cfg.Options(os.Stderr)
	if err != nil {
		return err
	}

	runtimeOptions = opts
	reactive.Configure(opts...)
	return nil
}
