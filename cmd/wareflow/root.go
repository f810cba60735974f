package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/wareflow/config"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg *config.Config
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wareflow",
		Short: "wareflow - balance ware and worker economies on a road network",
		Long: `wareflow runs scenario files through the economy balancer and reports
what was routed where.

Examples:
  wareflow run scenario.yaml
  wareflow run scenario.yaml --until 5000 --metrics-out metrics.txt
  wareflow digest sync.zst
  wareflow runs
  wareflow stress --rows 20 --cols 20 --requests 200`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if verbose {
				loaded.Logging.Level = "debug"
			}
			cfg = loaded

			return nil
		},
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default ./wareflow.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewDigestCommand())
	rootCmd.AddCommand(NewRunsCommand())
	rootCmd.AddCommand(NewStressCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
