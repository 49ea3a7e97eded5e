package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fnbench/fnbench/internal/config"
	"github.com/fnbench/fnbench/internal/logging"
)

var (
	cfgFile      string
	outputFormat string

	cfg    *config.Config
	logger *logging.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fnbench",
	Short: "Function and command benchmarking toolkit",
	Long: `fnbench times function and command executions the timeit way: pick a loop
count automatically, repeat the measurement, and report the best per-loop
time in a sensible unit. It also ships the conformance suite for its own
timing-result type.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fnbench/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "table", "output format: table or json")
}

// initConfig loads configuration and sets up logging
func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger = logging.NewLogger(logging.ParseLevel(cfg.LogLevel), false)
}

// IsJSONOutput returns true if JSON output is requested
func IsJSONOutput() bool {
	return outputFormat == "json"
}
