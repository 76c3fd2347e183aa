package main

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	rollout "github.com/rolloutgate/go-rollout-sdk"
)

// cliDefaults are the environment-supplied fallbacks for flags, so CI
// pipelines can configure the tool without repeating arguments.
type cliDefaults struct {
	Config    string `env:"ROLLOUT_CONFIG"`
	Predicate string `env:"ROLLOUT_PREDICATE"`
	OutputDir string `env:"ROLLOUT_OUTPUT_DIR"`
	Sticky    bool   `env:"ROLLOUT_STICKY"`
	Seed      uint32 `env:"ROLLOUT_SEED"`
}

var defaults cliDefaults

var rootCmd = &cobra.Command{
	Use:           "rolloutctl",
	Short:         "Evaluate staged feature rollouts against a predicate",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath string
	predicate  string
	sticky     bool
)

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := env.Parse(&defaults); err != nil {
			return fmt.Errorf("error parsing environment: %w", err)
		}
		if configPath == "" {
			configPath = defaults.Config
		}
		if predicate == "" {
			predicate = defaults.Predicate
		}
		if !rootCmd.PersistentFlags().Changed("sticky") {
			sticky = defaults.Sticky
		}
		return nil
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path or URL of the rollout configuration (env ROLLOUT_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&sticky, "sticky", false, "derive probability draws from the predicate instead of a random source (env ROLLOUT_STICKY)")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(batchCmd)
}

func newClient() (*rollout.Client, error) {
	if configPath == "" {
		return nil, fmt.Errorf("a configuration is required: pass --config or set ROLLOUT_CONFIG")
	}
	options := &rollout.Options{
		Sticky:     sticky,
		StickySeed: defaults.Seed,
	}
	if isURL(configPath) {
		return rollout.NewClientFromURL(configPath, options)
	}
	return rollout.NewClientFromFile(configPath, options)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func requirePredicate() error {
	if predicate == "" {
		return fmt.Errorf("a predicate is required: pass --predicate or set ROLLOUT_PREDICATE")
	}
	return nil
}
