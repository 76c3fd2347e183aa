package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var evalFeature string

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a single feature for a predicate",
	Long:  "Prints true or false; the exit code mirrors the result (0 enabled, 1 disabled) so shell pipelines can branch on it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if evalFeature == "" {
			return fmt.Errorf("a feature name is required: pass --feature")
		}
		if err := requirePredicate(); err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}

		enabled := client.IsFeatureEnabled(evalFeature, predicate)
		fmt.Fprintf(cmd.OutOrStdout(), "%t\n", enabled)
		if !enabled {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	evalCmd.Flags().StringVar(&evalFeature, "feature", "", "feature name to evaluate")
	evalCmd.Flags().StringVar(&predicate, "predicate", "", "predicate string to evaluate against (env ROLLOUT_PREDICATE)")
}
