package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rolloutgate/go-rollout-sdk/outputs"
)

var (
	batchOutDir   string
	batchFormat   string
	batchBasename string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate every feature for a predicate and emit the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requirePredicate(); err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}

		batch, err := client.AllFeatures(predicate)
		if err != nil {
			return err
		}

		dir := batchOutDir
		if dir == "" {
			dir = defaults.OutputDir
		}
		if dir != "" {
			if err := outputs.WriteFiles(dir, batchBasename, batch, client.Config()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s.{json,tsv,env} to %s\n", batchBasename, dir)
			return nil
		}

		switch batchFormat {
		case "json":
			return outputs.WriteJSON(cmd.OutOrStdout(), batch)
		case "tsv":
			return outputs.WriteTSV(cmd.OutOrStdout(), batch)
		case "env":
			return outputs.WriteEnvFile(cmd.OutOrStdout(), batch, client.Config())
		default:
			return fmt.Errorf("unknown format %q: want json, tsv or env", batchFormat)
		}
	},
}

func init() {
	batchCmd.Flags().StringVar(&predicate, "predicate", "", "predicate string to evaluate against (env ROLLOUT_PREDICATE)")
	batchCmd.Flags().StringVar(&batchOutDir, "out", "", "directory to write the result files into (env ROLLOUT_OUTPUT_DIR)")
	batchCmd.Flags().StringVar(&batchFormat, "format", "json", "stdout format when --out is not set: json, tsv or env")
	batchCmd.Flags().StringVar(&batchBasename, "basename", "features", "basename of the generated files")
}
