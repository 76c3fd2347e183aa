package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a rollout configuration, including stage references",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		config := client.Config()
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d stages, %d features\n", len(config.Stages), len(config.Features))
		return nil
	},
}
