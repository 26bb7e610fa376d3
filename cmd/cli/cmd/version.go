package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"notary-pricing/core/engine"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the engine version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "notary-pricing "+engine.Version)
	},
}
