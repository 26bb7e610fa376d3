// Package cmd provides the CLI commands for notary-pricing.
package cmd

import (
	"github.com/spf13/cobra"

	"notary-pricing/internal/logging"
)

var verbose bool

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "notary-pricing",
	Short: "Quote mobile-notary appointments",
	Long: `notary-pricing computes transparent quotes for mobile-notary
appointments: base rates, travel overage fees, scheduling surcharges,
stacked discounts, and upsell suggestions.

Examples:
  notary-pricing quote --service STANDARD_NOTARY --when 2026-09-12T14:00:00Z
  notary-pricing quote --service LOAN_SIGNING --docs 12 --address "123 Main St, Houston, TX 77002"
  notary-pricing rates`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(versionCmd)
}

func initLogging() {
	cfg := logging.DefaultConfig()
	if verbose {
		cfg.Level = "debug"
	} else {
		cfg.Level = "warn"
	}
	_ = logging.Initialize(cfg)
}
