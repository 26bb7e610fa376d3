package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"notary-pricing/core/rates"
)

var ratesFile string

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Print the service rate table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		table := rates.Default()
		if ratesFile != "" {
			var err error
			if table, err = rates.LoadFile(ratesFile); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-22s %10s %8s %9s %6s %10s\n",
			"SERVICE", "BASE", "RADIUS", "PER MILE", "DOCS", "EXTRA DOC")
		for _, r := range table.All() {
			fmt.Fprintf(out, "%-22s %10s %6.0fmi %9s %6d %10s\n",
				r.ServiceType,
				"$"+r.BasePrice.StringFixed(2),
				r.IncludedRadiusMiles,
				"$"+r.FeePerExcessMile.StringFixed(2),
				r.MaxDocuments,
				"$"+r.ExtraDocumentFee.StringFixed(2))
		}
		return nil
	},
}

func init() {
	ratesCmd.Flags().StringVar(&ratesFile, "rates", "", "HCL rate file overriding the built-in table")
}
