package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"notary-pricing/adapters/cache"
	"notary-pricing/adapters/maps"
	"notary-pricing/core/discount"
	"notary-pricing/core/dynamic"
	"notary-pricing/core/engine"
	"notary-pricing/core/rates"
	"notary-pricing/core/surcharge"
	"notary-pricing/core/travel"
	"notary-pricing/core/types"
	"notary-pricing/internal/logging"
)

var quoteFlags struct {
	service  string
	when     string
	address  string
	docs     int
	signers  int
	email    string
	promo    string
	referral string
	priority bool
	sameDay  bool
	rateFile string
	asJSON   bool
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Compute a quote for an appointment",
	RunE:  runQuote,
}

func init() {
	f := quoteCmd.Flags()
	f.StringVar(&quoteFlags.service, "service", string(types.StandardNotary), "service type")
	f.StringVar(&quoteFlags.when, "when", "", "scheduled time (RFC 3339, required)")
	f.StringVar(&quoteFlags.address, "address", "", "appointment address")
	f.IntVar(&quoteFlags.docs, "docs", 1, "document count")
	f.IntVar(&quoteFlags.signers, "signers", 1, "signer count")
	f.StringVar(&quoteFlags.email, "email", "", "customer email")
	f.StringVar(&quoteFlags.promo, "promo", "", "promo code")
	f.StringVar(&quoteFlags.referral, "referral", "", "referral code")
	f.BoolVar(&quoteFlags.priority, "priority", false, "priority booking")
	f.BoolVar(&quoteFlags.sameDay, "same-day", false, "same-day booking")
	f.StringVar(&quoteFlags.rateFile, "rates", "", "HCL rate file overriding the built-in table")
	f.BoolVar(&quoteFlags.asJSON, "json", false, "emit the full result as JSON")
	_ = quoteCmd.MarkFlagRequired("when")
}

func runQuote(cmd *cobra.Command, _ []string) error {
	scheduledAt, err := time.Parse(time.RFC3339, quoteFlags.when)
	if err != nil {
		return fmt.Errorf("--when must be RFC 3339: %w", err)
	}

	table := rates.Default()
	if quoteFlags.rateFile != "" {
		if table, err = rates.LoadFile(quoteFlags.rateFile); err != nil {
			return err
		}
	}

	log := logging.Logger
	store := cache.NewMemory()

	// Live distance lookups only when a key is present; otherwise the
	// travel calculator degrades to its documented fallback.
	var provider travel.DistanceProvider
	if key := os.Getenv("GOOGLE_MAPS_API_KEY"); key != "" {
		origin := os.Getenv("BASE_LOCATION")
		if origin == "" {
			origin = "Texas City, TX 77591"
		}
		if provider, err = maps.NewProvider(key, origin, log); err != nil {
			return err
		}
	}

	eng := engine.New(engine.Config{
		Rates:      table,
		Travel:     travel.NewCalculator(table, provider, log),
		Discounts:  discount.NewCalculator(discount.DefaultAmounts(), table, store, log),
		Surcharges: surcharge.DefaultSchedule(),
		Adjuster:   dynamic.NewAdjuster(store, nil, dynamic.DefaultZones(), log),
		Cache:      store,
		Logger:     log,
	})

	req := types.QuoteRequest{
		ServiceType:   types.ServiceType(quoteFlags.service),
		Location:      types.Location{Address: quoteFlags.address},
		ScheduledAt:   scheduledAt,
		DocumentCount: quoteFlags.docs,
		SignerCount:   quoteFlags.signers,
		Options: types.RequestOptions{
			Priority: quoteFlags.priority,
			SameDay:  quoteFlags.sameDay,
		},
		CustomerEmail: quoteFlags.email,
		PromoCode:     quoteFlags.promo,
		ReferralCode:  quoteFlags.referral,
	}

	result, err := eng.Calculate(context.Background(), req)
	if err != nil {
		return err
	}

	if quoteFlags.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printQuote(cmd, result)
	return nil
}

func printQuote(cmd *cobra.Command, res *types.QuoteResult) {
	out := cmd.OutOrStdout()
	for _, item := range res.Breakdown.LineItems {
		fmt.Fprintf(out, "%-40s $%s\n", item.Description, item.Amount.StringFixed(2))
	}
	fmt.Fprintf(out, "%-40s $%s\n", "Total", res.Total.StringFixed(2))
	if res.Deposit.IsPositive() {
		fmt.Fprintf(out, "%-40s $%s\n", "Deposit due at booking", res.Deposit.StringFixed(2))
	}
	fmt.Fprintf(out, "\nConfidence: %s", res.Confidence.Level)
	for _, f := range res.Confidence.Factors {
		fmt.Fprintf(out, "\n  - %s", f)
	}
	fmt.Fprintln(out)
	for _, u := range res.UpsellSuggestions {
		fmt.Fprintf(out, "\nSuggestion: %s (+$%s)\n  %s\n", u.Headline, u.PriceIncrease.StringFixed(2), u.Benefit)
	}
}
