// Package upsell proposes service upgrades and add-ons from already-computed
// quote inputs. Advisory only: suggestions are never billed automatically.
package upsell

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"notary-pricing/core/rates"
	"notary-pricing/core/types"
)

var (
	extendedHoursUpgrade = decimal.NewFromInt(25)
	perDocumentFee       = decimal.NewFromInt(15)
	priorityAddOn        = decimal.NewFromInt(25)
	extendedPerMile      = decimal.New(50, -2)
)

// Detect evaluates the upsell rules in display priority order. The rules are
// independent; zero or several suggestions can fire. now anchors the
// priority-window check.
func Detect(table *rates.Table, req types.QuoteRequest, travel types.TravelResult, now time.Time) []types.UpsellSuggestion {
	var suggestions []types.UpsellSuggestion

	hour := req.ScheduledAt.Hour()

	// Evening appointments outgrow the standard window.
	if hour >= 17 && req.ServiceType == types.StandardNotary {
		suggestions = append(suggestions, types.UpsellSuggestion{
			Kind:          types.UpsellServiceUpgrade,
			FromService:   types.StandardNotary,
			ToService:     types.ExtendedHours,
			PriceIncrease: extendedHoursUpgrade,
			Headline:      "Evening Appointment Available",
			Benefit:       "Available until 9pm + handles up to 5 documents",
			Urgency:       "Next available evening slot",
		})
	}

	// Document stacks price better on the extended tier.
	if req.DocumentCount > 2 && req.ServiceType == types.StandardNotary {
		perDocTotal := perDocumentFee.Mul(decimal.NewFromInt(int64(req.DocumentCount - 2)))
		savings := perDocTotal.Sub(extendedHoursUpgrade)
		if savings.IsNegative() {
			savings = decimal.Zero
		}
		suggestions = append(suggestions, types.UpsellSuggestion{
			Kind:          types.UpsellServiceUpgrade,
			FromService:   types.StandardNotary,
			ToService:     types.ExtendedHours,
			PriceIncrease: extendedHoursUpgrade,
			Headline:      "Better Value for Multiple Documents",
			Benefit:       fmt.Sprintf("Covers up to 5 documents (you have %d)", req.DocumentCount),
			Savings:       savings,
		})
	}

	// Long drives are cheaper inside the extended tier's radius.
	if travel.DistanceMiles > 15 && req.ServiceType == types.StandardNotary {
		savings := decimal.Zero
		if travel.DistanceMiles > 20 {
			savings = types.Round2(decimal.NewFromFloat(travel.DistanceMiles - 20).Mul(extendedPerMile))
		}
		suggestions = append(suggestions, types.UpsellSuggestion{
			Kind:          types.UpsellServiceUpgrade,
			FromService:   types.StandardNotary,
			ToService:     types.ExtendedHours,
			PriceIncrease: extendedHoursUpgrade,
			Headline:      "Extended Hours Includes More Travel",
			Benefit:       "20-mile radius included (reduces your travel fees)",
			Savings:       savings,
		})
	}

	// Heavy document loads look like loan packages.
	if req.ServiceType != types.LoanSigning && (req.DocumentCount > 5 || looksLikeLoanPackage(req)) {
		increase := decimal.Zero
		if loanRate, err := table.Get(types.LoanSigning); err == nil {
			if fromRate, err := table.Get(req.ServiceType); err == nil {
				increase = loanRate.BasePrice.Sub(fromRate.BasePrice)
			}
		}
		suggestions = append(suggestions, types.UpsellSuggestion{
			Kind:          types.UpsellServiceUpgrade,
			FromService:   req.ServiceType,
			ToService:     types.LoanSigning,
			PriceIncrease: increase,
			Headline:      "Loan Signing Specialist",
			Benefit:       "Unlimited documents + real estate expertise + title company coordination",
		})
	}

	// Near-term appointments can still add priority.
	if !req.Options.Priority && withinPriorityWindow(req.ScheduledAt, now) {
		suggestions = append(suggestions, types.UpsellSuggestion{
			Kind:          types.UpsellAddOn,
			PriceIncrease: priorityAddOn,
			Headline:      "Priority Booking",
			Benefit:       "Next available appointment within 2 hours",
			Condition:     "subject to availability",
			Urgency:       "Limited slots available",
		})
	}

	return suggestions
}

func looksLikeLoanPackage(req types.QuoteRequest) bool {
	return req.DocumentCount > 10 || req.SignerCount > 2
}

func withinPriorityWindow(scheduledAt, now time.Time) bool {
	return scheduledAt.Sub(now) <= 24*time.Hour
}
