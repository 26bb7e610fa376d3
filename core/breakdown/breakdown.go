// Package breakdown assembles the customer-facing line items and
// transparency notes. Formatting only; no business logic.
package breakdown

import (
	"fmt"

	"github.com/shopspring/decimal"

	"notary-pricing/core/types"
)

// Input carries the already-computed amounts the builder formats
type Input struct {
	BasePrice        decimal.Decimal
	Travel           types.TravelResult
	ExtraDocumentFee decimal.Decimal
	ExtraDocuments   int
	Surcharges       decimal.Decimal
	Discounts        decimal.Decimal
	BaseZIP          string
}

// Build produces the ordered breakdown. Zero-amount sections are omitted;
// discounts render as a negative line item.
func Build(in Input) types.Breakdown {
	items := []types.LineItem{
		{Description: "Base Service Fee", Amount: in.BasePrice, Kind: types.LineBase},
	}

	if in.Travel.Fee.IsPositive() {
		items = append(items, types.LineItem{
			Description: fmt.Sprintf("Travel Fee (%.1f miles)", in.Travel.DistanceMiles),
			Amount:      in.Travel.Fee,
			Kind:        types.LineTravel,
		})
	}

	if in.ExtraDocumentFee.IsPositive() {
		items = append(items, types.LineItem{
			Description: fmt.Sprintf("Additional Documents (%d over limit)", in.ExtraDocuments),
			Amount:      in.ExtraDocumentFee,
			Kind:        types.LineDocuments,
		})
	}

	if in.Surcharges.IsPositive() {
		items = append(items, types.LineItem{
			Description: "Service Surcharges",
			Amount:      in.Surcharges,
			Kind:        types.LineSurcharge,
		})
	}

	if in.Discounts.IsPositive() {
		items = append(items, types.LineItem{
			Description: "Discounts Applied",
			Amount:      in.Discounts.Neg(),
			Kind:        types.LineDiscount,
		})
	}

	var t types.Transparency
	if in.Travel.Fee.IsPositive() {
		t.TravelCalculation = fmt.Sprintf("Based on %.1f miles from ZIP %s", in.Travel.DistanceMiles, in.BaseZIP)
	}
	if in.Surcharges.IsPositive() {
		t.SurchargeExplanation = "After-hours, weekend, or priority service fees"
	}
	if in.Discounts.IsPositive() {
		t.DiscountSource = "Customer loyalty discounts applied"
	}

	return types.Breakdown{LineItems: items, Transparency: t}
}
