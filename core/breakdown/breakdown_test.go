package breakdown

import (
	"testing"

	"github.com/shopspring/decimal"

	"notary-pricing/core/types"
)

func TestBaseOnly(t *testing.T) {
	got := Build(Input{BasePrice: types.Dollars(75), BaseZIP: "77591"})
	if len(got.LineItems) != 1 {
		t.Fatalf("line items = %d, want 1: %+v", len(got.LineItems), got.LineItems)
	}
	item := got.LineItems[0]
	if item.Kind != types.LineBase || !item.Amount.Equal(types.Dollars(75)) {
		t.Errorf("base line = %+v", item)
	}
	if got.Transparency.TravelCalculation != "" {
		t.Errorf("unexpected travel note %q", got.Transparency.TravelCalculation)
	}
}

func TestFullBreakdownOrder(t *testing.T) {
	got := Build(Input{
		BasePrice:        types.Dollars(75),
		Travel:           types.TravelResult{Fee: decimal.NewFromFloat(2.50), DistanceMiles: 25},
		ExtraDocumentFee: types.Dollars(10),
		ExtraDocuments:   1,
		Surcharges:       types.Dollars(40),
		Discounts:        types.Dollars(15),
		BaseZIP:          "77591",
	})

	wantKinds := []types.LineItemKind{
		types.LineBase, types.LineTravel, types.LineDocuments, types.LineSurcharge, types.LineDiscount,
	}
	if len(got.LineItems) != len(wantKinds) {
		t.Fatalf("line items = %d, want %d", len(got.LineItems), len(wantKinds))
	}
	for i, kind := range wantKinds {
		if got.LineItems[i].Kind != kind {
			t.Errorf("item %d kind = %s, want %s", i, got.LineItems[i].Kind, kind)
		}
	}
}

func TestDiscountsRenderNegative(t *testing.T) {
	got := Build(Input{BasePrice: types.Dollars(75), Discounts: types.Dollars(15)})
	last := got.LineItems[len(got.LineItems)-1]
	if last.Kind != types.LineDiscount {
		t.Fatalf("last item kind = %s, want discount", last.Kind)
	}
	if !last.Amount.Equal(types.Dollars(-15)) {
		t.Errorf("discount amount = %s, want -15", last.Amount)
	}
}

func TestTransparencyNotes(t *testing.T) {
	got := Build(Input{
		BasePrice:  types.Dollars(75),
		Travel:     types.TravelResult{Fee: types.Dollars(5), DistanceMiles: 30},
		Surcharges: types.Dollars(40),
		Discounts:  types.Dollars(15),
		BaseZIP:    "77591",
	})

	if got.Transparency.TravelCalculation != "Based on 30.0 miles from ZIP 77591" {
		t.Errorf("travel note = %q", got.Transparency.TravelCalculation)
	}
	if got.Transparency.SurchargeExplanation == "" {
		t.Error("missing surcharge note")
	}
	if got.Transparency.DiscountSource == "" {
		t.Error("missing discount note")
	}
}
