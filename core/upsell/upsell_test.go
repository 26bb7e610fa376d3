package upsell

import (
	"testing"
	"time"

	"notary-pricing/core/rates"
	"notary-pricing/core/types"
)

var anchor = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// nextWeek keeps requests outside the 24-hour priority window.
var nextWeek = anchor.Add(7 * 24 * time.Hour)

func baseRequest() types.QuoteRequest {
	return types.QuoteRequest{
		ServiceType:   types.StandardNotary,
		ScheduledAt:   nextWeek.Truncate(24 * time.Hour).Add(14 * time.Hour),
		DocumentCount: 1,
		SignerCount:   1,
	}
}

func find(suggestions []types.UpsellSuggestion, headline string) *types.UpsellSuggestion {
	for i := range suggestions {
		if suggestions[i].Headline == headline {
			return &suggestions[i]
		}
	}
	return nil
}

func TestNoSuggestionsForPlainAppointment(t *testing.T) {
	got := Detect(rates.Default(), baseRequest(), types.TravelResult{DistanceMiles: 5, WithinIncludedArea: true}, anchor)
	if len(got) != 0 {
		t.Errorf("Detect() returned %d suggestions, want 0: %+v", len(got), got)
	}
}

func TestEveningUpgrade(t *testing.T) {
	req := baseRequest()
	req.ScheduledAt = req.ScheduledAt.Add(4 * time.Hour) // 6pm

	got := Detect(rates.Default(), req, types.TravelResult{WithinIncludedArea: true}, anchor)
	s := find(got, "Evening Appointment Available")
	if s == nil {
		t.Fatalf("no evening suggestion in %+v", got)
	}
	if s.ToService != types.ExtendedHours {
		t.Errorf("evening upgrade targets %s, want %s", s.ToService, types.ExtendedHours)
	}
	if s.PriceIncrease.StringFixed(2) != "25.00" {
		t.Errorf("evening upgrade increase = %s, want 25.00", s.PriceIncrease)
	}
}

func TestEveningUpgradeOnlyForStandard(t *testing.T) {
	req := baseRequest()
	req.ServiceType = types.ExtendedHours
	req.ScheduledAt = req.ScheduledAt.Add(4 * time.Hour)

	got := Detect(rates.Default(), req, types.TravelResult{WithinIncludedArea: true}, anchor)
	if s := find(got, "Evening Appointment Available"); s != nil {
		t.Errorf("evening suggestion offered for %s", req.ServiceType)
	}
}

func TestVolumeUpgradeSavings(t *testing.T) {
	req := baseRequest()
	req.DocumentCount = 4

	got := Detect(rates.Default(), req, types.TravelResult{WithinIncludedArea: true}, anchor)
	s := find(got, "Better Value for Multiple Documents")
	if s == nil {
		t.Fatalf("no volume suggestion in %+v", got)
	}
	// (4-2) docs at $15 each, minus the $25 upgrade.
	if s.Savings.StringFixed(2) != "5.00" {
		t.Errorf("savings = %s, want 5.00", s.Savings)
	}
}

func TestVolumeUpgradeSavingsNeverNegative(t *testing.T) {
	req := baseRequest()
	req.DocumentCount = 3

	got := Detect(rates.Default(), req, types.TravelResult{WithinIncludedArea: true}, anchor)
	s := find(got, "Better Value for Multiple Documents")
	if s == nil {
		t.Fatal("no volume suggestion")
	}
	// 1 doc at $15 is below the $25 upgrade; savings floor at zero.
	if !s.Savings.IsZero() {
		t.Errorf("savings = %s, want 0", s.Savings)
	}
}

func TestTravelUpgrade(t *testing.T) {
	got := Detect(rates.Default(), baseRequest(), types.TravelResult{DistanceMiles: 26}, anchor)
	s := find(got, "Extended Hours Includes More Travel")
	if s == nil {
		t.Fatal("no travel suggestion")
	}
	// 6 miles past the extended radius at $0.50.
	if s.Savings.StringFixed(2) != "3.00" {
		t.Errorf("savings = %s, want 3.00", s.Savings)
	}
}

func TestTravelUpgradeShortTripHasNoSavings(t *testing.T) {
	got := Detect(rates.Default(), baseRequest(), types.TravelResult{DistanceMiles: 18}, anchor)
	s := find(got, "Extended Hours Includes More Travel")
	if s == nil {
		t.Fatal("no travel suggestion for 18 miles")
	}
	if !s.Savings.IsZero() {
		t.Errorf("savings = %s, want 0 at 18 miles", s.Savings)
	}
}

func TestLoanSigningSuggestion(t *testing.T) {
	req := baseRequest()
	req.DocumentCount = 6

	got := Detect(rates.Default(), req, types.TravelResult{WithinIncludedArea: true}, anchor)
	s := find(got, "Loan Signing Specialist")
	if s == nil {
		t.Fatal("no loan signing suggestion for 6 documents")
	}
	// 150 loan base minus 75 standard base.
	if s.PriceIncrease.StringFixed(2) != "75.00" {
		t.Errorf("increase = %s, want 75.00", s.PriceIncrease)
	}
}

func TestLoanSigningSuggestedForManySigners(t *testing.T) {
	req := baseRequest()
	req.SignerCount = 3

	got := Detect(rates.Default(), req, types.TravelResult{WithinIncludedArea: true}, anchor)
	if find(got, "Loan Signing Specialist") == nil {
		t.Error("no loan signing suggestion for 3 signers")
	}
}

func TestNoLoanSuggestionWhenAlreadyLoanSigning(t *testing.T) {
	req := baseRequest()
	req.ServiceType = types.LoanSigning
	req.DocumentCount = 12

	got := Detect(rates.Default(), req, types.TravelResult{WithinIncludedArea: true}, anchor)
	if s := find(got, "Loan Signing Specialist"); s != nil {
		t.Errorf("loan signing suggested to itself: %+v", s)
	}
}

func TestPriorityAddOnWithin24Hours(t *testing.T) {
	req := baseRequest()
	req.ScheduledAt = anchor.Add(3 * time.Hour)

	got := Detect(rates.Default(), req, types.TravelResult{WithinIncludedArea: true}, anchor)
	s := find(got, "Priority Booking")
	if s == nil {
		t.Fatal("no priority add-on for an appointment in 3 hours")
	}
	if s.Kind != types.UpsellAddOn {
		t.Errorf("kind = %s, want %s", s.Kind, types.UpsellAddOn)
	}
}

func TestNoPriorityAddOnWhenAlreadyPriority(t *testing.T) {
	req := baseRequest()
	req.ScheduledAt = anchor.Add(3 * time.Hour)
	req.Options.Priority = true

	got := Detect(rates.Default(), req, types.TravelResult{WithinIncludedArea: true}, anchor)
	if find(got, "Priority Booking") != nil {
		t.Error("priority add-on suggested to a priority booking")
	}
}
