package confidence

import (
	"slices"
	"testing"

	"notary-pricing/core/types"
)

func TestWithinAreaIsHighConfidence(t *testing.T) {
	got := Score(types.QuoteRequest{ServiceType: types.StandardNotary}, types.TravelResult{WithinIncludedArea: true})
	if got.Level != types.ConfidenceHigh {
		t.Errorf("level = %s, want high", got.Level)
	}
	if !slices.Contains(got.Factors, "Within service area") {
		t.Errorf("factors = %v, missing service area note", got.Factors)
	}
}

func TestOutsideAreaDropsToMedium(t *testing.T) {
	got := Score(types.QuoteRequest{ServiceType: types.StandardNotary}, types.TravelResult{WithinIncludedArea: false})
	if got.Level != types.ConfidenceMedium {
		t.Errorf("level = %s, want medium", got.Level)
	}
	if !slices.Contains(got.Factors, "Extended service area") {
		t.Errorf("factors = %v, missing extended area note", got.Factors)
	}
}

func TestServiceSpecificFactors(t *testing.T) {
	loan := Score(types.QuoteRequest{ServiceType: types.LoanSigning}, types.TravelResult{WithinIncludedArea: true})
	if !slices.Contains(loan.Factors, "Flat-rate pricing") {
		t.Errorf("loan signing factors = %v, missing flat-rate note", loan.Factors)
	}

	ron := Score(types.QuoteRequest{ServiceType: types.RONServices}, types.TravelResult{WithinIncludedArea: true})
	if !slices.Contains(ron.Factors, "No travel required") || !slices.Contains(ron.Factors, "24/7 availability") {
		t.Errorf("RON factors = %v, missing remote notes", ron.Factors)
	}
}
