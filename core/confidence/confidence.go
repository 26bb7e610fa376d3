// Package confidence grades how certain a quote is.
// Purely descriptive metadata for the UI; never feeds pricing math.
package confidence

import "notary-pricing/core/types"

// Score classifies a quote's confidence from the computed travel result.
// Starts high; leaves the included area and drops to medium.
func Score(req types.QuoteRequest, travel types.TravelResult) types.Confidence {
	level := types.ConfidenceHigh
	var factors []string

	if travel.WithinIncludedArea {
		factors = append(factors, "Within service area")
	} else {
		factors = append(factors, "Extended service area")
		level = types.ConfidenceMedium
	}

	switch req.ServiceType {
	case types.LoanSigning:
		factors = append(factors, "Flat-rate pricing")
	case types.RONServices:
		factors = append(factors, "No travel required", "24/7 availability")
	}

	advantage := "Competitive pricing with premium service"
	if level == types.ConfidenceHigh {
		advantage = "Best value in the Houston metro area"
	}

	return types.Confidence{
		Level:                level,
		Factors:              factors,
		CompetitiveAdvantage: advantage,
	}
}
