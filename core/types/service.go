// Package types - shared domain types for the quote engine.
package types

// ServiceType identifies a bookable notary service tier
type ServiceType string

const (
	QuickStampLocal    ServiceType = "QUICK_STAMP_LOCAL"
	StandardNotary     ServiceType = "STANDARD_NOTARY"
	ExtendedHours      ServiceType = "EXTENDED_HOURS"
	LoanSigning        ServiceType = "LOAN_SIGNING"
	RONServices        ServiceType = "RON_SERVICES"
	BusinessEssentials ServiceType = "BUSINESS_ESSENTIALS"
	BusinessGrowth     ServiceType = "BUSINESS_GROWTH"
)

// AllServiceTypes lists every service tier in display order
func AllServiceTypes() []ServiceType {
	return []ServiceType{
		QuickStampLocal,
		StandardNotary,
		ExtendedHours,
		LoanSigning,
		RONServices,
		BusinessEssentials,
		BusinessGrowth,
	}
}

// Valid reports whether s is a known service type. The switch is exhaustive
// so adding a tier is a compile-visible change here and in every rule that
// switches on ServiceType.
func (s ServiceType) Valid() bool {
	switch s {
	case QuickStampLocal, StandardNotary, ExtendedHours, LoanSigning,
		RONServices, BusinessEssentials, BusinessGrowth:
		return true
	}
	return false
}

// Remote reports whether the service is performed online with no travel.
func (s ServiceType) Remote() bool {
	return s == RONServices
}

// String returns the wire representation
func (s ServiceType) String() string {
	return string(s)
}
