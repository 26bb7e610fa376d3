// Package rates holds the static per-service rate table.
// Populated once at startup, read-only at request time.
package rates

import (
	"github.com/shopspring/decimal"

	"notary-pricing/core/types"
	"notary-pricing/internal/errors"
)

// ServiceRate is the static pricing definition for one service tier
type ServiceRate struct {
	ServiceType         types.ServiceType `json:"serviceType"`
	BasePrice           decimal.Decimal   `json:"basePrice"`
	IncludedRadiusMiles float64           `json:"includedRadiusMiles"`
	FeePerExcessMile    decimal.Decimal   `json:"feePerExcessMile"`
	MaxDocuments        int               `json:"maxDocuments"`
	ExtraDocumentFee    decimal.Decimal   `json:"extraDocumentFee"`
}

// Table is the immutable rate table
type Table struct {
	rates map[types.ServiceType]ServiceRate
}

// NewTable builds a table from explicit rates
func NewTable(list []ServiceRate) *Table {
	m := make(map[types.ServiceType]ServiceRate, len(list))
	for _, r := range list {
		m[r.ServiceType] = r
	}
	return &Table{rates: m}
}

// Default returns the compiled-in rate table.
func Default() *Table {
	mk := func(st types.ServiceType, base int64, radius float64, perMileCents int64, maxDocs int, extraDoc int64) ServiceRate {
		return ServiceRate{
			ServiceType:         st,
			BasePrice:           decimal.NewFromInt(base),
			IncludedRadiusMiles: radius,
			FeePerExcessMile:    decimal.New(perMileCents, -2),
			MaxDocuments:        maxDocs,
			ExtraDocumentFee:    decimal.NewFromInt(extraDoc),
		}
	}
	return NewTable([]ServiceRate{
		mk(types.QuickStampLocal, 50, 10, 50, 1, 5),
		mk(types.StandardNotary, 75, 20, 50, 4, 10),
		mk(types.ExtendedHours, 100, 30, 50, 4, 10),
		mk(types.LoanSigning, 150, 30, 50, 999, 0),
		mk(types.RONServices, 25, 0, 0, 10, 5),
		mk(types.BusinessEssentials, 125, 30, 50, 10, 3),
		mk(types.BusinessGrowth, 349, 50, 25, 50, 2),
	})
}

// Get returns the rate for a service type, or an unknown-service error.
func (t *Table) Get(st types.ServiceType) (ServiceRate, error) {
	r, ok := t.rates[st]
	if !ok {
		return ServiceRate{}, errors.UnknownService(string(st))
	}
	return r, nil
}

// BasePrice returns the base price for a service type.
func (t *Table) BasePrice(st types.ServiceType) (decimal.Decimal, error) {
	r, err := t.Get(st)
	if err != nil {
		return decimal.Zero, err
	}
	return r.BasePrice, nil
}

// All returns every rate in display order
func (t *Table) All() []ServiceRate {
	out := make([]ServiceRate, 0, len(t.rates))
	for _, st := range types.AllServiceTypes() {
		if r, ok := t.rates[st]; ok {
			out = append(out, r)
		}
	}
	return out
}
