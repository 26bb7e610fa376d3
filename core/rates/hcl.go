package rates

import (
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/shopspring/decimal"

	"notary-pricing/core/types"
	"notary-pricing/internal/errors"
)

// rateFile is the HCL schema for a rate override file:
//
//	service "STANDARD_NOTARY" {
//	  base_price            = 75
//	  included_radius_miles = 20
//	  fee_per_excess_mile   = 0.50
//	  max_documents         = 4
//	  extra_document_fee    = 10
//	}
type rateFile struct {
	Services []rateBlock `hcl:"service,block"`
}

type rateBlock struct {
	Name                string  `hcl:"name,label"`
	BasePrice           float64 `hcl:"base_price"`
	IncludedRadiusMiles float64 `hcl:"included_radius_miles,optional"`
	FeePerExcessMile    float64 `hcl:"fee_per_excess_mile,optional"`
	MaxDocuments        int     `hcl:"max_documents"`
	ExtraDocumentFee    float64 `hcl:"extra_document_fee,optional"`
}

// LoadFile reads a complete rate table from an HCL file. Every service block
// must name a known service type; the file replaces the compiled-in defaults
// wholesale so a partial file is a configuration error.
func LoadFile(path string) (*Table, error) {
	var f rateFile
	if err := hclsimple.DecodeFile(path, nil, &f); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "parse rate file", err)
	}

	list := make([]ServiceRate, 0, len(f.Services))
	seen := make(map[types.ServiceType]bool)
	for _, b := range f.Services {
		st := types.ServiceType(b.Name)
		if !st.Valid() {
			return nil, errors.Newf(errors.TypeConfig, "rate file names unknown service %q", b.Name)
		}
		if seen[st] {
			return nil, errors.Newf(errors.TypeConfig, "rate file defines service %q twice", b.Name)
		}
		seen[st] = true
		list = append(list, ServiceRate{
			ServiceType:         st,
			BasePrice:           decimal.NewFromFloat(b.BasePrice),
			IncludedRadiusMiles: b.IncludedRadiusMiles,
			FeePerExcessMile:    decimal.NewFromFloat(b.FeePerExcessMile),
			MaxDocuments:        b.MaxDocuments,
			ExtraDocumentFee:    decimal.NewFromFloat(b.ExtraDocumentFee),
		})
	}

	for _, st := range types.AllServiceTypes() {
		if !seen[st] {
			return nil, errors.Newf(errors.TypeConfig, "rate file missing service %q", st)
		}
	}

	return NewTable(list), nil
}
