// Package travel computes travel overage fees from driving distance.
package travel

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"notary-pricing/core/rates"
	"notary-pricing/core/types"
)

// DistanceProvider resolves the driving distance in miles from the business's
// base location to a destination address. Implementations live under
// adapters/maps.
type DistanceProvider interface {
	DistanceMiles(ctx context.Context, destination string, serviceType types.ServiceType) (float64, error)
}

// Fallback values used when the distance provider is unavailable. The quote
// degrades instead of failing: the customer still gets a price, flagged
// outside the included area so confidence drops to medium.
var (
	fallbackFee      = decimal.NewFromInt(10)
	fallbackDistance = 20.0
)

// Calculator computes travel fees for a quote
type Calculator struct {
	rates    *rates.Table
	provider DistanceProvider
	log      *zap.Logger
}

// NewCalculator builds a travel fee calculator. provider may be nil, in which
// case every non-remote request with an address takes the fallback path.
func NewCalculator(table *rates.Table, provider DistanceProvider, log *zap.Logger) *Calculator {
	return &Calculator{rates: table, provider: provider, log: log}
}

// Compute resolves the travel fee for a service and destination.
//
// Remote services never touch the distance provider. An empty address means
// no travel leg was requested and also short-circuits to zero. Provider
// failure substitutes the fallback estimate and logs a warning; it is never
// surfaced to the caller.
func (c *Calculator) Compute(ctx context.Context, serviceType types.ServiceType, loc types.Location) (types.TravelResult, error) {
	rate, err := c.rates.Get(serviceType)
	if err != nil {
		return types.TravelResult{}, err
	}

	if serviceType.Remote() || loc.Address == "" {
		return types.TravelResult{Fee: decimal.Zero, DistanceMiles: 0, WithinIncludedArea: true}, nil
	}

	distance, err := c.lookupDistance(ctx, loc.Address, serviceType)
	if err != nil {
		c.log.Warn("distance lookup failed, using fallback travel estimate",
			zap.String("serviceType", string(serviceType)),
			zap.String("address", loc.Address),
			zap.Error(err))
		return types.TravelResult{
			Fee:                fallbackFee,
			DistanceMiles:      fallbackDistance,
			WithinIncludedArea: false,
		}, nil
	}

	excess := distance - rate.IncludedRadiusMiles
	if excess < 0 {
		excess = 0
	}
	fee := types.Round2(decimal.NewFromFloat(excess).Mul(rate.FeePerExcessMile))

	return types.TravelResult{
		Fee:                fee,
		DistanceMiles:      distance,
		WithinIncludedArea: distance <= rate.IncludedRadiusMiles,
	}, nil
}

func (c *Calculator) lookupDistance(ctx context.Context, address string, serviceType types.ServiceType) (float64, error) {
	if c.provider == nil {
		return 0, errNoProvider
	}
	return c.provider.DistanceMiles(ctx, address, serviceType)
}

type noProviderError struct{}

func (noProviderError) Error() string { return "no distance provider configured" }

var errNoProvider = noProviderError{}
