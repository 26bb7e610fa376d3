// Package maps implements the distance provider on the Google Maps
// Directions API.
package maps

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"notary-pricing/core/types"
)

const metersPerMile = 1609.344

// Provider resolves driving distance from the business's base location.
type Provider struct {
	client *maps.Client
	origin string
	log    *zap.Logger
}

// NewProvider creates a provider with the given API key and origin address.
func NewProvider(apiKey, origin string, log *zap.Logger) (*Provider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &Provider{client: client, origin: origin, log: log}, nil
}

// DistanceMiles implements travel.DistanceProvider. Transient API failures
// are retried with capped exponential backoff; callers own the fallback when
// the retries are exhausted.
func (p *Provider) DistanceMiles(ctx context.Context, destination string, serviceType types.ServiceType) (float64, error) {
	var miles float64

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxInterval = 2 * time.Second

	op := func() error {
		r := &maps.DirectionsRequest{
			Origin:      p.origin,
			Destination: destination,
			Mode:        maps.TravelModeDriving,
			Region:      "us",
		}

		routes, _, err := p.client.Directions(ctx, r)
		if err != nil {
			return fmt.Errorf("maps api error: %w", err)
		}
		if len(routes) == 0 || len(routes[0].Legs) == 0 {
			return backoff.Permanent(fmt.Errorf("no route found to %q", destination))
		}

		miles = float64(routes[0].Legs[0].Distance.Meters) / metersPerMile
		return nil
	}

	notify := func(err error, wait time.Duration) {
		p.log.Warn("directions request failed, retrying",
			zap.String("destination", destination),
			zap.String("serviceType", string(serviceType)),
			zap.Duration("wait", wait),
			zap.Error(err))
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(backoff.WithMaxRetries(policy, 2), ctx), notify); err != nil {
		return 0, err
	}
	return miles, nil
}
