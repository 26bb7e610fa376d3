package travel

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"notary-pricing/core/rates"
	"notary-pricing/core/types"
)

// fakeProvider returns a fixed distance and counts its calls.
type fakeProvider struct {
	miles float64
	err   error
	calls int
}

func (f *fakeProvider) DistanceMiles(context.Context, string, types.ServiceType) (float64, error) {
	f.calls++
	return f.miles, f.err
}

func TestRemoteServiceSkipsProvider(t *testing.T) {
	provider := &fakeProvider{miles: 500}
	calc := NewCalculator(rates.Default(), provider, zap.NewNop())

	got, err := calc.Compute(context.Background(), types.RONServices, types.Location{Address: "anywhere"})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Fee.IsZero() || got.DistanceMiles != 0 || !got.WithinIncludedArea {
		t.Errorf("remote service travel = %+v, want zero fee within area", got)
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times for a remote service, want 0", provider.calls)
	}
}

func TestEmptyAddressSkipsProvider(t *testing.T) {
	provider := &fakeProvider{miles: 500}
	calc := NewCalculator(rates.Default(), provider, zap.NewNop())

	got, err := calc.Compute(context.Background(), types.StandardNotary, types.Location{})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Fee.IsZero() || !got.WithinIncludedArea {
		t.Errorf("empty address travel = %+v, want zero fee within area", got)
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times without an address, want 0", provider.calls)
	}
}

func TestWithinIncludedRadius(t *testing.T) {
	calc := NewCalculator(rates.Default(), &fakeProvider{miles: 10}, zap.NewNop())

	got, err := calc.Compute(context.Background(), types.StandardNotary, types.Location{Address: "123 Main St"})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Fee.IsZero() {
		t.Errorf("fee = %s, want 0 inside the 20mi radius", got.Fee)
	}
	if !got.WithinIncludedArea {
		t.Error("10 miles should be within the included area")
	}
	if got.DistanceMiles != 10 {
		t.Errorf("distance = %v, want 10", got.DistanceMiles)
	}
}

func TestOverageFee(t *testing.T) {
	// 25 miles on the standard 20mi radius: 5 excess at $0.50/mi.
	calc := NewCalculator(rates.Default(), &fakeProvider{miles: 25}, zap.NewNop())

	got, err := calc.Compute(context.Background(), types.StandardNotary, types.Location{Address: "far away"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Fee.StringFixed(2) != "2.50" {
		t.Errorf("fee = %s, want 2.50", got.Fee)
	}
	if got.WithinIncludedArea {
		t.Error("25 miles should be outside the included area")
	}
}

func TestRadiusBoundaryIsIncluded(t *testing.T) {
	calc := NewCalculator(rates.Default(), &fakeProvider{miles: 20}, zap.NewNop())

	got, err := calc.Compute(context.Background(), types.StandardNotary, types.Location{Address: "edge"})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Fee.IsZero() || !got.WithinIncludedArea {
		t.Errorf("exactly 20 miles = %+v, want zero fee within area", got)
	}
}

func TestProviderFailureFallsBack(t *testing.T) {
	provider := &fakeProvider{err: errors.New("maps unreachable")}
	calc := NewCalculator(rates.Default(), provider, zap.NewNop())

	got, err := calc.Compute(context.Background(), types.StandardNotary, types.Location{Address: "123 Main St"})
	if err != nil {
		t.Fatalf("provider failure must not fail the quote: %v", err)
	}
	if got.Fee.StringFixed(2) != "10.00" {
		t.Errorf("fallback fee = %s, want 10.00", got.Fee)
	}
	if got.DistanceMiles != 20 {
		t.Errorf("fallback distance = %v, want 20", got.DistanceMiles)
	}
	if got.WithinIncludedArea {
		t.Error("fallback must flag the destination outside the included area")
	}
}

func TestNilProviderFallsBack(t *testing.T) {
	calc := NewCalculator(rates.Default(), nil, zap.NewNop())

	got, err := calc.Compute(context.Background(), types.StandardNotary, types.Location{Address: "123 Main St"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Fee.StringFixed(2) != "10.00" || got.WithinIncludedArea {
		t.Errorf("nil provider travel = %+v, want fallback estimate", got)
	}
}

func TestUnknownServiceFailsFast(t *testing.T) {
	provider := &fakeProvider{miles: 10}
	calc := NewCalculator(rates.Default(), provider, zap.NewNop())

	if _, err := calc.Compute(context.Background(), types.ServiceType("NOPE"), types.Location{Address: "x"}); err == nil {
		t.Fatal("expected error for unknown service type")
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times for unknown service, want 0", provider.calls)
	}
}
