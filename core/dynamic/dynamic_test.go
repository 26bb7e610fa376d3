package dynamic

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"notary-pricing/adapters/cache"
	"notary-pricing/core/kv"
	"notary-pricing/core/types"
)

// 2025-06-03 is a Tuesday.
var tuesdayNoon = time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)

func newTestAdjuster(store kv.Store) *Adjuster {
	return NewAdjuster(store, nil, DefaultZones(), zap.NewNop())
}

func TestZoneMultipliers(t *testing.T) {
	zones := DefaultZones()
	tests := []struct {
		zip  string
		want float64
	}{
		{"77019", 1.3},
		{"77002", 1.1},
		{"77033", 0.9},
		{"77591", 1.0},
		{"", 1.0},
	}
	for _, tt := range tests {
		if got := zones.Multiplier(tt.zip); got != tt.want {
			t.Errorf("Multiplier(%q) = %v, want %v", tt.zip, got, tt.want)
		}
	}
}

func TestWeatherSurchargeTiers(t *testing.T) {
	tests := []struct {
		severity float64
		want     string
	}{
		{0, "0.00"},
		{2.9, "0.00"},
		{3, "10.00"},
		{6.9, "10.00"},
		{7, "25.00"},
		{9, "35.00"},
		{20, "50.00"},
	}
	for _, tt := range tests {
		got := weatherSurchargeFor(WeatherConditions{Severity: tt.severity})
		if got.StringFixed(2) != tt.want {
			t.Errorf("severity %v surcharge = %s, want %s", tt.severity, got, tt.want)
		}
	}
}

func TestTimeMultiplier(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		{"weekday midday", tuesdayNoon, 1.0},
		{"weekday peak morning", time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC), 1.2},
		{"weekday peak afternoon", time.Date(2025, 6, 3, 15, 0, 0, 0, time.UTC), 1.2},
		{"weekday evening", time.Date(2025, 6, 3, 19, 0, 0, 0, time.UTC), 1.4},
		{"weekday early morning", time.Date(2025, 6, 3, 6, 0, 0, 0, time.UTC), 1.4},
		{"saturday midday", time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC), 1.0},
		{"saturday late night", time.Date(2025, 6, 7, 21, 0, 0, 0, time.UTC), 1.4},
		{"seasonal november", time.Date(2025, 11, 4, 12, 0, 0, 0, time.UTC), 1.1},
		{"seasonal peak stacks", time.Date(2025, 11, 4, 10, 0, 0, 0, time.UTC), 1.32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timeMultiplier(tt.at); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("timeMultiplier(%s) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestDemandLevels(t *testing.T) {
	ctx := context.Background()

	record := func(n int) *Adjuster {
		store := cache.NewMemory()
		a := newTestAdjuster(store)
		for i := 0; i < n; i++ {
			if err := a.RecordBooking(ctx, tuesdayNoon); err != nil {
				t.Fatal(err)
			}
		}
		return a
	}

	tests := []struct {
		bookings int
		want     types.DemandLevel
	}{
		{0, types.DemandLow},
		{1, types.DemandLow},
		{2, types.DemandHigh},
		{3, types.DemandSurge},
		{4, types.DemandSurge},
	}
	for _, tt := range tests {
		a := record(tt.bookings)
		level, _ := a.demandLevel(ctx, tuesdayNoon)
		if level != tt.want {
			t.Errorf("%d bookings: level = %s, want %s", tt.bookings, level, tt.want)
		}
	}
}

func TestDemandWindowCountsNeighboringSlots(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	a := newTestAdjuster(store)

	// Bookings an hour either side of the slot still count toward it.
	for _, offset := range []time.Duration{-time.Hour, 0, time.Hour} {
		if err := a.RecordBooking(ctx, tuesdayNoon.Add(offset)); err != nil {
			t.Fatal(err)
		}
	}

	level, score := a.demandLevel(ctx, tuesdayNoon)
	if level != types.DemandSurge {
		t.Errorf("level = %s, want surge", level)
	}
	if score != 0.75 {
		t.Errorf("score = %v, want 0.75", score)
	}
}

func TestEvaluateSurge(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	a := newTestAdjuster(store)
	for i := 0; i < 3; i++ {
		if err := a.RecordBooking(ctx, tuesdayNoon); err != nil {
			t.Fatal(err)
		}
	}

	adj := a.Evaluate(ctx, types.QuoteRequest{ScheduledAt: tuesdayNoon}, decimal.NewFromInt(100))
	if adj.DemandLevel != types.DemandSurge {
		t.Fatalf("demand level = %s, want surge", adj.DemandLevel)
	}
	// Multiplier 1.75 on a neutral slot: no weather, time, or geo effects.
	if adj.SuggestedTotal.StringFixed(2) != "175.00" {
		t.Errorf("suggested total = %s, want 175.00", adj.SuggestedTotal)
	}
	if len(adj.Reasoning) == 0 || adj.Reasoning[0] != "High demand surcharge: surge demand in time slot" {
		t.Errorf("reasoning = %v", adj.Reasoning)
	}
}

func TestEvaluateLowDemandDiscountIsClamped(t *testing.T) {
	ctx := context.Background()
	a := newTestAdjuster(cache.NewMemory())

	adj := a.Evaluate(ctx, types.QuoteRequest{ScheduledAt: tuesdayNoon}, decimal.NewFromInt(100))
	if adj.DemandLevel != types.DemandLow {
		t.Fatalf("demand level = %s, want low", adj.DemandLevel)
	}
	// Empty slot clamps to the 0.8 floor multiplier.
	if adj.SuggestedTotal.StringFixed(2) != "80.00" {
		t.Errorf("suggested total = %s, want 80.00", adj.SuggestedTotal)
	}
}

func TestEvaluateGeoZone(t *testing.T) {
	ctx := context.Background()
	a := newTestAdjuster(nil)

	req := types.QuoteRequest{
		ScheduledAt: tuesdayNoon,
		Location:    types.Location{Address: "5 River Oaks Blvd, Houston, TX 77019"},
	}
	adj := a.Evaluate(ctx, req, decimal.NewFromInt(100))
	if adj.GeoMultiplier != 1.3 {
		t.Errorf("geo multiplier = %v, want 1.3", adj.GeoMultiplier)
	}
	// Nil cache reads as normal demand, so only geo applies.
	if adj.SuggestedTotal.StringFixed(2) != "130.00" {
		t.Errorf("suggested total = %s, want 130.00", adj.SuggestedTotal)
	}
}

func TestEvaluateNeverBelowHalfBase(t *testing.T) {
	ctx := context.Background()
	a := newTestAdjuster(cache.NewMemory())

	req := types.QuoteRequest{
		ScheduledAt: tuesdayNoon,
		Location:    types.Location{Address: "10 Sunnyside Dr, Houston, TX 77033"},
	}
	adj := a.Evaluate(ctx, req, decimal.NewFromInt(100))
	if adj.SuggestedTotal.LessThan(decimal.NewFromInt(50)) {
		t.Errorf("suggested total %s fell below half the base price", adj.SuggestedTotal)
	}
}

func TestEvaluateNilCacheIsNeutral(t *testing.T) {
	adj := newTestAdjuster(nil).Evaluate(context.Background(), types.QuoteRequest{ScheduledAt: tuesdayNoon}, decimal.NewFromInt(100))
	if adj.DemandLevel != types.DemandNormal {
		t.Errorf("demand level = %s, want normal", adj.DemandLevel)
	}
	if adj.SuggestedTotal.StringFixed(2) != "100.00" {
		t.Errorf("suggested total = %s, want 100.00", adj.SuggestedTotal)
	}
	if len(adj.Reasoning) != 1 || adj.Reasoning[0] != "Standard pricing applies" {
		t.Errorf("reasoning = %v", adj.Reasoning)
	}
}
