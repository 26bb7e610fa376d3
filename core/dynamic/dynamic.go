// Package dynamic produces the advisory surge-pricing section of a quote:
// demand pressure, weather surcharges, time-of-day and geographic
// multipliers. The additive quote remains the binding price; this records
// what demand-based pricing would charge and why.
package dynamic

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"notary-pricing/core/kv"
	"notary-pricing/core/types"
)

const (
	demandKeyPrefix = "demand:slot:"
	demandKeyTTL    = 6 * time.Hour

	// slotCapacity is the assumed bookable appointments per 4-hour window
	slotCapacity = 4

	surgeThreshold     = 0.7
	highThreshold      = 0.5
	lowDemandThreshold = 0.3

	maxSurgeMultiplier  = 2.5
	minDemandMultiplier = 0.8
)

var (
	severeWeatherSurcharge   = decimal.NewFromInt(25)
	moderateWeatherSurcharge = decimal.NewFromInt(10)
	extremeWeatherMax        = decimal.NewFromInt(50)
)

// WeatherConditions describes the weather at the appointment slot
type WeatherConditions struct {
	Current       string   `json:"current"`
	Severity      float64  `json:"severity"`
	Temperature   float64  `json:"temperature"`
	Precipitation float64  `json:"precipitation"`
	Alerts        []string `json:"alerts"`
}

// WeatherSource resolves conditions for a location and time. A failing source
// degrades to clear conditions; it never fails the evaluation.
type WeatherSource interface {
	Conditions(ctx context.Context, loc types.Location, at time.Time) (WeatherConditions, error)
}

// ClearSky is a WeatherSource that always reports clear conditions. Used
// until a real weather integration is wired in.
type ClearSky struct{}

// Conditions implements WeatherSource
func (ClearSky) Conditions(context.Context, types.Location, time.Time) (WeatherConditions, error) {
	return WeatherConditions{Current: "clear", Temperature: 75}, nil
}

// ZoneTable maps ZIP codes to geographic pricing multipliers
type ZoneTable struct {
	Premium    []string
	HighDemand []string
	LowDemand  []string
}

// DefaultZones returns the Houston-area zone table.
func DefaultZones() ZoneTable {
	return ZoneTable{
		Premium:    []string{"77019", "77024", "77056"},
		HighDemand: []string{"77002", "77010", "77025"},
		LowDemand:  []string{"77033", "77076", "77088"},
	}
}

// Multiplier returns the zone multiplier for a ZIP code. Unlisted ZIPs are
// standard-priced.
func (z ZoneTable) Multiplier(zip string) float64 {
	for _, p := range z.Premium {
		if p == zip {
			return 1.3
		}
	}
	for _, h := range z.HighDemand {
		if h == zip {
			return 1.1
		}
	}
	for _, l := range z.LowDemand {
		if l == zip {
			return 0.9
		}
	}
	return 1.0
}

// Adjuster evaluates dynamic pricing conditions
type Adjuster struct {
	cache   kv.Store
	weather WeatherSource
	zones   ZoneTable
	log     *zap.Logger
}

// NewAdjuster builds an adjuster. cache may be nil (demand reads as zero);
// weather may be nil (clear sky assumed).
func NewAdjuster(cache kv.Store, weather WeatherSource, zones ZoneTable, log *zap.Logger) *Adjuster {
	if weather == nil {
		weather = ClearSky{}
	}
	return &Adjuster{cache: cache, weather: weather, zones: zones, log: log}
}

// RecordBooking bumps the demand counter for the hour bucket containing t.
// Called by the booking layer when an appointment is confirmed.
func (a *Adjuster) RecordBooking(ctx context.Context, t time.Time) error {
	if a.cache == nil {
		return nil
	}
	key := slotKey(t)
	if _, err := a.cache.Incr(ctx, key); err != nil {
		return err
	}
	return a.cache.Expire(ctx, key, demandKeyTTL)
}

// Evaluate computes the advisory adjustments for a request. Degraded
// dependencies reduce to neutral conditions; Evaluate never fails.
func (a *Adjuster) Evaluate(ctx context.Context, req types.QuoteRequest, basePrice decimal.Decimal) types.Adjustments {
	level, score := a.demandLevel(ctx, req.ScheduledAt)
	weather := a.weatherConditions(ctx, req)

	demandAdjustment := decimal.Zero
	switch level {
	case types.DemandSurge:
		mult := 1 + score
		if mult > maxSurgeMultiplier {
			mult = maxSurgeMultiplier
		}
		demandAdjustment = basePrice.Mul(decimal.NewFromFloat(mult - 1))
	case types.DemandLow:
		mult := score
		if mult < minDemandMultiplier {
			mult = minDemandMultiplier
		}
		demandAdjustment = basePrice.Mul(decimal.NewFromFloat(mult - 1))
	}

	weatherSurcharge := weatherSurchargeFor(weather)
	timeMult := timeMultiplier(req.ScheduledAt)
	geoMult := a.zones.Multiplier(zipOf(req.Location))

	suggested := basePrice.Add(demandAdjustment).Add(weatherSurcharge).
		Mul(decimal.NewFromFloat(timeMult)).
		Mul(decimal.NewFromFloat(geoMult))

	// Never suggest below half the base price.
	floor := basePrice.Div(decimal.NewFromInt(2))
	if suggested.LessThan(floor) {
		suggested = floor
	}

	adj := types.Adjustments{
		DemandLevel:      level,
		DemandScore:      score,
		WeatherSurcharge: weatherSurcharge,
		TimeMultiplier:   timeMult,
		GeoMultiplier:    geoMult,
		SuggestedTotal:   types.Round2(suggested),
	}
	adj.Reasoning = reasoning(adj, weather, demandAdjustment)
	return adj
}

// demandLevel sums booking counters over the ±2 hour window around the slot.
func (a *Adjuster) demandLevel(ctx context.Context, at time.Time) (types.DemandLevel, float64) {
	if a.cache == nil {
		return types.DemandNormal, 0.5
	}

	count := 0
	for offset := -2; offset <= 2; offset++ {
		key := slotKey(at.Add(time.Duration(offset) * time.Hour))
		v, err := a.cache.Get(ctx, key)
		if err != nil {
			if !kv.IsMiss(err) {
				a.log.Warn("demand counter read failed", zap.String("key", key), zap.Error(err))
			}
			continue
		}
		if n, perr := strconv.Atoi(v); perr == nil {
			count += n
		}
	}

	score := float64(count) / slotCapacity
	if score > 1 {
		score = 1
	}

	switch {
	case score >= surgeThreshold:
		return types.DemandSurge, score
	case score >= highThreshold:
		return types.DemandHigh, score
	case score >= lowDemandThreshold:
		return types.DemandNormal, score
	default:
		return types.DemandLow, score
	}
}

func (a *Adjuster) weatherConditions(ctx context.Context, req types.QuoteRequest) WeatherConditions {
	cond, err := a.weather.Conditions(ctx, req.Location, req.ScheduledAt)
	if err != nil {
		a.log.Warn("weather lookup failed, assuming clear conditions", zap.Error(err))
		return WeatherConditions{Current: "clear", Temperature: 75}
	}
	return cond
}

func weatherSurchargeFor(w WeatherConditions) decimal.Decimal {
	switch {
	case w.Severity >= 7:
		s := severeWeatherSurcharge.Add(decimal.NewFromFloat((w.Severity - 7) * 5))
		if s.GreaterThan(extremeWeatherMax) {
			return extremeWeatherMax
		}
		return types.Round2(s)
	case w.Severity >= 3:
		return moderateWeatherSurcharge
	default:
		return decimal.Zero
	}
}

// timeMultiplier combines peak-hour, after-hours, and seasonal multipliers.
func timeMultiplier(at time.Time) float64 {
	hour := at.Hour()
	weekday := at.Weekday()
	isWeekday := weekday >= time.Monday && weekday <= time.Friday

	mult := 1.0

	if isWeekday {
		switch hour {
		case 9, 10, 11, 14, 15, 16:
			mult *= 1.2
		}
	}

	if isWeekday {
		if hour >= 18 || hour < 8 {
			mult *= 1.4
		}
	} else {
		if hour >= 20 || hour < 9 {
			mult *= 1.4
		}
	}

	// Real estate season runs higher.
	switch at.Month() {
	case time.November, time.December, time.April, time.May:
		mult *= 1.1
	}

	return mult
}

func reasoning(adj types.Adjustments, weather WeatherConditions, demandAdjustment decimal.Decimal) []string {
	var out []string

	if demandAdjustment.IsPositive() {
		out = append(out, fmt.Sprintf("High demand surcharge: %s demand in time slot", adj.DemandLevel))
	} else if demandAdjustment.IsNegative() {
		out = append(out, fmt.Sprintf("Low demand discount: %s demand in time slot", adj.DemandLevel))
	}

	if adj.WeatherSurcharge.IsPositive() {
		out = append(out, fmt.Sprintf("Weather surcharge: %s conditions", weather.Current))
	}

	if adj.TimeMultiplier > 1 {
		out = append(out, "Time-based surcharge: peak hours or after-hours service")
	}

	if adj.GeoMultiplier != 1 {
		out = append(out, fmt.Sprintf("Geographic adjustment: %+.0f%% for service area", (adj.GeoMultiplier-1)*100))
	}

	if len(out) == 0 {
		out = append(out, "Standard pricing applies")
	}

	return out
}

func slotKey(t time.Time) string {
	return demandKeyPrefix + t.UTC().Format("2006010215")
}

func zipOf(loc types.Location) string {
	// Addresses end with "City, ST 77591" in the booking flow; take the last
	// 5-digit run.
	digits := 0
	for i := len(loc.Address) - 1; i >= 0; i-- {
		c := loc.Address[i]
		if c >= '0' && c <= '9' {
			digits++
			if digits == 5 {
				return loc.Address[i : i+5]
			}
		} else if digits > 0 {
			break
		}
	}
	return ""
}
