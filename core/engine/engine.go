// Package engine - the pricing orchestrator.
// Sequences validation, travel, surcharges, discounts, upsells, confidence,
// and breakdown assembly into one QuoteResult. All-or-nothing per call.
package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"notary-pricing/core/breakdown"
	"notary-pricing/core/confidence"
	"notary-pricing/core/discount"
	"notary-pricing/core/dynamic"
	"notary-pricing/core/kv"
	"notary-pricing/core/rates"
	"notary-pricing/core/surcharge"
	"notary-pricing/core/travel"
	"notary-pricing/core/types"
	"notary-pricing/core/upsell"
	"notary-pricing/internal/errors"
)

// Version stamps every quote with the engine revision
const Version = "2.0.0"

const (
	resultKeyPrefix = "quote:"
	resultCacheTTL  = 5 * time.Minute
)

var depositThreshold = decimal.NewFromInt(100)

// Recorder persists calculated quotes for auditing. Optional; failures are
// logged, never surfaced.
type Recorder interface {
	Record(ctx context.Context, req types.QuoteRequest, res *types.QuoteResult) error
}

// Config wires the engine's collaborators explicitly. No module-level
// singletons: construct once at process start, inject fakes in tests.
type Config struct {
	Rates      *rates.Table
	Travel     *travel.Calculator
	Discounts  *discount.Calculator
	Surcharges surcharge.Schedule
	Adjuster   *dynamic.Adjuster
	Cache      kv.Store
	Recorder   Recorder
	BaseZIP    string
	Logger     *zap.Logger

	// Now overrides the clock, for tests
	Now func() time.Time
}

// Engine is the sole public entry point for price calculations
type Engine struct {
	cfg Config
}

// New builds an engine from an explicit configuration.
func New(cfg Config) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.BaseZIP == "" {
		cfg.BaseZIP = "77591"
	}
	return &Engine{cfg: cfg}
}

// Calculate produces a full quote for the request.
//
// Validation happens before any cache or network call. Travel and discounts
// fan out concurrently; surcharges are pure and computed inline. The result
// is cached under a hash of the normalized request for a short TTL.
func (e *Engine) Calculate(ctx context.Context, req types.QuoteRequest) (*types.QuoteResult, error) {
	if err := Validate(e.cfg.Rates, req); err != nil {
		return nil, err
	}

	rate, err := e.cfg.Rates.Get(req.ServiceType)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	log := e.cfg.Logger.With(zap.String("requestId", requestID), zap.String("serviceType", string(req.ServiceType)))

	cacheKey := resultKeyPrefix + hashRequest(req)
	if cached := e.cachedResult(ctx, cacheKey); cached != nil {
		log.Debug("quote served from cache", zap.String("cacheKey", cacheKey))
		return cached, nil
	}

	log.Info("quote calculation started")

	var (
		travelResult types.TravelResult
		discounts    decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tr, terr := e.cfg.Travel.Compute(gctx, req.ServiceType, req.Location)
		if terr != nil {
			return terr
		}
		travelResult = tr
		return nil
	})
	g.Go(func() error {
		discounts = e.cfg.Discounts.Compute(gctx, discount.Input{
			PromoCode:     req.PromoCode,
			CustomerEmail: req.CustomerEmail,
			ReferralCode:  req.ReferralCode,
			DocumentCount: req.DocumentCount,
			ServiceType:   req.ServiceType,
		})
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, errors.Calculation("quote calculation failed", err)
	}

	surcharges := surcharge.Compute(e.cfg.Surcharges, req.ServiceType, req.ScheduledAt, req.Options)

	extraDocs := 0
	extraDocFee := decimal.Zero
	if req.DocumentCount > rate.MaxDocuments {
		extraDocs = req.DocumentCount - rate.MaxDocuments
		extraDocFee = rate.ExtraDocumentFee.Mul(decimal.NewFromInt(int64(extraDocs)))
	}

	total := rate.BasePrice.Add(travelResult.Fee).Add(extraDocFee).Add(surcharges).Sub(discounts)
	if total.IsNegative() {
		total = decimal.Zero
	}

	deposit := decimal.Zero
	if total.GreaterThan(depositThreshold) {
		deposit = types.Round2(total.Div(decimal.NewFromInt(2)))
	}

	result := &types.QuoteResult{
		BasePrice:        rate.BasePrice,
		TravelFee:        travelResult.Fee,
		ExtraDocumentFee: extraDocFee,
		Surcharges:       surcharges,
		Discounts:        discounts,
		Total:            total,
		Deposit:          deposit,
		Breakdown: breakdown.Build(breakdown.Input{
			BasePrice:        rate.BasePrice,
			Travel:           travelResult,
			ExtraDocumentFee: extraDocFee,
			ExtraDocuments:   extraDocs,
			Surcharges:       surcharges,
			Discounts:        discounts,
			BaseZIP:          e.cfg.BaseZIP,
		}),
		UpsellSuggestions: upsell.Detect(e.cfg.Rates, req, travelResult, e.cfg.Now()),
		Confidence:        confidence.Score(req, travelResult),
		Metadata: types.Metadata{
			CalculatedAt: e.cfg.Now().UTC(),
			Version:      Version,
			RequestID:    requestID,
		},
	}

	if e.cfg.Adjuster != nil {
		adj := e.cfg.Adjuster.Evaluate(ctx, req, rate.BasePrice)
		result.Adjustments = &adj
	}

	e.cacheResult(ctx, cacheKey, result, log)

	if e.cfg.Recorder != nil {
		if rerr := e.cfg.Recorder.Record(ctx, req, result); rerr != nil {
			log.Warn("quote audit record failed", zap.Error(rerr))
		}
	}

	log.Info("quote calculation completed",
		zap.String("total", result.Total.String()),
		zap.Int("upsells", len(result.UpsellSuggestions)),
		zap.String("confidence", string(result.Confidence.Level)))

	return result, nil
}

// Validate checks the request against the schema. Unknown service types fail
// here, before any external call.
func Validate(table *rates.Table, req types.QuoteRequest) error {
	fields := make(map[string]string)

	if req.ServiceType == "" {
		fields["serviceType"] = "required"
	} else if !req.ServiceType.Valid() {
		return errors.UnknownService(string(req.ServiceType))
	} else if _, err := table.Get(req.ServiceType); err != nil {
		return err
	}

	if req.ScheduledAt.IsZero() {
		fields["scheduledDateTime"] = "required"
	}
	if req.DocumentCount < 1 {
		fields["documentCount"] = "must be at least 1"
	}
	if req.SignerCount < 1 {
		fields["signerCount"] = "must be at least 1"
	}
	if req.CustomerEmail != "" {
		if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
			fields["customerEmail"] = "invalid email address"
		}
	}

	if len(fields) > 0 {
		return errors.Validation(fields)
	}
	return nil
}

// normalizedRequest pins the field order and representation the cache key is
// derived from.
type normalizedRequest struct {
	ServiceType   string `json:"st"`
	Address       string `json:"addr"`
	ScheduledAt   string `json:"at"`
	DocumentCount int    `json:"docs"`
	SignerCount   int    `json:"signers"`
	Priority      bool   `json:"prio"`
	WeatherAlert  bool   `json:"weather"`
	SameDay       bool   `json:"sameday"`
	CustomerEmail string `json:"email"`
	PromoCode     string `json:"promo"`
	ReferralCode  string `json:"referral"`
}

func hashRequest(req types.QuoteRequest) string {
	n := normalizedRequest{
		ServiceType:   string(req.ServiceType),
		Address:       req.Location.Address,
		ScheduledAt:   req.ScheduledAt.UTC().Format(time.RFC3339),
		DocumentCount: req.DocumentCount,
		SignerCount:   req.SignerCount,
		Priority:      req.Options.Priority,
		WeatherAlert:  req.Options.WeatherAlert,
		SameDay:       req.Options.SameDay,
		CustomerEmail: req.CustomerEmail,
		PromoCode:     req.PromoCode,
		ReferralCode:  req.ReferralCode,
	}
	raw, _ := json.Marshal(n)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func (e *Engine) cachedResult(ctx context.Context, key string) *types.QuoteResult {
	if e.cfg.Cache == nil {
		return nil
	}
	raw, err := e.cfg.Cache.Get(ctx, key)
	if err != nil {
		if !kv.IsMiss(err) {
			e.cfg.Logger.Warn("quote cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	var res types.QuoteResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		e.cfg.Logger.Warn("quote cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &res
}

// cacheResult writes best-effort. Concurrent calls with the same key may race
// here; last-writer-wins is fine since the values are computed identically.
func (e *Engine) cacheResult(ctx context.Context, key string, res *types.QuoteResult, log *zap.Logger) {
	if e.cfg.Cache == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		log.Warn("quote cache marshal failed", zap.Error(err))
		return
	}
	if err := e.cfg.Cache.Set(ctx, key, string(raw), resultCacheTTL); err != nil {
		log.Warn("quote cache write failed", zap.String("key", key), zap.Error(err))
	}
}
