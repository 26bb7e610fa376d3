// Package discount stacks customer discounts: first-time, referral, volume,
// and promo codes.
package discount

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"notary-pricing/core/kv"
	"notary-pricing/core/rates"
	"notary-pricing/core/types"
)

const (
	firstTimeKeyPrefix = "first_time:"
	promoKeyPrefix     = "promo:"

	firstTimeTTL = time.Hour
	promoTTL     = 30 * time.Minute
)

// Amounts holds the fixed and percentage discount rules
type Amounts struct {
	FirstTime        decimal.Decimal
	Referral         decimal.Decimal
	VolumePercentage decimal.Decimal
	VolumeMinDocs    int
}

// DefaultAmounts returns the standard discount rules.
func DefaultAmounts() Amounts {
	return Amounts{
		FirstTime:        decimal.NewFromInt(15),
		Referral:         decimal.NewFromInt(20),
		VolumePercentage: decimal.New(10, -2),
		VolumeMinDocs:    3,
	}
}

// builtinPromoCodes are the compiled-in promotional codes. A promo lookup
// that misses both the cache and this table resolves to zero, not an error.
var builtinPromoCodes = map[string]int64{
	"WELCOME15": 15,
	"NEWCLIENT": 20,
	"SAVE10":    10,
}

// Calculator combines the discount rules with the shared KV cache
type Calculator struct {
	amounts Amounts
	rates   *rates.Table
	cache   kv.Store
	log     *zap.Logger
}

// NewCalculator builds a discount calculator. cache may be nil; every cached
// discount then contributes zero except the promo builtin table.
func NewCalculator(amounts Amounts, table *rates.Table, cache kv.Store, log *zap.Logger) *Calculator {
	return &Calculator{amounts: amounts, rates: table, cache: cache, log: log}
}

// Input carries the request fields the discount rules inspect
type Input struct {
	PromoCode     string
	CustomerEmail string
	ReferralCode  string
	DocumentCount int
	ServiceType   types.ServiceType
}

// Compute sums every applicable discount. A failed sub-lookup contributes
// zero and is logged; this method never fails a quote.
func (c *Calculator) Compute(ctx context.Context, in Input) decimal.Decimal {
	total := decimal.Zero

	if in.CustomerEmail != "" && c.isFirstTimeCustomer(ctx, in.CustomerEmail) {
		total = total.Add(c.amounts.FirstTime)
	}

	// Referral codes are honored as-is; validation, if any, belongs to the
	// booking layer.
	if in.ReferralCode != "" {
		total = total.Add(c.amounts.Referral)
	}

	if in.ServiceType == types.StandardNotary && in.DocumentCount >= c.amounts.VolumeMinDocs {
		if base, err := c.rates.BasePrice(types.StandardNotary); err == nil {
			total = total.Add(types.RoundWhole(base.Mul(c.amounts.VolumePercentage)))
		}
	}

	if in.PromoCode != "" {
		total = total.Add(c.promoDiscount(ctx, in.PromoCode))
	}

	return total
}

// isFirstTimeCustomer resolves first-time status from the cache.
//
// StickyFirstTimeAssumption: a miss is recorded as "first-time" for the TTL
// window, so a genuine repeat customer quoted again within the hour keeps the
// discount. Deliberately preserved behavior; revisit against a real customer
// record before changing it.
func (c *Calculator) isFirstTimeCustomer(ctx context.Context, email string) bool {
	if c.cache == nil {
		return false
	}
	key := firstTimeKeyPrefix + strings.ToLower(email)

	cached, err := c.cache.Get(ctx, key)
	if err == nil {
		return cached == "true"
	}
	if !kv.IsMiss(err) {
		c.log.Warn("first-time customer lookup failed", zap.String("key", key), zap.Error(err))
		return false
	}

	if err := c.cache.Set(ctx, key, "true", firstTimeTTL); err != nil {
		c.log.Warn("first-time customer cache write failed", zap.String("key", key), zap.Error(err))
	}
	return true
}

// promoDiscount resolves a promo code, caching resolutions for 30 minutes.
// Unknown codes resolve to zero.
func (c *Calculator) promoDiscount(ctx context.Context, code string) decimal.Decimal {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	key := promoKeyPrefix + normalized

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, key)
		if err == nil {
			if n, perr := strconv.ParseInt(cached, 10, 64); perr == nil {
				return decimal.NewFromInt(n)
			}
		} else if !kv.IsMiss(err) {
			c.log.Warn("promo code lookup failed", zap.String("code", normalized), zap.Error(err))
		}
	}

	amount := builtinPromoCodes[normalized]

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, strconv.FormatInt(amount, 10), promoTTL); err != nil {
			c.log.Warn("promo code cache write failed", zap.String("code", normalized), zap.Error(err))
		}
	}

	return decimal.NewFromInt(amount)
}
