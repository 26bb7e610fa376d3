package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// TravelResult is the outcome of the travel fee calculation
type TravelResult struct {
	// Fee is the overage fee beyond the included radius
	Fee decimal.Decimal `json:"fee"`

	// DistanceMiles is the driving distance from the base location
	DistanceMiles float64 `json:"distanceMiles"`

	// WithinIncludedArea is true when the destination falls inside the
	// service's included travel radius
	WithinIncludedArea bool `json:"withinIncludedArea"`
}

// LineItemKind classifies a breakdown line item
type LineItemKind string

const (
	LineBase      LineItemKind = "base"
	LineTravel    LineItemKind = "travel"
	LineDocuments LineItemKind = "documents"
	LineSurcharge LineItemKind = "surcharge"
	LineDiscount  LineItemKind = "discount"
)

// LineItem is one row of the customer-facing price breakdown
type LineItem struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        LineItemKind    `json:"kind"`
}

// Transparency holds the free-text notes explaining how the price was built
type Transparency struct {
	TravelCalculation    string `json:"travelCalculation,omitempty"`
	SurchargeExplanation string `json:"surchargeExplanation,omitempty"`
	DiscountSource       string `json:"discountSource,omitempty"`
}

// Breakdown is the ordered, display-ready price breakdown
type Breakdown struct {
	LineItems    []LineItem   `json:"lineItems"`
	Transparency Transparency `json:"transparency"`
}

// UpsellKind classifies an upsell suggestion
type UpsellKind string

const (
	UpsellServiceUpgrade UpsellKind = "service_upgrade"
	UpsellAddOn          UpsellKind = "add_on"
)

// UpsellSuggestion is an advisory, non-binding recommendation. Never billed
// automatically.
type UpsellSuggestion struct {
	Kind          UpsellKind      `json:"kind"`
	FromService   ServiceType     `json:"fromService,omitempty"`
	ToService     ServiceType     `json:"toService,omitempty"`
	PriceIncrease decimal.Decimal `json:"priceIncrease"`
	Headline      string          `json:"headline"`
	Benefit       string          `json:"benefit"`
	Savings       decimal.Decimal `json:"savings,omitempty"`
	Urgency       string          `json:"urgency,omitempty"`
	Condition     string          `json:"condition,omitempty"`
}

// ConfidenceLevel grades how certain the quoted price is
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Confidence is descriptive metadata for the UI, not used in pricing math
type Confidence struct {
	Level                ConfidenceLevel `json:"level"`
	Factors              []string        `json:"factors"`
	CompetitiveAdvantage string          `json:"competitiveAdvantage,omitempty"`
}

// DemandLevel grades booking pressure in the requested time slot
type DemandLevel string

const (
	DemandLow    DemandLevel = "low"
	DemandNormal DemandLevel = "normal"
	DemandHigh   DemandLevel = "high"
	DemandSurge  DemandLevel = "surge"
)

// Adjustments is the advisory dynamic-pricing section of a quote. The binding
// total is the additive sum; this records what surge pricing would charge.
type Adjustments struct {
	DemandLevel      DemandLevel     `json:"demandLevel"`
	DemandScore      float64         `json:"demandScore"`
	WeatherSurcharge decimal.Decimal `json:"weatherSurcharge"`
	TimeMultiplier   float64         `json:"timeMultiplier"`
	GeoMultiplier    float64         `json:"geoMultiplier"`
	SuggestedTotal   decimal.Decimal `json:"suggestedTotal"`
	Reasoning        []string        `json:"reasoning"`
}

// Metadata stamps a quote with its provenance
type Metadata struct {
	CalculatedAt time.Time `json:"calculatedAt"`
	Version      string    `json:"version"`
	RequestID    string    `json:"requestId,omitempty"`
}

// QuoteResult is the full output of one price calculation. Created fresh per
// request, handed to callers by value, never mutated after creation.
type QuoteResult struct {
	BasePrice         decimal.Decimal    `json:"basePrice"`
	TravelFee         decimal.Decimal    `json:"travelFee"`
	ExtraDocumentFee  decimal.Decimal    `json:"extraDocumentFee"`
	Surcharges        decimal.Decimal    `json:"surcharges"`
	Discounts         decimal.Decimal    `json:"discounts"`
	Total             decimal.Decimal    `json:"total"`
	Deposit           decimal.Decimal    `json:"deposit"`
	Breakdown         Breakdown          `json:"breakdown"`
	UpsellSuggestions []UpsellSuggestion `json:"upsellSuggestions"`
	Confidence        Confidence         `json:"confidence"`
	Adjustments       *Adjustments       `json:"adjustments,omitempty"`
	Metadata          Metadata           `json:"metadata"`
}
