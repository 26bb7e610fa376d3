package api

import "notary-pricing/core/types"

// QuoteRequestDTO is the wire form of a quote request
type QuoteRequestDTO struct {
	ServiceType string `json:"serviceType"`
	Location    struct {
		Address   string   `json:"address"`
		Latitude  *float64 `json:"latitude,omitempty"`
		Longitude *float64 `json:"longitude,omitempty"`
	} `json:"location"`
	ScheduledDateTime string `json:"scheduledDateTime"`
	DocumentCount     int    `json:"documentCount"`
	SignerCount       int    `json:"signerCount"`
	Options           struct {
		Priority     bool `json:"priority"`
		WeatherAlert bool `json:"weatherAlert"`
		SameDay      bool `json:"sameDay"`
	} `json:"options"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	PromoCode     string `json:"promoCode,omitempty"`
	ReferralCode  string `json:"referralCode,omitempty"`
}

// ErrorResponse is the error envelope
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the error code, message, and per-field details
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// HealthResponse reports service health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// RatesResponse lists the rate table
type RatesResponse struct {
	Rates []RateDTO `json:"rates"`
}

// RateDTO is the wire form of one service rate
type RateDTO struct {
	ServiceType         types.ServiceType `json:"serviceType"`
	BasePrice           string            `json:"basePrice"`
	IncludedRadiusMiles float64           `json:"includedRadiusMiles"`
	FeePerExcessMile    string            `json:"feePerExcessMile"`
	MaxDocuments        int               `json:"maxDocuments"`
	ExtraDocumentFee    string            `json:"extraDocumentFee"`
}
