package types

import "time"

// Location is the appointment destination. Coordinates are optional hints;
// the distance provider works from the address string.
type Location struct {
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// RequestOptions carries the situational flags a customer can set
type RequestOptions struct {
	// Priority requests the next available slot within 2 hours
	Priority bool `json:"priority"`

	// WeatherAlert marks a request made under an active weather alert
	WeatherAlert bool `json:"weatherAlert"`

	// SameDay marks a same-day booking
	SameDay bool `json:"sameDay"`
}

// QuoteRequest is the input to a price calculation. Immutable once built;
// the engine validates it before any external call.
type QuoteRequest struct {
	ServiceType   ServiceType    `json:"serviceType"`
	Location      Location       `json:"location"`
	ScheduledAt   time.Time      `json:"scheduledAt"`
	DocumentCount int            `json:"documentCount"`
	SignerCount   int            `json:"signerCount"`
	Options       RequestOptions `json:"options"`
	CustomerEmail string         `json:"customerEmail,omitempty"`
	PromoCode     string         `json:"promoCode,omitempty"`
	ReferralCode  string         `json:"referralCode,omitempty"`
}
