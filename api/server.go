// Package api - thin HTTP layer over the pricing engine.
// Responsible only for input ingestion, engine invocation, and output
// serialization. The API never performs pricing logic.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"notary-pricing/core/engine"
	"notary-pricing/core/rates"
	"notary-pricing/core/types"
	"notary-pricing/internal/errors"
)

// Server is the API server
type Server struct {
	engine *engine.Engine
	rates  *rates.Table
	mux    *http.ServeMux
	log    *zap.Logger
}

// NewServer wires the HTTP routes over an engine and rate table.
func NewServer(eng *engine.Engine, table *rates.Table, log *zap.Logger) *Server {
	s := &Server{
		engine: eng,
		rates:  table,
		mux:    http.NewServeMux(),
		log:    log,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /quote", s.handleQuote)
	s.mux.HandleFunc("GET /rates", s.handleRates)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleQuote handles POST /quote
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var dto QuoteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error(), nil)
		return
	}

	req, fieldErrs := mapRequest(dto)
	if len(fieldErrs) > 0 {
		s.writeError(w, http.StatusBadRequest, string(errors.TypeValidation), "invalid pricing request", fieldErrs)
		return
	}

	result, err := s.engine.Calculate(r.Context(), req)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

// handleRates handles GET /rates
func (s *Server) handleRates(w http.ResponseWriter, _ *http.Request) {
	all := s.rates.All()
	resp := RatesResponse{Rates: make([]RateDTO, 0, len(all))}
	for _, r := range all {
		resp.Rates = append(resp.Rates, RateDTO{
			ServiceType:         r.ServiceType,
			BasePrice:           r.BasePrice.StringFixed(2),
			IncludedRadiusMiles: r.IncludedRadiusMiles,
			FeePerExcessMile:    r.FeePerExcessMile.StringFixed(2),
			MaxDocuments:        r.MaxDocuments,
			ExtraDocumentFee:    r.ExtraDocumentFee.StringFixed(2),
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: engine.Version})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"version": engine.Version})
}

// mapRequest converts the wire DTO to the domain request, collecting
// wire-level field errors. Domain validation happens inside the engine.
func mapRequest(dto QuoteRequestDTO) (types.QuoteRequest, map[string]string) {
	fieldErrs := make(map[string]string)

	var scheduledAt time.Time
	if dto.ScheduledDateTime == "" {
		fieldErrs["scheduledDateTime"] = "required"
	} else {
		t, err := time.Parse(time.RFC3339, dto.ScheduledDateTime)
		if err != nil {
			fieldErrs["scheduledDateTime"] = "must be an RFC 3339 timestamp"
		} else {
			scheduledAt = t
		}
	}

	if len(fieldErrs) > 0 {
		return types.QuoteRequest{}, fieldErrs
	}

	return types.QuoteRequest{
		ServiceType: types.ServiceType(dto.ServiceType),
		Location: types.Location{
			Address:   dto.Location.Address,
			Latitude:  dto.Location.Latitude,
			Longitude: dto.Location.Longitude,
		},
		ScheduledAt:   scheduledAt,
		DocumentCount: dto.DocumentCount,
		SignerCount:   dto.SignerCount,
		Options: types.RequestOptions{
			Priority:     dto.Options.Priority,
			WeatherAlert: dto.Options.WeatherAlert,
			SameDay:      dto.Options.SameDay,
		},
		CustomerEmail: dto.CustomerEmail,
		PromoCode:     dto.PromoCode,
		ReferralCode:  dto.ReferralCode,
	}, nil
}

func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	if e, ok := err.(*errors.Error); ok {
		status := http.StatusInternalServerError
		if errors.IsValidationClass(err) {
			status = http.StatusBadRequest
		}
		s.writeError(w, status, string(e.Type), e.Message, e.Fields)
		return
	}
	s.writeError(w, http.StatusInternalServerError, string(errors.TypeCalculation), "quote calculation failed", nil)
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string, fields map[string]string) {
	s.writeJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message, Fields: fields}})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("response encoding failed", zap.Error(err))
	}
}
