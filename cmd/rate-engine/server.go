// cmd/rate-engine/server.go
package main

import (
	"encoding/json"
	"net/http"

	"rate-engine/internal/common/errors"
	"rate-engine/internal/common/logger"
	"rate-engine/internal/common/validation"
	"rate-engine/internal/models"
	"rate-engine/internal/orchestrator"
	"rate-engine/internal/quotes"
	"rate-engine/internal/units"
)

// server is the thin HTTP layer over the synchronous orchestrator and the
// async quote engine. All domain behavior lives below it.
type server struct {
	orch    *orchestrator.Orchestrator
	engine  *quotes.Engine
	errs    *errors.ErrorHandler
	logger  logger.Logger
	maxBody int64
}

func newServer(orch *orchestrator.Orchestrator, engine *quotes.Engine, errs *errors.ErrorHandler, log logger.Logger) *server {
	return &server{
		orch:    orch,
		engine:  engine,
		errs:    errs,
		logger:  log,
		maxBody: 1 << 20,
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/quotes/aggregate", s.handleAggregate)
	mux.HandleFunc("POST /v1/quotes", s.handleSubmit)
	mux.HandleFunc("GET /v1/quotes/{id}", s.handleStatus)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// quoteRequest is the submit envelope: who is asking, and what to ship.
type quoteRequest struct {
	CustomerID string          `json:"customerId"`
	Shipment   json.RawMessage `json:"shipment"`
}

// decodeShipment validates and decodes the request body, filling both unit
// systems so every adapter can translate without converting again.
func (s *server) decodeShipment(r *http.Request) (string, models.ShipmentRequest, error) {
	var env quoteRequest
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, s.maxBody))
	if err := dec.Decode(&env); err != nil {
		return "", models.ShipmentRequest{}, errors.NewValidationFailedError("malformed request body: " + err.Error())
	}
	if env.CustomerID == "" {
		return "", models.ShipmentRequest{}, errors.NewValidationFailedError("customerId is required")
	}
	if len(env.Shipment) == 0 {
		return "", models.ShipmentRequest{}, errors.NewValidationFailedError("shipment is required")
	}

	if err := validation.ValidateDocument(env.Shipment); err != nil {
		return "", models.ShipmentRequest{}, err
	}

	var shipment models.ShipmentRequest
	if err := json.Unmarshal(env.Shipment, &shipment); err != nil {
		return "", models.ShipmentRequest{}, errors.NewValidationFailedError("malformed shipment: " + err.Error())
	}
	if shipment.UnitSystem == "" {
		shipment.UnitSystem = models.UnitImperial
	}
	shipment = units.ConvertAll(shipment)

	if err := validation.ValidateShipment(shipment); err != nil {
		return "", models.ShipmentRequest{}, err
	}

	return env.CustomerID, shipment, nil
}

// handleAggregate runs the fan-out synchronously and returns the merged
// result in one response.
func (s *server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	customerID, shipment, err := s.decodeShipment(r)
	if err != nil {
		s.errs.WriteHTTP(w, r, err)
		return
	}

	result, err := s.orch.Aggregate(r.Context(), customerID, shipment)
	if err != nil {
		s.errs.WriteHTTP(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

// handleSubmit starts an async quote request and returns 202 with the record
// the caller polls via handleStatus.
func (s *server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	customerID, shipment, err := s.decodeShipment(r)
	if err != nil {
		s.errs.WriteHTTP(w, r, err)
		return
	}

	rec, err := s.engine.Submit(r.Context(), customerID, shipment)
	if err != nil {
		s.errs.WriteHTTP(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusAccepted, rec)
}

func (s *server) handleStatus(w http.ResponseWriter, r *http.Request) {
	rec, err := s.engine.Status(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errs.WriteHTTP(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, rec)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", map[string]interface{}{"error": err.Error()})
	}
}
