// internal/quotes/store.go

// Package quotes implements the asynchronous quote request engine: submit a
// shipment, get a request id back immediately, poll for carrier responses as
// they accumulate.
package quotes

import (
	"context"

	"rate-engine/internal/models"
)

// RecordStore persists quote request records between submit and poll.
type RecordStore interface {
	// Save writes the full record, replacing any previous version.
	Save(ctx context.Context, rec *models.QuoteRequestRecord) error
	// Get returns the record for requestID, or a request-not-found error.
	Get(ctx context.Context, requestID string) (*models.QuoteRequestRecord, error)
}
