// internal/quotes/memory.go
package quotes

import (
	"context"
	"sync"

	"rate-engine/internal/common/errors"
	"rate-engine/internal/models"
)

// MemoryRecordStore keeps records in process memory. Suitable for tests and
// single-instance deployments; records are lost on restart.
type MemoryRecordStore struct {
	mu      sync.RWMutex
	records map[string]models.QuoteRequestRecord
}

func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{records: make(map[string]models.QuoteRequestRecord)}
}

func (s *MemoryRecordStore) Save(ctx context.Context, rec *models.QuoteRequestRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	cp.Responses = append([]models.PartialCarrierResponse(nil), rec.Responses...)
	s.records[rec.RequestID] = cp
	return nil
}

func (s *MemoryRecordStore) Get(ctx context.Context, requestID string) (*models.QuoteRequestRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[requestID]
	if !ok {
		return nil, errors.NewRequestNotFoundError(requestID)
	}
	cp := rec
	cp.Responses = append([]models.PartialCarrierResponse(nil), rec.Responses...)
	return &cp, nil
}
