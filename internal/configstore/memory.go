// internal/configstore/memory.go
package configstore

import (
	"context"
	"sync"

	"rate-engine/internal/models"
)

// MemoryStore is an in-process Store for tests and local runs.
type MemoryStore struct {
	mu        sync.RWMutex
	customers map[string]map[string]models.CarrierConfig
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{customers: make(map[string]map[string]models.CarrierConfig)}
}

func (s *MemoryStore) Get(ctx context.Context, customerID string) (map[string]models.CarrierConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]models.CarrierConfig, len(s.customers[customerID]))
	for id, cfg := range s.customers[customerID] {
		out[id] = cfg
	}
	return out, nil
}

func (s *MemoryStore) Set(ctx context.Context, customerID, carrierID string, cfg *models.CarrierConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg == nil {
		delete(s.customers[customerID], carrierID)
		return nil
	}

	if s.customers[customerID] == nil {
		s.customers[customerID] = make(map[string]models.CarrierConfig)
	}
	s.customers[customerID][carrierID] = *cfg
	return nil
}
