// internal/configstore/postgres.go
package configstore

import (
	"context"
	"database/sql"
	"encoding/json"

	"rate-engine/internal/common/errors"
	"rate-engine/internal/models"
)

// PostgresStore backs the config store with a carrier_configs table:
// (customer_id, carrier_id, config jsonb), primary key on the pair.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, customerID string) (map[string]models.CarrierConfig, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT carrier_id, config
		FROM carrier_configs WHERE customer_id = $1`, customerID)
	if err != nil {
		return nil, errors.NewStoreReadFailedError(err)
	}
	defer rows.Close()

	out := make(map[string]models.CarrierConfig)
	for rows.Next() {
		var carrierID string
		var raw []byte
		if err := rows.Scan(&carrierID, &raw); err != nil {
			return nil, errors.NewStoreReadFailedError(err)
		}
		var cfg models.CarrierConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, errors.NewStoreReadFailedError(err)
		}
		out[carrierID] = cfg
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreReadFailedError(err)
	}
	return out, nil
}

func (s *PostgresStore) Set(ctx context.Context, customerID, carrierID string, cfg *models.CarrierConfig) error {
	if cfg == nil {
		_, err := s.db.ExecContext(ctx, `
			DELETE FROM carrier_configs
			WHERE customer_id = $1 AND carrier_id = $2`, customerID, carrierID)
		if err != nil {
			return errors.NewStoreWriteFailedError(err)
		}
		return nil
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return errors.NewStoreWriteFailedError(err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO carrier_configs (customer_id, carrier_id, config)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id, carrier_id) DO UPDATE SET config = $3`,
		customerID, carrierID, raw)
	if err != nil {
		return errors.NewStoreWriteFailedError(err)
	}
	return nil
}
