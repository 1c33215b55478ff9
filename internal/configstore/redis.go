// internal/configstore/redis.go
package configstore

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"rate-engine/internal/common/errors"
	"rate-engine/internal/models"
)

const redisKeyPrefix = "carrier:config:"

// RedisStore keeps each customer's configs in one hash, one field per
// carrier, JSON-encoded values.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, customerID string) (map[string]models.CarrierConfig, error) {
	fields, err := s.client.HGetAll(ctx, redisKeyPrefix+customerID).Result()
	if err != nil {
		return nil, errors.NewStoreReadFailedError(err)
	}

	out := make(map[string]models.CarrierConfig, len(fields))
	for carrierID, raw := range fields {
		var cfg models.CarrierConfig
		if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
			return nil, errors.NewStoreReadFailedError(err)
		}
		out[carrierID] = cfg
	}
	return out, nil
}

func (s *RedisStore) Set(ctx context.Context, customerID, carrierID string, cfg *models.CarrierConfig) error {
	key := redisKeyPrefix + customerID

	if cfg == nil {
		if err := s.client.HDel(ctx, key, carrierID).Err(); err != nil {
			return errors.NewStoreWriteFailedError(err)
		}
		return nil
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return errors.NewStoreWriteFailedError(err)
	}
	if err := s.client.HSet(ctx, key, carrierID, raw).Err(); err != nil {
		return errors.NewStoreWriteFailedError(err)
	}
	return nil
}
