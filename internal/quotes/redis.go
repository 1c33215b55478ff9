// internal/quotes/redis.go
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rate-engine/internal/common/errors"
	"rate-engine/internal/models"
)

// RedisRecordStore persists records as JSON under quote:request:<id> with a
// TTL, so finished requests age out instead of accumulating forever.
type RedisRecordStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRecordStore(client *redis.Client, ttl time.Duration) *RedisRecordStore {
	return &RedisRecordStore{client: client, ttl: ttl}
}

func recordKey(requestID string) string {
	return fmt.Sprintf("quote:request:%s", requestID)
}

func (s *RedisRecordStore) Save(ctx context.Context, rec *models.QuoteRequestRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.NewStoreWriteFailedError(err)
	}
	if err := s.client.Set(ctx, recordKey(rec.RequestID), data, s.ttl).Err(); err != nil {
		return errors.NewStoreWriteFailedError(err)
	}
	return nil
}

func (s *RedisRecordStore) Get(ctx context.Context, requestID string) (*models.QuoteRequestRecord, error) {
	data, err := s.client.Get(ctx, recordKey(requestID)).Bytes()
	if err == redis.Nil {
		return nil, errors.NewRequestNotFoundError(requestID)
	}
	if err != nil {
		return nil, errors.NewStoreReadFailedError(err)
	}
	var rec models.QuoteRequestRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.NewStoreReadFailedError(err)
	}
	return &rec, nil
}
