package scanqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Jasith06/jlink-pos-web/rdx"
)

// RedisStore keeps the queue as one JSON value under a fixed key, so the
// wholesale-rewrite contract carries over unchanged from the file layout.
type RedisStore struct {
	key string
}

func NewRedisStore(key string) *RedisStore {
	return &RedisStore{key: key}
}

func (s *RedisStore) Load(ctx context.Context) ([]ScanRecord, error) {
	data, err := rdx.RdxGet(ctx, s.key)
	if errors.Is(err, redis.Nil) {
		return []ScanRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get queue: %w", err)
	}

	var records []ScanRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("parse queue value: %w", err)
	}
	return records, nil
}

func (s *RedisStore) Save(ctx context.Context, records []ScanRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode queue: %w", err)
	}
	if err := rdx.RdxSet(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("redis set queue: %w", err)
	}
	return nil
}
