package rdx

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init dials Redis when REDIS_ADDR is configured. Redis is only required
// for the redis-backed scan queue; callers that select it get a connection
// error at startup rather than failures on the first scan.
func Init(ctx context.Context) error {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return fmt.Errorf("REDIS_ADDR is not set")
	}

	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := Conn.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func RdxGet(ctx context.Context, key string) (string, error) {
	return Conn.Get(ctx, key).Result()
}

func RdxSet(ctx context.Context, key, value string) error {
	return Conn.Set(ctx, key, value, 0).Err()
}
