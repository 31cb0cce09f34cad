package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"

	"github.com/beyzakarasahann/AcuRate-sub001/internal/pkg/ctxutil"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/pkg/logger"
)

// ResultCache stores serialized aggregation results keyed by snapshot scope.
// The engine itself stays pure; only the service layer reads and writes here.
type ResultCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
	Close() error
}

type resultCache struct {
	log *logger.Logger
	rdb *goredis.Client
}

// NewResultCache connects using REDIS_ADDR. A missing address is an error;
// callers that want to run cacheless pass a nil ResultCache instead.
func NewResultCache(log *logger.Logger) (ResultCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &resultCache{log: log.With("service", "ResultCache"), rdb: rdb}, nil
}

func (c *resultCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, fmt.Errorf("result cache not initialized")
	}
	ctx = ctxutil.Default(ctx)
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// A stale or truncated entry behaves like a miss.
		c.log.Warn("dropping undecodable cache entry", "key", key, "error", err)
		_ = c.rdb.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (c *resultCache) Set(ctx context.Context, key string, val any, ttl time.Duration) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("result cache not initialized")
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}
	if err := c.rdb.Set(ctxutil.Default(ctx), key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *resultCache) Invalidate(ctx context.Context, key string) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("result cache not initialized")
	}
	return c.rdb.Del(ctx, key).Err()
}

func (c *resultCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
