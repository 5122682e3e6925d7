package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/murkotick/invoice-dashboard-service/internal/pkg/logger"
)

type RedisCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

// NewRedisCache connects to addr and pings it.
func NewRedisCache(ctx context.Context, addr, prefix string, log *logger.Logger) (*RedisCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisCacheFromClient(rdb, prefix, log), nil
}

func NewRedisCacheFromClient(rdb *goredis.Client, prefix string, log *logger.Logger) *RedisCache {
	return &RedisCache{log: log.With("service", "RedisViewCache"), rdb: rdb, prefix: prefix}
}

func (c *RedisCache) Invalidate(ctx context.Context, path string) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("redis view cache not initialized")
	}
	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, viewKey(c.prefix, path))
	incr := pipe.Incr(ctx, versionKey(c.prefix, path))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("invalidate %s: %w", path, err)
	}
	c.log.Debug("view invalidated", "path", path, "version", incr.Val())
	return nil
}

func (c *RedisCache) Version(ctx context.Context, path string) (int64, error) {
	if c == nil || c.rdb == nil {
		return 0, fmt.Errorf("redis view cache not initialized")
	}
	v, err := c.rdb.Get(ctx, versionKey(c.prefix, path)).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("version %s: %w", path, err)
	}
	return v, nil
}

func (c *RedisCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
