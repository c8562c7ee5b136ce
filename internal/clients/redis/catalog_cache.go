package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/suppstack/suppstack-backend/internal/logger"
	"github.com/suppstack/suppstack-backend/internal/types"
)

// catalogKey is versioned so a shape change in Item invalidates old payloads.
const catalogKey = "catalog:v1"

// CatalogCache is a read-through cache for the item catalog. The catalog is
// small and changes rarely, so a short TTL and whole-list payloads are
// enough. A nil *CatalogCache is a valid no-op cache: deployments without
// REDIS_ADDR just hit the database.
type CatalogCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewCatalogCache(log *logger.Logger, ttl time.Duration) (*CatalogCache, error) {
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

	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &CatalogCache{
		log: log.With("service", "RedisCatalogCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

// Get returns the cached catalog, or (nil, false) on miss or any redis
// problem. Cache failures never surface: the caller falls back to the store.
func (c *CatalogCache) Get(ctx context.Context) ([]types.Item, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("Catalog cache read failed", "error", err)
		}
		return nil, false
	}
	var items []types.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		c.log.Warn("Catalog cache payload corrupt, dropping", "error", err)
		_ = c.rdb.Del(ctx, catalogKey).Err()
		return nil, false
	}
	return items, true
}

func (c *CatalogCache) Set(ctx context.Context, items []types.Item) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		c.log.Warn("Catalog cache encode failed", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, catalogKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Catalog cache write failed", "error", err)
	}
}

func (c *CatalogCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, catalogKey).Err(); err != nil {
		c.log.Warn("Catalog cache invalidate failed", "error", err)
	}
}

func (c *CatalogCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
