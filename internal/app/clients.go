package app

import (
	"os"
	"strings"

	"github.com/suppstack/suppstack-backend/internal/clients/redis"
	"github.com/suppstack/suppstack-backend/internal/logger"
)

type Clients struct {
	CatalogCache *redis.CatalogCache
}

// wireClients builds optional external clients. Missing REDIS_ADDR is not an
// error: the catalog service treats a nil cache as a miss on every read.
func wireClients(log *logger.Logger, cfg Config) Clients {
	log.Info("Wiring clients...")

	var cache *redis.CatalogCache
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		c, err := redis.NewCatalogCache(log, cfg.CatalogCacheTTL)
		if err != nil {
			log.Warn("Could not init redis catalog cache, continuing without it", "error", err)
		} else {
			cache = c
		}
	}

	return Clients{CatalogCache: cache}
}

func (c *Clients) Close() {
	if c.CatalogCache != nil {
		_ = c.CatalogCache.Close()
	}
}
