package app

import (
	"strings"
	"time"

	"github.com/suppstack/suppstack-backend/internal/logger"
	"github.com/suppstack/suppstack-backend/internal/planner"
	"github.com/suppstack/suppstack-backend/internal/ranking"
	"github.com/suppstack/suppstack-backend/internal/utils"
)

type Config struct {
	Environment     string
	AllowOrigins    []string
	HorizonDays     int
	RegenInterval   time.Duration
	CatalogCacheTTL time.Duration
	RankingWeights  ranking.Weights
}

func LoadConfig(log *logger.Logger) Config {
	environment := utils.GetEnv("APP_ENV", "development", log)
	horizonDays := utils.GetEnvAsInt("SCHEDULE_HORIZON_DAYS", planner.DefaultHorizonDays, log)
	regenIntervalMin := utils.GetEnvAsInt("SCHEDULE_REGEN_INTERVAL_MIN", 360, log)
	catalogTTLSec := utils.GetEnvAsInt("CATALOG_CACHE_TTL_SEC", 300, log)

	var origins []string
	if raw := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log); raw != "" {
		origins = strings.Split(raw, ",")
	}

	weights := ranking.DefaultWeights()
	if path := utils.GetEnv("RANKING_WEIGHTS_PATH", "", log); path != "" {
		loaded, err := ranking.LoadWeights(path)
		if err != nil {
			log.Warn("Could not load ranking weights, using defaults", "path", path, "error", err)
		} else {
			weights = loaded
		}
	}

	return Config{
		Environment:     environment,
		AllowOrigins:    origins,
		HorizonDays:     horizonDays,
		RegenInterval:   time.Duration(regenIntervalMin) * time.Minute,
		CatalogCacheTTL: time.Duration(catalogTTLSec) * time.Second,
		RankingWeights:  weights,
	}
}
