package app

import (
	"github.com/gin-gonic/gin"

	"github.com/suppstack/suppstack-backend/internal/logger"
	"github.com/suppstack/suppstack-backend/internal/middleware"
	"github.com/suppstack/suppstack-backend/internal/server"
)

func wireRouter(cfg Config, log *logger.Logger, handlerset Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AllowOrigins:          cfg.AllowOrigins,
		IdentityMiddleware:    middleware.NewIdentityMiddleware(log),
		CatalogHandler:        handlerset.Catalog,
		RecommendationHandler: handlerset.Recommendation,
		RuleHandler:           handlerset.Rule,
		ScheduleHandler:       handlerset.Schedule,
		ProfileHandler:        handlerset.Profile,
	})
}
