package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/suppstack/suppstack-backend/internal/handlers"
	"github.com/suppstack/suppstack-backend/internal/middleware"
)

type RouterConfig struct {
	AllowOrigins []string

	IdentityMiddleware    *middleware.IdentityMiddleware
	CatalogHandler        *handlers.CatalogHandler
	RecommendationHandler *handlers.RecommendationHandler
	RuleHandler           *handlers.RuleHandler
	ScheduleHandler       *handlers.ScheduleHandler
	ProfileHandler        *handlers.ProfileHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("suppstack-backend"))

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:19006"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     normalizeOrigins(origins),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-User-ID"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.IdentityMiddleware.RequireUser())
	// Catalog
	api.GET("/catalog", cfg.CatalogHandler.ListItems)
	// Recommendations
	api.GET("/recommendations", cfg.RecommendationHandler.GetRecommendations)
	api.POST("/planning", cfg.RecommendationHandler.MaterializeRule)
	// Rules
	api.GET("/rules", cfg.RuleHandler.ListRules)
	api.DELETE("/rules/:id", cfg.RuleHandler.DeleteRule)
	// Schedule
	api.GET("/schedule", cfg.ScheduleHandler.GetSchedule)
	api.POST("/schedule/regenerate", cfg.ScheduleHandler.Regenerate)
	api.POST("/schedule/:id/taken", cfg.ScheduleHandler.MarkTaken)
	api.POST("/schedule/:id/snooze", cfg.ScheduleHandler.Snooze)
	// Profile
	api.GET("/profile", cfg.ProfileHandler.GetProfile)
	api.PUT("/profile", cfg.ProfileHandler.SaveProfile)
	api.GET("/training-slots", cfg.ProfileHandler.GetTrainingSlots)
	api.PUT("/training-slots", cfg.ProfileHandler.SaveTrainingSlots)

	return router
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
