package app

import (
	"github.com/suppstack/suppstack-backend/internal/handlers"
	"github.com/suppstack/suppstack-backend/internal/logger"
)

type Handlers struct {
	Catalog        *handlers.CatalogHandler
	Recommendation *handlers.RecommendationHandler
	Rule           *handlers.RuleHandler
	Schedule       *handlers.ScheduleHandler
	Profile        *handlers.ProfileHandler
}

func wireHandlers(log *logger.Logger, serviceset Services, reposet Repos) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Catalog:        handlers.NewCatalogHandler(log, serviceset.Catalog),
		Recommendation: handlers.NewRecommendationHandler(log, serviceset.Recommendation),
		Rule:           handlers.NewRuleHandler(log, reposet.Rule),
		Schedule:       handlers.NewScheduleHandler(log, serviceset.Schedule),
		Profile:        handlers.NewProfileHandler(log, serviceset.Profile),
	}
}
