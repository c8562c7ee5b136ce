package app

import (
	"gorm.io/gorm"

	"github.com/suppstack/suppstack-backend/internal/logger"
	"github.com/suppstack/suppstack-backend/internal/ranking"
	"github.com/suppstack/suppstack-backend/internal/services"
)

type Services struct {
	Catalog        services.CatalogService
	Profile        services.ProfileService
	Schedule       services.ScheduleService
	Recommendation services.RecommendationService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")

	catalogService := services.NewCatalogService(db, log, reposet.Item, clients.CatalogCache)
	profileService := services.NewProfileService(db, log, reposet.UserProfile, reposet.TrainingSlot)
	scheduleService := services.NewScheduleService(
		db,
		log,
		reposet.Rule,
		reposet.TrainingSlot,
		reposet.UserProfile,
		reposet.PlannedEvent,
		cfg.HorizonDays,
		cfg.RegenInterval,
	)
	recommendationService := services.NewRecommendationService(
		db,
		log,
		catalogService,
		profileService,
		reposet.Rule,
		scheduleService,
		ranking.NewRanker(cfg.RankingWeights),
	)

	return Services{
		Catalog:        catalogService,
		Profile:        profileService,
		Schedule:       scheduleService,
		Recommendation: recommendationService,
	}
}
