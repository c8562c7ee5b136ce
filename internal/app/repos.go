package app

import (
	"gorm.io/gorm"

	"github.com/suppstack/suppstack-backend/internal/logger"
	"github.com/suppstack/suppstack-backend/internal/repos"
)

type Repos struct {
	Item         repos.ItemRepo
	UserProfile  repos.UserProfileRepo
	TrainingSlot repos.TrainingSlotRepo
	Rule         repos.RuleRepo
	PlannedEvent repos.PlannedEventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Item:         repos.NewItemRepo(db, log),
		UserProfile:  repos.NewUserProfileRepo(db, log),
		TrainingSlot: repos.NewTrainingSlotRepo(db, log),
		Rule:         repos.NewRuleRepo(db, log),
		PlannedEvent: repos.NewPlannedEventRepo(db, log),
	}
}
