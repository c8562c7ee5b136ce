package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/suppstack/suppstack-backend/internal/apierr"
	"github.com/suppstack/suppstack-backend/internal/logger"
	"github.com/suppstack/suppstack-backend/internal/repos"
	"github.com/suppstack/suppstack-backend/internal/types"
)

type ProfileService interface {
	// GetProfile never fails on a missing row: a user without a saved
	// profile gets the unconstrained defaults (unlimited budget, no
	// objectives, standard anchor times).
	GetProfile(ctx context.Context, userID uuid.UUID) (types.UserProfile, error)
	SaveProfile(ctx context.Context, profile *types.UserProfile) error
	GetTrainingSlots(ctx context.Context, userID uuid.UUID) ([]types.TrainingSlot, error)
	SaveTrainingSlots(ctx context.Context, userID uuid.UUID, slots []types.TrainingSlot) error
}

type profileService struct {
	db          *gorm.DB
	log         *logger.Logger
	profileRepo repos.UserProfileRepo
	slotRepo    repos.TrainingSlotRepo
}

func NewProfileService(db *gorm.DB, log *logger.Logger, profileRepo repos.UserProfileRepo, slotRepo repos.TrainingSlotRepo) ProfileService {
	return &profileService{
		db:          db,
		log:         log.With("service", "ProfileService"),
		profileRepo: profileRepo,
		slotRepo:    slotRepo,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (types.UserProfile, error) {
	profile, err := s.profileRepo.Get(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.UserProfile{
				UserID:          userID,
				BudgetMonthly:   types.BudgetUnlimited,
				TimePreferences: types.DefaultTimePreferences(),
			}, nil
		}
		return types.UserProfile{}, apierr.Upstream(err)
	}
	return *profile, nil
}

func (s *profileService) SaveProfile(ctx context.Context, profile *types.UserProfile) error {
	if profile == nil || profile.UserID == uuid.Nil {
		return apierr.Validation("profile requires a user id")
	}
	if profile.BudgetMonthly <= 0 {
		profile.BudgetMonthly = types.BudgetUnlimited
	}
	if err := s.profileRepo.Upsert(ctx, nil, profile); err != nil {
		return apierr.Upstream(err)
	}
	return nil
}

func (s *profileService) GetTrainingSlots(ctx context.Context, userID uuid.UUID) ([]types.TrainingSlot, error) {
	slots, err := s.slotRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Upstream(err)
	}
	return slots, nil
}

func (s *profileService) SaveTrainingSlots(ctx context.Context, userID uuid.UUID, slots []types.TrainingSlot) error {
	for _, slot := range slots {
		if slot.Weekday < 0 || slot.Weekday > 6 {
			return apierr.Validation("training slot weekday %d out of range", slot.Weekday)
		}
	}
	if err := s.slotRepo.Replace(ctx, nil, userID, slots); err != nil {
		return apierr.Upstream(err)
	}
	return nil
}
