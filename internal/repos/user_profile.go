package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/suppstack/suppstack-backend/internal/logger"
	"github.com/suppstack/suppstack-backend/internal/types"
)

type UserProfileRepo interface {
	Get(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProfile, error)
	Upsert(ctx context.Context, tx *gorm.DB, profile *types.UserProfile) error
	ListUserIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error)
}

type userProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserProfileRepo(db *gorm.DB, baseLog *logger.Logger) UserProfileRepo {
	return &userProfileRepo{db: db, log: baseLog.With("repo", "UserProfileRepo")}
}

func (r *userProfileRepo) Get(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.UserProfile
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userProfileRepo) Upsert(ctx context.Context, tx *gorm.DB, profile *types.UserProfile) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"budget_monthly",
				"objective_groups",
				"constraints",
				"certified_only",
				"morning_time",
				"noon_time",
				"evening_time",
				"pre_workout_offset_min",
				"post_workout_offset_min",
				"updated_at",
			}),
		}).
		Create(profile).Error
}

func (r *userProfileRepo) ListUserIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.UserProfile{}).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
