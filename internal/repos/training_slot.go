package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/suppstack/suppstack-backend/internal/logger"
	"github.com/suppstack/suppstack-backend/internal/types"
)

type TrainingSlotRepo interface {
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.TrainingSlot, error)
	Replace(ctx context.Context, tx *gorm.DB, userID uuid.UUID, slots []types.TrainingSlot) error
}

type trainingSlotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrainingSlotRepo(db *gorm.DB, baseLog *logger.Logger) TrainingSlotRepo {
	return &trainingSlotRepo{db: db, log: baseLog.With("repo", "TrainingSlotRepo")}
}

func (r *trainingSlotRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.TrainingSlot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []types.TrainingSlot
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("weekday ASC, start_time ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Replace swaps the user's whole weekly calendar in one transaction. The
// mobile client always saves the calendar as a unit.
func (r *trainingSlotRepo) Replace(ctx context.Context, tx *gorm.DB, userID uuid.UUID, slots []types.TrainingSlot) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Transaction(func(inner *gorm.DB) error {
		if err := inner.
			Where("user_id = ?", userID).
			Delete(&types.TrainingSlot{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		for i := range slots {
			slots[i].UserID = userID
		}
		return inner.Create(&slots).Error
	})
}
