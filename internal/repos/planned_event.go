package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/suppstack/suppstack-backend/internal/logger"
	"github.com/suppstack/suppstack-backend/internal/types"
)

// PlannedEventRepo is the event store behind rule expansion. Upsert is
// first-write-wins on (user_id, item_id, planned_at): regenerating a window
// never touches rows the user already marked taken, skipped or snoozed.
type PlannedEventRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, events []types.PlannedEvent) error
	FetchRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]types.PlannedEvent, error)
	GetByID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.PlannedEvent, error)
	MarkTaken(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID) error
	Snooze(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID, minutes int) error
}

type plannedEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlannedEventRepo(db *gorm.DB, baseLog *logger.Logger) PlannedEventRepo {
	return &plannedEventRepo{db: db, log: baseLog.With("repo", "PlannedEventRepo")}
}

func (r *plannedEventRepo) Upsert(ctx context.Context, tx *gorm.DB, events []types.PlannedEvent) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(events) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "item_id"}, {Name: "planned_at"}},
			DoNothing: true,
		}).
		CreateInBatches(&events, 200).Error
}

func (r *plannedEventRepo) FetchRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]types.PlannedEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []types.PlannedEvent
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND planned_at >= ? AND planned_at < ?", userID, from, to).
		Order("planned_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *plannedEventRepo) GetByID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.PlannedEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.PlannedEvent
	if err := transaction.WithContext(ctx).
		Where("id = ?", eventID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *plannedEventRepo) MarkTaken(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	now := time.Now().UTC()
	res := transaction.WithContext(ctx).
		Model(&types.PlannedEvent{}).
		Where("id = ? AND user_id = ?", eventID, userID).
		Updates(map[string]interface{}{
			"status":     types.EventStatusTaken,
			"taken_at":   now,
			"updated_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Snooze rewrites planned_at, which also moves the row off the conflict key
// a later regeneration would hit. Concurrent snoozes are last-write-wins.
func (r *plannedEventRepo) Snooze(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID, minutes int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Transaction(func(inner *gorm.DB) error {
		var event types.PlannedEvent
		if err := inner.
			Where("id = ? AND user_id = ?", eventID, userID).
			First(&event).Error; err != nil {
			return err
		}
		return inner.
			Model(&types.PlannedEvent{}).
			Where("id = ?", event.ID).
			Updates(map[string]interface{}{
				"status":     types.EventStatusSnoozed,
				"planned_at": event.PlannedAt.Add(time.Duration(minutes) * time.Minute),
				"updated_at": time.Now().UTC(),
			}).Error
	})
}
