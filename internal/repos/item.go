package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/suppstack/suppstack-backend/internal/logger"
	"github.com/suppstack/suppstack-backend/internal/types"
)

type ItemRepo interface {
	List(ctx context.Context, tx *gorm.DB) ([]types.Item, error)
	GetByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*types.Item, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]types.Item, error)
	// UpsertBySlug inserts or refreshes catalog rows keyed by slug, keeping
	// the stored id stable across re-imports.
	UpsertBySlug(ctx context.Context, tx *gorm.DB, items []types.Item) error
}

type itemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewItemRepo(db *gorm.DB, baseLog *logger.Logger) ItemRepo {
	return &itemRepo{db: db, log: baseLog.With("repo", "ItemRepo")}
}

func (r *itemRepo) List(ctx context.Context, tx *gorm.DB) ([]types.Item, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []types.Item
	if err := transaction.WithContext(ctx).
		Order("slug ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *itemRepo) GetByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*types.Item, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Item
	if err := transaction.WithContext(ctx).
		Where("id = ?", itemID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *itemRepo) GetByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]types.Item, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []types.Item
	if len(itemIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", itemIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *itemRepo) UpsertBySlug(ctx context.Context, tx *gorm.DB, items []types.Item) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(items) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name",
				"category",
				"score_global",
				"price_monthly",
				"research_count",
				"quality_level",
				"evidence_tier",
				"objective_tags",
				"certified",
				"dosage",
				"timing",
				"updated_at",
			}),
		}).
		CreateInBatches(items, 100).Error
}
