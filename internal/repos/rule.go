package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/suppstack/suppstack-backend/internal/logger"
	"github.com/suppstack/suppstack-backend/internal/types"
)

type RuleRepo interface {
	// Upsert enforces the one-rule-per-(user, item) contract: saving a rule
	// for an item the user already plans overwrites that rule in place.
	Upsert(ctx context.Context, tx *gorm.DB, rule *types.Rule) (*types.Rule, error)
	GetByID(ctx context.Context, tx *gorm.DB, ruleID uuid.UUID) (*types.Rule, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.Rule, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, ruleID uuid.UUID) error
}

type ruleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRuleRepo(db *gorm.DB, baseLog *logger.Logger) RuleRepo {
	return &ruleRepo{db: db, log: baseLog.With("repo", "RuleRepo")}
}

func (r *ruleRepo) Upsert(ctx context.Context, tx *gorm.DB, rule *types.Rule) (*types.Rule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"frequency",
				"anchors",
				"days_of_week",
				"dose",
				"updated_at",
			}),
		}).
		Create(rule).Error; err != nil {
		return nil, err
	}

	// On conflict the generated ID in rule is not the stored row's; re-read
	// by the natural key so callers always hold the persisted rule.
	var stored types.Rule
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", rule.UserID, rule.ItemID).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *ruleRepo) GetByID(ctx context.Context, tx *gorm.DB, ruleID uuid.UUID) (*types.Rule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Rule
	if err := transaction.WithContext(ctx).
		Where("id = ?", ruleID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ruleRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.Rule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []types.Rule
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ruleRepo) Delete(ctx context.Context, tx *gorm.DB, userID, ruleID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", ruleID, userID).
		Delete(&types.Rule{}).Error
}
