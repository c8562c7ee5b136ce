package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EventStatusPlanned = "planned"
	EventStatusTaken   = "taken"
	EventStatusSkipped = "skipped"
	EventStatusSnoozed = "snoozed"
)

// EventSourceRuleExpand tags events produced by rule expansion, as opposed to
// one-off events a screen might insert directly.
const EventSourceRuleExpand = "rule_expand"

// PlannedEvent is one concrete intake occurrence. The (user_id, item_id,
// planned_at) unique index is what makes regeneration idempotent: re-expanding
// a rule over an overlapping window inserts nothing for timestamps already
// stored, so a row the user already acted on is never overwritten.
type PlannedEvent struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RuleID    uuid.UUID  `gorm:"type:uuid;not null;index;column:rule_id" json:"rule_id"`
	Rule      *Rule      `gorm:"constraint:OnDelete:CASCADE;foreignKey:RuleID;references:ID" json:"rule,omitempty"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_event_user_item_at,unique;column:user_id" json:"user_id"`
	ItemID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_event_user_item_at,unique;column:item_id" json:"item_id"`
	PlannedAt time.Time  `gorm:"not null;index:idx_event_user_item_at,unique;column:planned_at" json:"planned_at"`
	Status    string     `gorm:"column:status;not null;default:'planned'" json:"status"`
	Source    string     `gorm:"column:source;not null;default:'rule_expand'" json:"source"`
	TakenAt   *time.Time `gorm:"column:taken_at" json:"taken_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (PlannedEvent) TableName() string { return "planned_event" }

func (e *PlannedEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
