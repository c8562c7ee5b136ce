package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
	FrequencyCustom = "custom"
)

// Rule is a standing intake instruction: "take this item at these anchors,
// this often". At most one rule exists per (user, item); saving again
// overwrites anchors, frequency, days and dose.
type Rule struct {
	ID         uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID                   `gorm:"type:uuid;not null;index:idx_rule_user_item,unique;column:user_id" json:"user_id"`
	ItemID     uuid.UUID                   `gorm:"type:uuid;not null;index:idx_rule_user_item,unique;column:item_id" json:"item_id"`
	Item       *Item                       `gorm:"constraint:OnDelete:CASCADE;foreignKey:ItemID;references:ID" json:"item,omitempty"`
	Frequency  string                      `gorm:"column:frequency;not null;default:'daily'" json:"frequency"`
	Anchors    datatypes.JSONSlice[string] `gorm:"column:anchors" json:"anchors"`
	DaysOfWeek datatypes.JSONSlice[int]    `gorm:"column:days_of_week" json:"days_of_week"`
	Dose       string                      `gorm:"column:dose" json:"dose"`
	CreatedAt  time.Time                   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time                   `gorm:"not null;default:now()" json:"updated_at"`
}

func (Rule) TableName() string { return "rule" }

func (r *Rule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
