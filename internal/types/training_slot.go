package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrainingSlot is one recurring workout window in the user's weekly calendar.
// Weekday follows time.Weekday numbering (0 = Sunday). Start and End are
// "HH:MM" in the user's local day.
type TrainingSlot struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Weekday   int       `gorm:"column:weekday;not null" json:"weekday"`
	Start     string    `gorm:"column:start_time;not null" json:"start"`
	End       string    `gorm:"column:end_time;not null" json:"end"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (TrainingSlot) TableName() string { return "training_slot" }

func (s *TrainingSlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
