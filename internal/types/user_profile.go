package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BudgetUnlimited is the sentinel the mobile client sends when the user has
// not set a monthly budget.
const BudgetUnlimited = 1000

// TimePreferences holds the user's daily anchor times and workout offsets.
// Times are "HH:MM" in the user's local day; offsets are minutes relative to
// a training slot (pre is typically negative).
type TimePreferences struct {
	MorningTime          string `gorm:"column:morning_time;not null;default:'08:00'" json:"morning_time"`
	NoonTime             string `gorm:"column:noon_time;not null;default:'12:30'" json:"noon_time"`
	EveningTime          string `gorm:"column:evening_time;not null;default:'19:00'" json:"evening_time"`
	PreWorkoutOffsetMin  int    `gorm:"column:pre_workout_offset_min;not null;default:-30" json:"pre_workout_offset_min"`
	PostWorkoutOffsetMin int    `gorm:"column:post_workout_offset_min;not null;default:30" json:"post_workout_offset_min"`
}

// DefaultTimePreferences mirrors the column defaults for callers that build
// preferences in memory (tests, fresh profiles before first save).
func DefaultTimePreferences() TimePreferences {
	return TimePreferences{
		MorningTime:          "08:00",
		NoonTime:             "12:30",
		EveningTime:          "19:00",
		PreWorkoutOffsetMin:  -30,
		PostWorkoutOffsetMin: 30,
	}
}

type UserProfile struct {
	UserID          uuid.UUID                   `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	BudgetMonthly   float64                     `gorm:"column:budget_monthly;not null;default:1000" json:"budget_monthly"`
	ObjectiveGroups datatypes.JSONSlice[string] `gorm:"column:objective_groups" json:"objective_groups"`
	Constraints     datatypes.JSONSlice[string] `gorm:"column:constraints" json:"constraints"`
	CertifiedOnly   bool                        `gorm:"column:certified_only;not null;default:false" json:"certified_only"`
	TimePreferences `gorm:"embedded" json:"time_preferences"`
	CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profile" }
