package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Item is one supplement in the catalog. The catalog is owned by the admin
// pipeline; the core only reads it.
type Item struct {
	ID            uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Slug          string                      `gorm:"uniqueIndex;not null;column:slug" json:"slug"`
	Name          string                      `gorm:"not null;column:name" json:"name"`
	Category      string                      `gorm:"column:category" json:"category"`
	ScoreGlobal   *float64                    `gorm:"column:score_global" json:"score_global,omitempty"`
	PriceMonthly  *float64                    `gorm:"column:price_monthly" json:"price_monthly,omitempty"`
	ResearchCount int                         `gorm:"column:research_count;not null;default:0" json:"research_count"`
	QualityLevel  string                      `gorm:"column:quality_level" json:"quality_level"`
	EvidenceTier  string                      `gorm:"column:evidence_tier" json:"evidence_tier"`
	ObjectiveTags datatypes.JSONSlice[string] `gorm:"column:objective_tags" json:"objective_tags"`
	Certified     bool                        `gorm:"column:certified;not null;default:false" json:"certified"`
	Dosage        string                      `gorm:"column:dosage" json:"dosage"`
	Timing        string                      `gorm:"column:timing" json:"timing"`
	CreatedAt     time.Time                   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time                   `gorm:"not null;default:now()" json:"updated_at"`
}

func (Item) TableName() string { return "item" }

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
