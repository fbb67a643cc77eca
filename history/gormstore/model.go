package gormstore

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OutcomeModel is the GORM persistence model for dispatch outcomes.
// It maps directly to the "sms_outcomes" table in Postgres.
type OutcomeModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind            string    `gorm:"size:16;not null;index"`
	Status          string    `gorm:"size:16;not null;index"`
	SenderID        string    `gorm:"size:20;not null"`
	Recipients      string    `gorm:"type:text;not null"`
	Message         string    `gorm:"type:text"`
	Code            int
	ProviderMessage string    `gorm:"type:text"`
	Error           string    `gorm:"type:text"`
	Parts           int       `gorm:"not null;default:1"`
	EstimatedCost   float64   `gorm:"type:numeric(10,2)"`
	CreatedAt       time.Time `gorm:"not null;index"`
}

// TableName overrides the default table name used by GORM.
func (OutcomeModel) TableName() string {
	return "sms_outcomes"
}

// BeforeCreate ensures a UUID is set before inserting a new record.
func (m *OutcomeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
