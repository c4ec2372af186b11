package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MinValue and MaxValue bound the emotional response scale.
const (
	MinValue = -100
	MaxValue = 100
)

// DataPoint is one sampled emotional-response value belonging to a Session.
// Rows are immutable once written.
type DataPoint struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID string    `gorm:"type:uuid;not null;index" json:"session_id"`
	Value     int       `gorm:"not null" json:"value"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}

func (d *DataPoint) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}
