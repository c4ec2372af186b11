package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is one timed recording interval tied to a participant email.
// Sessions are never deleted by the application.
type Session struct {
	ID         string      `gorm:"type:uuid;primaryKey" json:"id"`
	Email      string      `gorm:"not null" json:"email"`
	StartTime  time.Time   `gorm:"not null" json:"start_time"`
	EndTime    *time.Time  `json:"end_time"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	DataPoints []DataPoint `gorm:"foreignKey:SessionID" json:"data_points"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// Completed reports whether the session has an end time set.
func (s *Session) Completed() bool {
	return s.EndTime != nil
}

// Duration is the recorded interval length, zero while the session is open.
func (s *Session) Duration() time.Duration {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}
