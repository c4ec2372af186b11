package repository

import (
	"context"
	"errors"
	"time"

	"github.com/arianafaustini/dial-tester/internal/models"

	"gorm.io/gorm"
)

// CreateSession inserts a new session row for the participant email. The
// email must already be trimmed and non-empty; the handler validates that.
func (s *Store) CreateSession(ctx context.Context, email string) (*models.Session, error) {
	session := &models.Session{
		Email:     email,
		StartTime: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, &models.StoreError{Op: "create session", Err: err}
	}
	return session, nil
}

// GetSession loads a session with its data points ordered by capture time.
func (s *Store) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).
		Preload("DataPoints", func(db *gorm.DB) *gorm.DB {
			return db.Order(`data_points."timestamp" ASC`)
		}).
		First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{Entity: "session", ID: id}
	}
	if err != nil {
		return nil, &models.StoreError{Op: "get session", Err: err}
	}
	return &session, nil
}

// UpdateSession bumps updated_at and, when complete is true, sets end_time.
// It returns the reloaded session.
func (s *Store) UpdateSession(ctx context.Context, id string, complete bool) (*models.Session, error) {
	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if complete {
		updates["end_time"] = time.Now().UTC()
	}

	result := s.db.WithContext(ctx).Model(&models.Session{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, &models.StoreError{Op: "update session", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return nil, &models.NotFoundError{Entity: "session", ID: id}
	}

	return s.GetSession(ctx, id)
}

// ListSessions returns every session, newest first, each with its data
// points ordered by capture time. Consumed by the dashboard read path.
func (s *Store) ListSessions(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	err := s.db.WithContext(ctx).
		Preload("DataPoints", func(db *gorm.DB) *gorm.DB {
			return db.Order(`data_points."timestamp" ASC`)
		}).
		Order("start_time DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, &models.StoreError{Op: "list sessions", Err: err}
	}
	return sessions, nil
}

// ListSessionsForExport returns bare session rows ordered by creation time,
// newest first.
func (s *Store) ListSessionsForExport(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&sessions).Error
	if err != nil {
		return nil, &models.StoreError{Op: "list sessions for export", Err: err}
	}
	return sessions, nil
}
