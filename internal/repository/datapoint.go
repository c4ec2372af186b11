package repository

import (
	"context"
	"time"

	"github.com/arianafaustini/dial-tester/internal/models"
)

// InsertDataPoint writes one sampled value. Value range is validated at the
// handler boundary; a missing session surfaces as a not-found error via the
// foreign key constraint.
func (s *Store) InsertDataPoint(ctx context.Context, sessionID string, value int, timestamp time.Time) (*models.DataPoint, error) {
	point := &models.DataPoint{
		SessionID: sessionID,
		Value:     value,
		Timestamp: timestamp.UTC(),
	}
	if err := s.db.WithContext(ctx).Create(point).Error; err != nil {
		if isForeignKeyViolation(err) {
			return nil, &models.NotFoundError{Entity: "session", ID: sessionID}
		}
		return nil, &models.StoreError{Op: "insert data point", Err: err}
	}
	return point, nil
}

// ListDataPoints returns every data point ordered by capture time.
func (s *Store) ListDataPoints(ctx context.Context) ([]models.DataPoint, error) {
	var points []models.DataPoint
	err := s.db.WithContext(ctx).Order(`"timestamp" ASC`).Find(&points).Error
	if err != nil {
		return nil, &models.StoreError{Op: "list data points", Err: err}
	}
	return points, nil
}

// ExportRow is one line of the combined dataset export.
type ExportRow struct {
	DataPointID    string    `gorm:"column:data_point_id"`
	SessionID      string    `gorm:"column:session_id"`
	Value          int       `gorm:"column:value"`
	Timestamp      time.Time `gorm:"column:timestamp"`
	SessionCreated time.Time `gorm:"column:session_created"`
}

// ListExportRows joins data points with their owning sessions, ordered by
// capture time.
func (s *Store) ListExportRows(ctx context.Context) ([]ExportRow, error) {
	var rows []ExportRow
	err := s.db.WithContext(ctx).
		Table("data_points").
		Select(`data_points.id AS data_point_id, data_points.session_id, data_points.value, data_points."timestamp", sessions.created_at AS session_created`).
		Joins("JOIN sessions ON sessions.id = data_points.session_id").
		Order(`data_points."timestamp" ASC`).
		Scan(&rows).Error
	if err != nil {
		return nil, &models.StoreError{Op: "list export rows", Err: err}
	}
	return rows, nil
}
