package handlers

import (
	"context"
	"time"

	"github.com/arianafaustini/dial-tester/internal/models"
	"github.com/arianafaustini/dial-tester/internal/repository"
)

// Store is the persistence surface the handlers consume. *repository.Store
// satisfies it; tests substitute a fake.
type Store interface {
	CreateSession(ctx context.Context, email string) (*models.Session, error)
	GetSession(ctx context.Context, id string) (*models.Session, error)
	UpdateSession(ctx context.Context, id string, complete bool) (*models.Session, error)
	ListSessions(ctx context.Context) ([]models.Session, error)
	ListSessionsForExport(ctx context.Context) ([]models.Session, error)
	InsertDataPoint(ctx context.Context, sessionID string, value int, timestamp time.Time) (*models.DataPoint, error)
	ListDataPoints(ctx context.Context) ([]models.DataPoint, error)
	ListExportRows(ctx context.Context) ([]repository.ExportRow, error)
}
