package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arianafaustini/dial-tester/internal/models"
	"github.com/arianafaustini/dial-tester/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	sessions map[string]*models.Session
	order    []string
	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[string]*models.Session)}
}

func (f *fakeStore) CreateSession(ctx context.Context, email string) (*models.Session, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	session := &models.Session{
		ID:        uuid.New().String(),
		Email:     email,
		StartTime: time.Now().UTC(),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	f.sessions[session.ID] = session
	f.order = append(f.order, session.ID)
	return session, nil
}

func (f *fakeStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	session, ok := f.sessions[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "session", ID: id}
	}
	return session, nil
}

func (f *fakeStore) UpdateSession(ctx context.Context, id string, complete bool) (*models.Session, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	session, ok := f.sessions[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "session", ID: id}
	}
	session.UpdatedAt = time.Now().UTC()
	if complete {
		end := time.Now().UTC()
		session.EndTime = &end
	}
	return session, nil
}

func (f *fakeStore) ListSessions(ctx context.Context) ([]models.Session, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	// Newest first.
	sessions := make([]models.Session, 0, len(f.order))
	for i := len(f.order) - 1; i >= 0; i-- {
		sessions = append(sessions, *f.sessions[f.order[i]])
	}
	return sessions, nil
}

func (f *fakeStore) ListSessionsForExport(ctx context.Context) ([]models.Session, error) {
	return f.ListSessions(ctx)
}

func (f *fakeStore) InsertDataPoint(ctx context.Context, sessionID string, value int, timestamp time.Time) (*models.DataPoint, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, &models.NotFoundError{Entity: "session", ID: sessionID}
	}
	point := models.DataPoint{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Value:     value,
		Timestamp: timestamp,
	}
	session.DataPoints = append(session.DataPoints, point)
	return &point, nil
}

func (f *fakeStore) ListDataPoints(ctx context.Context) ([]models.DataPoint, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var points []models.DataPoint
	for _, id := range f.order {
		points = append(points, f.sessions[id].DataPoints...)
	}
	return points, nil
}

func (f *fakeStore) ListExportRows(ctx context.Context) ([]repository.ExportRow, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var rows []repository.ExportRow
	for _, id := range f.order {
		session := f.sessions[id]
		for _, point := range session.DataPoints {
			rows = append(rows, repository.ExportRow{
				DataPointID:    point.ID,
				SessionID:      session.ID,
				Value:          point.Value,
				Timestamp:      point.Timestamp,
				SessionCreated: session.CreatedAt,
			})
		}
	}
	return rows, nil
}

// perform runs one request against a fresh router wired to the store.
func perform(store Store, method, target string, body interface{}) *httptest.ResponseRecorder {
	log := zap.NewNop()
	router := gin.New()

	sessionHandler := NewSessionHandler(log, store)
	dataPointHandler := NewDataPointHandler(log, store)
	adminHandler := NewAdminHandler(log, store)
	exportHandler := NewExportHandler(log, store)

	router.POST("/sessions", sessionHandler.Create)
	router.GET("/sessions/:id", sessionHandler.Get)
	router.PATCH("/sessions/:id", sessionHandler.Update)
	router.POST("/data-points", dataPointHandler.Create)
	router.GET("/admin/sessions", adminHandler.ListSessions)
	router.GET("/admin/sessions/:id/chart", adminHandler.SessionChart)
	router.GET("/export/sessions", exportHandler.Sessions)
	router.GET("/export/data-points", exportHandler.DataPoints)
	router.GET("/export/all", exportHandler.All)

	var reader *bytes.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return body
}
