package handlers

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/arianafaustini/dial-tester/internal/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T) *fakeStore {
	t.Helper()
	store := newFakeStore()
	session, err := store.CreateSession(context.Background(), "tester@example.com")
	require.NoError(t, err)
	base := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	for i, value := range []int{5, 5, 3, 3} {
		_, err := store.InsertDataPoint(context.Background(), session.ID, value, base.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
	}
	return store
}

func TestExportDataPoints(t *testing.T) {
	store := seedStore(t)

	recorder := perform(store, http.MethodGet, "/export/data-points", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/csv", recorder.Header().Get("Content-Type"))
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), "data_points.csv")

	records, err := csv.NewReader(strings.NewReader(recorder.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, []string{"ID", "Session ID", "Value", "Timestamp"}, records[0])
	assert.Equal(t, "5", records[1][2])
	assert.Equal(t, "3", records[4][2])
}

func TestExportSessions(t *testing.T) {
	store := seedStore(t)

	recorder := perform(store, http.MethodGet, "/export/sessions", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), "sessions.csv")

	records, err := csv.NewReader(strings.NewReader(recorder.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"ID", "Created At", "Updated At"}, records[0])
}

func TestExportAll(t *testing.T) {
	store := seedStore(t)

	recorder := perform(store, http.MethodGet, "/export/all", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), "complete_dataset.csv")

	records, err := csv.NewReader(strings.NewReader(recorder.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, []string{"Data Point ID", "Session ID", "Emotional Value", "Timestamp", "Session Created"}, records[0])
}

func TestExportStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.failWith = assert.AnError

	for _, target := range []string{"/export/sessions", "/export/data-points", "/export/all"} {
		recorder := perform(store, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	}
}

func TestAdminListSessions(t *testing.T) {
	store := seedStore(t)

	recorder := perform(store, http.MethodGet, "/admin/sessions", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Sessions []struct {
			ID         string `json:"id"`
			DataPoints []struct {
				Value int `json:"value"`
			} `json:"data_points"`
		} `json:"sessions"`
		Overview stats.Overview `json:"overview"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Sessions, 1)
	assert.Len(t, body.Sessions[0].DataPoints, 4)
	assert.Equal(t, 1, body.Overview.TotalSessions)
	assert.Equal(t, 4, body.Overview.TotalDataPoints)
	assert.Equal(t, 1, body.Overview.UniqueParticipants)
}

func TestAdminSessionChart(t *testing.T) {
	store := seedStore(t)
	var id string
	for sessionID := range store.sessions {
		id = sessionID
	}

	recorder := perform(store, http.MethodGet, "/admin/sessions/"+id+"/chart", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, recorder.Body.String(), "echarts")
}
