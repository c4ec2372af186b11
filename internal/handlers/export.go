package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ExportHandler struct {
	log   *zap.Logger
	store Store
}

func NewExportHandler(log *zap.Logger, store Store) *ExportHandler {
	return &ExportHandler{log: log, store: store}
}

// Sessions streams all session rows as CSV, newest first.
func (h *ExportHandler) Sessions(c *gin.Context) {
	sessions, err := h.store.ListSessionsForExport(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to export sessions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sessions"})
		return
	}

	records := [][]string{{"ID", "Created At", "Updated At"}}
	for _, session := range sessions {
		records = append(records, []string{
			session.ID,
			session.CreatedAt.UTC().Format(time.RFC3339),
			session.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	h.writeCSV(c, "sessions.csv", records)
}

// DataPoints streams all data points as CSV ordered by capture time.
func (h *ExportHandler) DataPoints(c *gin.Context) {
	points, err := h.store.ListDataPoints(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to export data points", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data points"})
		return
	}

	records := [][]string{{"ID", "Session ID", "Value", "Timestamp"}}
	for _, point := range points {
		records = append(records, []string{
			point.ID,
			point.SessionID,
			strconv.Itoa(point.Value),
			point.Timestamp.UTC().Format(time.RFC3339),
		})
	}
	h.writeCSV(c, "data_points.csv", records)
}

// All streams the joined dataset as CSV ordered by capture time.
func (h *ExportHandler) All(c *gin.Context) {
	rows, err := h.store.ListExportRows(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to export combined dataset", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data"})
		return
	}

	records := [][]string{{"Data Point ID", "Session ID", "Emotional Value", "Timestamp", "Session Created"}}
	for _, row := range rows {
		records = append(records, []string{
			row.DataPointID,
			row.SessionID,
			strconv.Itoa(row.Value),
			row.Timestamp.UTC().Format(time.RFC3339),
			row.SessionCreated.UTC().Format(time.RFC3339),
		})
	}
	h.writeCSV(c, "complete_dataset.csv", records)
}

func (h *ExportHandler) writeCSV(c *gin.Context, filename string, records [][]string) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(records); err != nil {
		h.log.Error("Failed to write CSV", zap.String("filename", filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
