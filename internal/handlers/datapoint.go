package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/arianafaustini/dial-tester/internal/models"
	"github.com/arianafaustini/dial-tester/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DataPointHandler struct {
	log   *zap.Logger
	store Store
}

func NewDataPointHandler(log *zap.Logger, store Store) *DataPointHandler {
	return &DataPointHandler{log: log, store: store}
}

// createDataPointRequest keeps Value untyped because clients send it both as
// a JSON number and as a numeric string.
type createDataPointRequest struct {
	SessionID string      `json:"session_id"`
	Value     interface{} `json:"value"`
	Timestamp string      `json:"timestamp"`
}

// Create persists one sampled value after validating it at the boundary.
func (h *DataPointHandler) Create(c *gin.Context) {
	var req createDataPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		telemetry.DataPointsRejected.WithLabelValues("bad_body").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.SessionID == "" || req.Value == nil {
		telemetry.DataPointsRejected.WithLabelValues("missing_field").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID and value are required"})
		return
	}

	value, err := parseValue(req.Value)
	if err != nil {
		telemetry.DataPointsRejected.WithLabelValues("invalid_value").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Value must be a number between -100 and 100",
			"received": req.Value,
		})
		return
	}

	timestamp := time.Now().UTC()
	if req.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339Nano, req.Timestamp)
		if err != nil {
			telemetry.DataPointsRejected.WithLabelValues("invalid_timestamp").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timestamp", "received": req.Timestamp})
			return
		}
		timestamp = parsed
	}

	point, err := h.store.InsertDataPoint(c.Request.Context(), req.SessionID, value, timestamp)
	if err != nil {
		// An unknown session surfaces as a generic write failure.
		h.log.Error("Failed to save data point",
			zap.String("session_id", req.SessionID),
			zap.Int("value", value),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save data point", "details": err.Error()})
		return
	}

	telemetry.DataPointsSaved.Inc()
	c.JSON(http.StatusOK, gin.H{"dataPoint": point})
}

// parseValue coerces a JSON number or numeric string to an in-range integer.
func parseValue(raw interface{}) (int, error) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, models.NewValidationError("value %q is not numeric", v)
		}
		f = parsed
	default:
		return 0, models.NewValidationError("value has unsupported type %T", raw)
	}

	if math.IsNaN(f) || f != math.Trunc(f) {
		return 0, models.NewValidationError("value %v is not an integer", f)
	}
	value := int(f)
	if value < models.MinValue || value > models.MaxValue {
		return 0, models.NewValidationError("value %d is out of range", value)
	}
	return value, nil
}
