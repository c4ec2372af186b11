package handlers

import (
	"net/http"

	"github.com/arianafaustini/dial-tester/internal/stats"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go.uber.org/zap"
)

type AdminHandler struct {
	log   *zap.Logger
	store Store
}

func NewAdminHandler(log *zap.Logger, store Store) *AdminHandler {
	return &AdminHandler{log: log, store: store}
}

// ListSessions returns every session, newest first, with nested data points
// and the aggregate overview figures.
func (h *AdminHandler) ListSessions(c *gin.Context) {
	sessions, err := h.store.ListSessions(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list sessions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sessions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"overview": stats.ComputeOverview(sessions),
	})
}

// SessionChart renders a session's values over time as an HTML line chart.
func (h *AdminHandler) SessionChart(c *gin.Context) {
	sessionID := c.Param("id")
	session, err := h.store.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		h.log.Error("Failed to fetch session for chart", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch session", "details": err.Error()})
		return
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Emotional Response",
			Subtitle: session.Email,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	items := make([]opts.LineData, 0, len(session.DataPoints))
	for _, point := range session.DataPoints {
		items = append(items, opts.LineData{Value: []interface{}{point.Timestamp, point.Value}})
	}
	line.AddSeries("value", items).SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := line.Render(c.Writer); err != nil {
		h.log.Error("Failed to render session chart", zap.String("session_id", sessionID), zap.Error(err))
	}
}
