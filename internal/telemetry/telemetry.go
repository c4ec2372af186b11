package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Session metrics
	SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dial_sessions_created_total",
		Help: "The total number of recording sessions created.",
	})
	SessionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dial_sessions_completed_total",
		Help: "The total number of recording sessions completed.",
	})

	// Data point metrics
	DataPointsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dial_data_points_saved_total",
		Help: "The total number of data points durably written.",
	})
	DataPointsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dial_data_points_rejected_total",
		Help: "The total number of data point writes rejected at the boundary.",
	}, []string{"reason"})

	// Client write queue metrics
	QueueDispatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dial_queue_writes_dispatched_total",
		Help: "The total number of writes handed to the client write queue.",
	})
	QueueDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dial_queue_writes_dropped_total",
		Help: "The total number of queued writes dropped under the best-effort contract.",
	}, []string{"reason"})
)
