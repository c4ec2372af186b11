package dial

import (
	"context"
	"time"

	"github.com/arianafaustini/dial-tester/internal/telemetry"

	"go.uber.org/zap"
)

// insertRequest is one pending data-point write.
type insertRequest struct {
	sessionID string
	value     int
	timestamp time.Time
}

// WriteQueue delivers data-point writes to the gateway with an at-most-once,
// best-effort contract: writes are dispatched in enqueue order by a single
// worker, a full queue drops the write, and a gateway failure is logged and
// swallowed. Nothing here ever blocks the caller.
type WriteQueue struct {
	gateway Gateway
	log     *zap.Logger
	tasks   chan insertRequest
	done    chan struct{}
}

func NewWriteQueue(gateway Gateway, log *zap.Logger, size int) *WriteQueue {
	if size < 1 {
		size = 64
	}
	q := &WriteQueue{
		gateway: gateway,
		log:     log,
		tasks:   make(chan insertRequest, size),
		done:    make(chan struct{}),
	}
	go q.run()
	return q
}

// Enqueue hands a write to the worker. It reports false when the queue is
// full and the write was dropped.
func (q *WriteQueue) Enqueue(sessionID string, value int, timestamp time.Time) bool {
	select {
	case q.tasks <- insertRequest{sessionID: sessionID, value: value, timestamp: timestamp}:
		telemetry.QueueDispatched.Inc()
		return true
	default:
		telemetry.QueueDropped.WithLabelValues("queue_full").Inc()
		q.log.Warn("Write queue full, dropping data point",
			zap.String("session_id", sessionID),
			zap.Int("value", value),
		)
		return false
	}
}

// Close stops accepting writes, lets the worker drain what is already
// queued, and waits for it to exit.
func (q *WriteQueue) Close() {
	close(q.tasks)
	<-q.done
}

func (q *WriteQueue) run() {
	defer close(q.done)
	for req := range q.tasks {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := q.gateway.InsertDataPoint(ctx, req.sessionID, req.value, req.timestamp)
		cancel()
		if err != nil {
			// Failures never interrupt the recording gesture.
			telemetry.QueueDropped.WithLabelValues("gateway_error").Inc()
			q.log.Warn("Data point write failed",
				zap.String("session_id", req.sessionID),
				zap.Int("value", req.value),
				zap.Error(err),
			)
		}
	}
}
