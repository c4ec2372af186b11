package dial

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/arianafaustini/dial-tester/internal/models"

	"go.uber.org/zap"
)

// State is the recorder lifecycle position.
type State int

const (
	StateIdle State = iota
	StateRecording
	StatePaused
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Recorder owns one recording session at a time: idle → recording ⇄ paused
// → completed. While recording, a 1-second tick increments the elapsed
// counter; pausing suspends the tick without resetting it.
type Recorder struct {
	log     *zap.Logger
	gateway Gateway

	mu        sync.Mutex
	state     State
	sessionID string
	startedAt time.Time
	elapsed   int
	stopTick  chan struct{}

	tickInterval time.Duration
}

func NewRecorder(gateway Gateway, log *zap.Logger) *Recorder {
	return &Recorder{
		log:          log,
		gateway:      gateway,
		state:        StateIdle,
		tickInterval: time.Second,
	}
}

// Start creates a session for the participant and begins recording. The
// email must be non-blank; a gateway failure leaves the recorder idle so the
// caller can retry.
func (r *Recorder) Start(ctx context.Context, email string) (*models.Session, error) {
	r.mu.Lock()
	if r.state == StateRecording || r.state == StatePaused {
		r.mu.Unlock()
		return nil, fmt.Errorf("a session is already %s", r.state)
	}
	r.mu.Unlock()

	session, err := r.gateway.CreateSession(ctx, email)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.state = StateRecording
	r.sessionID = session.ID
	r.startedAt = time.Now()
	r.elapsed = 0
	r.startTickLocked()
	r.mu.Unlock()

	r.log.Info("Recording session started",
		zap.String("session_id", session.ID),
		zap.String("email", email),
	)
	return session, nil
}

// Pause suspends the tick without resetting the counter.
func (r *Recorder) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateRecording {
		return
	}
	r.state = StatePaused
	r.stopTickLocked()
}

// Resume continues a paused session.
func (r *Recorder) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StatePaused {
		return
	}
	r.state = StateRecording
	r.startTickLocked()
}

// Complete marks the session finished through the gateway, freezes the
// counter and clears the session identity. On gateway failure the session
// stays active so the user can retry.
func (r *Recorder) Complete(ctx context.Context) (*models.Session, error) {
	r.mu.Lock()
	if r.state != StateRecording && r.state != StatePaused {
		r.mu.Unlock()
		return nil, fmt.Errorf("no active session to complete")
	}
	sessionID := r.sessionID
	r.mu.Unlock()

	session, err := r.gateway.CompleteSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.stopTickLocked()
	r.state = StateCompleted
	r.sessionID = ""
	r.mu.Unlock()

	r.log.Info("Recording session completed", zap.String("session_id", sessionID))
	return session, nil
}

// State returns the current lifecycle position.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// SessionID returns the active session identity, empty outside a session.
func (r *Recorder) SessionID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessionID
}

// StartedAt returns when the active session began recording.
func (r *Recorder) StartedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.startedAt
}

// Elapsed returns the counted recording seconds.
func (r *Recorder) Elapsed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.elapsed
}

func (r *Recorder) startTickLocked() {
	stop := make(chan struct{})
	r.stopTick = stop
	go func() {
		ticker := time.NewTicker(r.tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.mu.Lock()
				r.elapsed++
				r.mu.Unlock()
			case <-stop:
				return
			}
		}
	}()
}

func (r *Recorder) stopTickLocked() {
	if r.stopTick != nil {
		close(r.stopTick)
		r.stopTick = nil
	}
}

// FormatElapsed renders seconds as MM:SS with zero padding. Minutes beyond
// 99 render unpadded; there is no hour rollover.
func FormatElapsed(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
