package dial

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/arianafaustini/dial-tester/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeGateway records calls and can be told to fail.
type fakeGateway struct {
	mu           sync.Mutex
	inserts      []insertRequest
	failInsert   error
	failComplete error
	completed    []string
}

func (f *fakeGateway) CreateSession(ctx context.Context, email string) (*models.Session, error) {
	return &models.Session{ID: "session-1", Email: email, StartTime: time.Now()}, nil
}

func (f *fakeGateway) InsertDataPoint(ctx context.Context, sessionID string, value int, timestamp time.Time) (*models.DataPoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInsert != nil {
		return nil, f.failInsert
	}
	f.inserts = append(f.inserts, insertRequest{sessionID: sessionID, value: value, timestamp: timestamp})
	return &models.DataPoint{ID: "dp", SessionID: sessionID, Value: value, Timestamp: timestamp}, nil
}

func (f *fakeGateway) CompleteSession(ctx context.Context, sessionID string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failComplete != nil {
		return nil, f.failComplete
	}
	f.completed = append(f.completed, sessionID)
	end := time.Now()
	return &models.Session{ID: sessionID, EndTime: &end}, nil
}

func (f *fakeGateway) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	return &models.Session{ID: sessionID}, nil
}

func (f *fakeGateway) ListSessions(ctx context.Context) ([]models.Session, error) {
	return nil, nil
}

func (f *fakeGateway) insertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inserts)
}

func TestValueAt(t *testing.T) {
	track := Track{Left: 0, Width: 200}

	testCases := []struct {
		name     string
		x        float64
		expected int
	}{
		{name: "Extreme left", x: 0, expected: -100},
		{name: "Dead center", x: 100, expected: 0},
		{name: "Extreme right", x: 200, expected: 100},
		{name: "Quarter", x: 50, expected: -50},
		{name: "Clamped below track", x: -30, expected: -100},
		{name: "Clamped beyond track", x: 500, expected: 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ValueAt(track, tc.x))
		})
	}
}

func TestValueAtMonotonic(t *testing.T) {
	track := Track{Left: 10, Width: 333}
	prev := ValueAt(track, track.Left)
	for x := track.Left; x <= track.Left+track.Width; x++ {
		v := ValueAt(track, x)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestValueAtOffsetTrack(t *testing.T) {
	track := Track{Left: 400, Width: 600}
	assert.Equal(t, -100, ValueAt(track, 400))
	assert.Equal(t, 0, ValueAt(track, 700))
	assert.Equal(t, 100, ValueAt(track, 1000))
}

func TestValueAtZeroWidth(t *testing.T) {
	assert.Equal(t, 0, ValueAt(Track{}, 50))
}

// newRecordingPipeline starts a recorder and returns it with a sampler wired
// to a synchronous clock under test control.
func newRecordingPipeline(t *testing.T, gw *fakeGateway) (*Recorder, *Sampler, *WriteQueue, *time.Time) {
	t.Helper()
	log := zap.NewNop()
	recorder := NewRecorder(gw, log)
	_, err := recorder.Start(context.Background(), "tester@example.com")
	require.NoError(t, err)

	queue := NewWriteQueue(gw, log, 16)
	sampler := NewSampler(recorder, queue, Track{Left: 0, Width: 200}, DefaultThrottle)

	now := time.Now()
	sampler.now = func() time.Time { return now }
	return recorder, sampler, queue, &now
}

func TestSamplerThrottlesWrites(t *testing.T) {
	gw := &fakeGateway{}
	_, sampler, queue, now := newRecordingPipeline(t, gw)

	sampler.PointerDown(100)
	// 50ms later: buffered locally but no second dispatch.
	*now = now.Add(50 * time.Millisecond)
	sampler.PointerMove(120)
	// Another 100ms later (150ms after the first): dispatched.
	*now = now.Add(100 * time.Millisecond)
	sampler.PointerMove(140)
	sampler.PointerUp()
	queue.Close()

	assert.Equal(t, 2, gw.insertCount())
	assert.Len(t, sampler.Samples(), 3)
	assert.Equal(t, []int{0, 20, 40}, sampler.Values())
}

func TestSamplerIgnoresMovesWhileNotDragging(t *testing.T) {
	gw := &fakeGateway{}
	_, sampler, queue, _ := newRecordingPipeline(t, gw)

	sampler.PointerMove(150)
	queue.Close()

	assert.Zero(t, gw.insertCount())
	assert.Empty(t, sampler.Samples())
}

func TestSamplerIgnoresMovesWhilePaused(t *testing.T) {
	gw := &fakeGateway{}
	recorder, sampler, queue, now := newRecordingPipeline(t, gw)

	sampler.PointerDown(20)
	recorder.Pause()
	*now = now.Add(time.Second)
	sampler.PointerMove(180)

	recorder.Resume()
	*now = now.Add(time.Second)
	sampler.PointerMove(180)
	queue.Close()

	// One sample from the press, one after resume; the paused move dropped.
	assert.Len(t, sampler.Samples(), 2)
	assert.Equal(t, []int{-80, 80}, sampler.Values())
	assert.Equal(t, 2, gw.insertCount())
}

func TestSamplerBuffersDespiteWriteFailures(t *testing.T) {
	gw := &fakeGateway{failInsert: assert.AnError}
	_, sampler, queue, now := newRecordingPipeline(t, gw)

	sampler.PointerDown(0)
	*now = now.Add(200 * time.Millisecond)
	sampler.PointerMove(200)
	queue.Close()

	// Gateway failures are swallowed; the local buffer is intact.
	assert.Equal(t, []int{-100, 100}, sampler.Values())
	assert.Zero(t, gw.insertCount())
}

func TestSamplerReset(t *testing.T) {
	gw := &fakeGateway{}
	_, sampler, queue, _ := newRecordingPipeline(t, gw)

	sampler.PointerDown(200)
	sampler.Reset()
	queue.Close()

	assert.Empty(t, sampler.Samples())
	assert.Zero(t, sampler.Value())
}
