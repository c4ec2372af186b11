package dial

import (
	"math"
	"sync"
	"time"
)

// DefaultThrottle is the minimum wall-clock interval between dispatched
// persistence writes. Local buffering is never throttled.
const DefaultThrottle = 100 * time.Millisecond

// Track is the slider's horizontal geometry in pixels.
type Track struct {
	Left  float64
	Width float64
}

// Sample is one locally buffered reading: the value and its offset from the
// session start.
type Sample struct {
	Offset time.Duration `json:"timestamp"`
	Value  int           `json:"value"`
}

// ValueAt maps a horizontal pixel coordinate within the track to a value in
// [-100, 100]. The extreme left is -100, dead center 0, extreme right +100,
// and the mapping is monotonic in position.
func ValueAt(track Track, x float64) int {
	if track.Width <= 0 {
		return 0
	}
	percentage := (x - track.Left) / track.Width
	percentage = math.Max(0, math.Min(1, percentage))
	return int(math.Round((percentage - 0.5) * 200))
}

// Sampler converts drag gestures into buffered samples and throttled
// persistence writes. It owns the in-memory buffer for the session currently
// recording; moves are ignored unless dragging and the recorder is in the
// recording state.
type Sampler struct {
	recorder *Recorder
	queue    *WriteQueue
	throttle time.Duration
	now      func() time.Time

	mu           sync.Mutex
	track        Track
	dragging     bool
	lastDispatch time.Time
	samples      []Sample
	current      int
}

func NewSampler(recorder *Recorder, queue *WriteQueue, track Track, throttle time.Duration) *Sampler {
	if throttle <= 0 {
		throttle = DefaultThrottle
	}
	return &Sampler{
		recorder: recorder,
		queue:    queue,
		throttle: throttle,
		now:      time.Now,
		track:    track,
	}
}

// PointerDown begins a drag and accepts the position as a first sample.
func (s *Sampler) PointerDown(x float64) {
	s.mu.Lock()
	s.dragging = true
	s.mu.Unlock()
	s.PointerMove(x)
}

// PointerMove samples the position. It is a no-op while not dragging, or
// when no session is recording.
func (s *Sampler) PointerMove(x float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dragging {
		return
	}
	if s.recorder.State() != StateRecording {
		return
	}

	value := ValueAt(s.track, x)
	s.current = value

	now := s.now()
	s.samples = append(s.samples, Sample{
		Offset: now.Sub(s.recorder.StartedAt()),
		Value:  value,
	})

	// Throttle only the network write, never the local buffer.
	if now.Sub(s.lastDispatch) >= s.throttle {
		s.lastDispatch = now
		s.queue.Enqueue(s.recorder.SessionID(), value, now)
	}
}

// PointerUp ends the drag.
func (s *Sampler) PointerUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragging = false
}

// Value returns the most recently sampled value.
func (s *Sampler) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Samples returns a copy of the local buffer in capture order.
func (s *Sampler) Samples() []Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

// Values returns the buffered values in capture order, bounded by the scale.
func (s *Sampler) Values() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	values := make([]int, len(s.samples))
	for i, sample := range s.samples {
		values[i] = sample.Value
	}
	return values
}

// SetTrack updates the slider geometry, e.g. after a resize.
func (s *Sampler) SetTrack(track Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track = track
}

// Reset clears the buffer and throttle state for a new session.
func (s *Sampler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = nil
	s.current = 0
	s.dragging = false
	s.lastDispatch = time.Time{}
}
