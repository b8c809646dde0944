// Package monitor runs the recognition polling loop: sample a frame, submit
// it to the recognition service, paint the overlay, wait a fixed delay,
// repeat. A single failed cycle never interrupts the loop; continuous
// monitoring takes priority over error visibility.
package monitor

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/facewatch/facewatch/internal/capture"
	"github.com/facewatch/facewatch/internal/faceapi"
	"github.com/facewatch/facewatch/internal/overlay"
)

// PlaceholderName is the side-panel name shown when nothing is recognized.
const PlaceholderName = "—"

// Status is a snapshot of the session's current match state, the side-panel
// equivalent of the live view.
type Status struct {
	SessionID    string   `json:"session_id"`
	Active       bool     `json:"active"`
	Name         string   `json:"name"`
	Score        *float64 `json:"score,omitempty"`
	FaceImageURL string   `json:"face_image_url,omitempty"`
	RecognizedAt string   `json:"recognized_at,omitempty"`
	Cycles       uint64   `json:"cycles"`
	Failures     uint64   `json:"failures"`
}

// Options configures a monitoring session.
type Options struct {
	// Threshold is the minimum similarity score passed to the service.
	Threshold float64
	// Interval is the fixed delay between the end of one cycle and the
	// start of the next. Network latency adds to the effective period.
	Interval time.Duration
}

// Session owns the poll state: the toggle flag, the pending-cycle timer and
// the overlay surface. At most one cycle is scheduled at any time, and at
// most one request is in flight.
type Session struct {
	source   capture.Source
	client   *faceapi.Client
	renderer *overlay.Renderer
	opts     Options

	mu         sync.Mutex
	active     bool
	generation uint64
	cancel     context.CancelFunc
	status     Status
	annotated  *image.RGBA
}

// New creates an idle session.
func New(source capture.Source, client *faceapi.Client, opts Options) *Session {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	return &Session{
		source:   source,
		client:   client,
		renderer: overlay.NewRenderer(),
		opts:     opts,
		status: Status{
			SessionID: uuid.NewString(),
			Name:      PlaceholderName,
		},
	}
}

// Active reports whether the polling loop is running.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Status returns a snapshot of the current match state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Annotated returns the latest annotated frame, or nil when the session is
// idle or no frame has been painted yet. Callers must not modify it.
func (s *Session) Annotated() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.annotated
}

// Start transitions Idle -> Active and runs the first cycle immediately.
// Starting an active session is a no-op.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true
	s.generation++
	s.status.Active = true
	s.status.Cycles = 0
	s.status.Failures = 0

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.loop(ctx, s.generation)
}

// Stop transitions Active -> Idle: the pending timer is cancelled and the
// surface and side-panel state are cleared synchronously. An already
// in-flight request is not aborted; its late result is discarded because the
// generation no longer matches.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.active = false
	s.generation++
	s.cancel()
	s.cancel = nil

	s.renderer.Clear()
	s.annotated = nil
	s.resetMatchLocked()
	s.status.Active = false
}

// loop runs cycles at a fixed rate until the context is cancelled. The next
// cycle is scheduled only after the current one fully resolves, bounding the
// system to one outstanding request.
func (s *Session) loop(ctx context.Context, generation uint64) {
	for {
		s.cycle(generation)
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.opts.Interval):
		}
	}
}

// cycle performs one sample-submit-render iteration. Errors are swallowed:
// the overlay goes blank and the loop carries on at its fixed cadence.
// The request itself deliberately runs on a background context so a Stop
// does not abort it mid-flight; the generation check discards stale results.
func (s *Session) cycle(generation uint64) {
	frame, err := s.source.Grab(context.Background())
	if err != nil {
		s.recordFailure(generation, nil)
		return
	}

	result, err := s.client.Recognize(context.Background(), frame.Data, s.opts.Threshold)
	if err != nil {
		s.recordFailure(generation, frame)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		// Session was stopped (or restarted) while this cycle was in
		// flight. Do not paint over the cleared surface.
		return
	}

	s.renderer.Render(frame.Width, frame.Height, result.Detections, result.ImageSize)
	s.annotated = s.renderer.Composite(frame.Image)
	s.status.Cycles++
	s.status.Failures = 0

	if best := result.BestMatch(); best != nil {
		s.status.Name = best.Label()
		s.status.Score = best.Score
		s.status.FaceImageURL = s.client.ResolveRef(best.FaceImageURL)
		s.status.RecognizedAt = best.RecognizedAt
	} else {
		s.resetMatchLocked()
	}
}

// recordFailure notes a failed cycle: the overlay and match state are
// cleared, but the loop is not interrupted. When a frame was captured the
// live view keeps updating with the unannotated frame.
func (s *Session) recordFailure(generation uint64, frame *capture.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		return
	}
	s.status.Cycles++
	s.status.Failures++
	s.renderer.Clear()
	if frame != nil {
		s.annotated = s.renderer.Composite(frame.Image)
	}
	s.resetMatchLocked()
}

// resetMatchLocked clears the side-panel match state. Callers hold s.mu.
func (s *Session) resetMatchLocked() {
	s.status.Name = PlaceholderName
	s.status.Score = nil
	s.status.FaceImageURL = ""
	s.status.RecognizedAt = ""
}
