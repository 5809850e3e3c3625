// =======================
// scheduler/scheduler.go
// =======================

// Package scheduler drives a cube renderer on a fixed interval and
// publishes every frame to the registered displays.
//
// A Scheduler is Idle until Mount starts its tick loop and Running until
// Unmount (or cancellation of the mount context) stops it. Ticks are
// serialized on one goroutine; the rotation it renders is owned here and
// reset whenever the scheduler goes back to Idle.
package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"asciicube/cube"
)

// DefaultInterval is the tick cadence.
const DefaultInterval = 30 * time.Millisecond

var (
	ErrRunning = errors.New("scheduler already running")
	ErrIdle    = errors.New("scheduler not running")
)

// State is the lifecycle state of a Scheduler.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Frame is one published render.
type Frame struct {
	Seq           uint64
	Rotation      cube.Rotation // angles the frame was rendered at
	Width, Height int
	Text          string
}

// Display receives whole frames. Each frame replaces the previous one.
type Display interface {
	Show(Frame) error
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(Frame) error

func (f DisplayFunc) Show(fr Frame) error { return f(fr) }

// Scheduler owns the rotation state and the tick loop.
type Scheduler struct {
	mu       sync.Mutex
	renderer *cube.Renderer
	interval time.Duration
	clock    Clock
	logger   *slog.Logger
	displays []Display

	state  State
	rot    cube.Rotation
	seq    uint64
	failed uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option { return func(s *Scheduler) { s.clock = c } }

// WithLogger sets the logger used for display failures and lifecycle events.
func WithLogger(l *slog.Logger) Option { return func(s *Scheduler) { s.logger = l } }

// WithDisplay registers d at construction.
func WithDisplay(d Display) Option {
	return func(s *Scheduler) { s.displays = append(s.displays, d) }
}

// New creates an idle scheduler for r. A non-positive interval falls back
// to DefaultInterval.
func New(r *cube.Renderer, interval time.Duration, opts ...Option) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	s := &Scheduler{
		renderer: r,
		interval: interval,
		clock:    RealClock{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a display. Displays registered while running receive the
// frames of the following ticks.
func (s *Scheduler) Register(d Display) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displays = append(s.displays, d)
}

// Mount moves the scheduler to Running and starts ticking from rest; nudges
// made while idle are discarded. The loop also stops when ctx is cancelled.
func (s *Scheduler) Mount(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Running {
		return ErrRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	ticker := s.clock.NewTicker(s.interval)
	done := make(chan struct{})

	s.state = Running
	s.rot = cube.Rotation{}
	s.seq = 0
	s.cancel = cancel
	s.done = done

	s.logger.Info("scheduler mounted", "interval", s.interval)
	go s.run(ctx, ticker, done)
	return nil
}

// Unmount stops the tick loop and waits for it to exit. No frame is
// published once Unmount returns.
func (s *Scheduler) Unmount() error {
	s.mu.Lock()
	if s.state != Running {
		s.mu.Unlock()
		return ErrIdle
	}
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done
	return nil
}

// Done is closed when the current mount's loop exits. It returns a closed
// channel when idle.
func (s *Scheduler) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		c := make(chan struct{})
		close(c)
		return c
	}
	return s.done
}

// State reports Idle or Running.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Rotation returns the angles the next tick will render.
func (s *Scheduler) Rotation() cube.Rotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rot
}

// Frames returns how many frames the current mount has published.
func (s *Scheduler) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Failures returns how many display calls returned an error.
func (s *Scheduler) Failures() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// Nudge adds to the rotation between ticks.
func (s *Scheduler) Nudge(dx, dy, dz float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rot = s.rot.Add(cube.Rotation{X: dx, Y: dy, Z: dz})
}

// Reset puts the cube back at rest.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rot = cube.Rotation{}
}

func (s *Scheduler) run(ctx context.Context, t Ticker, done chan struct{}) {
	defer func() {
		t.Stop()

		s.mu.Lock()
		s.state = Idle
		s.rot = cube.Rotation{}
		s.seq = 0
		s.cancel = nil
		s.mu.Unlock()

		s.logger.Info("scheduler unmounted")
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C():
			// a tick may race with cancellation; cancellation wins
			if ctx.Err() != nil {
				return
			}
			s.tick()
		}
	}
}

func (s *Scheduler) tick() {
	s.mu.Lock()
	rot := s.rot
	next, text := s.renderer.Tick(rot)
	s.rot = next
	s.seq++
	g := s.renderer.Geometry()
	frame := Frame{
		Seq:      s.seq,
		Rotation: rot,
		Width:    g.Width,
		Height:   g.Height,
		Text:     text,
	}
	displays := make([]Display, len(s.displays))
	copy(displays, s.displays)
	s.mu.Unlock()

	for _, d := range displays {
		if err := d.Show(frame); err != nil {
			s.mu.Lock()
			s.failed++
			s.mu.Unlock()
			s.logger.Warn("display failed", "seq", frame.Seq, "error", err)
		}
	}
}
