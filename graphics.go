// graphics.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"asciicube/config"
	"asciicube/cube"
	"asciicube/display"
	"asciicube/scheduler"
)

// nudgeStep is the rotation applied per arrow key press.
const nudgeStep = 0.15

// session keeps the mounted scheduler; a config reload swaps it.
type session struct {
	mu     sync.Mutex
	ctx    context.Context
	sched  *scheduler.Scheduler
	screen *display.Screen
	logger *slog.Logger
}

func newSession(ctx context.Context, screen *display.Screen, logger *slog.Logger) *session {
	return &session{ctx: ctx, screen: screen, logger: logger}
}

// mount replaces the running scheduler with one built from cfg. The old
// one is unmounted first, which resets the rotation.
func (s *session) mount(cfg config.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sched != nil {
		if err := s.sched.Unmount(); err != nil {
			s.logger.Debug("previous scheduler already stopped", "error", err)
		}
	}

	s.sched = scheduler.New(cube.NewRenderer(cfg.Geometry()), cfg.Interval(),
		scheduler.WithDisplay(s.screen), scheduler.WithLogger(s.logger))
	if err := s.sched.Mount(s.ctx); err != nil {
		return fmt.Errorf("mount renderer: %w", err)
	}
	s.logger.Info("renderer mounted",
		"width", cfg.Width, "height", cfg.Height, "size", cfg.Size, "interval", cfg.Interval())
	return nil
}

func (s *session) unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched != nil {
		_ = s.sched.Unmount() // idle once ctx is cancelled
	}
}

func (s *session) current() *scheduler.Scheduler {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched
}

// handleKey applies one key press and reports whether the session should
// end.
func handleKey(ev *tcell.EventKey, sched *scheduler.Scheduler) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		sched.Nudge(-nudgeStep, 0, 0)
	case tcell.KeyDown:
		sched.Nudge(nudgeStep, 0, 0)
	case tcell.KeyLeft:
		sched.Nudge(0, -nudgeStep, 0)
	case tcell.KeyRight:
		sched.Nudge(0, nudgeStep, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'r', 'R':
			sched.Reset()
		}
	}
	return false
}

// pollInput reads terminal events until the user quits or an interrupt
// event arrives.
func pollInput(s tcell.Screen, sess *session) {
	for {
		switch ev := s.PollEvent().(type) {
		case nil, *tcell.EventInterrupt:
			return
		case *tcell.EventKey:
			if handleKey(ev, sess.current()) {
				return
			}
		case *tcell.EventResize:
			s.Sync()
		}
	}
}

func runGraphics(ctx context.Context, cfg config.Config, watchPath string, reload reloadFunc, logger *slog.Logger) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen init failed: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("screen start failed: %w", err)
	}
	defer s.Fini()

	return runSession(ctx, s, cfg, watchPath, reload, logger)
}

// reloadFunc adjusts a config file freshly read from disk, e.g. to put the
// command-line overrides back on top.
type reloadFunc func(config.Config) (config.Config, error)

// runSession mounts the renderer on an initialized screen and blocks until
// the user quits or ctx is cancelled. When watchPath is set, every change
// to it is passed through reload (if non-nil) before remounting.
func runSession(ctx context.Context, s tcell.Screen, cfg config.Config, watchPath string, reload reloadFunc, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sess := newSession(ctx, display.NewScreen(s), logger)
	if err := sess.mount(cfg); err != nil {
		return err
	}
	defer sess.unmount()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		pollInput(s, sess)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		// wake PollEvent so the input loop can return
		_ = s.PostEvent(tcell.NewEventInterrupt(nil))
		return nil
	})

	if watchPath != "" {
		w, err := config.NewWatcher(watchPath)
		if err != nil {
			cancel()
			_ = g.Wait()
			return err
		}
		g.Go(func() error {
			return w.Run(gctx,
				func(c config.Config) {
					if reload != nil {
						var err error
						if c, err = reload(c); err != nil {
							logger.Warn("config reload rejected", "error", err)
							return
						}
					}
					if err := sess.mount(c); err != nil {
						logger.Error("remount failed", "error", err)
						return
					}
					logger.Info("config reloaded", "path", watchPath)
				},
				func(err error) { logger.Warn("config reload rejected", "error", err) },
			)
		})
	}

	return g.Wait()
}
