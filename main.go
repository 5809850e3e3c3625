// main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"asciicube/config"
	"asciicube/cube"
	"asciicube/display"
	"asciicube/scheduler"
)

type options struct {
	configPath string
	watch      bool
	once       bool
	frames     int
	bench      int
	logPath    string
	border     bool

	width, height int
	size          float64
	intervalMs    int
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "Config file (.toml or .yaml)")
	flag.BoolVar(&o.watch, "watch", false, "Reload the config file when it changes")
	flag.BoolVar(&o.once, "once", false, "Print a single frame and exit")
	flag.IntVar(&o.frames, "frames", 0, "Print this many frames to stdout and exit")
	flag.IntVar(&o.bench, "bench", 0, "Benchmark the renderer over this many ticks per grid")
	flag.StringVar(&o.logPath, "log", "", "Log file (interactive mode logs nowhere without it)")
	flag.BoolVar(&o.border, "border", false, "Draw a border around printed frames")
	flag.IntVar(&o.width, "width", 0, "Grid width in cells")
	flag.IntVar(&o.height, "height", 0, "Grid height in cells")
	flag.Float64Var(&o.size, "size", 0, "Cube half-extent")
	flag.IntVar(&o.intervalMs, "interval", 0, "Tick interval in milliseconds")
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := loadConfig(o, set)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case o.bench > 0:
		if err := runBench(os.Stdout, cfg, o.bench); err != nil {
			fmt.Fprintf(os.Stderr, "Benchmark failed: %v\n", err)
			os.Exit(1)
		}
	case o.once || o.frames > 0:
		n := o.frames
		if o.once {
			n = 1
		}
		logger := cfg.NewLogger(os.Stderr)
		if err := runPrint(ctx, os.Stdout, cfg, n, o.border, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Render failed: %v\n", err)
			os.Exit(1)
		}
	default:
		logger, closeLog, err := openLog(o.logPath, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Log error: %v\n", err)
			os.Exit(1)
		}
		defer closeLog()

		watchPath := ""
		if o.watch {
			watchPath = o.configPath
		}
		reload := func(c config.Config) (config.Config, error) { return applyFlags(c, o, set) }
		if err := runGraphics(ctx, cfg, watchPath, reload, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Graphics error: %v\n", err)
			os.Exit(1)
		}
	}
}

// loadConfig layers the config file and the explicitly set flags over the
// defaults.
func loadConfig(o options, set map[string]bool) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	} else if o.watch {
		return cfg, errors.New("-watch needs -config")
	}
	return applyFlags(cfg, o, set)
}

// applyFlags overrides cfg with the flags given on the command line. It is
// also applied to every reloaded config file.
func applyFlags(cfg config.Config, o options, set map[string]bool) (config.Config, error) {
	if set["width"] {
		cfg.Width = o.width
	}
	if set["height"] {
		cfg.Height = o.height
	}
	if set["size"] {
		cfg.Size = o.size
	}
	if set["interval"] {
		cfg.IntervalMs = o.intervalMs
	}
	if o.frames < 0 || o.bench < 0 {
		return cfg, fmt.Errorf("%w: negative frame or tick count", config.ErrInvalid)
	}

	return cfg, cfg.Validate()
}

func openLog(path string, cfg config.Config) (*slog.Logger, func(), error) {
	if path == "" {
		return cfg.NewLogger(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log %s: %w", path, err)
	}
	return cfg.NewLogger(f), func() { f.Close() }, nil
}

func runBench(w io.Writer, cfg config.Config, ticks int) error {
	results, err := cube.Benchmark(cfg.Geometry(), ticks)
	if err != nil {
		return err
	}
	cube.PrintBenchmarkResults(w, results)
	for _, r := range results {
		fmt.Fprintf(w, "\n%s\n", cube.PlotTickTimes(r, 8))
	}
	return nil
}

// runPrint mounts a scheduler that writes n frames to w, then unmounts it.
func runPrint(ctx context.Context, w io.Writer, cfg config.Config, n int, border bool, logger *slog.Logger) error {
	var opts []display.TextOption
	if border {
		opts = append(opts, display.WithBorder())
	}
	if n > 1 {
		opts = append(opts, display.WithHome())
	}
	text := display.NewText(w, opts...)

	printed := make(chan struct{})
	remaining := n
	var writeErr error
	sink := scheduler.DisplayFunc(func(f scheduler.Frame) error {
		if remaining <= 0 {
			return nil
		}
		if err := text.Show(f); err != nil {
			writeErr = err
			remaining = 0
		} else {
			remaining--
		}
		if remaining == 0 {
			close(printed)
		}
		return writeErr
	})

	sched := scheduler.New(cube.NewRenderer(cfg.Geometry()), cfg.Interval(),
		scheduler.WithDisplay(sink), scheduler.WithLogger(logger))
	if err := sched.Mount(ctx); err != nil {
		return err
	}

	select {
	case <-printed:
	case <-ctx.Done():
	}
	if err := sched.Unmount(); err != nil && !errors.Is(err, scheduler.ErrIdle) {
		return err
	}
	return writeErr
}
