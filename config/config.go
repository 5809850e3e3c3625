// =======================
// config/config.go
// =======================

// Package config loads and validates the renderer settings.
//
// Settings come from Default, optionally overlaid by a TOML or YAML file
// (chosen by extension) and then by command-line flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"asciicube/cube"
)

// ErrInvalid marks a configuration that fails validation.
var ErrInvalid = errors.New("invalid config")

// Deltas is the per-tick rotation advance in radians.
type Deltas struct {
	X float64 `toml:"x" yaml:"x"`
	Y float64 `toml:"y" yaml:"y"`
	Z float64 `toml:"z" yaml:"z"`
}

// Config holds every tunable of the renderer and the session.
type Config struct {
	Width      int     `toml:"width" yaml:"width"`
	Height     int     `toml:"height" yaml:"height"`
	Size       float64 `toml:"size" yaml:"size"`
	Step       float64 `toml:"step" yaml:"step"`
	Distance   float64 `toml:"distance" yaml:"distance"`
	Scale      float64 `toml:"scale" yaml:"scale"`
	IntervalMs int     `toml:"interval_ms" yaml:"interval_ms"`
	Deltas     Deltas  `toml:"deltas" yaml:"deltas"`
	LogLevel   string  `toml:"log_level" yaml:"log_level"`
}

// Default returns the stock settings.
func Default() Config {
	d := cube.DefaultDeltas
	return Config{
		Width:      cube.DefaultWidth,
		Height:     cube.DefaultHeight,
		Size:       cube.DefaultSize,
		Step:       cube.DefaultStep,
		Distance:   cube.DefaultDistance,
		Scale:      cube.DefaultScale,
		IntervalMs: 30,
		Deltas:     Deltas{X: d.X, Y: d.Y, Z: d.Z},
		LogLevel:   "info",
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the renderer cannot draw. The cube must stay in
// front of the camera plane at every rotation, so its half-diagonal has to
// be shorter than the camera distance.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: grid %dx%d must be positive", ErrInvalid, c.Width, c.Height)
	case c.Size <= 0:
		return fmt.Errorf("%w: size %g must be positive", ErrInvalid, c.Size)
	case c.Step <= 0:
		return fmt.Errorf("%w: step %g must be positive", ErrInvalid, c.Step)
	case c.Scale <= 0:
		return fmt.Errorf("%w: scale %g must be positive", ErrInvalid, c.Scale)
	case c.Size*math.Sqrt(3) >= c.Distance:
		return fmt.Errorf("%w: cube of size %g reaches the camera at distance %g",
			ErrInvalid, c.Size, c.Distance)
	case c.IntervalMs <= 0:
		return fmt.Errorf("%w: interval %dms must be positive", ErrInvalid, c.IntervalMs)
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Geometry converts the settings for the renderer.
func (c Config) Geometry() cube.Geometry {
	return cube.Geometry{
		Width:    c.Width,
		Height:   c.Height,
		Size:     c.Size,
		Step:     c.Step,
		Distance: c.Distance,
		Scale:    c.Scale,
		Deltas:   cube.Rotation{X: c.Deltas.X, Y: c.Deltas.Y, Z: c.Deltas.Z},
	}
}

// Interval is the tick cadence.
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}
