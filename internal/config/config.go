package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMinSteps = 4
	DefaultMaxSteps = 15
	DefaultRate     = 1.0
	DefaultDwell    = 3.0
	DefaultDt       = 1.0 / 60
	DefaultDuration = 120.0
	DefaultFPS      = 60
	DefaultTheme    = "minimal"
	DefaultSpacing  = 2.0
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Seed     int64          `yaml:"seed"`
	Scramble ScrambleConfig `yaml:"scramble"`
	Motion   MotionConfig   `yaml:"motion"`
	Run      RunConfig      `yaml:"run"`
	View     ViewConfig     `yaml:"view"`
}

type ScrambleConfig struct {
	MinSteps int `yaml:"min_steps"`
	MaxSteps int `yaml:"max_steps"`
}

type MotionConfig struct {
	Rate  float64 `yaml:"rate"`  // quarter turns per second
	Dwell float64 `yaml:"dwell"` // seconds shown solved between cycles
}

type RunConfig struct {
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
}

type ViewConfig struct {
	FPS     int     `yaml:"fps"`
	Theme   string  `yaml:"theme"`
	Tumble  bool    `yaml:"tumble"`
	Spacing float64 `yaml:"spacing"`
}

func DefaultConfig() *Config {
	return &Config{
		Scramble: ScrambleConfig{
			MinSteps: DefaultMinSteps,
			MaxSteps: DefaultMaxSteps,
		},
		Motion: MotionConfig{
			Rate:  DefaultRate,
			Dwell: DefaultDwell,
		},
		Run: RunConfig{
			Dt:       DefaultDt,
			Duration: DefaultDuration,
		},
		View: ViewConfig{
			FPS:     DefaultFPS,
			Theme:   DefaultTheme,
			Tumble:  true,
			Spacing: DefaultSpacing,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base, so fields the file omits
// keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) Validate() error {
	switch {
	case c.Scramble.MinSteps < 1:
		return fmt.Errorf("%w: scramble.min_steps must be at least 1, got %d", ErrInvalidConfig, c.Scramble.MinSteps)
	case c.Scramble.MaxSteps < c.Scramble.MinSteps:
		return fmt.Errorf("%w: scramble.max_steps (%d) below min_steps (%d)", ErrInvalidConfig, c.Scramble.MaxSteps, c.Scramble.MinSteps)
	case c.Motion.Rate <= 0:
		return fmt.Errorf("%w: motion.rate must be positive, got %f", ErrInvalidConfig, c.Motion.Rate)
	case c.Motion.Dwell < 0:
		return fmt.Errorf("%w: motion.dwell must not be negative, got %f", ErrInvalidConfig, c.Motion.Dwell)
	case c.Run.Dt <= 0:
		return fmt.Errorf("%w: run.dt must be positive, got %f", ErrInvalidConfig, c.Run.Dt)
	case c.Run.Duration <= 0:
		return fmt.Errorf("%w: run.duration must be positive, got %f", ErrInvalidConfig, c.Run.Duration)
	case c.View.FPS <= 0:
		return fmt.Errorf("%w: view.fps must be positive, got %d", ErrInvalidConfig, c.View.FPS)
	case c.View.Spacing <= 0:
		return fmt.Errorf("%w: view.spacing must be positive, got %f", ErrInvalidConfig, c.View.Spacing)
	}
	return nil
}
