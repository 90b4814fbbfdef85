package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/hhsim/internal/metrics"
	"github.com/san-kum/hhsim/internal/sim"
)

const (
	DefaultTrajectory    = "full"
	DefaultLogLevel      = "warn"
	DefaultProgressEvery = 100000
)

// Config controls how a run is executed and observed. The model itself is
// fixed by the constants in package neuron and is not configurable here.
type Config struct {
	Trajectory     string  `yaml:"trajectory"`
	Validate       bool    `yaml:"validate"`
	LogLevel       string  `yaml:"log_level"`
	ProgressEvery  int     `yaml:"progress_every"`
	CheckEvery     int     `yaml:"check_every"`
	SpikeThreshold float32 `yaml:"spike_threshold"`
}

func DefaultConfig() *Config {
	return &Config{
		Trajectory:     DefaultTrajectory,
		LogLevel:       DefaultLogLevel,
		ProgressEvery:  DefaultProgressEvery,
		CheckEvery:     sim.DefaultCheckEvery,
		SpikeThreshold: metrics.DefaultSpikeThreshold,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Check(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

// Check reports the first invalid field.
func (c *Config) Check() error {
	if _, err := sim.ParseTrajectoryMode(c.Trajectory); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.ProgressEvery < 0 {
		return fmt.Errorf("progress_every must not be negative, got %d", c.ProgressEvery)
	}
	if c.CheckEvery < 0 {
		return fmt.Errorf("check_every must not be negative, got %d", c.CheckEvery)
	}
	return nil
}

// Mode returns the trajectory mode, defaulting to full on bad input.
func (c *Config) Mode() sim.TrajectoryMode {
	m, err := sim.ParseTrajectoryMode(c.Trajectory)
	if err != nil {
		return sim.Full
	}
	return m
}

// Level returns the log level, defaulting to warn on bad input.
func (c *Config) Level() log.Level {
	l, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return l
}
