// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package screensaver ties the pipe world, camera, light, and a rendering
// backend into the animation loop, presented in a window or headless.
package screensaver

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/pipes/world"
)

// Config controls the screensaver. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	// Width and Height set the initial window or frame size in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Backend names a rendering backend. Empty picks the best available.
	Backend string `yaml:"backend"`

	// Seed fixes the world's random sequence. Zero seeds from the clock.
	Seed uint64 `yaml:"seed"`

	// Grid dimensions in blocks.
	BoundsX int `yaml:"bounds_x"`
	BoundsY int `yaml:"bounds_y"`
	BoundsZ int `yaml:"bounds_z"`

	// TurnProbability is the per-step chance a chain bends.
	// StopProbability is the per-step chance a chain ends and a new one
	// starts elsewhere.
	TurnProbability float32 `yaml:"turn_probability"`
	StopProbability float32 `yaml:"stop_probability"`

	// MaxPipes resets the world after that many segments. Zero lets the
	// world grow until the grid fills.
	MaxPipes int `yaml:"max_pipes"`

	// GrowthEvery is the number of frames between new pipe segments.
	GrowthEvery int `yaml:"growth_every"`

	// Texture is a path to a PNG or JPEG pipe texture. Empty uses the
	// built-in checkerboard.
	Texture string `yaml:"texture"`

	// FPS is the animation rate for the window and headless loops.
	FPS int `yaml:"fps"`
}

// DefaultConfig returns the stock settings: a 10x8x8 grid growing one
// segment every few frames at 60 FPS.
func DefaultConfig() Config {
	return Config{
		Width:           800,
		Height:          600,
		BoundsX:         world.DefaultBoundsX,
		BoundsY:         world.DefaultBoundsY,
		BoundsZ:         world.DefaultBoundsZ,
		TurnProbability: world.DefaultTurnProbability,
		StopProbability: world.DefaultStopProbability,
		GrowthEvery:     6,
		FPS:             60,
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("screensaver: size %dx%d is not positive", c.Width, c.Height)
	case c.BoundsX < 1 || c.BoundsY < 1 || c.BoundsZ < 1:
		return fmt.Errorf("screensaver: bounds %dx%dx%d need at least one block per axis",
			c.BoundsX, c.BoundsY, c.BoundsZ)
	case c.TurnProbability < 0 || c.TurnProbability > 1:
		return fmt.Errorf("screensaver: turn probability %v outside [0,1]", c.TurnProbability)
	case c.StopProbability < 0 || c.StopProbability > 1:
		return fmt.Errorf("screensaver: stop probability %v outside [0,1]", c.StopProbability)
	case c.MaxPipes < 0:
		return fmt.Errorf("screensaver: max pipes %d is negative", c.MaxPipes)
	case c.GrowthEvery < 1:
		return fmt.Errorf("screensaver: growth interval %d must be at least one frame", c.GrowthEvery)
	case c.FPS < 1:
		return fmt.Errorf("screensaver: fps %d must be at least 1", c.FPS)
	}
	return nil
}

// LoadConfig reads a YAML config file. Settings absent from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("screensaver: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("screensaver: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
