// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package screensaver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero bounds", func(c *Config) { c.BoundsY = 0 }},
		{"turn probability above one", func(c *Config) { c.TurnProbability = 1.5 }},
		{"negative stop probability", func(c *Config) { c.StopProbability = -0.1 }},
		{"negative max pipes", func(c *Config) { c.MaxPipes = -5 }},
		{"zero growth interval", func(c *Config) { c.GrowthEvery = 0 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"width: 640\nheight: 480\nbackend: softpipe\nseed: 42\nmax_pipes: 200\n",
	), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
	assert.Equal(t, "softpipe", cfg.Backend)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 200, cfg.MaxPipes)

	// Unset keys keep their defaults.
	def := DefaultConfig()
	assert.Equal(t, def.BoundsX, cfg.BoundsX)
	assert.Equal(t, def.TurnProbability, cfg.TurnProbability)
	assert.Equal(t, def.FPS, cfg.FPS)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: -3\n"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
