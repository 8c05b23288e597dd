// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package screensaver

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/pipes"
)

// HeadlessConfig controls the windowless runner.
type HeadlessConfig struct {
	// Frames stops after that many frames. Zero runs until ctx is done.
	Frames uint64

	// OutDir, when set, writes each frame as a numbered PNG there.
	OutDir string

	// Every writes only every Nth frame when OutDir is set. Zero or one
	// writes all of them.
	Every uint64
}

// RunHeadless runs the screensaver without a window, optionally dumping
// frames to disk. Useful for smoke tests and for capturing footage.
func RunHeadless(ctx context.Context, cfg Config, hc HeadlessConfig) error {
	saver, err := NewSaver(cfg)
	if err != nil {
		return err
	}
	defer saver.Close()

	if hc.OutDir != "" {
		if err := os.MkdirAll(hc.OutDir, 0o755); err != nil {
			return fmt.Errorf("screensaver: headless: %w", err)
		}
	}
	if hc.Every == 0 {
		hc.Every = 1
	}

	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()

	var frame uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			saver.Step()
			img, err := saver.Frame()
			if err != nil {
				return fmt.Errorf("screensaver: render frame %d: %w", frame, err)
			}
			if hc.OutDir != "" && frame%hc.Every == 0 {
				name := filepath.Join(hc.OutDir, fmt.Sprintf("frame_%06d.png", frame))
				if err := writePNG(name, img); err != nil {
					return err
				}
			}
			frame++
			if hc.Frames > 0 && frame >= hc.Frames {
				pipes.Logger().Info("headless run complete", "frames", frame, "pipes", saver.World().Len())
				return nil
			}
		}
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("screensaver: write frame: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("screensaver: encode %s: %w", path, err)
	}
	return f.Close()
}
