// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package screensaver

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/pipes"
)

// Watch reloads the config file whenever it changes on disk and calls
// onChange with each valid new config. Invalid or unreadable edits are
// logged and skipped. Blocks until ctx is done.
//
// The parent directory is watched rather than the file itself so
// editor-style replace-by-rename keeps working.
func Watch(ctx context.Context, path string, onChange func(Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("screensaver: watch: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("screensaver: watch: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("screensaver: watch %s: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := LoadConfig(abs)
			if err != nil {
				pipes.Logger().Warn("config reload skipped", "path", abs, "error", err)
				continue
			}
			pipes.Logger().Info("config reloaded", "path", abs)
			onChange(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			pipes.Logger().Warn("config watcher error", "error", err)
		}
	}
}
