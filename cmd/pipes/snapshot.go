// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gogpu/pipes/screensaver"
)

var (
	snapFrames  uint64
	snapOut     string
	snapEvery   uint64
	snapSeed    uint64
	snapBackend string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render frames to PNG files without a window",
	Long: `Snapshot runs the animation headless and writes numbered PNG frames,
for previews or for testing a rendering backend on a remote machine.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if snapSeed != 0 {
			cfg.Seed = snapSeed
		}
		if snapBackend != "" {
			cfg.Backend = snapBackend
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		err = screensaver.RunHeadless(ctx, cfg, screensaver.HeadlessConfig{
			Frames: snapFrames,
			OutDir: snapOut,
			Every:  snapEvery,
		})
		if err != nil {
			return err
		}
		fmt.Printf("wrote frames to %s\n", snapOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().Uint64Var(&snapFrames, "frames", 300, "Number of frames to render (0 runs until interrupted)")
	snapshotCmd.Flags().StringVar(&snapOut, "out", "frames", "Output directory for PNG frames")
	snapshotCmd.Flags().Uint64Var(&snapEvery, "every", 1, "Write every Nth frame")
	snapshotCmd.Flags().Uint64Var(&snapSeed, "seed", 0, "World seed override (0 keeps the config's seed)")
	snapshotCmd.Flags().StringVar(&snapBackend, "backend", "", "Rendering backend (default: best available)")
}
