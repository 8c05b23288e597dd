// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/pipes/screensaver"
)

var (
	runBackend string
	runWatch   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open a window and run the screensaver",
	Long: `Run opens a desktop window and animates the pipes until Escape is
pressed. WASD or the arrow keys move the camera.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if runBackend != "" {
			cfg.Backend = runBackend
		}
		if runWatch && configPath != "" {
			return screensaver.RunWindowWatch(cfg, configPath)
		}
		return screensaver.RunWindow(cfg)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runBackend, "backend", "", "Rendering backend (default: best available)")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "Reload the config file when it changes (needs --config)")
}
