// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/pipes"
	"github.com/gogpu/pipes/screensaver"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "pipes",
	Short: "A 3D pipes screensaver",
	Long: `Pipes grows random chains of straight and elbow segments through a
bounded 3D grid and renders them with an orbiting light, on the GPU when
one is available and in software otherwise.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
		slog.SetDefault(logger)
		pipes.SetLogger(logger)
	},
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
}

// loadConfig resolves the effective config: the --config file when given,
// defaults otherwise.
func loadConfig() (screensaver.Config, error) {
	if configPath == "" {
		return screensaver.DefaultConfig(), nil
	}
	return screensaver.LoadConfig(configPath)
}
