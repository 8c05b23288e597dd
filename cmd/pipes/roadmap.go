// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/pipes/roadmap"
	"github.com/gogpu/pipes/roadmap/tui"
)

const defaultRoadmap = "ROADMAP.md"

func roadmapPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultRoadmap
}

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Inspect and edit the project ROADMAP.md checklist",
}

var roadmapLintCmd = &cobra.Command{
	Use:   "lint [file]",
	Short: "Check a roadmap file against its structural rules",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := roadmapPath(args)
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("roadmap: %w", err)
		}
		defer f.Close()

		problems, err := roadmap.Lint(f)
		if err != nil {
			return err
		}
		for _, p := range problems {
			fmt.Printf("%s: %s\n", path, p)
		}
		if len(problems) > 0 {
			return fmt.Errorf("roadmap: %d problem(s) in %s", len(problems), path)
		}
		fmt.Printf("%s: clean\n", path)
		return nil
	},
}

var roadmapStatusCmd = &cobra.Command{
	Use:   "status [file]",
	Short: "Show checklist completion",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := roadmap.ParseFile(roadmapPath(args))
		if err != nil {
			return err
		}
		s := doc.Stats()
		fmt.Printf("%s: %d/%d done\n", doc.Title, s.Done, s.Total)
		for _, it := range doc.Flatten() {
			box := " "
			if it.Done {
				box = "x"
			}
			for i := 0; i < it.Depth; i++ {
				fmt.Print("  ")
			}
			fmt.Printf("[%s] %s\n", box, it.Text)
		}
		return nil
	},
}

var roadmapEditCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Toggle checklist items interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(roadmapPath(args))
	},
}

func init() {
	rootCmd.AddCommand(roadmapCmd)
	roadmapCmd.AddCommand(roadmapLintCmd)
	roadmapCmd.AddCommand(roadmapStatusCmd)
	roadmapCmd.AddCommand(roadmapEditCmd)
}
