// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/pipes"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pipes",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pipes version %s\n", pipes.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
