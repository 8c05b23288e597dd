// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/pipes/render"
	"github.com/gogpu/pipes/render/wgpu"
)

var gpuinfoCmd = &cobra.Command{
	Use:   "gpuinfo",
	Short: "List GPU adapters and rendering backends",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("backends:")
		for _, name := range render.AvailableBackends() {
			fmt.Printf("  %s\n", name)
		}

		adapters, err := wgpu.Adapters()
		if err != nil {
			fmt.Printf("adapters: none (%v)\n", err)
			return nil
		}
		fmt.Println("adapters:")
		for _, a := range adapters {
			fmt.Printf("  %s (%s)\n", a.Name, a.DeviceType)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gpuinfoCmd)
}
