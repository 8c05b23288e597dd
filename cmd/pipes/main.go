// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command pipes runs the 3D pipes screensaver and its supporting tools.
package main

import (
	// Register rendering backends.
	_ "github.com/gogpu/pipes/render/softpipe"
	_ "github.com/gogpu/pipes/render/wgpu"
)

func main() {
	Execute()
}
