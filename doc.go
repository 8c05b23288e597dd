// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pipes implements a screensaver-style 3D pipe-growing animation
// for the GoGPU ecosystem, in the spirit of the classic "pipes" screensaver.
//
// # Overview
//
// The animation grows chains of straight (I) and elbow (L) pipe segments
// through a bounded 3D grid. Each segment occupies one grid block; a chain
// advances in its current direction, occasionally turns through an elbow,
// and occasionally stops so a new chain can start elsewhere. A look-at
// camera and a single orbiting point light frame the scene.
//
// # Packages
//
//   - world: the grid simulation (directions, blocks, instance placement)
//   - camera: view/projection math and keyboard control
//   - render: renderer interface, backend registry, lighting
//   - render/mesh: pipe geometry (OBJ loading and procedural primitives)
//   - render/texture: pipe surface textures
//   - render/softpipe: CPU projection backend rasterizing through gogpu/gg
//   - render/wgpu: WebGPU backend via gogpu/wgpu
//   - screensaver: configuration, simulation stepping, window and
//     headless runners
//   - roadmap: tooling for the project ROADMAP.md checklist
//
// # Quick Start
//
//	cfg := screensaver.DefaultConfig()
//	if err := screensaver.RunWindow(cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Or capture frames without a window:
//
//	err := screensaver.RunHeadless(ctx, cfg, screensaver.HeadlessConfig{
//	    Frames: 120,
//	    OutDir: "frames",
//	})
//
// # Logging
//
// pipes produces no log output by default. Call [SetLogger] to enable
// structured logging across all sub-packages.
package pipes

// Version information
const (
	// Version is the current version of the module.
	Version = "0.2.0"
)
