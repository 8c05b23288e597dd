// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package screensaver

import (
	"context"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/pipes"
	"github.com/gogpu/pipes/camera"
)

// RunWindow opens a desktop window and runs the screensaver until Escape
// is pressed or the window closes. Blocks until then.
func RunWindow(cfg Config) error {
	return runWindow(cfg, "")
}

// RunWindowWatch is RunWindow with config hot reload: edits to the file
// at configPath swap in a freshly built saver mid-run.
func RunWindowWatch(cfg Config, configPath string) error {
	return runWindow(cfg, configPath)
}

func runWindow(cfg Config, configPath string) error {
	saver, err := NewSaver(cfg)
	if err != nil {
		return err
	}

	g := &game{saver: saver, width: cfg.Width, height: cfg.Height}
	// Reloads swap g.saver, so close whichever is current on exit.
	defer func() { g.saver.Close() }()
	if configPath != "" {
		g.reload = make(chan Config, 1)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			// Watch returns on ctx cancel; errors already logged inside.
			_ = Watch(ctx, configPath, func(c Config) {
				select {
				case g.reload <- c:
				default:
				}
			})
		}()
	}
	ebiten.SetWindowTitle("pipes")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)
	return ebiten.RunGame(g)
}

// cameraKeys maps physical keys to camera movement. WASD and the arrow
// keys both work.
var cameraKeys = []struct {
	primary, alt ebiten.Key
	movement     camera.Key
}{
	{ebiten.KeyW, ebiten.KeyArrowUp, camera.KeyForward},
	{ebiten.KeyS, ebiten.KeyArrowDown, camera.KeyBackward},
	{ebiten.KeyA, ebiten.KeyArrowLeft, camera.KeyLeft},
	{ebiten.KeyD, ebiten.KeyArrowRight, camera.KeyRight},
}

type game struct {
	saver  *Saver
	reload chan Config

	width, height int
	img           *image.RGBA
	screenImg     *ebiten.Image
	renderErr     error
}

func (g *game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.applyReload()
	for _, m := range cameraKeys {
		g.saver.HandleKey(m.movement, ebiten.IsKeyPressed(m.primary) || ebiten.IsKeyPressed(m.alt))
	}
	g.saver.Step()

	g.img, g.renderErr = g.saver.Frame()
	if g.renderErr != nil {
		return fmt.Errorf("screensaver: render: %w", g.renderErr)
	}
	return nil
}

// applyReload swaps in a saver built from a freshly loaded config, if
// one arrived. A config that fails to build keeps the current scene.
func (g *game) applyReload() {
	if g.reload == nil {
		return
	}
	select {
	case cfg := <-g.reload:
		next, err := NewSaver(cfg)
		if err != nil {
			pipes.Logger().Warn("reloaded config rejected", "error", err)
			return
		}
		g.saver.Close()
		g.saver = next
		g.saver.Resize(g.width, g.height)
		ebiten.SetTPS(cfg.FPS)
	default:
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.img == nil {
		return
	}
	if g.screenImg == nil ||
		g.screenImg.Bounds().Dx() != g.img.Bounds().Dx() ||
		g.screenImg.Bounds().Dy() != g.img.Bounds().Dy() {
		if g.screenImg != nil {
			g.screenImg.Deallocate()
		}
		g.screenImg = ebiten.NewImage(g.img.Bounds().Dx(), g.img.Bounds().Dy())
	}
	g.screenImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.screenImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 &&
		(outsideWidth != g.width || outsideHeight != g.height) {
		g.width, g.height = outsideWidth, outsideHeight
		g.saver.Resize(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}
