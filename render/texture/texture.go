// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package texture loads and prepares pipe surface textures.
package texture

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	// Registered decoders for Load.
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

// Load decodes a PNG or JPEG texture into RGBA.
func Load(r io.Reader) (*image.RGBA, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("texture: decode: %w", err)
	}
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba, nil
	}
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), src, b.Min, xdraw.Src)
	return rgba, nil
}

// LoadFile loads a texture from disk.
func LoadFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Resize scales a texture to the given size with Catmull-Rom filtering.
// Returns the input unchanged when it already has the requested size.
func Resize(src *image.RGBA, width, height int) *image.RGBA {
	if src.Bounds().Dx() == width && src.Bounds().Dy() == height {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// Checkerboard returns an n x n block checkerboard in two metallic grays,
// the fallback texture when none is configured.
func Checkerboard(n int) *image.RGBA {
	if n <= 0 {
		n = 8
	}
	const cell = 8
	size := n * cell
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{R: 0xB8, G: 0xBC, B: 0xC4, A: 0xFF}
	dark := color.RGBA{R: 0x70, G: 0x74, B: 0x7C, A: 0xFF}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := light
			if (x/cell+y/cell)%2 == 1 {
				c = dark
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
