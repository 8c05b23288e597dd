// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func TestLoadPNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(1, 2, color.NRGBA{R: 200, G: 10, B: 50, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Bounds().Dx() != 4 || got.Bounds().Dy() != 4 {
		t.Fatalf("bounds = %v, want 4x4", got.Bounds())
	}
	c := got.RGBAAt(1, 2)
	if c.R != 200 || c.G != 10 || c.B != 50 {
		t.Fatalf("pixel (1,2) = %v", c)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	if _, err := Load(strings.NewReader("not an image")); err == nil {
		t.Fatal("Load accepted garbage input")
	}
}

func TestResize(t *testing.T) {
	src := Checkerboard(4)
	dst := Resize(src, 16, 16)
	if dst.Bounds().Dx() != 16 || dst.Bounds().Dy() != 16 {
		t.Fatalf("bounds = %v, want 16x16", dst.Bounds())
	}
	if same := Resize(src, src.Bounds().Dx(), src.Bounds().Dy()); same != src {
		t.Fatal("Resize to identical size should return the input")
	}
}

func TestCheckerboard(t *testing.T) {
	img := Checkerboard(4)
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 32 {
		t.Fatalf("bounds = %v, want 32x32", img.Bounds())
	}
	if img.RGBAAt(0, 0) == img.RGBAAt(8, 0) {
		t.Fatal("adjacent cells share a color")
	}
	if img.RGBAAt(0, 0) != img.RGBAAt(16, 0) {
		t.Fatal("alternating cells should repeat")
	}
	if img.RGBAAt(0, 0).A != 0xFF {
		t.Fatal("texture must be opaque")
	}
}

func TestCheckerboardDefaultsSize(t *testing.T) {
	img := Checkerboard(0)
	if img.Bounds().Dx() != 64 {
		t.Fatalf("default board = %v, want 64x64", img.Bounds())
	}
}
