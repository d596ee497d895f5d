package model

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	vm "vehicle_viewer/vector_math"
)

// 2x2 checker: red top left, green top right, blue bottom left, white bottom right
func newCheckerTexture() *Texture {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{G: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})
	img.SetRGBA(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	return NewTexture("checker", img)
}

func TestTextureSample(t *testing.T) {
	tex := newCheckerTexture()
	cases := []struct {
		uv   vm.Vec2
		want vm.ColorRGB
	}{
		{vm.Vec2{X: 0.1, Y: 0.1}, vm.ColorRGB{R: 1}},
		{vm.Vec2{X: 0.9, Y: 0.1}, vm.ColorRGB{G: 1}},
		{vm.Vec2{X: 0.1, Y: 0.9}, vm.ColorRGB{B: 1}},
		{vm.Vec2{X: 0.9, Y: 0.9}, vm.White},
		// edges and out of range coordinates are clamped onto the image
		{vm.Vec2{X: 1, Y: 1}, vm.White},
		{vm.Vec2{X: -3, Y: 0}, vm.ColorRGB{R: 1}},
		{vm.Vec2{X: 7, Y: -1}, vm.ColorRGB{G: 1}},
	}
	for _, c := range cases {
		if got := tex.Sample(c.uv); got != c.want {
			t.Errorf("Sample(%v) should be %v but was %v", c.uv, c.want, got)
		}
	}
}

func TestTexturePixelsArePacked(t *testing.T) {
	full := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range full.Pix {
		full.Pix[i] = byte(i)
	}
	sub := full.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)
	tex := NewTexture("sub", sub)
	if tex.Width() != 2 || tex.Height() != 2 {
		t.Fatalf("Expected a 2x2 texture but got %dx%d", tex.Width(), tex.Height())
	}
	px := tex.Pixels()
	if len(px) != 2*2*4 {
		t.Fatalf("Expected 16 Byte of pixels but got %d", len(px))
	}
	// first texel of the sub image is (1,1) in the 4x4 image: row 1 * 16 Byte + 1 * 4 Byte
	if px[0] != 20 || px[8] != 36 {
		t.Errorf("Rows were not packed correctly: %v", px)
	}
}

func TestLoadTextureMissingFile(t *testing.T) {
	tex, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png"))
	if err == nil || tex != nil {
		t.Errorf("Loading a missing file should fail")
	}
}
