package model

import (
	"image"
	"log"

	"github.com/pkg/errors"
	"neilpa.me/go-stbi"
	vm "vehicle_viewer/vector_math"
)

// Texture is a decoded RGBA8 image. It stays resident on the CPU after upload so it can still be sampled there.
type Texture struct {
	Name string
	img  *image.RGBA
}

// LoadTexture decodes an image file. Callers treat a failure as "no texture" and keep going.
func LoadTexture(path string) (*Texture, error) {
	img, err := stbi.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load texture %s", path)
	}
	if img.Rect.Empty() {
		return nil, errors.Errorf("texture %s has no pixels", path)
	}
	log.Printf("Loaded texture %s (w: %dp, h: %dp)", path, img.Rect.Dx(), img.Rect.Dy())
	return NewTexture(path, img), nil
}

func NewTexture(name string, img *image.RGBA) *Texture {
	return &Texture{
		Name: name,
		img:  img,
	}
}

func (t *Texture) Width() int {
	return t.img.Rect.Dx()
}

func (t *Texture) Height() int {
	return t.img.Rect.Dy()
}

// Pixels returns the image as tightly packed RGBA8 rows, top row first.
func (t *Texture) Pixels() []byte {
	w, h := t.Width(), t.Height()
	rowLen := w * 4
	if t.img.Stride == rowLen && t.img.Rect.Min == (image.Point{}) {
		return t.img.Pix[:rowLen*h]
	}
	packed := make([]byte, rowLen*h)
	for y := 0; y < h; y++ {
		start := t.img.PixOffset(t.img.Rect.Min.X, t.img.Rect.Min.Y+y)
		copy(packed[y*rowLen:(y+1)*rowLen], t.img.Pix[start:start+rowLen])
	}
	return packed
}

// Sample returns the colour of the texel nearest to uv. uv is clamped to [0,1] first; (0,0) is the top left corner.
func (t *Texture) Sample(uv vm.Vec2) vm.ColorRGB {
	uv = uv.Clamp01()
	w, h := t.Width(), t.Height()
	x := int(uv.X * float32(w))
	y := int(uv.Y * float32(h))
	if x >= w {
		x = w - 1
	}
	if y >= h {
		y = h - 1
	}
	c := t.img.RGBAAt(t.img.Rect.Min.X+x, t.img.Rect.Min.Y+y)
	return vm.ColorRGB{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
	}
}
