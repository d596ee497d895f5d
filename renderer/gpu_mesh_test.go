package renderer

import (
	"image/color"
	"testing"
)

func TestFallbackMaps(t *testing.T) {
	white, flat := &GpuTexture{Name: "white"}, &GpuTexture{Name: "flatNormal"}
	m := &GpuMesh{fallback: defaultMaps(white, flat)}

	want := [TEXTURE_SLOTS]*GpuTexture{white, flat, white, white}
	if got := m.boundTextures(); got != want {
		t.Errorf("An untextured mesh should get white maps and a flat normal map, got %v", got)
	}

	diffuse := &GpuTexture{Name: "diffuse"}
	m.textures[BINDING_DIFFUSE-BINDING_DIFFUSE] = diffuse
	if got := m.boundTextures(); got[0] != diffuse || got[1] != flat {
		t.Errorf("A set map should replace only its own slot, got %v", got)
	}
	if m.textures[1] != nil {
		t.Errorf("Resolving fallbacks must not change the mesh's own maps")
	}
}

func TestDefaultImages(t *testing.T) {
	if c := whiteImage().RGBAAt(0, 0); c != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("White texel was %v", c)
	}
	// decodes to roughly (0,0,1) in tangent space
	flat := flatNormalImage()
	if b := flat.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("Flat normal map should be 1x1 but was %v", b)
	}
	c := flat.RGBAAt(0, 0)
	decode := func(v uint8) float32 { return float32(v)/255*2 - 1 }
	if x, y, z := decode(c.R), decode(c.G), decode(c.B); x > 0.01 || x < -0.01 || y > 0.01 || y < -0.01 || z != 1 {
		t.Errorf("Flat normal decodes to (%f, %f, %f)", x, y, z)
	}
}
