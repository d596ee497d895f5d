package vector_math

// ColorRGB is a linear colour with components nominally in [0,1]. Like Vec3 it is tightly packed so it can live
// inside a vertex.
type ColorRGB struct {
	R, G, B float32
}

var (
	White = ColorRGB{R: 1, G: 1, B: 1}
	Black = ColorRGB{}
)

func (c ColorRGB) Add(o ColorRGB) ColorRGB {
	return ColorRGB{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}
}

func (c ColorRGB) Mul(o ColorRGB) ColorRGB {
	return ColorRGB{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B}
}

func (c ColorRGB) Clamp() ColorRGB {
	return ColorRGB{
		R: Clamp(c.R, 0, 1),
		G: Clamp(c.G, 0, 1),
		B: Clamp(c.B, 0, 1),
	}
}
