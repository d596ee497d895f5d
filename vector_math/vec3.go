package vector_math

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is a tightly packed 3-component vector. Its layout (3 * float32, no padding) is relied upon when vertices
// are copied into device memory.
type Vec3 struct {
	X, Y, Z float32
}

var (
	UnitX = Vec3{X: 1}
	UnitY = Vec3{Y: 1}
	UnitZ = Vec3{Z: 1}
)

func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: (v.Y * w.Z) - (v.Z * w.Y),
		Y: (v.Z * w.X) - (v.X * w.Z),
		Z: (v.X * w.Y) - (v.Y * w.X),
	}
}

func (v Vec3) Dot(w Vec3) float32 {
	return (v.X * w.X) + (v.Y * w.Y) + (v.Z * w.Z)
}

func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{
		X: v.X - w.X,
		Y: v.Y - w.Y,
		Z: v.Z - w.Z,
	}
}

func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{
		X: v.X + w.X,
		Y: v.Y + w.Y,
		Z: v.Z + w.Z,
	}
}

func (v Vec3) ScalarMul(factor float32) Vec3 {
	return Vec3{
		X: v.X * factor,
		Y: v.Y * factor,
		Z: v.Z * factor,
	}
}

func (v Vec3) Len() float32 {
	return float32(math.Sqrt(float64((v.X * v.X) + (v.Y * v.Y) + (v.Z * v.Z))))
}

// Norm returns v scaled to unit length. The zero vector stays the zero vector.
func (v Vec3) Norm() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{
		X: v.X / l,
		Y: v.Y / l,
		Z: v.Z / l,
	}
}

// Reject removes the component of v along the unit vector n.
func (v Vec3) Reject(n Vec3) Vec3 {
	return v.Sub(n.ScalarMul(v.Dot(n)))
}

// ApproxEqual reports whether every component of v is within eps of w's.
func (v Vec3) ApproxEqual(w Vec3, eps float32) bool {
	return ApproxEqual(v.X, w.X, eps) &&
		ApproxEqual(v.Y, w.Y, eps) &&
		ApproxEqual(v.Z, w.Z, eps)
}

func (v Vec3) Mgl() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func FromMgl(v mgl32.Vec3) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}
