package vector_math

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ToRad is a helper function to turn degree to radians
func ToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// ToDeg is a helper function to turn radians to degree
func ToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

func Clamp(f, lo, hi float32) float32 {
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}

// ApproxEqual compares with an absolute tolerance, so values next to zero behave like any other.
func ApproxEqual(a, b, eps float32) bool {
	return mgl32.Abs(a-b) <= eps
}

// MatApproxEqual applies ApproxEqual to every element of m and n.
func MatApproxEqual(m, n mgl32.Mat4, eps float32) bool {
	for i := range m {
		if !ApproxEqual(m[i], n[i], eps) {
			return false
		}
	}
	return true
}

// TransformVector applies m to v as a direction (w = 0), translation is ignored.
func TransformVector(m mgl32.Mat4, v Vec3) Vec3 {
	return FromMgl(m.Mul4x1(v.Mgl().Vec4(0)).Vec3())
}

// TransformPoint applies m to v as a position (w = 1) and drops w without a perspective divide.
func TransformPoint(m mgl32.Mat4, v Vec3) Vec3 {
	return FromMgl(m.Mul4x1(v.Mgl().Vec4(1)).Vec3())
}
