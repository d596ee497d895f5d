package vector_math

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Matrices are mgl32.Mat4: column-major storage, column vectors (p' = M * p). That is the memory layout GLSL expects
// for a std140 mat4, so a matrix can be copied into a uniform buffer as-is.

func NewRotationX(rad float64) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(float32(rad))
}

func NewRotationY(rad float64) mgl32.Mat4 {
	return mgl32.HomogRotate3DY(float32(rad))
}

func NewRotationZ(rad float64) mgl32.Mat4 {
	return mgl32.HomogRotate3DZ(float32(rad))
}

func NewTranslation(t Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(t.X, t.Y, t.Z)
}

func NewScale(s Vec3) mgl32.Mat4 {
	return mgl32.Scale3D(s.X, s.Y, s.Z)
}

// NewBasis builds the transform whose columns are the given axes and origin, i.e. the matrix that moves a point
// from the space spanned by right/up/forward into the space the vectors are expressed in.
func NewBasis(right, up, forward, origin Vec3) mgl32.Mat4 {
	return mgl32.Mat4FromCols(
		right.Mgl().Vec4(0),
		up.Mgl().Vec4(0),
		forward.Mgl().Vec4(0),
		origin.Mgl().Vec4(1),
	)
}

// NewPerspectiveLH builds a left-handed perspective projection (camera looks down +Z) mapping depth from
// [near, far] onto [0, 1]. fovTan is tan(fovY / 2). Y is flipped, as Vulkan's clip space points Y downwards.
// Implemented after: https://registry.khronos.org/OpenGL-Refpages/gl2.1/xhtml/gluPerspective.xml
func NewPerspectiveLH(fovTan float32, aspect float32, near float32, far float32) mgl32.Mat4 {
	var m mgl32.Mat4
	m.Set(0, 0, 1/(aspect*fovTan))
	m.Set(1, 1, -1/fovTan)
	m.Set(2, 2, far/(far-near))
	m.Set(2, 3, -(far*near)/(far-near))
	m.Set(3, 2, 1)
	return m
}

// Describe renders m row by row, mostly useful for logging and test failures.
func Describe(m mgl32.Mat4) string {
	mStr := strings.Builder{}
	for r := 0; r < 4; r++ {
		if r > 0 {
			mStr.WriteString("\n")
		}
		mStr.WriteString(fmt.Sprintf("%v", m.Row(r)))
	}
	return mStr.String()
}
