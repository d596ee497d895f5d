package vector_math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func TestRotationX(t *testing.T) {
	m := NewRotationX(ToRad(90))
	got := TransformVector(m, UnitZ)
	want := Vec3{Y: -1}
	if !got.ApproxEqual(want, eps) {
		t.Errorf("RotX(90) * +Z should be %v but was %v\n%s", want, got, Describe(m))
	}
}

func TestRotationY(t *testing.T) {
	m := NewRotationY(ToRad(90))
	got := TransformVector(m, UnitZ)
	want := Vec3{X: 1}
	if !got.ApproxEqual(want, eps) {
		t.Errorf("RotY(90) * +Z should be %v but was %v\n%s", want, got, Describe(m))
	}
}

func TestRotationZ(t *testing.T) {
	m := NewRotationZ(ToRad(90))
	got := TransformVector(m, UnitX)
	want := Vec3{Y: 1}
	if !got.ApproxEqual(want, eps) {
		t.Errorf("RotZ(90) * +X should be %v but was %v\n%s", want, got, Describe(m))
	}
}

func TestTranslationOnlyMovesPoints(t *testing.T) {
	m := NewTranslation(Vec3{X: 1, Y: 2, Z: 3})
	p := TransformPoint(m, Vec3{})
	if !p.ApproxEqual(Vec3{X: 1, Y: 2, Z: 3}, eps) {
		t.Errorf("Translated origin should be (1,2,3) but was %v", p)
	}
	v := TransformVector(m, UnitX)
	if !v.ApproxEqual(UnitX, eps) {
		t.Errorf("Translation should not change directions, got %v", v)
	}
}

func TestScaleAppliesPerAxis(t *testing.T) {
	m := NewScale(Vec3{X: 2, Y: 3, Z: -1})
	p := TransformPoint(m, Vec3{X: 1, Y: 1, Z: 1})
	if !p.ApproxEqual(Vec3{X: 2, Y: 3, Z: -1}, eps) {
		t.Errorf("Scaled point should be (2,3,-1) but was %v", p)
	}
}

func TestBasisInverse(t *testing.T) {
	fwd := Vec3{X: 1, Z: 1}.Norm()
	right := UnitY.Cross(fwd).Norm()
	up := fwd.Cross(right).Norm()
	origin := Vec3{X: 4, Y: -2, Z: 7}

	basis := NewBasis(right, up, fwd, origin)
	view := basis.Inv()

	if !MatApproxEqual(view.Mul4(basis), mgl32.Ident4(), eps) {
		t.Errorf("basis * inverse should be identity:\n%s", Describe(view.Mul4(basis)))
	}
	// The origin ends up at the view space origin, a point ahead ends up on +Z.
	if p := TransformPoint(view, origin); !p.ApproxEqual(Vec3{}, eps) {
		t.Errorf("origin should map to (0,0,0) but was %v", p)
	}
	ahead := origin.Add(fwd.ScalarMul(10))
	if p := TransformPoint(view, ahead); !p.ApproxEqual(Vec3{Z: 10}, 1e-4) {
		t.Errorf("point ahead should map to (0,0,10) but was %v", p)
	}
}

func TestNewPerspectiveLH(t *testing.T) {
	fovTan := float32(math.Tan(ToRad(45) / 2))
	near, far := float32(1), float32(1000)
	m := NewPerspectiveLH(fovTan, 2, near, far)

	project := func(p Vec3) mgl32.Vec3 {
		c := m.Mul4x1(p.Mgl().Vec4(1))
		return c.Vec3().Mul(1 / c.W())
	}

	if d := project(Vec3{Z: near}); !ApproxEqual(d.Z(), 0, eps) {
		t.Errorf("near plane should map to depth 0 but was %f", d.Z())
	}
	if d := project(Vec3{Z: far}); !ApproxEqual(d.Z(), 1, eps) {
		t.Errorf("far plane should map to depth 1 but was %f", d.Z())
	}
	// top of the frustum at z = 10 lands on the top edge, which is y = -1 in Vulkan clip space
	if d := project(Vec3{Y: fovTan * 10, Z: 10}); !ApproxEqual(d.Y(), -1, eps) {
		t.Errorf("top frustum edge should map to y = -1 but was %f", d.Y())
	}
	// the aspect ratio widens the horizontal extent
	if d := project(Vec3{X: 2 * fovTan * 10, Z: 10}); !ApproxEqual(d.X(), 1, eps) {
		t.Errorf("right frustum edge should map to x = 1 but was %f", d.X())
	}
}
