package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	com "vehicle_viewer/common"
	vm "vehicle_viewer/vector_math"
)

const (
	DEFAULT_FOV_ANGLE         = 90
	DEFAULT_NEAR              = 1
	DEFAULT_FAR               = 1000
	DEFAULT_MOVE_SPEED        = 25
	DEFAULT_BOOST_FACTOR      = 5
	DEFAULT_MOUSE_SENSITIVITY = 0.25

	maxPitch = 89
)

// Camera is a free-look camera in a left-handed, +Y up world. It looks down its local +Z axis. Yaw and pitch are kept
// in degrees and are turned into a forward vector on every update, from which the right/up basis is re-derived.
type Camera struct {
	Origin      vm.Vec3
	FovAngle    float32 // vertical field of view in degree
	AspectRatio float32
	Near        float32
	Far         float32

	MoveSpeed        float32 // units per second
	BoostFactor      float32 // applied to MoveSpeed while boosting
	MouseSensitivity float32 // degree per pixel of relative mouse motion

	Yaw   float32
	Pitch float32

	fov     float32 // tan(FovAngle / 2)
	forward vm.Vec3
	right   vm.Vec3
	up      vm.Vec3

	view       mgl32.Mat4
	invView    mgl32.Mat4
	projection mgl32.Mat4
}

func NewCamera() *Camera {
	c := &Camera{
		AspectRatio:      1,
		MoveSpeed:        DEFAULT_MOVE_SPEED,
		BoostFactor:      DEFAULT_BOOST_FACTOR,
		MouseSensitivity: DEFAULT_MOUSE_SENSITIVITY,
	}
	c.Initialize(DEFAULT_FOV_ANGLE, vm.Vec3{}, DEFAULT_NEAR, DEFAULT_FAR)
	return c
}

// Initialize resets the lens and places the camera at origin looking down +Z.
func (c *Camera) Initialize(fovAngle float32, origin vm.Vec3, near float32, far float32) {
	c.FovAngle = fovAngle
	c.fov = float32(math.Tan(vm.ToRad(float64(fovAngle)) / 2))
	c.Origin = origin
	c.Near = near
	c.Far = far
	c.Yaw = 0
	c.Pitch = 0
	c.forward = vm.UnitZ
	c.CalculateViewMatrix()
	c.CalculateProjectionMatrix()
}

func (c *Camera) SetAspectRatio(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.AspectRatio = aspect
	c.CalculateProjectionMatrix()
}

// Update applies one frame worth of input, dt being the frame time in seconds.
func (c *Camera) Update(dt float32, in com.InputState) {
	speed := c.MoveSpeed
	if in.Boost {
		speed *= c.BoostFactor
	}
	step := speed * dt

	if in.Forward {
		c.Origin = c.Origin.Add(c.forward.ScalarMul(step))
	}
	if in.Back {
		c.Origin = c.Origin.Sub(c.forward.ScalarMul(step))
	}
	if in.Right {
		c.Origin = c.Origin.Add(c.right.ScalarMul(step))
	}
	if in.Left {
		c.Origin = c.Origin.Sub(c.right.ScalarMul(step))
	}

	dx, dy := float32(in.MouseDX), float32(in.MouseDY)
	switch {
	case in.LeftButton && in.RightButton:
		c.Origin = c.Origin.Sub(c.up.ScalarMul(step * dy))
	case in.LeftButton:
		c.Origin = c.Origin.Sub(c.forward.ScalarMul(step * dy))
		c.Yaw += dx * c.MouseSensitivity
	case in.RightButton:
		c.Yaw += dx * c.MouseSensitivity
		c.Pitch += dy * c.MouseSensitivity
	}
	c.Pitch = vm.Clamp(c.Pitch, -maxPitch, maxPitch)
	c.Yaw = float32(math.Mod(float64(c.Yaw), 360))

	rotation := vm.NewRotationY(vm.ToRad(float64(c.Yaw))).Mul4(vm.NewRotationX(vm.ToRad(float64(c.Pitch))))
	c.forward = vm.TransformVector(rotation, vm.UnitZ).Norm()

	c.CalculateViewMatrix()
	c.CalculateProjectionMatrix()
}

// CalculateViewMatrix re-derives right and up from forward and world up (+Y) and builds the world to view matrix as
// the inverse of the camera's basis.
func (c *Camera) CalculateViewMatrix() {
	c.right = vm.UnitY.Cross(c.forward).Norm()
	c.up = c.forward.Cross(c.right).Norm()

	c.invView = vm.NewBasis(c.right, c.up, c.forward, c.Origin)
	c.view = c.invView.Inv()
}

func (c *Camera) CalculateProjectionMatrix() {
	c.projection = vm.NewPerspectiveLH(c.fov, c.AspectRatio, c.Near, c.Far)
}

func (c *Camera) Position() vm.Vec3 {
	return c.Origin
}

func (c *Camera) Forward() vm.Vec3 {
	return c.forward
}

func (c *Camera) Right() vm.Vec3 {
	return c.right
}

func (c *Camera) Up() vm.Vec3 {
	return c.up
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return c.view
}

func (c *Camera) InverseViewMatrix() mgl32.Mat4 {
	return c.invView
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}
