package model

import (
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	com "vehicle_viewer/common"
	vm "vehicle_viewer/vector_math"
)

// DEFAULT_ROTATION_SPEED is the turntable speed in radians per second of accumulated scene time.
const DEFAULT_ROTATION_SPEED = math.Pi / 4

// Mesh is the CPU side of a drawable: geometry plus the per-frame state that ends up in its uniform block. It
// carries no device handles, those live with the renderer.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32

	RotationSpeed float32

	passIdx      uint32
	view         mgl32.Mat4
	projection   mgl32.Mat4
	time         float32
	cameraPos    vm.Vec3
	useNormalMap bool
}

func NewMesh(name string, v []Vertex, id []uint32) *Mesh {
	return &Mesh{
		Name:          name,
		Vertices:      v,
		Indices:       id,
		RotationSpeed: DEFAULT_ROTATION_SPEED,
		view:          mgl32.Ident4(),
		projection:    mgl32.Ident4(),
		useNormalMap:  true,
	}
}

func (m *Mesh) SetPassIdx(i uint32) {
	m.passIdx = i
}

func (m *Mesh) PassIdx() uint32 {
	return m.passIdx
}

// UpdateMatrix stores the camera matrices the next uniform upload is built from.
func (m *Mesh) UpdateMatrix(view mgl32.Mat4, projection mgl32.Mat4) {
	m.view = view
	m.projection = projection
}

// SetTime sets the accumulated scene time in seconds. It drives the turntable rotation.
func (m *Mesh) SetTime(t float32) {
	m.time = t
}

func (m *Mesh) SetCameraPosition(p vm.Vec3) {
	m.cameraPos = p
}

func (m *Mesh) SetUseNormalMap(b bool) {
	m.useNormalMap = b
}

// World returns the object to world transform, a rotation about +Y by the elapsed scene time.
func (m *Mesh) World() mgl32.Mat4 {
	return vm.NewRotationY(float64(m.time * m.RotationSpeed))
}

// Uniforms assembles the uniform block for the current state.
func (m *Mesh) Uniforms() MeshUniforms {
	world := m.World()
	u := MeshUniforms{
		WorldViewProj: m.projection.Mul4(m.view).Mul4(world),
		World:         world,
		CameraPos:     [3]float32{m.cameraPos.X, m.cameraPos.Y, m.cameraPos.Z},
		Time:          m.time,
	}
	if m.useNormalMap {
		u.UseNormalMap = 1
	}
	return u
}

// GetVBufferSize returns the size required for keeping the vertices in device memory.
func (m *Mesh) GetVBufferSize() int {
	return int(unsafe.Sizeof(Vertex{})) * len(m.Vertices)
}

// GetVBufferBytes returns the raw bytes representing all vertices.
// Mainly used to execute vk.Memcopy(..., src []byte) to move memory from CPU to GPU
func (m *Mesh) GetVBufferBytes() []byte {
	return com.RawBytes(m.Vertices)
}

func (m *Mesh) GetIdxBufferSize() int {
	return int(unsafe.Sizeof(uint32(0))) * len(m.Indices)
}

func (m *Mesh) GetIdxBufferBytes() []byte {
	return com.RawBytes(m.Indices)
}

func (m *Mesh) IndexCount() uint32 {
	return uint32(len(m.Indices))
}
