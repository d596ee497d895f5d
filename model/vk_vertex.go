package model

import (
	"unsafe"

	vk "github.com/goki/vulkan"
	vm "vehicle_viewer/vector_math"
)

// Vertex is the interleaved vertex layout shared by every mesh. All fields are float32 based, so the struct has no
// padding: Pos @0, Color @12, UV @24, Normal @32, Tangent @44, 56 Byte stride.
type Vertex struct {
	Pos     vm.Vec3
	Color   vm.ColorRGB
	UV      vm.Vec2
	Normal  vm.Vec3
	Tangent vm.Vec3
}

// NewVertex returns a vertex at pos with the default attributes: white, uv (0,1), normal and tangent along +Z.
func NewVertex(pos vm.Vec3) Vertex {
	return Vertex{
		Pos:     pos,
		Color:   vm.White,
		UV:      vm.Vec2{X: 0, Y: 1},
		Normal:  vm.UnitZ,
		Tangent: vm.UnitZ,
	}
}

func GetVertexBindingDescription() vk.VertexInputBindingDescription {
	return vk.VertexInputBindingDescription{
		Binding:   0,
		Stride:    uint32(unsafe.Sizeof(Vertex{})),
		InputRate: vk.VertexInputRateVertex,
	}
}

func GetVertexAttributeDescriptions() []vk.VertexInputAttributeDescription {
	return []vk.VertexInputAttributeDescription{
		{
			Location: 0,
			Binding:  0,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Pos)),
		},
		{
			Location: 1,
			Binding:  0,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Color)),
		},
		{
			Location: 2,
			Binding:  0,
			Format:   vk.FormatR32g32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.UV)),
		},
		{
			Location: 3,
			Binding:  0,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Normal)),
		},
		{
			Location: 4,
			Binding:  0,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Tangent)),
		},
	}
}
