package model

import (
	"github.com/go-gl/mathgl/mgl32"
	vk "github.com/goki/vulkan"
	com "vehicle_viewer/common"
)

// MeshUniforms mirrors the std140 uniform block shared by the mesh shaders:
//
//	layout(binding = 0) uniform MeshUniforms {
//	    mat4  worldViewProj;
//	    mat4  world;
//	    vec3  cameraPos;
//	    float time;
//	    uint  useNormalMap;
//	};
//
// The trailing padding rounds the block up to a multiple of 16 Byte.
type MeshUniforms struct {
	WorldViewProj mgl32.Mat4
	World         mgl32.Mat4
	CameraPos     [3]float32
	Time          float32
	UseNormalMap  uint32
	_             [3]uint32
}

// SizeOfMeshUniforms returns the size of the uniform block on the device.
func SizeOfMeshUniforms() vk.DeviceSize {
	return vk.DeviceSize(160)
}

func (u *MeshUniforms) Bytes() []byte {
	return com.RawBytes(u)
}
