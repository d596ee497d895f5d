package renderer

import (
	"log"
	"os"

	vk "github.com/goki/vulkan"
	"github.com/pkg/errors"
	com "vehicle_viewer/common"
)

const (
	MESH_VERT_SHADER = "mesh.vert.spv"
	MESH_FRAG_SHADER = "mesh.frag.spv"
	FIRE_FRAG_SHADER = "fire.frag.spv"
)

// LoadVert reads a '.spv' file with the expectation of it containing a vertex shader for later use in a
// render pipeline. The shader module and the vk.PipelineShaderStageCreateInfo binding it to a pipeline are returned.
func LoadVert(d vk.Device, path string) (vk.ShaderModule, vk.PipelineShaderStageCreateInfo) {
	vertMod := mustReadShaderModule(d, path)
	log.Printf("Created vertex shader module from %s", path)
	return vertMod, shaderStageInfo(vk.ShaderStageVertexBit, vertMod)
}

// LoadFrag is LoadVert for fragment shaders.
func LoadFrag(d vk.Device, path string) (vk.ShaderModule, vk.PipelineShaderStageCreateInfo) {
	fragMod := mustReadShaderModule(d, path)
	log.Printf("Created fragment shader module from %s", path)
	return fragMod, shaderStageInfo(vk.ShaderStageFragmentBit, fragMod)
}

// DeleteShaderMod discards a shader module. As vk.ShaderModule is only meant as a container to move the shader code
// onto device memory, it can be destroyed right after the pipelines using it have been created.
func DeleteShaderMod(d vk.Device, mod vk.ShaderModule) {
	vk.DestroyShaderModule(d, mod, nil)
}

func shaderStageInfo(stage vk.ShaderStageFlagBits, mod vk.ShaderModule) vk.PipelineShaderStageCreateInfo {
	return vk.PipelineShaderStageCreateInfo{
		SType:               vk.StructureTypePipelineShaderStageCreateInfo,
		PNext:               nil,
		Flags:               0,
		Stage:               stage,
		Module:              mod,
		PName:               "main\x00", // entrypoint -> function name in the shader
		PSpecializationInfo: nil,
	}
}

func mustReadShaderModule(d vk.Device, path string) vk.ShaderModule {
	code, err := readShaderCode(path)
	if err != nil {
		log.Panicf("%v", err)
	}
	module, err := com.VKCreateShaderModule(d, code)
	if err != nil {
		log.Panicf("Failed to create shader module '%s': %v", path, err)
	}
	return module
}

// readShaderCode loads SPIR-V byte code. The length has to be a multiple of the 4 Byte word size.
func readShaderCode(path string) ([]byte, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read shader file '%s'", path)
	}
	if len(code) == 0 || len(code)%4 != 0 {
		return nil, errors.Errorf("shader file '%s' is not SPIR-V, size %d Byte is not a multiple of 4", path, len(code))
	}
	log.Printf("Read shader file (%s) of size: %d Byte", path, len(code))
	return code, nil
}
