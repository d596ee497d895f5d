package common

import (
	vk "github.com/goki/vulkan"
)

// Utility functions that reduce visual clutter by abstracting some of the common default values into very obvious
// functions that should cover their respective use case most of the time. This is done to cut down on labor writing
// things out that are unlikely to change or are not relevant now. The main way typing is reduced by moving or
// defaulting parameters from 'createInfo' structs.

func VKAllocateCommandBuffersPrimary(device vk.Device, cmdPool vk.CommandPool, count uint32) ([]vk.CommandBuffer, error) {
	cbAllocateInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		PNext:              nil,
		CommandPool:        cmdPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: count,
	}
	return VkAllocateCommandBuffers(device, &cbAllocateInfo)
}

// VKAllocateDescriptorSets allocates one set per layout from pool.
func VKAllocateDescriptorSets(device vk.Device, pool vk.DescriptorPool, layouts []vk.DescriptorSetLayout) ([]vk.DescriptorSet, error) {
	allocInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		PNext:              nil,
		DescriptorPool:     pool,
		DescriptorSetCount: uint32(len(layouts)),
		PSetLayouts:        layouts,
	}
	return VkAllocateDescriptorSets(device, &allocInfo)
}

// VKCreateShaderModule wraps SPIR-V byte code into a shader module.
func VKCreateShaderModule(device vk.Device, code []byte) (vk.ShaderModule, error) {
	createInfo := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		PNext:    nil,
		Flags:    0,
		CodeSize: uint64(len(code)),
		PCode:    AsUint32Arr(code),
	}
	return VkCreateShaderModule(device, &createInfo, nil)
}

// VKCreateSampler creates a clamp-to-edge sampler with the given filter. Anisotropy is enabled when maxAnisotropy
// is above 1.
func VKCreateSampler(device vk.Device, filter vk.Filter, maxAnisotropy float32) (vk.Sampler, error) {
	anisotropy := vk.Bool32(vk.False)
	if maxAnisotropy > 1 {
		anisotropy = vk.True
	} else {
		maxAnisotropy = 1
	}
	mipmapMode := vk.SamplerMipmapModeLinear
	if filter == vk.FilterNearest {
		mipmapMode = vk.SamplerMipmapModeNearest
	}
	createInfo := vk.SamplerCreateInfo{
		SType:                   vk.StructureTypeSamplerCreateInfo,
		PNext:                   nil,
		Flags:                   0,
		MagFilter:               filter,
		MinFilter:               filter,
		MipmapMode:              mipmapMode,
		AddressModeU:            vk.SamplerAddressModeClampToEdge,
		AddressModeV:            vk.SamplerAddressModeClampToEdge,
		AddressModeW:            vk.SamplerAddressModeClampToEdge,
		MipLodBias:              0,
		AnisotropyEnable:        anisotropy,
		MaxAnisotropy:           maxAnisotropy,
		CompareEnable:           vk.False,
		CompareOp:               vk.CompareOpAlways,
		MinLod:                  0,
		MaxLod:                  0,
		BorderColor:             vk.BorderColorIntOpaqueBlack,
		UnnormalizedCoordinates: vk.False,
	}
	return VkCreateSampler(device, &createInfo, nil)
}
