package renderer

import (
	"log"

	vk "github.com/goki/vulkan"
	com "vehicle_viewer/common"
	"vehicle_viewer/model"
)

// DescriptorProvisioner owns a descriptor pool sized for count sets of the technique layout and the sets allocated
// from it. A mesh holds one provisioner with a set per frame in flight.
type DescriptorProvisioner struct {
	device vk.Device

	descriptorPool vk.DescriptorPool
	descriptorSets []vk.DescriptorSet
}

func NewDescriptorProvisioner(device vk.Device, layout vk.DescriptorSetLayout, count int) *DescriptorProvisioner {
	dp := &DescriptorProvisioner{device: device}
	dp.createDescriptorPool(count)
	layouts := make([]vk.DescriptorSetLayout, count)
	for i := range layouts {
		layouts[i] = layout
	}
	dp.descriptorSets = dp.allocDescriptorSets(layouts)
	return dp
}

// poolSizes returns what count sets of the technique layout need: one uniform block and a sampler per texture slot.
func poolSizes(count int) []vk.DescriptorPoolSize {
	return []vk.DescriptorPoolSize{
		{
			Type:            vk.DescriptorTypeUniformBuffer,
			DescriptorCount: uint32(count),
		},
		{
			Type:            vk.DescriptorTypeCombinedImageSampler,
			DescriptorCount: uint32(count * TEXTURE_SLOTS),
		},
	}
}

func (dp *DescriptorProvisioner) createDescriptorPool(count int) {
	sizes := poolSizes(count)
	poolInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		PNext:         nil,
		Flags:         0,
		MaxSets:       uint32(count),
		PoolSizeCount: uint32(len(sizes)),
		PPoolSizes:    sizes,
	}
	pool, err := com.VkCreateDescriptorPool(dp.device, &poolInfo, nil)
	if err != nil {
		log.Panicf("Failed to create descriptor pool: %s", err)
	}
	dp.descriptorPool = pool
}

// allocDescriptorSets allocates a list of descriptor sets of given layouts from the pool
func (dp *DescriptorProvisioner) allocDescriptorSets(layouts []vk.DescriptorSetLayout) []vk.DescriptorSet {
	sets, err := com.VKAllocateDescriptorSets(dp.device, dp.descriptorPool, layouts)
	if err != nil {
		log.Panicf("Failed to allocate descriptor sets: %s", err)
	}
	return sets
}

func (dp *DescriptorProvisioner) Set(i int) vk.DescriptorSet {
	return dp.descriptorSets[i]
}

// Write points set i at the uniform buffer and the four material maps. All maps are read through sampler.
func (dp *DescriptorProvisioner) Write(i int, ubo *com.Buffer, sampler vk.Sampler, views [TEXTURE_SLOTS]vk.ImageView) {
	bufferInfo := vk.DescriptorBufferInfo{
		Buffer: ubo.Handle,
		Offset: 0,
		Range:  model.SizeOfMeshUniforms(),
	}
	writes := []vk.WriteDescriptorSet{
		{
			SType:           vk.StructureTypeWriteDescriptorSet,
			PNext:           nil,
			DstSet:          dp.descriptorSets[i],
			DstBinding:      BINDING_UNIFORMS,
			DstArrayElement: 0,
			DescriptorCount: 1,
			DescriptorType:  vk.DescriptorTypeUniformBuffer,
			PBufferInfo:     []vk.DescriptorBufferInfo{bufferInfo},
		},
	}
	for slot, view := range views {
		imageInfo := vk.DescriptorImageInfo{
			Sampler:     sampler,
			ImageView:   view,
			ImageLayout: vk.ImageLayoutShaderReadOnlyOptimal,
		}
		writes = append(writes, vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			PNext:           nil,
			DstSet:          dp.descriptorSets[i],
			DstBinding:      BINDING_DIFFUSE + uint32(slot), // <-- corresponds to 'layout(binding = N) uniform sampler2D ...;'
			DstArrayElement: 0,
			DescriptorCount: 1,
			DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
			PImageInfo:      []vk.DescriptorImageInfo{imageInfo},
		})
	}
	vk.UpdateDescriptorSets(dp.device, uint32(len(writes)), writes, 0, nil)
}

// Destroy frees the pool and with it every set allocated from it.
func (dp *DescriptorProvisioner) Destroy() {
	vk.DestroyDescriptorPool(dp.device, dp.descriptorPool, nil)
	dp.descriptorSets = nil
}
