package common

import (
	vk "github.com/goki/vulkan"
	"log"
)

// Utility functions providing slightly altered versions of the raw go bindings and wrapped functions. These altered
// versions of common functions should only hide very obvious default values that will not need to change most of the
// time. Thus representing a tiny step-up in abstraction to allow for a simpler usage of common vulkan calls. Each
// simplification function should specify the simplification it does. Names are prefixed with VKS which stands for
// (V)ul(K)an (S)implified.

// VKSCreateCommandPool implicitly instantiates the CreateInfo for the command pool based in the provided arguments. This
// is easily possible as the CreateInfo does only contain 2 interesting value sin this case.
func VKSCreateCommandPool(device vk.Device, flags vk.CommandPoolCreateFlags, QueueFamilyIndex uint32) (vk.CommandPool, error) {
	poolInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		PNext:            nil,
		Flags:            flags,
		QueueFamilyIndex: QueueFamilyIndex,
	}
	return VkCreateCommandPool(device, &poolInfo, nil)
}

// VKSCreateSemaphore creates a binary semaphore without any flags.
func VKSCreateSemaphore(device vk.Device) (vk.Semaphore, error) {
	info := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}
	return VkCreateSemaphore(device, &info, nil)
}

// VKSCreateFence creates a fence, optionally already signaled so the first wait on it returns immediately.
func VKSCreateFence(device vk.Device, signaled bool) (vk.Fence, error) {
	info := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
	}
	if signaled {
		info.Flags = vk.FenceCreateFlags(vk.FenceCreateSignaledBit)
	}
	return VkCreateFence(device, &info, nil)
}

// VKCreate2DFullSizeImageView creates a view onto mip level 0 and array layer 0 of a 2D image with identity swizzle.
func VKCreate2DFullSizeImageView(dc *Device, image vk.Image, format vk.Format, aspectFlags vk.ImageAspectFlags) vk.ImageView {
	createInfo := &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		PNext:    nil,
		Flags:    0,
		Image:    image,
		ViewType: vk.ImageViewType2d,
		Format:   format,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleIdentity,
			G: vk.ComponentSwizzleIdentity,
			B: vk.ComponentSwizzleIdentity,
			A: vk.ComponentSwizzleIdentity,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     aspectFlags,
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	}
	imgView, err := VkCreateImageView(dc.D, createInfo, nil)
	if err != nil {
		log.Panicf("Failed create image view due to: %s", err)
	}
	return imgView
}

// VKBeginSingleTimeCommands allocates a primary command buffer from cmdPool and starts recording it for a single
// submission.
func VKBeginSingleTimeCommands(dc *Device, cmdPool vk.CommandPool) vk.CommandBuffer {
	buffers, err := VKAllocateCommandBuffersPrimary(dc.D, cmdPool, 1)
	if err != nil {
		log.Panicf("Failed to allocate single time command buffer: %s", err)
	}
	beginInfo := &vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	if err := vk.Error(vk.BeginCommandBuffer(buffers[0], beginInfo)); err != nil {
		log.Panicf("Failed to begin single time command buffer: %s", err)
	}
	return buffers[0]
}

// VKEndSingleTimeCommands submits cmd to the graphics queue, waits for it to finish and frees it.
func VKEndSingleTimeCommands(dc *Device, cmdPool vk.CommandPool, cmd vk.CommandBuffer) {
	if err := vk.Error(vk.EndCommandBuffer(cmd)); err != nil {
		log.Panicf("Failed to end single time command buffer: %s", err)
	}
	submitInfo := []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{cmd},
	}}
	if err := vk.Error(vk.QueueSubmit(dc.GraphicsQ, 1, submitInfo, nil)); err != nil {
		log.Panicf("Failed to submit single time command buffer: %s", err)
	}
	if err := vk.Error(vk.QueueWaitIdle(dc.GraphicsQ)); err != nil {
		log.Panicf("Failed to wait for single time command buffer: %s", err)
	}
	vk.FreeCommandBuffers(dc.D, cmdPool, 1, []vk.CommandBuffer{cmd})
}
