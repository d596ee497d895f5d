package renderer

import (
	"log"

	vk "github.com/goki/vulkan"
	com "vehicle_viewer/common"
)

// Auxiliary functions tied to a Core. They differ from the VKS functions in common/vk_simplifications.go by using the
// Core's device and command pool instead of being a general abstraction of the API.

func (c *Core) beginSingleTimeCommands() vk.CommandBuffer {
	return com.VKBeginSingleTimeCommands(c.device, c.commandPool)
}

func (c *Core) endSingleTimeCommands(cmdBuf vk.CommandBuffer) {
	com.VKEndSingleTimeCommands(c.device, c.commandPool, cmdBuf)
}

// transitionImageLayout moves img between the layouts used for uploads, sampling and depth testing.
func (c *Core) transitionImageLayout(img vk.Image, format vk.Format, old vk.ImageLayout, new vk.ImageLayout) {
	barrier, srcStage, dstStage, ok := layoutBarrier(img, format, old, new)
	if !ok {
		log.Panicf("Unsupported image layout transition %d -> %d", old, new)
	}
	cmdBuf := c.beginSingleTimeCommands()
	vk.CmdPipelineBarrier(
		cmdBuf,
		srcStage, dstStage,
		0,
		0, nil,
		0, nil,
		1, []vk.ImageMemoryBarrier{barrier},
	)
	c.endSingleTimeCommands(cmdBuf)
}

func layoutBarrier(img vk.Image, format vk.Format, old vk.ImageLayout, new vk.ImageLayout) (vk.ImageMemoryBarrier, vk.PipelineStageFlags, vk.PipelineStageFlags, bool) {
	aspectFlags := vk.ImageAspectFlags(vk.ImageAspectColorBit)
	if new == vk.ImageLayoutDepthStencilAttachmentOptimal {
		aspectFlags = vk.ImageAspectFlags(vk.ImageAspectDepthBit)
		if hasStencilComponent(format) {
			aspectFlags |= vk.ImageAspectFlags(vk.ImageAspectStencilBit)
		}
	}

	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		PNext:               nil,
		SrcAccessMask:       0, // set below
		DstAccessMask:       0, // set below
		OldLayout:           old,
		NewLayout:           new,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               img,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     aspectFlags,
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	}

	var srcStage, dstStage vk.PipelineStageFlags
	switch {
	case old == vk.ImageLayoutUndefined && new == vk.ImageLayoutTransferDstOptimal:
		barrier.DstAccessMask = vk.AccessFlags(vk.AccessTransferWriteBit)
		srcStage = vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit)
		dstStage = vk.PipelineStageFlags(vk.PipelineStageTransferBit)
	case old == vk.ImageLayoutTransferDstOptimal && new == vk.ImageLayoutShaderReadOnlyOptimal:
		barrier.SrcAccessMask = vk.AccessFlags(vk.AccessTransferWriteBit)
		barrier.DstAccessMask = vk.AccessFlags(vk.AccessShaderReadBit)
		srcStage = vk.PipelineStageFlags(vk.PipelineStageTransferBit)
		dstStage = vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit)
	case old == vk.ImageLayoutUndefined && new == vk.ImageLayoutDepthStencilAttachmentOptimal:
		barrier.DstAccessMask = vk.AccessFlags(vk.AccessDepthStencilAttachmentReadBit | vk.AccessDepthStencilAttachmentWriteBit)
		srcStage = vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit)
		dstStage = vk.PipelineStageFlags(vk.PipelineStageEarlyFragmentTestsBit)
	default:
		return barrier, 0, 0, false
	}
	return barrier, srcStage, dstStage, true
}

func (c *Core) copyBufferToImage(buffer vk.Buffer, img vk.Image, w uint32, h uint32) {
	cmdBuf := c.beginSingleTimeCommands()
	region := vk.BufferImageCopy{
		BufferOffset:      0,
		BufferRowLength:   0,
		BufferImageHeight: 0,
		ImageSubresource: vk.ImageSubresourceLayers{
			AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
			MipLevel:       0,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
		ImageOffset: vk.Offset3D{X: 0, Y: 0, Z: 0},
		ImageExtent: vk.Extent3D{
			Width:  w,
			Height: h,
			Depth:  1,
		},
	}
	vk.CmdCopyBufferToImage(cmdBuf, buffer, img, vk.ImageLayoutTransferDstOptimal, 1, []vk.BufferImageCopy{region})
	c.endSingleTimeCommands(cmdBuf)
}

func (c *Core) findDepthFormat() vk.Format {
	return c.findSupportedFormat(
		[]vk.Format{vk.FormatD32Sfloat, vk.FormatD32SfloatS8Uint, vk.FormatD24UnormS8Uint},
		vk.ImageTilingOptimal,
		vk.FormatFeatureFlags(vk.FormatFeatureDepthStencilAttachmentBit),
	)
}

func hasStencilComponent(format vk.Format) bool {
	return format == vk.FormatD32SfloatS8Uint || format == vk.FormatD24UnormS8Uint
}

func (c *Core) findSupportedFormat(candidates []vk.Format, tiling vk.ImageTiling, features vk.FormatFeatureFlags) vk.Format {
	for _, format := range candidates {
		var fProps vk.FormatProperties
		vk.GetPhysicalDeviceFormatProperties(c.device.PD, format, &fProps)
		fProps.Deref()
		if supportsFeatures(fProps, tiling, features) {
			return format
		}
	}
	log.Panicf("No supported format found among %v", candidates)
	return vk.FormatUndefined
}

func supportsFeatures(fProps vk.FormatProperties, tiling vk.ImageTiling, features vk.FormatFeatureFlags) bool {
	switch tiling {
	case vk.ImageTilingLinear:
		return fProps.LinearTilingFeatures&features == features
	case vk.ImageTilingOptimal:
		return fProps.OptimalTilingFeatures&features == features
	}
	return false
}
