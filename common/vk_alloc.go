package common

import (
	vk "github.com/goki/vulkan"
	"log"
	"unsafe"
)

// This Code section contains allocation helper functions. It aims to simplify the allocation of buffers and
// images on the selected device.

type Buffer struct {
	Handle    vk.Buffer
	DeviceMem vk.DeviceMemory
	Size      vk.DeviceSize
	Usage     vk.BufferUsageFlags
	props     vk.MemoryPropertyFlags

	// mapped is set while the buffer memory is persistently mapped
	mapped unsafe.Pointer
}

func CreateBuffer(dc *Device, size vk.DeviceSize, usage vk.BufferUsageFlags, props vk.MemoryPropertyFlags) *Buffer {
	bufferInfo := vk.BufferCreateInfo{
		SType:                 vk.StructureTypeBufferCreateInfo,
		PNext:                 nil,
		Flags:                 0,
		Size:                  size,
		Usage:                 usage,
		SharingMode:           vk.SharingModeExclusive,
		QueueFamilyIndexCount: 0,
		PQueueFamilyIndices:   nil,
	}

	buf, err := VkCreateBuffer(dc.D, &bufferInfo, nil)
	if err != nil {
		log.Panicf("Failed to create buffer of %d Byte: %s", size, err)
	}

	bufRequirements := ReadBufferMemoryRequirements(dc.D, buf)

	allocInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		PNext:           nil,
		AllocationSize:  bufRequirements.Size,
		MemoryTypeIndex: findMemoryType(dc, bufRequirements.MemoryTypeBits, props),
	}
	deviceMem, err := VkAllocateMemory(dc.D, &allocInfo, nil)
	if err != nil {
		log.Panicf("Failed to allocate buffer memory: %s", err)
	}

	// Associate allocated memory with buffer Handle
	err = VkBindBufferMemory(dc.D, buf, deviceMem, 0)
	if err != nil {
		log.Panicf("Failed to bind device memory to buffer Handle: %s", err)
	}

	return &Buffer{
		Handle:    buf,
		DeviceMem: deviceMem,
		Size:      size,
		Usage:     usage,
		props:     props,
	}
}

func isHostCoherent(props vk.MemoryPropertyFlags) bool {
	want := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)
	return props&want == want
}

// CopyToDeviceBuffer is a convenience method to simplify the process of mapping device memory to CPU memory,
// copy bytes over to the GPU and unmapping the memory again. This requires the buffer to be
// vk.MemoryPropertyHostVisibleBit and vk.MemoryPropertyHostCoherentBit and the payload to fill it completely.
func CopyToDeviceBuffer(dc *Device, deviceBuf *Buffer, payload []byte) {
	if !isHostCoherent(deviceBuf.props) {
		log.Panicf("Cant copy to device buffer as buffer is not host visible and coherent")
	}
	if deviceBuf.Size != vk.DeviceSize(uint64(len(payload))) {
		log.Panicf("Cant copy to device buffer. Buffer (%d Byte) and payload (%d Byte) not of equal Size.", deviceBuf.Size, len(payload))
	}
	pData, err := VkMapMemory(dc.D, deviceBuf.DeviceMem, 0, deviceBuf.Size, 0)
	if err != nil {
		log.Panicf("Failed to map device memory: %s", err)
	}
	vk.Memcopy(pData, payload)
	vk.UnmapMemory(dc.D, deviceBuf.DeviceMem)
}

// MapPersistent keeps the buffer's memory mapped until DestroyBuffer. Used for uniform buffers that are rewritten
// every frame.
func (b *Buffer) MapPersistent(dc *Device) {
	if b.mapped != nil {
		return
	}
	if !isHostCoherent(b.props) {
		log.Panicf("Cant persistently map a buffer that is not host visible and coherent")
	}
	pData, err := VkMapMemory(dc.D, b.DeviceMem, 0, b.Size, 0)
	if err != nil {
		log.Panicf("Failed to map device memory: %s", err)
	}
	b.mapped = pData
}

// Write copies payload to the start of a persistently mapped buffer.
func (b *Buffer) Write(payload []byte) {
	if b.mapped == nil {
		log.Panicf("Buffer is not mapped")
	}
	if vk.DeviceSize(uint64(len(payload))) > b.Size {
		log.Panicf("Payload of %d Byte does not fit into buffer of %d Byte", len(payload), b.Size)
	}
	vk.Memcopy(b.mapped, payload)
}

func DestroyBuffer(dc *Device, buffer *Buffer) {
	if buffer.mapped != nil {
		vk.UnmapMemory(dc.D, buffer.DeviceMem)
		buffer.mapped = nil
	}
	vk.DestroyBuffer(dc.D, buffer.Handle, nil)
	vk.FreeMemory(dc.D, buffer.DeviceMem, nil)
}

// CreateDeviceLocalBuffer uploads payload through a temporary staging buffer into device local memory.
func CreateDeviceLocalBuffer(dc *Device, cmdPool vk.CommandPool, payload []byte, usage vk.BufferUsageFlags) *Buffer {
	size := vk.DeviceSize(uint64(len(payload)))
	staging := CreateBuffer(dc, size,
		vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit),
	)
	CopyToDeviceBuffer(dc, staging, payload)

	buf := CreateBuffer(dc, size,
		usage|vk.BufferUsageFlags(vk.BufferUsageTransferDstBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit),
	)
	cmd := VKBeginSingleTimeCommands(dc, cmdPool)
	vk.CmdCopyBuffer(cmd, staging.Handle, buf.Handle, 1, []vk.BufferCopy{{SrcOffset: 0, DstOffset: 0, Size: size}})
	VKEndSingleTimeCommands(dc, cmdPool, cmd)

	DestroyBuffer(dc, staging)
	return buf
}

// Image bundles an image with its memory and a view onto it.
type Image struct {
	Handle    vk.Image
	DeviceMem vk.DeviceMemory
	View      vk.ImageView
	Format    vk.Format
	Width     uint32
	Height    uint32
}

func CreateImage(dc *Device, w uint32, h uint32, format vk.Format, tiling vk.ImageTiling, usage vk.ImageUsageFlags, props vk.MemoryPropertyFlags) (vk.Image, vk.DeviceMemory) {
	imageInfo := &vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		PNext:     nil,
		Flags:     0,
		ImageType: vk.ImageType2d,
		Format:    format,
		Extent: vk.Extent3D{
			Width:  w,
			Height: h,
			Depth:  1,
		},
		MipLevels:             1,
		ArrayLayers:           1,
		Samples:               vk.SampleCount1Bit,
		Tiling:                tiling,
		Usage:                 usage,
		SharingMode:           vk.SharingModeExclusive,
		QueueFamilyIndexCount: 0,
		PQueueFamilyIndices:   nil,
		InitialLayout:         vk.ImageLayoutUndefined,
	}
	img, err := VkCreateImage(dc.D, imageInfo, nil)
	if err != nil {
		log.Panicf("Failed to create %dx%d image: %s", w, h, err)
	}

	memRequirements := ReadImageMemoryRequirements(dc.D, img)
	allocInfo := &vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		PNext:           nil,
		AllocationSize:  memRequirements.Size,
		MemoryTypeIndex: findMemoryType(dc, memRequirements.MemoryTypeBits, props),
	}
	imgMemory, err := VkAllocateMemory(dc.D, allocInfo, nil)
	if err != nil {
		log.Panicf("Failed to allocate image device memory: %s", err)
	}
	if err := vk.Error(vk.BindImageMemory(dc.D, img, imgMemory, 0)); err != nil {
		log.Panicf("Failed to bind image memory: %s", err)
	}
	return img, imgMemory
}

// CreateImageWithView creates a device local image and a full size view of it.
func CreateImageWithView(dc *Device, w, h uint32, format vk.Format, usage vk.ImageUsageFlags, aspect vk.ImageAspectFlags) *Image {
	handle, mem := CreateImage(dc, w, h, format, vk.ImageTilingOptimal, usage, vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))
	return &Image{
		Handle:    handle,
		DeviceMem: mem,
		View:      VKCreate2DFullSizeImageView(dc, handle, format, aspect),
		Format:    format,
		Width:     w,
		Height:    h,
	}
}

func DestroyImage(dc *Device, img *Image) {
	vk.DestroyImageView(dc.D, img.View, nil)
	vk.DestroyImage(dc.D, img.Handle, nil)
	vk.FreeMemory(dc.D, img.DeviceMem, nil)
}

func findMemoryType(dc *Device, typeFilter uint32, propFlags vk.MemoryPropertyFlags) uint32 {
	idx, ok := selectMemoryType(dc.PdMemoryProps, typeFilter, propFlags)
	if !ok {
		log.Panicf("Failed to find suitable memory type")
	}
	return idx
}

func selectMemoryType(memProps vk.PhysicalDeviceMemoryProperties, typeFilter uint32, propFlags vk.MemoryPropertyFlags) (uint32, bool) {
	for i := uint32(0); i < memProps.MemoryTypeCount; i++ {
		ofType := (typeFilter & (1 << i)) > 0
		hasProperties := memProps.MemoryTypes[i].PropertyFlags&propFlags == propFlags
		if ofType && hasProperties {
			return i, true
		}
	}
	return 0, false
}
