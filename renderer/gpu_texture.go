package renderer

import (
	"image"
	"image/color"
	"log"

	vk "github.com/goki/vulkan"
	com "vehicle_viewer/common"
	"vehicle_viewer/model"
)

const TEXTURE_FORMAT = vk.FormatR8g8b8a8Unorm

// GpuTexture is a sampled, device local copy of a model.Texture.
type GpuTexture struct {
	Name string
	img  *com.Image
}

// NewGpuTexture uploads t through a staging buffer and leaves the image ready for sampling.
func NewGpuTexture(c *Core, t *model.Texture) *GpuTexture {
	w, h := uint32(t.Width()), uint32(t.Height())
	pixels := t.Pixels()

	stgBuf := com.CreateBuffer(
		c.device,
		vk.DeviceSize(uint64(len(pixels))),
		vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit),
	)
	defer com.DestroyBuffer(c.device, stgBuf)
	com.CopyToDeviceBuffer(c.device, stgBuf, pixels)

	img := com.CreateImageWithView(
		c.device, w, h,
		TEXTURE_FORMAT,
		vk.ImageUsageFlags(vk.ImageUsageTransferDstBit|vk.ImageUsageSampledBit),
		vk.ImageAspectFlags(vk.ImageAspectColorBit),
	)
	c.transitionImageLayout(img.Handle, TEXTURE_FORMAT, vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal)
	c.copyBufferToImage(stgBuf.Handle, img.Handle, w, h)
	c.transitionImageLayout(img.Handle, TEXTURE_FORMAT, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal)

	log.Printf("Uploaded texture %s (%dx%d, %d Byte)", t.Name, w, h, len(pixels))
	return &GpuTexture{Name: t.Name, img: img}
}

// NewWhiteTexture creates the 1x1 texture bound to material slots nobody has set.
func NewWhiteTexture(c *Core) *GpuTexture {
	return NewGpuTexture(c, model.NewTexture("white", whiteImage()))
}

// NewFlatNormalTexture creates the 1x1 normal map that leaves the interpolated normal untouched.
func NewFlatNormalTexture(c *Core) *GpuTexture {
	return NewGpuTexture(c, model.NewTexture("flatNormal", flatNormalImage()))
}

func whiteImage() *image.RGBA {
	return solidImage(color.RGBA{R: 255, G: 255, B: 255, A: 255})
}

// flatNormalImage encodes the tangent space normal (0,0,1).
func flatNormalImage() *image.RGBA {
	return solidImage(color.RGBA{R: 128, G: 128, B: 255, A: 255})
}

func solidImage(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	return img
}

func (t *GpuTexture) View() vk.ImageView {
	return t.img.View
}

func (t *GpuTexture) Destroy(dc *com.Device) {
	com.DestroyImage(dc, t.img)
}
