package common

import (
	vk "github.com/goki/vulkan"
	"log"
)

// undefinedExtent is reported by surfaces that let the swap chain decide its size.
const undefinedExtent = 0xFFFFFFFF

type SwapChain struct {
	supDetails SwapChainDetails
	Handle     vk.Swapchain

	Format      vk.SurfaceFormat
	PresentMode vk.PresentMode
	Extend      vk.Extent2D

	Images   []vk.Image
	ImgViews []vk.ImageView
	Aspect   float32

	FrameBuffers []vk.Framebuffer
}

// NewSwapChain creates the swap chain, its images and image views. Frame buffers need a render pass and are created
// separately with CreateFrameBuffers.
func NewSwapChain(dc *Device, w *Window, vsync bool) *SwapChain {
	sc := &SwapChain{}
	sc.chooseConfiguration(dc, w, vsync)
	sc.createSwapChainHandle(dc, w)
	sc.readImages(dc)
	sc.createImageViews(dc)

	// Precalculate the images' aspect ratio for later
	sc.Aspect = float32(sc.Extend.Width) / float32(sc.Extend.Height)

	return sc
}

// IsZeroSized reports whether the surface currently has no area, which is the case for minimized windows.
func IsZeroSized(dc *Device, w *Window) bool {
	details := ReadSwapChainSupportDetails(dc.PD, *w.Surf)
	width, height := w.Size()
	ext := chooseSwapExtent(details.capabilities, width, height)
	return ext.Width == 0 || ext.Height == 0
}

func (sc *SwapChain) CreateFrameBuffers(dc *Device, renderPass vk.RenderPass, depthImageView *vk.ImageView) {
	sc.FrameBuffers = make([]vk.Framebuffer, len(sc.ImgViews))
	for i := range sc.ImgViews {
		attachments := []vk.ImageView{sc.ImgViews[i]}
		if depthImageView != nil {
			attachments = append(attachments, *depthImageView)
		}
		framebufferInfo := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			PNext:           nil,
			Flags:           0,
			RenderPass:      renderPass,
			AttachmentCount: uint32(len(attachments)),
			PAttachments:    attachments,
			Width:           sc.Extend.Width,
			Height:          sc.Extend.Height,
			Layers:          1,
		}
		fb, err := VkCreateFrameBuffer(dc.D, &framebufferInfo, nil)
		if err != nil {
			log.Panicf("Failed to create frame buffer [%d]: %s", i, err)
		}
		sc.FrameBuffers[i] = fb
	}
	log.Printf("Successfully created %d frame buffers", len(sc.FrameBuffers))
}

func (sc *SwapChain) chooseConfiguration(dc *Device, w *Window, vsync bool) {
	sc.supDetails = ReadSwapChainSupportDetails(dc.PD, *w.Surf)
	sc.Format = sc.supDetails.selectSwapSurfaceFormat(vk.FormatB8g8r8a8Unorm, vk.ColorSpaceSrgbNonlinear)
	desiredMode := vk.PresentModeMailbox
	if vsync {
		desiredMode = vk.PresentModeFifo
	}
	sc.PresentMode = sc.supDetails.selectSwapPresentMode(desiredMode)
	width, height := w.Size()
	sc.Extend = chooseSwapExtent(sc.supDetails.capabilities, width, height)
	log.Printf("Swap chain configuration: format %d, present mode %s, extent %dx%d",
		sc.Format.Format, toStringPresentMode(sc.PresentMode), sc.Extend.Width, sc.Extend.Height)
}

func (sc *SwapChain) createSwapChainHandle(dc *Device, w *Window) {
	imgCount := chooseImageCount(sc.supDetails.capabilities)

	// Depending on whether our queue families are the same for graphics and presentation, we need to choose different
	// swap chain configurations: https://vulkan-tutorial.com/Drawing_a_triangle/Presentation/Swap_chain
	var sharingMode vk.SharingMode
	qFamIndices := dc.QFamilies.Unique()
	if len(qFamIndices) > 1 {
		sharingMode = vk.SharingModeConcurrent
	} else {
		sharingMode = vk.SharingModeExclusive
		qFamIndices = nil
	}

	createInfo := &vk.SwapchainCreateInfo{
		SType:                 vk.StructureTypeSwapchainCreateInfo,
		PNext:                 nil,
		Flags:                 0,
		Surface:               *w.Surf,
		MinImageCount:         imgCount,
		ImageFormat:           sc.Format.Format,
		ImageColorSpace:       sc.Format.ColorSpace,
		ImageExtent:           sc.Extend,
		ImageArrayLayers:      1,
		ImageUsage:            vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode:      sharingMode,
		QueueFamilyIndexCount: uint32(len(qFamIndices)),
		PQueueFamilyIndices:   qFamIndices,
		PreTransform:          sc.supDetails.capabilities.CurrentTransform,
		CompositeAlpha:        vk.CompositeAlphaOpaqueBit,
		PresentMode:           sc.PresentMode,
		Clipped:               vk.True,
		OldSwapchain:          nil,
	}

	var err error
	sc.Handle, err = VkCreateSwapChain(dc.D, createInfo, nil)
	if err != nil {
		log.Panicf("Failed create swapchain due to: %s", err)
	}
	log.Printf("Successfully created swap chain with %d images requested", imgCount)
}

func (sc *SwapChain) readImages(dc *Device) {
	sc.Images = ReadSwapChainImages(dc.D, sc.Handle)
}

func (sc *SwapChain) createImageViews(dc *Device) {
	sc.ImgViews = make([]vk.ImageView, len(sc.Images))
	for i := range sc.Images {
		sc.ImgViews[i] = VKCreate2DFullSizeImageView(dc, sc.Images[i], sc.Format.Format, vk.ImageAspectFlags(vk.ImageAspectColorBit))
	}
	log.Printf("Successfully created %d image views", len(sc.ImgViews))
}

func (sc *SwapChain) Destroy(dc *Device) {
	for i := range sc.FrameBuffers {
		vk.DestroyFramebuffer(dc.D, sc.FrameBuffers[i], nil)
	}
	for i := range sc.ImgViews {
		vk.DestroyImageView(dc.D, sc.ImgViews[i], nil)
	}
	vk.DestroySwapchain(dc.D, sc.Handle, nil)
}

type SwapChainDetails struct {
	capabilities vk.SurfaceCapabilities
	formats      []vk.SurfaceFormat
	presentModes []vk.PresentMode
}

func (s *SwapChainDetails) selectSwapSurfaceFormat(desiredFormat vk.Format, desiredColorSpace vk.ColorSpace) vk.SurfaceFormat {
	for _, af := range s.formats {
		if af.Format == desiredFormat && af.ColorSpace == desiredColorSpace {
			return af
		}
	}
	fallbackFormat := s.formats[0]
	log.Printf("Did not find prefered SurfaceFormat, selecting first one available. (%v)", fallbackFormat)
	return fallbackFormat
}

func (s *SwapChainDetails) selectSwapPresentMode(desiredMode vk.PresentMode) vk.PresentMode {
	for _, pm := range s.presentModes {
		if pm == desiredMode {
			return pm
		}
	}
	// FIFO is the only mode every implementation has to support
	log.Printf("Did not find prefered PresentMode %s, selecting FIFO", toStringPresentMode(desiredMode))
	return vk.PresentModeFifo
}

// chooseSwapExtent takes the surface's current extent when it has one. Otherwise the window's drawable size is
// clamped into the supported range.
func chooseSwapExtent(caps vk.SurfaceCapabilities, width, height uint32) vk.Extent2D {
	if caps.CurrentExtent.Width != undefinedExtent {
		return caps.CurrentExtent
	}
	return vk.Extent2D{
		Width:  clampUint32(width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clampUint32(height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

// chooseImageCount asks for one image more than the minimum to avoid waiting on the driver. A max count of zero
// means there is no upper limit.
func chooseImageCount(caps vk.SurfaceCapabilities) uint32 {
	imgCount := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && imgCount > caps.MaxImageCount {
		imgCount = caps.MaxImageCount
	}
	return imgCount
}

func clampUint32(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func checkSwapChainAdequacy(pd vk.PhysicalDevice, surface vk.Surface) bool {
	scDetails := ReadSwapChainSupportDetails(pd, surface)
	log.Printf("Read swap chain details: %d formats, %d present modes", len(scDetails.formats), len(scDetails.presentModes))
	return len(scDetails.formats) > 0 && len(scDetails.presentModes) > 0
}
