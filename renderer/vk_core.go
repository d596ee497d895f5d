package renderer

import (
	"log"
	"math"

	vk "github.com/goki/vulkan"
	com "vehicle_viewer/common"
)

// CLEAR_COLOR is cornflower blue.
var CLEAR_COLOR = []float32{0.39, 0.59, 0.93, 1}

// Core owns everything needed to get a frame onto the screen: the window, the device, the swap chain with its depth
// buffer and frame buffers, and the per frame command buffers and synchronisation objects. What gets drawn inside a
// frame is up to the caller, see BeginFrame and EndFrame.
type Core struct {
	cfg com.Config

	// OS/Window level
	Win    *com.Window
	device *com.Device

	// Target level
	swapChain      *com.SwapChain
	swapChainStale bool
	depth          *com.Image
	depthFormat    vk.Format

	// Drawing infrastructure level
	renderPass  vk.RenderPass
	commandPool vk.CommandPool

	// Frame level
	commandBuffers     []vk.CommandBuffer
	currentFrameIdx    int
	imageIdx           uint32
	imageAvailableSems []vk.Semaphore
	renderFinishedSems []vk.Semaphore
	inFlightFens       []vk.Fence
}

func NewCore(cfg com.Config) *Core {
	c := &Core{cfg: cfg}
	c.Initialize()
	return c
}

func (c *Core) Initialize() {
	c.Win = com.NewWindow(c.cfg)
	c.device = com.NewDevice(c.Win)
	c.swapChain = com.NewSwapChain(c.device, c.Win, c.cfg.VSync)

	c.depthFormat = c.findDepthFormat()
	c.createRenderPass()
	c.createCommandPool()
	c.createDepthResources()
	c.createFrameBuffers()
	c.createCommandBuffers()
	c.createSyncObjects()
}

func (c *Core) Device() *com.Device {
	return c.device
}

func (c *Core) CommandPool() vk.CommandPool {
	return c.commandPool
}

func (c *Core) RenderPass() vk.RenderPass {
	return c.renderPass
}

// Aspect returns the width to height ratio of the current swap chain images.
func (c *Core) Aspect() float32 {
	return c.swapChain.Aspect
}

func (c *Core) FramesInFlight() int {
	return c.cfg.FramesInFlight
}

func (c *Core) Destroy() {
	// We need to wait for the last asynchronous call to finish before tear down
	c.device.WaitIdle()
	c.destroySwapChainAndDerivatives()

	for i := 0; i < c.cfg.FramesInFlight; i++ {
		vk.DestroySemaphore(c.device.D, c.imageAvailableSems[i], nil)
		vk.DestroySemaphore(c.device.D, c.renderFinishedSems[i], nil)
		vk.DestroyFence(c.device.D, c.inFlightFens[i], nil)
	}
	vk.DestroyCommandPool(c.device.D, c.commandPool, nil)
	vk.DestroyRenderPass(c.device.D, c.renderPass, nil)

	c.device.Destroy()
	c.Win.Destroy()
}

func (c *Core) destroySwapChainAndDerivatives() {
	com.DestroyImage(c.device, c.depth)
	c.swapChain.Destroy(c.device)
}

func (c *Core) createRenderPass() {
	colorAttachment := vk.AttachmentDescription{
		Flags:          0,
		Format:         c.swapChain.Format.Format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}
	colorAttachmentRef := vk.AttachmentReference{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}
	depthAttachment := vk.AttachmentDescription{
		Flags:          0,
		Format:         c.depthFormat,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpDontCare,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutDepthStencilAttachmentOptimal,
	}
	depthAttachmentRef := vk.AttachmentReference{
		Attachment: 1,
		Layout:     vk.ImageLayoutDepthStencilAttachmentOptimal,
	}
	subpass := vk.SubpassDescription{
		Flags:                   0,
		PipelineBindPoint:       vk.PipelineBindPointGraphics,
		ColorAttachmentCount:    1,
		PColorAttachments:       []vk.AttachmentReference{colorAttachmentRef},
		PDepthStencilAttachment: &depthAttachmentRef,
	}
	dependency := vk.SubpassDependency{
		SrcSubpass:      vk.SubpassExternal,
		DstSubpass:      0,
		SrcStageMask:    vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit | vk.PipelineStageEarlyFragmentTestsBit),
		DstStageMask:    vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit | vk.PipelineStageEarlyFragmentTestsBit),
		SrcAccessMask:   0,
		DstAccessMask:   vk.AccessFlags(vk.AccessColorAttachmentWriteBit | vk.AccessDepthStencilAttachmentWriteBit),
		DependencyFlags: 0,
	}
	renderPassInfo := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		PNext:           nil,
		Flags:           0,
		AttachmentCount: 2,
		PAttachments:    []vk.AttachmentDescription{colorAttachment, depthAttachment},
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}
	var err error
	c.renderPass, err = com.VkCreateRenderPass(c.device.D, &renderPassInfo, nil)
	if err != nil {
		log.Panicf("Failed create render pass due to: %s", err)
	}
	log.Println("Successfully created render pass")
}

func (c *Core) createFrameBuffers() {
	c.swapChain.CreateFrameBuffers(c.device, c.renderPass, &c.depth.View)
}

func (c *Core) createCommandPool() {
	commandPool, err := com.VKSCreateCommandPool(
		c.device.D,
		vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
		*c.device.QFamilies.GraphicsFamily,
	)
	if err != nil {
		log.Panicf("Failed to create command pool: %s", err)
	}
	log.Printf("Successfully created command pool")
	c.commandPool = commandPool
}

func (c *Core) createCommandBuffers() {
	buffers, err := com.VKAllocateCommandBuffersPrimary(c.device.D, c.commandPool, uint32(c.cfg.FramesInFlight))
	if err != nil {
		log.Panicf("Failed to allocate command buffers: %s", err)
	}
	log.Printf("Successfully allocated %d command buffers", len(buffers))
	c.commandBuffers = buffers
}

func (c *Core) createSyncObjects() {
	n := c.cfg.FramesInFlight
	c.imageAvailableSems = make([]vk.Semaphore, n)
	c.renderFinishedSems = make([]vk.Semaphore, n)
	c.inFlightFens = make([]vk.Fence, n)
	for i := 0; i < n; i++ {
		var err error
		if c.imageAvailableSems[i], err = com.VKSCreateSemaphore(c.device.D); err != nil {
			log.Panicf("Failed to create sync objects: %s", err)
		}
		if c.renderFinishedSems[i], err = com.VKSCreateSemaphore(c.device.D); err != nil {
			log.Panicf("Failed to create sync objects: %s", err)
		}
		// Fences start signalled so the first wait of every slot returns immediately
		if c.inFlightFens[i], err = com.VKSCreateFence(c.device.D, true); err != nil {
			log.Panicf("Failed to create sync objects: %s", err)
		}
	}
}

func (c *Core) createDepthResources() {
	c.depth = com.CreateImageWithView(
		c.device,
		c.swapChain.Extend.Width,
		c.swapChain.Extend.Height,
		c.depthFormat,
		vk.ImageUsageFlags(vk.ImageUsageDepthStencilAttachmentBit),
		vk.ImageAspectFlags(vk.ImageAspectDepthBit),
	)
	c.transitionImageLayout(c.depth.Handle, c.depthFormat, vk.ImageLayoutUndefined, vk.ImageLayoutDepthStencilAttachmentOptimal)
}

// Drawing and derivative functionality

// BeginFrame waits until the current frame slot is free, acquires the next swap chain image and starts recording
// into the slot's command buffer with the render pass begun and viewport and scissor covering the whole image. ok is
// false when nothing can be drawn this frame, e.g. while the window has no area. In that case EndFrame must not be
// called.
func (c *Core) BeginFrame() (cmd vk.CommandBuffer, slot int, ok bool) {
	if c.swapChainStale && !c.recreateSwapChain() {
		return nil, 0, false
	}
	slot = c.currentFrameIdx

	// Wait for frame to be ready - signalled by the inFlightFens
	vk.WaitForFences(c.device.D, 1, []vk.Fence{c.inFlightFens[slot]}, vk.True, math.MaxUint64)

	result := vk.AcquireNextImage(c.device.D, c.swapChain.Handle, math.MaxUint64, c.imageAvailableSems[slot], nil, &c.imageIdx)
	// React on surface changes and other possible causes for failure (e.g.: Window resizing)
	if result == vk.ErrorOutOfDate {
		c.swapChainStale = true
		c.recreateSwapChain()
		return nil, 0, false
	} else if result != vk.Success && result != vk.Suboptimal {
		log.Panicf("Failed to acquire image, AcquireNextImage(...) result code: %d", result)
	}

	// Reset the fence only if we are actually going to execute work that will put the fence into the signalled state
	vk.ResetFences(c.device.D, 1, []vk.Fence{c.inFlightFens[slot]})

	cmd = c.commandBuffers[slot]
	vk.ResetCommandBuffer(cmd, 0)
	c.beginDrawCommands(cmd)
	return cmd, slot, true
}

func (c *Core) beginDrawCommands(buffer vk.CommandBuffer) {
	beginInfo := vk.CommandBufferBeginInfo{
		SType:            vk.StructureTypeCommandBufferBeginInfo,
		PNext:            nil,
		Flags:            0,
		PInheritanceInfo: nil,
	}
	if vk.BeginCommandBuffer(buffer, &beginInfo) != vk.Success {
		log.Panicf("Failed to begin recording command buffer")
	}

	renderArea := vk.Rect2D{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: c.swapChain.Extend,
	}
	clearValues := []vk.ClearValue{
		vk.NewClearValue(CLEAR_COLOR),
		vk.NewClearDepthStencil(1, 0),
	}
	renderPassInfo := vk.RenderPassBeginInfo{
		SType:           vk.StructureTypeRenderPassBeginInfo,
		PNext:           nil,
		RenderPass:      c.renderPass,
		Framebuffer:     c.swapChain.FrameBuffers[c.imageIdx],
		RenderArea:      renderArea,
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	}
	vk.CmdBeginRenderPass(buffer, &renderPassInfo, vk.SubpassContentsInline)

	viewport := []vk.Viewport{
		{
			X:        0,
			Y:        0,
			Width:    float32(c.swapChain.Extend.Width),
			Height:   float32(c.swapChain.Extend.Height),
			MinDepth: 0,
			MaxDepth: 1.0,
		},
	}
	vk.CmdSetViewport(buffer, 0, 1, viewport)
	vk.CmdSetScissor(buffer, 0, 1, []vk.Rect2D{renderArea})
}

// EndFrame closes the render pass, submits the slot's command buffer and presents the acquired image.
func (c *Core) EndFrame(cmd vk.CommandBuffer) {
	slot := c.currentFrameIdx
	vk.CmdEndRenderPass(cmd)
	if vk.EndCommandBuffer(cmd) != vk.Success {
		log.Panicf("Failed to record command buffer")
	}

	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		PNext:              nil,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{c.imageAvailableSems[slot]},
		PWaitDstStageMask: []vk.PipelineStageFlags{
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{cmd},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{c.renderFinishedSems[slot]},
	}
	if vk.QueueSubmit(c.device.GraphicsQ, 1, []vk.SubmitInfo{submitInfo}, c.inFlightFens[slot]) != vk.Success {
		log.Panicf("Failed to submit command buffer")
	}

	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		PNext:              nil,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{c.renderFinishedSems[slot]},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{c.swapChain.Handle},
		PImageIndices:      []uint32{c.imageIdx},
		PResults:           nil,
	}
	result := vk.QueuePresent(c.device.PresentQ, &presentInfo)
	c.currentFrameIdx = (c.currentFrameIdx + 1) % c.cfg.FramesInFlight

	if result == vk.ErrorOutOfDate || result == vk.Suboptimal || c.Win.Resized {
		c.Win.Resized = false
		c.swapChainStale = true
		c.recreateSwapChain()
	} else if result != vk.Success {
		log.Panicf("Failed to present image, QueuePresent(...) result code: %d", result)
	}
}

// recreateSwapChain rebuilds the swap chain and everything sized after it. It reports false and leaves the swap chain
// marked stale while the surface has no area.
func (c *Core) recreateSwapChain() bool {
	if com.IsZeroSized(c.device, c.Win) {
		return false
	}
	c.device.WaitIdle()
	c.destroySwapChainAndDerivatives()
	c.swapChain = com.NewSwapChain(c.device, c.Win, c.cfg.VSync)
	c.createDepthResources()
	c.createFrameBuffers()
	c.swapChainStale = false
	log.Printf("Recreated swap chain (%dx%d)", c.swapChain.Extend.Width, c.swapChain.Extend.Height)
	return true
}
