package common

import (
	"testing"

	vk "github.com/goki/vulkan"
)

func TestChooseSwapExtent(t *testing.T) {
	caps := vk.SurfaceCapabilities{
		CurrentExtent:  vk.Extent2D{Width: 800, Height: 600},
		MinImageExtent: vk.Extent2D{Width: 1, Height: 1},
		MaxImageExtent: vk.Extent2D{Width: 4096, Height: 4096},
	}
	if e := chooseSwapExtent(caps, 640, 480); e.Width != 800 || e.Height != 600 {
		t.Errorf("A defined current extent should win, got %dx%d", e.Width, e.Height)
	}

	caps.CurrentExtent = vk.Extent2D{Width: undefinedExtent, Height: undefinedExtent}
	if e := chooseSwapExtent(caps, 640, 480); e.Width != 640 || e.Height != 480 {
		t.Errorf("An undefined extent should take the window size, got %dx%d", e.Width, e.Height)
	}
	if e := chooseSwapExtent(caps, 10000, 0); e.Width != 4096 || e.Height != 1 {
		t.Errorf("Window size should be clamped to the supported range, got %dx%d", e.Width, e.Height)
	}
}

func TestChooseImageCount(t *testing.T) {
	if n := chooseImageCount(vk.SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 0}); n != 3 {
		t.Errorf("Without an upper limit one extra image should be requested, got %d", n)
	}
	if n := chooseImageCount(vk.SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 2}); n != 2 {
		t.Errorf("The image count should respect the maximum, got %d", n)
	}
}

func TestSelectSwapPresentMode(t *testing.T) {
	s := SwapChainDetails{presentModes: []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeMailbox}}
	if pm := s.selectSwapPresentMode(vk.PresentModeMailbox); pm != vk.PresentModeMailbox {
		t.Errorf("Mailbox is available and should be selected")
	}
	s.presentModes = []vk.PresentMode{vk.PresentModeImmediate}
	if pm := s.selectSwapPresentMode(vk.PresentModeMailbox); pm != vk.PresentModeFifo {
		t.Errorf("Missing modes should fall back to FIFO")
	}
}

func TestSelectSwapSurfaceFormat(t *testing.T) {
	s := SwapChainDetails{formats: []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}}
	if f := s.selectSwapSurfaceFormat(vk.FormatB8g8r8a8Unorm, vk.ColorSpaceSrgbNonlinear); f.Format != vk.FormatB8g8r8a8Unorm {
		t.Errorf("Preferred format should be selected, got %d", f.Format)
	}
	if f := s.selectSwapSurfaceFormat(vk.FormatR16g16b16a16Sfloat, vk.ColorSpaceSrgbNonlinear); f.Format != vk.FormatR8g8b8a8Srgb {
		t.Errorf("Missing format should fall back to the first one, got %d", f.Format)
	}
}

func TestPickQueueFamilies(t *testing.T) {
	graphics := vk.QueueFamilyProperties{QueueFlags: vk.QueueFlags(vk.QueueGraphicsBit)}
	compute := vk.QueueFamilyProperties{QueueFlags: vk.QueueFlags(vk.QueueComputeBit)}

	// family 0 draws, family 1 presents, family 2 does both
	present := func(i uint32) bool { return i != 0 }
	q, err := pickQueueFamilies([]vk.QueueFamilyProperties{graphics, compute, graphics}, present)
	if err != nil {
		t.Fatal(err)
	}
	if *q.GraphicsFamily != 2 || *q.PresentFamily != 2 {
		t.Errorf("A family that can do both should be preferred, got %d/%d", *q.GraphicsFamily, *q.PresentFamily)
	}
	if u := q.Unique(); len(u) != 1 {
		t.Errorf("Shared family should yield one unique index, got %v", u)
	}

	q, err = pickQueueFamilies([]vk.QueueFamilyProperties{graphics, compute}, present)
	if err != nil {
		t.Fatal(err)
	}
	if *q.GraphicsFamily != 0 || *q.PresentFamily != 1 {
		t.Errorf("Expected split families 0/1, got %d/%d", *q.GraphicsFamily, *q.PresentFamily)
	}
	if infos := q.toQueueCreateInfos(); len(infos) != 2 {
		t.Errorf("Split families need two queue create infos, got %d", len(infos))
	}

	if _, err := pickQueueFamilies([]vk.QueueFamilyProperties{compute}, present); err == nil {
		t.Errorf("Missing graphics support should fail")
	}
}

func TestSelectMemoryType(t *testing.T) {
	var props vk.PhysicalDeviceMemoryProperties
	props.MemoryTypeCount = 3
	props.MemoryTypes[0].PropertyFlags = vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)
	props.MemoryTypes[1].PropertyFlags = vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)
	props.MemoryTypes[2].PropertyFlags = vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)

	hostCoherent := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)
	if i, ok := selectMemoryType(props, 0b111, hostCoherent); !ok || i != 2 {
		t.Errorf("Expected memory type 2 but got %d (%t)", i, ok)
	}
	if _, ok := selectMemoryType(props, 0b011, hostCoherent); ok {
		t.Errorf("Type 2 is filtered out, no other type is host coherent")
	}
	if i, ok := selectMemoryType(props, 0b110, vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)); !ok || i != 1 {
		t.Errorf("The first matching type should be returned, got %d", i)
	}
}
