package common

import (
	vk "github.com/goki/vulkan"
	"log"
)

var DEVICE_EXTENSIONS = []string{
	"VK_KHR_swapchain",
}

// Device represents the interfacing objects between the SDL window, the Hardware running Vulkan
// and the rest of the rendering engine. Its main purpose is to encapsulate the corresponding objects
// to make the initialization and teardown of a given application neater.
type Device struct {
	PD            vk.PhysicalDevice
	PdProps       vk.PhysicalDeviceProperties
	PdMemoryProps vk.PhysicalDeviceMemoryProperties
	QFamilies     QueueFamilyIndices

	D         vk.Device
	GraphicsQ vk.Queue
	PresentQ  vk.Queue
}

func NewDevice(w *Window) *Device {
	dc := &Device{}
	dc.selectPhysicalDevice(w.Inst, w.Surf)
	dc.createLogicalDevice(w.ValidationLayers)
	return dc
}

// Destroy all objects created by itself. It does not destroy the sdl.window object provided for instantiation.
func (dc *Device) Destroy() {
	vk.DestroyDevice(dc.D, nil)
}

// WaitIdle blocks until the GPU finished all submitted work.
func (dc *Device) WaitIdle() {
	if err := vk.Error(vk.DeviceWaitIdle(dc.D)); err != nil {
		log.Printf("Failed to wait for device idle: %s", err)
	}
}

// MaxSamplerAnisotropy returns the highest anisotropy level the selected device supports.
func (dc *Device) MaxSamplerAnisotropy() float32 {
	return dc.PdProps.Limits.MaxSamplerAnisotropy
}

func (dc *Device) selectPhysicalDevice(in *vk.Instance, su *vk.Surface) {
	availableDevices := ReadPhysicalDevices(*in)
	var pd vk.PhysicalDevice
	bestScore := 0
	for i := range availableDevices {
		if score := rateDevice(availableDevices[i], su); score > bestScore {
			pd = availableDevices[i]
			bestScore = score
		}
	}
	if pd == nil {
		log.Panicf("No suitable physical device (GPU) found")
	}
	dc.PD = pd

	// Also set related member variables for dc.PD as they are needed later
	qf, err := findQueueFamilies(dc.PD, *su)
	if err != nil {
		log.Panicf("Failed to read queue families from selected device due to: %s", err)
	}
	dc.QFamilies = *qf
	dc.PdProps = ReadPhysicalDeviceProperties(dc.PD)
	dc.PdMemoryProps = ReadDeviceMemoryProperties(dc.PD)
	log.Printf("Selected physical device '%s'", DeviceName(dc.PdProps))
}

// rateDevice returns 0 for devices that cannot run the viewer. Usable devices score by type, discrete GPUs first.
func rateDevice(pd vk.PhysicalDevice, su *vk.Surface) int {
	pdProps := ReadPhysicalDeviceProperties(pd)
	pdFeatures := ReadPhysicalDeviceFeatures(pd)
	pdQueueFams := ReadQueueFamilies(pd)

	log.Printf("Physical device\n%s", ToStringPhysicalDeviceTable(pdProps, pdFeatures, pdQueueFams))

	indices, err := findQueueFamilies(pd, *su)
	if err != nil {
		log.Printf("Failed to get required queue families: %s", err)
		return 0
	}
	if !indices.isAllQueuesFound() || pdFeatures.SamplerAnisotropy != vk.True {
		return 0
	}
	if !checkDeviceExtensionSupport(pd, DEVICE_EXTENSIONS) || !checkSwapChainAdequacy(pd, *su) {
		return 0
	}
	return deviceTypeScore(pdProps.DeviceType)
}

func deviceTypeScore(t vk.PhysicalDeviceType) int {
	switch t {
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return 4
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return 3
	case vk.PhysicalDeviceTypeVirtualGpu:
		return 2
	default:
		return 1
	}
}

func (dc *Device) createLogicalDevice(validationLayers []string) {
	queueInfos := dc.QFamilies.toQueueCreateInfos()
	deviceFeatures := vk.PhysicalDeviceFeatures{ // anisotropic sampling backs the third sampler state
		SamplerAnisotropy: vk.True,
	}
	deviceCreatInfo := &vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		PNext:                   nil,
		Flags:                   0,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledLayerCount:       0,
		PpEnabledLayerNames:     nil,
		EnabledExtensionCount:   uint32(len(DEVICE_EXTENSIONS)),
		PpEnabledExtensionNames: TerminatedStrs(DEVICE_EXTENSIONS),
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{deviceFeatures},
	}
	if len(validationLayers) > 0 {
		deviceCreatInfo.EnabledLayerCount = uint32(len(validationLayers))
		deviceCreatInfo.PpEnabledLayerNames = TerminatedStrs(validationLayers)
	}

	var err error
	dc.D, err = VkCreateDevice(dc.PD, deviceCreatInfo, nil)
	if err != nil {
		log.Panicf("Failed create logical device due to: %s", err)
	}
	dc.GraphicsQ, err = VkGetDeviceQueue(dc.D, dc.QFamilies.GraphicsFamily, 0)
	if err != nil {
		log.Panicf("Failed to get 'graphics' device queue: %s", err)
	}
	dc.PresentQ, err = VkGetDeviceQueue(dc.D, dc.QFamilies.PresentFamily, 0)
	if err != nil {
		log.Panicf("Failed to get 'present' device queue: %s", err)
	}
}

func checkDeviceExtensionSupport(pd vk.PhysicalDevice, requiredDeviceExt []string) bool {
	supportedExt := ReadDeviceExtensionProperties(pd)
	log.Printf("Required device extensions: %v, available: %d", requiredDeviceExt, len(supportedExt))
	supportedExtNames := make([]string, len(supportedExt))
	for i, ext := range supportedExt {
		supportedExtNames[i] = vk.ToString(ext.ExtensionName[:])
	}
	return AllOfAinB(requiredDeviceExt, supportedExtNames)
}
