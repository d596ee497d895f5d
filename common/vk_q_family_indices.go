package common

import (
	vk "github.com/goki/vulkan"
	"github.com/pkg/errors"
)

// QueueFamilyIndices holds the families used for drawing and presenting. A nil entry has not been found (yet), both
// may point at the same family.
type QueueFamilyIndices struct {
	GraphicsFamily *uint32
	PresentFamily  *uint32
}

func findQueueFamilies(pd vk.PhysicalDevice, surf vk.Surface) (*QueueFamilyIndices, error) {
	qFamilies := ReadQueueFamilies(pd)
	return pickQueueFamilies(qFamilies, func(i uint32) bool {
		var presentSupport vk.Bool32
		vk.GetPhysicalDeviceSurfaceSupport(pd, i, surf, &presentSupport)
		return presentSupport > 0
	})
}

// pickQueueFamilies prefers a single family that can both draw and present, otherwise it takes the first family for
// each capability.
func pickQueueFamilies(qFamilies []vk.QueueFamilyProperties, canPresent func(uint32) bool) (*QueueFamilyIndices, error) {
	indices := &QueueFamilyIndices{}
	for i := range qFamilies {
		idx := uint32(i)
		graphics := isBitSet(qFamilies[i], vk.QueueGraphicsBit)
		present := canPresent(idx)
		if graphics && present {
			indices.GraphicsFamily = &idx
			indices.PresentFamily = &idx
			return indices, nil
		}
		if indices.GraphicsFamily == nil && graphics {
			indices.GraphicsFamily = &idx
		}
		if indices.PresentFamily == nil && present {
			indices.PresentFamily = &idx
		}
	}
	if indices.GraphicsFamily == nil {
		return nil, errors.New("unable to find graphics capable queue family")
	}
	if indices.PresentFamily == nil {
		return nil, errors.New("unable to find present capable queue family for given surface")
	}
	return indices, nil
}

func isBitSet(qFamily vk.QueueFamilyProperties, bit vk.QueueFlagBits) bool {
	return vk.QueueFlagBits(qFamily.QueueFlags)&bit > 0
}

func (q *QueueFamilyIndices) isAllQueuesFound() bool {
	return q.GraphicsFamily != nil && q.PresentFamily != nil
}

// Unique returns the distinct family indices, graphics first.
func (q *QueueFamilyIndices) Unique() []uint32 {
	var uniqIndices []uint32
	if q.GraphicsFamily != nil {
		uniqIndices = append(uniqIndices, *q.GraphicsFamily)
	}
	if q.PresentFamily != nil && !inList(*q.PresentFamily, uniqIndices) {
		uniqIndices = append(uniqIndices, *q.PresentFamily)
	}
	return uniqIndices
}

func (q *QueueFamilyIndices) toQueueCreateInfos() []vk.DeviceQueueCreateInfo {
	uniqIndices := q.Unique()
	infos := make([]vk.DeviceQueueCreateInfo, len(uniqIndices))
	for i := range uniqIndices {
		infos[i] = vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			PNext:            nil,
			Flags:            0,
			QueueFamilyIndex: uniqIndices[i],
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		}
	}
	return infos
}

func inList(e uint32, l []uint32) bool {
	for i := range l {
		if l[i] == e {
			return true
		}
	}
	return false
}
