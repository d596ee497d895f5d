package common

import (
	"encoding/hex"
	"fmt"
	vk "github.com/goki/vulkan"
	"strings"
)

// Printable representations of the device information read while picking a GPU. Only used for logging.

// ToStringPhysicalDeviceTable renders one device as a small tree: name, properties, features and its queue families.
func ToStringPhysicalDeviceTable(
	pdProps vk.PhysicalDeviceProperties,
	pdFeatures vk.PhysicalDeviceFeatures,
	qFamilies []vk.QueueFamilyProperties,
) string {
	strBuilder := strings.Builder{}
	for i := range qFamilies {
		prefix := "| "
		if i == len(qFamilies)-1 {
			prefix = "|_"
		}
		strBuilder.WriteString(fmt.Sprintf("%sQfamily[%d] %s\n", prefix, i, toStringQueueFamilyPropsTable(qFamilies[i])))
	}
	return fmt.Sprintf(
		"%s:\n|_%s\n|_%s\n%s",
		vk.ToString(pdProps.DeviceName[:]),
		toStringPhysicalDevicePropsTable(pdProps),
		toStringPhysicalDeviceFeatures(pdFeatures),
		strBuilder.String(),
	)
}

// DeviceName is the human-readable name of a physical device.
func DeviceName(pdProps vk.PhysicalDeviceProperties) string {
	return vk.ToString(pdProps.DeviceName[:])
}

func asVendorName(v uint32) string {
	// There are only a handful of vendors registered with Khronos
	switch v {
	case 0x1002:
		return "AMD"
	case 0x1010:
		return "ImgTec"
	case 0x10DE:
		return "NVIDIA"
	case 0x13B5:
		return "ARM"
	case 0x5143:
		return "Qualcomm"
	case 0x8086:
		return "INTEL"
	case 0x10005:
		return "Mesa"
	default:
		return "unknown"
	}
}

func asDriverVersion(vendor uint32, raw uint32) string {
	// NVIDIA packs its driver version differently
	if vendor == 0x10DE {
		return fmt.Sprintf("%d.%d.%d.%d", (raw>>22)&0x3ff, (raw>>14)&0x0ff, (raw>>6)&0x0ff, raw&0x003f)
	}
	return vk.Version(raw).String()
}

func toStringPhysicalDevicePropsTable(pdProps vk.PhysicalDeviceProperties) string {
	return fmt.Sprintf("api: %s, driver: %s, vendorId: %d (%s), deviceId: %d, deviceType: %d (%s), UUID: %v",
		vk.Version(pdProps.ApiVersion).String(),
		asDriverVersion(pdProps.VendorID, pdProps.DriverVersion),
		pdProps.VendorID,
		asVendorName(pdProps.VendorID),
		pdProps.DeviceID,
		pdProps.DeviceType,
		toStringDeviceType(pdProps.DeviceType),
		hex.EncodeToString(pdProps.PipelineCacheUUID[:]),
	)
}

func toStringPhysicalDeviceFeatures(pdFeatures vk.PhysicalDeviceFeatures) string {
	return fmt.Sprintf("anisotropy: %t, fillModeNonSolid: %t, wideLines: %t",
		pdFeatures.SamplerAnisotropy == vk.True,
		pdFeatures.FillModeNonSolid == vk.True,
		pdFeatures.WideLines == vk.True,
	)
}

func toStringDeviceType(dt vk.PhysicalDeviceType) string {
	switch dt {
	case vk.PhysicalDeviceTypeOther:
		return "other"
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "integrated Gpu"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "discrete Gpu"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "virtual Gpu"
	case vk.PhysicalDeviceTypeCpu:
		return "cpu"
	default:
		return "unknown"
	}
}

func toStringQueueFamilyPropsTable(q vk.QueueFamilyProperties) string {
	return fmt.Sprintf(
		"Count: %2d, Valid ts bits: %d, ImageGranularity: (%d,%d,%d), Flags: %v",
		q.QueueCount,
		q.TimestampValidBits,
		q.MinImageTransferGranularity.Width,
		q.MinImageTransferGranularity.Height,
		q.MinImageTransferGranularity.Depth,
		toStringQueueFlags(q.QueueFlags),
	)
}

func toStringQueueFlags(bits vk.QueueFlags) []string {
	var properties []string
	flags := vk.QueueFlagBits(bits)
	if flags&vk.QueueGraphicsBit > 0 {
		properties = append(properties, "GRAPHICS")
	}
	if flags&vk.QueueComputeBit > 0 {
		properties = append(properties, "COMPUTE")
	}
	if flags&vk.QueueTransferBit > 0 {
		properties = append(properties, "TRANSFER")
	}
	if flags&vk.QueueSparseBindingBit > 0 {
		properties = append(properties, "SPARSE_BINDING")
	}
	if flags&vk.QueueProtectedBit > 0 {
		properties = append(properties, "PROTECTED")
	}
	return properties
}

func toStringPresentMode(pm vk.PresentMode) string {
	switch pm {
	case vk.PresentModeImmediate:
		return "immediate"
	case vk.PresentModeMailbox:
		return "mailbox"
	case vk.PresentModeFifo:
		return "fifo"
	case vk.PresentModeFifoRelaxed:
		return "fifo relaxed"
	default:
		return fmt.Sprintf("unknown (%d)", pm)
	}
}
