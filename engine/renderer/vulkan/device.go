package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/lumine-engine/lumine/engine/core"
)

// deviceExtensions are required of the selected device. The portability
// subset extension only exists on drivers that are translation layers
// (e.g. MoltenVK) and must be enabled there.
var deviceExtensions = []string{
	vk.KhrSwapchainExtensionName,
	"VK_KHR_portability_subset",
}

// QueueFamilyIndices maps each required queue capability to the family index
// that provides it. An index is nil until resolved. Indices are derived per
// physical device and never reused across candidates.
type QueueFamilyIndices struct {
	Graphics *uint32
}

// IsComplete reports whether every required capability has an index.
func (q *QueueFamilyIndices) IsComplete() bool {
	return q.Graphics != nil
}

// findQueueFamilies resolves queue family indices from the given family
// properties, in index order. The graphics index is the lowest family whose
// flags include the graphics bit; the scan stops as soon as the index set is
// complete.
func findQueueFamilies(families []vk.QueueFamilyProperties) QueueFamilyIndices {
	indices := QueueFamilyIndices{}
	for i := range families {
		families[i].Deref()
		if families[i].QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0 {
			index := uint32(i)
			indices.Graphics = &index
		}
		if indices.IsComplete() {
			break
		}
	}
	return indices
}

// firstSuitableDevice returns the position of the first candidate, in
// enumeration order, whose queue families are complete. familiesAt is
// evaluated lazily so candidates after the match are never inspected.
func firstSuitableDevice(count int, familiesAt func(int) []vk.QueueFamilyProperties) (int, QueueFamilyIndices, error) {
	if count == 0 {
		return -1, QueueFamilyIndices{}, ErrNoDevicesFound
	}
	for i := 0; i < count; i++ {
		indices := findQueueFamilies(familiesAt(i))
		if indices.IsComplete() {
			return i, indices, nil
		}
	}
	return -1, QueueFamilyIndices{}, ErrNoSuitableDevice
}

func queueFamilyProperties(device vk.PhysicalDevice) []vk.QueueFamilyProperties {
	var familyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(device, &familyCount, nil)
	families := make([]vk.QueueFamilyProperties, familyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(device, &familyCount, families)
	return families
}

// pickPhysicalDevice enumerates the devices visible to the instance and
// selects the first suitable one. First match wins; there is no ranking.
func (vr *VulkanRenderer) pickPhysicalDevice() error {
	var physicalDeviceCount uint32
	if res := vk.EnumeratePhysicalDevices(vr.context.Instance, &physicalDeviceCount, nil); res != vk.Success {
		return ErrNoDevicesFound
	}
	if physicalDeviceCount == 0 {
		return ErrNoDevicesFound
	}
	physicalDevices := make([]vk.PhysicalDevice, physicalDeviceCount)
	if res := vk.EnumeratePhysicalDevices(vr.context.Instance, &physicalDeviceCount, physicalDevices); res != vk.Success {
		return ErrNoDevicesFound
	}

	selected, indices, err := firstSuitableDevice(len(physicalDevices), func(i int) []vk.QueueFamilyProperties {
		return queueFamilyProperties(physicalDevices[i])
	})
	if err != nil {
		return err
	}

	device := vr.context.Device
	device.PhysicalDevice = physicalDevices[selected]
	device.GraphicsQueueIndex = int32(*indices.Graphics)

	vk.GetPhysicalDeviceProperties(device.PhysicalDevice, &device.Properties)
	device.Properties.Deref()
	vk.GetPhysicalDeviceFeatures(device.PhysicalDevice, &device.Features)
	device.Features.Deref()
	vk.GetPhysicalDeviceMemoryProperties(device.PhysicalDevice, &device.Memory)
	device.Memory.Deref()

	nameEnd := FindFirstZeroInByteArray(device.Properties.DeviceName[:])
	core.LogInfo("Selected device: '%s' (graphics queue family %d).",
		string(device.Properties.DeviceName[:nameEnd]), device.GraphicsQueueIndex)
	logDeviceType(device.Properties.DeviceType)
	core.LogInfo(
		"GPU driver version: %d.%d.%d",
		vk.Version.Major(vk.Version(device.Properties.DriverVersion)),
		vk.Version.Minor(vk.Version(device.Properties.DriverVersion)),
		vk.Version.Patch(vk.Version(device.Properties.DriverVersion)),
	)
	core.LogInfo(
		"Vulkan API version: %d.%d.%d",
		vk.Version.Major(vk.Version(device.Properties.ApiVersion)),
		vk.Version.Minor(vk.Version(device.Properties.ApiVersion)),
		vk.Version.Patch(vk.Version(device.Properties.ApiVersion)),
	)

	return nil
}

func logDeviceType(deviceType vk.PhysicalDeviceType) {
	switch deviceType {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		core.LogInfo("GPU type is Integrated.")
	case vk.PhysicalDeviceTypeDiscreteGpu:
		core.LogInfo("GPU type is Discrete.")
	case vk.PhysicalDeviceTypeVirtualGpu:
		core.LogInfo("GPU type is Virtual.")
	case vk.PhysicalDeviceTypeCpu:
		core.LogInfo("GPU type is CPU.")
	default:
		core.LogInfo("GPU type is Unknown.")
	}
}

// graphicsQueueCreateInfos requests a single queue from the graphics family
// at maximum priority.
func graphicsQueueCreateInfos(familyIndex uint32) []vk.DeviceQueueCreateInfo {
	return []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: familyIndex,
		QueueCount:       1,
		PQueuePriorities: []float32{1.0},
	}}
}

// createLogicalDevice builds the logical device on the selected physical
// device with a single graphics queue at maximum priority, then retrieves
// the queue handle. Callers must have selected a device first.
func (vr *VulkanRenderer) createLogicalDevice() error {
	device := vr.context.Device

	queueCreateInfos := graphicsQueueCreateInfos(uint32(device.GraphicsQueueIndex))

	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueCreateInfos)),
		PQueueCreateInfos:       queueCreateInfos,
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{{}},
		EnabledExtensionCount:   uint32(len(deviceExtensions)),
		PpEnabledExtensionNames: VulkanSafeStrings(deviceExtensions),
	}

	// Device layers are deprecated, but older loaders still read them.
	// Mirror the instance layer list only when validation is on.
	if enableValidationLayers {
		deviceCreateInfo.EnabledLayerCount = uint32(len(validationLayers))
		deviceCreateInfo.PpEnabledLayerNames = VulkanSafeStrings(validationLayers)
	}

	if res := vk.CreateDevice(
		device.PhysicalDevice,
		&deviceCreateInfo,
		vr.context.Allocator,
		&device.LogicalDevice); res != vk.Success {
		return &DeviceCreationError{Result: res}
	}

	core.LogInfo("Logical device created.")

	vk.GetDeviceQueue(
		device.LogicalDevice,
		uint32(device.GraphicsQueueIndex),
		0,
		&device.GraphicsQueue)
	core.LogInfo("Graphics queue obtained.")

	return nil
}

// deviceDestroy releases the logical device. The physical device is a
// reference owned by the instance and the graphics queue dies with the
// logical device; neither has its own destroy call.
func (vr *VulkanRenderer) deviceDestroy() {
	device := vr.context.Device

	device.GraphicsQueue = nil

	if device.LogicalDevice != nil {
		core.LogInfo("Destroying logical device...")
		vr.destroyDeviceFn(device.LogicalDevice, vr.context.Allocator)
		device.LogicalDevice = nil
	}

	device.PhysicalDevice = nil
	device.GraphicsQueueIndex = -1
}
