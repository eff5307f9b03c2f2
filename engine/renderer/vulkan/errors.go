package vulkan

import (
	"errors"
	"fmt"

	vk "github.com/goki/vulkan"
)

var (
	// ErrLayerUnavailable is returned when validation layers are requested
	// but the host loader does not provide them.
	ErrLayerUnavailable = errors.New("validation layers requested, but not available")

	// ErrNoDevicesFound is returned when the instance reports zero physical
	// devices.
	ErrNoDevicesFound = errors.New("failed to find GPUs with Vulkan support")

	// ErrNoSuitableDevice is returned when no enumerated device exposes a
	// graphics-capable queue family.
	ErrNoSuitableDevice = errors.New("failed to find a suitable GPU")
)

// InstanceCreationError carries the VkResult the loader returned when
// instance creation was rejected.
type InstanceCreationError struct {
	Result vk.Result
}

func (e *InstanceCreationError) Error() string {
	return fmt.Sprintf("failed to create instance: %s", VulkanResultString(e.Result))
}

// DeviceCreationError carries the VkResult returned when logical device
// creation was rejected.
type DeviceCreationError struct {
	Result vk.Result
}

func (e *DeviceCreationError) Error() string {
	return fmt.Sprintf("failed to create logical device: %s", VulkanResultString(e.Result))
}
