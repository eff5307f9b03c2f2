package vulkan

import (
	vk "github.com/goki/vulkan"
)

// VulkanContext holds every handle the backend creates, in creation order.
// Teardown walks it in reverse.
type VulkanContext struct {
	// The framebuffer dimensions the window was created with.
	FramebufferWidth  uint32
	FramebufferHeight uint32

	Instance  vk.Instance
	Allocator *vk.AllocationCallbacks

	Device *VulkanDevice
}

// VulkanDevice pairs the selected physical device with the logical device
// built on top of it. The physical device handle is a reference owned by the
// instance and is never destroyed here; the graphics queue is a reference
// owned by the logical device and dies with it.
type VulkanDevice struct {
	PhysicalDevice     vk.PhysicalDevice
	LogicalDevice      vk.Device
	GraphicsQueueIndex int32

	GraphicsQueue vk.Queue

	Properties vk.PhysicalDeviceProperties
	Features   vk.PhysicalDeviceFeatures
	Memory     vk.PhysicalDeviceMemoryProperties
}
