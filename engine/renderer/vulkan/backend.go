package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/google/uuid"

	"github.com/lumine-engine/lumine/engine/core"
	"github.com/lumine-engine/lumine/engine/platform"
)

// VulkanRenderer owns the Vulkan side of the bootstrap: instance, selected
// physical device, logical device and its graphics queue. Creation order is
// instance, device selection, logical device; Shutdown releases in reverse.
type VulkanRenderer struct {
	platform *platform.Platform
	context  *VulkanContext
	id       uuid.UUID

	destroyDeviceFn   func(vk.Device, *vk.AllocationCallbacks)
	destroyInstanceFn func(vk.Instance, *vk.AllocationCallbacks)
}

func New(p *platform.Platform) *VulkanRenderer {
	return &VulkanRenderer{
		platform: p,
		id:       uuid.New(),
		context: &VulkanContext{
			Allocator: nil,
			Device:    &VulkanDevice{GraphicsQueueIndex: -1},
		},
		destroyDeviceFn:   vk.DestroyDevice,
		destroyInstanceFn: vk.DestroyInstance,
	}
}

func (vr *VulkanRenderer) ID() uuid.UUID {
	return vr.id
}

// CreateInstance loads the Vulkan entry points via the window system and
// creates the instance.
func (vr *VulkanRenderer) CreateInstance(appName string, appWidth, appHeight uint32) error {
	procAddr := vr.platform.GetInstanceProcAddress()
	if procAddr == nil {
		return fmt.Errorf("vkGetInstanceProcAddr is nil")
	}
	vk.SetGetInstanceProcAddr(procAddr)

	if err := vk.Init(); err != nil {
		return fmt.Errorf("failed to initialize vulkan: %w", err)
	}

	vr.context.FramebufferWidth = appWidth
	vr.context.FramebufferHeight = appHeight

	return vr.createInstance(appName)
}

// PickPhysicalDevice selects the first suitable device visible to the
// instance.
func (vr *VulkanRenderer) PickPhysicalDevice() error {
	return vr.pickPhysicalDevice()
}

// CreateLogicalDevice builds the logical device and retrieves the graphics
// queue.
func (vr *VulkanRenderer) CreateLogicalDevice() error {
	return vr.createLogicalDevice()
}

// Shutdown destroys whatever has been created so far, logical device first,
// instance last. Gated on the handles themselves, so it is safe after a
// partial setup and idempotent.
func (vr *VulkanRenderer) Shutdown() error {
	vr.deviceDestroy()
	vr.destroyInstance()
	return nil
}

func (vr *VulkanRenderer) destroyInstance() {
	if vr.context.Instance == nil {
		return
	}
	core.LogInfo("Destroying Vulkan instance...")
	vr.destroyInstanceFn(vr.context.Instance, vr.context.Allocator)
	vr.context.Instance = nil
}
