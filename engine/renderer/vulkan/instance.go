package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/lumine-engine/lumine/engine/core"
)

// validationLayers is the layer set requested in debug builds. Without these,
// Vulkan does no error checking.
var validationLayers = []string{"VK_LAYER_KHRONOS_validation"}

// VK_INSTANCE_CREATE_ENUMERATE_PORTABILITY_BIT_KHR. The bindings do not
// expose the constant, the value is fixed by the registry.
const instanceCreateEnumeratePortabilityBit vk.InstanceCreateFlags = 0x00000001

const portabilityEnumerationExtensionName = "VK_KHR_portability_enumeration"

// ValidationLayersEnabled reports whether this build requests validation
// layers. Fixed at build time by the debug tag.
func ValidationLayersEnabled() bool {
	return enableValidationLayers
}

// createInstance establishes the connection to the Vulkan loader. In debug
// builds it first verifies the validation layers are present; nothing is
// created when they are not.
func (vr *VulkanRenderer) createInstance(appName string) error {
	if enableValidationLayers {
		ok, err := checkValidationLayerSupport()
		if err != nil {
			return err
		}
		if !ok {
			return ErrLayerUnavailable
		}
	}

	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         uint32(vk.MakeVersion(1, 2, 0)),
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		EngineVersion:      uint32(vk.MakeVersion(1, 0, 0)),
		PApplicationName:   VulkanSafeString(appName),
		PEngineName:        VulkanSafeString("Lumine Engine"),
	}

	// The window system's required extensions, plus portability enumeration so
	// drivers that are themselves translation layers still show up.
	requiredExtensions := append([]string{}, vr.platform.GetRequiredExtensionNames()...)
	requiredExtensions = append(requiredExtensions, portabilityEnumerationExtensionName)

	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		Flags:                   instanceCreateEnumeratePortabilityBit,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(requiredExtensions)),
		PpEnabledExtensionNames: VulkanSafeStrings(requiredExtensions),
	}

	if enableValidationLayers {
		createInfo.EnabledLayerCount = uint32(len(validationLayers))
		createInfo.PpEnabledLayerNames = VulkanSafeStrings(validationLayers)
	}

	if res := vk.CreateInstance(&createInfo, vr.context.Allocator, &vr.context.Instance); res != vk.Success {
		return &InstanceCreationError{Result: res}
	}
	if err := vk.InitInstance(vr.context.Instance); err != nil {
		// The instance exists at this point; release it so a failed setup
		// leaves no live handle behind.
		vr.destroyInstance()
		return err
	}

	core.LogInfo("Vulkan instance created (extensions: %v)", requiredExtensions)
	return nil
}

// checkValidationLayerSupport enumerates the loader's available layers and
// reports whether every requested validation layer is present. Pure query,
// no handles are created.
func checkValidationLayerSupport() (bool, error) {
	var availableLayerCount uint32
	if res := vk.EnumerateInstanceLayerProperties(&availableLayerCount, nil); res != vk.Success {
		return false, &InstanceCreationError{Result: res}
	}
	availableLayers := make([]vk.LayerProperties, availableLayerCount)
	if res := vk.EnumerateInstanceLayerProperties(&availableLayerCount, availableLayers); res != vk.Success {
		return false, &InstanceCreationError{Result: res}
	}
	return supportsRequiredLayers(validationLayers, availableLayers), nil
}

// supportsRequiredLayers reports whether every name in required appears in
// the available set. Matching is exact and case-sensitive.
func supportsRequiredLayers(required []string, available []vk.LayerProperties) bool {
	for _, name := range required {
		found := false
		for i := range available {
			available[i].Deref()
			end := FindFirstZeroInByteArray(available[i].LayerName[:])
			if name == string(available[i].LayerName[:end]) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
