//go:build debug

package vulkan

// Debug builds request the Khronos validation layer and verify it is
// present before creating the instance.
const enableValidationLayers = true
