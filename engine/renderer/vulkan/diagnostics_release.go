//go:build !debug

package vulkan

// Release builds never touch layer enumeration.
const enableValidationLayers = false
