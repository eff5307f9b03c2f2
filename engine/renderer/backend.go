package renderer

import (
	"github.com/google/uuid"

	"github.com/lumine-engine/lumine/engine/platform"
	"github.com/lumine-engine/lumine/engine/renderer/vulkan"
)

// Backend is the graphics subsystem as the engine sees it. The three
// creation steps run exactly once each, in order, and Shutdown releases
// whatever has been created so far in reverse order.
type Backend interface {
	ID() uuid.UUID
	CreateInstance(appName string, appWidth, appHeight uint32) error
	PickPhysicalDevice() error
	CreateLogicalDevice() error
	Shutdown() error
}

// NewBackend returns the Vulkan backend bound to the given platform.
func NewBackend(p *platform.Platform) Backend {
	return vulkan.New(p)
}
