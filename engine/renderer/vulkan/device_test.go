package vulkan

import (
	"errors"
	"testing"

	vk "github.com/goki/vulkan"
)

func graphicsFamily() vk.QueueFamilyProperties {
	return vk.QueueFamilyProperties{
		QueueFlags: vk.QueueFlags(vk.QueueGraphicsBit | vk.QueueComputeBit),
		QueueCount: 1,
	}
}

func computeOnlyFamily() vk.QueueFamilyProperties {
	return vk.QueueFamilyProperties{
		QueueFlags: vk.QueueFlags(vk.QueueComputeBit),
		QueueCount: 1,
	}
}

func transferOnlyFamily() vk.QueueFamilyProperties {
	return vk.QueueFamilyProperties{
		QueueFlags: vk.QueueFlags(vk.QueueTransferBit),
		QueueCount: 1,
	}
}

func TestFindQueueFamiliesPicksLowestGraphicsIndex(t *testing.T) {
	families := []vk.QueueFamilyProperties{
		computeOnlyFamily(),
		graphicsFamily(),
		graphicsFamily(),
	}

	indices := findQueueFamilies(families)
	if !indices.IsComplete() {
		t.Fatal("expected complete indices")
	}
	if *indices.Graphics != 1 {
		t.Fatalf("expected graphics family 1, got %d", *indices.Graphics)
	}
}

func TestFindQueueFamiliesNoGraphics(t *testing.T) {
	families := []vk.QueueFamilyProperties{
		computeOnlyFamily(),
		transferOnlyFamily(),
	}

	indices := findQueueFamilies(families)
	if indices.IsComplete() {
		t.Fatal("expected incomplete indices")
	}
	if indices.Graphics != nil {
		t.Fatalf("expected nil graphics index, got %d", *indices.Graphics)
	}
}

func TestFindQueueFamiliesEmpty(t *testing.T) {
	if indices := findQueueFamilies(nil); indices.IsComplete() {
		t.Fatal("expected incomplete indices for empty family list")
	}
}

func TestFirstSuitableDeviceNoDevices(t *testing.T) {
	_, _, err := firstSuitableDevice(0, func(int) []vk.QueueFamilyProperties {
		t.Fatal("familiesAt must not be called for an empty enumeration")
		return nil
	})
	if !errors.Is(err, ErrNoDevicesFound) {
		t.Fatalf("expected ErrNoDevicesFound, got %v", err)
	}
}

func TestFirstSuitableDeviceNoneSuitable(t *testing.T) {
	devices := [][]vk.QueueFamilyProperties{
		{computeOnlyFamily()},
		{transferOnlyFamily()},
		{},
	}

	_, _, err := firstSuitableDevice(len(devices), func(i int) []vk.QueueFamilyProperties {
		return devices[i]
	})
	if !errors.Is(err, ErrNoSuitableDevice) {
		t.Fatalf("expected ErrNoSuitableDevice, got %v", err)
	}
}

func TestFirstSuitableDevicePicksFirstMatch(t *testing.T) {
	// Three devices; only device 2 exposes graphics, at family index 1.
	devices := [][]vk.QueueFamilyProperties{
		{computeOnlyFamily()},
		{transferOnlyFamily()},
		{computeOnlyFamily(), graphicsFamily()},
	}

	selected, indices, err := firstSuitableDevice(len(devices), func(i int) []vk.QueueFamilyProperties {
		return devices[i]
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if selected != 2 {
		t.Fatalf("expected device 2, got %d", selected)
	}
	if *indices.Graphics != 1 {
		t.Fatalf("expected graphics family 1, got %d", *indices.Graphics)
	}
}

func TestGraphicsQueueCreateInfos(t *testing.T) {
	infos := graphicsQueueCreateInfos(1)
	if len(infos) != 1 {
		t.Fatalf("expected one queue create info, got %d", len(infos))
	}
	info := infos[0]
	if info.QueueFamilyIndex != 1 {
		t.Fatalf("family index = %d", info.QueueFamilyIndex)
	}
	if info.QueueCount != 1 {
		t.Fatalf("queue count = %d", info.QueueCount)
	}
	if len(info.PQueuePriorities) != 1 || info.PQueuePriorities[0] != 1.0 {
		t.Fatalf("priorities = %v", info.PQueuePriorities)
	}
}

func TestFirstSuitableDeviceShortCircuits(t *testing.T) {
	var inspected []int
	devices := [][]vk.QueueFamilyProperties{
		{computeOnlyFamily()},
		{graphicsFamily()},
		{graphicsFamily()},
	}

	selected, _, err := firstSuitableDevice(len(devices), func(i int) []vk.QueueFamilyProperties {
		inspected = append(inspected, i)
		return devices[i]
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if selected != 1 {
		t.Fatalf("expected device 1, got %d", selected)
	}
	if len(inspected) != 2 {
		t.Fatalf("expected evaluation to stop at the first match, inspected %v", inspected)
	}
}
