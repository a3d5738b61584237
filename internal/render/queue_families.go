package render

import (
	"github.com/vkngwrapper/core/common"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
)

type QueueFamilyIndices struct {
	GraphicsFamily *int
	PresentFamily  *int
}

func (i *QueueFamilyIndices) IsComplete() bool {
	return i.GraphicsFamily != nil && i.PresentFamily != nil
}

// Shared reports whether graphics and presentation can run on one queue.
// The context only ever creates a single queue, so devices where this is
// false are rejected even though two queues would work.
func (i *QueueFamilyIndices) Shared() bool {
	return i.IsComplete() && *i.GraphicsFamily == *i.PresentFamily
}

// findQueueFamilies picks the first family that can both draw and present.
// Failing that it reports the first graphics family and the first present
// family separately, which leaves the indices complete but not shared.
func findQueueFamilies(families []core1_0.QueueFlags, supportsPresent func(familyIdx int) (bool, error)) (QueueFamilyIndices, error) {
	indices := QueueFamilyIndices{}

	for queueFamilyIdx, flags := range families {
		graphics := (flags & core1_0.QueueGraphics) != 0

		present, err := supportsPresent(queueFamilyIdx)
		if err != nil {
			return indices, err
		}

		if graphics && present {
			idx := queueFamilyIdx
			return QueueFamilyIndices{GraphicsFamily: &idx, PresentFamily: &idx}, nil
		}

		if graphics && indices.GraphicsFamily == nil {
			indices.GraphicsFamily = new(int)
			*indices.GraphicsFamily = queueFamilyIdx
		}

		if present && indices.PresentFamily == nil {
			indices.PresentFamily = new(int)
			*indices.PresentFamily = queueFamilyIdx
		}
	}

	return indices, nil
}

func (c *Context) findQueueFamilies(device core1_0.PhysicalDevice) (QueueFamilyIndices, error) {
	var families []core1_0.QueueFlags
	for _, queueFamily := range device.QueueFamilyProperties() {
		families = append(families, queueFamily.QueueFlags)
	}

	return findQueueFamilies(families, func(familyIdx int) (bool, error) {
		supported, res, err := c.surface.PhysicalDeviceSurfaceSupport(device, familyIdx)
		if err != nil {
			return false, creationFailed("query surface support", res, err)
		}
		return supported, nil
	})
}

// SurfaceSupport describes what a device/surface pair can present.
type SurfaceSupport struct {
	Capabilities *khr_surface.SurfaceCapabilities
	Formats      []khr_surface.SurfaceFormat
	PresentModes []khr_surface.PresentMode
}

// Adequate reports whether a swapchain can be built at all.
func (s SurfaceSupport) Adequate() bool {
	return len(s.Formats) > 0 && len(s.PresentModes) > 0
}

func (c *Context) querySurfaceSupport(device core1_0.PhysicalDevice) (SurfaceSupport, error) {
	var details SurfaceSupport
	var err error
	var res common.VkResult

	details.Capabilities, res, err = c.surface.PhysicalDeviceSurfaceCapabilities(device)
	if err != nil {
		return details, creationFailed("query surface capabilities", res, err)
	}

	details.Formats, res, err = c.surface.PhysicalDeviceSurfaceFormats(device)
	if err != nil {
		return details, creationFailed("query surface formats", res, err)
	}

	details.PresentModes, res, err = c.surface.PhysicalDeviceSurfacePresentModes(device)
	if err != nil {
		return details, creationFailed("query surface present modes", res, err)
	}
	return details, nil
}
