package render

import (
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
)

// anyExtent is the current-extent width a surface reports when the
// swapchain extent is left to the application. The driver writes
// 0xFFFFFFFF, which arrives zero-extended in the int field.
const anyExtent = int(^uint32(0))

// SwapchainConfig is the concrete swapchain shape picked from a
// SurfaceSupport. It does not change for the lifetime of the swapchain.
type SwapchainConfig struct {
	SurfaceFormat khr_surface.SurfaceFormat
	PresentMode   khr_surface.PresentMode
	Extent        core1_0.Extent2D
	ImageCount    int
}

// NegotiateSwapchain applies the selection rules to a surface's support
// details. drawableWidth and drawableHeight are only consulted when the
// surface leaves the extent up to us.
func NegotiateSwapchain(support SurfaceSupport, drawableWidth, drawableHeight int) SwapchainConfig {
	return SwapchainConfig{
		SurfaceFormat: ChooseSurfaceFormat(support.Formats),
		PresentMode:   ChoosePresentMode(support.PresentModes),
		Extent:        ChooseExtent(support.Capabilities, drawableWidth, drawableHeight),
		ImageCount:    ChooseImageCount(support.Capabilities),
	}
}

// ChooseSurfaceFormat prefers 8-bit BGRA sRGB with a non-linear sRGB colour
// space and otherwise takes the first format offered. availableFormats must
// not be empty.
func ChooseSurfaceFormat(availableFormats []khr_surface.SurfaceFormat) khr_surface.SurfaceFormat {
	for _, format := range availableFormats {
		if format.Format == core1_0.FormatB8G8R8A8SRGB && format.ColorSpace == khr_surface.ColorSpaceSRGBNonlinear {
			return format
		}
	}

	return availableFormats[0]
}

// ChoosePresentMode prefers mailbox. FIFO is always available.
func ChoosePresentMode(availablePresentModes []khr_surface.PresentMode) khr_surface.PresentMode {
	for _, presentMode := range availablePresentModes {
		if presentMode == khr_surface.PresentModeMailbox {
			return presentMode
		}
	}

	return khr_surface.PresentModeFIFO
}

func ChooseExtent(capabilities *khr_surface.SurfaceCapabilities, drawableWidth, drawableHeight int) core1_0.Extent2D {
	if capabilities.CurrentExtent.Width != anyExtent {
		return capabilities.CurrentExtent
	}

	return core1_0.Extent2D{
		Width:  clamp(drawableWidth, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: clamp(drawableHeight, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

// ChooseImageCount asks for one image more than the minimum so the driver
// is never waited on, capped by the maximum when the surface has one.
func ChooseImageCount(capabilities *khr_surface.SurfaceCapabilities) int {
	imageCount := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && capabilities.MaxImageCount < imageCount {
		imageCount = capabilities.MaxImageCount
	}
	return imageCount
}

func clamp(v, lo, hi int) int {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}
