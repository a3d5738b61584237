package render

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
)

var (
	bgraSRGB = khr_surface.SurfaceFormat{Format: core1_0.FormatB8G8R8A8SRGB, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear}
	rgbaSRGB = khr_surface.SurfaceFormat{Format: core1_0.FormatR8G8B8A8SRGB, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear}
	depthFmt = khr_surface.SurfaceFormat{Format: core1_0.FormatD32SignedFloat, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear}
)

func TestChooseSurfaceFormat(t *testing.T) {
	tests := []struct {
		name      string
		available []khr_surface.SurfaceFormat
		want      khr_surface.SurfaceFormat
	}{
		{"only preferred", []khr_surface.SurfaceFormat{bgraSRGB}, bgraSRGB},
		{"preferred first", []khr_surface.SurfaceFormat{bgraSRGB, rgbaSRGB}, bgraSRGB},
		{"preferred last", []khr_surface.SurfaceFormat{rgbaSRGB, depthFmt, bgraSRGB}, bgraSRGB},
		{"fallback to first", []khr_surface.SurfaceFormat{rgbaSRGB, depthFmt}, rgbaSRGB},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := qt.New(t)
			got := ChooseSurfaceFormat(test.available)
			c.Assert(got, qt.Equals, test.want)
			// Same input, same answer
			c.Assert(ChooseSurfaceFormat(test.available), qt.Equals, got)
		})
	}
}

func TestChoosePresentMode(t *testing.T) {
	tests := []struct {
		name      string
		available []khr_surface.PresentMode
		want      khr_surface.PresentMode
	}{
		{"empty", nil, khr_surface.PresentModeFIFO},
		{"fifo only", []khr_surface.PresentMode{khr_surface.PresentModeFIFO}, khr_surface.PresentModeFIFO},
		{"mailbox only", []khr_surface.PresentMode{khr_surface.PresentModeMailbox}, khr_surface.PresentModeMailbox},
		{"mailbox after fifo", []khr_surface.PresentMode{khr_surface.PresentModeFIFO, khr_surface.PresentModeMailbox}, khr_surface.PresentModeMailbox},
		{"mailbox before fifo", []khr_surface.PresentMode{khr_surface.PresentModeMailbox, khr_surface.PresentModeFIFO}, khr_surface.PresentModeMailbox},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			qt.Assert(t, ChoosePresentMode(test.available), qt.Equals, test.want)
		})
	}
}

func capabilities(current, min, max core1_0.Extent2D) *khr_surface.SurfaceCapabilities {
	return &khr_surface.SurfaceCapabilities{
		MinImageCount:  2,
		CurrentExtent:  current,
		MinImageExtent: min,
		MaxImageExtent: max,
	}
}

func TestChooseExtent(t *testing.T) {
	// Converted the same way khr_surface fills CurrentExtent
	var undefined uint32 = 0xFFFFFFFF
	sentinel := core1_0.Extent2D{Width: int(undefined), Height: int(undefined)}
	min := core1_0.Extent2D{Width: 100, Height: 100}
	max := core1_0.Extent2D{Width: 1920, Height: 1080}

	tests := []struct {
		name          string
		current       core1_0.Extent2D
		width, height int
		want          core1_0.Extent2D
	}{
		{"sentinel within bounds", sentinel, 800, 600, core1_0.Extent2D{Width: 800, Height: 600}},
		{"sentinel clamps up", sentinel, 10, 50, core1_0.Extent2D{Width: 100, Height: 100}},
		{"sentinel clamps down", sentinel, 4000, 3000, core1_0.Extent2D{Width: 1920, Height: 1080}},
		{"sentinel clamps per component", sentinel, 4000, 20, core1_0.Extent2D{Width: 1920, Height: 100}},
		{"current extent verbatim", core1_0.Extent2D{Width: 640, Height: 480}, 800, 600, core1_0.Extent2D{Width: 640, Height: 480}},
		{"current extent ignores bounds", core1_0.Extent2D{Width: 50, Height: 50}, 800, 600, core1_0.Extent2D{Width: 50, Height: 50}},
		{"negative width is not the sentinel", core1_0.Extent2D{Width: -1, Height: -1}, 800, 600, core1_0.Extent2D{Width: -1, Height: -1}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ChooseExtent(capabilities(test.current, min, max), test.width, test.height)
			qt.Assert(t, got, qt.Equals, test.want)
		})
	}
}

func TestChooseImageCount(t *testing.T) {
	c := qt.New(t)

	unbounded := &khr_surface.SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 0}
	c.Assert(ChooseImageCount(unbounded), qt.Equals, 3)

	capped := &khr_surface.SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 2}
	c.Assert(ChooseImageCount(capped), qt.Equals, 2)

	roomy := &khr_surface.SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 8}
	c.Assert(ChooseImageCount(roomy), qt.Equals, 3)
}

func TestNegotiateSwapchain(t *testing.T) {
	c := qt.New(t)

	support := SurfaceSupport{
		Capabilities: &khr_surface.SurfaceCapabilities{
			MinImageCount: 2,
			MaxImageCount: 0,
			CurrentExtent: core1_0.Extent2D{Width: 800, Height: 600},
		},
		Formats:      []khr_surface.SurfaceFormat{bgraSRGB},
		PresentModes: []khr_surface.PresentMode{khr_surface.PresentModeFIFO},
	}

	config := NegotiateSwapchain(support, 1024, 768)
	c.Assert(config, qt.DeepEquals, SwapchainConfig{
		SurfaceFormat: bgraSRGB,
		PresentMode:   khr_surface.PresentModeFIFO,
		Extent:        core1_0.Extent2D{Width: 800, Height: 600},
		ImageCount:    3,
	})
}
