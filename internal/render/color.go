package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/vkngwrapper/core/core1_0"
)

// encodesSRGB reports whether writes to format are sRGB-encoded by the
// hardware, so shader and clear values must be linear.
func encodesSRGB(format core1_0.Format) bool {
	switch format {
	case core1_0.FormatB8G8R8A8SRGB, core1_0.FormatR8G8B8A8SRGB:
		return true
	}
	return false
}

// linearColor decodes an sRGB-encoded colour. Alpha is already linear.
func linearColor(srgb mgl32.Vec4) mgl32.Vec4 {
	decode := func(v float32) float32 {
		v = mgl32.Clamp(v, 0, 1)
		if v <= 0.04045 {
			return v / 12.92
		}
		return float32(math.Pow((float64(v)+0.055)/1.055, 2.4))
	}

	return mgl32.Vec4{decode(srgb.X()), decode(srgb.Y()), decode(srgb.Z()), srgb.W()}
}

// clearValue is the configured clear colour in the encoding the swapchain
// format expects.
func (c *Context) clearValue() core1_0.ClearValueFloat {
	color := c.opts.ClearColor
	if encodesSRGB(c.swapchainConfig.SurfaceFormat.Format) {
		color = linearColor(color)
	}
	return core1_0.ClearValueFloat(color)
}
