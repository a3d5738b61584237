package render

import (
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
	"github.com/vkngwrapper/extensions/khr_swapchain"
)

func (c *Context) createSwapchain() error {
	if c.swapchainExtension == nil {
		c.swapchainExtension = khr_swapchain.CreateExtensionFromDevice(c.device)
	}

	support, err := c.querySurfaceSupport(c.physicalDevice)
	if err != nil {
		return err
	}

	width, height := c.window.DrawableSize()
	config := NegotiateSwapchain(support, width, height)

	c.log.WithFields(logrus.Fields{
		"minImages": support.Capabilities.MinImageCount,
		"maxImages": support.Capabilities.MaxImageCount,
		"drawable":  []int{width, height},
	}).Debug("negotiated swapchain")

	// Graphics and present share a family, so images are never handed
	// between queue families.
	swapchain, res, err := c.swapchainExtension.CreateSwapchain(c.device, nil, khr_swapchain.SwapchainCreateInfo{
		Surface: c.surface,

		MinImageCount:    config.ImageCount,
		ImageFormat:      config.SurfaceFormat.Format,
		ImageColorSpace:  config.SurfaceFormat.ColorSpace,
		ImageExtent:      config.Extent,
		ImageArrayLayers: 1,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode: core1_0.SharingModeExclusive,

		PreTransform:   support.Capabilities.CurrentTransform,
		CompositeAlpha: khr_surface.CompositeAlphaOpaque,
		PresentMode:    config.PresentMode,
		Clipped:        true,
	})
	if err != nil {
		return creationFailed("create swapchain", res, err)
	}
	c.swapchain = swapchain
	c.swapchainConfig = config

	return nil
}

func (c *Context) createImageViews() error {
	images, res, err := c.swapchain.SwapchainImages()
	if err != nil {
		return creationFailed("get swapchain images", res, err)
	}
	c.swapchainImages = images

	for _, image := range images {
		// The zero component mapping is the identity swizzle
		view, res, err := c.device.CreateImageView(nil, core1_0.ImageViewCreateInfo{
			Image:    image,
			ViewType: core1_0.ImageViewType2D,
			Format:   c.swapchainConfig.SurfaceFormat.Format,
			SubresourceRange: core1_0.ImageSubresourceRange{
				AspectMask:     core1_0.ImageAspectColor,
				BaseMipLevel:   0,
				LevelCount:     1,
				BaseArrayLayer: 0,
				LayerCount:     1,
			},
		})
		if err != nil {
			return creationFailed("create image view", res, err)
		}

		c.swapchainImageViews = append(c.swapchainImageViews, view)
	}

	return nil
}
