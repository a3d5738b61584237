package render

// Destroy waits for the device to go idle and then releases everything in
// reverse creation order. It is safe on a partially constructed context.
// A destroyed Context cannot be used again, and calling Destroy a second
// time is not supported.
func (c *Context) Destroy() error {
	if c.device != nil {
		res, err := c.device.WaitIdle()
		if err != nil {
			return syncFailed("wait for device idle", res, err)
		}
	}

	if c.sync.RenderFinished != nil {
		c.sync.RenderFinished.Destroy(nil)
	}

	if c.sync.ImageAvailable != nil {
		c.sync.ImageAvailable.Destroy(nil)
	}

	if c.sync.InFlight != nil {
		c.sync.InFlight.Destroy(nil)
	}
	c.sync = FrameSync{}

	// Frees the command buffer along with it
	if c.commandPool != nil {
		c.commandPool.Destroy(nil)
		c.commandPool = nil
		c.commandBuffer = nil
	}

	for _, framebuffer := range c.swapchainFramebuffers {
		framebuffer.Destroy(nil)
	}
	c.swapchainFramebuffers = nil

	if c.graphicsPipeline != nil {
		c.graphicsPipeline.Destroy(nil)
		c.graphicsPipeline = nil
	}

	if c.pipelineLayout != nil {
		c.pipelineLayout.Destroy(nil)
		c.pipelineLayout = nil
	}

	if c.renderPass != nil {
		c.renderPass.Destroy(nil)
		c.renderPass = nil
	}

	for _, imageView := range c.swapchainImageViews {
		imageView.Destroy(nil)
	}
	c.swapchainImageViews = nil
	c.swapchainImages = nil

	if c.swapchain != nil {
		c.swapchain.Destroy(nil)
		c.swapchain = nil
	}

	if c.surface != nil {
		c.surface.Destroy(nil)
		c.surface = nil
	}

	if c.device != nil {
		c.device.Destroy(nil)
		c.device = nil
		c.graphicsQueue = nil
		c.presentQueue = nil
	}

	if c.debugMessenger != nil {
		c.debugMessenger.Destroy(nil)
		c.debugMessenger = nil
	}

	if c.instance != nil {
		c.instance.Destroy(nil)
		c.instance = nil
	}

	c.log.Debug("rendering context destroyed")
	return nil
}
