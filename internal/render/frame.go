package render

import (
	"github.com/vkngwrapper/core/common"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_swapchain"
)

// frameDriver performs the individual steps of the per-frame protocol.
// drawFrame owns their ordering.
type frameDriver interface {
	waitForFrame() error
	resetFrameFence() error
	acquireImage() (int, error)
	recordFrame(imageIndex int) error
	submitFrame() error
	presentFrame(imageIndex int) error
}

// drawFrame renders and presents one frame. With a single frame in flight
// the fence wait is what makes re-recording the command buffer safe.
func drawFrame(d frameDriver) error {
	if err := d.waitForFrame(); err != nil {
		return err
	}

	if err := d.resetFrameFence(); err != nil {
		return err
	}

	imageIndex, err := d.acquireImage()
	if err != nil {
		return err
	}

	if err := d.recordFrame(imageIndex); err != nil {
		return err
	}

	if err := d.submitFrame(); err != nil {
		return err
	}

	return d.presentFrame(imageIndex)
}

func (c *Context) createSyncObjects() error {
	semaphore, res, err := c.device.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
	if err != nil {
		return creationFailed("create image available semaphore", res, err)
	}
	c.sync.ImageAvailable = semaphore

	semaphore, res, err = c.device.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
	if err != nil {
		return creationFailed("create render finished semaphore", res, err)
	}
	c.sync.RenderFinished = semaphore

	// Signaled so the very first wait returns immediately
	fence, res, err := c.device.CreateFence(nil, core1_0.FenceCreateInfo{
		Flags: core1_0.FenceCreateSignaled,
	})
	if err != nil {
		return creationFailed("create in flight fence", res, err)
	}
	c.sync.InFlight = fence

	return nil
}

func (c *Context) waitForFrame() error {
	res, err := c.device.WaitForFences(true, common.NoTimeout, []core1_0.Fence{c.sync.InFlight})
	return checkFrameStatus("wait for in flight fence", res, err)
}

func (c *Context) resetFrameFence() error {
	res, err := c.device.ResetFences([]core1_0.Fence{c.sync.InFlight})
	return checkFrameStatus("reset in flight fence", res, err)
}

func (c *Context) acquireImage() (int, error) {
	imageIndex, res, err := c.swapchain.AcquireNextImage(common.NoTimeout, c.sync.ImageAvailable, nil)
	if err := checkFrameStatus("acquire next image", res, err); err != nil {
		return 0, err
	}
	return imageIndex, nil
}

func (c *Context) recordFrame(imageIndex int) error {
	res, err := c.commandBuffer.Reset(0)
	if err := checkFrameStatus("reset command buffer", res, err); err != nil {
		return err
	}

	return c.recordCommandBuffer(c.commandBuffer, imageIndex)
}

func (c *Context) submitFrame() error {
	res, err := c.graphicsQueue.Submit(c.sync.InFlight, []core1_0.SubmitInfo{
		{
			WaitSemaphores:   []core1_0.Semaphore{c.sync.ImageAvailable},
			WaitDstStageMask: []core1_0.PipelineStageFlags{core1_0.PipelineStageColorAttachmentOutput},
			CommandBuffers:   []core1_0.CommandBuffer{c.commandBuffer},
			SignalSemaphores: []core1_0.Semaphore{c.sync.RenderFinished},
		},
	})
	return checkFrameStatus("submit draw command buffer", res, err)
}

func (c *Context) presentFrame(imageIndex int) error {
	res, err := c.swapchainExtension.QueuePresent(c.presentQueue, khr_swapchain.PresentInfo{
		WaitSemaphores: []core1_0.Semaphore{c.sync.RenderFinished},
		Swapchains:     []khr_swapchain.Swapchain{c.swapchain},
		ImageIndices:   []int{imageIndex},
	})
	return checkFrameStatus("present image", res, err)
}
