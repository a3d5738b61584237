package render

import (
	"github.com/vkngwrapper/core/core1_0"
)

func (c *Context) createCommandPool() error {
	pool, res, err := c.device.CreateCommandPool(nil, core1_0.CommandPoolCreateInfo{
		Flags:            core1_0.CommandPoolCreateResetBuffer,
		QueueFamilyIndex: *c.queueFamilies.GraphicsFamily,
	})
	if err != nil {
		return creationFailed("create command pool", res, err)
	}
	c.commandPool = pool

	return nil
}

func (c *Context) createCommandBuffer() error {
	buffers, res, err := c.device.AllocateCommandBuffers(core1_0.CommandBufferAllocateInfo{
		CommandPool:        c.commandPool,
		Level:              core1_0.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	})
	if err != nil {
		return creationFailed("allocate command buffer", res, err)
	}
	c.commandBuffer = buffers[0]

	return nil
}

// recordCommandBuffer writes the whole frame into buffer, targeting the
// framebuffer of the given swapchain image. buffer must not be pending.
func (c *Context) recordCommandBuffer(buffer core1_0.CommandBuffer, imageIndex int) error {
	res, err := buffer.Begin(core1_0.CommandBufferBeginInfo{})
	if err := checkFrameStatus("begin recording command buffer", res, err); err != nil {
		return err
	}

	err = buffer.CmdBeginRenderPass(core1_0.SubpassContentsInline,
		core1_0.RenderPassBeginInfo{
			RenderPass:  c.renderPass,
			Framebuffer: c.swapchainFramebuffers[imageIndex],
			RenderArea:  c.fullScissor(),
			ClearValues: []core1_0.ClearValue{
				c.clearValue(),
			},
		})
	if err != nil {
		return syncFailed("begin render pass", noResult, err)
	}

	buffer.CmdBindPipeline(core1_0.PipelineBindPointGraphics, c.graphicsPipeline)
	buffer.CmdSetViewport([]core1_0.Viewport{c.fullViewport()})
	buffer.CmdSetScissor([]core1_0.Rect2D{c.fullScissor()})
	buffer.CmdDraw(3, 1, 0, 0)
	buffer.CmdEndRenderPass()

	res, err = buffer.End()
	return checkFrameStatus("record command buffer", res, err)
}
