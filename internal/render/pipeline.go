package render

import (
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_swapchain"
)

func (c *Context) createRenderPass() error {
	renderPass, res, err := c.device.CreateRenderPass(nil, core1_0.RenderPassCreateInfo{
		Attachments: []core1_0.AttachmentDescription{
			{
				Format:         c.swapchainConfig.SurfaceFormat.Format,
				Samples:        core1_0.Samples1,
				LoadOp:         core1_0.AttachmentLoadOpClear,
				StoreOp:        core1_0.AttachmentStoreOpStore,
				StencilLoadOp:  core1_0.AttachmentLoadOpDontCare,
				StencilStoreOp: core1_0.AttachmentStoreOpDontCare,
				InitialLayout:  core1_0.ImageLayoutUndefined,
				FinalLayout:    khr_swapchain.ImageLayoutPresentSrc,
			},
		},
		Subpasses: []core1_0.SubpassDescription{
			{
				PipelineBindPoint: core1_0.PipelineBindPointGraphics,
				ColorAttachments: []core1_0.AttachmentReference{
					{
						Attachment: 0,
						Layout:     core1_0.ImageLayoutColorAttachmentOptimal,
					},
				},
			},
		},
		// The colour write waits for the presentation engine to release
		// the image, which is signalled at this stage
		SubpassDependencies: []core1_0.SubpassDependency{
			{
				SrcSubpass: core1_0.SubpassExternal,
				DstSubpass: 0,

				SrcStageMask:  core1_0.PipelineStageColorAttachmentOutput,
				SrcAccessMask: 0,

				DstStageMask:  core1_0.PipelineStageColorAttachmentOutput,
				DstAccessMask: core1_0.AccessColorAttachmentWrite,
			},
		},
	})
	if err != nil {
		return creationFailed("create render pass", res, err)
	}

	c.renderPass = renderPass

	return nil
}

func (c *Context) createGraphicsPipeline() error {
	vertShader, err := loadShaderModule(c.opts.Shaders, VertexShaderPath, c.createShaderModule)
	if err != nil {
		return err
	}
	defer vertShader.Destroy(nil)

	fragShader, err := loadShaderModule(c.opts.Shaders, FragmentShaderPath, c.createShaderModule)
	if err != nil {
		return err
	}
	defer fragShader.Destroy(nil)

	// The vertex shader derives positions from gl_VertexIndex
	vertexInput := &core1_0.PipelineVertexInputStateCreateInfo{}

	inputAssembly := &core1_0.PipelineInputAssemblyStateCreateInfo{
		Topology:               core1_0.PrimitiveTopologyTriangleList,
		PrimitiveRestartEnable: false,
	}

	vertStage := core1_0.PipelineShaderStageCreateInfo{
		Stage:  core1_0.StageVertex,
		Module: vertShader,
		Name:   "main",
	}

	fragStage := core1_0.PipelineShaderStageCreateInfo{
		Stage:  core1_0.StageFragment,
		Module: fragShader,
		Name:   "main",
	}

	// Counts only; the actual rectangles are set while recording
	viewport := &core1_0.PipelineViewportStateCreateInfo{
		Viewports: []core1_0.Viewport{c.fullViewport()},
		Scissors:  []core1_0.Rect2D{c.fullScissor()},
	}

	dynamicState := &core1_0.PipelineDynamicStateCreateInfo{
		DynamicStates: []core1_0.DynamicState{
			core1_0.DynamicStateViewport,
			core1_0.DynamicStateScissor,
		},
	}

	rasterization := &core1_0.PipelineRasterizationStateCreateInfo{
		DepthClampEnable:        false,
		RasterizerDiscardEnable: false,

		PolygonMode: core1_0.PolygonModeFill,
		CullMode:    core1_0.CullModeBack,
		FrontFace:   core1_0.FrontFaceClockwise,

		DepthBiasEnable: false,

		LineWidth: 1.0,
	}

	multisample := &core1_0.PipelineMultisampleStateCreateInfo{
		SampleShadingEnable:  false,
		RasterizationSamples: core1_0.Samples1,
		MinSampleShading:     1.0,
	}

	colorBlend := &core1_0.PipelineColorBlendStateCreateInfo{
		LogicOpEnabled: false,
		LogicOp:        core1_0.LogicOpCopy,

		BlendConstants: [4]float32{0, 0, 0, 0},
		Attachments: []core1_0.PipelineColorBlendAttachmentState{
			{
				BlendEnabled:   false,
				ColorWriteMask: core1_0.ColorComponentRed | core1_0.ColorComponentGreen | core1_0.ColorComponentBlue | core1_0.ColorComponentAlpha,
			},
		},
	}

	pipelineLayout, res, err := c.device.CreatePipelineLayout(nil, core1_0.PipelineLayoutCreateInfo{})
	if err != nil {
		return creationFailed("create pipeline layout", res, err)
	}
	c.pipelineLayout = pipelineLayout

	pipelines, res, err := c.device.CreateGraphicsPipelines(nil, nil, []core1_0.GraphicsPipelineCreateInfo{
		{
			Stages: []core1_0.PipelineShaderStageCreateInfo{
				vertStage,
				fragStage,
			},
			VertexInputState:   vertexInput,
			InputAssemblyState: inputAssembly,
			ViewportState:      viewport,
			RasterizationState: rasterization,
			MultisampleState:   multisample,
			ColorBlendState:    colorBlend,
			DynamicState:       dynamicState,
			Layout:             c.pipelineLayout,
			RenderPass:         c.renderPass,
			Subpass:            0,
			BasePipelineIndex:  -1,
		},
	})
	if err != nil {
		return creationFailed("create graphics pipeline", res, err)
	}
	c.graphicsPipeline = pipelines[0]

	return nil
}

func (c *Context) createFramebuffers() error {
	for _, imageView := range c.swapchainImageViews {
		framebuffer, res, err := c.device.CreateFramebuffer(nil, core1_0.FramebufferCreateInfo{
			RenderPass: c.renderPass,
			Layers:     1,
			Attachments: []core1_0.ImageView{
				imageView,
			},
			Width:  c.swapchainConfig.Extent.Width,
			Height: c.swapchainConfig.Extent.Height,
		})
		if err != nil {
			return creationFailed("create framebuffer", res, err)
		}

		c.swapchainFramebuffers = append(c.swapchainFramebuffers, framebuffer)
	}

	return nil
}

func (c *Context) fullViewport() core1_0.Viewport {
	return fullViewport(c.swapchainConfig.Extent)
}

func (c *Context) fullScissor() core1_0.Rect2D {
	return core1_0.Rect2D{
		Offset: core1_0.Offset2D{X: 0, Y: 0},
		Extent: c.swapchainConfig.Extent,
	}
}

func fullViewport(extent core1_0.Extent2D) core1_0.Viewport {
	return core1_0.Viewport{
		X:        0,
		Y:        0,
		Width:    float32(extent.Width),
		Height:   float32(extent.Height),
		MinDepth: 0,
		MaxDepth: 1,
	}
}
