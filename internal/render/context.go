package render

import (
	"io/fs"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/ext_debug_utils"
	"github.com/vkngwrapper/extensions/khr_surface"
	"github.com/vkngwrapper/extensions/khr_swapchain"
)

// Window is what the context needs from the windowing system.
type Window interface {
	eventSource

	VulkanInstanceExtensions() []string
	CreateSurface(instance core1_0.Instance) (khr_surface.Surface, error)
	DrawableSize() (width, height int)
}

type eventSource interface {
	PollEvents()
	ShouldClose() bool
}

type Options struct {
	ApplicationName string

	// Validation enables ValidationLayers together with a debug messenger
	// that forwards driver diagnostics to the logger.
	Validation       bool
	ValidationLayers []string

	// RequirePortability makes the portability instance extensions
	// mandatory instead of enabling them only when the loader has them.
	RequirePortability bool

	// Shaders is searched for VertexShaderPath and FragmentShaderPath.
	Shaders fs.FS

	// ClearColor is sRGB-encoded and converted to linear when the swapchain
	// format is sRGB.
	ClearColor mgl32.Vec4

	// StatsInterval is how often frame statistics are logged at debug
	// level. Zero disables them.
	StatsInterval time.Duration
}

// FrameSync is the one set of synchronization objects shared by every frame.
type FrameSync struct {
	ImageAvailable core1_0.Semaphore
	RenderFinished core1_0.Semaphore
	InFlight       core1_0.Fence
}

// Context owns every GPU object needed to draw the triangle. Fields are
// declared in creation order; Destroy releases them in reverse.
//
// A Context is driven from a single goroutine locked to the main thread.
type Context struct {
	log    logrus.FieldLogger
	opts   Options
	loader core.Loader
	window Window

	capabilities CapabilitySet

	instance       core1_0.Instance
	debugMessenger ext_debug_utils.DebugUtilsMessenger
	surface        khr_surface.Surface

	physicalDevice core1_0.PhysicalDevice
	deviceInfo     DeviceInfo
	queueFamilies  QueueFamilyIndices
	device         core1_0.Device

	graphicsQueue core1_0.Queue
	presentQueue  core1_0.Queue

	swapchainExtension  khr_swapchain.Extension
	swapchain           khr_swapchain.Swapchain
	swapchainConfig     SwapchainConfig
	swapchainImages     []core1_0.Image
	swapchainImageViews []core1_0.ImageView

	renderPass            core1_0.RenderPass
	pipelineLayout        core1_0.PipelineLayout
	graphicsPipeline      core1_0.Pipeline
	swapchainFramebuffers []core1_0.Framebuffer

	commandPool   core1_0.CommandPool
	commandBuffer core1_0.CommandBuffer

	sync FrameSync
}

// NewContext runs every bring-up stage in order. If a stage fails, whatever
// was already created is destroyed before the error is returned.
func NewContext(loader core.Loader, window Window, opts Options, log logrus.FieldLogger) (*Context, error) {
	c := &Context{
		log:    log,
		opts:   opts,
		loader: loader,
		window: window,
	}

	stages := []func() error{
		c.createInstance,
		c.setupDebugMessenger,
		c.createSurface,
		c.pickPhysicalDevice,
		c.createLogicalDevice,
		c.createSwapchain,
		c.createImageViews,
		c.createRenderPass,
		c.createGraphicsPipeline,
		c.createFramebuffers,
		c.createCommandPool,
		c.createCommandBuffer,
		c.createSyncObjects,
	}

	for _, stage := range stages {
		if err := stage(); err != nil {
			if destroyErr := c.Destroy(); destroyErr != nil {
				log.WithError(destroyErr).Error("failed to release partially created context")
			}
			return nil, err
		}
	}

	log.WithFields(logrus.Fields{
		"format":      c.swapchainConfig.SurfaceFormat.Format,
		"colorSpace":  c.swapchainConfig.SurfaceFormat.ColorSpace,
		"presentMode": c.swapchainConfig.PresentMode,
		"extent":      c.swapchainConfig.Extent,
		"images":      len(c.swapchainImages),
	}).Info("rendering context ready")

	return c, nil
}

// DeviceInfo returns what was selected during bring-up.
func (c *Context) DeviceInfo() DeviceInfo {
	return c.deviceInfo
}

// SwapchainConfig returns the negotiated swapchain shape.
func (c *Context) SwapchainConfig() SwapchainConfig {
	return c.swapchainConfig
}
