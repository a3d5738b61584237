// Package window wraps the SDL window the triangle is presented to.
package window

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2"
)

// SDLWindow is a fixed-size Vulkan-capable SDL window. All methods must be
// called from the thread that created it.
type SDLWindow struct {
	window      *sdl.Window
	log         logrus.FieldLogger
	shouldClose bool
}

// New initialises SDL video and opens the window.
func New(title string, width, height int, log logrus.FieldLogger) (*SDLWindow, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, errors.Wrap(err, "init sdl")
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, int32(width), int32(height), sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN)
	if err != nil {
		sdl.Quit()
		return nil, errors.Wrap(err, "create window")
	}

	log.WithFields(logrus.Fields{
		"title":  title,
		"width":  width,
		"height": height,
	}).Debug("window created")

	return &SDLWindow{window: window, log: log}, nil
}

// Loader resolves Vulkan entry points through SDL's copy of the loader.
func (w *SDLWindow) Loader() (core.Loader, error) {
	loader, err := core.CreateLoaderFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		return nil, errors.Wrap(err, "create vulkan loader")
	}
	return loader, nil
}

func (w *SDLWindow) VulkanInstanceExtensions() []string {
	return w.window.VulkanGetInstanceExtensions()
}

func (w *SDLWindow) CreateSurface(instance core1_0.Instance) (khr_surface.Surface, error) {
	surfaceLoader := khr_surface.CreateExtensionFromInstance(instance)
	return vkng_sdl2.CreateSurface(instance, surfaceLoader, w.window)
}

// DrawableSize is the framebuffer size in pixels, which can differ from the
// window size on high-DPI displays.
func (w *SDLWindow) DrawableSize() (int, int) {
	width, height := w.window.VulkanGetDrawableSize()
	return int(width), int(height)
}

func (w *SDLWindow) PollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		w.handleEvent(event)
	}
}

func (w *SDLWindow) handleEvent(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		w.shouldClose = true
	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
			w.shouldClose = true
		}
	case *sdl.WindowEvent:
		// The swapchain is never recreated; the window is not resizable.
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			w.log.WithFields(logrus.Fields{
				"width":  e.Data1,
				"height": e.Data2,
			}).Warn("ignoring window resize")
		}
	}
}

func (w *SDLWindow) ShouldClose() bool {
	return w.shouldClose
}

// Destroy closes the window and shuts SDL down.
func (w *SDLWindow) Destroy() {
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	sdl.Quit()
}
