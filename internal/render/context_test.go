package render

import (
	"testing"

	"github.com/cockroachdb/errors"
	qt "github.com/frankban/quicktest"
	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/vkngwrapper/core/common"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/core/driver"
	"github.com/vkngwrapper/core/mocks"
	"github.com/vkngwrapper/extensions/khr_surface"
	mock_surface "github.com/vkngwrapper/extensions/khr_surface/mocks"
)

type fakeWindow struct {
	fakeEvents

	extensions    []string
	surface       khr_surface.Surface
	width, height int
}

func (w *fakeWindow) VulkanInstanceExtensions() []string { return w.extensions }

func (w *fakeWindow) CreateSurface(core1_0.Instance) (khr_surface.Surface, error) {
	return w.surface, nil
}

func (w *fakeWindow) DrawableSize() (int, int) { return w.width, w.height }

// assertFailure checks that err is an *Error of the given kind carrying res.
func assertFailure(c *qt.C, err error, kind ErrorKind, res common.VkResult) {
	c.Helper()

	var rerr *Error
	c.Assert(errors.As(err, &rerr), qt.IsTrue, qt.Commentf("%v", err))
	c.Assert(rerr.Kind, qt.Equals, kind)
	c.Assert(rerr.Result, qt.Equals, res)
}

func availableExtensions(names ...string) map[string]*core1_0.ExtensionProperties {
	extensions := make(map[string]*core1_0.ExtensionProperties, len(names))
	for _, name := range names {
		extensions[name] = &core1_0.ExtensionProperties{ExtensionName: name}
	}
	return extensions
}

func TestNewContextReleasesPartialState(t *testing.T) {
	c := qt.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := mocks.NewMockLoader(ctrl)
	instance := mocks.NewMockInstance(ctrl)
	surface := mock_surface.NewMockSurface(ctrl)
	window := &fakeWindow{extensions: []string{"VK_KHR_surface"}, surface: surface}

	loader.EXPECT().AvailableExtensions().Return(availableExtensions("VK_KHR_surface"), core1_0.VKSuccess, nil)
	loader.EXPECT().AvailableLayers().Return(map[string]*core1_0.LayerProperties{}, core1_0.VKSuccess, nil)
	loader.EXPECT().CreateInstance(nil, gomock.Any()).
		DoAndReturn(func(_ *driver.AllocationCallbacks, info core1_0.InstanceCreateInfo) (core1_0.Instance, common.VkResult, error) {
			c.Check(info.EnabledExtensionNames, qt.DeepEquals, []string{"VK_KHR_surface"})
			c.Check(info.EnabledLayerNames, qt.HasLen, 0)
			c.Check(info.Flags, qt.Equals, core1_0.InstanceCreateFlags(0))
			return instance, core1_0.VKSuccess, nil
		})

	// No GPUs stops bring-up after the surface exists
	instance.EXPECT().EnumeratePhysicalDevices().Return([]core1_0.PhysicalDevice{}, core1_0.VKSuccess, nil)

	gomock.InOrder(
		surface.EXPECT().Destroy(nil),
		instance.EXPECT().Destroy(nil),
	)

	log, _ := test.NewNullLogger()
	rc, err := NewContext(loader, window, Options{ApplicationName: "triangle"}, log)
	c.Assert(rc, qt.IsNil)
	c.Assert(err, qt.ErrorMatches, `pick physical device: capability missing: failed to find GPUs with Vulkan support`)
	assertFailure(c, err, CapabilityMissing, noResult)
}

func TestNewContextMissingWindowExtension(t *testing.T) {
	c := qt.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// CreateInstance is never expected, so nothing may be created
	loader := mocks.NewMockLoader(ctrl)
	loader.EXPECT().AvailableExtensions().Return(availableExtensions("VK_KHR_surface"), core1_0.VKSuccess, nil)
	loader.EXPECT().AvailableLayers().Return(map[string]*core1_0.LayerProperties{}, core1_0.VKSuccess, nil)

	window := &fakeWindow{extensions: []string{"VK_KHR_surface", "VK_KHR_wayland_surface"}}

	log, _ := test.NewNullLogger()
	rc, err := NewContext(loader, window, Options{}, log)
	c.Assert(rc, qt.IsNil)
	c.Assert(err, qt.ErrorMatches, `create instance: capability missing: required extension not supported: VK_KHR_wayland_surface`)
	assertFailure(c, err, CapabilityMissing, noResult)
}

func TestNewContextEnumerationFailure(t *testing.T) {
	c := qt.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := mocks.NewMockLoader(ctrl)
	loader.EXPECT().AvailableExtensions().Return(nil, core1_0.VKErrorInitializationFailed, core1_0.VKErrorInitializationFailed.ToError())

	log, _ := test.NewNullLogger()
	_, err := NewContext(loader, &fakeWindow{}, Options{}, log)
	assertFailure(c, err, ResourceCreation, core1_0.VKErrorInitializationFailed)
}
