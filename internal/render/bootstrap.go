package render

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/common"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/ext_debug_utils"
	"github.com/vkngwrapper/extensions/khr_portability_subset"
	"github.com/vkngwrapper/extensions/khr_swapchain"
)

const (
	portabilityEnumerationExtensionName       = "VK_KHR_portability_enumeration"
	getPhysicalDeviceProperties2ExtensionName = "VK_KHR_get_physical_device_properties2"
)

// Lets the loader report portability implementations such as MoltenVK.
const instanceCreateEnumeratePortability core1_0.InstanceCreateFlags = 0x00000001

var portabilityExtensions = []string{
	portabilityEnumerationExtensionName,
	getPhysicalDeviceProperties2ExtensionName,
}

var deviceExtensions = []string{khr_swapchain.ExtensionName}

// DeviceInfo identifies the physical device bring-up settled on.
type DeviceInfo struct {
	Name      string
	VendorID  uint32
	DeviceID  uint32
	CacheUUID uuid.UUID
}

// instanceRequirements lists what the instance must be created with given
// the window's extensions and what the loader offers.
func instanceRequirements(caps CapabilitySet, windowExtensions []string, opts Options) (extensions, layers []string) {
	extensions = append(extensions, windowExtensions...)

	for _, ext := range portabilityExtensions {
		if opts.RequirePortability || caps.HasExtension(ext) {
			extensions = append(extensions, ext)
		}
	}

	if opts.Validation {
		extensions = append(extensions, ext_debug_utils.ExtensionName)
		layers = append(layers, opts.ValidationLayers...)
	}

	return extensions, layers
}

func (c *Context) createInstance() error {
	var err error
	c.capabilities, err = QueryCapabilities(c.loader)
	if err != nil {
		return err
	}

	c.log.WithFields(logrus.Fields{
		"extensions": c.capabilities.Extensions(),
		"layers":     c.capabilities.Layers(),
	}).Debug("instance capabilities")

	extensions, layers := instanceRequirements(c.capabilities, c.window.VulkanInstanceExtensions(), c.opts)
	if err := c.capabilities.Require(extensions, layers); err != nil {
		return err
	}

	instanceOptions := core1_0.InstanceCreateInfo{
		ApplicationName:       c.opts.ApplicationName,
		ApplicationVersion:    common.CreateVersion(1, 0, 0),
		EngineName:            "No Engine",
		EngineVersion:         common.CreateVersion(1, 0, 0),
		APIVersion:            common.Vulkan1_2,
		EnabledExtensionNames: extensions,
		EnabledLayerNames:     layers,
	}

	if c.capabilities.HasExtension(portabilityEnumerationExtensionName) {
		instanceOptions.Flags |= instanceCreateEnumeratePortability
	}

	if c.opts.Validation {
		c.log.WithField("layers", layers).Warn("validation layers enabled")
		// Covers messages emitted during instance creation itself
		instanceOptions.Next = c.debugMessengerOptions()
	}

	instance, res, err := c.loader.CreateInstance(nil, instanceOptions)
	if err != nil {
		return creationFailed("create instance", res, err)
	}
	c.instance = instance

	return nil
}

func (c *Context) debugMessengerOptions() ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback:    c.logDebug,
	}
}

func (c *Context) setupDebugMessenger() error {
	if !c.opts.Validation {
		return nil
	}

	debugLoader := ext_debug_utils.CreateExtensionFromInstance(c.instance)
	messenger, res, err := debugLoader.CreateDebugUtilsMessenger(c.instance, nil, c.debugMessengerOptions())
	if err != nil {
		return creationFailed("create debug messenger", res, err)
	}
	c.debugMessenger = messenger

	return nil
}

func (c *Context) logDebug(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	entry := c.log.WithFields(logrus.Fields{
		"type":     msgType.String(),
		"severity": severity.String(),
	})

	if severity&ext_debug_utils.SeverityError != 0 {
		entry.Error(data.Message)
	} else {
		entry.Warn(data.Message)
	}
	return false
}

func (c *Context) createSurface() error {
	surface, err := c.window.CreateSurface(c.instance)
	if err != nil {
		return creationFailed("create window surface", noResult, err)
	}

	c.surface = surface
	return nil
}

// deviceEvaluation is everything suitability is decided on.
type deviceEvaluation struct {
	Indices             QueueFamilyIndices
	Support             SurfaceSupport
	ExtensionsSupported bool
}

func (e deviceEvaluation) Suitable() bool {
	return e.Indices.Shared() && e.ExtensionsSupported && e.Support.Adequate()
}

// firstSuitable returns the index of the first candidate, in enumeration
// order, whose evaluation is suitable, or -1. There is no ranking.
func firstSuitable[T any](candidates []T, evaluate func(T) (deviceEvaluation, error)) (int, deviceEvaluation, error) {
	for idx, candidate := range candidates {
		evaluation, err := evaluate(candidate)
		if err != nil {
			return -1, evaluation, err
		}

		if evaluation.Suitable() {
			return idx, evaluation, nil
		}
	}

	return -1, deviceEvaluation{}, nil
}

func (c *Context) pickPhysicalDevice() error {
	physicalDevices, res, err := c.instance.EnumeratePhysicalDevices()
	if err != nil {
		return creationFailed("enumerate physical devices", res, err)
	}

	if len(physicalDevices) == 0 {
		return capabilityMissing("pick physical device", "failed to find GPUs with Vulkan support")
	}
	c.log.WithField("count", len(physicalDevices)).Debug("found physical devices")

	idx, evaluation, err := firstSuitable(physicalDevices, c.evaluateDevice)
	if err != nil {
		return err
	}

	if idx < 0 {
		return capabilityMissing("pick physical device", "failed to find a suitable GPU")
	}

	c.physicalDevice = physicalDevices[idx]
	c.queueFamilies = evaluation.Indices

	properties, err := c.physicalDevice.Properties()
	if err != nil {
		return creationFailed("query device properties", noResult, err)
	}

	c.deviceInfo = DeviceInfo{
		Name:      properties.DriverName,
		VendorID:  uint32(properties.VendorID),
		DeviceID:  uint32(properties.DeviceID),
		CacheUUID: properties.PipelineCacheUUID,
	}

	c.log.WithFields(logrus.Fields{
		"device":      c.deviceInfo.Name,
		"vendor":      c.deviceInfo.VendorID,
		"cache":       c.deviceInfo.CacheUUID.String(),
		"queueFamily": *c.queueFamilies.GraphicsFamily,
	}).Info("picked physical device")

	return nil
}

func (c *Context) evaluateDevice(device core1_0.PhysicalDevice) (deviceEvaluation, error) {
	var evaluation deviceEvaluation
	var err error

	evaluation.Indices, err = c.findQueueFamilies(device)
	if err != nil {
		return evaluation, err
	}

	evaluation.ExtensionsSupported, err = c.checkDeviceExtensionSupport(device)
	if err != nil {
		return evaluation, err
	}

	evaluation.Support, err = c.querySurfaceSupport(device)
	return evaluation, err
}

func (c *Context) checkDeviceExtensionSupport(device core1_0.PhysicalDevice) (bool, error) {
	extensions, res, err := device.EnumerateDeviceExtensionProperties()
	if err != nil {
		return false, creationFailed("enumerate device extensions", res, err)
	}

	for _, extension := range deviceExtensions {
		_, hasExtension := extensions[extension]
		if !hasExtension {
			return false, nil
		}
	}

	return true, nil
}

func (c *Context) createLogicalDevice() error {
	queueFamily := *c.queueFamilies.GraphicsFamily

	var extensionNames []string
	extensionNames = append(extensionNames, deviceExtensions...)

	// Required on portability implementations such as MoltenVK
	extensions, res, err := c.physicalDevice.EnumerateDeviceExtensionProperties()
	if err != nil {
		return creationFailed("enumerate device extensions", res, err)
	}

	_, supported := extensions[khr_portability_subset.ExtensionName]
	if supported {
		extensionNames = append(extensionNames, khr_portability_subset.ExtensionName)
	}

	device, res, err := c.physicalDevice.CreateDevice(nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos: []core1_0.DeviceQueueCreateInfo{
			{
				QueueFamilyIndex: queueFamily,
				QueuePriorities:  []float32{1.0},
			},
		},
		EnabledFeatures:       &core1_0.PhysicalDeviceFeatures{},
		EnabledExtensionNames: extensionNames,
	})
	if err != nil {
		return creationFailed("create logical device", res, err)
	}
	c.device = device

	// One queue serves both roles
	c.graphicsQueue = c.device.GetQueue(queueFamily, 0)
	c.presentQueue = c.device.GetQueue(queueFamily, 0)
	return nil
}
