package render

import (
	"sort"

	"github.com/vkngwrapper/core"
)

// CapabilitySet is a snapshot of the instance extensions and layers the
// loader reported. It is never mutated after construction.
type CapabilitySet struct {
	extensions map[string]struct{}
	layers     map[string]struct{}
}

// NewCapabilitySet builds a set from plain name lists.
func NewCapabilitySet(extensions, layers []string) CapabilitySet {
	set := CapabilitySet{
		extensions: make(map[string]struct{}, len(extensions)),
		layers:     make(map[string]struct{}, len(layers)),
	}
	for _, ext := range extensions {
		set.extensions[ext] = struct{}{}
	}
	for _, layer := range layers {
		set.layers[layer] = struct{}{}
	}
	return set
}

// QueryCapabilities enumerates what the loader offers at instance scope.
func QueryCapabilities(loader core.Loader) (CapabilitySet, error) {
	extensions, res, err := loader.AvailableExtensions()
	if err != nil {
		return CapabilitySet{}, creationFailed("enumerate instance extensions", res, err)
	}

	layers, res, err := loader.AvailableLayers()
	if err != nil {
		return CapabilitySet{}, creationFailed("enumerate instance layers", res, err)
	}

	set := CapabilitySet{
		extensions: make(map[string]struct{}, len(extensions)),
		layers:     make(map[string]struct{}, len(layers)),
	}
	for name := range extensions {
		set.extensions[name] = struct{}{}
	}
	for name := range layers {
		set.layers[name] = struct{}{}
	}
	return set, nil
}

func (s CapabilitySet) HasExtension(name string) bool {
	_, ok := s.extensions[name]
	return ok
}

func (s CapabilitySet) HasLayer(name string) bool {
	_, ok := s.layers[name]
	return ok
}

// Require fails on the first extension or layer that is not available.
// Extensions are checked before layers, each in the order given.
func (s CapabilitySet) Require(extensions, layers []string) error {
	for _, ext := range extensions {
		if !s.HasExtension(ext) {
			return capabilityMissing("create instance", "required extension not supported: %s", ext)
		}
	}
	for _, layer := range layers {
		if !s.HasLayer(layer) {
			return capabilityMissing("create instance", "required layer not supported: %s- install LunarG Vulkan SDK", layer)
		}
	}
	return nil
}

// Extensions returns the extension names in sorted order.
func (s CapabilitySet) Extensions() []string {
	return sortedKeys(s.extensions)
}

// Layers returns the layer names in sorted order.
func (s CapabilitySet) Layers() []string {
	return sortedKeys(s.layers)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
