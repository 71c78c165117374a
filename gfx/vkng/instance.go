package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_surface"

	"github.com/vkngwrapper/rendercontext/gfx"
)

// Instance is a live Vulkan instance with the surface extension loaded, and
// the debug-utils extension when it was requested at creation.
type Instance struct {
	driver  core1_0.CoreInstanceDriver
	surface khr_surface.ExtensionDriver
	debug   ext_debug_utils.ExtensionDriver
}

// Driver returns the instance driver, for integrations creating surfaces.
func (i *Instance) Driver() core1_0.CoreInstanceDriver { return i.driver }

// SurfaceExtension returns the khr_surface driver surfaces are created with.
func (i *Instance) SurfaceExtension() khr_surface.ExtensionDriver { return i.surface }

func (i *Instance) Adapters() ([]gfx.Adapter, error) {
	devices, res, err := i.driver.EnumeratePhysicalDevices()
	if err != nil {
		return nil, backendError("vkEnumeratePhysicalDevices", res, err)
	}
	adapters := make([]gfx.Adapter, 0, len(devices))
	for _, device := range devices {
		adapter, err := newAdapter(i, device)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, adapter)
	}
	return adapters, nil
}

func (i *Instance) CreateDebugMessenger(info gfx.DebugMessengerCreateInfo) (gfx.DebugMessenger, error) {
	if i.debug == nil {
		return nil, errors.Newf("%s was not enabled on this instance", ext_debug_utils.ExtensionName)
	}
	messenger, res, err := i.debug.CreateDebugUtilsMessenger(nil, debugMessengerCreateInfo(info))
	if err != nil {
		return nil, backendError("vkCreateDebugUtilsMessengerEXT", res, err)
	}
	return messenger, nil
}

func (i *Instance) DestroyDebugMessenger(messenger gfx.DebugMessenger) {
	i.debug.DestroyDebugUtilsMessenger(messenger.(ext_debug_utils.DebugUtilsMessenger), nil)
}

func (i *Instance) DestroySurface(surface gfx.Surface) {
	i.surface.DestroySurface(surface.(khr_surface.Surface), nil)
}

func (i *Instance) Destroy() {
	i.driver.DestroyInstance(nil)
}

func debugMessengerCreateInfo(info gfx.DebugMessengerCreateInfo) ext_debug_utils.DebugUtilsMessengerCreateInfo {
	sink := info.Sink
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.DebugUtilsMessageSeverityFlags(info.Severities),
		MessageType:     ext_debug_utils.DebugUtilsMessageTypeFlags(info.Categories),
		UserCallback: func(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
			if sink != nil {
				sink.Message(gfx.DebugSeverity(severity), gfx.DebugCategory(msgType), data.Message)
			}
			return false
		},
	}
}
