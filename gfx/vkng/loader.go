// Package vkng implements the gfx backend on top of vkngwrapper.
package vkng

import (
	"sort"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
	"github.com/vkngwrapper/extensions/v3/khr_surface"

	"github.com/vkngwrapper/rendercontext/gfx"
)

// APIVersion is the Vulkan version instances are created for.
var APIVersion = common.Vulkan1_2

// Loader wraps the global driver.
type Loader struct {
	driver core1_0.GlobalDriver
}

// NewLoader wraps an existing global driver.
func NewLoader(driver core1_0.GlobalDriver) *Loader {
	return &Loader{driver: driver}
}

// NewLoaderFromProcAddr builds a loader from a vkGetInstanceProcAddr pointer,
// as handed out by windowing libraries.
func NewLoaderFromProcAddr(procAddr unsafe.Pointer) (*Loader, error) {
	driver, err := core.CreateDriverFromProcAddr(procAddr)
	if err != nil {
		return nil, errors.Wrap(err, "load vulkan")
	}
	return NewLoader(driver), nil
}

// NewSystemLoader loads the system Vulkan library directly.
func NewSystemLoader() (*Loader, error) {
	driver, err := core.CreateSystemDriver()
	if err != nil {
		return nil, errors.Wrap(err, "load vulkan")
	}
	return NewLoader(driver), nil
}

func (l *Loader) AvailableLayers() ([]string, error) {
	layers, res, err := l.driver.AvailableLayers()
	if err != nil {
		return nil, backendError("vkEnumerateInstanceLayerProperties", res, err)
	}
	names := make([]string, 0, len(layers))
	for name := range layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (l *Loader) AvailableExtensions() ([]string, error) {
	extensions, res, err := l.driver.AvailableExtensions()
	if err != nil {
		return nil, backendError("vkEnumerateInstanceExtensionProperties", res, err)
	}
	names := make([]string, 0, len(extensions))
	for name := range extensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (l *Loader) CreateInstance(info gfx.InstanceCreateInfo) (gfx.Instance, error) {
	createInfo := core1_0.InstanceCreateInfo{
		ApplicationName:       info.ApplicationName,
		ApplicationVersion:    common.Version(info.ApplicationVersion),
		EngineName:            info.EngineName,
		EngineVersion:         common.CreateVersion(1, 0, 0),
		APIVersion:            APIVersion,
		EnabledExtensionNames: info.EnabledExtensions,
		EnabledLayerNames:     info.EnabledLayers,
	}
	if info.EnumeratePortability {
		createInfo.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}
	if info.Debug != nil {
		createInfo.Next = debugMessengerCreateInfo(*info.Debug)
	}

	handle, res, err := l.driver.CreateInstance(nil, createInfo)
	if err != nil {
		return nil, backendError("vkCreateInstance", res, err)
	}
	driver, err := l.driver.BuildInstanceDriver(handle)
	if err != nil {
		return nil, errors.Wrap(err, "load instance functions")
	}

	instance := &Instance{
		driver:  driver,
		surface: khr_surface.CreateExtensionDriverFromCoreDriver(driver),
	}
	if info.Debug != nil {
		instance.debug = ext_debug_utils.CreateExtensionDriverFromCoreDriver(driver)
	}
	return instance, nil
}

func backendError(call string, res common.VkResult, err error) error {
	return errors.WithStack(&gfx.BackendError{Call: call, Result: res.String(), Err: err})
}
