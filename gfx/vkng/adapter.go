package vkng

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/vkngwrapper/rendercontext/gfx"
)

// Adapter is a physical device of an Instance.
type Adapter struct {
	instance *Instance
	device   core1_0.PhysicalDevice
	info     gfx.AdapterInfo
}

func newAdapter(instance *Instance, device core1_0.PhysicalDevice) (*Adapter, error) {
	properties, err := instance.driver.GetPhysicalDeviceProperties(device)
	if err != nil {
		return nil, errors.Wrap(err, "get physical device properties")
	}
	return &Adapter{
		instance: instance,
		device:   device,
		info: gfx.AdapterInfo{
			Name: properties.DriverName,
			Type: gfx.AdapterType(properties.DriverType),
		},
	}, nil
}

func (a *Adapter) Info() gfx.AdapterInfo { return a.info }

func (a *Adapter) QueueFamilies() []gfx.QueueFamilyProperties {
	var families []gfx.QueueFamilyProperties
	for _, family := range a.instance.driver.GetPhysicalDeviceQueueFamilyProperties(a.device) {
		families = append(families, gfx.QueueFamilyProperties{
			Flags:      gfx.QueueFlags(family.QueueFlags),
			QueueCount: family.QueueCount,
		})
	}
	return families
}

func (a *Adapter) Extensions() ([]string, error) {
	extensions, res, err := a.instance.driver.EnumerateDeviceExtensionProperties(a.device)
	if err != nil {
		return nil, backendError("vkEnumerateDeviceExtensionProperties", res, err)
	}
	names := make([]string, 0, len(extensions))
	for name := range extensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (a *Adapter) SurfaceSupport(surface gfx.Surface, family int) (bool, error) {
	supported, res, err := a.instance.surface.GetPhysicalDeviceSurfaceSupport(surface.(khr_surface.Surface), a.device, family)
	if err != nil {
		return false, backendError("vkGetPhysicalDeviceSurfaceSupportKHR", res, err)
	}
	return supported, nil
}

func (a *Adapter) SurfaceCapabilities(surface gfx.Surface) (gfx.SurfaceCapabilities, error) {
	caps, res, err := a.instance.surface.GetPhysicalDeviceSurfaceCapabilities(surface.(khr_surface.Surface), a.device)
	if err != nil {
		return gfx.SurfaceCapabilities{}, backendError("vkGetPhysicalDeviceSurfaceCapabilitiesKHR", res, err)
	}
	return gfx.SurfaceCapabilities{
		MinImageCount:       caps.MinImageCount,
		MaxImageCount:       caps.MaxImageCount,
		CurrentExtent:       extent(caps.CurrentExtent),
		MinImageExtent:      extent(caps.MinImageExtent),
		MaxImageExtent:      extent(caps.MaxImageExtent),
		SupportedTransforms: gfx.SurfaceTransform(caps.SupportedTransforms),
		CurrentTransform:    gfx.SurfaceTransform(caps.CurrentTransform),
	}, nil
}

func (a *Adapter) SurfaceFormats(surface gfx.Surface) ([]gfx.SurfaceFormat, error) {
	formats, res, err := a.instance.surface.GetPhysicalDeviceSurfaceFormats(surface.(khr_surface.Surface), a.device)
	if err != nil {
		return nil, backendError("vkGetPhysicalDeviceSurfaceFormatsKHR", res, err)
	}
	out := make([]gfx.SurfaceFormat, 0, len(formats))
	for _, f := range formats {
		out = append(out, gfx.SurfaceFormat{
			Format:     gfx.Format(f.Format),
			ColorSpace: gfx.ColorSpace(f.ColorSpace),
		})
	}
	return out, nil
}

func (a *Adapter) SurfacePresentModes(surface gfx.Surface) ([]gfx.PresentMode, error) {
	modes, res, err := a.instance.surface.GetPhysicalDeviceSurfacePresentModes(surface.(khr_surface.Surface), a.device)
	if err != nil {
		return nil, backendError("vkGetPhysicalDeviceSurfacePresentModesKHR", res, err)
	}
	out := make([]gfx.PresentMode, 0, len(modes))
	for _, m := range modes {
		out = append(out, gfx.PresentMode(m))
	}
	return out, nil
}

// CreateDevice creates the logical device. Device layers are deprecated and
// the driver does not take them, so info.EnabledLayers is not forwarded.
func (a *Adapter) CreateDevice(info gfx.DeviceCreateInfo) (gfx.Device, error) {
	queues := make([]core1_0.DeviceQueueCreateInfo, 0, len(info.QueueCreateInfos))
	for _, q := range info.QueueCreateInfos {
		queues = append(queues, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: q.QueueFamilyIndex,
			QueuePriorities:  q.QueuePriorities,
		})
	}

	handle, res, err := a.instance.driver.CreateDevice(a.device, nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos:      queues,
		EnabledFeatures:       &core1_0.PhysicalDeviceFeatures{},
		EnabledExtensionNames: info.EnabledExtensions,
	})
	if err != nil {
		return nil, backendError("vkCreateDevice", res, err)
	}
	driver, err := a.instance.driver.BuildDeviceDriver(handle)
	if err != nil {
		return nil, errors.Wrap(err, "load device functions")
	}

	return &Device{
		driver:    driver,
		swapchain: khr_swapchain.CreateExtensionDriverFromCoreDriver(driver),
	}, nil
}

func extent(e core1_0.Extent2D) gfx.Extent2D {
	return gfx.Extent2D{Width: e.Width, Height: e.Height}
}
