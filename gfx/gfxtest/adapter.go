package gfxtest

import (
	"github.com/cockroachdb/errors"

	"github.com/vkngwrapper/rendercontext/gfx"
)

// Adapter is a scripted gfx.Adapter.
type Adapter struct {
	Name string
	Type gfx.AdapterType

	Families []gfx.QueueFamilyProperties
	// PresentFamilies lists the family indices that can present to any
	// surface.
	PresentFamilies  []int
	DeviceExtensions []string

	Capabilities gfx.SurfaceCapabilities
	Formats      []gfx.SurfaceFormat
	PresentModes []gfx.PresentMode

	// QueryErr makes every surface query fail.
	QueryErr error
	// ExtraImages is how many images the swap chain allocates beyond the
	// requested minimum.
	ExtraImages int

	DeviceErr    error
	SwapchainErr error
	ImageViewErr error
	// ImageViewErrAt is the 0-based view index that fails with ImageViewErr.
	ImageViewErrAt  int
	ShaderModuleErr error
	PipelineErr     error

	// DeviceInfo is the info passed to the last CreateDevice call.
	DeviceInfo gfx.DeviceCreateInfo
	// Device is the last device created.
	Device *Device

	loader *Loader
}

// Graphics and Present are shorthands for building queue family lists.
var (
	Graphics = gfx.QueueFamilyProperties{Flags: gfx.QueueGraphics | gfx.QueueCompute | gfx.QueueTransfer, QueueCount: 1}
	Compute  = gfx.QueueFamilyProperties{Flags: gfx.QueueCompute | gfx.QueueTransfer, QueueCount: 1}
	Transfer = gfx.QueueFamilyProperties{Flags: gfx.QueueTransfer, QueueCount: 1}
)

// NewAdapter returns an adapter with one graphics family able to present, the
// swapchain extension, a single B8G8R8A8_SRGB format and FIFO.
func NewAdapter(name string) *Adapter {
	return &Adapter{
		Name:             name,
		Type:             gfx.AdapterTypeDiscrete,
		Families:         []gfx.QueueFamilyProperties{Graphics},
		PresentFamilies:  []int{0},
		DeviceExtensions: []string{"VK_KHR_swapchain"},
		Capabilities: gfx.SurfaceCapabilities{
			MinImageCount:       2,
			MaxImageCount:       8,
			CurrentExtent:       gfx.Extent2D{Width: 800, Height: 600},
			MinImageExtent:      gfx.Extent2D{Width: 1, Height: 1},
			MaxImageExtent:      gfx.Extent2D{Width: 4096, Height: 4096},
			SupportedTransforms: gfx.TransformIdentity,
			CurrentTransform:    gfx.TransformIdentity,
		},
		Formats:      []gfx.SurfaceFormat{{Format: gfx.FormatB8G8R8A8SRGB, ColorSpace: gfx.ColorSpaceSRGBNonlinear}},
		PresentModes: []gfx.PresentMode{gfx.PresentModeFIFO},
	}
}

func (a *Adapter) Info() gfx.AdapterInfo {
	return gfx.AdapterInfo{Name: a.Name, Type: a.Type}
}

func (a *Adapter) QueueFamilies() []gfx.QueueFamilyProperties {
	return a.Families
}

func (a *Adapter) Extensions() ([]string, error) {
	return a.DeviceExtensions, nil
}

func (a *Adapter) SurfaceSupport(surface gfx.Surface, family int) (bool, error) {
	if a.QueryErr != nil {
		return false, resultErr("vkGetPhysicalDeviceSurfaceSupportKHR", a.QueryErr)
	}
	for _, f := range a.PresentFamilies {
		if f == family {
			return true, nil
		}
	}
	return false, nil
}

func (a *Adapter) SurfaceCapabilities(surface gfx.Surface) (gfx.SurfaceCapabilities, error) {
	if a.QueryErr != nil {
		return gfx.SurfaceCapabilities{}, resultErr("vkGetPhysicalDeviceSurfaceCapabilitiesKHR", a.QueryErr)
	}
	return a.Capabilities, nil
}

func (a *Adapter) SurfaceFormats(surface gfx.Surface) ([]gfx.SurfaceFormat, error) {
	if a.QueryErr != nil {
		return nil, resultErr("vkGetPhysicalDeviceSurfaceFormatsKHR", a.QueryErr)
	}
	return a.Formats, nil
}

func (a *Adapter) SurfacePresentModes(surface gfx.Surface) ([]gfx.PresentMode, error) {
	if a.QueryErr != nil {
		return nil, resultErr("vkGetPhysicalDeviceSurfacePresentModesKHR", a.QueryErr)
	}
	return a.PresentModes, nil
}

func (a *Adapter) CreateDevice(info gfx.DeviceCreateInfo) (gfx.Device, error) {
	a.DeviceInfo = info
	if a.DeviceErr != nil {
		return nil, resultErr("vkCreateDevice", a.DeviceErr)
	}
	seen := make(map[int]bool)
	for _, q := range info.QueueCreateInfos {
		if seen[q.QueueFamilyIndex] {
			return nil, resultErr("vkCreateDevice", errors.New("queue family requested twice"))
		}
		if q.QueueFamilyIndex < 0 || q.QueueFamilyIndex >= len(a.Families) {
			return nil, resultErr("vkCreateDevice", errors.New("queue family out of range"))
		}
		seen[q.QueueFamilyIndex] = true
	}
	h := a.loader.ids.handle("device")
	a.loader.Journal.create(h)
	a.Device = &Device{Handle: h, adapter: a, families: seen}
	return a.Device, nil
}
