package bootstrap

import (
	"github.com/vkngwrapper/rendercontext/gfx"
)

// SwapChain owns a swap chain and one view per image. The images belong to
// the chain itself.
type SwapChain struct {
	Handle gfx.Swapchain
	Images []gfx.Image
	Views  []gfx.ImageView
	Config SurfaceConfiguration

	device gfx.Device
	valid  bool
}

// CreateSwapChain builds a swap chain for surface with cfg, then one color
// view per image the chain actually allocated.
func CreateSwapChain(dc *DeviceContext, surface gfx.Surface, cfg SurfaceConfiguration) (*SwapChain, error) {
	return createSwapChain(dc, surface, cfg, nil)
}

// RecreateSwapChain builds a replacement for old with cfg and destroys old
// once the new chain exists. old is not destroyed if creation fails, though
// the driver may already have retired it.
func RecreateSwapChain(dc *DeviceContext, surface gfx.Surface, cfg SurfaceConfiguration, old *SwapChain) (*SwapChain, error) {
	var oldHandle gfx.Swapchain
	if old != nil && old.valid {
		oldHandle = old.Handle
	}
	sc, err := createSwapChain(dc, surface, cfg, oldHandle)
	if err != nil {
		return nil, err
	}
	old.Destroy()
	return sc, nil
}

func createSwapChain(dc *DeviceContext, surface gfx.Surface, cfg SurfaceConfiguration, old gfx.Swapchain) (*SwapChain, error) {
	sharingMode, families := ResolveSharing(dc.Assignment)

	handle, err := dc.Device.CreateSwapchain(gfx.SwapchainCreateInfo{
		Surface:            surface,
		MinImageCount:      cfg.ImageCount,
		ImageFormat:        cfg.Format.Format,
		ImageColorSpace:    cfg.Format.ColorSpace,
		ImageExtent:        cfg.Extent,
		SharingMode:        sharingMode,
		QueueFamilyIndices: families,
		PreTransform:       cfg.PreTransform,
		PresentMode:        cfg.PresentMode,
		OldSwapchain:       old,
	})
	if err != nil {
		return nil, fail(ErrSwapChainCreationFailed, err, "create swap chain %s %s %s",
			cfg.Extent, cfg.Format, cfg.PresentMode)
	}

	sc := &SwapChain{
		Handle: handle,
		Config: cfg,
		device: dc.Device,
		valid:  true,
	}

	// The chain may hold more images than requested.
	sc.Images, err = dc.Device.SwapchainImages(handle)
	if err != nil {
		sc.Destroy()
		return nil, fail(ErrSwapChainCreationFailed, err, "get swap chain images")
	}

	for i, image := range sc.Images {
		view, err := dc.Device.CreateImageView(gfx.ImageViewCreateInfo{
			Image:  image,
			Format: cfg.Format.Format,
		})
		if err != nil {
			sc.Destroy()
			return nil, fail(ErrImageViewCreationFailed, err, "create view for swap chain image %d", i)
		}
		sc.Views = append(sc.Views, view)
	}

	return sc, nil
}

// Destroy destroys the image views, last first, then the chain. It is a
// no-op on a nil or already destroyed swap chain.
func (sc *SwapChain) Destroy() {
	if sc == nil || !sc.valid {
		return
	}
	for i := len(sc.Views) - 1; i >= 0; i-- {
		sc.device.DestroyImageView(sc.Views[i])
	}
	sc.Views = nil
	sc.Images = nil
	sc.device.DestroySwapchain(sc.Handle)
	sc.Handle = nil
	sc.valid = false
}
