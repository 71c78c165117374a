package vkng

import (
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/vkngwrapper/rendercontext/gfx"
)

// Device is a logical device with the swapchain extension loaded.
type Device struct {
	driver    core1_0.DeviceDriver
	swapchain khr_swapchain.ExtensionDriver
}

// Driver returns the device driver.
func (d *Device) Driver() core1_0.DeviceDriver { return d.driver }

func (d *Device) Queue(family, index int) gfx.Queue {
	return d.driver.GetQueue(family, index)
}

func (d *Device) CreateSwapchain(info gfx.SwapchainCreateInfo) (gfx.Swapchain, error) {
	createInfo := khr_swapchain.SwapchainCreateInfo{
		Surface: info.Surface.(khr_surface.Surface),

		MinImageCount:    info.MinImageCount,
		ImageFormat:      core1_0.Format(info.ImageFormat),
		ImageColorSpace:  khr_surface.ColorSpace(info.ImageColorSpace),
		ImageExtent:      core1_0.Extent2D{Width: info.ImageExtent.Width, Height: info.ImageExtent.Height},
		ImageArrayLayers: 1,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode:   core1_0.SharingMode(info.SharingMode),
		QueueFamilyIndices: info.QueueFamilyIndices,

		PreTransform:   khr_surface.SurfaceTransformFlags(info.PreTransform),
		CompositeAlpha: khr_surface.CompositeAlphaOpaque,
		PresentMode:    khr_surface.PresentMode(info.PresentMode),
		Clipped:        true,
	}
	if info.OldSwapchain != nil {
		createInfo.OldSwapchain = info.OldSwapchain.(khr_swapchain.Swapchain)
	}

	swapchain, res, err := d.swapchain.CreateSwapchain(nil, createInfo)
	if err != nil {
		return nil, backendError("vkCreateSwapchainKHR", res, err)
	}
	return swapchain, nil
}

func (d *Device) SwapchainImages(swapchain gfx.Swapchain) ([]gfx.Image, error) {
	images, res, err := d.swapchain.GetSwapchainImages(swapchain.(khr_swapchain.Swapchain))
	if err != nil {
		return nil, backendError("vkGetSwapchainImagesKHR", res, err)
	}
	out := make([]gfx.Image, 0, len(images))
	for _, image := range images {
		out = append(out, image)
	}
	return out, nil
}

func (d *Device) DestroySwapchain(swapchain gfx.Swapchain) {
	d.swapchain.DestroySwapchain(swapchain.(khr_swapchain.Swapchain), nil)
}

func (d *Device) CreateImageView(info gfx.ImageViewCreateInfo) (gfx.ImageView, error) {
	view, res, err := d.driver.CreateImageView(nil, core1_0.ImageViewCreateInfo{
		Image:    info.Image.(core1_0.Image),
		ViewType: core1_0.ImageViewType2D,
		Format:   core1_0.Format(info.Format),
		SubresourceRange: core1_0.ImageSubresourceRange{
			AspectMask:     core1_0.ImageAspectColor,
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	})
	if err != nil {
		return nil, backendError("vkCreateImageView", res, err)
	}
	return view, nil
}

func (d *Device) DestroyImageView(view gfx.ImageView) {
	d.driver.DestroyImageView(view.(core1_0.ImageView), nil)
}

func (d *Device) CreateShaderModule(code []uint32) (gfx.ShaderModule, error) {
	module, res, err := d.driver.CreateShaderModule(nil, core1_0.ShaderModuleCreateInfo{
		Code: code,
	})
	if err != nil {
		return nil, backendError("vkCreateShaderModule", res, err)
	}
	return module, nil
}

func (d *Device) DestroyShaderModule(module gfx.ShaderModule) {
	d.driver.DestroyShaderModule(module.(core1_0.ShaderModule), nil)
}

func (d *Device) WaitIdle() error {
	res, err := d.driver.DeviceWaitIdle()
	if err != nil {
		return backendError("vkDeviceWaitIdle", res, err)
	}
	return nil
}

func (d *Device) Destroy() {
	d.driver.DestroyDevice(nil)
}
