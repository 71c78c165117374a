package gfxtest

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/vkngwrapper/rendercontext/gfx"
)

// QueueHandle identifies a queue by family and index.
type QueueHandle struct {
	Family int
	Index  int
}

// Device is the gfx.Device created by Adapter.
type Device struct {
	Handle
	adapter  *Adapter
	families map[int]bool
	views    int

	// Swapchains records every SwapchainCreateInfo in call order.
	Swapchains []gfx.SwapchainCreateInfo
	// Modules records the code passed to each CreateShaderModule call.
	Modules [][]uint32
	// Pipeline is the info passed to the last CreateGraphicsPipeline call.
	Pipeline gfx.GraphicsPipelineCreateInfo
}

func (d *Device) journal() *Journal { return d.adapter.loader.Journal }

func (d *Device) handle(kind string) Handle { return d.adapter.loader.ids.handle(kind) }

func (d *Device) Queue(family, index int) gfx.Queue {
	if !d.families[family] {
		panic(fmt.Sprintf("gfxtest: queue family %d was not requested", family))
	}
	d.journal().record(fmt.Sprintf("get queue %d/%d", family, index))
	return QueueHandle{Family: family, Index: index}
}

func (d *Device) CreateSwapchain(info gfx.SwapchainCreateInfo) (gfx.Swapchain, error) {
	d.Swapchains = append(d.Swapchains, info)
	if d.adapter.SwapchainErr != nil {
		return nil, resultErr("vkCreateSwapchainKHR", d.adapter.SwapchainErr)
	}
	h := d.handle("swapchain")
	d.journal().create(h)
	return swapchainHandle{Handle: h, images: info.MinImageCount + d.adapter.ExtraImages}, nil
}

type swapchainHandle struct {
	Handle
	images int
}

func (d *Device) SwapchainImages(swapchain gfx.Swapchain) ([]gfx.Image, error) {
	sc, ok := swapchain.(swapchainHandle)
	if !ok {
		return nil, resultErr("vkGetSwapchainImagesKHR", errors.New("not a swapchain"))
	}
	images := make([]gfx.Image, sc.images)
	for i := range images {
		images[i] = Handle{Kind: fmt.Sprintf("image(%s)", sc.Handle), ID: i}
	}
	return images, nil
}

func (d *Device) DestroySwapchain(swapchain gfx.Swapchain) {
	d.journal().destroy(swapchain.(swapchainHandle).Handle)
}

func (d *Device) CreateImageView(info gfx.ImageViewCreateInfo) (gfx.ImageView, error) {
	at := d.views
	d.views++
	if d.adapter.ImageViewErr != nil && at == d.adapter.ImageViewErrAt {
		return nil, resultErr("vkCreateImageView", d.adapter.ImageViewErr)
	}
	h := d.handle("image-view")
	d.journal().create(h)
	return h, nil
}

func (d *Device) DestroyImageView(view gfx.ImageView) {
	d.journal().destroy(view.(Handle))
}

func (d *Device) CreateShaderModule(code []uint32) (gfx.ShaderModule, error) {
	d.Modules = append(d.Modules, code)
	if d.adapter.ShaderModuleErr != nil {
		return nil, resultErr("vkCreateShaderModule", d.adapter.ShaderModuleErr)
	}
	h := d.handle("shader-module")
	d.journal().create(h)
	return h, nil
}

func (d *Device) DestroyShaderModule(module gfx.ShaderModule) {
	d.journal().destroy(module.(Handle))
}

func (d *Device) CreateGraphicsPipeline(info gfx.GraphicsPipelineCreateInfo) (gfx.Pipeline, error) {
	d.Pipeline = info
	if d.adapter.PipelineErr != nil {
		return nil, resultErr("vkCreateGraphicsPipelines", d.adapter.PipelineErr)
	}
	h := d.handle("pipeline")
	d.journal().create(h)
	return h, nil
}

func (d *Device) DestroyPipeline(pipeline gfx.Pipeline) {
	d.journal().destroy(pipeline.(Handle))
}

func (d *Device) WaitIdle() error {
	d.journal().record("wait idle")
	return nil
}

func (d *Device) Destroy() {
	d.journal().destroy(d.Handle)
}
