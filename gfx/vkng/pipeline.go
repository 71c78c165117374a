package vkng

import (
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/vkngwrapper/rendercontext/gfx"
)

// Pipeline is a graphics pipeline together with the layout and render pass
// created for it. They are destroyed together.
type Pipeline struct {
	Pipeline   core1_0.Pipeline
	Layout     core1_0.PipelineLayout
	RenderPass core1_0.RenderPass
}

// CreateGraphicsPipeline builds a single-subpass render pass writing one
// color attachment in info.ColorFormat, an empty layout, and a pipeline with
// no vertex input drawing triangle lists. Viewport and scissor are dynamic,
// so the pipeline survives swap chain resizes.
func (d *Device) CreateGraphicsPipeline(info gfx.GraphicsPipelineCreateInfo) (gfx.Pipeline, error) {
	renderPass, res, err := d.driver.CreateRenderPass(nil, core1_0.RenderPassCreateInfo{
		Attachments: []core1_0.AttachmentDescription{
			{
				Format:         core1_0.Format(info.ColorFormat),
				Samples:        core1_0.Samples1,
				LoadOp:         core1_0.AttachmentLoadOpClear,
				StoreOp:        core1_0.AttachmentStoreOpStore,
				StencilLoadOp:  core1_0.AttachmentLoadOpDontCare,
				StencilStoreOp: core1_0.AttachmentStoreOpDontCare,
				InitialLayout:  core1_0.ImageLayoutUndefined,
				FinalLayout:    khr_swapchain.ImageLayoutPresentSrc,
			},
		},
		Subpasses: []core1_0.SubpassDescription{
			{
				PipelineBindPoint: core1_0.PipelineBindPointGraphics,
				ColorAttachments: []core1_0.AttachmentReference{
					{
						Attachment: 0,
						Layout:     core1_0.ImageLayoutColorAttachmentOptimal,
					},
				},
			},
		},
		SubpassDependencies: []core1_0.SubpassDependency{
			{
				SrcSubpass: core1_0.SubpassExternal,
				DstSubpass: 0,

				SrcStageMask:  core1_0.PipelineStageColorAttachmentOutput,
				SrcAccessMask: 0,

				DstStageMask:  core1_0.PipelineStageColorAttachmentOutput,
				DstAccessMask: core1_0.AccessColorAttachmentWrite,
			},
		},
	})
	if err != nil {
		return nil, backendError("vkCreateRenderPass", res, err)
	}

	layout, res, err := d.driver.CreatePipelineLayout(nil, core1_0.PipelineLayoutCreateInfo{})
	if err != nil {
		d.driver.DestroyRenderPass(renderPass, nil)
		return nil, backendError("vkCreatePipelineLayout", res, err)
	}

	stages := make([]core1_0.PipelineShaderStageCreateInfo, 0, len(info.Stages))
	for _, stage := range info.Stages {
		stages = append(stages, core1_0.PipelineShaderStageCreateInfo{
			Stage:  core1_0.ShaderStageFlags(stage.Stage),
			Module: stage.Module.(core1_0.ShaderModule),
			Name:   stage.EntryPoint,
		})
	}

	pipelines, res, err := d.driver.CreateGraphicsPipelines(nil, nil,
		core1_0.GraphicsPipelineCreateInfo{
			Stages:           stages,
			VertexInputState: &core1_0.PipelineVertexInputStateCreateInfo{},
			InputAssemblyState: &core1_0.PipelineInputAssemblyStateCreateInfo{
				Topology:               core1_0.PrimitiveTopologyTriangleList,
				PrimitiveRestartEnable: false,
			},
			// Placeholders, overridden by the dynamic state.
			ViewportState: &core1_0.PipelineViewportStateCreateInfo{
				Viewports: []core1_0.Viewport{{Width: 1, Height: 1, MaxDepth: 1}},
				Scissors:  []core1_0.Rect2D{{Extent: core1_0.Extent2D{Width: 1, Height: 1}}},
			},
			RasterizationState: &core1_0.PipelineRasterizationStateCreateInfo{
				DepthClampEnable:        false,
				RasterizerDiscardEnable: false,

				PolygonMode: core1_0.PolygonModeFill,
				CullMode:    core1_0.CullModeBack,
				FrontFace:   core1_0.FrontFaceClockwise,

				DepthBiasEnable: false,

				LineWidth: 1.0,
			},
			MultisampleState: &core1_0.PipelineMultisampleStateCreateInfo{
				SampleShadingEnable:  false,
				RasterizationSamples: core1_0.Samples1,
				MinSampleShading:     1.0,
			},
			ColorBlendState: &core1_0.PipelineColorBlendStateCreateInfo{
				LogicOpEnabled: false,
				LogicOp:        core1_0.LogicOpCopy,

				BlendConstants: [4]float32{0, 0, 0, 0},
				Attachments: []core1_0.PipelineColorBlendAttachmentState{
					{
						BlendEnabled:   false,
						ColorWriteMask: core1_0.ColorComponentRed | core1_0.ColorComponentGreen | core1_0.ColorComponentBlue | core1_0.ColorComponentAlpha,
					},
				},
			},
			DynamicState: &core1_0.PipelineDynamicStateCreateInfo{
				DynamicStates: []core1_0.DynamicState{core1_0.DynamicStateViewport, core1_0.DynamicStateScissor},
			},
			Layout:            layout,
			RenderPass:        renderPass,
			Subpass:           0,
			BasePipelineIndex: -1,
		},
	)
	if err != nil {
		d.driver.DestroyPipelineLayout(layout, nil)
		d.driver.DestroyRenderPass(renderPass, nil)
		return nil, backendError("vkCreateGraphicsPipelines", res, err)
	}

	return &Pipeline{
		Pipeline:   pipelines[0],
		Layout:     layout,
		RenderPass: renderPass,
	}, nil
}

func (d *Device) DestroyPipeline(pipeline gfx.Pipeline) {
	p := pipeline.(*Pipeline)
	if p.Pipeline.Initialized() {
		d.driver.DestroyPipeline(p.Pipeline, nil)
	}
	if p.Layout.Initialized() {
		d.driver.DestroyPipelineLayout(p.Layout, nil)
	}
	if p.RenderPass.Initialized() {
		d.driver.DestroyRenderPass(p.RenderPass, nil)
	}
}
