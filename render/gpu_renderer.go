// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// GPUCropPass runs the crop shader on a host-provided wgpu HAL device.
//
// The pass owns its pipeline, sampler, uniform buffer and bind group. It
// does not own the device, the queue or command submission: Bind writes
// the uniforms and (re)builds the bind group for the source view, and
// Record draws into a render pass the host began. Encode is a convenience
// that begins and ends that render pass on a host encoder.
//
// Example:
//
//	pass, err := render.NewGPUCropPass(device, queue, gputypes.TextureFormatBGRA8Unorm)
//	if err != nil {
//	    return err // shader parameters missing or resource creation failed
//	}
//	defer pass.Destroy()
//
//	// Per frame:
//	pass.Bind(render.NewTextureSource(frameView, w, h), params)
//	pass.Encode(encoder, render.NewSurfaceTarget(w, h, format, surfaceView))
type GPUCropPass struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
	shader *CropShader

	module     hal.ShaderModule
	layout     hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
	sampler    hal.Sampler
	uniforms   hal.Buffer

	bindGroup hal.BindGroup
	boundView hal.TextureView

	// uniformData is the last block written to the uniform buffer.
	uniformData []byte
	// bindGroupBuilds counts bind group creations.
	bindGroupBuilds int

	destroyed bool
}

// NewGPUCropPass compiles the built-in crop shader and creates the
// pipeline for targets of the given format.
//
// Creation fails, and no resources are leaked, if the shader's parameters
// cannot be resolved (ErrMissingParam), it does not compile
// (ErrShaderCompile) or any GPU resource cannot be created.
func NewGPUCropPass(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) (*GPUCropPass, error) {
	shader, err := DefaultCropShader()
	if err != nil {
		return nil, err
	}
	return NewGPUCropPassWithShader(device, queue, format, shader)
}

// NewGPUCropPassWithShader is NewGPUCropPass with a caller-compiled shader.
// All three resources must live in bind group 0.
func NewGPUCropPassWithShader(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, shader *CropShader) (*GPUCropPass, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	if shader == nil {
		return nil, fmt.Errorf("%w: nil shader", ErrMissingParam)
	}
	for name, b := range map[string]Binding{
		ParamTexture:  shader.Texture,
		ParamSampler:  shader.Sampler,
		ParamUniforms: shader.Uniforms,
	} {
		if b.Group != 0 {
			return nil, fmt.Errorf("%w: %s must be in group 0, found group %d", ErrMissingParam, name, b.Group)
		}
	}
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}

	p := &GPUCropPass{
		device: device,
		queue:  queue,
		format: format,
		shader: shader,
	}
	if err := p.createPipeline(); err != nil {
		p.Destroy()
		return nil, err
	}
	Logger().Info("render: GPU crop pass created", "format", format.String())
	return p, nil
}

// createPipeline creates the shader module, bind group layout, pipeline,
// sampler and uniform buffer.
func (p *GPUCropPass) createPipeline() error {
	module, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "crop_shader",
		Source: hal.ShaderSource{SPIRV: p.shader.SPIRV},
	})
	if err != nil {
		return fmt.Errorf("%w: create crop shader module: %w", ErrShaderCompile, err)
	}
	p.module = module

	// Bind group layout:
	//   source_tex:     texture_2d<f32>, fragment
	//   source_sampler: filtering sampler, fragment
	//   crop:           CropUniforms, fragment
	layout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "crop_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    p.shader.Texture.Binding,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    p.shader.Sampler.Binding,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
			{
				Binding:    p.shader.Uniforms.Binding,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create crop bind layout: %w", err)
	}
	p.layout = layout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "crop_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.layout},
	})
	if err != nil {
		return fmt.Errorf("create crop pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "crop_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.module,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     p.module,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create crop pipeline: %w", err)
	}
	p.pipeline = pipeline

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "crop_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("create crop sampler: %w", err)
	}
	p.sampler = sampler

	size := uniformBufferSize(p.shader.UniformSize)
	uniforms, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "crop_uniforms",
		Size:  size,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create crop uniform buffer: %w", err)
	}
	p.uniforms = uniforms
	p.uniformData = make([]byte, size)
	return nil
}

// uniformBufferSize rounds a uniform block up to 16 bytes, the minimum
// uniform binding granularity.
func uniformBufferSize(span uint32) uint64 {
	const align = 16
	size := max(uint64(span), align)
	return (size + align - 1) &^ (align - 1)
}

// Bind writes params to the uniform buffer and binds the source view. The
// bind group is rebuilt only when the view changes.
func (p *GPUCropPass) Bind(src Source, params CropParams) error {
	if p.destroyed {
		return ErrPassDestroyed
	}
	ts, ok := src.(*TextureSource)
	if !ok || ts == nil || ts.View() == nil {
		return fmt.Errorf("%w: %T", ErrUnsupportedSource, src)
	}

	params.put(p.uniformData, p.shader.AddValOffset, p.shader.MulValOffset)
	if err := p.queue.WriteBuffer(p.uniforms, 0, p.uniformData); err != nil {
		return fmt.Errorf("write crop uniforms: %w", err)
	}

	if p.bindGroup != nil && p.boundView == ts.View() {
		return nil
	}
	return p.rebuildBindGroup(ts.View())
}

func (p *GPUCropPass) rebuildBindGroup(view hal.TextureView) error {
	bg, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "crop_bind",
		Layout: p.layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: p.shader.Texture.Binding, Resource: gputypes.TextureViewBinding{
				TextureView: view.NativeHandle(),
			}},
			{Binding: p.shader.Sampler.Binding, Resource: gputypes.SamplerBinding{
				Sampler: p.sampler.NativeHandle(),
			}},
			{Binding: p.shader.Uniforms.Binding, Resource: gputypes.BufferBinding{
				Buffer: p.uniforms.NativeHandle(), Offset: 0, Size: uint64(len(p.uniformData)),
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create crop bind group: %w", err)
	}
	if p.bindGroup != nil {
		p.device.DestroyBindGroup(p.bindGroup)
	}
	p.bindGroup = bg
	p.boundView = view
	p.bindGroupBuilds++
	Logger().Debug("render: crop bind group rebuilt", "builds", p.bindGroupBuilds)
	return nil
}

// Record draws the full-screen crop triangle into rp. It does nothing until
// Bind has succeeded once.
func (p *GPUCropPass) Record(rp hal.RenderPassEncoder) {
	if p.destroyed || p.bindGroup == nil {
		return
	}
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, p.bindGroup, nil)
	rp.Draw(3, 1, 0, 0)
}

// Encode begins a render pass on encoder that clears target, records the
// crop draw and ends the pass. The encoder must be recording; the caller
// ends encoding and submits.
func (p *GPUCropPass) Encode(encoder hal.CommandEncoder, target RenderTarget) error {
	if p.destroyed {
		return ErrPassDestroyed
	}
	if target == nil || target.TextureView() == nil {
		return fmt.Errorf("render: crop target has no texture view")
	}
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "crop_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       target.TextureView(),
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	p.Record(rp)
	rp.End()
	return nil
}

// Format returns the color target format the pipeline was built for.
func (p *GPUCropPass) Format() gputypes.TextureFormat {
	return p.format
}

// Capabilities returns the pass capabilities.
func (p *GPUCropPass) Capabilities() BinderCapabilities {
	return BinderCapabilities{
		IsGPU:          true,
		Filtering:      true,
		MaxTextureSize: 8192,
	}
}

// Destroy releases every resource the pass created. Safe to call more than
// once.
func (p *GPUCropPass) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	if p.bindGroup != nil {
		p.device.DestroyBindGroup(p.bindGroup)
		p.bindGroup = nil
	}
	p.boundView = nil
	if p.uniforms != nil {
		p.device.DestroyBuffer(p.uniforms)
		p.uniforms = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.layout != nil {
		p.device.DestroyBindGroupLayout(p.layout)
		p.layout = nil
	}
	if p.module != nil {
		p.device.DestroyShaderModule(p.module)
		p.module = nil
	}
}

var (
	_ CapableBinder = (*GPUCropPass)(nil)
	_ Destroyer     = (*GPUCropPass)(nil)
)
