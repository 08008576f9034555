// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render binds a focus-zoom viewport to a crop pass.
//
// Each frame the filter hands the binder two vectors, an offset (AddVal)
// and a scale (MulVal), together with the source frame. The crop shader
// samples the source at uv*MulVal+AddVal, so the output shows the square
// of side MulVal starting at AddVal.
//
// # Key Principle
//
// The package RECEIVES a GPU device from the host application, it does NOT
// create one. The host owns the device, the queue and command submission;
// a GPUCropPass only writes its uniforms, builds bind groups and records
// draws into a render pass the host began.
//
// # Binders
//
//   - GPUCropPass: wgpu HAL pipeline running shaders/crop.wgsl
//   - SoftwareCropPass: CPU bilinear crop into a PixmapTarget, for headless use
//
// # Sources and Targets
//
//   - ImageSource: a CPU frame (image.Image)
//   - TextureSource: a GPU frame (hal.TextureView)
//   - PixmapTarget: CPU-backed *image.RGBA
//   - TextureTarget: offscreen GPU texture
//   - SurfaceTarget: window surface view from the host
//
// # Usage
//
// Headless:
//
//	target := render.NewPixmapTarget(1280, 720)
//	pass := render.NewSoftwareCropPass(target)
//	_ = pass.Bind(render.NewImageSource(frame), params)
//	img := target.Image()
//
// With a host-provided device:
//
//	pass, err := render.NewGPUCropPassFromProvider(provider, surfaceFormat)
//	...
//	_ = pass.Bind(render.NewTextureSource(view, w, h), params)
//	pass.Record(renderPassEncoder)
//
// # Architecture
//
//	   focuszoom.Filter
//	          │  CropParams{AddVal, MulVal}
//	          ▼
//	       Binder
//	  ┌───────┴────────┐
//	  ▼                ▼
//	GPUCropPass   SoftwareCropPass
//	(wgpu hal)    (x/image/draw)
//
// # Thread Safety
//
// Binders are NOT thread-safe. Use them from the render goroutine only.
package render
