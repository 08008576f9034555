// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/draw"
)

// RenderTarget is where a crop pass writes.
//
//   - PixmapTarget: CPU-backed *image.RGBA for the software pass
//   - TextureTarget: offscreen GPU texture
//   - SurfaceTarget: window surface view from the host application
//
// The GPU pass draws into TextureView; CPU-only targets return nil there.
type RenderTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// TextureView returns the GPU texture view, or nil for CPU-only targets.
	TextureView() hal.TextureView
}

// PixmapTarget is a CPU-backed render target using *image.RGBA.
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget creates a new CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// TextureView returns nil as this is a CPU-only target.
func (t *PixmapTarget) TextureView() hal.TextureView {
	return nil
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Source returns the target contents as a crop source, so the output of one
// pass can feed another.
func (t *PixmapTarget) Source() *ImageSource {
	return NewImageSource(t.img)
}

// Clear fills the entire target with the given color.
func (t *PixmapTarget) Clear(c color.Color) {
	draw.Draw(t.img, t.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// TextureTarget is an offscreen GPU texture render target. It can also be
// sampled, so a crop pass may read a frame another pass rendered.
type TextureTarget struct {
	device  hal.Device
	texture hal.Texture
	view    hal.TextureView
	width   int
	height  int
	format  gputypes.TextureFormat
}

// NewTextureTarget creates a width x height texture on device that can be
// rendered to and sampled.
func NewTextureTarget(device hal.Device, width, height int, format gputypes.TextureFormat) (*TextureTarget, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: invalid texture target size %dx%d", width, height)
	}
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "crop_target",
		Size:          hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("create target texture: %w", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "crop_target_view",
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create target view: %w", err)
	}
	return &TextureTarget{
		device:  device,
		texture: tex,
		view:    view,
		width:   width,
		height:  height,
		format:  format,
	}, nil
}

// Width returns the target width in pixels.
func (t *TextureTarget) Width() int {
	return t.width
}

// Height returns the target height in pixels.
func (t *TextureTarget) Height() int {
	return t.height
}

// Format returns the pixel format.
func (t *TextureTarget) Format() gputypes.TextureFormat {
	return t.format
}

// TextureView returns the GPU texture view.
func (t *TextureTarget) TextureView() hal.TextureView {
	return t.view
}

// Source returns the texture as a crop source.
func (t *TextureTarget) Source() *TextureSource {
	return NewTextureSource(t.view, t.width, t.height)
}

// Destroy releases GPU resources. Safe to call more than once.
func (t *TextureTarget) Destroy() {
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		t.device.DestroyTexture(t.texture)
		t.texture = nil
	}
}

// SurfaceTarget wraps the current frame of a window surface from the host
// application. The host acquires and presents the surface texture; the
// target only carries its view.
type SurfaceTarget struct {
	width  int
	height int
	format gputypes.TextureFormat
	view   hal.TextureView
}

// NewSurfaceTarget creates a render target from a surface texture view.
func NewSurfaceTarget(width, height int, format gputypes.TextureFormat, view hal.TextureView) *SurfaceTarget {
	return &SurfaceTarget{
		width:  width,
		height: height,
		format: format,
		view:   view,
	}
}

// Width returns the surface width in pixels.
func (t *SurfaceTarget) Width() int {
	return t.width
}

// Height returns the surface height in pixels.
func (t *SurfaceTarget) Height() int {
	return t.height
}

// Format returns the surface pixel format.
func (t *SurfaceTarget) Format() gputypes.TextureFormat {
	return t.format
}

// TextureView returns the current frame's texture view.
func (t *SurfaceTarget) TextureView() hal.TextureView {
	return t.view
}

var (
	_ RenderTarget = (*PixmapTarget)(nil)
	_ RenderTarget = (*TextureTarget)(nil)
	_ RenderTarget = (*SurfaceTarget)(nil)
)
