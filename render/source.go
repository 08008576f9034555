// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// Source is a frame the crop pass samples. Only its size is required by
// the binder contract; concrete binders accept the source kinds they can
// read.
type Source = gpucontext.Texture

// Dimensions returns the source size, or 1x1 when the source is nil or
// reports a non-positive size.
func Dimensions(src Source) (w, h int) {
	if src == nil {
		return 1, 1
	}
	w, h = src.Width(), src.Height()
	if w <= 0 || h <= 0 {
		return 1, 1
	}
	return w, h
}

// ImageSource is a CPU frame.
type ImageSource struct {
	img image.Image
}

// NewImageSource wraps img as a crop source.
func NewImageSource(img image.Image) *ImageSource {
	return &ImageSource{img: img}
}

// Width returns the image width in pixels.
func (s *ImageSource) Width() int {
	if s == nil || s.img == nil {
		return 0
	}
	return s.img.Bounds().Dx()
}

// Height returns the image height in pixels.
func (s *ImageSource) Height() int {
	if s == nil || s.img == nil {
		return 0
	}
	return s.img.Bounds().Dy()
}

// Image returns the wrapped image.
func (s *ImageSource) Image() image.Image {
	return s.img
}

// TextureSource is a GPU frame: a sampleable texture view and its size.
type TextureSource struct {
	view          hal.TextureView
	width, height int
}

// NewTextureSource wraps a texture view of the given size as a crop source.
func NewTextureSource(view hal.TextureView, width, height int) *TextureSource {
	return &TextureSource{view: view, width: width, height: height}
}

// Width returns the texture width in pixels.
func (s *TextureSource) Width() int { return s.width }

// Height returns the texture height in pixels.
func (s *TextureSource) Height() int { return s.height }

// View returns the texture view.
func (s *TextureSource) View() hal.TextureView { return s.view }

var (
	_ Source = (*ImageSource)(nil)
	_ Source = (*TextureSource)(nil)
)
