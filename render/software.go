// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// SoftwareCropPass crops and scales CPU frames into a PixmapTarget.
//
// It is the CPU counterpart of the crop shader: the box selected by the
// parameters is resampled to fill the whole target. It needs no GPU and is
// used by headless tools and tests.
//
// Example:
//
//	target := render.NewPixmapTarget(1280, 720)
//	pass := render.NewSoftwareCropPass(target)
//	pass.Bind(render.NewImageSource(frame), params)
//	png.Encode(w, target.Image())
type SoftwareCropPass struct {
	target *PixmapTarget
	scaler draw.Scaler

	// last records the source rectangle of the previous Bind.
	last image.Rectangle
}

// NewSoftwareCropPass creates a CPU crop pass drawing into target, using
// bilinear filtering.
func NewSoftwareCropPass(target *PixmapTarget) *SoftwareCropPass {
	return &SoftwareCropPass{
		target: target,
		scaler: draw.BiLinear,
	}
}

// WithScaler replaces the resampling kernel, e.g. draw.NearestNeighbor for
// pixel-exact output. It returns p for chaining.
func (p *SoftwareCropPass) WithScaler(s draw.Scaler) *SoftwareCropPass {
	if s != nil {
		p.scaler = s
	}
	return p
}

// Bind crops src to the box selected by params and scales it into the
// target. Only ImageSource is accepted.
func (p *SoftwareCropPass) Bind(src Source, params CropParams) error {
	is, ok := src.(*ImageSource)
	if !ok || is == nil || is.Image() == nil {
		return fmt.Errorf("%w: %T", ErrUnsupportedSource, src)
	}
	img := is.Image()
	w, h := Dimensions(is)

	r := params.SourceRect(w, h).Add(img.Bounds().Min)
	dst := p.target.Image()
	p.scaler.Scale(dst, dst.Bounds(), img, r, draw.Src, nil)
	p.last = r
	return nil
}

// SourceRect returns the source rectangle used by the last Bind.
func (p *SoftwareCropPass) SourceRect() image.Rectangle {
	return p.last
}

// Target returns the target the pass draws into.
func (p *SoftwareCropPass) Target() *PixmapTarget {
	return p.target
}

// Capabilities returns the pass capabilities.
func (p *SoftwareCropPass) Capabilities() BinderCapabilities {
	return BinderCapabilities{Filtering: true}
}

var _ CapableBinder = (*SoftwareCropPass)(nil)
