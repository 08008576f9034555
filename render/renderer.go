// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "fmt"

// Binder pushes crop parameters and the source frame into a crop pass.
//
// Bind is called once per frame, after the animator has advanced. It is a
// projection of animator state into the pass: it records no history and
// computes nothing beyond what the pass needs to sample the source.
//
// Implementations:
//
//   - SoftwareCropPass: crops on the CPU into a PixmapTarget
//   - GPUCropPass: writes uniforms and bind groups for the crop pipeline
//
// Thread Safety: Binders are NOT thread-safe.
//
// Example:
//
//	pass := render.NewSoftwareCropPass(render.NewPixmapTarget(1280, 720))
//	if err := pass.Bind(render.NewImageSource(frame), params); err != nil {
//	    log.Printf("bind failed: %v", err)
//	}
type Binder interface {
	// Bind makes the pass sample src through p.
	//
	// Returns ErrUnsupportedSource if the pass cannot read src and
	// ErrPassDestroyed once the pass has been destroyed.
	Bind(src Source, p CropParams) error
}

// BinderCapabilities describes a crop pass.
type BinderCapabilities struct {
	// IsGPU indicates the pass runs on the GPU.
	IsGPU bool

	// Filtering indicates the pass interpolates between source texels.
	Filtering bool

	// MaxTextureSize is the maximum source dimension (0 = unlimited).
	MaxTextureSize int
}

// CapableBinder is an optional interface for binders that can report
// their capabilities.
type CapableBinder interface {
	Binder

	// Capabilities returns the pass capabilities.
	Capabilities() BinderCapabilities
}

// CheckSize returns ErrUnsupportedSource when src is larger on either axis
// than b reports it can sample. Binders that do not report capabilities, or
// report no limit, accept any size.
func CheckSize(b Binder, src Source) error {
	cb, ok := b.(CapableBinder)
	if !ok {
		return nil
	}
	limit := cb.Capabilities().MaxTextureSize
	if limit <= 0 {
		return nil
	}
	if w, h := Dimensions(src); w > limit || h > limit {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrUnsupportedSource, w, h, limit)
	}
	return nil
}

// Destroyer is implemented by binders that own resources.
type Destroyer interface {
	Destroy()
}
