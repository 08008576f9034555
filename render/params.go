// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"errors"
	"image"
	"math"
)

// Render errors.
var (
	// ErrMissingParam is returned when the crop shader lacks a binding or
	// uniform member the pass needs.
	ErrMissingParam = errors.New("render: missing shader parameter")

	// ErrShaderCompile is returned when the crop shader fails to parse or compile.
	ErrShaderCompile = errors.New("render: shader compilation failed")

	// ErrUnsupportedSource is returned when a binder cannot sample the given source.
	ErrUnsupportedSource = errors.New("render: unsupported source")

	// ErrNilDevice is returned when a GPU pass is created without a device or queue.
	ErrNilDevice = errors.New("render: nil device")

	// ErrPassDestroyed is returned when binding to a destroyed pass.
	ErrPassDestroyed = errors.New("render: pass destroyed")
)

// CropParams are the two vectors pushed to the crop shader each frame.
// AddVal is the normalized top-left of the visible box and MulVal its
// normalized size.
type CropParams struct {
	AddVal [2]float32
	MulVal [2]float32
}

// NewCropParams returns the parameters for a square box of side zoom at
// (x, y).
func NewCropParams(x, y, zoom float64) CropParams {
	return CropParams{
		AddVal: [2]float32{float32(x), float32(y)},
		MulVal: [2]float32{float32(zoom), float32(zoom)},
	}
}

// Identity returns parameters that show the whole frame.
func Identity() CropParams {
	return CropParams{MulVal: [2]float32{1, 1}}
}

// put writes the parameters as two vec2<f32> at the given byte offsets.
func (p CropParams) put(buf []byte, addOffset, mulOffset uint32) {
	binary.LittleEndian.PutUint32(buf[addOffset:], math.Float32bits(p.AddVal[0]))
	binary.LittleEndian.PutUint32(buf[addOffset+4:], math.Float32bits(p.AddVal[1]))
	binary.LittleEndian.PutUint32(buf[mulOffset:], math.Float32bits(p.MulVal[0]))
	binary.LittleEndian.PutUint32(buf[mulOffset+4:], math.Float32bits(p.MulVal[1]))
}

// SourceRect returns the pixel rectangle of a w x h frame that the
// parameters select. The rectangle is clipped to the frame and is never
// empty.
func (p CropParams) SourceRect(w, h int) image.Rectangle {
	x0 := clampPixel(float64(p.AddVal[0])*float64(w), w-1)
	y0 := clampPixel(float64(p.AddVal[1])*float64(h), h-1)
	x1 := clampPixel(float64(p.AddVal[0]+p.MulVal[0])*float64(w), w)
	y1 := clampPixel(float64(p.AddVal[1]+p.MulVal[1])*float64(h), h)
	return image.Rect(x0, y0, max(x1, x0+1), max(y1, y0+1))
}

func clampPixel(v float64, hi int) int {
	return min(max(int(math.Round(v)), 0), hi)
}
