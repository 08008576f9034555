// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"errors"
	"fmt"
	"math"
)

// Configuration errors.
var (
	// ErrOutOfRange is returned when a setting lies outside its accepted range.
	ErrOutOfRange = errors.New("config: value out of range")

	// ErrUnknownKey is returned when a settings bag contains an unrecognised key.
	ErrUnknownKey = errors.New("config: unknown key")
)

// Settings is the operator-facing configuration of a focus-zoom filter.
//
// Screen coordinates describe the sub-region of the physical desktop the
// filter tracks windows within. Zoom is the maximum magnification; its
// reciprocal is the smallest crop the animator will ever produce.
type Settings struct {
	// Zoom is the maximum magnification, in [1, 5].
	Zoom float64

	// ScreenX and ScreenY are the top-left of the tracked region, in pixels.
	ScreenX, ScreenY int

	// ScreenWidth and ScreenHeight are the size of the tracked region, in pixels.
	ScreenWidth, ScreenHeight int

	// Padding is extra normalized margin added around the window, in [0, 0.5].
	Padding float64

	// AnimationTime is the duration of one transition in seconds, in [0.3, 10].
	AnimationTime float64
}

// Default returns the settings a filter starts with when the host supplies
// nothing: a 1920x1080 region at the origin, no zoom, 10% padding and a
// 0.3 second transition.
func Default() Settings {
	return Settings{
		Zoom:          1,
		ScreenX:       0,
		ScreenY:       0,
		ScreenWidth:   1920,
		ScreenHeight:  1080,
		Padding:       0.1,
		AnimationTime: 0.3,
	}
}

// InternalZoom returns the smallest crop scale the animator may use, 1/Zoom.
func (s Settings) InternalZoom() float64 {
	if s.Zoom <= 0 || math.IsNaN(s.Zoom) {
		return 1
	}
	return 1 / s.Zoom
}

// Clamp returns a copy of s with every field limited to its accepted range.
func (s Settings) Clamp() Settings {
	s.Zoom = clampFloat(KeyZoom, s.Zoom)
	s.ScreenX = clampInt(KeyScreenX, s.ScreenX)
	s.ScreenY = clampInt(KeyScreenY, s.ScreenY)
	s.ScreenWidth = clampInt(KeyScreenWidth, s.ScreenWidth)
	s.ScreenHeight = clampInt(KeyScreenHeight, s.ScreenHeight)
	s.Padding = clampFloat(KeyPadding, s.Padding)
	s.AnimationTime = clampFloat(KeyAnimationTime, s.AnimationTime)
	return s
}

// Validate returns an ErrOutOfRange error naming the first field that lies
// outside its accepted range, or nil.
func (s Settings) Validate() error {
	for _, p := range properties {
		v := s.value(p.Key)
		if !p.Contains(v) {
			return fmt.Errorf("%w: %s = %g, want [%g, %g]", ErrOutOfRange, p.Key, v, p.Min, p.Max)
		}
	}
	return nil
}

// Apply overwrites the fields whose keys are present in sec, clamping each
// value into range, and returns the keys it applied in property order.
// Absent, unknown or non-numeric keys leave s untouched.
func (s *Settings) Apply(sec Section) []string {
	var applied []string
	for _, p := range properties {
		switch p.Kind {
		case KindFloat:
			v, ok := sec.Float(p.Key)
			if !ok {
				continue
			}
			s.setFloat(p.Key, p.Clamp(v))
		case KindInt:
			v, ok := sec.Int(p.Key)
			if !ok {
				continue
			}
			s.setInt(p.Key, int(p.Clamp(float64(v))))
		}
		applied = append(applied, p.Key)
	}
	return applied
}

// Section returns s as a settings bag.
func (s Settings) Section() Section {
	return Section{
		KeyZoom:          s.Zoom,
		KeyScreenX:       s.ScreenX,
		KeyScreenY:       s.ScreenY,
		KeyScreenWidth:   s.ScreenWidth,
		KeyScreenHeight:  s.ScreenHeight,
		KeyPadding:       s.Padding,
		KeyAnimationTime: s.AnimationTime,
	}
}

func (s Settings) value(key string) float64 {
	switch key {
	case KeyZoom:
		return s.Zoom
	case KeyScreenX:
		return float64(s.ScreenX)
	case KeyScreenY:
		return float64(s.ScreenY)
	case KeyScreenWidth:
		return float64(s.ScreenWidth)
	case KeyScreenHeight:
		return float64(s.ScreenHeight)
	case KeyPadding:
		return s.Padding
	case KeyAnimationTime:
		return s.AnimationTime
	}
	return 0
}

func (s *Settings) setFloat(key string, v float64) {
	switch key {
	case KeyZoom:
		s.Zoom = v
	case KeyPadding:
		s.Padding = v
	case KeyAnimationTime:
		s.AnimationTime = v
	}
}

func (s *Settings) setInt(key string, v int) {
	switch key {
	case KeyScreenX:
		s.ScreenX = v
	case KeyScreenY:
		s.ScreenY = v
	case KeyScreenWidth:
		s.ScreenWidth = v
	case KeyScreenHeight:
		s.ScreenHeight = v
	}
}

func clampFloat(key string, v float64) float64 {
	p, _ := Lookup(key)
	return p.Clamp(v)
}

func clampInt(key string, v int) int {
	p, _ := Lookup(key)
	return int(p.Clamp(float64(v)))
}
