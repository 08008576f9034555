// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import "math"

// Recognised setting keys.
const (
	KeyZoom          = "zoom"
	KeyScreenX       = "screen_x"
	KeyScreenY       = "screen_y"
	KeyScreenWidth   = "screen_width"
	KeyScreenHeight  = "screen_height"
	KeyPadding       = "padding"
	KeyAnimationTime = "animation_time"
)

// maxScreenCoord is the largest accepted screen coordinate or extent:
// three 4K monitors side by side.
const maxScreenCoord = 3840 * 3

// Kind is the value type of a property.
type Kind uint8

const (
	// KindFloat is a float64 value.
	KindFloat Kind = iota
	// KindInt is an integer value.
	KindInt
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	default:
		return "unknown"
	}
}

// Property describes one setting: its key, a human readable description,
// its type and its accepted range. Hosts that build a settings panel use
// these descriptors; the package itself uses them as the single source of
// truth for clamping and validation.
type Property struct {
	Key         string
	Description string
	Kind        Kind
	Min, Max    float64
	Step        float64
	Slider      bool
}

// Clamp limits v to [p.Min, p.Max]. Integer properties are truncated first.
// NaN maps to p.Min.
func (p Property) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return p.Min
	}
	if p.Kind == KindInt {
		v = float64(int64(v))
	}
	return min(max(v, p.Min), p.Max)
}

// Contains reports whether v is within [p.Min, p.Max].
func (p Property) Contains(v float64) bool {
	return v >= p.Min && v <= p.Max
}

var properties = []Property{
	{Key: KeyZoom, Description: "Amount to zoom in window", Kind: KindFloat, Min: 1, Max: 5, Step: 0.001, Slider: true},
	{Key: KeyScreenX, Description: "Offset relative to top left screen - x", Kind: KindInt, Min: 0, Max: maxScreenCoord, Step: 1},
	{Key: KeyScreenY, Description: "Offset relative to top left screen - y", Kind: KindInt, Min: 0, Max: maxScreenCoord, Step: 1},
	{Key: KeyPadding, Description: "Padding around each window", Kind: KindFloat, Min: 0, Max: 0.5, Step: 0.001, Slider: true},
	{Key: KeyScreenWidth, Description: "Screen width", Kind: KindInt, Min: 1, Max: maxScreenCoord, Step: 1},
	{Key: KeyScreenHeight, Description: "Screen height", Kind: KindInt, Min: 1, Max: maxScreenCoord, Step: 1},
	{Key: KeyAnimationTime, Description: "Animation Time (s)", Kind: KindFloat, Min: 0.3, Max: 10, Step: 0.001},
}

var propertyByKey = func() map[string]Property {
	m := make(map[string]Property, len(properties))
	for _, p := range properties {
		m[p.Key] = p
	}
	return m
}()

// Properties returns the descriptors of every recognised setting, in the
// order a settings panel should show them.
func Properties() []Property {
	out := make([]Property, len(properties))
	copy(out, properties)
	return out
}

// Lookup returns the descriptor for key.
func Lookup(key string) (Property, bool) {
	p, ok := propertyByKey[key]
	return p, ok
}
