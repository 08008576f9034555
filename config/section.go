// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Section is a loosely typed bag of setting values keyed by name, the shape
// host applications and JSON files hand us. Only keys present in the bag
// are considered set.
type Section map[string]any

// Float returns the value of key as a float64. The second result is false if
// the key is absent or its value cannot be read as a number. NaN is not a
// number.
func (s Section) Float(key string) (float64, bool) {
	v, ok := s.float(key)
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func (s Section) float(key string) (float64, bool) {
	raw, ok := s[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		if parsed, err := v.Float64(); err == nil {
			return parsed, true
		}
	case string:
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed, true
		}
	}
	return 0, false
}

// Int returns the value of key as an int. Fractional numbers are truncated.
// The second result is false if the key is absent or not numeric.
func (s Section) Int(key string) (int, bool) {
	raw, ok := s[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if math.IsNaN(v) {
			return 0, false
		}
		return int(v), true
	case float32:
		if math.IsNaN(float64(v)) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		if parsed, err := v.Int64(); err == nil {
			return int(parsed), true
		}
		if parsed, err := v.Float64(); err == nil && !math.IsNaN(parsed) {
			return int(parsed), true
		}
	case string:
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed, true
		}
	}
	return 0, false
}

// Check reports the first key (in sorted order) that is not a recognised
// setting, wrapped in ErrUnknownKey.
func (s Section) Check() error {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := Lookup(k); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownKey, k)
		}
	}
	return nil
}
