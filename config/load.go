// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Parse reads a JSON object of settings over Default.
//
// Unlike Settings.Apply, which clamps, Parse is strict: unknown keys and
// out-of-range values are rejected so a typo in a file does not silently
// change behaviour.
func Parse(data []byte) (Settings, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var sec Section
	if err := dec.Decode(&sec); err != nil {
		return Settings{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := sec.Check(); err != nil {
		return Settings{}, err
	}

	s := Default()
	for _, p := range properties {
		v, ok := sec.Float(p.Key)
		if !ok {
			if _, present := sec[p.Key]; present {
				return Settings{}, fmt.Errorf("config: %s: not a number", p.Key)
			}
			continue
		}
		if !p.Contains(v) {
			return Settings{}, fmt.Errorf("%w: %s = %g, want [%g, %g]", ErrOutOfRange, p.Key, v, p.Min, p.Max)
		}
	}
	s.Apply(sec)
	return s, nil
}

// Load reads settings from a JSON file. See Parse.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("config: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
