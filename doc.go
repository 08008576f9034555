// Package focuszoom follows the focused window with an animated crop.
//
// # Overview
//
// A focuszoom [Filter] watches a stream of window geometry snapshots and
// turns the latest one into a normalized viewport (an offset and a zoom)
// that a render pass uses to crop and scale each video frame. The output
// appears to pan and zoom onto whatever window has focus.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/focuszoom"
//	    "github.com/gogpu/focuszoom/config"
//	)
//
//	f, err := focuszoom.New(config.Default(), source)
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	// Once per frame, on the render thread:
//	f.Tick(float32(dt.Seconds()))
//	params, err := f.Render(frame)
//
// # Architecture
//
// Data flows one way:
//
//	snapshot.Source -> snapshot.Producer -> snapshot.Queue -> Animator -> render.Binder
//
// The producer runs on its own goroutine and may block indefinitely on its
// source. The render thread never blocks: Tick drains whatever snapshots are
// queued, folds each into a target viewport and advances the current
// viewport toward it along a smooth-step curve.
//
// # Coordinate System
//
// Viewports are normalized to the tracked screen region:
//   - Offset (0,0) is the top-left of the region
//   - Zoom 1 shows the whole region, 0.5 shows a quarter of it
//   - Offset + Zoom never exceeds 1 on either axis
//
// # Logging
//
// The package is silent by default. See [SetLogger].
package focuszoom
