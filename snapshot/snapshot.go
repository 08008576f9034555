// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package snapshot

import "fmt"

// WindowSnapshot is the bounding box of the focused window at the moment a
// focus change was observed, in screen pixels.
//
// A snapshot is an immutable value. The animator folds it into a target
// decision and then discards it; later snapshots supersede earlier ones.
type WindowSnapshot struct {
	X, Y          float64
	Width, Height float64
}

// Rect is a convenience constructor for a WindowSnapshot.
func Rect(x, y, width, height float64) WindowSnapshot {
	return WindowSnapshot{X: x, Y: y, Width: width, Height: height}
}

// Center returns the center of the window in screen pixels.
func (s WindowSnapshot) Center() (x, y float64) {
	return s.X + s.Width/2, s.Y + s.Height/2
}

// String returns a compact WxH+X+Y representation (X11 geometry style).
func (s WindowSnapshot) String() string {
	return fmt.Sprintf("%gx%g+%g+%g", s.Width, s.Height, s.X, s.Y)
}

// Source observes window focus changes.
//
// WaitForEvent blocks until the focused window changes, then returns its
// geometry with ok == true. A source may return ok == false when it woke up
// without anything to report (a timeout or an event it chose to ignore); the
// producer uses those wake-ups to check for a shutdown request, so sources
// that can block for a long time should wake periodically.
//
// WaitForEvent is only ever called from the producer goroutine.
//
// A Source that also implements io.Closer is closed by the producer when it
// terminates, which is where OS-level resources (sockets, display
// connections) should be released.
type Source interface {
	WaitForEvent() (snap WindowSnapshot, ok bool)
}

// SourceFunc adapts an ordinary function to the Source interface.
type SourceFunc func() (WindowSnapshot, bool)

// WaitForEvent calls f.
func (f SourceFunc) WaitForEvent() (WindowSnapshot, bool) {
	return f()
}

// Control is a message sent from the consumer back to the producer.
type Control uint8

const (
	// Shutdown asks the producer goroutine to release its source and exit.
	Shutdown Control = iota + 1
)

// String returns the control message name.
func (c Control) String() string {
	switch c {
	case Shutdown:
		return "Shutdown"
	default:
		return fmt.Sprintf("Control(%d)", uint8(c))
	}
}
