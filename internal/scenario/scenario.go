// Package scenario builds the synthetic desktop the focuszoom commands
// animate: a handful of windows laid out over the tracked region and a
// script that focuses them in turn.
package scenario

import (
	"time"

	"github.com/gogpu/focuszoom/config"
	"github.com/gogpu/focuszoom/snapshot"
)

// Window is one window of the synthetic desktop.
type Window struct {
	Title string
	Rect  snapshot.WindowSnapshot

	// Color is the window fill as RGB in [0,1].
	Color [3]float64
}

// layout places windows as fractions of the region: x, y, width, height.
var layout = []struct {
	title      string
	x, y, w, h float64
	color      [3]float64
}{
	{"Editor", 0.04, 0.06, 0.46, 0.52, [3]float64{0.16, 0.20, 0.28}},
	{"Terminal", 0.56, 0.08, 0.38, 0.34, [3]float64{0.08, 0.08, 0.10}},
	{"Browser", 0.28, 0.50, 0.50, 0.44, [3]float64{0.92, 0.92, 0.94}},
	{"Chat", 0.80, 0.66, 0.17, 0.30, [3]float64{0.30, 0.18, 0.40}},
}

// Desktop returns the windows of the synthetic desktop in screen pixels,
// all inside the region s tracks.
func Desktop(s config.Settings) []Window {
	ox, oy := float64(s.ScreenX), float64(s.ScreenY)
	sw, sh := float64(s.ScreenWidth), float64(s.ScreenHeight)

	windows := make([]Window, len(layout))
	for i, l := range layout {
		windows[i] = Window{
			Title: l.title,
			Rect:  snapshot.Rect(ox+l.x*sw, oy+l.y*sh, l.w*sw, l.h*sh),
			Color: l.color,
		}
	}
	return windows
}

// Offscreen returns a window on a monitor to the right of the tracked
// region.
func Offscreen(s config.Settings) snapshot.WindowSnapshot {
	return snapshot.Rect(
		float64(s.ScreenX+s.ScreenWidth)+100,
		float64(s.ScreenY)+100,
		float64(s.ScreenWidth)/3,
		float64(s.ScreenHeight)/3,
	)
}

// Steps focuses each window in turn, interval apart, then moves focus off
// the region. The first focus change happens after one interval.
func Steps(windows []Window, offscreen snapshot.WindowSnapshot, interval time.Duration) []snapshot.Step {
	steps := make([]snapshot.Step, 0, len(windows)+1)
	for _, w := range windows {
		steps = append(steps, snapshot.Step{Delay: interval, Window: w.Rect})
	}
	return append(steps, snapshot.Step{Delay: interval, Window: offscreen})
}

// NewScript returns a snapshot source that replays Steps for the desktop
// of s.
func NewScript(s config.Settings, interval time.Duration, loop bool) *snapshot.Script {
	return snapshot.NewScript(Steps(Desktop(s), Offscreen(s), interval), loop)
}
