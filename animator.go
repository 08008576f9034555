package focuszoom

import (
	"iter"

	"github.com/gogpu/focuszoom/snapshot"
)

// Animator turns window snapshots into a target viewport and eases the
// current viewport toward it.
//
// It holds three viewports: current is what is rendered, from is where the
// active transition started and target is where it ends. Adopting a new
// target copies current into from and restarts progress, so the rendered
// viewport never jumps.
//
// An Animator is not safe for concurrent use. It belongs to the render
// thread.
type Animator struct {
	region        Region
	padding       float64
	zoomBound     float64
	animationTime float64

	current  Viewport
	from     Viewport
	target   Viewport
	progress float64
}

// NewAnimator returns an animator at rest. zoomBound is the smallest zoom
// it will produce (the reciprocal of the configured magnification).
//
// The initial pose is offset (0,0) at zoomBound with progress 1, so nothing
// moves until the first snapshot arrives. A region narrower or shorter than
// one pixel is widened to one pixel.
func NewAnimator(region Region, padding, zoomBound, animationTime float64) *Animator {
	rest := Viewport{Zoom: zoomBound}
	return &Animator{
		region:        region.atLeastOnePixel(),
		padding:       padding,
		zoomBound:     zoomBound,
		animationTime: animationTime,
		current:       rest,
		from:          rest,
		target:        rest,
		progress:      1,
	}
}

// Current returns the viewport to render this frame.
func (a *Animator) Current() Viewport { return a.current }

// From returns the viewport the active transition started at.
func (a *Animator) From() Viewport { return a.from }

// Target returns the viewport the active transition ends at.
func (a *Animator) Target() Viewport { return a.target }

// Progress returns the linear transition progress in [0,1].
func (a *Animator) Progress() float64 { return a.progress }

// Region returns the tracked region.
func (a *Animator) Region() Region { return a.region }

// Settled reports whether the active transition has finished.
func (a *Animator) Settled() bool { return a.progress >= 1 }

// SetRegion replaces the tracked region. It affects the next snapshot; the
// current target is kept. Like NewAnimator, it widens a degenerate region to
// one pixel.
func (a *Animator) SetRegion(r Region) { a.region = r.atLeastOnePixel() }

// SetPadding replaces the normalized margin added around windows.
func (a *Animator) SetPadding(p float64) { a.padding = p }

// SetAnimationTime replaces the transition duration in seconds. The active
// transition continues at the new rate.
func (a *Animator) SetAnimationTime(seconds float64) { a.animationTime = seconds }

// SetZoomBound replaces the smallest zoom and retargets to it.
//
// Unlike a snapshot, which only moves the target, a new bound always starts
// a fresh transition from the current viewport: progress restarts at 0 and
// the target offset is clamped so the box stays on screen at the new zoom.
// A settled view therefore glides to the new zoom instead of jumping.
func (a *Animator) SetZoomBound(bound float64) {
	a.zoomBound = bound
	next := Viewport{
		Offset: V2(clampOffset(a.target.Offset.X, bound), clampOffset(a.target.Offset.Y, bound)),
		Zoom:   bound,
	}
	a.retarget(next)
}

// Tick runs one frame: it folds every pending snapshot in order, then
// advances the transition by elapsed seconds.
func (a *Animator) Tick(elapsed float64, snapshots iter.Seq[snapshot.WindowSnapshot]) {
	if snapshots != nil {
		for s := range snapshots {
			a.Apply(s)
		}
	}
	a.Advance(elapsed)
}

// Apply folds one snapshot into the target and reports whether a new
// target was adopted.
//
// A window whose top-left lies outside the region sends the target back to
// rest. The reset only fires while the target's zoom and both offsets all
// differ from the resting values, so a target sitting on an edge of the
// screen is left alone.
//
// A window inside the region is framed: its size plus padding gives the
// zoom, its centre gives the offset, and the result is adopted when it
// differs from the current target by more than Tolerance.
func (a *Animator) Apply(s snapshot.WindowSnapshot) bool {
	if !a.region.Contains(s.X, s.Y) {
		t := a.target
		if t.Zoom != 1 && t.Offset.X != 0 && t.Offset.Y != 0 {
			a.retarget(Resting())
			return true
		}
		return false
	}

	next := a.frame(s)
	if !next.Differs(a.target, Tolerance) {
		return false
	}
	a.retarget(next)
	return true
}

// Advance moves the transition forward by elapsed seconds and recomputes
// the current viewport. Negative elapsed time is ignored.
func (a *Animator) Advance(elapsed float64) {
	if a.animationTime > 0 {
		a.progress = min(a.progress+max(elapsed, 0)/a.animationTime, 1)
	} else {
		a.progress = 1
	}
	a.current = a.from.Lerp(a.target, SmoothStep(a.progress))
}

// frame computes the viewport that shows window s with padding.
func (a *Animator) frame(s snapshot.WindowSnapshot) Viewport {
	center, size := a.region.Normalize(s)
	zoom := clampZoom(max(size.X, size.Y)+a.padding, a.zoomBound)
	corner := center.Sub(V2(zoom/2, zoom/2))
	return Viewport{
		Offset: V2(clampOffset(corner.X, zoom), clampOffset(corner.Y, zoom)),
		Zoom:   zoom,
	}
}

func (a *Animator) retarget(next Viewport) {
	a.from = a.current
	a.target = next
	a.progress = 0
	Logger().Debug("focuszoom: new target", "from", a.from, "to", next)
}
