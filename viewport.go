package focuszoom

import (
	"fmt"
	"math"

	"github.com/gogpu/focuszoom/snapshot"
)

// Tolerance is the smallest change in offset or zoom that makes the
// animator adopt a new target. Smaller changes are treated as jitter.
const Tolerance = 0.001

// Viewport is the visible part of the tracked region in normalized
// coordinates. Offset is the top-left corner; Zoom is the side length of
// the visible square, so 1 shows everything.
type Viewport struct {
	Offset Vec2
	Zoom   float64
}

// Resting returns the unzoomed viewport, offset (0,0) at zoom 1.
func Resting() Viewport {
	return Viewport{Zoom: 1}
}

// Lerp interpolates component-wise from v to w. t=0 returns v, t=1 returns w.
func (v Viewport) Lerp(w Viewport, t float64) Viewport {
	return Viewport{
		Offset: v.Offset.Lerp(w.Offset, t),
		Zoom:   v.Zoom + (w.Zoom-v.Zoom)*t,
	}
}

// Differs reports whether v and w differ by more than tol on either offset
// axis or on zoom.
func (v Viewport) Differs(w Viewport, tol float64) bool {
	return math.Abs(v.Offset.X-w.Offset.X) > tol ||
		math.Abs(v.Offset.Y-w.Offset.Y) > tol ||
		math.Abs(v.Zoom-w.Zoom) > tol
}

// Approx reports whether v and w are equal within epsilon on every component.
func (v Viewport) Approx(w Viewport, epsilon float64) bool {
	return v.Offset.Approx(w.Offset, epsilon) && math.Abs(v.Zoom-w.Zoom) < epsilon
}

// String returns "zoom@(x,y)".
func (v Viewport) String() string {
	return fmt.Sprintf("%.4g@(%.4g,%.4g)", v.Zoom, v.Offset.X, v.Offset.Y)
}

// Region is the part of the physical desktop that is tracked, in screen
// pixels.
type Region struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether the point lies inside r, edges included.
func (r Region) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// atLeastOnePixel returns r with a width and height of at least one pixel.
// NaN sizes become one pixel too.
func (r Region) atLeastOnePixel() Region {
	if !(r.Width >= 1) {
		r.Width = 1
	}
	if !(r.Height >= 1) {
		r.Height = 1
	}
	return r
}

// Normalize maps the centre and size of a window into region-relative
// coordinates where the region spans [0,1] on both axes. r must have a
// positive width and height.
func (r Region) Normalize(w snapshot.WindowSnapshot) (center, size Vec2) {
	cx, cy := w.Center()
	center = V2((cx-r.X)/r.Width, (cy-r.Y)/r.Height)
	size = V2(w.Width/r.Width, w.Height/r.Height)
	return center, size
}

// clampZoom limits a zoom to [bound, 1].
func clampZoom(z, bound float64) float64 {
	return min(max(z, bound), 1)
}

// clampOffset limits an offset so a box of side zoom stays inside [0,1].
func clampOffset(o, zoom float64) float64 {
	return min(max(o, 0), 1-zoom)
}

// SmoothStep is the cubic Hermite ease t²(3-2t) with t clamped to [0,1].
// Its derivative is zero at both ends.
func SmoothStep(t float64) float64 {
	t = min(max(t, 0), 1)
	return t * t * (3 - 2*t)
}
