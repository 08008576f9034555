package focuszoom

import (
	"iter"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/gogpu/focuszoom/snapshot"
)

var desktop = Region{Width: 1920, Height: 1080}

// corner is the window of the bottom-right scenario: centred at
// (0.875, 0.875) with a normalized size of 0.25.
var corner = snapshot.Rect(1440, 810, 480, 270)

func snaps(s ...snapshot.WindowSnapshot) iter.Seq[snapshot.WindowSnapshot] {
	return slices.Values(s)
}

func TestNewAnimatorAtRest(t *testing.T) {
	a := NewAnimator(desktop, 0.1, 0.5, 0.3)

	want := Viewport{Zoom: 0.5}
	for name, v := range map[string]Viewport{
		"current": a.Current(),
		"from":    a.From(),
		"target":  a.Target(),
	} {
		if v != want {
			t.Errorf("%s = %v, want %v", name, v, want)
		}
	}
	if a.Progress() != 1 || !a.Settled() {
		t.Errorf("Progress() = %v, want 1", a.Progress())
	}

	// Ticking without snapshots changes nothing.
	a.Tick(0.016, nil)
	if a.Current() != want {
		t.Errorf("current after idle tick = %v, want %v", a.Current(), want)
	}
}

func TestAnimatorFullFrameWindowKeepsRest(t *testing.T) {
	a := NewAnimator(desktop, 0, 1, 0.3)

	if a.Apply(snapshot.Rect(0, 0, 960, 540)) {
		t.Error("Apply() adopted a target identical to the resting pose")
	}
	if a.Target() != Resting() {
		t.Errorf("target = %v, want %v", a.Target(), Resting())
	}
	if a.Progress() != 1 {
		t.Errorf("Progress() = %v, want 1", a.Progress())
	}
}

func TestAnimatorCornerWindow(t *testing.T) {
	a := NewAnimator(desktop, 0, 0.5, 0.3)

	if !a.Apply(corner) {
		t.Fatal("Apply() did not adopt a target")
	}
	want := Viewport{Offset: V2(0.5, 0.5), Zoom: 0.5}
	if !a.Target().Approx(want, epsilon) {
		t.Errorf("target = %v, want %v", a.Target(), want)
	}
	if a.Progress() != 0 {
		t.Errorf("Progress() = %v, want 0", a.Progress())
	}

	for range 30 {
		a.Advance(0.01)
	}
	if !a.Current().Approx(want, 1e-6) {
		t.Errorf("current after animation time = %v, want %v", a.Current(), want)
	}
}

func TestAnimatorLeavingRegionResetsOnce(t *testing.T) {
	a := NewAnimator(desktop, 0, 0.5, 0.3)
	a.Tick(0.3, snaps(corner))

	outside := snapshot.Rect(2000, 100, 400, 300)
	if !a.Apply(outside) {
		t.Fatal("first off-region snapshot did not reset the target")
	}
	if a.Target() != Resting() {
		t.Errorf("target = %v, want %v", a.Target(), Resting())
	}
	if !a.From().Approx(Viewport{Offset: V2(0.5, 0.5), Zoom: 0.5}, 1e-6) {
		t.Errorf("from = %v, want the viewport before the reset", a.From())
	}

	a.Advance(0.1)
	progress := a.Progress()
	for range 5 {
		if a.Apply(outside) {
			t.Fatal("repeated off-region snapshot changed the target again")
		}
	}
	if a.Progress() != progress {
		t.Errorf("Progress() = %v, want %v (no restart)", a.Progress(), progress)
	}
}

// An off-region snapshot only resets a target whose zoom and both offsets
// differ from rest. A target on the left screen edge has offset x == 0, so
// leaving the region keeps it.
func TestAnimatorLeavingRegionFromEdgeTarget(t *testing.T) {
	a := NewAnimator(desktop, 0, 0.5, 0.3)

	edge := snapshot.Rect(0, 810, 480, 270)
	a.Tick(0.3, snaps(edge))
	want := Viewport{Offset: V2(0, 0.5), Zoom: 0.5}
	if !a.Target().Approx(want, epsilon) {
		t.Fatalf("target = %v, want %v", a.Target(), want)
	}

	if a.Apply(snapshot.Rect(-10, 100, 400, 300)) {
		t.Error("off-region snapshot reset a target with offset x == 0")
	}
	if !a.Target().Approx(want, epsilon) {
		t.Errorf("target = %v, want %v", a.Target(), want)
	}
}

func TestAnimatorEndToEndTiming(t *testing.T) {
	a := NewAnimator(desktop, 0, 0.5, 0.3)

	a.Tick(0.15, snaps(corner))
	if math.Abs(a.Progress()-0.5) > epsilon {
		t.Errorf("Progress() after 0.15s = %v, want 0.5", a.Progress())
	}
	mid := Viewport{Offset: V2(0.25, 0.25), Zoom: 0.5}
	if !a.Current().Approx(mid, 1e-6) {
		t.Errorf("current after 0.15s = %v, want %v", a.Current(), mid)
	}

	a.Tick(0.15, nil)
	if math.Abs(a.Progress()-1) > epsilon {
		t.Errorf("Progress() after 0.3s = %v, want 1", a.Progress())
	}
	if !a.Current().Approx(a.Target(), 1e-6) {
		t.Errorf("current after 0.3s = %v, want %v", a.Current(), a.Target())
	}

	// Progress saturates.
	a.Tick(5, nil)
	if a.Progress() != 1 {
		t.Errorf("Progress() = %v, want 1", a.Progress())
	}
}

func TestAnimatorRetargetIsContinuous(t *testing.T) {
	a := NewAnimator(desktop, 0, 0.25, 0.3)

	a.Tick(0.1, snaps(corner))
	before := a.Current()

	if !a.Apply(snapshot.Rect(100, 100, 480, 270)) {
		t.Fatal("Apply() did not adopt the second target")
	}
	if a.From() != before {
		t.Errorf("from = %v, want current before adoption %v", a.From(), before)
	}
	a.Advance(0)
	if !a.Current().Approx(before, epsilon) {
		t.Errorf("current jumped from %v to %v on retarget", before, a.Current())
	}
}

func TestAnimatorDuplicateSnapshotsAreIdempotent(t *testing.T) {
	once := NewAnimator(desktop, 0.05, 0.25, 0.3)
	twice := NewAnimator(desktop, 0.05, 0.25, 0.3)

	once.Tick(0.05, snaps(corner))
	twice.Tick(0.05, snaps(corner, corner))

	if once.Target() != twice.Target() {
		t.Errorf("target = %v after two snapshots, want %v", twice.Target(), once.Target())
	}
	if once.Progress() != twice.Progress() {
		t.Errorf("progress = %v after two snapshots, want %v", twice.Progress(), once.Progress())
	}
}

func TestAnimatorSubToleranceJitterIgnored(t *testing.T) {
	a := NewAnimator(desktop, 0, 0.25, 0.3)
	a.Tick(0.3, snaps(snapshot.Rect(400, 300, 480, 270)))
	target := a.Target()

	// Half a pixel is well below 0.001 of the region.
	if a.Apply(snapshot.Rect(400.5, 300.5, 480, 270)) {
		t.Error("sub-tolerance move restarted the animation")
	}
	if a.Target() != target || a.Progress() != 1 {
		t.Errorf("target = %v progress = %v, want unchanged", a.Target(), a.Progress())
	}
}

func TestAnimatorLastSnapshotWins(t *testing.T) {
	a := NewAnimator(desktop, 0, 0.25, 0.3)
	b := NewAnimator(desktop, 0, 0.25, 0.3)

	last := snapshot.Rect(100, 100, 480, 270)
	a.Tick(0.016, snaps(corner, snapshot.Rect(900, 500, 200, 200), last))
	b.Tick(0.016, snaps(last))

	if !a.Target().Approx(b.Target(), epsilon) {
		t.Errorf("target = %v, want %v", a.Target(), b.Target())
	}
}

func TestAnimatorConvergesWithoutOvershoot(t *testing.T) {
	a := NewAnimator(desktop, 0, 0.5, 0.3)
	a.Apply(corner)
	from, to := a.From(), a.Target()

	prev := a.Current()
	for range 100 {
		a.Advance(0.007)
		cur := a.Current()
		if cur.Offset.X < prev.Offset.X-epsilon || cur.Offset.X > to.Offset.X+epsilon {
			t.Fatalf("offset x moved backwards or overshot: %v -> %v (target %v)", prev, cur, to)
		}
		if cur.Offset.Y < from.Offset.Y-epsilon || cur.Offset.Y > to.Offset.Y+epsilon {
			t.Fatalf("offset y out of [%v, %v]: %v", from.Offset.Y, to.Offset.Y, cur)
		}
		prev = cur
	}
	if !a.Current().Approx(to, 1e-6) {
		t.Errorf("current = %v, want %v", a.Current(), to)
	}
}

func TestAnimatorVariableFrameTimes(t *testing.T) {
	frames := [][]float64{
		{0.3},
		{0.1, 0.1, 0.1},
		{0.016, 0.033, 0.2, 0.051},
		{0.001, 0.299},
	}
	for _, dts := range frames {
		a := NewAnimator(desktop, 0, 0.5, 0.3)
		a.Apply(corner)
		for _, dt := range dts {
			a.Advance(dt)
		}
		if !a.Current().Approx(a.Target(), 1e-6) {
			t.Errorf("frames %v: current = %v, want %v", dts, a.Current(), a.Target())
		}
	}
}

func TestAnimatorNegativeElapsedIgnored(t *testing.T) {
	a := NewAnimator(desktop, 0, 0.5, 0.3)
	a.Apply(corner)
	a.Advance(0.1)
	p := a.Progress()

	a.Advance(-1)
	if a.Progress() != p {
		t.Errorf("Progress() = %v after negative elapsed, want %v", a.Progress(), p)
	}
}

func TestAnimatorInvariantsUnderRandomSnapshots(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	a := NewAnimator(Region{X: 100, Y: 50, Width: 1920, Height: 1080}, 0.1, 0.2, 0.3)

	for i := range 2000 {
		var batch []snapshot.WindowSnapshot
		for range rng.IntN(3) {
			batch = append(batch, snapshot.Rect(
				rng.Float64()*2400-200,
				rng.Float64()*1400-200,
				rng.Float64()*2400,
				rng.Float64()*1400,
			))
		}
		a.Tick(rng.Float64()*0.05, slices.Values(batch))

		p := a.Progress()
		if p < 0 || p > 1 {
			t.Fatalf("frame %d: progress %v out of [0,1]", i, p)
		}
		for name, v := range map[string]Viewport{"current": a.Current(), "target": a.Target()} {
			if v.Zoom <= 0 || v.Zoom > 1 {
				t.Fatalf("frame %d: %s zoom %v out of (0,1]", i, name, v.Zoom)
			}
			if v.Offset.X < -epsilon || v.Offset.Y < -epsilon {
				t.Fatalf("frame %d: %s offset %v negative", i, name, v.Offset)
			}
			if v.Offset.X+v.Zoom > 1+epsilon || v.Offset.Y+v.Zoom > 1+epsilon {
				t.Fatalf("frame %d: %s box %v leaves the screen", i, name, v)
			}
		}
	}
}

func TestAnimatorSetZoomBound(t *testing.T) {
	a := NewAnimator(desktop, 0, 0.5, 0.3)
	a.Tick(0.3, snaps(corner))
	before := a.Current()

	a.SetZoomBound(0.25)
	if want := (Viewport{Offset: V2(0.5, 0.5), Zoom: 0.25}); !a.Target().Approx(want, epsilon) {
		t.Errorf("target = %v, want %v", a.Target(), want)
	}
	if a.Progress() != 0 || a.From() != before {
		t.Errorf("progress = %v from = %v, want a new transition from %v", a.Progress(), a.From(), before)
	}

	// At zoom 1 the only valid offset is the origin.
	a.SetZoomBound(1)
	if a.Target() != Resting() {
		t.Errorf("target = %v, want %v", a.Target(), Resting())
	}
}

func TestAnimatorSetZoomBoundFromSettled(t *testing.T) {
	a := NewAnimator(desktop, 0, 0.25, 0.3)
	a.Tick(0.3, snaps(corner))
	if !a.Settled() {
		t.Fatalf("progress = %v, want a settled animator", a.Progress())
	}
	settled := a.Current()

	// Zooming out from the corner clamps the offset so the box fits.
	a.SetZoomBound(0.5)
	if a.Current() != settled {
		t.Errorf("current = %v, want no jump from %v", a.Current(), settled)
	}
	if a.Settled() || a.From() != settled {
		t.Errorf("progress = %v from = %v, want a restarted transition", a.Progress(), a.From())
	}
	want := Viewport{Offset: V2(0.5, 0.5), Zoom: 0.5}
	if !a.Target().Approx(want, epsilon) {
		t.Errorf("target = %v, want %v", a.Target(), want)
	}

	a.Advance(0.15)
	mid := a.Current()
	if mid.Zoom <= settled.Zoom || mid.Zoom >= want.Zoom {
		t.Errorf("halfway zoom = %v, want between %v and %v", mid.Zoom, settled.Zoom, want.Zoom)
	}
	if mid.Offset.X+mid.Zoom > 1+epsilon || mid.Offset.Y+mid.Zoom > 1+epsilon {
		t.Errorf("halfway viewport %v leaves the region", mid)
	}
	a.Advance(0.15)
	if !a.Current().Approx(want, epsilon) {
		t.Errorf("arrived at %v, want %v", a.Current(), want)
	}
}

func TestAnimatorDegenerateRegion(t *testing.T) {
	tests := []struct {
		name   string
		region Region
		want   Region
	}{
		{"zero", Region{}, Region{Width: 1, Height: 1}},
		{"zero width", Region{X: 5, Width: 0, Height: 1080}, Region{X: 5, Width: 1, Height: 1080}},
		{"negative height", Region{Width: 1920, Height: -3}, Region{Width: 1920, Height: 1}},
		{"NaN", Region{Width: math.NaN(), Height: math.NaN()}, Region{Width: 1, Height: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnimator(tt.region, 0, 0.25, 0.3)
			if a.Region() != tt.want {
				t.Errorf("NewAnimator region = %v, want %v", a.Region(), tt.want)
			}
			a.SetRegion(tt.region)
			if a.Region() != tt.want {
				t.Errorf("SetRegion region = %v, want %v", a.Region(), tt.want)
			}

			a.Tick(0.3, snaps(snapshot.Rect(tt.want.X, tt.want.Y, 0.5, 0.5)))
			cur := a.Current()
			for _, v := range []float64{cur.Offset.X, cur.Offset.Y, cur.Zoom} {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("current = %v, want finite", cur)
				}
			}
		})
	}
}

func TestAnimatorSetters(t *testing.T) {
	a := NewAnimator(desktop, 0, 0.25, 0.3)

	right := Region{X: 1920, Width: 1920, Height: 1080}
	a.SetRegion(right)
	if a.Region() != right {
		t.Errorf("Region() = %v, want %v", a.Region(), right)
	}
	// The old region's corner window is now off-region.
	if a.Apply(corner) {
		t.Error("window outside the new region adopted a target")
	}

	a.SetPadding(0.25)
	a.Apply(snapshot.Rect(1920+1440, 810, 480, 270))
	if want := 0.5; math.Abs(a.Target().Zoom-want) > epsilon {
		t.Errorf("target zoom with padding = %v, want %v", a.Target().Zoom, want)
	}

	a.SetAnimationTime(1)
	a.Advance(0.5)
	if math.Abs(a.Progress()-0.5) > epsilon {
		t.Errorf("Progress() = %v, want 0.5 with a 1s animation", a.Progress())
	}

	a.SetAnimationTime(0)
	a.Advance(0)
	if a.Progress() != 1 {
		t.Errorf("Progress() = %v, want 1 with a zero animation time", a.Progress())
	}
}
