package focuszoom_test

import (
	"fmt"
	"slices"

	"github.com/gogpu/focuszoom"
	"github.com/gogpu/focuszoom/snapshot"
)

// A window in the bottom-right quarter of a 1920x1080 desktop at 2x zoom.
func ExampleAnimator() {
	a := focuszoom.NewAnimator(focuszoom.Region{Width: 1920, Height: 1080}, 0, 0.5, 0.3)

	a.Tick(0.15, slices.Values([]snapshot.WindowSnapshot{
		snapshot.Rect(1440, 810, 480, 270),
	}))
	fmt.Println("target:", a.Target())
	fmt.Println("halfway:", a.Current())

	a.Tick(0.15, nil)
	fmt.Println("arrived:", a.Current())
	// Output:
	// target: 0.5@(0.5,0.5)
	// halfway: 0.5@(0.25,0.25)
	// arrived: 0.5@(0.5,0.5)
}

func ExampleSmoothStep() {
	for _, t := range []float64{0, 0.25, 0.5, 0.75, 1} {
		fmt.Printf("%.5f ", focuszoom.SmoothStep(t))
	}
	fmt.Println()
	// Output: 0.00000 0.15625 0.50000 0.84375 1.00000
}
