package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/focuszoom"
	"github.com/gogpu/focuszoom/internal/scenario"
)

var (
	regionStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	windowStyle  = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	targetStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	currentStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	statusStyle  = tcell.StyleDefault.Reverse(true)
)

// view draws the tracked region scaled to the terminal: the desktop
// windows, the viewport the animation is heading to and the one it is
// showing now. The last row is a status line.
type view struct {
	screen  tcell.Screen
	region  focuszoom.Region
	windows []scenario.Window
}

func newView(screen tcell.Screen, region focuszoom.Region, windows []scenario.Window) *view {
	return &view{screen: screen, region: region, windows: windows}
}

// cell maps a normalized region coordinate to a terminal cell.
func (v *view) cell(u, w float64) (x, y int) {
	sw, sh := v.screen.Size()
	cols, rows := max(sw-1, 1), max(sh-2, 1)
	return int(u*float64(cols) + 0.5), int(w*float64(rows) + 0.5)
}

func (v *view) draw(a *focuszoom.Animator, zoom float64) {
	v.screen.Clear()

	v.box(0, 0, 1, 1, regionStyle)
	for _, win := range v.windows {
		v.window(win)
	}

	target := a.Target()
	v.box(target.Offset.X, target.Offset.Y, target.Zoom, target.Zoom, targetStyle)
	cur := a.Current()
	v.box(cur.Offset.X, cur.Offset.Y, cur.Zoom, cur.Zoom, currentStyle)

	_, sh := v.screen.Size()
	v.text(0, sh-1, v.status(a, zoom), statusStyle)
}

func (v *view) status(a *focuszoom.Animator, zoom float64) string {
	return fmt.Sprintf(" view %s  target %s  %3.0f%%  zoom %gx  [+/-] zoom  [q] quit ",
		a.Current(), a.Target(), a.Progress()*100, zoom)
}

func (v *view) window(win scenario.Window) {
	r := v.region
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	x0, y0 := v.cell((win.Rect.X-r.X)/r.Width, (win.Rect.Y-r.Y)/r.Height)
	x1, y1 := v.cell((win.Rect.X+win.Rect.Width-r.X)/r.Width, (win.Rect.Y+win.Rect.Height-r.Y)/r.Height)
	for y := y0 + 1; y < y1; y++ {
		for x := x0 + 1; x < x1; x++ {
			v.screen.SetContent(x, y, ' ', nil, windowStyle)
		}
	}
	if x1-x0 > 2 && y1-y0 > 1 {
		title := []rune(win.Title)
		v.text(x0+1, y0+1, string(title[:min(len(title), x1-x0-1)]), windowStyle.Bold(true))
	}
}

// box outlines the normalized rectangle at (x, y) of size w by h.
func (v *view) box(x, y, w, h float64, style tcell.Style) {
	x0, y0 := v.cell(x, y)
	x1, y1 := v.cell(x+w, y+h)
	if x1 <= x0 || y1 <= y0 {
		v.screen.SetContent(x0, y0, '+', nil, style)
		return
	}
	for cx := x0 + 1; cx < x1; cx++ {
		v.screen.SetContent(cx, y0, tcell.RuneHLine, nil, style)
		v.screen.SetContent(cx, y1, tcell.RuneHLine, nil, style)
	}
	for cy := y0 + 1; cy < y1; cy++ {
		v.screen.SetContent(x0, cy, tcell.RuneVLine, nil, style)
		v.screen.SetContent(x1, cy, tcell.RuneVLine, nil, style)
	}
	v.screen.SetContent(x0, y0, tcell.RuneULCorner, nil, style)
	v.screen.SetContent(x1, y0, tcell.RuneURCorner, nil, style)
	v.screen.SetContent(x0, y1, tcell.RuneLLCorner, nil, style)
	v.screen.SetContent(x1, y1, tcell.RuneLRCorner, nil, style)
}

func (v *view) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
