// Command focuswatch shows a focus-zoom filter following a scripted desktop
// in the terminal. The green box is the viewport being shown, the yellow box
// the viewport the animation is heading to.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/focuszoom"
	"github.com/gogpu/focuszoom/config"
	"github.com/gogpu/focuszoom/internal/scenario"
)

const zoomStep = 0.5

func main() {
	var (
		cfgPath  = flag.String("config", "", "JSON settings file (defaults when empty)")
		zoom     = flag.Float64("zoom", 3, "maximum magnification, overrides the config when > 0")
		interval = flag.Duration("interval", 2*time.Second, "time between focus changes")
		logPath  = flag.String("log", "", "write debug logs to this file")
	)
	flag.Parse()

	if *logPath != "" {
		lf, err := os.Create(*logPath)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer lf.Close()
		focuszoom.SetLogger(slog.New(slog.NewTextHandler(lf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	settings := config.Default()
	if *cfgPath != "" {
		var err error
		if settings, err = config.Load(*cfgPath); err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}
	}
	if *zoom > 0 {
		settings.Zoom = *zoom
	}

	f, err := focuszoom.New(settings, scenario.NewScript(settings, *interval, true))
	if err != nil {
		log.Fatalf("Failed to create filter: %v", err)
	}
	defer f.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init screen: %v", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	s := f.Settings()
	newApp(screen, f, newView(screen, focuszoom.RegionOf(s), scenario.Desktop(s))).run()
}

type app struct {
	screen tcell.Screen
	filter *focuszoom.Filter
	view   *view
	quit   chan struct{}
}

func newApp(screen tcell.Screen, f *focuszoom.Filter, v *view) *app {
	return &app{screen: screen, filter: f, view: v, quit: make(chan struct{})}
}

// run pumps terminal events and redraws every 16ms until the user quits.
func (a *app) run() {
	events := make(chan tcell.Event, 10)
	go a.pump(events)

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !a.handleEvent(ev) {
				close(a.quit)
				return
			}
		case now := <-ticker.C:
			a.frame(float32(now.Sub(last).Seconds()))
			last = now
		}
	}
}

// pump forwards terminal events to events until the screen is finalized or
// the app quits.
func (a *app) pump(events chan<- tcell.Event) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-a.quit:
			return
		}
	}
}

func (a *app) frame(elapsed float32) {
	a.filter.Tick(elapsed)
	a.view.draw(a.filter.Animator(), a.filter.Settings().Zoom)
	a.screen.Show()
}

// handleEvent reacts to one terminal event and reports whether to keep
// running.
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case '+', '=':
				a.setZoom(a.filter.Settings().Zoom + zoomStep)
			case '-', '_':
				a.setZoom(a.filter.Settings().Zoom - zoomStep)
			}
		}
	}
	return true
}

func (a *app) setZoom(z float64) {
	if err := a.filter.Update(config.Section{config.KeyZoom: z}); err != nil {
		focuszoom.Logger().Warn("focuswatch: zoom update failed", "err", err)
	}
}
