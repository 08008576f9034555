// Command focusdemo renders a synthetic desktop, follows a scripted
// sequence of focus changes with a focus-zoom filter and writes the cropped
// frames as PNG files.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/focuszoom"
	"github.com/gogpu/focuszoom/config"
	"github.com/gogpu/focuszoom/internal/scenario"
	"github.com/gogpu/focuszoom/render"
)

func main() {
	var (
		cfgPath  = flag.String("config", "", "JSON settings file (defaults when empty)")
		zoom     = flag.Float64("zoom", 3, "maximum magnification, overrides the config when > 0")
		width    = flag.Int("width", 640, "output frame width")
		height   = flag.Int("height", 360, "output frame height")
		fps      = flag.Int("fps", 30, "frames per second")
		seconds  = flag.Float64("seconds", 6, "length of the run")
		every    = flag.Int("every", 10, "write every n-th frame")
		interval = flag.Duration("interval", time.Second, "time between focus changes")
		outDir   = flag.String("out", "frames", "output directory")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	focuszoom.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

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
	settings = settings.Clamp()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	fonts, err := loadFonts()
	if err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}
	defer fonts.Close()

	windows := scenario.Desktop(settings)
	desktop := drawDesktop(settings, windows, fonts)

	target := render.NewPixmapTarget(*width, *height)
	f, err := focuszoom.New(settings, scenario.NewScript(settings, *interval, true),
		focuszoom.WithSoftwareTarget(target))
	if err != nil {
		log.Fatalf("Failed to create filter: %v", err)
	}
	defer f.Close()

	frames := int(*seconds * float64(*fps))
	if err := run(f, render.NewImageSource(desktop), target, fonts, runOptions{
		frames:   frames,
		fps:      *fps,
		every:    max(*every, 1),
		outDir:   *outDir,
		realTime: true,
	}); err != nil {
		log.Fatalf("Render failed: %v", err)
	}

	log.Printf("Wrote %d frames to %s (%dx%d)\n", (frames+*every-1)/max(*every, 1), *outDir, *width, *height)
}

// fontSet holds the faces used for window titles and frame captions.
type fontSet struct {
	regular, bold *text.FontSource
}

func loadFonts() (*fontSet, error) {
	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("go regular: %w", err)
	}
	bold, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		_ = regular.Close()
		return nil, fmt.Errorf("go bold: %w", err)
	}
	return &fontSet{regular: regular, bold: bold}, nil
}

func (fs *fontSet) Close() {
	_ = fs.regular.Close()
	_ = fs.bold.Close()
}

type runOptions struct {
	frames   int
	fps      int
	every    int
	outDir   string
	realTime bool
}

// run drives the filter at a fixed frame rate: tick, render, and every
// opts.every frames write the cropped frame with a caption.
func run(f *focuszoom.Filter, src render.Source, target *render.PixmapTarget, fonts *fontSet, opts runOptions) error {
	dt := 1 / float32(max(opts.fps, 1))
	var ticker *time.Ticker
	if opts.realTime {
		ticker = time.NewTicker(time.Duration(float64(time.Second) * float64(dt)))
		defer ticker.Stop()
	}

	for i := range opts.frames {
		if ticker != nil {
			<-ticker.C
		}
		f.Tick(dt)
		if _, err := f.Render(src); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if i%opts.every != 0 {
			continue
		}
		path := filepath.Join(opts.outDir, fmt.Sprintf("frame_%04d.png", i))
		if err := writeFrame(path, target, fonts, caption(i, f)); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}

func caption(frame int, f *focuszoom.Filter) string {
	a := f.Animator()
	return fmt.Sprintf("frame %04d  view %s  target %s  %3.0f%%",
		frame, a.Current(), a.Target(), a.Progress()*100)
}

// drawDesktop paints the tracked region with its windows, in region-local
// pixels.
func drawDesktop(s config.Settings, windows []scenario.Window, fonts *fontSet) image.Image {
	w, h := s.ScreenWidth, s.ScreenHeight
	dc := gg.NewContext(w, h)
	defer func() { _ = dc.Close() }()

	// Gradient background (simulated with rectangles)
	steps := 64
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps)
		dc.SetColor(gg.RGB(0.10+t*0.15, 0.22+t*0.20, 0.35+t*0.25))
		dc.DrawRectangle(0, float64(h)*t, float64(w), float64(h)/float64(steps)+1)
		_ = dc.Fill()
	}

	title := fonts.bold.Face(float64(h) / 40)
	body := fonts.regular.Face(float64(h) / 60)
	bar := float64(h) / 28

	for _, win := range windows {
		x := win.Rect.X - float64(s.ScreenX)
		y := win.Rect.Y - float64(s.ScreenY)

		dc.SetRGBA(0, 0, 0, 0.35)
		dc.DrawRoundedRectangle(x+6, y+8, win.Rect.Width, win.Rect.Height, 10)
		_ = dc.Fill()

		dc.SetRGB(win.Color[0], win.Color[1], win.Color[2])
		dc.DrawRoundedRectangle(x, y, win.Rect.Width, win.Rect.Height, 10)
		_ = dc.Fill()

		dc.SetRGB(0.85, 0.85, 0.88)
		dc.DrawRectangle(x, y, win.Rect.Width, bar)
		_ = dc.Fill()

		dc.SetFont(title)
		dc.SetRGB(0.1, 0.1, 0.12)
		dc.DrawString(win.Title, x+bar/2, y+bar*0.75)

		dc.SetFont(body)
		textColor := 0.85
		if luminance(win.Color) > 0.5 {
			textColor = 0.15
		}
		dc.SetRGB(textColor, textColor, textColor)
		lines := int((win.Rect.Height - bar*2) / (bar * 0.8))
		for l := 0; l < lines; l++ {
			dc.DrawString(fmt.Sprintf("%s line %d", win.Title, l+1), x+bar/2, y+bar*1.8+float64(l)*bar*0.8)
		}

		dc.SetRGB(1, 1, 1)
		dc.SetLineWidth(2)
		dc.DrawRoundedRectangle(x, y, win.Rect.Width, win.Rect.Height, 10)
		_ = dc.Stroke()
	}
	_ = dc.FlushGPU()
	return dc.Image()
}

func luminance(c [3]float64) float64 {
	return 0.2126*c[0] + 0.7152*c[1] + 0.0722*c[2]
}

// writeFrame saves the target with a caption strip along the bottom.
func writeFrame(path string, target *render.PixmapTarget, fonts *fontSet, caption string) error {
	dc := gg.NewContextForImage(target.Image())
	defer func() { _ = dc.Close() }()

	h := float64(target.Height())
	size := max(h/28, 9)
	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(0, h-size*1.8, float64(target.Width()), size*1.8)
	_ = dc.Fill()

	dc.SetFont(fonts.regular.Face(size))
	dc.SetRGB(1, 1, 1)
	dc.DrawString(caption, size/2, h-size*0.5)

	return dc.SavePNG(path)
}
