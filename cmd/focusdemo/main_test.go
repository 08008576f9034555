package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/focuszoom"
	"github.com/gogpu/focuszoom/config"
	"github.com/gogpu/focuszoom/internal/scenario"
	"github.com/gogpu/focuszoom/render"
)

func smallSettings() config.Settings {
	s := config.Default()
	s.ScreenWidth = 320
	s.ScreenHeight = 180
	s.Zoom = 2
	return s
}

func TestDrawDesktop(t *testing.T) {
	fonts, err := loadFonts()
	if err != nil {
		t.Fatalf("loadFonts() error = %v", err)
	}
	defer fonts.Close()

	s := smallSettings()
	img := drawDesktop(s, scenario.Desktop(s), fonts)
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 180 {
		t.Fatalf("desktop bounds = %v, want 320x180", b)
	}
	if _, _, _, a := img.At(5, 5).RGBA(); a == 0 {
		t.Error("background should be opaque")
	}
}

func TestRunWritesFrames(t *testing.T) {
	fonts, err := loadFonts()
	if err != nil {
		t.Fatalf("loadFonts() error = %v", err)
	}
	defer fonts.Close()

	s := smallSettings()
	target := render.NewPixmapTarget(160, 90)
	f, err := focuszoom.New(s, scenario.NewScript(s, time.Millisecond, true),
		focuszoom.WithSoftwareTarget(target))
	if err != nil {
		t.Fatalf("focuszoom.New() error = %v", err)
	}
	defer f.Close()

	dir := t.TempDir()
	src := render.NewImageSource(drawDesktop(s, scenario.Desktop(s), fonts))
	if err := run(f, src, target, fonts, runOptions{frames: 5, fps: 30, every: 2, outDir: dir}); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	for _, name := range []string{"frame_0000.png", "frame_0002.png", "frame_0004.png"} {
		file, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
		img, err := png.Decode(file)
		_ = file.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
		if b := img.Bounds(); b.Dx() != 160 || b.Dy() != 90 {
			t.Errorf("%s bounds = %v, want 160x90", name, b)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "frame_0001.png")); !os.IsNotExist(err) {
		t.Error("frame_0001.png should not be written")
	}
}
