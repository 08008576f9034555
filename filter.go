package focuszoom

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gogpu/focuszoom/config"
	"github.com/gogpu/focuszoom/render"
	"github.com/gogpu/focuszoom/snapshot"
)

// Filter identity as registered with a host.
const (
	FilterID   = "scroll_focus_filter"
	FilterName = "Scroll Focus Filter"
)

// Filter errors.
var (
	// ErrClosed is returned by Render and Update after Close.
	ErrClosed = errors.New("focuszoom: filter closed")

	// ErrNilSource is returned by New when no snapshot source is given.
	ErrNilSource = errors.New("focuszoom: nil snapshot source")
)

// Filter is one focus-zoom instance: a snapshot producer running on its own
// goroutine, an Animator owned by the render thread, and an optional Binder
// that receives the crop parameters each frame.
//
// Lifecycle:
//
//	f, err := focuszoom.New(config.Default(), src, focuszoom.WithBinder(pass))
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	// Per frame, on the render thread:
//	f.Tick(dt)
//	params, err := f.Render(frame)
//
// Tick, Render, Update and Close must be called from the same goroutine.
type Filter struct {
	settings config.Settings
	anim     *Animator
	producer *snapshot.Producer

	binder     render.Binder
	ownsBinder bool

	closed  bool
	cleanup runtime.Cleanup
}

// New creates a filter and starts its snapshot producer.
//
// Settings are clamped into range unless WithStrictSettings is given, in
// which case out-of-range settings are rejected. Creation fails if the crop
// shader's parameters cannot be resolved or a GPU pass requested with
// WithGPU cannot be created; nothing is started in that case.
func New(settings config.Settings, src snapshot.Source, opts ...Option) (*Filter, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.strict {
		if err := settings.Validate(); err != nil {
			return nil, err
		}
	} else {
		settings = settings.Clamp()
	}

	if _, err := render.DefaultCropShader(); err != nil {
		return nil, fmt.Errorf("focuszoom: crop shader: %w", err)
	}

	binder, owns, err := o.binder()
	if err != nil {
		return nil, fmt.Errorf("focuszoom: create binder: %w", err)
	}

	f := &Filter{
		settings:   settings,
		anim:       NewAnimator(RegionOf(settings), settings.Padding, settings.InternalZoom(), settings.AnimationTime),
		producer:   snapshot.NewProducer(src),
		binder:     binder,
		ownsBinder: owns,
	}
	f.producer.Start()
	// A filter dropped without Close still stops its producer.
	f.cleanup = runtime.AddCleanup(f, func(p *snapshot.Producer) { p.Shutdown() }, f.producer)

	var caps render.BinderCapabilities
	if cb, ok := binder.(render.CapableBinder); ok {
		caps = cb.Capabilities()
	}
	Logger().Info("focuszoom: filter created",
		"id", FilterID,
		"gpu", caps.IsGPU,
		"filtering", caps.Filtering,
		"zoom", settings.Zoom,
		"region", f.anim.Region(),
		"animation_time", settings.AnimationTime)
	return f, nil
}

// RegionOf returns the tracked region described by s.
func RegionOf(s config.Settings) Region {
	return Region{
		X:      float64(s.ScreenX),
		Y:      float64(s.ScreenY),
		Width:  float64(s.ScreenWidth),
		Height: float64(s.ScreenHeight),
	}
}

// Tick drains every pending snapshot and advances the animation by elapsed
// seconds. It never blocks. After Close it does nothing.
func (f *Filter) Tick(elapsed float32) {
	if f.closed {
		return
	}
	f.anim.Tick(float64(elapsed), f.producer.Events().Drain())
}

// Params returns the crop parameters for the current viewport.
func (f *Filter) Params() render.CropParams {
	cur := f.anim.Current()
	return render.CropParams{
		AddVal: cur.Offset.Float32(),
		MulVal: V2(cur.Zoom, cur.Zoom).Float32(),
	}
}

// Render projects the current viewport into crop parameters and, when the
// filter has a binder, binds them with src. A source larger than the binder
// can sample is rejected with render.ErrUnsupportedSource. The parameters
// are returned even when binding fails.
func (f *Filter) Render(src render.Source) (render.CropParams, error) {
	if f.closed {
		return render.CropParams{}, ErrClosed
	}
	params := f.Params()
	if f.binder == nil {
		return params, nil
	}
	err := render.CheckSize(f.binder, src)
	if err == nil {
		err = f.binder.Bind(src, params)
	}
	if err != nil {
		if errors.Is(err, render.ErrUnsupportedSource) {
			w, h := render.Dimensions(src)
			Logger().Warn("focuszoom: frame not rendered", "width", w, "height", h, "err", err)
		}
		return params, err
	}
	return params, nil
}

// Update applies the keys present in sec, clamped into range, and pushes
// them to the animator. A new zoom retargets the animation to the new
// bound; the other keys take effect with the next snapshot or frame.
func (f *Filter) Update(sec config.Section) error {
	if f.closed {
		return ErrClosed
	}
	if err := sec.Check(); err != nil {
		Logger().Debug("focuszoom: ignoring unknown settings", "err", err)
	}

	applied := f.settings.Apply(sec)
	regionChanged := false
	for _, key := range applied {
		switch key {
		case config.KeyZoom:
			f.anim.SetZoomBound(f.settings.InternalZoom())
		case config.KeyPadding:
			f.anim.SetPadding(f.settings.Padding)
		case config.KeyAnimationTime:
			f.anim.SetAnimationTime(f.settings.AnimationTime)
		case config.KeyScreenX, config.KeyScreenY, config.KeyScreenWidth, config.KeyScreenHeight:
			regionChanged = true
		}
	}
	if regionChanged {
		f.anim.SetRegion(RegionOf(f.settings))
	}
	if len(applied) > 0 {
		Logger().Debug("focuszoom: settings updated", "keys", applied)
	}
	return nil
}

// Settings returns the settings in effect.
func (f *Filter) Settings() config.Settings {
	return f.settings
}

// Animator returns the filter's animator.
func (f *Filter) Animator() *Animator {
	return f.anim
}

// Binder returns the binder frames are bound to, or nil.
func (f *Filter) Binder() render.Binder {
	return f.binder
}

// Close asks the producer to stop and releases an owned binder. It does
// not wait for the producer goroutine. Calling Close more than once has no
// effect.
func (f *Filter) Close() {
	if f.closed {
		return
	}
	f.closed = true
	f.cleanup.Stop()
	f.producer.Shutdown()
	if d, ok := f.binder.(render.Destroyer); ok && f.ownsBinder {
		d.Destroy()
	}
	Logger().Info("focuszoom: filter closed", "id", FilterID)
}

// Done returns a channel closed once the producer goroutine has exited.
func (f *Filter) Done() <-chan struct{} {
	return f.producer.Done()
}
