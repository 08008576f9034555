package focuszoom

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/focuszoom/render"
)

// Option configures a Filter during creation.
// Use functional options to customize Filter behavior.
//
// Example:
//
//	// Parameters only, the host binds them itself
//	f, err := focuszoom.New(settings, src)
//
//	// CPU crop into a pixmap
//	f, err := focuszoom.New(settings, src,
//	    focuszoom.WithSoftwareTarget(render.NewPixmapTarget(1280, 720)))
type Option func(*options)

// options holds optional configuration for Filter creation.
type options struct {
	custom   render.Binder
	software *render.PixmapTarget

	gpuDevice hal.Device
	gpuQueue  hal.Queue
	gpuFormat gputypes.TextureFormat
	gpu       bool

	strict bool
}

// defaultOptions returns the default filter options.
func defaultOptions() options {
	return options{}
}

// binder builds the binder the options ask for and reports whether the
// filter owns it. A custom binder takes precedence over a GPU pass, which
// takes precedence over a software target.
func (o options) binder() (render.Binder, bool, error) {
	switch {
	case o.custom != nil:
		return o.custom, false, nil
	case o.gpu:
		pass, err := render.NewGPUCropPass(o.gpuDevice, o.gpuQueue, o.gpuFormat)
		if err != nil {
			return nil, false, err
		}
		return pass, true, nil
	case o.software != nil:
		return render.NewSoftwareCropPass(o.software), true, nil
	}
	return nil, false, nil
}

// WithBinder sets a caller-owned binder for the Filter. The filter binds
// every rendered frame to it but never destroys it.
//
// Example:
//
//	pass, _ := render.NewGPUCropPassFromProvider(provider, format)
//	defer pass.Destroy()
//	f, err := focuszoom.New(settings, src, focuszoom.WithBinder(pass))
func WithBinder(b render.Binder) Option {
	return func(o *options) {
		o.custom = b
	}
}

// WithGPU makes the Filter create and own a GPU crop pass on the given
// HAL device. Creation fails if the pass cannot be created. The pass is
// destroyed by Close.
func WithGPU(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) Option {
	return func(o *options) {
		o.gpu = true
		o.gpuDevice = device
		o.gpuQueue = queue
		o.gpuFormat = format
	}
}

// WithSoftwareTarget makes the Filter crop CPU frames into target.
func WithSoftwareTarget(target *render.PixmapTarget) Option {
	return func(o *options) {
		o.software = target
	}
}

// WithStrictSettings rejects out-of-range settings with
// config.ErrOutOfRange instead of clamping them.
func WithStrictSettings() Option {
	return func(o *options) {
		o.strict = true
	}
}
