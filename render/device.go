// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle provides GPU device access from the host application.
//
// Key principle: crop passes RECEIVE the device from the host, they do NOT
// create one. The host (e.g. a gogpu application or a streaming compositor)
// implements DeviceHandle and passes it to NewGPUCropPassFromProvider.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider.
type DeviceHandle = gpucontext.DeviceProvider

// halProvider is implemented by hosts that expose their wgpu HAL objects.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// HalDevices extracts the HAL device and queue from a host provider. The
// provider must implement HalDevice() any and HalQueue() any returning a
// hal.Device and hal.Queue.
func HalDevices(provider DeviceHandle) (hal.Device, hal.Queue, error) {
	if provider == nil {
		return nil, nil, ErrNilDevice
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, fmt.Errorf("%w: provider %T does not expose HAL types", ErrNilDevice, provider)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: provider HalDevice is not hal.Device", ErrNilDevice)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: provider HalQueue is not hal.Queue", ErrNilDevice)
	}
	return device, queue, nil
}

// NewGPUCropPassFromProvider creates a GPU crop pass on the host's device.
// When format is undefined the provider's surface format is used.
func NewGPUCropPassFromProvider(provider DeviceHandle, format gputypes.TextureFormat) (*GPUCropPass, error) {
	device, queue, err := HalDevices(provider)
	if err != nil {
		return nil, err
	}
	if format == gputypes.TextureFormatUndefined {
		format = provider.SurfaceFormat()
	}
	return NewGPUCropPass(device, queue, format)
}
