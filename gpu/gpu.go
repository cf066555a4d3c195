//go:build !nogpu

// Package gpu registers the wgpu flatten accelerator.
//
// Import this package to run the flatten transform in compute shaders.
// Device resources are allocated only when a FlatteningEngine is
// initialized with useGPU set. If no Vulkan device is available the
// engine logs a warning and stays on the CPU path.
//
// Usage:
//
//	import _ "github.com/gogpu/wigfit/gpu" // enable GPU flattening
package gpu

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wigfit"
	gpuimpl "github.com/gogpu/wigfit/internal/gpu"
)

// ErrNilProvider is returned when a nil DeviceProvider is passed.
var ErrNilProvider = errors.New("gpu: nil DeviceProvider")

func init() {
	if err := wigfit.RegisterAccelerator(gpuimpl.NewFlattenAccelerator()); err != nil {
		wigfit.Logger().Warn("GPU accelerator not available", "err", err)
	}
}

// SetDeviceProvider makes the registered accelerator reuse a GPU device
// owned by the host application instead of opening its own.
//
// The provider must also expose HalDevice() any and HalQueue() any for
// direct HAL access. Call this before initializing any engine.
func SetDeviceProvider(provider gpucontext.DeviceProvider) error {
	if provider == nil {
		return ErrNilProvider
	}
	return wigfit.SetAcceleratorDeviceProvider(provider)
}
