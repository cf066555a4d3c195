package wigfit

import "sync"

// FlattenParams carries the per-call settings of one flatten dispatch.
type FlattenParams struct {
	Mode              Mode
	VolumeReduction   float64
	BlendRadius       int
	ScalpSampleRadius int
}

// FlattenAccelerator is an optional GPU implementation of the flatten transform.
//
// The engine calls Init once per session with the expected frame size and
// Process once per frame. Process returning (nil, nil) or ErrFallbackToCPU
// means "use the CPU path for this frame". Any other error disables the
// accelerator for the remainder of the session.
//
// Implementations are provided by GPU backend packages.
// Users opt in via blank import:
//
//	import _ "github.com/gogpu/wigfit/gpu"
type FlattenAccelerator interface {
	// Name returns the accelerator name (e.g., "wgpu").
	Name() string

	// IsSupported reports whether the platform can run the accelerator at all.
	// It must be cheap and must not allocate GPU resources.
	IsSupported() bool

	// Init allocates device resources for frames of the given size.
	// Calling Init again with a new size replaces the old resources.
	Init(width, height int) error

	// Process runs the flatten transform and returns the resulting image.
	// Only the image is produced; the mask and contour stay on the CPU.
	Process(frame *Frame, mask *HairMask, params FlattenParams) (*Frame, error)

	// Close releases device resources. It is safe to call repeatedly.
	Close()
}

// DeviceProviderAware is an optional interface for accelerators that can share
// a GPU device with the host instead of creating their own.
type DeviceProviderAware interface {
	SetDeviceProvider(provider any) error
}

var (
	accelMu sync.RWMutex
	accel   FlattenAccelerator
)

// RegisterAccelerator registers the process-wide flatten accelerator.
//
// Only one accelerator can be registered. Subsequent calls replace and close
// the previous one. Device resources are not allocated until an engine calls
// Init, so registration is cheap enough for package init functions:
//
//	func init() {
//	    wigfit.RegisterAccelerator(NewAccelerator())
//	}
func RegisterAccelerator(a FlattenAccelerator) error {
	if a == nil {
		return ErrNilAccelerator
	}
	propagateLogger(a, Logger())
	accelMu.Lock()
	old := accel
	accel = a
	accelMu.Unlock()
	if old != nil && old != a {
		old.Close()
	}
	return nil
}

// UnregisterAccelerator removes and closes the registered accelerator, if any.
func UnregisterAccelerator() {
	accelMu.Lock()
	old := accel
	accel = nil
	accelMu.Unlock()
	if old != nil {
		old.Close()
	}
}

// Accelerator returns the currently registered accelerator, or nil if none.
func Accelerator() FlattenAccelerator {
	accelMu.RLock()
	a := accel
	accelMu.RUnlock()
	return a
}

// SetAcceleratorDeviceProvider passes a device provider to the registered
// accelerator. If no accelerator is registered or it does not support
// device sharing, this is a no-op.
func SetAcceleratorDeviceProvider(provider any) error {
	a := Accelerator()
	if a == nil {
		return nil
	}
	if dpa, ok := a.(DeviceProviderAware); ok {
		return dpa.SetDeviceProvider(provider)
	}
	return nil
}
