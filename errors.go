package wigfit

import "errors"

var (
	// ErrFallbackToCPU indicates the accelerator cannot handle this frame.
	// The engine transparently reprocesses it on the CPU path.
	ErrFallbackToCPU = errors.New("wigfit: falling back to CPU processing")

	// ErrNilAccelerator is returned when registering a nil accelerator.
	ErrNilAccelerator = errors.New("wigfit: accelerator must not be nil")

	// ErrInvalidDimensions is returned for negative or overflowing sizes.
	ErrInvalidDimensions = errors.New("wigfit: invalid dimensions")

	// ErrDimensionMismatch reports a frame/mask size disagreement.
	// Pipeline operations degrade instead of returning it; accelerators
	// use it to decline a frame.
	ErrDimensionMismatch = errors.New("wigfit: frame and mask dimensions differ")
)
