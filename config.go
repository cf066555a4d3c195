package wigfit

import "time"

// Defaults and limits for the compositing pipeline.
const (
	// DefaultVolumeReduction is the simulated hair compression in Flattened mode.
	DefaultVolumeReduction = 0.7
	// MinVolumeReduction and MaxVolumeReduction bound VolumeReduction.
	MinVolumeReduction = 0.6
	MaxVolumeReduction = 0.8

	// DefaultBlendRadius is the flatten edge-smoothing radius in pixels and
	// also its minimum.
	DefaultBlendRadius = 5

	// DefaultBlendWidth is the wig edge taper width in pixels and also its minimum.
	DefaultBlendWidth = 10

	// DefaultMaxPoolBuffers caps the number of pooled buffers.
	DefaultMaxPoolBuffers = 5
	// DefaultMaxPoolBytes caps the bytes held by pooled buffers (100MB).
	DefaultMaxPoolBytes int64 = 100 * 1024 * 1024
	// DefaultPoolIdleTimeout is the age after which EvictIdle drops a buffer.
	DefaultPoolIdleTimeout = 30 * time.Second

	// DefaultScalpSampleRadius is the window radius for bald-mode scalp color estimation.
	DefaultScalpSampleRadius = 20

	// MaxSupportedRotation is the head rotation envelope in degrees.
	MaxSupportedRotation = 45.0

	// DefaultGapDeviation is the RGB distance from neutral gray above which
	// an edge sample counts as a gap.
	DefaultGapDeviation = 0.3
	// DefaultSmoothVariance is the 3x3 luminance variance below which a
	// perimeter sample counts as smooth.
	DefaultSmoothVariance = 0.005
	// GapRatioLimit is the gap fraction above which HasGaps is set.
	GapRatioLimit = 0.05
)

// Soft processing budgets. Overshoot is logged, never an error.
const (
	DefaultFlattenBudget  = 300 * time.Millisecond
	DefaultPositionBudget = 200 * time.Millisecond
	DefaultBlendBudget    = 100 * time.Millisecond
)

// Config collects every tunable of the pipeline in one place.
// Use DefaultConfig and override fields; constructors call Clamped.
type Config struct {
	// VolumeReduction is clamped into [0.6, 0.8].
	VolumeReduction float64
	// BlendRadius is the flatten smoothing radius, at least 5px.
	BlendRadius int
	// BlendWidth is the wig edge taper width, at least 10px.
	BlendWidth int

	// MaxPoolBuffers and MaxPoolBytes may lower, never raise, the pool caps.
	MaxPoolBuffers  int
	MaxPoolBytes    int64
	PoolIdleTimeout time.Duration

	// ScalpSampleRadius is the bald-mode sampling window radius.
	ScalpSampleRadius int

	// GapDeviation and SmoothVariance tune ValidateAlignment. Both are
	// lighting-dependent approximations.
	GapDeviation   float64
	SmoothVariance float64

	FlattenBudget  time.Duration
	PositionBudget time.Duration
	BlendBudget    time.Duration
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		VolumeReduction:   DefaultVolumeReduction,
		BlendRadius:       DefaultBlendRadius,
		BlendWidth:        DefaultBlendWidth,
		MaxPoolBuffers:    DefaultMaxPoolBuffers,
		MaxPoolBytes:      DefaultMaxPoolBytes,
		PoolIdleTimeout:   DefaultPoolIdleTimeout,
		ScalpSampleRadius: DefaultScalpSampleRadius,
		GapDeviation:      DefaultGapDeviation,
		SmoothVariance:    DefaultSmoothVariance,
		FlattenBudget:     DefaultFlattenBudget,
		PositionBudget:    DefaultPositionBudget,
		BlendBudget:       DefaultBlendBudget,
	}
}

// Clamped returns a copy with every field forced into its valid range.
// Zero durations and sizes fall back to their defaults.
func (c Config) Clamped() Config {
	c.VolumeReduction = ClampVolumeReduction(c.VolumeReduction)
	c.BlendRadius = ClampBlendRadius(c.BlendRadius)
	c.BlendWidth = ClampBlendWidth(c.BlendWidth)

	if c.MaxPoolBuffers <= 0 || c.MaxPoolBuffers > DefaultMaxPoolBuffers {
		c.MaxPoolBuffers = DefaultMaxPoolBuffers
	}
	if c.MaxPoolBytes <= 0 || c.MaxPoolBytes > DefaultMaxPoolBytes {
		c.MaxPoolBytes = DefaultMaxPoolBytes
	}
	if c.PoolIdleTimeout <= 0 {
		c.PoolIdleTimeout = DefaultPoolIdleTimeout
	}
	if c.ScalpSampleRadius <= 0 {
		c.ScalpSampleRadius = DefaultScalpSampleRadius
	}
	if !(c.GapDeviation > 0) {
		c.GapDeviation = DefaultGapDeviation
	}
	if !(c.SmoothVariance > 0) {
		c.SmoothVariance = DefaultSmoothVariance
	}
	if c.FlattenBudget <= 0 {
		c.FlattenBudget = DefaultFlattenBudget
	}
	if c.PositionBudget <= 0 {
		c.PositionBudget = DefaultPositionBudget
	}
	if c.BlendBudget <= 0 {
		c.BlendBudget = DefaultBlendBudget
	}
	return c
}

// ClampVolumeReduction forces r into [0.6, 0.8]. NaN maps to the default.
func ClampVolumeReduction(r float64) float64 {
	if r != r {
		return DefaultVolumeReduction
	}
	return clampF(r, MinVolumeReduction, MaxVolumeReduction)
}

// ClampBlendRadius enforces the 5px minimum.
func ClampBlendRadius(r int) int {
	if r < DefaultBlendRadius {
		return DefaultBlendRadius
	}
	return r
}

// ClampBlendWidth enforces the 10px minimum.
func ClampBlendWidth(w int) int {
	if w < DefaultBlendWidth {
		return DefaultBlendWidth
	}
	return w
}
