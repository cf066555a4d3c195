package wigfit

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Mode selects how the engine adjusts hair under the accessory.
type Mode int

const (
	// ModeNormal returns the input unchanged.
	ModeNormal Mode = iota

	// ModeFlattened darkens and smooths hair to simulate compression under a cap.
	ModeFlattened

	// ModeBald replaces hair with an estimated scalp color.
	ModeBald
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeFlattened:
		return "flattened"
	case ModeBald:
		return "bald"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name as returned by String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "":
		return ModeNormal, nil
	case "flattened", "flat":
		return ModeFlattened, nil
	case "bald":
		return ModeBald, nil
	}
	return ModeNormal, fmt.Errorf("wigfit: unknown mode %q", s)
}

// FlattenSettings is the snapshot of engine settings used for one call.
// Version increases on every change so results can be matched to settings.
type FlattenSettings struct {
	Mode            Mode
	VolumeReduction float64
	BlendRadius     int
	Version         uint64
}

// FlattenedResult is produced fresh by every ApplyFlattening call.
type FlattenedResult struct {
	Image          *Frame
	AdjustedMask   *HairMask
	HeadContour    []Point
	ProcessingTime time.Duration

	// UsedGPU reports whether the image came from the accelerator.
	UsedGPU bool

	// SettingsVersion is FlattenSettings.Version at the time of the call.
	SettingsVersion uint64
}

// ProcessingTimeMs returns ProcessingTime in milliseconds.
func (r FlattenedResult) ProcessingTimeMs() float64 {
	return float64(r.ProcessingTime) / float64(time.Millisecond)
}

// FlatteningEngine produces volume-adjusted frames on the GPU when an
// accelerator is available and on the CPU otherwise.
//
// FlatteningEngine is not safe for concurrent use.
type FlatteningEngine struct {
	cfg      Config
	settings FlattenSettings
	pool     *BufferPool

	accel  FlattenAccelerator // injected via WithAccelerator
	active FlattenAccelerator // initialized and not disabled
}

// NewFlatteningEngine creates a CPU-only engine. Call Initialize to enable
// the GPU path.
func NewFlatteningEngine(opts ...EngineOption) *FlatteningEngine {
	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	cfg := o.cfg.Clamped()
	pool := o.pool
	if pool == nil {
		pool = NewBufferPool(WithPoolConfig(cfg))
	}
	return &FlatteningEngine{
		cfg: cfg,
		settings: FlattenSettings{
			Mode:            o.mode,
			VolumeReduction: cfg.VolumeReduction,
			BlendRadius:     cfg.BlendRadius,
			Version:         1,
		},
		pool:  pool,
		accel: o.accel,
	}
}

// Settings returns the current settings snapshot.
func (e *FlatteningEngine) Settings() FlattenSettings { return e.settings }

// SetSettings replaces mode, reduction and radius at once. Values are
// clamped and the version is bumped; s.Version is ignored.
func (e *FlatteningEngine) SetSettings(s FlattenSettings) {
	e.settings = FlattenSettings{
		Mode:            s.Mode,
		VolumeReduction: ClampVolumeReduction(s.VolumeReduction),
		BlendRadius:     ClampBlendRadius(s.BlendRadius),
		Version:         e.settings.Version + 1,
	}
}

// Mode returns the current adjustment mode.
func (e *FlatteningEngine) Mode() Mode { return e.settings.Mode }

// SetMode changes the adjustment mode.
func (e *FlatteningEngine) SetMode(m Mode) {
	s := e.settings
	s.Mode = m
	e.SetSettings(s)
}

// SetVolumeReduction sets the Flattened-mode reduction, clamped to [0.6, 0.8].
func (e *FlatteningEngine) SetVolumeReduction(r float64) {
	s := e.settings
	s.VolumeReduction = r
	e.SetSettings(s)
}

// SetBlendRadius sets the smoothing radius, at least 5px.
func (e *FlatteningEngine) SetBlendRadius(r int) {
	s := e.settings
	s.BlendRadius = r
	e.SetSettings(s)
}

// BufferPool returns the engine's scratch pool.
func (e *FlatteningEngine) BufferPool() *BufferPool { return e.pool }

// GPUActive reports whether frames are currently sent to an accelerator.
func (e *FlatteningEngine) GPUActive() bool { return e.active != nil }

// Initialize prepares the engine for frames of the given size. With useGPU
// it tries the injected accelerator, then the registered one. Any failure
// is logged and the engine stays on the CPU path; Initialize never fails.
func (e *FlatteningEngine) Initialize(width, height int, useGPU bool) {
	log := Logger()
	if e.active != nil {
		e.active.Close()
		e.active = nil
	}
	if !useGPU {
		log.Debug("flatten: GPU disabled by caller, using CPU path")
		return
	}

	a := e.accel
	if a == nil {
		a = Accelerator()
	}
	if a == nil {
		log.Info("flatten: no accelerator registered, using CPU path")
		return
	}
	if !a.IsSupported() {
		log.Warn("flatten: accelerator not supported on this platform, using CPU path",
			"accelerator", a.Name())
		return
	}
	if err := a.Init(width, height); err != nil {
		log.Warn("flatten: accelerator init failed, using CPU path",
			"accelerator", a.Name(), "error", err)
		return
	}
	e.active = a
	log.Info("flatten: GPU path enabled", "accelerator", a.Name(), "width", width, "height", height)
}

// Dispose releases accelerator resources. It is safe to call repeatedly and
// without Initialize.
func (e *FlatteningEngine) Dispose() {
	if e.active != nil {
		e.active.Close()
		e.active = nil
	}
}

// ApplyFlattening adjusts frame according to the current mode.
//
// The settings are read once at the start of the call. Mismatched or nil
// masks return an unmodified copy of the frame. The call never fails:
// accelerator errors are logged and the frame is processed on the CPU.
func (e *FlatteningEngine) ApplyFlattening(frame *Frame, mask *HairMask, face FaceRegion) FlattenedResult {
	start := time.Now()
	s := e.settings
	log := Logger()

	if frame == nil {
		frame = NewFrame(0, 0)
	}
	res := FlattenedResult{SettingsVersion: s.Version}

	switch {
	case !mask.Matches(frame):
		log.Warn("flatten: mask does not match frame, returning input unchanged",
			"frame", frame.Size(), "mask_nil", mask == nil)
		res.Image = frame.Clone()
		if mask != nil {
			res.AdjustedMask = mask.Clone()
		} else {
			res.AdjustedMask = NewHairMask(frame.width, frame.height)
		}
		res.HeadContour = syntheticContour(face)

	case s.Mode != ModeFlattened && s.Mode != ModeBald:
		res.Image = frame.Clone()
		res.AdjustedMask = mask.Clone()
		res.HeadContour = extractHeadContour(mask, face)

	default:
		res.Image, res.UsedGPU = e.process(frame, mask, s)
		res.AdjustedMask = adjustMask(mask, s)
		res.HeadContour = extractHeadContour(mask, face)
	}

	res.ProcessingTime = time.Since(start)
	if res.ProcessingTime > e.cfg.FlattenBudget {
		log.Warn("flatten: processing budget exceeded",
			"mode", s.Mode, "elapsed", res.ProcessingTime, "budget", e.cfg.FlattenBudget, "gpu", res.UsedGPU)
	} else {
		log.Debug("flatten: frame processed",
			"mode", s.Mode, "elapsed", res.ProcessingTime, "gpu", res.UsedGPU)
	}
	return res
}

// process runs the accelerator when active and the CPU path otherwise.
func (e *FlatteningEngine) process(frame *Frame, mask *HairMask, s FlattenSettings) (*Frame, bool) {
	if e.active != nil {
		img, err := e.active.Process(frame, mask, FlattenParams{
			Mode:              s.Mode,
			VolumeReduction:   s.VolumeReduction,
			BlendRadius:       s.BlendRadius,
			ScalpSampleRadius: e.cfg.ScalpSampleRadius,
		})
		switch {
		case err == nil && img != nil && img.width == frame.width && img.height == frame.height:
			return img, true
		case err == nil || errors.Is(err, ErrFallbackToCPU):
			Logger().Debug("flatten: accelerator declined frame, using CPU", "accelerator", e.active.Name())
		default:
			Logger().Warn("flatten: accelerator failed, disabling GPU path for this session",
				"accelerator", e.active.Name(), "error", err)
			e.active.Close()
			e.active = nil
		}
	}

	switch s.Mode {
	case ModeBald:
		return baldCPU(frame, mask, s, e.cfg.ScalpSampleRadius, e.pool), false
	case ModeFlattened:
		return flattenCPU(frame, mask, s, e.pool), false
	default:
		return frame.Clone(), false
	}
}

// adjustMask scales the mask for Flattened mode and zeroes it for Bald mode.
func adjustMask(mask *HairMask, s FlattenSettings) *HairMask {
	out := NewHairMask(mask.width, mask.height)
	if s.Mode != ModeFlattened {
		return out
	}
	factor := 1 - s.VolumeReduction*0.5
	for i, v := range mask.data {
		out.data[i] = darken(v, factor)
	}
	return out
}
