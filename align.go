package wigfit

import (
	"math"
	"time"
)

// WigTransform places a wig image on the output frame.
//
// The wig is scaled by Scale, sheared by Skew and rotated by Rotation about
// its scaled center, then its top-left corner is moved to Position.
// Anchor, HeadWidth and WigSize are the pose-independent inputs needed to
// recompute the placement for a new pose.
type WigTransform struct {
	Position Point
	Scale    float64
	Rotation float64 // radians
	Skew     Point

	Anchor    Point // top-center of the head contour
	HeadWidth float64
	WigSize   Size
}

// ScaledSize returns the wig size after scaling.
func (t WigTransform) ScaledSize() (w, h float64) {
	return float64(t.WigSize.Width) * t.Scale, float64(t.WigSize.Height) * t.Scale
}

// Affine maps wig pixel coordinates to output frame coordinates.
func (t WigTransform) Affine() Affine {
	sw, sh := t.ScaledSize()
	cx, cy := sw/2, sh/2
	return uniformScaling(t.Scale).
		Then(translation(-cx, -cy)).
		Then(shearing(t.Skew.X, t.Skew.Y)).
		Then(rotation(t.Rotation)).
		Then(translation(t.Position.X+cx, t.Position.Y+cy))
}

// Footprint returns the output-space bounding box of the transformed wig.
func (t WigTransform) Footprint() Bounds {
	c := t.Affine().Corners(float64(t.WigSize.Width), float64(t.WigSize.Height))
	return PointBounds(c[:])
}

// Valid reports whether the transform can be applied: finite values, a
// positive scale and a non-empty wig.
func (t WigTransform) Valid() bool {
	for _, v := range []float64{t.Position.X, t.Position.Y, t.Scale, t.Rotation, t.Skew.X, t.Skew.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return t.Scale > 0 && t.WigSize.Width > 0 && t.WigSize.Height > 0
}

// AlignmentQuality scores a composited wig edge. Scores are in [0, 1].
type AlignmentQuality struct {
	HasGaps        bool
	BlendQuality   float64
	EdgeSmoothness float64

	TotalSamples  int // perimeter samples inside the background
	EdgeSamples   int // of those, samples where the wig is opaque
	GapSamples    int
	SmoothSamples int
}

// WigAlignmentAdjuster computes wig placement, blends the wig onto a
// background and scores the result.
//
// WigAlignmentAdjuster is not safe for concurrent use.
type WigAlignmentAdjuster struct {
	cfg Config
}

// NewWigAlignmentAdjuster creates an adjuster with a 10px blend width.
func NewWigAlignmentAdjuster(opts ...AdjusterOption) *WigAlignmentAdjuster {
	o := defaultAdjusterOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &WigAlignmentAdjuster{cfg: o.cfg.Clamped()}
}

// BlendWidth returns the edge taper width in pixels.
func (a *WigAlignmentAdjuster) BlendWidth() int { return a.cfg.BlendWidth }

// SetBlendWidth sets the edge taper width; values below 10px are raised to 10.
func (a *WigAlignmentAdjuster) SetBlendWidth(w int) { a.cfg.BlendWidth = ClampBlendWidth(w) }

// CalculateWigPosition fits a wig of wigSize to the head contour.
//
// The wig is scaled to the contour width and centered on it, with its top
// at the contour top raised by 10% of the scaled wig height. Yaw shifts it
// sideways by up to 10% of the head width and pitch shifts it vertically.
// An empty contour or wig keeps scale 1.
func (a *WigAlignmentAdjuster) CalculateWigPosition(contour []Point, wigSize Size, pose HeadPose) WigTransform {
	start := time.Now()

	b := PointBounds(contour)
	headWidth := b.Width()
	scale := 1.0
	if headWidth > 0 && wigSize.Width > 0 {
		scale = headWidth / float64(wigSize.Width)
	}

	t := a.place(WigTransform{
		Scale:     scale,
		Anchor:    Pt(b.CenterX(), b.MinY),
		HeadWidth: headWidth,
		WigSize:   wigSize,
	}, pose)

	if elapsed := time.Since(start); elapsed > a.cfg.PositionBudget {
		Logger().Warn("align: position budget exceeded", "elapsed", elapsed, "budget", a.cfg.PositionBudget)
	}
	return t
}

// UpdateForHeadRotation recomputes position, rotation and skew of current
// for a new pose. Scale and anchor are carried over.
func (a *WigAlignmentAdjuster) UpdateForHeadRotation(current WigTransform, pose HeadPose) WigTransform {
	start := time.Now()
	t := a.place(current, pose)
	if elapsed := time.Since(start); elapsed > a.cfg.PositionBudget {
		Logger().Warn("align: rotation update budget exceeded", "elapsed", elapsed, "budget", a.cfg.PositionBudget)
	}
	return t
}

// place derives the pose-dependent fields from the anchor.
func (a *WigAlignmentAdjuster) place(t WigTransform, pose HeadPose) WigTransform {
	checkPoseEnvelope(pose)

	pitch := finiteOrZero(degToRad(pose.Rotation.X))
	yaw := finiteOrZero(degToRad(pose.Rotation.Y))
	roll := finiteOrZero(degToRad(pose.Rotation.Z))

	sw, sh := t.ScaledSize()
	yawOffset := math.Sin(yaw) * t.HeadWidth * 0.1
	pitchOffset := math.Sin(pitch) * sh * 0.1

	t.Position = Pt(
		t.Anchor.X-sw/2+yawOffset,
		t.Anchor.Y+pitchOffset-0.1*sh,
	)
	t.Rotation = roll
	t.Skew = Pt(0.1*math.Sin(yaw), 0.05*math.Sin(pitch))
	return t
}

// checkPoseEnvelope warns when the combined rotation leaves the supported
// range. Placement still proceeds.
func checkPoseEnvelope(pose HeadPose) {
	if mag := pose.Rotation.Length(); mag > MaxSupportedRotation {
		Logger().Warn("align: head rotation outside supported envelope",
			"magnitude_deg", mag, "limit_deg", MaxSupportedRotation,
			"pitch", pose.Rotation.X, "yaw", pose.Rotation.Y, "roll", pose.Rotation.Z)
	}
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
