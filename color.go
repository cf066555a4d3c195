package wigfit

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Reference colors used by the bald fill and the gap heuristic.
var (
	// neutralScalpTone is the bald-mode fill when no scalp pixels are nearby.
	neutralScalpTone = colorful.Color{R: 0.82, G: 0.69, B: 0.6}

	// neutralMidtone is the background reference for gap detection.
	neutralMidtone = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
)

// isSkinTone is the coarse scalp heuristic: R > G > B with 60 < R < 255.
// It misclassifies some skin tones; thresholds are tunable, not load-bearing.
func isSkinTone(r, g, b uint8) bool {
	return r > g && g > b && r > 60 && r < 255
}

// NeutralScalpTone returns the bald-mode fallback fill as 8-bit channels.
func NeutralScalpTone() (r, g, b uint8) {
	return neutralScalpTone.RGB255()
}

// midtoneDistance returns the Euclidean RGB distance of an 8-bit color from
// neutral gray, in [0, ~0.87].
func midtoneDistance(r, g, b uint8) float64 {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	return c.DistanceRgb(neutralMidtone)
}

// luminance returns Rec. 709 luma in [0, 1].
func luminance(r, g, b uint8) float64 {
	return (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 255
}

// darken scales a channel by factor and floors the result.
func darken(c uint8, factor float64) uint8 {
	return uint8(math.Floor(float64(c) * factor))
}

// smoothstep is the Hermite step between edge0 and edge1.
func smoothstep(edge0, edge1, x float64) float64 {
	if edge1 <= edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := clampF((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
