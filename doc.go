// Package wigfit previews a hair accessory (a wig) on a portrait.
//
// # Overview
//
// The package implements the per-frame compositing core of a virtual try-on:
// it simulates reduced hair volume under the accessory, places the accessory
// relative to the top of the head and the head pose, blends it in with a
// tapered edge, and scores the result for visible gaps.
//
// # Quick Start
//
//	import "github.com/gogpu/wigfit"
//
//	engine := wigfit.NewFlatteningEngine()
//	engine.SetMode(wigfit.ModeFlattened)
//	res := engine.ApplyFlattening(frame, mask, face)
//
//	adj := wigfit.NewWigAlignmentAdjuster()
//	tr := adj.CalculateWigPosition(res.HeadContour, wig.Size(), pose)
//	out := adj.BlendWigEdges(wig, res.Image, tr)
//
// Pipeline wraps these steps for a stream of frames.
//
// # Modes
//
//   - ModeNormal returns the input unchanged
//   - ModeFlattened darkens and smooths hair to simulate compression
//   - ModeBald replaces hair with an estimated scalp color
//
// # GPU
//
// Flattening runs on the CPU by default. Importing the gpu package registers
// a compute-shader accelerator:
//
//	import _ "github.com/gogpu/wigfit/gpu"
//
// Any GPU failure is logged and the frame is processed on the CPU instead.
//
// # Concurrency
//
// Engines, adjusters and pools are not safe for concurrent use. Hosts that
// render from several goroutines must serialize access per instance.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Transform rotations in radians, head pose angles in degrees
package wigfit

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
