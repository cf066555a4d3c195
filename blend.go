package wigfit

import (
	"math"
	"time"
)

// BlendWigEdges composites wig onto a copy of background using t.
//
// Each output pixel inside the wig footprint is mapped back into wig space,
// sampled bilinearly and blended with alpha wigAlpha * smoothstep(0,
// blendWidth, d), where d is the distance to the nearest wig edge in output
// pixels. A nil or empty wig, or a degenerate transform, returns an
// unmodified copy of background.
func (a *WigAlignmentAdjuster) BlendWigEdges(wig, background *Frame, t WigTransform) *Frame {
	start := time.Now()
	if background == nil {
		background = NewFrame(0, 0)
	}
	out := background.Clone()
	if wig == nil || wig.Empty() || background.Empty() {
		return out
	}
	if t.WigSize != wig.Size() {
		Logger().Debug("align: transform computed for a different wig size, using actual size",
			"transform", t.WigSize, "wig", wig.Size())
		t.WigSize = wig.Size()
	}
	if !t.Valid() {
		Logger().Warn("align: invalid wig transform, skipping blend")
		return out
	}
	inv, ok := t.Affine().Inverse()
	if !ok {
		Logger().Warn("align: singular wig transform, skipping blend")
		return out
	}

	x0, y0, x1, y1, visible := footprintPixels(t, background)
	if !visible {
		return out
	}

	ww, wh := float64(wig.width), float64(wig.height)
	bw := float64(a.cfg.BlendWidth)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p := inv.Apply(Pt(float64(x)+0.5, float64(y)+0.5))
			if p.X < 0 || p.Y < 0 || p.X >= ww || p.Y >= wh {
				continue
			}
			sr, sg, sb, sa := sampleBilinear(wig, p.X, p.Y)
			if sa == 0 {
				continue
			}
			d := math.Min(math.Min(p.X, ww-p.X), math.Min(p.Y, wh-p.Y)) * t.Scale
			alpha := sa / 255 * smoothstep(0, bw, d)
			if alpha <= 0 {
				continue
			}
			compositeOver(out, x, y, sr, sg, sb, alpha)
		}
	}

	if elapsed := time.Since(start); elapsed > a.cfg.BlendBudget {
		Logger().Warn("align: blend budget exceeded", "elapsed", elapsed, "budget", a.cfg.BlendBudget)
	}
	return out
}

// footprintPixels clips the transformed wig bounding box to the frame.
func footprintPixels(t WigTransform, f *Frame) (x0, y0, x1, y1 int, ok bool) {
	fp := t.Footprint()
	x0 = clampInt(int(math.Floor(fp.MinX)), 0, f.width)
	y0 = clampInt(int(math.Floor(fp.MinY)), 0, f.height)
	x1 = clampInt(int(math.Ceil(fp.MaxX)), 0, f.width)
	y1 = clampInt(int(math.Ceil(fp.MaxY)), 0, f.height)
	return x0, y0, x1, y1, x1 > x0 && y1 > y0
}

// compositeOver blends a non-premultiplied source color over pixel (x, y).
func compositeOver(f *Frame, x, y int, sr, sg, sb, alpha float64) {
	o := (y*f.width + x) * 4
	da := float64(f.data[o+3]) / 255
	outA := alpha + da*(1-alpha)
	if outA <= 0 {
		return
	}
	mix := func(s float64, d uint8) uint8 {
		v := (s*alpha + float64(d)*da*(1-alpha)) / outA
		return uint8(clampF(v+0.5, 0, 255))
	}
	f.data[o] = mix(sr, f.data[o])
	f.data[o+1] = mix(sg, f.data[o+1])
	f.data[o+2] = mix(sb, f.data[o+2])
	f.data[o+3] = uint8(clampF(outA*255+0.5, 0, 255))
}
