package wigfit

import "sync"

// Mask thresholds as 8-bit intensities (fraction * 255).
const (
	maskPreserveBelow = 0.3 * 255 // scalp preservation: mask < 0.3
	maskHairAbove     = 0.1 * 255 // darkening: mask > 0.1
	maskBandHigh      = 0.9 * 255 // smoothing band: 0.1 < mask < 0.9
	maskBaldAbove     = 0.3 * 255 // bald fill: mask > 0.3
	maskScalpBelow    = 0.2 * 255 // scalp samples: mask < 0.2
)

// preserved reports whether pixel i is low-probability hair with a skin color.
func preserved(frame *Frame, mask *HairMask, i int) bool {
	if float64(mask.data[i]) >= maskPreserveBelow {
		return false
	}
	o := i * 4
	return isSkinTone(frame.data[o], frame.data[o+1], frame.data[o+2])
}

// inBand reports whether pixel i lies in the hair edge transition band.
func inBand(mask *HairMask, i int) bool {
	v := float64(mask.data[i])
	return v > maskHairAbove && v < maskBandHigh
}

// flattenCPU darkens hair by 1 - reduction*0.15 and smooths the edge band.
func flattenCPU(frame *Frame, mask *HairMask, s FlattenSettings, pool *BufferPool) *Frame {
	out := frame.Clone()
	factor := 1 - s.VolumeReduction*0.15

	for i := range mask.data {
		if preserved(frame, mask, i) || float64(mask.data[i]) <= maskHairAbove {
			continue
		}
		o := i * 4
		out.data[o] = darken(out.data[o], factor)
		out.data[o+1] = darken(out.data[o+1], factor)
		out.data[o+2] = darken(out.data[o+2], factor)
	}

	smoothBand(out, frame, mask, s.BlendRadius, pool)
	return out
}

// baldCPU replaces hair with the local scalp color and smooths the edge
// band at twice the blend radius.
func baldCPU(frame *Frame, mask *HairMask, s FlattenSettings, sampleRadius int, pool *BufferPool) *Frame {
	out := frame.Clone()
	w, h := frame.width, frame.height
	sums := newScalpSums(frame, mask)
	defer sums.release()

	nr, ng, nb := NeutralScalpTone()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if float64(mask.data[i]) <= maskBaldAbove {
				continue
			}
			o := i * 4
			r, g, b, ok := sums.mean(x-sampleRadius, y-sampleRadius, x+sampleRadius, y+sampleRadius)
			if !ok {
				r, g, b = nr, ng, nb
			}
			out.data[o], out.data[o+1], out.data[o+2] = r, g, b
		}
	}

	smoothBand(out, frame, mask, 2*s.BlendRadius, pool)
	return out
}

// smoothBand replaces every non-preserved band pixel of img with the
// Gaussian-weighted mean of its neighborhood. Neighbors are read from a
// pooled snapshot so results do not feed back into the average.
func smoothBand(img, orig *Frame, mask *HairMask, radius int, pool *BufferPool) {
	w, h := img.width, img.height
	if w == 0 || h == 0 {
		return
	}
	scratch := pool.Acquire(w, h)
	defer pool.Release(scratch)
	src := scratch.Bytes()
	copy(src, img.data)

	k := kernelFor(radius)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if !inBand(mask, i) || preserved(orig, mask, i) {
				continue
			}
			smoothPixel(img.data[i*4:i*4+3], src, k, x, y, w, h)
		}
	}
}

// smoothPixel writes the kernel-weighted mean of src around (x, y) into dst.
func smoothPixel(dst, src []uint8, k *gaussianKernel, x, y, w, h int) {
	var sr, sg, sb, sw float64
	for _, t := range k.taps {
		nx, ny := x+t.dx, y+t.dy
		if nx < 0 || nx >= w || ny < 0 || ny >= h {
			continue
		}
		o := (ny*w + nx) * 4
		sr += float64(src[o]) * t.weight
		sg += float64(src[o+1]) * t.weight
		sb += float64(src[o+2]) * t.weight
		sw += t.weight
	}
	dst[0] = uint8(sr/sw + 0.5)
	dst[1] = uint8(sg/sw + 0.5)
	dst[2] = uint8(sb/sw + 0.5)
}

// integralPool recycles summed-area tables for the bald scalp estimate.
var integralPool = sync.Pool{
	New: func() interface{} { return make([]uint32, 0, 4096) },
}

// scalpSums holds summed-area tables of scalp pixel count and color.
// Sums wrap modulo 2^32; window differences stay exact because no window
// can hold 2^32 worth of intensity.
type scalpSums struct {
	w, h         int // table stride is w+1
	n, r, g, b   []uint32
	backingSlice []uint32
}

func newScalpSums(frame *Frame, mask *HairMask) *scalpSums {
	w, h := frame.width, frame.height
	cell := (w + 1) * (h + 1)
	need := cell * 4

	backing := integralPool.Get().([]uint32)
	if cap(backing) < need {
		backing = make([]uint32, need)
	}
	backing = backing[:need]
	clear(backing)

	s := &scalpSums{
		w: w, h: h,
		n:            backing[:cell],
		r:            backing[cell : 2*cell],
		g:            backing[2*cell : 3*cell],
		b:            backing[3*cell:],
		backingSlice: backing,
	}

	stride := w + 1
	for y := 0; y < h; y++ {
		var rn, rr, rg, rb uint32
		for x := 0; x < w; x++ {
			i := y*w + x
			if float64(mask.data[i]) < maskScalpBelow {
				o := i * 4
				rn++
				rr += uint32(frame.data[o])
				rg += uint32(frame.data[o+1])
				rb += uint32(frame.data[o+2])
			}
			t := (y+1)*stride + x + 1
			up := y*stride + x + 1
			s.n[t] = s.n[up] + rn
			s.r[t] = s.r[up] + rr
			s.g[t] = s.g[up] + rg
			s.b[t] = s.b[up] + rb
		}
	}
	return s
}

// mean returns the average scalp color in the inclusive window, clipped to
// the frame. ok is false when the window holds no scalp pixels.
func (s *scalpSums) mean(x0, y0, x1, y1 int) (r, g, b uint8, ok bool) {
	x0 = clampInt(x0, 0, s.w-1)
	y0 = clampInt(y0, 0, s.h-1)
	x1 = clampInt(x1, 0, s.w-1) + 1
	y1 = clampInt(y1, 0, s.h-1) + 1

	stride := s.w + 1
	area := func(t []uint32) uint32 {
		return t[y1*stride+x1] - t[y0*stride+x1] - t[y1*stride+x0] + t[y0*stride+x0]
	}
	n := area(s.n)
	if n == 0 {
		return 0, 0, 0, false
	}
	return uint8(area(s.r) / n), uint8(area(s.g) / n), uint8(area(s.b) / n), true
}

func (s *scalpSums) release() {
	integralPool.Put(s.backingSlice[:0])
}
