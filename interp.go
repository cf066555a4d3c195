package wigfit

import "math"

// sampleBilinear interpolates f at continuous pixel coordinates where pixel
// (i, j) covers [i, i+1) x [j, j+1). Coordinates outside the frame return
// transparent black; neighbors past the border clamp to the edge.
func sampleBilinear(f *Frame, u, v float64) (r, g, b, a float64) {
	w, h := f.width, f.height
	if w == 0 || h == 0 || u < 0 || v < 0 || u >= float64(w) || v >= float64(h) {
		return 0, 0, 0, 0
	}

	fx := u - 0.5
	fy := v - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := clampInt(x0+1, 0, w-1)
	y1 := clampInt(y0+1, 0, h-1)
	x0 = clampInt(x0, 0, w-1)
	y0 = clampInt(y0, 0, h-1)

	i00 := (y0*w + x0) * 4
	i10 := (y0*w + x1) * 4
	i01 := (y1*w + x0) * 4
	i11 := (y1*w + x1) * 4

	lerp := func(c int) float64 {
		top := float64(f.data[i00+c])*(1-tx) + float64(f.data[i10+c])*tx
		bot := float64(f.data[i01+c])*(1-tx) + float64(f.data[i11+c])*tx
		return top*(1-ty) + bot*ty
	}
	return lerp(0), lerp(1), lerp(2), lerp(3)
}
