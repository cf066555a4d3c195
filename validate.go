package wigfit

import "math"

// perimeterSamplesPerEdge caps the samples taken along each wig edge.
const perimeterSamplesPerEdge = 64

// ValidateAlignment samples the transformed wig perimeter against the
// background.
//
// Samples outside the background are ignored. A sample where the wig is
// more than 50% opaque is an edge sample; it is a gap when the background
// color is far from neutral gray. A sample is smooth when the local 3x3
// background luminance variance is low. With no in-bounds samples the
// result reports no gaps and perfect scores.
func (a *WigAlignmentAdjuster) ValidateAlignment(wig, background *Frame, t WigTransform) AlignmentQuality {
	q := AlignmentQuality{BlendQuality: 1, EdgeSmoothness: 1}
	if wig == nil || wig.Empty() || background == nil || background.Empty() {
		return q
	}
	t.WigSize = wig.Size()
	if !t.Valid() {
		return q
	}
	m := t.Affine()

	for _, p := range perimeterPoints(wig.width, wig.height) {
		d := m.Apply(p)
		x, y := int(math.Floor(d.X)), int(math.Floor(d.Y))
		if x < 0 || y < 0 || x >= background.width || y >= background.height {
			continue
		}
		q.TotalSamples++
		if localVariance(background, x, y) < a.cfg.SmoothVariance {
			q.SmoothSamples++
		}

		_, _, _, wa := wig.RGBA(int(p.X), int(p.Y))
		if wa <= contourThreshold {
			continue
		}
		q.EdgeSamples++
		r, g, b, _ := background.RGBA(x, y)
		if midtoneDistance(r, g, b) > a.cfg.GapDeviation {
			q.GapSamples++
		}
	}

	if q.EdgeSamples > 0 {
		ratio := float64(q.GapSamples) / float64(q.EdgeSamples)
		q.HasGaps = ratio > GapRatioLimit
		q.BlendQuality = clampF(1-ratio, 0, 1)
	}
	if q.TotalSamples > 0 {
		q.EdgeSmoothness = clampF(float64(q.SmoothSamples)/float64(q.TotalSamples), 0, 1)
	}
	return q
}

// perimeterPoints returns pixel-center samples along the wig border, inset
// by one pixel.
func perimeterPoints(w, h int) []Point {
	lo := func(n int) float64 { return math.Min(1.5, float64(n)/2) }
	hi := func(n int) float64 { return math.Max(float64(n)-1.5, float64(n)/2) }
	x0, x1 := lo(w), hi(w)
	y0, y1 := lo(h), hi(h)

	edge := func(n int) int {
		if n < perimeterSamplesPerEdge {
			return max(n, 1)
		}
		return perimeterSamplesPerEdge
	}
	nx, ny := edge(w), edge(h)

	pts := make([]Point, 0, 2*(nx+ny))
	for i := 0; i < nx; i++ {
		u := x0 + (x1-x0)*float64(i)/float64(max(nx-1, 1))
		pts = append(pts, Pt(u, y0), Pt(u, y1))
	}
	for i := 0; i < ny; i++ {
		v := y0 + (y1-y0)*float64(i)/float64(max(ny-1, 1))
		pts = append(pts, Pt(x0, v), Pt(x1, v))
	}
	return pts
}

// localVariance returns the luminance variance of the 3x3 neighborhood of
// (x, y), clipped to the frame.
func localVariance(f *Frame, x, y int) float64 {
	var sum, sumSq float64
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= f.width || ny >= f.height {
				continue
			}
			r, g, b, _ := f.RGBA(nx, ny)
			l := luminance(r, g, b)
			sum += l
			sumSq += l * l
			n++
		}
	}
	mean := sum / float64(n)
	return math.Max(0, sumSq/float64(n)-mean*mean)
}
