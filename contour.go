package wigfit

// Head contour scan window, in rows above the face box top.
const (
	contourScanStart = 20
	contourScanEnd   = 100

	// contourThreshold is the 50% mask intensity.
	contourThreshold = 127
)

// extractHeadContour scans rows from face.Top()-20 up to face.Top()-100 and
// collects the leftmost and rightmost mask pixel above 50% in each row.
// Points are ordered along the silhouette: left edge bottom to top, then
// right edge top to bottom. An empty scan yields syntheticContour.
func extractHeadContour(mask *HairMask, face FaceRegion) []Point {
	if mask == nil || mask.width == 0 || mask.height == 0 {
		return syntheticContour(face)
	}

	top := face.Top()
	var lefts, rights []Point
	for y := top - contourScanStart; y >= top-contourScanEnd; y-- {
		if y < 0 {
			break
		}
		if y >= mask.height {
			continue
		}
		row := mask.data[y*mask.width : (y+1)*mask.width]
		left, right := -1, -1
		for x, v := range row {
			if v > contourThreshold {
				if left < 0 {
					left = x
				}
				right = x
			}
		}
		if left < 0 {
			continue
		}
		lefts = append(lefts, Pt(float64(left), float64(y)))
		rights = append(rights, Pt(float64(right), float64(y)))
	}

	if len(lefts) == 0 {
		return syntheticContour(face)
	}

	contour := make([]Point, 0, len(lefts)*2)
	contour = append(contour, lefts...)
	for i := len(rights) - 1; i >= 0; i-- {
		contour = append(contour, rights[i])
	}
	return contour
}

// syntheticContour spans 1.2x the face width centered above the face box.
func syntheticContour(face FaceRegion) []Point {
	y := float64(face.Top() - contourScanStart)
	half := float64(face.Width) * 0.6
	cx := face.CenterX()
	return []Point{
		Pt(cx-half, y),
		Pt(cx+half, y),
	}
}

// IsSyntheticContour reports whether c is the fallback produced for face.
func IsSyntheticContour(c []Point, face FaceRegion) bool {
	s := syntheticContour(face)
	return len(c) == 2 && c[0] == s[0] && c[1] == s[1]
}
