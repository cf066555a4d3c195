package wigfit

import "math"

// Affine maps wig pixel space into frame space:
//
//	x' = XX*x + XY*y + X0
//	y' = YX*x + YY*y + Y0
//
// Compose steps in the order they happen with Then.
type Affine struct {
	XX, XY, X0 float64
	YX, YY, Y0 float64
}

// singularDet is the determinant magnitude below which Inverse gives up.
const singularDet = 1e-10

// IdentityAffine returns the transform that leaves points unchanged.
func IdentityAffine() Affine { return Affine{XX: 1, YY: 1} }

func translation(dx, dy float64) Affine { return Affine{XX: 1, X0: dx, YY: 1, Y0: dy} }

func uniformScaling(s float64) Affine { return Affine{XX: s, YY: s} }

// rotation turns by theta radians, clockwise on screen (y points down).
func rotation(theta float64) Affine {
	sin, cos := math.Sincos(theta)
	return Affine{XX: cos, XY: -sin, YX: sin, YY: cos}
}

// shearing slants x by kx per unit y and y by ky per unit x.
func shearing(kx, ky float64) Affine { return Affine{XX: 1, XY: kx, YX: ky, YY: 1} }

// Then returns the transform that applies a first and next second.
func (a Affine) Then(next Affine) Affine {
	return Affine{
		XX: next.XX*a.XX + next.XY*a.YX,
		XY: next.XX*a.XY + next.XY*a.YY,
		X0: next.XX*a.X0 + next.XY*a.Y0 + next.X0,
		YX: next.YX*a.XX + next.YY*a.YX,
		YY: next.YX*a.XY + next.YY*a.YY,
		Y0: next.YX*a.X0 + next.YY*a.Y0 + next.Y0,
	}
}

// Apply maps p through the transform.
func (a Affine) Apply(p Point) Point {
	return Point{
		X: a.XX*p.X + a.XY*p.Y + a.X0,
		Y: a.YX*p.X + a.YY*p.Y + a.Y0,
	}
}

// Det returns the area scale factor of the linear part.
func (a Affine) Det() float64 { return a.XX*a.YY - a.XY*a.YX }

// Inverse returns the frame-to-wig mapping. ok is false when the
// transform collapses the wig to a line or a point.
func (a Affine) Inverse() (inv Affine, ok bool) {
	det := a.Det()
	if math.Abs(det) < singularDet {
		return IdentityAffine(), false
	}
	xx, xy := a.YY/det, -a.XY/det
	yx, yy := -a.YX/det, a.XX/det
	return Affine{
		XX: xx, XY: xy, X0: -(xx*a.X0 + xy*a.Y0),
		YX: yx, YY: yy, Y0: -(yx*a.X0 + yy*a.Y0),
	}, true
}

// Corners maps the corners of a w x h rectangle at the origin, clockwise
// from the top-left.
func (a Affine) Corners(w, h float64) [4]Point {
	return [4]Point{
		a.Apply(Pt(0, 0)),
		a.Apply(Pt(w, 0)),
		a.Apply(Pt(w, h)),
		a.Apply(Pt(0, h)),
	}
}
