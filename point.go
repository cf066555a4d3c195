package wigfit

import "math"

// Point represents a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Bounds is an axis-aligned rectangle in floating point coordinates.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns MaxX-MinX.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY-MinY.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// CenterX returns the horizontal center.
func (b Bounds) CenterX() float64 { return (b.MinX + b.MaxX) / 2 }

// Empty reports whether the rectangle has no area.
func (b Bounds) Empty() bool { return b.MaxX <= b.MinX || b.MaxY <= b.MinY }

// PointBounds returns the bounding box of pts. An empty slice yields the
// zero Bounds.
func PointBounds(pts []Point) Bounds {
	if len(pts) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// FaceRegion is the axis-aligned face box reported by a pose tracker.
type FaceRegion struct {
	X, Y          int
	Width, Height int
}

// Top returns the y coordinate of the top edge.
func (f FaceRegion) Top() int { return f.Y }

// CenterX returns the horizontal center of the box.
func (f FaceRegion) CenterX() float64 { return float64(f.X) + float64(f.Width)/2 }

// Vec3 is a three component vector.
type Vec3 struct {
	X, Y, Z float64
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// HeadPose is the per-frame head orientation and position.
// Rotation is in degrees: X is pitch, Y is yaw, Z is roll.
type HeadPose struct {
	Rotation Vec3
	Position Vec3
}

// Size is an integer width/height pair.
type Size struct {
	Width, Height int
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}
