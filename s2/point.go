package s2

import (
	"github.com/gosphere/geo/r3"
	"github.com/gosphere/geo/s1"
)

// Point represents a point on the unit sphere as a normalized 3D vector.
//
// Points are guaranteed to be close to normal in the sense that the norm of
// any point will be very close to 1.
//
// Fields should be treated as read-only. Use one of the factory methods for
// creation.
type Point struct {
	r3.Vector
}

// PointFromCoords creates a new normalized point from coordinates.
//
// This always returns a valid point. If the given coordinates can not be
// normalized the origin point will be returned.
func PointFromCoords(x, y, z float64) Point {
	if x == 0 && y == 0 && z == 0 {
		return OriginPoint()
	}
	return Point{r3.Vector{X: x, Y: y, Z: z}.Normalize()}
}

// OriginPoint returns a unique "origin" on the sphere for operations that
// need a fixed reference point. In particular, this is the "point at
// infinity" used when counting edge crossings to determine containment.
//
// It should *not* be a point that is commonly used in edge tests in order
// to avoid triggering code to handle degenerate cases (this rules out the
// north and south poles).
func OriginPoint() Point {
	return Point{r3.Vector{X: 0.00456762077230, Y: 0.99947476613078, Z: 0.03208315302933}}
}

// PointCross returns a Point that is orthogonal to both p and op. This is
// similar to p.Cross(op) (the true cross product) except that it does a
// better job of ensuring orthogonality when p is nearly parallel to op, it
// returns a non-zero result even when p == op or p == -op, and the result is
// unit length.
//
// It satisfies the following properties (f == PointCross):
//
//	(1) f(p, op) != 0 for all p, op
//	(2) f(op, p) == -f(p, op) unless p == op or p == -op
//	(3) f(-p, op) == -f(p, op) unless p == op or p == -op
//	(4) f(p, -op) == -f(p, op) unless p == op or p == -op
func (p Point) PointCross(op Point) Point {
	x := p.Add(op.Vector).Cross(op.Sub(p.Vector))

	if x.ApproxEqual(r3.Vector{}) {
		// The only result that makes sense mathematically is to return zero,
		// but we find it more convenient to return an arbitrary orthogonal
		// vector.
		return Point{p.Ortho()}
	}

	return Point{x.Normalize()}
}

// OrderedCCW returns true if the edges OA, OB, and OC are encountered in
// that order while sweeping CCW around the point O.
//
// You can think of this as testing whether A <= B <= C with respect to the
// CCW ordering around O that starts at A, or equivalently, whether B is
// contained in the range of angles (inclusive) that starts at A and extends
// CCW to C. Properties:
//
//	(1) If OrderedCCW(a,b,c,o) && OrderedCCW(b,a,c,o), then a == b
//	(2) If OrderedCCW(a,b,c,o) && OrderedCCW(a,c,b,o), then b == c
//	(3) If OrderedCCW(a,b,c,o) && OrderedCCW(c,b,a,o), then a == b == c
//	(4) If a == b or b == c, then OrderedCCW(a,b,c,o) is true
//	(5) Otherwise if a == c, then OrderedCCW(a,b,c,o) is false
func OrderedCCW(a, b, c, o Point) bool {
	// The last inequality below is ">" rather than ">=" so that we return
	// true if A == B or B == C, and otherwise false if A == C. Recall that
	// Sign(x,y,z) == -Sign(z,y,x) for all x,y,z.
	sum := 0
	if Sign(b, o, a) >= 0 {
		sum++
	}
	if Sign(c, o, b) >= 0 {
		sum++
	}
	if Sign(a, o, c) > 0 {
		sum++
	}
	return sum >= 2
}

// Distance returns the angle between two points.
func (p Point) Distance(b Point) s1.Angle {
	return p.Vector.Angle(b.Vector)
}

// ChordAngleBetweenPoints constructs a ChordAngle corresponding to the
// distance between the two given points. The points must be unit length.
func ChordAngleBetweenPoints(x, y Point) s1.ChordAngle {
	// The squared distance may slightly exceed 4.0 due to roundoff errors.
	return s1.ChordAngle(min(4.0, x.Sub(y.Vector).Norm2()))
}

// ApproxEqual reports whether the two points are similar enough to be equal.
func (p Point) ApproxEqual(other Point) bool {
	const epsilon = 1e-14
	return p.Vector.Angle(other.Vector) <= epsilon
}

// ApproxEqualWithin reports whether the angle between the two points is at
// most maxError.
func (p Point) ApproxEqualWithin(other Point, maxError float64) bool {
	return float64(p.Vector.Angle(other.Vector)) <= maxError
}

// FrameFromPoint returns a right-handed orthonormal frame whose third column
// is z. This is useful for constructing test configurations in a known
// coordinate system and then rotating them to a random orientation.
func FrameFromPoint(z Point) (m r3.Matrix) {
	m.SetCol(2, z.Vector)
	m.SetCol(1, z.Ortho())
	m.SetCol(0, m.Col(1).Cross(z.Vector)) // Already unit-length.
	return
}

// PointFromFrame returns the point whose coordinates in the frame m are q.
func PointFromFrame(m r3.Matrix, q Point) Point {
	return Point{m.MulVector(q.Vector)}
}
