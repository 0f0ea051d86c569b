package s2

import (
	"math"

	"github.com/gosphere/geo/s1"
)

// EdgeCrosser allows edges to be efficiently tested for intersection with a
// given fixed edge AB. It is especially efficient when processing a chain
// of edges that share a vertex, because the orientation of the previous
// vertex is carried over to the next call.
type EdgeCrosser struct {
	a       Point
	b       Point
	aCrossB Point
	c       Point // Previous vertex in the vertex chain.
	acb     int   // The orientation of the triangle ACB.
}

// NewEdgeCrosser returns an EdgeCrosser for the fixed edge AB, primed with
// the first vertex C of the chain to be tested.
func NewEdgeCrosser(a, b, c Point) *EdgeCrosser {
	e := &EdgeCrosser{
		a:       a,
		b:       b,
		aCrossB: Point{a.Cross(b.Vector)},
	}
	e.RestartAt(c)
	return e
}

// RestartAt begins a new chain starting at the vertex C.
func (e *EdgeCrosser) RestartAt(c Point) {
	e.c = c
	e.acb = -signWithCross(e.a, e.b, c, e.aCrossB.Vector)
}

// ChainCrossingSign is like CrossingSign, but uses the last vertex passed
// to one of the crossing methods (or RestartAt) as the first vertex of the
// current edge.
func (e *EdgeCrosser) ChainCrossingSign(d Point) int {
	// For there to be an edge crossing, the triangles ACB, CBD, BDA, DAC
	// must all be oriented the same way (CW or CCW). We keep the
	// orientation of ACB as part of our state. When each new point D
	// arrives, we compute the orientation of BDA and check whether it
	// matches ACB. This checks whether the points C and D are on opposite
	// sides of the great circle through AB.

	// Sign is invariant with respect to rotating its arguments, i.e. ABD
	// has the same orientation as BDA.
	bda := signWithCross(e.a, e.b, d, e.aCrossB.Vector)
	var result int
	switch {
	case bda == -e.acb && bda != 0:
		// Most common case: triangles have opposite orientations.
		result = -1
	case (bda & e.acb) == 0:
		// At least one value is zero: two vertices are identical.
		result = 0
	default:
		result = e.crossingSignInternal(d)
	}
	// Save the current vertex D as the next vertex C, and also save the
	// orientation of the new triangle ACB (which is opposite to the
	// current triangle BDA).
	e.c = d
	e.acb = -bda
	return result
}

// EdgeOrVertexChainCrossing is like EdgeOrVertexCrossing, but uses the last
// vertex passed as the first vertex of the current edge.
func (e *EdgeCrosser) EdgeOrVertexChainCrossing(d Point) bool {
	c := e.c
	switch e.ChainCrossingSign(d) {
	case -1:
		return false
	case 1:
		return true
	}
	return VertexCrossing(e.a, e.b, c, d)
}

func (e *EdgeCrosser) crossingSignInternal(d Point) int {
	// ACB and BDA have the appropriate orientations, so now we check the
	// triangles CBD and DAC.
	cCrossD := e.c.Cross(d.Vector)
	cbd := -signWithCross(e.c, d, e.b, cCrossD)
	if cbd != e.acb {
		return -1
	}
	dac := signWithCross(e.c, d, e.a, cCrossD)
	if dac == e.acb {
		return 1
	}
	return -1
}

// CrossingSign reports whether the edge AB intersects the edge CD. +1 means
// the edges cross at a point interior to both, -1 means they do not cross
// and do not touch, and 0 means two vertices from different edges are the
// same (including degenerate edges).
//
// All answers are relative to the Sign predicate, so they remain consistent
// under its symbolic perturbations: a set of edges that cross according to
// this method can always be assigned a crossing point.
func CrossingSign(a, b, c, d Point) int {
	crosser := NewEdgeCrosser(a, b, c)
	return crosser.ChainCrossingSign(d)
}

// VertexCrossing reports whether two edges that share a vertex "cross", in
// a way that makes the combined crossing parity of edge chains well
// defined. Given two edges AB and CD where at least two vertices are
// identical (i.e. CrossingSign(a,b,c,d) == 0), it returns true if and only
// if, when the shared vertex is split apart infinitesimally, the two edges
// cross.
//
// This is useful for computing whether a point is contained by a polygon:
// crossings can then be counted without worrying about edges that pass
// exactly through vertices.
func VertexCrossing(a, b, c, d Point) bool {
	// If A == B or C == D there is no intersection. We need to check this
	// case first in case 3 or more input points are identical.
	if a == b || c == d {
		return false
	}

	// If any other pair of vertices is equal, there is a crossing if and
	// only if OrderedCCW indicates that the edge AB is further CCW around
	// the shared vertex O (either A or B) than the edge CD, starting from
	// an arbitrary fixed reference point.
	switch {
	case a == d:
		return OrderedCCW(Point{a.Ortho()}, c, b, a)
	case b == c:
		return OrderedCCW(Point{b.Ortho()}, d, a, b)
	case a == c:
		return OrderedCCW(Point{a.Ortho()}, d, b, a)
	case b == d:
		return OrderedCCW(Point{b.Ortho()}, c, a, b)
	}
	// Unreachable when the precondition holds.
	return false
}

// EdgeOrVertexCrossing is a convenience function that reports whether the
// edges cross, counting vertex crossings so that chain parity is preserved.
func EdgeOrVertexCrossing(a, b, c, d Point) bool {
	switch CrossingSign(a, b, c, d) {
	case -1:
		return false
	case 1:
		return true
	}
	return VertexCrossing(a, b, c, d)
}

// Interpolate returns the point X along the geodesic AB whose distance from
// A is the given fraction of the distance AB. Fractions outside [0, 1]
// extrapolate along the great circle.
func Interpolate(t float64, a, b Point) Point {
	if t == 0 {
		return a
	}
	if t == 1 {
		return b
	}
	ab := a.Angle(b.Vector)
	return InterpolateAtDistance(s1.Angle(t)*ab, a, b)
}

// InterpolateAtDistance returns the point X along the geodesic AB whose
// angular distance from A is ax. Distances greater than the edge length
// extrapolate along the great circle. Requires A != B.
func InterpolateAtDistance(ax s1.Angle, a, b Point) Point {
	// Express X as a linear combination of A and B, using the sine rule in
	// the plane spanned by them.
	ab := a.Angle(b.Vector)
	axRad, abRad := ax.Radians(), ab.Radians()
	f := math.Sin(axRad) / math.Sin(abRad)
	e := math.Cos(axRad) - f*math.Cos(abRad)
	return Point{a.Mul(e).Add(b.Mul(f)).Normalize()}
}
