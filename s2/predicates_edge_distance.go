package s2

import (
	"math"

	"github.com/gosphere/geo/r3"
	"github.com/gosphere/geo/s1"
)

// CompareEdgeDistance returns -1, 0, or +1 according to whether the
// distance from the point X to the edge A is less than, equal to, or
// greater than r respectively. Distances are measured with respect to the
// positions of all points as though they were projected to lie exactly on
// the surface of the unit sphere.
//
// There is no symbolic tier: a return value of zero means the minimum
// distance is exactly equal to the threshold. Requires that X and the edge
// endpoints are unit length, and that A0 != -A1.
func CompareEdgeDistance(x, a0, a1 Point, r s1.ChordAngle) int {
	sign, _ := CompareEdgeDistancePrecision(x, a0, a1, r)
	return sign
}

// CompareEdgeDistancePrecision is like CompareEdgeDistance but also reports
// the precision level that was needed to certify the result.
func CompareEdgeDistancePrecision(x, a0, a1 Point, r s1.ChordAngle) (int, Precision) {
	// A degenerate edge behaves exactly like a single point.
	if a0 == a1 {
		return CompareDistancePrecision(x, a0, r)
	}
	if r.IsInfinity() {
		return -1, DoublePrecision
	}

	if sign := triageCompareEdgeDistance[fp64](x, a0, a1, float64(r)); sign != 0 {
		return sign, DoublePrecision
	}
	if sign := triageCompareEdgeDistance[dd](x, a0, a1, float64(r)); sign != 0 {
		return sign, DoubleDoublePrecision
	}
	return exactCompareEdgeDistance(x, a0, a1, float64(r)), ExactPrecision
}

// triageCompareEdgeDistance compares the distance from X to edge (a0, a1)
// against the threshold with squared chord length r2 at one precision tier.
//
// The closest point of the edge to X is either in the edge interior or at
// one of the endpoints, depending on which side of the two great circles
// through the edge normal and each endpoint X lies on. When that
// classification itself cannot be certified, two one-sided facts still
// hold unconditionally and are used as shortcuts: the distance to either
// endpoint is an upper bound on the edge distance, and the distance to the
// full great circle is a lower bound.
func triageCompareEdgeDistance[T scalar[T]](xp, a0p, a1p Point, r2f float64) int {
	var z T
	u := z.eps()
	x := vec3FromVector[T](xp.Vector)
	a0 := vec3FromVector[T](a0p.Vector)
	a1 := vec3FromVector[T](a1p.Vector)
	r2 := z.fromFloat(r2f)

	// The great circle normal, computed as (a0-a1) x (a0+a1) == 2 (a0 x a1)
	// because the subtraction of nearby unit vectors is exact, which keeps
	// the relative error small even for very short edges. nAbs bounds the
	// componentwise rounding error of n.
	d, s := a0.sub(a1), a0.add(a1)
	n := d.cross(s)
	nAbs := d.crossAbs(s)
	xAbs := x.abs()

	// m0 > 0 means X is on the a1 side of the plane through a0
	// perpendicular to the edge, and m1 > 0 the symmetric condition at a1.
	// Both certified positive places the closest point in the interior.
	w0 := n.cross(a0)
	w1 := a1.cross(n)
	m0 := w0.dot(x)
	m1 := w1.dot(x)
	m0Err := nAbs.crossAbs(a0).dot(xAbs).mul(z.fromFloat(32 * u))
	m1Err := a1.crossAbs(nAbs).dot(xAbs).mul(z.fromFloat(32 * u))

	interior0 := m0.cmp(m0Err) > 0
	interior1 := m1.cmp(m1Err) > 0
	exterior := m0.cmp(m0Err.neg()) < 0 || m1.cmp(m1Err.neg()) < 0

	if interior0 && interior1 {
		return triageCompareLineDistance(x, xAbs, n, nAbs, r2, r2f)
	}
	if exterior {
		return min(
			triageCompareDistanceVec(x, a0, r2, r2f < 2),
			triageCompareDistanceVec(x, a1, r2, r2f < 2))
	}

	// The classification is uncertain. An endpoint already within the
	// threshold proves the edge is within it, and the full great circle
	// already beyond the threshold proves the edge is beyond it.
	if min(
		triageCompareDistanceVec(x, a0, r2, r2f < 2),
		triageCompareDistanceVec(x, a1, r2, r2f < 2)) < 0 {
		return -1
	}
	if triageCompareLineDistance(x, xAbs, n, nAbs, r2, r2f) > 0 {
		return 1
	}
	return 0
}

// chord2Degrees45 is the squared chord length of a 45 degree angle. It is
// the crossover between the sin^2 and cos^2 formulations of the line
// distance comparison, mirroring the formulation choice in the point
// distance predicates.
const chord2Degrees45 = 2 - math.Sqrt2

// triageCompareLineDistance compares the distance from X to the great
// circle with normal n against the threshold with squared chord length r2.
// The circle distance is at most 90 degrees, so any larger threshold is
// trivially satisfied. Below that the comparison cross-multiplies either
// sin^2 or cos^2 of the distance, whichever is better conditioned for the
// threshold.
func triageCompareLineDistance[T scalar[T]](x, xAbs, n, nAbs vec3[T], r2 T, r2f float64) int {
	if r2f > 2 {
		return -1
	}
	if r2f < chord2Degrees45 {
		return triageCompareLineSin2Distance(x, xAbs, n, nAbs, r2)
	}
	return triageCompareLineCos2Distance(x, xAbs, n, nAbs, r2)
}

// triageCompareLineSin2Distance compares sin^2 of the circle distance,
// (x.n)^2 / (|x|^2 |n|^2), against sin^2 of the threshold, avoiding the
// division by cross-multiplying.
func triageCompareLineSin2Distance[T scalar[T]](x, xAbs, n, nAbs vec3[T], r2 T) int {
	var z T
	u := z.eps()

	xn := n.dot(x)
	nAbsX := nAbs.dot(xAbs)
	xnErr := nAbsX.mul(z.fromFloat(16 * u))

	lhs := xn.mul(xn)
	lhsErr := xn.abs().mul(xnErr).mul(z.fromFloat(2)).add(lhs.mul(z.fromFloat(2 * u)))

	sin2R := r2.mul(z.fromFloat(1).sub(z.fromFloat(0.25).mul(r2)))
	n2 := n.norm2()
	nAbs2 := nAbs.norm2()
	x2 := x.norm2()
	rhs := sin2R.mul(n2).mul(x2)
	rhsErr := sin2R.abs().mul(x2).mul(nAbs2).mul(z.fromFloat(32 * u)).
		add(rhs.abs().mul(z.fromFloat(8 * u)))

	diff := lhs.sub(rhs)
	err := lhsErr.add(rhsErr)
	if diff.cmp(err) > 0 {
		return 1
	}
	if diff.cmp(err.neg()) < 0 {
		return -1
	}
	return 0
}

// triageCompareLineCos2Distance compares cos^2 of the circle distance,
// |x x n|^2 / (|x|^2 |n|^2), against cos^2 of the threshold. The cosine is
// decreasing on [0, 90], so a larger cos^2 means a smaller distance.
func triageCompareLineCos2Distance[T scalar[T]](x, xAbs, n, nAbs vec3[T], r2 T) int {
	var z T
	u := z.eps()

	w := x.cross(n)
	wAbs := xAbs.crossAbs(nAbs)
	lhs := w.norm2()
	lhsErr := wAbs.norm2().mul(z.fromFloat(40 * u))

	// cos(r) == 1 - r2/2 exactly by the chord length identity, so squaring
	// it gives cos^2 of the threshold with only two roundings.
	cs := z.fromFloat(1).sub(z.fromFloat(0.5).mul(r2))
	cos2R := cs.mul(cs)
	n2 := n.norm2()
	nAbs2 := nAbs.norm2()
	x2 := x.norm2()
	rhs := cos2R.mul(n2).mul(x2)
	rhsErr := cos2R.mul(x2).mul(nAbs2).mul(z.fromFloat(32 * u)).
		add(rhs.abs().mul(z.fromFloat(8 * u)))

	diff := rhs.sub(lhs)
	err := lhsErr.add(rhsErr)
	if diff.cmp(err) > 0 {
		return 1
	}
	if diff.cmp(err.neg()) < 0 {
		return -1
	}
	return 0
}

// exactCompareEdgeDistance evaluates the edge distance comparison in
// arbitrary precision. The interior/endpoint classification is exact here,
// so no shortcuts are needed.
func exactCompareEdgeDistance(xp, a0p, a1p Point, r2f float64) int {
	x := r3.ExactVectorFromVector(xp.Vector)
	a0 := r3.ExactVectorFromVector(a0p.Vector)
	a1 := r3.ExactVectorFromVector(a1p.Vector)
	r2 := newExact(r2f)

	n := a0.Cross(a1)
	m0 := n.Cross(a0).Dot(x)
	m1 := a1.Cross(n).Dot(x)
	if m0.Sgn() > 0 && m1.Sgn() > 0 {
		// The closest point is in the edge interior, so the distance is
		// strictly below 90 degrees.
		if r2f >= 2 {
			return -1
		}
		xn := x.Dot(n)
		lhs := xn.Mul(xn)
		sin2R := r2.Mul(newExact(1).Sub(newExact(0.25).Mul(r2)))
		rhs := sin2R.Mul(n.Norm2()).Mul(x.Norm2())
		return lhs.Cmp(rhs)
	}
	return min(
		exactCompareDistance(x, a0, r2),
		exactCompareDistance(x, a1, r2))
}

// CompareEdgePairDistance returns -1, 0, or +1 according to whether the
// minimum distance between the edges A and B is less than, equal to, or
// greater than r respectively.
//
// There is no symbolic tier: a return value of zero means the minimum
// distance is exactly equal to the threshold. Requires that A0 != -A1 and
// B0 != -B1.
func CompareEdgePairDistance(a0, a1, b0, b1 Point, r s1.ChordAngle) int {
	// The edge crossing test below requires non-degenerate edges. A
	// degenerate edge behaves like its single point.
	if a0 == a1 {
		return CompareEdgeDistance(a0, b0, b1, r)
	}
	if b0 == b1 {
		return CompareEdgeDistance(b0, a0, a1, r)
	}

	// If the edges cross or share an endpoint, the minimum distance is
	// zero.
	if CrossingSign(a0, a1, b0, b1) >= 0 {
		if r > 0 {
			return -1
		}
		if r < 0 {
			return 1
		}
		return 0
	}

	// Otherwise the minimum distance is realized at an endpoint of one
	// edge and the interior or an endpoint of the other.
	return min(
		min(CompareEdgeDistance(a0, b0, b1, r), CompareEdgeDistance(a1, b0, b1, r)),
		min(CompareEdgeDistance(b0, a0, a1, r), CompareEdgeDistance(b1, a0, a1, r)))
}
