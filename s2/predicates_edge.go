package s2

import (
	"github.com/gosphere/geo/r3"
)

// CompareEdgeDirections returns +1 if the edges A and B are parallel (point
// along the same great circle in the same direction), -1 if they are
// antiparallel, and 0 if they are perpendicular or if either edge is
// degenerate. The result is the sign of the dot product of the two edge
// normals, evaluated robustly.
//
// Requires that A0 != -A1 and B0 != -B1.
func CompareEdgeDirections(a0, a1, b0, b1 Point) int {
	sign, _ := CompareEdgeDirectionsPrecision(a0, a1, b0, b1)
	return sign
}

// CompareEdgeDirectionsPrecision is like CompareEdgeDirections but also
// reports the precision level that was needed to certify the result.
func CompareEdgeDirectionsPrecision(a0, a1, b0, b1 Point) (int, Precision) {
	if sign := triageCompareEdgeDirections[fp64](a0, a1, b0, b1); sign != 0 {
		return sign, DoublePrecision
	}
	if sign := triageCompareEdgeDirections[dd](a0, a1, b0, b1); sign != 0 {
		return sign, DoubleDoublePrecision
	}
	na := exactEdgeNormal(a0, a1)
	nb := exactEdgeNormal(b0, b1)
	return na.Dot(nb).Sgn(), ExactPrecision
}

func triageCompareEdgeDirections[T scalar[T]](a0p, a1p, b0p, b1p Point) int {
	var z T
	u := z.eps()
	a0 := vec3FromVector[T](a0p.Vector)
	a1 := vec3FromVector[T](a1p.Vector)
	b0 := vec3FromVector[T](b0p.Vector)
	b1 := vec3FromVector[T](b1p.Vector)

	da, sa := a0.sub(a1), a0.add(a1)
	db, sb := b0.sub(b1), b0.add(b1)
	na := da.cross(sa)
	nb := db.cross(sb)
	naAbs := da.crossAbs(sa)
	nbAbs := db.crossAbs(sb)

	cosAB := na.dot(nb)
	cosABError := naAbs.dot(nbAbs).mul(z.fromFloat(32 * u))
	if cosAB.cmp(cosABError) > 0 {
		return 1
	}
	if cosAB.cmp(cosABError.neg()) < 0 {
		return -1
	}
	return 0
}

// exactEdgeNormal returns the (unnormalized) edge normal 2 * (a0 x a1)
// computed exactly, using the same difference-of-endpoints form as the
// floating point tiers. A degenerate edge yields the zero vector.
func exactEdgeNormal(a0, a1 Point) r3.ExactVector {
	ea0 := r3.ExactVectorFromVector(a0.Vector)
	ea1 := r3.ExactVectorFromVector(a1.Vector)
	return ea0.Sub(ea1).Cross(ea0.Add(ea1))
}

// SignDotProd returns the sign of the dot product of A and B, certified
// against rounding: +1 if the angle between them is strictly less than 90
// degrees, -1 if strictly greater, and 0 if A and B are exactly
// perpendicular. There is no symbolic tier.
func SignDotProd(a, b Point) int {
	sign, _ := SignDotProdPrecision(a, b)
	return sign
}

// SignDotProdPrecision is like SignDotProd but also reports the precision
// level that was needed to certify the result.
func SignDotProdPrecision(a, b Point) (int, Precision) {
	if sign := triageSignDotProd[fp64](a, b); sign != 0 {
		return sign, DoublePrecision
	}
	if sign := triageSignDotProd[dd](a, b); sign != 0 {
		return sign, DoubleDoublePrecision
	}
	ea := r3.ExactVectorFromVector(a.Vector)
	eb := r3.ExactVectorFromVector(b.Vector)
	return ea.Dot(eb).Sgn(), ExactPrecision
}

func triageSignDotProd[T scalar[T]](ap, bp Point) int {
	var z T
	u := z.eps()
	a := vec3FromVector[T](ap.Vector)
	b := vec3FromVector[T](bp.Vector)
	c := a.dot(b)
	// The rounding error of the dot product is a small multiple of the sum
	// of the absolute values of its terms, regardless of cancellation.
	err := a.abs().dot(b.abs()).mul(z.fromFloat(4 * u))
	if c.cmp(err) > 0 {
		return 1
	}
	if c.cmp(err.neg()) < 0 {
		return -1
	}
	return 0
}

// CircleEdgeIntersectionSign returns the sign of the dot product of X with
// the point where edge AB crosses the great circle with normal N: +1 if the
// crossing is strictly on the positive side of the plane through the origin
// with normal X, -1 if strictly on the negative side, and 0 if it lies
// exactly in that plane.
//
// Requires that A and B are not antipodal and that edge AB actually crosses
// the circle N (so the crossing point is unique).
func CircleEdgeIntersectionSign(a, b, n, x Point) int {
	sign, _ := CircleEdgeIntersectionSignPrecision(a, b, n, x)
	return sign
}

// CircleEdgeIntersectionSignPrecision is like CircleEdgeIntersectionSign
// but also reports the precision level that was needed to certify the
// result.
func CircleEdgeIntersectionSignPrecision(a, b, n, x Point) (int, Precision) {
	if sign, ok := triageIntersectionSign[fp64](a, b, n, x); ok {
		return sign, DoublePrecision
	}
	if sign, ok := triageIntersectionSign[dd](a, b, n, x); ok {
		return sign, DoubleDoublePrecision
	}
	return exactIntersectionSign(a, b, n, x), ExactPrecision
}

// triageIntersectionSign evaluates CircleEdgeIntersectionSign at one
// precision tier. The crossing point is the intersection of the plane of
// edge AB with the plane of circle N, i.e. a scalar multiple of
// (A x B) x N; the multiple lying on the edge is selected by the sign of
// the dot product with the edge midpoint direction A+B (valid because the
// edge spans less than 180 degrees). The boolean result reports whether
// both signs could be certified.
func triageIntersectionSign[T scalar[T]](ap, bp, np, xp Point) (int, bool) {
	var z T
	u := z.eps()
	a := vec3FromVector[T](ap.Vector)
	b := vec3FromVector[T](bp.Vector)
	n := vec3FromVector[T](np.Vector)
	x := vec3FromVector[T](xp.Vector)

	w, wAbs := edgeCircleCrossing(a, b, n)

	mid := a.add(b)
	orient := w.dot(mid)
	orientErr := wAbs.dot(mid.abs()).mul(z.fromFloat(32 * u))
	sigma := certifiedSign(orient, orientErr)
	if sigma == 0 {
		return 0, false
	}

	px := w.dot(x)
	pxErr := wAbs.dot(x.abs()).mul(z.fromFloat(32 * u))
	sign := certifiedSign(px, pxErr)
	if sign == 0 {
		// Zero cannot be certified in floating point, only escalated.
		return 0, false
	}
	return sigma * sign, true
}

// edgeCircleCrossing returns w = (a x b) x n, a scalar multiple of the
// intersection of the great circles through AB and N, along with the
// componentwise magnitude surrogate that bounds its rounding error.
func edgeCircleCrossing[T scalar[T]](a, b, n vec3[T]) (w, wAbs vec3[T]) {
	ab := a.cross(b)
	abAbs := a.crossAbs(b)
	return ab.cross(n), abAbs.crossAbs(n)
}

func exactIntersectionSign(a, b, n, x Point) int {
	ea := r3.ExactVectorFromVector(a.Vector)
	eb := r3.ExactVectorFromVector(b.Vector)
	en := r3.ExactVectorFromVector(n.Vector)
	ex := r3.ExactVectorFromVector(x.Vector)

	w := ea.Cross(eb).Cross(en)
	sigma := w.Dot(ea.Add(eb)).Sgn()
	return sigma * w.Dot(ex).Sgn()
}

// CircleEdgeIntersectionOrdering orders the points where edges AB and CD
// cross the great circle with normal M by their signed distance from the
// plane of a second circle N. It returns +1 if the AB crossing is farther
// from that plane (on the positive side of N) than the CD crossing, -1 if
// it is nearer, and 0 if the two crossings are equidistant (in particular,
// if the edges are identical or reverses of each other).
//
// Requires that both edges actually cross circle M and that neither edge is
// degenerate or antipodal.
func CircleEdgeIntersectionOrdering(a, b, c, d, m, n Point) int {
	sign, _ := CircleEdgeIntersectionOrderingPrecision(a, b, c, d, m, n)
	return sign
}

// CircleEdgeIntersectionOrderingPrecision is like
// CircleEdgeIntersectionOrdering but also reports the precision level that
// was needed to certify the result.
func CircleEdgeIntersectionOrderingPrecision(a, b, c, d, m, n Point) (int, Precision) {
	// Identical or reversed edges cross the circle at the same point; skip
	// the arithmetic so the tie is recognized cheaply and exactly.
	if (a == c && b == d) || (a == d && b == c) {
		return 0, DoublePrecision
	}

	if sign, ok := triageIntersectionOrdering[fp64](a, b, c, d, m, n); ok {
		return sign, DoublePrecision
	}
	if sign, ok := triageIntersectionOrdering[dd](a, b, c, d, m, n); ok {
		return sign, DoubleDoublePrecision
	}
	return exactIntersectionOrdering(a, b, c, d, m, n), ExactPrecision
}

func triageIntersectionOrdering[T scalar[T]](ap, bp, cp, dp, mp, np Point) (int, bool) {
	var z T
	u := z.eps()
	a := vec3FromVector[T](ap.Vector)
	b := vec3FromVector[T](bp.Vector)
	c := vec3FromVector[T](cp.Vector)
	d := vec3FromVector[T](dp.Vector)
	m := vec3FromVector[T](mp.Vector)
	n := vec3FromVector[T](np.Vector)
	nAbs := n.abs()

	p, pAbs := edgeCircleCrossing(a, b, m)
	q, qAbs := edgeCircleCrossing(c, d, m)

	// Select the crossing on each edge (rather than its antipode).
	sigmaP := certifiedSign(p.dot(a.add(b)), pAbs.dot(a.add(b).abs()).mul(z.fromFloat(32*u)))
	sigmaQ := certifiedSign(q.dot(c.add(d)), qAbs.dot(c.add(d).abs()).mul(z.fromFloat(32*u)))
	if sigmaP == 0 || sigmaQ == 0 {
		return 0, false
	}

	// Signed distances from the plane of N scale as (p.n)/|p|, compared by
	// separating signs and then cross-multiplying the squares.
	up := p.dot(n)
	uq := q.dot(n)
	upErr := pAbs.dot(nAbs).mul(z.fromFloat(32 * u))
	uqErr := qAbs.dot(nAbs).mul(z.fromFloat(32 * u))
	sp := certifiedSign(up, upErr)
	sq := certifiedSign(uq, uqErr)
	sp *= sigmaP
	sq *= sigmaQ
	if sp == 0 || sq == 0 {
		return 0, false
	}
	if sp != sq {
		if sp > sq {
			return 1, true
		}
		return -1, true
	}

	// up^2 * |q|^2 vs uq^2 * |p|^2, with the common sign restoring the
	// direction of the inequality.
	p2, q2 := p.norm2(), q.norm2()
	pAbs2, qAbs2 := pAbs.norm2(), qAbs.norm2()
	lhs := up.mul(up).mul(q2)
	rhs := uq.mul(uq).mul(p2)
	lhsErr := up.abs().mul(upErr).mul(q2).mul(z.fromFloat(2)).
		add(up.mul(up).mul(qAbs2).mul(z.fromFloat(40 * u))).
		add(lhs.abs().mul(z.fromFloat(4 * u)))
	rhsErr := uq.abs().mul(uqErr).mul(p2).mul(z.fromFloat(2)).
		add(uq.mul(uq).mul(pAbs2).mul(z.fromFloat(40 * u))).
		add(rhs.abs().mul(z.fromFloat(4 * u)))
	diff := lhs.sub(rhs)
	sign := certifiedSign(diff, lhsErr.add(rhsErr))
	if sign == 0 {
		return 0, false
	}
	return sp * sign, true
}

func exactIntersectionOrdering(ap, bp, cp, dp, mp, np Point) int {
	a := r3.ExactVectorFromVector(ap.Vector)
	b := r3.ExactVectorFromVector(bp.Vector)
	c := r3.ExactVectorFromVector(cp.Vector)
	d := r3.ExactVectorFromVector(dp.Vector)
	m := r3.ExactVectorFromVector(mp.Vector)
	n := r3.ExactVectorFromVector(np.Vector)

	p := a.Cross(b).Cross(m)
	q := c.Cross(d).Cross(m)
	sigmaP := p.Dot(a.Add(b)).Sgn()
	sigmaQ := q.Dot(c.Add(d)).Sgn()

	sp := sigmaP * p.Dot(n).Sgn()
	sq := sigmaQ * q.Dot(n).Sgn()
	if sp != sq {
		if sp > sq {
			return 1
		}
		return -1
	}
	if sp == 0 {
		return 0
	}
	up := p.Dot(n)
	uq := q.Dot(n)
	cmp := up.Mul(up).Mul(q.Norm2()).Sub(uq.Mul(uq).Mul(p.Norm2()))
	return sp * cmp.Sgn()
}

// certifiedSign returns the sign of v if its magnitude exceeds the error
// bound, and 0 otherwise.
func certifiedSign[T scalar[T]](v, err T) int {
	if v.cmp(err) > 0 {
		return 1
	}
	if v.cmp(err.neg()) < 0 {
		return -1
	}
	return 0
}
