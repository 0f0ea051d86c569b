package s2

import (
	"math"

	"github.com/gosphere/geo/exactfloat"
	"github.com/gosphere/geo/r3"
	"github.com/gosphere/geo/s1"
)

// CompareDistances returns -1, 0, or +1 according to whether AX < BX,
// A == B, or AX > BX respectively. Distances are measured with respect to
// the positions of X, A, and B as though they were reprojected to lie
// exactly on the surface of the unit sphere. Furthermore, this method uses
// symbolic perturbations to ensure that the result is non-zero whenever
// A != B, even when AX == BX exactly, or even when A and B project to the
// same point on the sphere. Such results are guaranteed to be
// self-consistent, i.e. if AB < BC and BC < AC, then AB < AC.
func CompareDistances(x, a, b Point) int {
	sign, _ := CompareDistancesPrecision(x, a, b)
	return sign
}

// CompareDistancesPrecision is like CompareDistances but also reports the
// precision level that was needed to certify the result.
func CompareDistancesPrecision(x, a, b Point) (int, Precision) {
	// We start by comparing distances using dot products (i.e. cosine of
	// the angle), because (1) this is the cheapest technique, and (2) it is
	// valid over the entire range of possible angles.
	if sign := triageCompareDistances[fp64](x, a, b); sign != 0 {
		return sign, DoublePrecision
	}

	// Optimization for (a == b) to avoid falling back to exact arithmetic.
	if a == b {
		return 0, DoublePrecision
	}

	if sign := triageCompareDistances[dd](x, a, b); sign != 0 {
		return sign, DoubleDoublePrecision
	}

	sign := exactCompareDistances(
		r3.ExactVectorFromVector(x.Vector),
		r3.ExactVectorFromVector(a.Vector),
		r3.ExactVectorFromVector(b.Vector))
	if sign != 0 {
		return sign, ExactPrecision
	}
	return symbolicCompareDistances(a, b), SymbolicPrecision
}

// triageCompareDistances compares the distances AX and BX at one precision
// tier, returning 0 if the result cannot be certified.
func triageCompareDistances[T scalar[T]](xp, ap, bp Point) int {
	x := vec3FromVector[T](xp.Vector)
	a := vec3FromVector[T](ap.Vector)
	b := vec3FromVector[T](bp.Vector)

	if sign := triageCompareCosDistances(x, a, b); sign != 0 {
		return sign
	}

	// The cosine formulation is cheap and works everywhere, but it is
	// poorly conditioned when the angles are near 0 or 180 degrees. In
	// those ranges sin^2 of the angle is far better conditioned. We only
	// need to look at one of the two angles when choosing a formulation,
	// because the test above failing means they are very nearly equal.
	cosAX := ap.Dot(xp.Vector)
	if cosAX > math.Sqrt2/2 {
		// Angles < 45 degrees.
		return triageCompareSin2Distances(x, a, b)
	} else if cosAX < -math.Sqrt2/2 {
		// Angles > 135 degrees. sin^2(angle) is decreasing in this range,
		// so we compare the supplementary angles instead.
		return -triageCompareSin2Distances(x.neg(), a, b)
	}
	return 0
}

// cosDistance returns cos(XY) where XY is the angle between X and Y, along
// with an upper bound on the rounding error in the result.
func cosDistance[T scalar[T]](x, y vec3[T]) (c, err T) {
	var z T
	u := z.eps()
	c = x.dot(y)
	// For near-unit inputs the sum of the absolute values of the three
	// product terms is at most slightly above 1 (Cauchy-Schwarz), so the
	// absolute error of the dot product is a few units in the last place.
	// Note that c estimates cos(XY) scaled by |x| |y|; the callers are
	// responsible for accounting for the input norms.
	err = c.abs().mul(z.fromFloat(9.5 * u)).add(z.fromFloat(1.5 * u))
	return c, err
}

// sin2Distance returns sin^2(XY) where XY is the angle between X and Y,
// along with an upper bound on the rounding error in the result.
func sin2Distance[T scalar[T]](x, y vec3[T]) (sin2, err T) {
	var z T
	u := z.eps()
	const dblErr = 0x1p-53
	// The (x-y) x (x+y) form computes 2 * (x x y) with much less
	// cancellation error than the direct cross product when x and y are
	// nearly (anti)parallel, because the subtraction of nearby unit
	// vectors is exact.
	n := x.sub(y).cross(x.add(y))
	sin2 = n.norm2().mul(z.fromFloat(0.25))
	d2 := sin2
	// The error has a relative component from the cross product and
	// squared norm, plus terms that account for the rounding of the input
	// coordinates themselves when T is wider than float64.
	relC := (21 + 4*math.Sqrt(3)) * u
	midC := 32 * math.Sqrt(3) * dblErr * u
	absC := 768 * dblErr * dblErr * u * u
	err = d2.mul(z.fromFloat(relC)).
		add(d2.sqrt().mul(z.fromFloat(midC))).
		add(z.fromFloat(absC))
	return sin2, err
}

// triageCompareCosDistances compares the distances AX and BX using their
// cosines, certifying the result against the rounding error bounds.
func triageCompareCosDistances[T scalar[T]](x, a, b vec3[T]) int {
	var z T
	u := z.eps()
	cosAX, cosAXError := cosDistance(a, x)
	cosBX, cosBXError := cosDistance(b, x)
	// The raw dot products carry the input norms, which for float64 points
	// deviate from 1 by far more than the extended tiers can resolve.
	// Cross-multiplying by the opposite norm compares the cosines of the
	// reprojected angles, exactly as the exact evaluation does; the common
	// factor |x| cancels. The larger cosine is then the smaller distance.
	aNorm := a.norm2().sqrt()
	bNorm := b.norm2().sqrt()
	lhs := cosAX.mul(bNorm)
	rhs := cosBX.mul(aNorm)
	diff := lhs.sub(rhs)
	err := cosAXError.mul(bNorm).add(cosBXError.mul(aNorm)).
		add(lhs.abs().add(rhs.abs()).mul(z.fromFloat(4 * u)))
	if diff.cmp(err) > 0 {
		return -1
	}
	if diff.cmp(err.neg()) < 0 {
		return 1
	}
	return 0
}

// triageCompareSin2Distances compares the distances AX and BX using the
// squared sines of the angles. Valid only when both angles are known to be
// less than 90 degrees.
func triageCompareSin2Distances[T scalar[T]](x, a, b vec3[T]) int {
	var z T
	u := z.eps()
	sin2AX, sin2AXError := sin2Distance(a, x)
	sin2BX, sin2BXError := sin2Distance(b, x)
	// As in the cosine comparison, cross-multiplying by the opposite
	// squared norm compares the reprojected angles; |x|^2 cancels.
	a2 := a.norm2()
	b2 := b.norm2()
	lhs := sin2AX.mul(b2)
	rhs := sin2BX.mul(a2)
	diff := lhs.sub(rhs)
	err := sin2AXError.mul(b2).add(sin2BXError.mul(a2)).
		add(lhs.add(rhs).mul(z.fromFloat(4 * u)))
	if diff.cmp(err) > 0 {
		return 1
	}
	if diff.cmp(err.neg()) < 0 {
		return -1
	}
	return 0
}

// exactCompareDistances returns -1, 0, or +1 according to whether AX is
// smaller, equal, or larger than BX, computed exactly. This produces the
// same result as comparing the exact cosines of the two angles, but avoids
// any division or square root, so it also works for non-unit-length inputs.
func exactCompareDistances(x, a, b r3.ExactVector) int {
	// This code produces the same result as comparing the (approximate)
	// angles directly, because cos(XY) is monotonic decreasing over
	// [0, pi]. To compare cosines of possibly different-length vectors
	// without division, separate the signs first and then compare the
	// squares cross-multiplied by the squared norms.
	cosAX := a.Dot(x)
	cosBX := b.Dot(x)
	aSign, bSign := cosAX.Sgn(), cosBX.Sgn()
	if aSign != bSign {
		if aSign > bSign {
			// cos(AX) > cos(BX), so AX < BX.
			return -1
		}
		return 1
	}
	cmp := cosBX.Mul(cosBX).Mul(a.Norm2()).Sub(cosAX.Mul(cosAX).Mul(b.Norm2()))
	return aSign * cmp.Sgn()
}

// symbolicCompareDistances breaks the tie between two points that are
// exactly equidistant from X (or that project to the same point on the
// sphere). The model is that each point is assigned an infinitesimal
// "pedestal" raising it off the sphere, where lexicographically smaller
// points get larger pedestals. A point on a larger pedestal projects
// further from every other point, so the lexicographically larger of A and
// B is considered closer to X. The perturbation of a point is fixed, so the
// results are self-consistent across calls.
func symbolicCompareDistances(a, b Point) int {
	switch a.Cmp(b.Vector) {
	case -1:
		return 1
	case 1:
		return -1
	default:
		return 0
	}
}

// CompareDistance returns -1, 0, or +1 according to whether the distance XY
// is less than, equal to, or greater than r respectively. Distances are
// measured with respect to the positions of all points as though they are
// projected to lie exactly on the surface of the unit sphere.
//
// There is no symbolic tier: a return value of zero means the distance is
// exactly equal to the threshold.
func CompareDistance(x, y Point, r s1.ChordAngle) int {
	sign, _ := CompareDistancePrecision(x, y, r)
	return sign
}

// CompareDistancePrecision is like CompareDistance but also reports the
// precision level that was needed to certify the result.
func CompareDistancePrecision(x, y Point, r s1.ChordAngle) (int, Precision) {
	// Any finite distance is below the infinite threshold.
	if r.IsInfinity() {
		return -1, DoublePrecision
	}
	// As with CompareDistances, we start by comparing dot products because
	// the sin^2 method is only valid when the distance XY and the limit r
	// are both less than 90 degrees.
	if sign := triageCompareDistance[fp64](x, y, float64(r)); sign != 0 {
		return sign, DoublePrecision
	}
	if sign := triageCompareDistance[dd](x, y, float64(r)); sign != 0 {
		return sign, DoubleDoublePrecision
	}
	return exactCompareDistance(
		r3.ExactVectorFromVector(x.Vector),
		r3.ExactVectorFromVector(y.Vector),
		newExact(float64(r))), ExactPrecision
}

func triageCompareDistance[T scalar[T]](xp, yp Point, r2 float64) int {
	x := vec3FromVector[T](xp.Vector)
	y := vec3FromVector[T](yp.Vector)
	return triageCompareDistanceVec(x, y, scalarFromFloat[T](r2), r2 < 2)
}

// triageCompareDistanceVec compares the distance XY against the threshold
// with squared chord length r2, selecting the sin^2 formulation when the
// caller knows the threshold is below 90 degrees.
func triageCompareDistanceVec[T scalar[T]](x, y vec3[T], r2 T, acute bool) int {
	if acute {
		return triageCompareSin2Distance(x, y, r2)
	}
	return triageCompareCosDistance(x, y, r2)
}

// triageCompareCosDistance compares the distance XY against the threshold
// whose squared chord length is r2, using the cosine formulation.
func triageCompareCosDistance[T scalar[T]](x, y vec3[T], r2 T) int {
	var z T
	u := z.eps()
	cosXY, cosXYError := cosDistance(x, y)
	cosR := z.fromFloat(1).sub(z.fromFloat(0.5).mul(r2))
	// The raw dot product carries the factor |x| |y|, so the threshold
	// cosine is scaled by the same factor before comparing, matching the
	// exact evaluation.
	cosR = cosR.mul(x.norm2().mul(y.norm2()).sqrt())
	cosRError := cosR.abs().mul(z.fromFloat(7 * u))
	diff := cosXY.sub(cosR)
	err := cosXYError.add(cosRError)
	if diff.cmp(err) > 0 {
		return -1
	}
	if diff.cmp(err.neg()) < 0 {
		return 1
	}
	return 0
}

// triageCompareSin2Distance compares the distance XY against a threshold
// known to be less than 90 degrees, using the squared sine formulation.
func triageCompareSin2Distance[T scalar[T]](x, y vec3[T], r2 T) int {
	var z T
	u := z.eps()
	sin2XY, sin2XYError := sin2Distance(x, y)
	sin2R := r2.mul(z.fromFloat(1).sub(z.fromFloat(0.25).mul(r2)))
	// sin2XY carries the factor |x|^2 |y|^2 from the raw cross product, so
	// the threshold is scaled by the same factor, matching the exact
	// evaluation.
	sin2R = sin2R.mul(x.norm2()).mul(y.norm2())
	sin2RError := sin2R.abs().mul(z.fromFloat(8 * u))
	diff := sin2XY.sub(sin2R)
	err := sin2XYError.add(sin2RError)
	if diff.cmp(err) > 0 {
		// sin^2(XY) > sin^2(r) certifies XY > r whether or not XY exceeds
		// 90 degrees, because r is below 90 degrees.
		return 1
	}
	if diff.cmp(err.neg()) < 0 {
		// The converse is ambiguous: sin^2 is symmetric about 90 degrees,
		// so we also need the sign of cos(XY). An obtuse XY exceeds any
		// threshold expressible in this formulation.
		cosXY, cosXYError := cosDistance(x, y)
		if cosXY.cmp(cosXYError) > 0 {
			return -1
		}
		if cosXY.cmp(cosXYError.neg()) < 0 {
			return 1
		}
	}
	return 0
}

// exactCompareDistance compares the distance XY against the threshold whose
// squared chord length is r2, computed exactly. As in exactCompareDistances
// the cosines are compared by sign separation followed by squaring, which
// avoids division and therefore also handles non-unit-length inputs.
func exactCompareDistance(x, y r3.ExactVector, r2 exactfloat.ExactFloat) int {
	cosXY := x.Dot(y)
	cosR := newExact(1).Sub(newExact(0.5).Mul(r2))
	xySign, rSign := cosXY.Sgn(), cosR.Sgn()
	if xySign != rSign {
		if xySign > rSign {
			// cos(XY) > cos(r), so XY < r.
			return -1
		}
		return 1
	}
	cmp := cosR.Mul(cosR).Mul(x.Norm2()).Mul(y.Norm2()).Sub(cosXY.Mul(cosXY))
	return xySign * cmp.Sgn()
}
