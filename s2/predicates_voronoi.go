package s2

import (
	"github.com/gosphere/geo/exactfloat"
	"github.com/gosphere/geo/r3"
	"github.com/gosphere/geo/s1"
)

// EdgeCircumcenterSign returns +1 if the circumcenter of triangle ABC is on
// the positive side of the great circle through the edge X = (x0, x1), -1 if
// it is on the negative side, and 0 if it lies exactly on that circle. The
// circumcenter here is the one on the same side of the triangle's plane as
// its counterclockwise orientation; this makes the result invariant under
// permutations of A, B, C.
//
// If the triangle is degenerate (two vertices are coincident, or all three
// lie on a common great circle), symbolic perturbations are used to produce
// a consistent nonzero answer whenever the vertices are distinct.
//
// Requires that X0 != X1.
func EdgeCircumcenterSign(x0, x1, a, b, c Point) int {
	sign, _ := EdgeCircumcenterSignPrecision(x0, x1, a, b, c)
	return sign
}

// EdgeCircumcenterSignPrecision is like EdgeCircumcenterSign but also
// reports the precision level that was needed to certify the result.
func EdgeCircumcenterSignPrecision(x0, x1, a, b, c Point) (int, Precision) {
	abcSign := Sign(a, b, c)
	if sign := triageEdgeCircumcenterSign[fp64](x0, x1, a, b, c, abcSign); sign != 0 {
		return sign, DoublePrecision
	}
	if sign := triageEdgeCircumcenterSign[dd](x0, x1, a, b, c, abcSign); sign != 0 {
		return sign, DoubleDoublePrecision
	}
	if sign := exactEdgeCircumcenterSign(x0, x1, a, b, c, abcSign); sign != 0 {
		return sign, ExactPrecision
	}
	return symbolicEdgeCircumcenterSign(x0, x1, a, b, c), SymbolicPrecision
}

// triageEdgeCircumcenterSign evaluates EdgeCircumcenterSign at one precision
// tier. The circumcenter of ABC is equidistant from all three vertices, so
// it is a multiple of (B - A) x (C - A); the multiple on the
// counterclockwise side of the plane is selected by abcSign. Its side of the
// circle X is then the sign of the dot product with the edge normal.
func triageEdgeCircumcenterSign[T scalar[T]](x0p, x1p, ap, bp, cp Point, abcSign int) int {
	if abcSign == 0 {
		return 0
	}
	var z T
	u := z.eps()
	x0 := vec3FromVector[T](x0p.Vector)
	x1 := vec3FromVector[T](x1p.Vector)
	a := vec3FromVector[T](ap.Vector)
	b := vec3FromVector[T](bp.Vector)
	c := vec3FromVector[T](cp.Vector)

	dx, sx := x0.sub(x1), x0.add(x1)
	nx := dx.cross(sx)
	nxAbs := dx.crossAbs(sx)

	ab, ac := b.sub(a), c.sub(a)
	cc := ab.cross(ac)
	ccAbs := ab.crossAbs(ac)

	d := nx.dot(cc)
	dErr := nxAbs.dot(ccAbs).mul(z.fromFloat(32 * u))
	return abcSign * certifiedSign(d, dErr)
}

func exactEdgeCircumcenterSign(x0, x1, ap, bp, cp Point, abcSign int) int {
	if abcSign == 0 {
		return 0
	}
	nx := exactEdgeNormal(x0, x1)
	a := r3.ExactVectorFromVector(ap.Vector)
	b := r3.ExactVectorFromVector(bp.Vector)
	c := r3.ExactVectorFromVector(cp.Vector)
	cc := b.Sub(a).Cross(c.Sub(a))
	return abcSign * nx.Dot(cc).Sgn()
}

// symbolicEdgeCircumcenterSign breaks the tie when the circumcenter of ABC
// lies exactly on the great circle through X, using the same pedestal
// perturbation model as symbolicCompareDistances: lexicographically smaller
// points are raised further off the sphere. Raising a vertex pulls the
// circumcenter towards it, so the result is the side of the circle that the
// most-perturbed vertex is on, falling back to the next vertex whenever a
// vertex itself lies exactly on the circle.
//
// Requires that the exact sign is zero, i.e. a previous tier returned 0.
func symbolicEdgeCircumcenterSign(x0, x1, aArg, bArg, cArg Point) int {
	a, b, c := aArg, bArg, cArg
	if b.Cmp(a.Vector) < 0 {
		a, b = b, a
	}
	if c.Cmp(b.Vector) < 0 {
		b, c = c, b
	}
	if b.Cmp(a.Vector) < 0 {
		a, b = b, a
	}
	if sign := unperturbedSign(x0, x1, a); sign != 0 {
		return sign
	}
	if sign := unperturbedSign(x0, x1, b); sign != 0 {
		return sign
	}
	return unperturbedSign(x0, x1, c)
}

// unperturbedSign is Sign without the symbolic perturbation tier: it returns
// 0 whenever the three points are exactly coplanar with the origin, not just
// when two of them are equal.
func unperturbedSign(a, b, c Point) int {
	sign := triageSign(c, a.Cross(b.Vector))
	if sign == 0 {
		sign = expensiveSign(a, b, c, false)
	}
	return sign
}

// Excluded reports the result of VoronoiSiteExclusion.
type Excluded int

const (
	// ExcludedFirst means the first site is excluded by the second.
	ExcludedFirst Excluded = iota

	// ExcludedSecond means the second site is excluded by the first.
	ExcludedSecond

	// ExcludedNeither means neither site excludes the other.
	ExcludedNeither

	// ExcludedUncertain is used between precision tiers when the result
	// could not be certified; it is never returned by VoronoiSiteExclusion.
	ExcludedUncertain
)

func (e Excluded) String() string {
	switch e {
	case ExcludedFirst:
		return "FIRST"
	case ExcludedSecond:
		return "SECOND"
	case ExcludedNeither:
		return "NEITHER"
	case ExcludedUncertain:
		return "UNCERTAIN"
	default:
		return "UNKNOWN"
	}
}

// VoronoiSiteExclusion reports whether one of the two sites A, B can be
// excluded from consideration as the closest site to some point of the edge
// X = (x0, x1), among points within distance r of that site. Site A is
// excluded if every point of the edge that is within distance r of A is
// strictly closer to B (with exact ties broken by the same symbolic
// perturbations as CompareDistances), and symmetrically for B. At most one
// site can be excluded.
//
// Requires that the sites are distinct, that both sites are within distance
// r of the edge, and that A is closer to X0 than B (symbolic ties included).
func VoronoiSiteExclusion(a, b, x0, x1 Point, r s1.ChordAngle) Excluded {
	result, _ := VoronoiSiteExclusionPrecision(a, b, x0, x1, r)
	return result
}

// VoronoiSiteExclusionPrecision is like VoronoiSiteExclusion but also
// reports the precision level that was needed to certify the result.
func VoronoiSiteExclusionPrecision(a, b, x0, x1 Point, r s1.ChordAngle) (Excluded, Precision) {
	// If one site is closer to both endpoints, it is closer to every point
	// of the edge, and the other site's Voronoi region there is empty.
	if CompareDistances(x1, a, b) < 0 {
		return ExcludedSecond, DoublePrecision
	}

	if result := triageVoronoiSiteExclusion[fp64](a, b, x0, x1, float64(r)); result != ExcludedUncertain {
		return result, DoublePrecision
	}
	if result := triageVoronoiSiteExclusion[dd](a, b, x0, x1, float64(r)); result != ExcludedUncertain {
		return result, DoubleDoublePrecision
	}
	return exactVoronoiSiteExclusion(a, b, x0, x1, float64(r)), ExactPrecision
}

// triageVoronoiSiteExclusion evaluates VoronoiSiteExclusion at one precision
// tier, returning ExcludedUncertain when some required sign could not be
// certified.
//
// The bisector of the sites crosses the great circle of X at a multiple of
// Z = N x (A - B), where N = X0 x X1; of the two antipodal crossings, the
// one on the edge is selected by the hemisphere of the midpoint direction
// X0 + X1 (the edge spans less than 180 degrees). The crossing splits the
// edge into the piece closer to A, running from X0 to Z, and the piece
// closer to B, running from Z to X1. Each site is then tested for exclusion
// from its own piece.
func triageVoronoiSiteExclusion[T scalar[T]](ap, bp, x0p, x1p Point, r2f float64) Excluded {
	var z T
	u := z.eps()
	a := vec3FromVector[T](ap.Vector)
	b := vec3FromVector[T](bp.Vector)
	x0 := vec3FromVector[T](x0p.Vector)
	x1 := vec3FromVector[T](x1p.Vector)

	n := x0.cross(x1)
	nAbs := x0.crossAbs(x1)
	dv := a.sub(b)
	zv := n.cross(dv)
	zAbs := nAbs.crossAbs(dv)

	mid := x0.add(x1)
	sigma := certifiedSign(zv.dot(mid), zAbs.dot(mid.abs()).mul(z.fromFloat(64*u)))
	if sigma == 0 {
		return ExcludedUncertain
	}
	zs := zv.mulS(z.fromFloat(float64(sigma)))

	r2 := z.fromFloat(r2f)
	cr := z.fromFloat(1).sub(z.fromFloat(0.5).mul(r2))

	bEx := triageVoronoiSide(zs, zAbs, b, x1, n, nAbs, cr, true)
	if bEx > 0 {
		return ExcludedSecond
	}
	aEx := triageVoronoiSide(zs, zAbs, a, x0, n, nAbs, cr, false)
	if aEx > 0 {
		return ExcludedFirst
	}
	if aEx < 0 && bEx < 0 {
		return ExcludedNeither
	}
	return ExcludedUncertain
}

// triageVoronoiSide decides whether the site S is excluded from its piece of
// the edge, which runs from the bisector crossing Z to the endpoint E. The
// piece is closed at E and open at Z (the crossing itself belongs to the
// side favored by the symbolic tie rule, which no floating point tier can
// resolve). zAtLo says whether Z precedes E in counterclockwise order around
// the circle normal N.
//
// Returns +1 if S is certainly excluded, -1 if certainly not, 0 if
// uncertain.
func triageVoronoiSide[T scalar[T]](zs, zAbs, s, e, n, nAbs vec3[T], cr T, zAtLo bool) int {
	var z T
	u := z.eps()

	// The closest point of the circle to S is the normalized projection of
	// S onto the plane of N: W = |N|^2 S - (S.N) N. The distance from S to
	// any circle point is monotonic in the angle from W, so the minimum
	// over the piece is at W if W lies inside it and at the nearer endpoint
	// otherwise (or at both endpoints, when the antipode of W lies inside).
	n2 := n.norm2()
	sn := s.dot(n)
	w := s.mulS(n2).sub(n.mulS(sn))
	sAbs := s.abs()
	wAbs := sAbs.mulS(nAbs.norm2()).add(nAbs.mulS(nAbs.dot(sAbs)))

	// ord(p, q) = sign((p x q) . N): whether q is counterclockwise of p, by
	// less than a half turn.
	ordZW := certifiedSign(zs.cross(w).dot(n), zAbs.crossAbs(wAbs).dot(nAbs).mul(z.fromFloat(256*u)))
	ordWE := certifiedSign(w.cross(e).dot(n), wAbs.crossAbs(e.abs()).dot(nAbs).mul(z.fromFloat(256*u)))
	if ordZW == 0 || ordWE == 0 {
		return 0
	}
	ordLo, ordHi := ordZW, ordWE
	if !zAtLo {
		ordLo, ordHi = -ordWE, -ordZW
	}

	// The distance comparisons below return +1 exactly when the minimum
	// exceeds the coverage radius, which is the exclusion condition, so
	// their results (including 0 for uncertain) pass through directly.
	switch {
	case ordLo > 0 && ordHi > 0:
		// W is inside the piece; the minimum is the circle distance itself,
		// whose closest point is W.
		return triageVoronoiDistance(w, wAbs, s, cr)
	case ordLo > 0: // ordHi < 0: W is past the hi end.
		if zAtLo {
			return triageVoronoiDistance(e, e.abs(), s, cr)
		}
		return triageVoronoiDistance(zs, zAbs, s, cr)
	case ordHi > 0: // ordLo < 0: W is before the lo end.
		if zAtLo {
			return triageVoronoiDistance(zs, zAbs, s, cr)
		}
		return triageVoronoiDistance(e, e.abs(), s, cr)
	default:
		// The antipode of W is inside the piece, so the distance has an
		// interior maximum and the minimum is at one of the two ends.
		zCmp := triageVoronoiDistance(zs, zAbs, s, cr)
		eCmp := triageVoronoiDistance(e, e.abs(), s, cr)
		if zCmp < 0 || eCmp < 0 {
			return -1
		}
		if zCmp > 0 && eCmp > 0 {
			return 1
		}
		return 0
	}
}

// triageVoronoiDistance compares the angle between the directions of P and S
// against the threshold angle whose cosine is cr. P may be non-unit and may
// carry rounding error; pAbs is the componentwise magnitude surrogate that
// bounds it. Returns -1/+1 if the angle is certifiably below/above the
// threshold, 0 if uncertain.
func triageVoronoiDistance[T scalar[T]](p, pAbs, s vec3[T], cr T) int {
	var z T
	u := z.eps()

	t := p.dot(s)
	tErr := pAbs.dot(s.abs()).mul(z.fromFloat(64 * u))
	st := certifiedSign(t, tErr)

	// cr is computed with a single rounding from the chord length, so its
	// sign is reliable (it is zero only for a threshold of exactly 90
	// degrees).
	sc := cr.sign()

	// lhs - rhs is the sign of |cos r|^2 - |cos d|^2, cross-multiplied by
	// the squared norms of P and S. S is a unit-length input point, but its
	// norm still deviates from 1 by more than the extended tiers can
	// resolve, so the factor cannot be dropped from lhs.
	p2 := p.norm2()
	s2n := s.norm2()
	lhs := cr.mul(cr).mul(p2).mul(s2n)
	rhs := t.mul(t)
	lhsErr := cr.mul(cr).mul(pAbs.norm2()).mul(s2n).mul(z.fromFloat(80 * u)).
		add(lhs.abs().mul(z.fromFloat(11 * u)))
	rhsErr := t.abs().mul(tErr).mul(z.fromFloat(2)).add(rhs.mul(z.fromFloat(2 * u)))
	cmp := certifiedSign(lhs.sub(rhs), lhsErr.add(rhsErr))

	switch {
	case sc > 0 && cmp > 0:
		// |cos d| < cos r: d is strictly between r and 180 - r.
		return 1
	case sc < 0 && cmp > 0:
		return -1
	case cmp < 0 || sc == 0:
		// The comparison reduces to the side of 90 degrees that d is on.
		return -st
	default:
		return 0
	}
}

// exactVoronoiSiteExclusion evaluates VoronoiSiteExclusion in arbitrary
// precision, with exact distance ties at the bisector crossing resolved by
// the symbolic ordering of the sites.
func exactVoronoiSiteExclusion(ap, bp, x0p, x1p Point, r2f float64) Excluded {
	a := r3.ExactVectorFromVector(ap.Vector)
	b := r3.ExactVectorFromVector(bp.Vector)
	x0 := r3.ExactVectorFromVector(x0p.Vector)
	x1 := r3.ExactVectorFromVector(x1p.Vector)

	n := x0.Cross(x1)
	zv := n.Cross(a.Sub(b))
	sigma := zv.Dot(x0.Add(x1)).Sgn()
	if sigma == 0 {
		// The bisector cannot cross perpendicular to the edge midpoint when
		// A is closer to X0 and B is closer to X1.
		return ExcludedNeither
	}
	zs := zv
	if sigma < 0 {
		zs = zv.Mul(newExact(-1))
	}

	cr := newExact(1).Sub(newExact(0.5).Mul(newExact(r2f)))

	// +1 if ties go to B, -1 if ties go to A.
	sym := symbolicCompareDistances(ap, bp)

	if exactVoronoiSide(b, n, zs, x1, true, cr, sym > 0) {
		return ExcludedSecond
	}
	if exactVoronoiSide(a, n, zs, x0, false, cr, sym < 0) {
		return ExcludedFirst
	}
	return ExcludedNeither
}

// exactVoronoiSide reports whether the site S is excluded from its piece of
// the edge, running from the bisector crossing Z to the endpoint E, exactly.
// The piece is closed at E; Z belongs to it only if tieWins is true. zIsLo
// says whether Z precedes E in counterclockwise order around N.
func exactVoronoiSide(s, n, zp, e r3.ExactVector, zIsLo bool, cr exactfloat.ExactFloat, tieWins bool) bool {
	w := s.Mul(n.Norm2()).Sub(n.Mul(s.Dot(n)))
	if w.IsZero() {
		// S is a pole of the circle, exactly 90 degrees from all of it.
		return cr.Sgn() > 0
	}

	zTest := func(p r3.ExactVector) bool {
		switch exactVoronoiDistance(p, s, cr) {
		case 1:
			return true
		case -1:
			return false
		}
		// The coverage boundary passes exactly through the crossing, which
		// is covered only if it belongs to this site's piece.
		return !tieWins
	}
	eTest := func(p r3.ExactVector) bool {
		return exactVoronoiDistance(p, s, cr) > 0
	}
	endTest := func(p r3.ExactVector, isZ bool) bool {
		if isZ {
			return zTest(p)
		}
		return eTest(p)
	}

	lo, hi := zp, e
	if !zIsLo {
		lo, hi = e, zp
	}
	ordLo := lo.Cross(w).Dot(n).Sgn()
	ordHi := w.Cross(hi).Dot(n).Sgn()

	switch {
	case ordLo == 0:
		// W is on the line through the lo end: either the closest circle
		// point is that end, or its antipode is and the minimum moves to
		// the opposite end.
		if w.Dot(lo).Sgn() > 0 {
			return endTest(lo, zIsLo)
		}
		return endTest(hi, !zIsLo)
	case ordHi == 0:
		if w.Dot(hi).Sgn() > 0 {
			return endTest(hi, !zIsLo)
		}
		return endTest(lo, zIsLo)
	case ordLo > 0 && ordHi > 0:
		// The closest circle point is inside the piece.
		return exactVoronoiDistance(w, s, cr) > 0
	case ordLo > 0: // ordHi < 0: W is past the hi end.
		return endTest(hi, !zIsLo)
	case ordHi > 0: // ordLo < 0: W is before the lo end.
		return endTest(lo, zIsLo)
	default:
		// The antipode of W is inside the piece.
		return endTest(lo, zIsLo) && endTest(hi, !zIsLo)
	}
}

// exactVoronoiDistance compares the angle between the directions of P and S
// against the threshold angle whose cosine is cr, exactly. Returns 0 only
// when the angle equals the threshold exactly.
func exactVoronoiDistance(p, s r3.ExactVector, cr exactfloat.ExactFloat) int {
	t := p.Dot(s)
	st := t.Sgn()
	sc := cr.Sgn()
	if sc == 0 {
		return -st
	}
	cmp := cr.Mul(cr).Mul(p.Norm2()).Mul(s.Norm2()).Sub(t.Mul(t)).Sgn()
	switch {
	case sc > 0 && cmp > 0:
		return 1
	case sc < 0 && cmp > 0:
		return -1
	case cmp < 0:
		return -st
	}
	// |cos d| == |cos r| exactly; equality requires matching signs.
	if st == sc {
		return 0
	}
	return -st
}
