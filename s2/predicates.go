package s2

import (
	"math"

	"github.com/gosphere/geo/exactfloat"
	"github.com/gosphere/geo/r3"
)

// This file implements the orientation predicate Sign and the machinery it
// shares with the other robust predicates. Every predicate follows the same
// escalation strategy: evaluate the defining expression in float64 together
// with an upper bound on its rounding error, and if the result cannot be
// certified, re-evaluate in extended precision, then in arbitrary precision,
// and finally (for predicates that define one) fall back to symbolic
// perturbations so that a deterministic nonzero answer exists even for
// degenerate inputs.

// Precision identifies the precision level at which a predicate was able to
// certify its result. It is returned by the *Precision variants of the
// predicates, which exist so that callers (and tests) can observe how far a
// computation had to escalate.
type Precision int

const (
	// DoublePrecision means plain float64 arithmetic was sufficient.
	DoublePrecision Precision = iota

	// DoubleDoublePrecision means the result needed the double-double
	// extended precision tier.
	DoubleDoublePrecision

	// ExactPrecision means the result needed arbitrary precision
	// arithmetic.
	ExactPrecision

	// SymbolicPrecision means the inputs were exactly degenerate and the
	// result was determined by symbolic perturbations.
	SymbolicPrecision
)

func (p Precision) String() string {
	switch p {
	case DoublePrecision:
		return "DOUBLE"
	case DoubleDoublePrecision:
		return "DOUBLE_DOUBLE"
	case ExactPrecision:
		return "EXACT"
	case SymbolicPrecision:
		return "SYMBOLIC"
	default:
		return "UNKNOWN"
	}
}

const (
	// maxDetError is the maximum rounding error of the determinant
	// (A x B) . C computed in float64 for unit length inputs.
	maxDetError = 0.8e-15 // 14 * (2**-54)

	// detErrorMultiplier is the relative rounding error bound of the
	// determinant computed by stableSign, as a multiple of the product of
	// the two shortest edge lengths.
	detErrorMultiplier = 3.2321 * (2 * 0x1p-53)
)

// Sign returns +1 if the points A, B, C are counterclockwise, -1 if they are
// clockwise, and 0 if any two points are the same. The result is always
// well defined: even when the three points are exactly coplanar with the
// origin, symbolic perturbations are used to produce a consistent nonzero
// answer.
//
// Sign satisfies the following conditions:
//
//	(1) Sign(a,b,c) == 0 if and only if a == b, b == c, or c == a
//	(2) Sign(b,c,a) == Sign(a,b,c) for all a,b,c
//	(3) Sign(c,b,a) == -Sign(a,b,c) for all a,b,c
//
// In other words:
//
//	(1) The result is zero if and only if two points are the same.
//	(2) Rotating the order of the points does not affect the result.
//	(3) Exchanging any two points inverts the result.
func Sign(a, b, c Point) int {
	return signWithCross(a, b, c, a.Cross(b.Vector))
}

// signWithCross is a version of Sign for callers that have already computed
// A x B (such as EdgeCrosser, which reuses it across a vertex chain).
func signWithCross(a, b, c Point, aCrossB r3.Vector) int {
	sign := triageSign(c, aCrossB)
	if sign == 0 {
		sign = expensiveSign(a, b, c, true)
	}
	return sign
}

// triageSign certifies the sign of (A x B) . C in plain float64, returning
// 0 when the determinant is too close to zero for the result to be trusted.
func triageSign(c Point, aCrossB r3.Vector) int {
	det := aCrossB.Dot(c.Vector)
	if det > maxDetError {
		return 1
	}
	if det < -maxDetError {
		return -1
	}
	return 0
}

// expensiveSign reports the sign of the determinant of three points that
// triageSign could not separate from zero. With perturb set it returns 0 if
// and only if two of the points are equal; without it, also when the points
// are exactly coplanar with the origin.
func expensiveSign(a, b, c Point, perturb bool) int {
	// Return zero if and only if two points are the same. This ensures (1).
	if a == b || b == c || c == a {
		return 0
	}

	// Re-evaluating the determinant about the vertex with the two shortest
	// incident edges recovers most nearly-degenerate cases without leaving
	// floating point.
	if sign := stableSign(a, b, c); sign != 0 {
		return sign
	}
	return exactSign(a, b, c, perturb)
}

// stableSign recomputes the determinant using the two shortest edges of the
// triangle. Subtracting nearby unit vectors is exact, so the error of the
// result scales with the edge lengths rather than being the fixed bound of
// triageSign. This certifies the sign of long thin triangles that triageSign
// cannot.
func stableSign(a, b, c Point) int {
	ab := b.Sub(a.Vector)
	bc := c.Sub(b.Vector)
	ca := a.Sub(c.Vector)
	ab2 := ab.Norm2()
	bc2 := bc.Norm2()
	ca2 := ca.Norm2()

	// The two shortest edges meet at the vertex opposite the longest edge.
	// The determinant is computed from those two edges, expanded about
	// their shared vertex.
	var e1, e2, op r3.Vector
	switch {
	case ab2 >= bc2 && ab2 >= ca2:
		// AB is the longest edge.
		e1, e2, op = ca, bc, c.Vector
	case bc2 >= ca2:
		// BC is the longest edge.
		e1, e2, op = ab, ca, a.Vector
	default:
		// CA is the longest edge.
		e1, e2, op = bc, ab, b.Vector
	}

	det := -e1.Cross(e2).Dot(op)
	maxErr := detErrorMultiplier * math.Sqrt(ab2*bc2*ca2/max(ab2, bc2, ca2))

	// If the determinant isn't zero, within maxErr, we know definitively
	// the point ordering.
	if det > maxErr {
		return 1
	}
	if det < -maxErr {
		return -1
	}
	return 0
}

// exactSign computes the determinant in arbitrary precision arithmetic.
// If perturb is true and the exact determinant is zero, the result is
// determined by symbolic perturbations; otherwise zero is returned.
func exactSign(a, b, c Point, perturb bool) int {
	// Sort the three points in lexicographic order, keeping track of the
	// sign of the permutation. (Each exchange inverts the sign of the
	// determinant.)
	permSign := 1
	pa, pb, pc := a, b, c
	if pa.Cmp(pb.Vector) > 0 {
		pa, pb = pb, pa
		permSign = -permSign
	}
	if pb.Cmp(pc.Vector) > 0 {
		pb, pc = pc, pb
		permSign = -permSign
	}
	if pa.Cmp(pb.Vector) > 0 {
		pa, pb = pb, pa
		permSign = -permSign
	}

	// Construct multiple-precision versions of the sorted points and
	// compute their exact 3x3 determinant. The precision of ExactFloat is
	// high enough that no rounding is ever performed.
	xa := r3.ExactVectorFromVector(pa.Vector)
	xb := r3.ExactVectorFromVector(pb.Vector)
	xc := r3.ExactVectorFromVector(pc.Vector)
	xbCrossXc := xb.Cross(xc)
	detSign := xa.Dot(xbCrossXc).Sgn()

	if detSign == 0 && perturb {
		detSign = symbolicallyPerturbedSign(xa, xb, xc, xbCrossXc)
	}
	return permSign * detSign
}

// A perturbationCheck is one coefficient in the symbolic perturbation
// expansion of the determinant. The name records which perturbation product
// the coefficient belongs to.
type perturbationCheck struct {
	name string
	sign func(a, b, c, bCrossC r3.ExactVector) int
}

// perturbationCascade lists the coefficients of the perturbed determinant in
// order of decreasing perturbation magnitude. The first nonzero coefficient
// determines the sign of the result.
//
// The perturbation model assigns every coordinate x[i] of every point a
// symbolic perturbation dx[i], chosen such that
//
//	da[2] > da[1] > da[0] > db[2] > db[1] > db[0] > dc[2] > dc[1] > dc[0]
//
// where each perturbation is so much smaller than the previous one that it
// need not be considered unless the coefficients of all products of the
// previous perturbations are zero. Pretending each perturbation is a tiny
// value eps raised to a successive power of two makes the enumeration order
// below a simple binary count. Not every product appears, since the
// determinant only multiplies elements from distinct rows and columns, and
// products with equal coefficients are tested once at their first position.
//
// The sequence appears in Table 4-ii of "Simulation of Simplicity"
// (Edelsbrunner and Muecke, ACM Transactions on Graphics, 1990) with the
// translations [a,b,c] -> [i,j,k] and [0,1,2] -> [1,2,3]; some signs differ
// because the opposite cross product is used (B x C rather than C x B).
var perturbationCascade = []perturbationCheck{
	{"da[2]", func(a, b, c, bCrossC r3.ExactVector) int {
		return bCrossC.Z.Sgn()
	}},
	{"da[1]", func(a, b, c, bCrossC r3.ExactVector) int {
		return bCrossC.Y.Sgn()
	}},
	{"da[0]", func(a, b, c, bCrossC r3.ExactVector) int {
		return bCrossC.X.Sgn()
	}},
	{"db[2]", func(a, b, c, bCrossC r3.ExactVector) int {
		return c.X.Mul(a.Y).Sub(c.Y.Mul(a.X)).Sgn()
	}},
	{"db[2]*da[1]", func(a, b, c, bCrossC r3.ExactVector) int {
		return c.X.Sgn()
	}},
	{"db[2]*da[0]", func(a, b, c, bCrossC r3.ExactVector) int {
		return -c.Y.Sgn()
	}},
	{"db[1]", func(a, b, c, bCrossC r3.ExactVector) int {
		return c.Z.Mul(a.X).Sub(c.X.Mul(a.Z)).Sgn()
	}},
	{"db[1]*da[0]", func(a, b, c, bCrossC r3.ExactVector) int {
		return c.Z.Sgn()
	}},
	// The following test is listed in the paper but is redundant: the
	// previous tests guarantee that C == (0, 0, 0) by this stage.
	//   db[0]: c.Y*a.Z - c.Z*a.Y == 0
	{"dc[2]", func(a, b, c, bCrossC r3.ExactVector) int {
		return a.X.Mul(b.Y).Sub(a.Y.Mul(b.X)).Sgn()
	}},
	{"dc[2]*da[1]", func(a, b, c, bCrossC r3.ExactVector) int {
		return -b.X.Sgn()
	}},
	{"dc[2]*da[0]", func(a, b, c, bCrossC r3.ExactVector) int {
		return b.Y.Sgn()
	}},
	{"dc[2]*db[1]", func(a, b, c, bCrossC r3.ExactVector) int {
		return a.X.Sgn()
	}},
	{"dc[2]*db[1]*da[0]", func(a, b, c, bCrossC r3.ExactVector) int {
		return 1
	}},
}

// symbolicallyPerturbedSign resolves the sign of an exactly zero determinant
// under the model that every point is perturbed by a unique infinitesimal
// amount, such that no three perturbed points are collinear and no four are
// coplanar. The perturbations are so small that they never change the sign
// of a determinant that was nonzero before, so they can be ignored except
// here.
//
// Since the perturbation of a given point is fixed, the results are always
// self-consistent across calls; the method never reports an "impossible"
// configuration of non-degenerate points.
//
// Requires that the determinant of A, B, C is exactly zero and that the
// points are distinct, with A < B < C in lexicographic order. Sorting must
// happen before the perturbations are applied, because if A < B then the
// perturbation for A is much larger than the perturbation for B.
func symbolicallyPerturbedSign(a, b, c, bCrossC r3.ExactVector) int {
	for _, check := range perturbationCascade {
		if detSign := check.sign(a, b, c, bCrossC); detSign != 0 {
			return detSign
		}
	}
	// Unreachable: the final cascade entry is a constant.
	return 1
}

// newExact converts a float64 losslessly for use in exact evaluators.
func newExact(v float64) exactfloat.ExactFloat { return exactfloat.NewExactFloat(v) }
