package s2

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// checkCompareEdgeDirections verifies the result and certification tier of
// CompareEdgeDirections, together with the identities that must hold when
// edges are swapped, reversed, or negated.
func checkCompareEdgeDirections(t *testing.T, a0, a1, b0, b1 Point, want int, maxPrec Precision) {
	t.Helper()
	sign, prec := CompareEdgeDirectionsPrecision(a0, a1, b0, b1)
	require.Equal(t, want, sign)
	require.LessOrEqual(t, prec, maxPrec)

	require.Equal(t, want, CompareEdgeDirections(b0, b1, a0, a1))
	require.Equal(t, want, CompareEdgeDirections(neg(a0), neg(a1), b0, b1))
	require.Equal(t, want, CompareEdgeDirections(a0, a1, neg(b0), neg(b1)))
	require.Equal(t, -want, CompareEdgeDirections(a1, a0, b0, b1))
	require.Equal(t, -want, CompareEdgeDirections(a0, a1, b1, b0))
	require.Equal(t, -want, CompareEdgeDirections(neg(a0), a1, b0, b1))
	require.Equal(t, -want, CompareEdgeDirections(a0, neg(a1), b0, b1))
	require.Equal(t, -want, CompareEdgeDirections(a0, a1, neg(b0), b1))
	require.Equal(t, -want, CompareEdgeDirections(a0, a1, b0, neg(b1)))
}

func TestCompareEdgeDirectionsCoverage(t *testing.T) {
	checkCompareEdgeDirections(t,
		pt(1, 0, 0), pt(1, 1, 0), pt(1, -1, 0), pt(1, 0, 0),
		1, DoublePrecision)
	checkCompareEdgeDirections(t,
		pt(1, 0, 1.5e-15), pt(1, 1, 0), pt(0, -1, 0), pt(0, 0, 1),
		1, DoublePrecision)
	checkCompareEdgeDirections(t,
		pt(1, 0, 1e-18), pt(1, 1, 0), pt(0, -1, 0), pt(0, 0, 1),
		1, DoubleDoublePrecision)
	checkCompareEdgeDirections(t,
		pt(1, 0, 1e-50), pt(1, 1, 0), pt(0, -1, 0), pt(0, 0, 1),
		1, ExactPrecision)
	checkCompareEdgeDirections(t,
		pt(1, 0, 0), pt(1, 1, 0), pt(0, -1, 0), pt(0, 0, 1),
		0, ExactPrecision)
}

func checkSignDotProd(t *testing.T, a, b Point, want int, maxPrec Precision) {
	t.Helper()
	sign, prec := SignDotProdPrecision(a, b)
	require.Equal(t, want, sign)
	require.LessOrEqual(t, prec, maxPrec)
}

func TestSignDotProd(t *testing.T) {
	a := pt(1, 0, 0)

	// Exactly orthogonal vectors can only be certified exactly.
	checkSignDotProd(t, a, pt(0, 1, 0), 0, ExactPrecision)

	// Nearly orthogonal with tiny positive and negative dot products.
	checkSignDotProd(t, a, pt(epsilon, 1, 0), 1, DoubleDoublePrecision)
	checkSignDotProd(t, a, pt(1e-45, 1, 0), 1, ExactPrecision)
	checkSignDotProd(t, a, pt(-epsilon, 1, 0), -1, DoubleDoublePrecision)
	checkSignDotProd(t, a, pt(-1e-45, 1, 0), -1, ExactPrecision)

	// Clearly separated vectors certify in plain float64.
	checkSignDotProd(t, a, pt(1, 1, 0), 1, DoublePrecision)
	checkSignDotProd(t, a, pt(-1, 1e-10, 0), -1, DoublePrecision)
}

func checkIntersectionSign(t *testing.T, a, b, n, x Point, want int, maxPrec Precision) {
	t.Helper()
	sign, prec := CircleEdgeIntersectionSignPrecision(a, b, n, x)
	require.Equal(t, want, sign)
	require.LessOrEqual(t, prec, maxPrec)
}

func TestCircleEdgeIntersectionSign(t *testing.T) {
	// The edge from (1,0,0) to (0,1,0) crosses the great circle with
	// normal (-1,1,0) at the point (1,1,0)/sqrt(2).
	a := pt(1, 0, 0)
	b := pt(0, 1, 0)
	n := pt(-1, 1, 0)

	// Reference points clearly on one side of the plane through X.
	checkIntersectionSign(t, a, b, n, pt(1, 0, 0), 1, DoublePrecision)
	checkIntersectionSign(t, a, b, n, pt(0, 1, 0), 1, DoublePrecision)
	checkIntersectionSign(t, a, b, n, pt(-1, 0, 0), -1, DoublePrecision)

	// The crossing lies exactly in the plane through X when X is the
	// circle normal itself or the pole of the edge's great circle.
	checkIntersectionSign(t, a, b, n, pt(0, 0, 1), 0, ExactPrecision)
	checkIntersectionSign(t, a, b, n, n, 0, ExactPrecision)

	// A plane through X that just barely misses the crossing.
	checkIntersectionSign(t, a, b, n, pt(-1, 1+1e-12, 0), 1, DoublePrecision)
	checkIntersectionSign(t, a, b, n, pt(-1+2*epsilon, 1, 0), 1, DoubleDoublePrecision)
	checkIntersectionSign(t, a, b, n, pt(-1-2*epsilon, 1, 0), -1, DoubleDoublePrecision)

	// Reversing the edge selects the same crossing point.
	checkIntersectionSign(t, b, a, n, pt(1, 0, 0), 1, DoublePrecision)
	// Reversing the circle normal does too.
	checkIntersectionSign(t, a, b, neg(n), pt(1, 0, 0), 1, DoublePrecision)
}

func checkIntersectionOrdering(t *testing.T, a, b, c, d, m, n Point, want int, maxPrec Precision) {
	t.Helper()
	sign, prec := CircleEdgeIntersectionOrderingPrecision(a, b, c, d, m, n)
	require.Equal(t, want, sign)
	require.LessOrEqual(t, prec, maxPrec)
}

func TestCircleEdgeIntersectionOrdering(t *testing.T) {
	// Two edges crossing the great circle with normal M (the plane y = x),
	// ordered by their height above the plane of N (the equator). The
	// fixture coordinates are small integers so every determinant below is
	// computed exactly. Edge AB crosses at a point proportional to
	// (1, 1, 2), and edge CD at a point proportional to (1, 1, 1).
	m := rawPt(-1, 1, 0)
	n := rawPt(0, 0, 1)
	a, b := rawPt(1, 0, 1), rawPt(0, 1, 1)
	c, d := rawPt(2, 0, 1), rawPt(0, 2, 1)

	// The AB crossing is higher above the equator.
	checkIntersectionOrdering(t, a, b, c, d, m, n, 1, DoublePrecision)
	// Swapping the two edges negates the result.
	checkIntersectionOrdering(t, c, d, a, b, m, n, -1, DoublePrecision)
	// Reversing the reference circle also negates it.
	checkIntersectionOrdering(t, a, b, c, d, m, neg(n), -1, DoublePrecision)

	// Identical or reversed edges cross at the same point.
	checkIntersectionOrdering(t, a, b, a, b, m, n, 0, DoublePrecision)
	checkIntersectionOrdering(t, a, b, b, a, m, n, 0, DoublePrecision)

	// The edge from (1,1,2) to (1,0,0) crosses the plane y = x exactly at
	// (1,1,2), the same point where AB crosses, so the two crossings are
	// exactly equidistant from every reference plane.
	e, f := rawPt(1, 1, 2), rawPt(1, 0, 0)
	checkIntersectionOrdering(t, a, b, e, f, m, n, 0, ExactPrecision)

	// Perturbing that shared crossing by one part in 1e14 separates the
	// heights by too little for plain float64.
	e2 := rawPt(1, 1, 2+1e-14)
	checkIntersectionOrdering(t, a, b, e2, f, m, n, -1, DoubleDoublePrecision)
}
