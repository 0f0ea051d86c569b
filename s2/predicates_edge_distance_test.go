package s2

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gosphere/geo/s1"
)

func checkCompareEdgeDistance(t *testing.T, x, a0, a1 Point, r s1.ChordAngle, want int, maxPrec Precision) {
	t.Helper()
	sign, prec := CompareEdgeDistancePrecision(x, a0, a1, r)
	require.Equal(t, want, sign)
	require.LessOrEqual(t, prec, maxPrec)
}

func TestCompareEdgeDistanceCoverage(t *testing.T) {
	// Cases where the closest point is in the edge interior and the
	// threshold is small, handled by the sin^2 line distance comparison.
	checkCompareEdgeDistance(t,
		pt(1, 1e-10, 1e-15), pt(1, 0, 0), pt(0, 1, 0),
		s1.ChordAngleFromAngle(1e-15+epsilon), -1, DoublePrecision)
	checkCompareEdgeDistance(t,
		pt(1, 1, 1e-15), pt(1, 0, 0), pt(0, 1, 0),
		s1.ChordAngleFromAngle(1e-15+epsilon), -1, DoubleDoublePrecision)
	checkCompareEdgeDistance(t,
		pt(1, 1, 1e-40), pt(1, 0, 0), pt(0, 1, 0),
		s1.ChordAngleFromAngle(1e-40), -1, ExactPrecision)
	checkCompareEdgeDistance(t,
		pt(1, 1, 0), pt(1, 0, 0), pt(0, 1, 0),
		s1.ChordAngle(0), 0, ExactPrecision)

	// Interior cases with a threshold near 90 degrees, handled by the
	// cos^2 line distance comparison.
	checkCompareEdgeDistance(t,
		pt(1e-15, 0, 1), pt(1, 0, 0), pt(0, 1, 0),
		s1.ChordAngleFromAngle(math.Pi/2-1e-15-3*epsilon), 1, DoublePrecision)
	checkCompareEdgeDistance(t,
		pt(1e-15, 0, 1), pt(1, 0, 0), pt(0, 1, 0),
		s1.ChordAngleFromAngle(math.Pi/2-1e-15-epsilon), 1, DoubleDoublePrecision)
	checkCompareEdgeDistance(t,
		pt(1e-40, 0, 1), pt(1, 0, 0), pt(0, 1, 0),
		s1.RightChordAngle, -1, ExactPrecision)
	checkCompareEdgeDistance(t,
		pt(0, 0, 1), pt(1, 0, 0), pt(0, 1, 0),
		s1.RightChordAngle, 0, ExactPrecision)

	// Cases where the closest point is an edge endpoint.
	checkCompareEdgeDistance(t,
		pt(1e-15, -1, 0), pt(1, 0, 0), pt(1, 1, 0),
		s1.RightChordAngle, -1, DoublePrecision)
	checkCompareEdgeDistance(t,
		pt(-1, -1, 1), pt(1, 0, 0), pt(1, 1, 0),
		s1.RightChordAngle, 1, DoublePrecision)
	checkCompareEdgeDistance(t,
		pt(1e-18, -1, 0), pt(1, 0, 0), pt(1, 1, 0),
		s1.RightChordAngle, -1, DoubleDoublePrecision)
	checkCompareEdgeDistance(t,
		pt(1e-100, -1, 0), pt(1, 0, 0), pt(1, 1, 0),
		s1.RightChordAngle, -1, ExactPrecision)
	checkCompareEdgeDistance(t,
		pt(0, -1, 0), pt(1, 0, 0), pt(1, 1, 0),
		s1.RightChordAngle, 0, ExactPrecision)

	// Cases where X is antipodal to an edge endpoint.
	checkCompareEdgeDistance(t,
		pt(-1, 0, 0), pt(1, 0, 0), pt(1, 1, 0),
		s1.RightChordAngle, 1, DoublePrecision)
	checkCompareEdgeDistance(t,
		pt(-1, 0, 0), pt(1, 0, 0), pt(1e-18, 1, 0),
		s1.RightChordAngle, 1, DoubleDoublePrecision)
	checkCompareEdgeDistance(t,
		pt(-1, 0, 0), pt(1, 0, 0), pt(1e-100, 1, 0),
		s1.RightChordAngle, 1, ExactPrecision)
	checkCompareEdgeDistance(t,
		pt(0, -1, 0), pt(1, 0, 0), pt(0, 1, 0),
		s1.RightChordAngle, 0, ExactPrecision)
}

func TestCompareEdgeDistanceDegenerateEdge(t *testing.T) {
	// A degenerate edge compares like its single point.
	x := pt(1, 0, 0)
	a := pt(0, 1, 0)
	sign, prec := CompareEdgeDistancePrecision(x, a, a, s1.RightChordAngle)
	require.Equal(t, 0, sign)
	require.Equal(t, ExactPrecision, prec)
	require.Equal(t, -1, CompareEdgeDistance(x, a, a, s1.InfChordAngle()))
}

func TestCompareEdgePairDistanceCoverage(t *testing.T) {
	// CompareEdgePairDistance is built from CrossingSign and
	// CompareEdgeDistance, so these cases only verify that those are
	// combined correctly.
	x := pt(1, 0, 0)
	y := pt(0, 1, 0)
	z := pt(0, 0, 1)
	a := pt(1, 1e-100, 1e-99)
	b := pt(1, 1e-100, -1e-99)

	// Edges with an interior crossing.
	require.Equal(t, 0, CompareEdgePairDistance(x, y, a, b, s1.ChordAngle(0)))
	require.Equal(t, -1, CompareEdgePairDistance(x, y, a, b, s1.ChordAngleFromAngle(1)))
	require.Equal(t, 1, CompareEdgePairDistance(x, y, a, b, s1.ChordAngleFromAngle(-1)))

	// Edges that share an endpoint.
	require.Equal(t, 0, CompareEdgePairDistance(x, y, x, z, s1.ChordAngle(0)))
	require.Equal(t, 0, CompareEdgePairDistance(x, y, z, x, s1.ChordAngle(0)))
	require.Equal(t, 0, CompareEdgePairDistance(y, x, x, z, s1.ChordAngle(0)))
	require.Equal(t, 0, CompareEdgePairDistance(y, x, z, x, s1.ChordAngle(0)))

	// One degenerate edge.
	require.Equal(t, 0, CompareEdgePairDistance(x, x, x, y, s1.ChordAngle(0)))
	require.Equal(t, 0, CompareEdgePairDistance(x, y, x, x, s1.ChordAngle(0)))
	require.Equal(t, 1, CompareEdgePairDistance(x, x, y, z, s1.ChordAngleFromAngle(1)))
	require.Equal(t, 1, CompareEdgePairDistance(y, z, x, x, s1.ChordAngleFromAngle(1)))

	// Both edges degenerate.
	require.Equal(t, 0, CompareEdgePairDistance(x, x, x, x, s1.ChordAngle(0)))
	require.Equal(t, 1, CompareEdgePairDistance(x, x, y, y, s1.ChordAngleFromAngle(1)))

	// A non-zero minimum distance achieved at each of the four edge
	// endpoints in turn.
	hi := s1.ChordAngleFromAngle(1e-100 + 1e-115)
	lo := s1.ChordAngleFromAngle(1e-100 - 1e-115)
	require.Equal(t, -1, CompareEdgePairDistance(a, y, x, z, hi))
	require.Equal(t, 1, CompareEdgePairDistance(a, y, x, z, lo))
	require.Equal(t, -1, CompareEdgePairDistance(y, a, x, z, hi))
	require.Equal(t, 1, CompareEdgePairDistance(y, a, x, z, lo))
	require.Equal(t, -1, CompareEdgePairDistance(x, z, a, y, hi))
	require.Equal(t, 1, CompareEdgePairDistance(x, z, a, y, lo))
	require.Equal(t, -1, CompareEdgePairDistance(x, z, y, a, hi))
	require.Equal(t, 1, CompareEdgePairDistance(x, z, y, a, lo))
}
