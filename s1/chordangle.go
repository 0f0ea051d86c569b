package s1

import (
	"math"
)

// ChordAngle represents the angle subtended by a chord (the straight line
// segment connecting two points on the unit sphere). Its representation
// makes it very efficient for computing and comparing distances, but unlike
// Angle it is only capable of representing angles between 0 and pi radians.
//
// ChordAngle is the natural threshold type for the distance predicates:
// the squared chord length between two doubles is computed with a couple
// of exactly analyzable floating point operations, and comparing squared
// chord lengths avoids any trigonometry.
//
// The internal representation is the squared length of the chord, which is
// in the range [0, 4] for valid angles. Two special values are supported:
// a negative chord angle, which sorts below zero, and an infinite chord
// angle, which sorts above straight.
type ChordAngle float64

const (
	// NegativeChordAngle represents a chord angle smaller than the zero
	// angle. The only valid operations on it are comparisons, Angle
	// conversions, and Successor/Predecessor.
	NegativeChordAngle = ChordAngle(-1)

	// RightChordAngle represents a chord angle of 90 degrees (a "right
	// angle").
	RightChordAngle = ChordAngle(2)

	// StraightChordAngle represents a chord angle of 180 degrees (a
	// "straight angle"). This is the maximum finite chord angle.
	StraightChordAngle = ChordAngle(4)

	// maxLength2 is the square of the maximum length allowed in a
	// ChordAngle.
	maxLength2 = 4.0

	dblEpsilon = 2.220446049250313e-16
)

// ChordAngleFromAngle returns a ChordAngle from the given Angle.
func ChordAngleFromAngle(a Angle) ChordAngle {
	if a < 0 {
		return NegativeChordAngle
	}
	if a.isInf() {
		return InfChordAngle()
	}
	l := 2 * math.Sin(0.5*math.Min(math.Pi, a.Radians()))
	return ChordAngle(l * l)
}

// ChordAngleFromSquaredLength returns a ChordAngle from the squared chord
// length. Squared lengths greater than 4 are clamped to a straight angle.
func ChordAngleFromSquaredLength(length2 float64) ChordAngle {
	if length2 > maxLength2 {
		return StraightChordAngle
	}
	return ChordAngle(length2)
}

// InfChordAngle returns a chord angle larger than any finite chord angle.
// The only valid operations on it are comparisons, Angle conversions, and
// Successor/Predecessor.
func InfChordAngle() ChordAngle {
	return ChordAngle(math.Inf(1))
}

// Angle converts this ChordAngle to an Angle.
func (c ChordAngle) Angle() Angle {
	if c < 0 {
		return -1 * Radian
	}
	if c.IsInfinity() {
		return InfAngle()
	}
	return Angle(2 * math.Asin(0.5*math.Sqrt(float64(c))))
}

func (c ChordAngle) IsNegative() bool { return c < 0 }

func (c ChordAngle) IsInfinity() bool {
	return math.IsInf(float64(c), 1)
}

// IsSpecial reports whether this ChordAngle is one of the special cases.
func (c ChordAngle) IsSpecial() bool {
	return c.IsNegative() || c.IsInfinity()
}

// isValid reports whether this ChordAngle is valid.
func (c ChordAngle) isValid() bool {
	return (c >= 0 && c <= maxLength2) || c.IsSpecial()
}

// Successor returns the smallest representable ChordAngle larger than this
// one. This can be used to convert a "<" comparison to a "<=" comparison.
//
//	NegativeChordAngle.Successor == 0
//	StraightChordAngle.Successor == InfChordAngle
//	InfChordAngle.Successor == InfChordAngle
func (c ChordAngle) Successor() ChordAngle {
	if c >= maxLength2 {
		return InfChordAngle()
	}
	if c < 0 {
		return 0
	}
	return ChordAngle(math.Nextafter(float64(c), 10.0))
}

// Predecessor returns the largest representable ChordAngle less than this
// one.
//
//	InfChordAngle.Predecessor == StraightChordAngle
//	ChordAngle(0).Predecessor == NegativeChordAngle
//	NegativeChordAngle.Predecessor == NegativeChordAngle
func (c ChordAngle) Predecessor() ChordAngle {
	if c <= 0 {
		return NegativeChordAngle
	}
	if c > maxLength2 {
		return StraightChordAngle
	}
	return ChordAngle(math.Nextafter(float64(c), -10.0))
}

// MaxPointError returns the maximum error size for a ChordAngle
// constructed from two unit vectors, assuming the vectors themselves are
// correct to within the usual normalization error.
func (c ChordAngle) MaxPointError() float64 {
	return 4.5*dblEpsilon*float64(c) + 16*dblEpsilon*dblEpsilon
}

// MaxAngleError returns the maximum error for a ChordAngle constructed
// from an Angle.
func (c ChordAngle) MaxAngleError() float64 {
	return 1.5 * dblEpsilon * float64(c)
}

// Add adds the other ChordAngle to this one and returns the resulting
// value. This method assumes the ChordAngles are not special.
func (c ChordAngle) Add(other ChordAngle) ChordAngle {
	// Optimization for the common case where b is an error tolerance
	// parameter that happens to be zero.
	if other == 0 {
		return c
	}

	// Clamp the angle sum to at most 180 degrees.
	if c+other >= maxLength2 {
		return StraightChordAngle
	}

	// Let a and b be the (non-squared) chord lengths, and let c = a+b.
	// Let A, B, and C be the corresponding half-angles (a = 2*sin(A),
	// etc). Then
	//
	//	sin(C) = sin(A+B) = sin(A)*cos(B) + sin(B)*cos(A)
	//	cos(X) = sqrt(1 - sin^2(X))
	x := float64(c) * (1 - 0.25*float64(other))
	y := float64(other) * (1 - 0.25*float64(c))
	return ChordAngle(math.Min(maxLength2, x+y+2*math.Sqrt(x*y)))
}

// Sub subtracts the other ChordAngle from this one and returns the
// resulting value. This method assumes the ChordAngles are not special.
func (c ChordAngle) Sub(other ChordAngle) ChordAngle {
	if other == 0 {
		return c
	}
	if c <= other {
		return 0
	}
	x := float64(c) * (1 - 0.25*float64(other))
	y := float64(other) * (1 - 0.25*float64(c))
	return ChordAngle(math.Max(0, x+y-2*math.Sqrt(x*y)))
}

// Expanded returns a new ChordAngle whose chord distance represents the
// squared distance when the original distance is increased by the given
// error bound. Error can be negative.
func (c ChordAngle) Expanded(e float64) ChordAngle {
	// If the angle is special then don't change it; otherwise clamp to
	// the valid range.
	if c.IsSpecial() {
		return c
	}
	return ChordAngle(math.Max(0.0, math.Min(maxLength2, float64(c)+e)))
}

// Sin returns the sine of this chord angle, which is undefined for
// negative and infinite chord angles.
func (c ChordAngle) Sin() float64 {
	return math.Sqrt(c.Sin2())
}

// Sin2 returns the square of the sine of this chord angle. It is more
// efficient than Sin and has no rounding beyond its two operations.
func (c ChordAngle) Sin2() float64 {
	// Let a be the (non-squared) chord length, and let A be the
	// corresponding half-angle (a = 2*sin(A)). The formula below can be
	// derived from:
	//	sin(2A) = 2 * sin(A) * cos(A)
	//	cos^2(A) = 1 - sin^2(A)
	// This is much faster than converting to Angle form.
	return float64(c) * (1 - 0.25*float64(c))
}

// Cos returns the cosine of this chord angle, which is undefined for
// negative and infinite chord angles.
func (c ChordAngle) Cos() float64 {
	// cos(2A) = cos^2(A) - sin^2(A) = 1 - 2*sin^2(A)
	return 1 - 0.5*float64(c)
}

// Tan returns the tangent of this chord angle.
func (c ChordAngle) Tan() float64 {
	return c.Sin() / c.Cos()
}
