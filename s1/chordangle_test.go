package s1

import (
	"math"
	"testing"
)

// chordFromDegrees is shorthand for building test fixtures.
func chordFromDegrees(d float64) ChordAngle {
	return ChordAngleFromAngle(Angle(d) * Degree)
}

func TestChordAngleBasics(t *testing.T) {
	var zero ChordAngle
	tests := []struct {
		a, b             ChordAngle
		lessThan, equals bool
	}{
		{zero, zero, false, true},
		{NegativeChordAngle, NegativeChordAngle, false, true},
		{NegativeChordAngle, zero, true, false},
		{zero, RightChordAngle, true, false},
		{RightChordAngle, StraightChordAngle, true, false},
		{StraightChordAngle, InfChordAngle(), true, false},
		{StraightChordAngle, StraightChordAngle, false, true},
		{InfChordAngle(), InfChordAngle(), false, true},
	}
	for _, test := range tests {
		if got := test.a < test.b; got != test.lessThan {
			t.Errorf("%v < %v = %t, want %t", test.a, test.b, got, test.lessThan)
		}
		if got := test.a == test.b; got != test.equals {
			t.Errorf("%v == %v = %t, want %t", test.a, test.b, got, test.equals)
		}
	}
}

func TestChordAngleIsFunctions(t *testing.T) {
	var zero ChordAngle
	tests := []struct {
		c                           ChordAngle
		isNegative, isInf, isSpecial bool
	}{
		{zero, false, false, false},
		{NegativeChordAngle, true, false, true},
		{StraightChordAngle, false, false, false},
		{InfChordAngle(), false, true, true},
	}
	for _, test := range tests {
		if got := test.c.IsNegative(); got != test.isNegative {
			t.Errorf("%v.IsNegative() = %t, want %t", test.c, got, test.isNegative)
		}
		if got := test.c.IsInfinity(); got != test.isInf {
			t.Errorf("%v.IsInfinity() = %t, want %t", test.c, got, test.isInf)
		}
		if got := test.c.IsSpecial(); got != test.isSpecial {
			t.Errorf("%v.IsSpecial() = %t, want %t", test.c, got, test.isSpecial)
		}
		if !test.c.isValid() {
			t.Errorf("%v.isValid() = false, want true", test.c)
		}
	}
}

func TestChordAngleFromAngle(t *testing.T) {
	// Zero and pi round-trip exactly; other angles to within a few ulps.
	if got := ChordAngleFromAngle(0).Angle(); got != 0 {
		t.Errorf("ChordAngleFromAngle(0).Angle() = %v, want 0", got)
	}
	if got := ChordAngleFromAngle(Angle(math.Pi)).Angle().Radians(); got != math.Pi {
		t.Errorf("ChordAngleFromAngle(pi).Angle() = %v, want pi", got)
	}
	if got := ChordAngleFromAngle(Angle(1)).Angle().Radians(); math.Abs(got-1) > 1e-15 {
		t.Errorf("ChordAngleFromAngle(1).Angle() = %v, want 1", got)
	}
	if got := ChordAngleFromAngle(Angle(-1)); got != NegativeChordAngle {
		t.Errorf("ChordAngleFromAngle(-1) = %v, want %v", got, NegativeChordAngle)
	}
	if got := ChordAngleFromAngle(Angle(math.Pi)); got != StraightChordAngle {
		t.Errorf("ChordAngleFromAngle(pi) = %v, want %v", got, StraightChordAngle)
	}
	if got := ChordAngleFromAngle(InfAngle()); got != InfChordAngle() {
		t.Errorf("ChordAngleFromAngle(Inf) = %v, want %v", got, InfChordAngle())
	}
	// Angles above 180 degrees clamp to straight.
	if got := ChordAngleFromAngle(Angle(5)); got != StraightChordAngle {
		t.Errorf("ChordAngleFromAngle(5) = %v, want %v", got, StraightChordAngle)
	}
}

func TestChordAngleFromSquaredLength(t *testing.T) {
	tests := []struct {
		length2 float64
		degrees float64
	}{
		{0, 0},
		{1, 60},
		{2, 90},
		{4, 180},
		{5, 180}, // clamped
	}
	for _, test := range tests {
		got := ChordAngleFromSquaredLength(test.length2).Angle().Degrees()
		if math.Abs(got-test.degrees) > 1e-13 {
			t.Errorf("ChordAngleFromSquaredLength(%v).Angle().Degrees() = %v, want %v",
				test.length2, got, test.degrees)
		}
	}
}

func TestChordAngleSuccessorPredecessor(t *testing.T) {
	if got := NegativeChordAngle.Successor(); got != 0 {
		t.Errorf("NegativeChordAngle.Successor() = %v, want 0", got)
	}
	if got := StraightChordAngle.Successor(); got != InfChordAngle() {
		t.Errorf("StraightChordAngle.Successor() = %v, want Inf", got)
	}
	if got := InfChordAngle().Successor(); got != InfChordAngle() {
		t.Errorf("InfChordAngle().Successor() = %v, want Inf", got)
	}
	if got := ChordAngle(0).Predecessor(); got != NegativeChordAngle {
		t.Errorf("ChordAngle(0).Predecessor() = %v, want NegativeChordAngle", got)
	}
	if got := NegativeChordAngle.Predecessor(); got != NegativeChordAngle {
		t.Errorf("NegativeChordAngle.Predecessor() = %v, want NegativeChordAngle", got)
	}
	if got := InfChordAngle().Predecessor(); got != StraightChordAngle {
		t.Errorf("InfChordAngle().Predecessor() = %v, want StraightChordAngle", got)
	}

	x := RightChordAngle
	if !(x.Predecessor() < x && x < x.Successor()) {
		t.Errorf("Predecessor/Successor of %v are not adjacent", x)
	}
	if got := ChordAngle(math.Nextafter(float64(x), 10)); got != x.Successor() {
		t.Errorf("Successor is not the next representable value")
	}
}

func TestChordAngleArithmetic(t *testing.T) {
	addTests := []struct {
		a, b, want float64 // degrees
	}{
		{0, 0, 0},
		{60, 0, 60},
		{0, 60, 60},
		{30, 60, 90},
		{60, 30, 90},
		{180, 0, 180},
		{60, 30, 90},
		{90, 90, 180},
		{120, 90, 180}, // clamped
		{120, 120, 180},
		{10, 180, 180},
	}
	for _, test := range addTests {
		got := chordFromDegrees(test.a).Add(chordFromDegrees(test.b)).Angle().Degrees()
		if math.Abs(got-test.want) > 1e-13 {
			t.Errorf("chord(%v deg) + chord(%v deg) = %v deg, want %v",
				test.a, test.b, got, test.want)
		}
	}

	subTests := []struct {
		a, b, want float64 // degrees
	}{
		{0, 0, 0},
		{60, 60, 0},
		{180, 180, 0},
		{0, 60, 0}, // clamped
		{30, 90, 0},
		{90, 30, 60},
		{90, 60, 30},
		{180, 0, 180},
	}
	for _, test := range subTests {
		got := chordFromDegrees(test.a).Sub(chordFromDegrees(test.b)).Angle().Degrees()
		if math.Abs(got-test.want) > 1e-13 {
			t.Errorf("chord(%v deg) - chord(%v deg) = %v deg, want %v",
				test.a, test.b, got, test.want)
		}
	}
}

func TestChordAngleTrigonometry(t *testing.T) {
	const iters = 40
	for i := 0; i <= iters; i++ {
		radians := math.Pi * float64(i) / iters
		c := ChordAngleFromAngle(Angle(radians))
		if got, want := c.Sin(), math.Sin(radians); math.Abs(got-want) > 1e-14 {
			t.Errorf("chord(%v).Sin() = %v, want %v", radians, got, want)
		}
		if got, want := c.Cos(), math.Cos(radians); math.Abs(got-want) > 1e-14 {
			t.Errorf("chord(%v).Cos() = %v, want %v", radians, got, want)
		}
		if got, want := c.Sin2(), math.Sin(radians)*math.Sin(radians); math.Abs(got-want) > 1e-14 {
			t.Errorf("chord(%v).Sin2() = %v, want %v", radians, got, want)
		}
	}

	// Tan is checked away from 90 degrees, where it diverges.
	if got := ChordAngle(0).Tan(); got != 0 {
		t.Errorf("chord(0).Tan() = %v, want 0", got)
	}
	if got, want := chordFromDegrees(45).Tan(), 1.0; math.Abs(got-want) > 1e-14 {
		t.Errorf("chord(45 deg).Tan() = %v, want %v", got, want)
	}
	if got, want := chordFromDegrees(135).Tan(), -1.0; math.Abs(got-want) > 1e-14 {
		t.Errorf("chord(135 deg).Tan() = %v, want %v", got, want)
	}

	// 90 and 180 degrees are exact.
	if got := RightChordAngle.Cos(); got != 0 {
		t.Errorf("RightChordAngle.Cos() = %v, want exactly 0", got)
	}
	if got := StraightChordAngle.Cos(); got != -1 {
		t.Errorf("StraightChordAngle.Cos() = %v, want exactly -1", got)
	}
	if got := StraightChordAngle.Sin(); got != 0 {
		t.Errorf("StraightChordAngle.Sin() = %v, want exactly 0", got)
	}
}

func TestChordAngleExpanded(t *testing.T) {
	tests := []struct {
		c    ChordAngle
		e    float64
		want ChordAngle
	}{
		{NegativeChordAngle, 5, NegativeChordAngle},
		{InfChordAngle(), -5, InfChordAngle()},
		{StraightChordAngle, 5, ChordAngle(maxLength2)},
		{0, -5, 0},
		{ChordAngle(1.25), 0.25, ChordAngle(1.5)},
		{ChordAngle(0.75), 0.25, ChordAngle(1)},
	}
	for _, test := range tests {
		if got := test.c.Expanded(test.e); got != test.want {
			t.Errorf("%v.Expanded(%v) = %v, want %v", test.c, test.e, got, test.want)
		}
	}
}

func TestChordAngleMaxErrors(t *testing.T) {
	// The error bounds grow with the angle and are always non-negative.
	var last float64
	for _, c := range []ChordAngle{0, ChordAngle(1), RightChordAngle, StraightChordAngle} {
		if got := c.MaxPointError(); got < last {
			t.Errorf("%v.MaxPointError() = %v, want monotone non-decreasing", c, got)
		} else {
			last = got
		}
		if got := c.MaxAngleError(); got < 0 {
			t.Errorf("%v.MaxAngleError() = %v, want >= 0", c, got)
		}
	}
}
