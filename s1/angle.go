// Package s1 implements types and functions for angles on the circle.
package s1

import (
	"fmt"
	"math"
)

// Angle represents a 1D angle in radians.
type Angle float64

// Angle units.
const (
	Radian Angle = 1
	Degree       = (math.Pi / 180) * Radian

	E5 = 1e-5 * Degree
	E6 = 1e-6 * Degree
	E7 = 1e-7 * Degree
)

// InfAngle returns an angle larger than any finite angle.
func InfAngle() Angle {
	return Angle(math.Inf(1))
}

func (a Angle) Radians() float64 { return float64(a) }
func (a Angle) Degrees() float64 { return float64(a / Degree) }

func (a Angle) E5() int32 { return int32(math.Round(a.Degrees() * 1e5)) }
func (a Angle) E6() int32 { return int32(math.Round(a.Degrees() * 1e6)) }
func (a Angle) E7() int32 { return int32(math.Round(a.Degrees() * 1e7)) }

func (a Angle) Abs() Angle { return Angle(math.Abs(float64(a))) }

// Normalized returns an equivalent angle in (-pi, pi].
func (a Angle) Normalized() Angle {
	rad := math.Remainder(float64(a), 2*math.Pi)
	if rad <= -math.Pi {
		rad = math.Pi
	}
	return Angle(rad)
}

func (a Angle) String() string {
	return fmt.Sprintf("%.7f", a.Degrees())
}

func (a Angle) isInf() bool { return math.IsInf(float64(a), 0) }
