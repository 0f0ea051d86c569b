package r3

import (
	"fmt"
	"math"

	"github.com/gosphere/geo/s1"
)

// Vector represents a point in 3D space.
type Vector struct {
	X, Y, Z float64
}

func (v Vector) String() string {
	return fmt.Sprintf("(%.20g, %.20g, %.20g)", v.X, v.Y, v.Z)
}

func (v Vector) ApproxEqual(ov Vector) bool {
	const epsilon = 1e-14
	return math.Abs(v.X-ov.X) < epsilon &&
		math.Abs(v.Y-ov.Y) < epsilon &&
		math.Abs(v.Z-ov.Z) < epsilon
}

func (v Vector) Norm() float64 { return math.Sqrt(v.Dot(v)) }

func (v Vector) Norm2() float64 { return v.Dot(v) }

func (v Vector) Normalize() Vector {
	if v == (Vector{0, 0, 0}) {
		return v
	}
	return v.Mul(1 / v.Norm())
}

// IsUnit reports whether the vector is of unit length up to a small
// tolerance.
func (v Vector) IsUnit() bool {
	const epsilon = 5e-14
	return math.Abs(v.Norm2()-1) <= epsilon
}

func (v Vector) Abs() Vector {
	return Vector{math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)}
}

func (v Vector) Add(ov Vector) Vector {
	return Vector{v.X + ov.X, v.Y + ov.Y, v.Z + ov.Z}
}

func (v Vector) Sub(ov Vector) Vector {
	return Vector{v.X - ov.X, v.Y - ov.Y, v.Z - ov.Z}
}

func (v Vector) Mul(m float64) Vector {
	return Vector{m * v.X, m * v.Y, m * v.Z}
}

func (v Vector) Neg() Vector { return Vector{-v.X, -v.Y, -v.Z} }

func (v Vector) Dot(ov Vector) float64 {
	return v.X*ov.X + v.Y*ov.Y + v.Z*ov.Z
}

func (v Vector) Cross(ov Vector) Vector {
	return Vector{
		v.Y*ov.Z - v.Z*ov.Y,
		v.Z*ov.X - v.X*ov.Z,
		v.X*ov.Y - v.Y*ov.X,
	}
}

// Distance returns the Euclidean distance between v and ov.
func (v Vector) Distance(ov Vector) float64 { return v.Sub(ov).Norm() }

// Angle returns the angle between v and ov. This is more accurate than
// acos of the dot product for vectors that are nearly parallel or nearly
// antiparallel.
func (v Vector) Angle(ov Vector) s1.Angle {
	return s1.Angle(math.Atan2(v.Cross(ov).Norm(), v.Dot(ov))) * s1.Radian
}

// Ortho returns a unit vector that is orthogonal to v. It is not
// required to be orthogonal for zero-length vectors.
func (v Vector) Ortho() Vector {
	ov := Vector{0.012, 0.0053, 0.00457}
	switch v.LargestAbsComponent() {
	case 0:
		ov.X = 1
	case 1:
		ov.Y = 1
	default:
		ov.Z = 1
	}
	return v.Cross(ov).Normalize()
}

// LargestAbsComponent returns the axis (0 = X, 1 = Y, 2 = Z) whose
// coordinate has the largest absolute value.
func (v Vector) LargestAbsComponent() int {
	t := v.Abs()
	if t.X > t.Y {
		if t.X > t.Z {
			return 0
		}
		return 2
	}
	if t.Y > t.Z {
		return 1
	}
	return 2
}

// Cmp compares v and ov lexicographically and returns -1, 0, or +1.
func (v Vector) Cmp(ov Vector) int {
	if v.X < ov.X {
		return -1
	}
	if v.X > ov.X {
		return 1
	}
	if v.Y < ov.Y {
		return -1
	}
	if v.Y > ov.Y {
		return 1
	}
	if v.Z < ov.Z {
		return -1
	}
	if v.Z > ov.Z {
		return 1
	}
	return 0
}
