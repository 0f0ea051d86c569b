package r3

import (
	"github.com/gosphere/geo/exactfloat"
)

// ExactVector is a 3D vector whose coordinates are arbitrary-precision
// floats. Converting a Vector to an ExactVector is lossless, so exact
// predicates can operate on the precise values the caller supplied.
type ExactVector struct {
	X, Y, Z exactfloat.ExactFloat
}

func ExactVectorFromVector(v Vector) ExactVector {
	return ExactVector{
		X: exactfloat.NewExactFloat(v.X),
		Y: exactfloat.NewExactFloat(v.Y),
		Z: exactfloat.NewExactFloat(v.Z),
	}
}

func (a ExactVector) Add(b ExactVector) ExactVector {
	return ExactVector{a.X.Add(b.X), a.Y.Add(b.Y), a.Z.Add(b.Z)}
}

func (a ExactVector) Sub(b ExactVector) ExactVector {
	return ExactVector{a.X.Sub(b.X), a.Y.Sub(b.Y), a.Z.Sub(b.Z)}
}

func (a ExactVector) Mul(m exactfloat.ExactFloat) ExactVector {
	return ExactVector{a.X.Mul(m), a.Y.Mul(m), a.Z.Mul(m)}
}

func (a ExactVector) Dot(b ExactVector) exactfloat.ExactFloat {
	return a.X.Mul(b.X).Add(a.Y.Mul(b.Y)).Add(a.Z.Mul(b.Z))
}

func (a ExactVector) Cross(b ExactVector) ExactVector {
	return ExactVector{
		a.Y.Mul(b.Z).Sub(a.Z.Mul(b.Y)),
		a.Z.Mul(b.X).Sub(a.X.Mul(b.Z)),
		a.X.Mul(b.Y).Sub(a.Y.Mul(b.X)),
	}
}

// Norm2 returns the squared length of the vector.
func (a ExactVector) Norm2() exactfloat.ExactFloat {
	return a.Dot(a)
}

// IsZero reports whether every coordinate is exactly zero.
func (a ExactVector) IsZero() bool {
	return a.X.Sgn() == 0 && a.Y.Sgn() == 0 && a.Z.Sgn() == 0
}
