package s2

import (
	"math"

	"github.com/gosphere/geo/r3"
)

// The triage tiers of every predicate evaluate the same defining expression
// at two precisions: ordinary float64, and a double-double type with twice
// the mantissa bits. The evaluators are written once as generic functions
// over the scalar constraint below and monomorphized per tier, so there is
// no dynamic dispatch on the hot path.
type scalar[T any] interface {
	add(T) T
	sub(T) T
	mul(T) T
	neg() T
	abs() T
	sqrt() T
	sign() int
	cmp(T) int

	// fromFloat converts a float64 exactly. It ignores the receiver, which
	// exists only so that generic code can reach the constructor.
	fromFloat(float64) T

	// eps returns the unit roundoff of the representation. Error bounds in
	// the triage evaluators are expressed as multiples of this value.
	eps() float64
}

// fp64 is the machine double tier.
type fp64 float64

func (a fp64) add(b fp64) fp64 { return a + b }
func (a fp64) sub(b fp64) fp64 { return a - b }
func (a fp64) mul(b fp64) fp64 { return a * b }
func (a fp64) neg() fp64       { return -a }
func (a fp64) abs() fp64       { return fp64(math.Abs(float64(a))) }
func (a fp64) sqrt() fp64      { return fp64(math.Sqrt(float64(a))) }

func (a fp64) sign() int {
	if a > 0 {
		return 1
	}
	if a < 0 {
		return -1
	}
	return 0
}

func (a fp64) cmp(b fp64) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func (fp64) fromFloat(v float64) fp64 { return fp64(v) }
func (fp64) eps() float64             { return 0x1p-53 }

// dd is the extended precision tier: an unevaluated sum hi+lo of two
// float64 values with |lo| <= ulp(hi)/2, giving roughly 106 mantissa bits.
// Go has no long double, so this plays that role. The arithmetic uses the
// usual error-free transformations (twoSum, and FMA-based twoProd).
type dd struct {
	hi, lo float64
}

func twoSum(a, b float64) (s, e float64) {
	s = a + b
	bb := s - a
	e = (a - (s - bb)) + (b - bb)
	return s, e
}

// quickTwoSum requires |a| >= |b| or a == 0.
func quickTwoSum(a, b float64) (s, e float64) {
	s = a + b
	e = b - (s - a)
	return s, e
}

func twoProd(a, b float64) (p, e float64) {
	p = a * b
	e = math.FMA(a, b, -p)
	return p, e
}

func (a dd) add(b dd) dd {
	s, e := twoSum(a.hi, b.hi)
	t, te := twoSum(a.lo, b.lo)
	e += t
	s, e = quickTwoSum(s, e)
	e += te
	s, e = quickTwoSum(s, e)
	return dd{s, e}
}

func (a dd) sub(b dd) dd { return a.add(b.neg()) }

func (a dd) mul(b dd) dd {
	p, e := twoProd(a.hi, b.hi)
	e += a.hi*b.lo + a.lo*b.hi
	hi, lo := quickTwoSum(p, e)
	return dd{hi, lo}
}

func (a dd) neg() dd { return dd{-a.hi, -a.lo} }

func (a dd) abs() dd {
	if a.hi < 0 || (a.hi == 0 && a.lo < 0) {
		return a.neg()
	}
	return a
}

func (a dd) sqrt() dd {
	if a.hi == 0 && a.lo == 0 {
		return dd{}
	}
	// One Newton step on top of the double precision estimate doubles its
	// accuracy, which is all a 106-bit result needs.
	s := math.Sqrt(a.hi)
	p, e := twoProd(s, s)
	d := ((a.hi - p) - e) + a.lo
	hi, lo := quickTwoSum(s, d/(2*s))
	return dd{hi, lo}
}

func (a dd) sign() int {
	if a.hi > 0 || (a.hi == 0 && a.lo > 0) {
		return 1
	}
	if a.hi < 0 || (a.hi == 0 && a.lo < 0) {
		return -1
	}
	return 0
}

func (a dd) cmp(b dd) int { return a.sub(b).sign() }

func (dd) fromFloat(v float64) dd { return dd{v, 0} }

// The relative error of a single dd operation is below 2^-104. This is
// slightly conservative (the representation carries 106 bits).
func (dd) eps() float64 { return 0x1p-104 }

// vec3 is a 3-vector over a scalar tier, converted exactly from the caller
// supplied float64 coordinates.
type vec3[T scalar[T]] struct {
	x, y, z T
}

func vec3FromVector[T scalar[T]](v r3.Vector) vec3[T] {
	var z T
	return vec3[T]{z.fromFloat(v.X), z.fromFloat(v.Y), z.fromFloat(v.Z)}
}

func (a vec3[T]) add(b vec3[T]) vec3[T] {
	return vec3[T]{a.x.add(b.x), a.y.add(b.y), a.z.add(b.z)}
}

func (a vec3[T]) sub(b vec3[T]) vec3[T] {
	return vec3[T]{a.x.sub(b.x), a.y.sub(b.y), a.z.sub(b.z)}
}

func (a vec3[T]) neg() vec3[T] {
	return vec3[T]{a.x.neg(), a.y.neg(), a.z.neg()}
}

func (a vec3[T]) abs() vec3[T] {
	return vec3[T]{a.x.abs(), a.y.abs(), a.z.abs()}
}

func (a vec3[T]) mulS(k T) vec3[T] {
	return vec3[T]{a.x.mul(k), a.y.mul(k), a.z.mul(k)}
}

func (a vec3[T]) dot(b vec3[T]) T {
	return a.x.mul(b.x).add(a.y.mul(b.y)).add(a.z.mul(b.z))
}

func (a vec3[T]) cross(b vec3[T]) vec3[T] {
	return vec3[T]{
		a.y.mul(b.z).sub(a.z.mul(b.y)),
		a.z.mul(b.x).sub(a.x.mul(b.z)),
		a.x.mul(b.y).sub(a.y.mul(b.x)),
	}
}

// crossAbs returns the componentwise sum |a_j||b_k| + |a_k||b_j|, i.e. the
// cross product with every cancellation replaced by addition. The rounding
// error of each component of a.cross(b) is a small multiple of the
// corresponding component of a.crossAbs(b) times the unit roundoff, which
// makes this the natural magnitude against which to certify cross product
// signs.
func (a vec3[T]) crossAbs(b vec3[T]) vec3[T] {
	aa, bb := a.abs(), b.abs()
	return vec3[T]{
		aa.y.mul(bb.z).add(aa.z.mul(bb.y)),
		aa.z.mul(bb.x).add(aa.x.mul(bb.z)),
		aa.x.mul(bb.y).add(aa.y.mul(bb.x)),
	}
}

func (a vec3[T]) norm2() T { return a.dot(a) }

func scalarFromFloat[T scalar[T]](v float64) T {
	var z T
	return z.fromFloat(v)
}
