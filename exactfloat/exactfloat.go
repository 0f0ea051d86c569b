// Package exactfloat implements multiple-precision binary floating point
// with exact arithmetic. Addition, subtraction, and multiplication are
// performed without any rounding, so results grow as many mantissa bits as
// they need. Division and transcendental functions are deliberately absent:
// the exact predicate evaluators that this package serves only ever need
// ring operations on values converted losslessly from float64.
package exactfloat

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

const (
	// Exponents outside [minExp, maxExp] overflow to infinity or
	// underflow to zero. The range is generous enough that products of
	// ordinary doubles never get near it.
	maxExp = 200 * 1000 * 1000
	minExp = -maxExp

	// An operation whose result would need more mantissa bits than
	// maxPrec yields NaN.
	maxPrec = 64 << 20

	expNaN      = math.MaxInt32
	expInfinity = math.MaxInt32 - 1
	expZero     = math.MaxInt32 - 2

	doubleMantissaBits = 53
)

// Rounding modes accepted by RoundToMaxPrec and RoundToPowerOf2.
const (
	RoundTiesToEven = iota
	RoundTiesAwayFromZero
	RoundTowardZero
	RoundAwayFromZero
	RoundTowardPositive
	RoundTowardNegative
)

// ExactFloat is a multiple-precision binary float. The value is
// sign * bn * 2**bnExp, where bn is a non-negative integer. Zero,
// infinity, and NaN are encoded with reserved exponent values and a
// zero mantissa.
type ExactFloat struct {
	sign  int
	bnExp int
	bn    *big.Int
}

// NewExactFloat converts a float64 to an ExactFloat. The conversion is
// exact for every finite value, including denormals.
func NewExactFloat(v float64) ExactFloat {
	f := ExactFloat{bn: big.NewInt(0)}
	if math.Signbit(v) {
		f.sign = -1
	} else {
		f.sign = 1
	}
	switch {
	case math.IsNaN(v):
		f.setNaN()
	case math.IsInf(v, 0):
		f.setInf(f.sign)
	default:
		frac, exp := math.Frexp(math.Abs(v))
		f.bn.SetUint64(uint64(math.Ldexp(frac, doubleMantissaBits)))
		f.bnExp = exp - doubleMantissaBits
		f.canonicalize()
	}
	return f
}

// Abs returns the absolute value of a.
func Abs(a ExactFloat) ExactFloat {
	return a.CopyWithSign(+1)
}

// SignedZero returns zero with the given sign (+1 or -1).
func SignedZero(sign int) ExactFloat {
	f := NewExactFloat(0)
	f.setZero(sign)
	return f
}

// Infinity returns infinity with the given sign (+1 or -1).
func Infinity(sign int) ExactFloat {
	f := NewExactFloat(0)
	f.setInf(sign)
	return f
}

// NaN returns an ExactFloat that is not a number.
func NaN() ExactFloat {
	f := NewExactFloat(0)
	f.setNaN()
	return f
}

func (a ExactFloat) Add(b ExactFloat) ExactFloat {
	return signedSum(a.sign, &a, b.sign, &b)
}

func (a ExactFloat) Sub(b ExactFloat) ExactFloat {
	return signedSum(a.sign, &a, -b.sign, &b)
}

func (a ExactFloat) Neg() ExactFloat {
	return a.CopyWithSign(-a.sign)
}

func (a ExactFloat) Mul(b ExactFloat) ExactFloat {
	resultSign := a.sign * b.sign
	if !a.isNormal() || !b.isNormal() {
		// Zero, inf, and NaN follow IEEE 754-2008.
		if a.isNaN() {
			return a
		}
		if b.isNaN() {
			return b
		}
		if a.isInf() {
			// Infinity times zero yields NaN.
			if b.isZero() {
				return NaN()
			}
			return Infinity(resultSign)
		}
		if b.isInf() {
			if a.isZero() {
				return NaN()
			}
			return Infinity(resultSign)
		}
		return SignedZero(resultSign)
	}
	r := NewExactFloat(0)
	r.sign = resultSign
	r.bnExp = a.bnExp + b.bnExp
	r.bn.Mul(a.bn, b.bn)
	r.canonicalize()
	return r
}

// signedSum computes aSign*|a| + bSign*|b|, ignoring the signs stored in
// the operands themselves.
func signedSum(aSign int, a *ExactFloat, bSign int, b *ExactFloat) ExactFloat {
	if !a.isNormal() || !b.isNormal() {
		// Zero, inf, and NaN follow IEEE 754-2008.
		if a.isNaN() {
			return *a
		}
		if b.isNaN() {
			return *b
		}
		if a.isInf() {
			// Adding two infinities with opposite signs yields NaN.
			if b.isInf() && aSign != bSign {
				return NaN()
			}
			return Infinity(aSign)
		}
		if b.isInf() {
			return Infinity(bSign)
		}
		if a.isZero() {
			if !b.isZero() {
				return b.CopyWithSign(bSign)
			}
			// Adding two zeros with the same sign preserves the sign.
			if aSign == bSign {
				return SignedZero(aSign)
			}
			return SignedZero(+1)
		}
		return a.CopyWithSign(aSign)
	}
	// Swap the operands if necessary so that "a" has the larger bnExp.
	if a.bnExp < b.bnExp {
		aSign, bSign = bSign, aSign
		a, b = b, a
	}
	// Shift "a" so that both values share b's bnExp.
	r := NewExactFloat(0)
	if a.bnExp > b.bnExp {
		r.bn.Lsh(a.bn, uint(a.bnExp-b.bnExp))
		a = &r // The only field of "a" used below is bn.
	}
	r.bnExp = b.bnExp
	if aSign == bSign {
		r.bn.Add(a.bn, b.bn)
		r.sign = aSign
	} else {
		r.bn.Sub(a.bn, b.bn)
		switch {
		case r.bn.BitLen() == 0:
			r.sign = +1
		case r.bn.Sign() < 0:
			// The magnitude of "b" was larger.
			r.sign = bSign
			r.bn.Neg(r.bn)
		default:
			r.sign = aSign
		}
	}
	r.canonicalize()
	return r
}

// Sgn returns +1 if the value is positive, -1 if it is negative, and 0 if
// it is zero or NaN. Unlike the stored sign bit, Sgn returns 0 for both
// positive and negative zero.
func (a ExactFloat) Sgn() int {
	if a.isNaN() || a.isZero() {
		return 0
	}
	return a.sign
}

// Cmp returns -1, 0, or +1 according to whether a is less than, equal to,
// or greater than b. The result is unspecified if either value is NaN.
func (a ExactFloat) Cmp(b ExactFloat) int {
	if a.LessThan(b) {
		return -1
	}
	if b.LessThan(a) {
		return 1
	}
	return 0
}

func (a ExactFloat) LessThan(b ExactFloat) bool {
	// NaN is unordered compared to everything, including itself.
	if a.isNaN() || b.isNaN() {
		return false
	}
	// Positive and negative zero are equal.
	if a.isZero() && b.isZero() {
		return false
	}
	// Otherwise, anything negative is less than anything positive.
	if a.sign != b.sign {
		return a.sign < b.sign
	}
	// Now we just compare absolute values.
	if a.sign > 0 {
		return a.unsignedLess(b)
	}
	return b.unsignedLess(a)
}

func (a ExactFloat) unsignedLess(b ExactFloat) bool {
	// Zero and infinity cases (NaN has already been handled).
	if a.isInf() || b.isZero() {
		return false
	}
	if a.isZero() || b.isInf() {
		return true
	}
	// If the high-order bit positions differ, we are done.
	if cmp := a.exp() - b.exp(); cmp != 0 {
		return cmp < 0
	}
	// Otherwise shift one of the two values so that they both have the
	// same bnExp and compare the mantissas.
	if a.bnExp >= b.bnExp {
		return a.scaleAndCompare(b) < 0
	}
	return b.scaleAndCompare(a) > 0
}

func (a ExactFloat) scaleAndCompare(b ExactFloat) int {
	tmp := new(big.Int).Lsh(a.bn, uint(a.bnExp-b.bnExp))
	return tmp.Cmp(b.bn)
}

func (a ExactFloat) Eq(b ExactFloat) bool {
	// NaN is not equal to anything, not even itself.
	if a.isNaN() || b.isNaN() {
		return false
	}
	// Since canonicalize strips low-order zero bits, all other cases
	// (including non-normal values) require bnExp to be equal.
	if a.bnExp != b.bnExp {
		return false
	}
	// Positive and negative zero are equal.
	if a.isZero() && b.isZero() {
		return true
	}
	// Otherwise, the signs and mantissas must match. Non-normal values
	// such as infinity have a mantissa of zero.
	if a.sign != b.sign {
		return false
	}
	return a.bn.Cmp(b.bn) == 0
}

// canonicalize strips low-order zero bits from the mantissa and converts
// overflow, underflow, and a zero mantissa to their special encodings.
func (f *ExactFloat) canonicalize() {
	if !f.isNormal() {
		return
	}
	e := f.exp()
	switch {
	case e < minExp || f.bn.BitLen() == 0:
		f.setZero(f.sign)
	case e > maxExp:
		f.setInf(f.sign)
	default:
		if shift := int(f.bn.TrailingZeroBits()); shift > 0 {
			f.bn.Rsh(f.bn, uint(shift))
			f.bnExp += shift
		}
	}
	if f.prec() > maxPrec {
		f.setNaN()
	}
}

// ToDouble rounds the value to the nearest float64 (ties to even).
func (a ExactFloat) ToDouble() float64 {
	if a.prec() <= doubleMantissaBits {
		return a.toDoubleHelper()
	}
	return a.RoundToMaxPrec(doubleMantissaBits, RoundTiesToEven).toDoubleHelper()
}

func (a ExactFloat) toDoubleHelper() float64 {
	sign := float64(a.sign)
	if !a.isNormal() {
		if a.isZero() {
			return math.Copysign(0, sign)
		}
		if a.isInf() {
			return math.Inf(a.sign)
		}
		return math.Copysign(math.NaN(), sign)
	}
	return sign * math.Ldexp(float64(a.bn.Uint64()), a.bnExp)
}

func (a ExactFloat) CopyWithSign(sign int) ExactFloat {
	r := a
	r.sign = sign
	return r
}

// RoundToMaxPrec rounds so that the result has at most maxPrec mantissa
// bits. RoundTiesToEven requires maxPrec >= 2.
func (a ExactFloat) RoundToMaxPrec(maxPrec, mode int) ExactFloat {
	// The following test also catches zero, inf, and NaN.
	shift := a.prec() - maxPrec
	if shift <= 0 {
		return a
	}
	// If the value rounds up to a power of 2 the high-order bit position
	// increases, but then canonicalize removes at least one zero bit and
	// the result still has prec() <= maxPrec.
	return a.RoundToPowerOf2(a.bnExp+shift, mode)
}

// RoundToPowerOf2 rounds to a multiple of 2**bitExp.
func (a ExactFloat) RoundToPowerOf2(bitExp, mode int) ExactFloat {
	// Nothing to do if the exponent is already large enough, or the
	// value is zero, inf, or NaN.
	shift := bitExp - a.bnExp
	if shift <= 0 {
		return a
	}

	// Convert rounding up/down to toward/away from zero, so the sign of
	// the value no longer matters.
	if mode == RoundTowardPositive {
		if a.sign > 0 {
			mode = RoundAwayFromZero
		} else {
			mode = RoundTowardZero
		}
	} else if mode == RoundTowardNegative {
		if a.sign > 0 {
			mode = RoundTowardZero
		} else {
			mode = RoundAwayFromZero
		}
	}

	// Rounding right-shifts the mantissa by "shift" and then possibly
	// increments the result, depending on the mode, the discarded bits,
	// and sometimes the lowest kept bit.
	increment := false
	lowZeros := int(a.bn.TrailingZeroBits())
	switch mode {
	case RoundTowardZero:
		// Never increment.
	case RoundTiesAwayFromZero:
		increment = a.bn.Bit(shift-1) != 0
	case RoundAwayFromZero:
		increment = lowZeros < shift
	default: // RoundTiesToEven
		// Let "w/xyz" denote a mantissa where "w" is the lowest kept
		// bit and "xyz" are the discarded bits. Then:
		//   ./0.*    -> don't increment (fraction < 1/2)
		//   0/10*    -> don't increment (fraction = 1/2, kept part even)
		//   1/10*    -> increment (fraction = 1/2, kept part odd)
		//   ./1.*1.* -> increment (fraction > 1/2)
		increment = (a.bn.Bit(shift-1) != 0 && a.bn.Bit(shift) != 0) ||
			lowZeros < shift-1
	}
	r := NewExactFloat(0)
	r.bnExp = a.bnExp + shift
	r.bn.Rsh(a.bn, uint(shift))
	if increment {
		r.bn.Add(r.bn, big.NewInt(1))
	}
	r.sign = a.sign
	r.canonicalize()
	return r
}

func (f *ExactFloat) setNaN() {
	f.sign = 1
	f.bnExp = expNaN
	f.bn.SetUint64(0)
}

func (f *ExactFloat) setZero(sign int) {
	f.sign = sign
	f.bnExp = expZero
	f.bn.SetUint64(0)
}

func (f *ExactFloat) setInf(sign int) {
	f.sign = sign
	f.bnExp = expInfinity
	f.bn.SetUint64(0)
}

// prec returns the number of significant mantissa bits.
func (a ExactFloat) prec() int { return a.bn.BitLen() }

// exp returns the position of the high-order mantissa bit, i.e. the value
// is in [2**(exp-1), 2**exp).
func (a ExactFloat) exp() int { return a.bnExp + a.bn.BitLen() }

func (a ExactFloat) Prec() int    { return a.prec() }
func (a ExactFloat) MaxPrec() int { return maxPrec }

func (a ExactFloat) isZero() bool   { return a.bnExp == expZero }
func (a ExactFloat) isInf() bool    { return a.bnExp == expInfinity }
func (a ExactFloat) isNaN() bool    { return a.bnExp == expNaN }
func (a ExactFloat) isNormal() bool { return a.bnExp < expZero }

func (a ExactFloat) IsZero() bool { return a.isZero() }
func (a ExactFloat) IsInf() bool  { return a.isInf() }
func (a ExactFloat) IsNaN() bool  { return a.isNaN() }

// Numbers are always formatted with at least this many significant digits.
// This prevents small integers from being formatted in exponential
// notation (e.g. 1024 as 1e+03), and avoids "high precision" numbers being
// formatted with just 1 or 2 digits (e.g. 1/512 == 0.001953125 as 0.002).
const minSignificantDigits = 10

func (a ExactFloat) String() string {
	maxDigits := numSignificantDigitsForPrec(a.prec())
	if maxDigits < minSignificantDigits {
		maxDigits = minSignificantDigits
	}
	return a.StringWithMaxDigits(maxDigits)
}

func numSignificantDigitsForPrec(prec int) int {
	// The bound d <= 1 + ceil(prec * log10(2)) can be too large by up to
	// 2 digits, but a tighter bound would need the exponent as well.
	return 1 + int(math.Ceil(float64(prec)*(math.Ln2/math.Ln10)))
}

func (a ExactFloat) StringWithMaxDigits(maxDigits int) string {
	if !a.isNormal() {
		if a.isNaN() {
			return "nan"
		}
		if a.isZero() {
			if a.sign < 0 {
				return "-0"
			}
			return "0"
		}
		if a.sign < 0 {
			return "-inf"
		}
		return "inf"
	}
	digits, exp10 := a.decimalDigits(maxDigits)
	var sb strings.Builder
	if a.sign < 0 {
		sb.WriteByte('-')
	}
	// Standard '%g' formatting rules: exponential notation if the
	// exponent is less than -4 or at least the requested precision. But
	// "exp10" here corresponds to a mantissa in [0.1, 1) rather than
	// [1, 10), so the cutoffs are shifted by 1.
	if exp10 <= -4 || exp10 > maxDigits {
		sb.WriteString(digits[:1])
		if len(digits) > 1 {
			sb.WriteByte('.')
			sb.WriteString(digits[1:])
		}
		fmt.Fprintf(&sb, "e%+02d", exp10-1)
	} else if exp10 > 0 {
		// Fixed format with a non-zero integer part.
		if exp10 >= len(digits) {
			sb.WriteString(digits)
			for i := exp10 - len(digits); i > 0; i-- {
				sb.WriteByte('0')
			}
		} else {
			sb.WriteString(digits[:exp10])
			sb.WriteByte('.')
			sb.WriteString(digits[exp10:])
		}
	} else {
		sb.WriteString("0.")
		for i := exp10; i < 0; i++ {
			sb.WriteByte('0')
		}
		sb.WriteString(digits)
	}
	return sb.String()
}

// decimalDigits returns at most maxDigits decimal digits of the absolute
// value, with trailing zeros stripped, along with the base-10 exponent
// such that the value equals 0.digits * 10**exp10.
func (a ExactFloat) decimalDigits(maxDigits int) (string, int) {
	// Convert the value to the form bn * 10**exp10 where bn is a
	// positive integer.
	bn := new(big.Int)
	var exp10 int
	if a.bnExp >= 0 {
		bn.Lsh(a.bn, uint(a.bnExp))
	} else {
		// bn * 2**bnExp == (bn * 5**-bnExp) * 10**bnExp.
		power := big.NewInt(int64(-a.bnExp))
		mul := big.NewInt(5)
		bn.Mul(a.bn, mul.Exp(mul, power, nil))
		exp10 = a.bnExp
	}
	allDigits := bn.String()
	numDigits := len(allDigits)
	var digits string
	if numDigits <= maxDigits {
		digits = allDigits
	} else {
		digits = allDigits[:maxDigits]
		// Round ties to even, like printf: round away from zero if the
		// highest discarded digit is '5' or more, unless all other
		// discarded digits are zero, in which case round up only if the
		// lowest kept digit is odd.
		odd := allDigits[maxDigits-1]&1 == 1
		rest := strings.IndexAny(allDigits[maxDigits+1:], "123456789")
		if allDigits[maxDigits] >= '5' && (odd || rest != -1) {
			digits = incrementDecimalDigits(digits)
		}
		exp10 += numDigits - maxDigits
	}
	// Strip trailing zeros.
	end := len(digits)
	digits = strings.TrimRight(digits, "0")
	if len(digits) < end {
		exp10 += end - len(digits)
	}
	return digits, exp10 + len(digits)
}

// incrementDecimalDigits adds one to an unsigned integer represented as a
// string of ASCII digits.
func incrementDecimalDigits(digits string) string {
	d := []byte(digits)
	for pos := len(d) - 1; pos >= 0; pos-- {
		if d[pos] < '9' {
			d[pos]++
			return string(d)
		}
		d[pos] = '0'
	}
	return "1" + string(d)
}
