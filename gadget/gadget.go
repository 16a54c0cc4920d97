// Package gadget implements the bit-level building blocks of the provable ciphertext
// algebra: booleanity checks, little-endian recomposition, conditional selection,
// binary adders and the signed digit decomposition of field elements.
//
// Every gadget is written against arith.Engine, so that the same code computes
// witnesses natively, evaluates packed constraints, and emits circuit constraints.
package gadget

import (
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/arith"
)

// AssertBool constrains b to be 0 or 1.
func AssertBool[E any](eng arith.Engine[E], b E) {
	eng.AssertZero(eng.Mul(b, eng.Sub(b, eng.One())))
}

// AssertBits constrains every entry of bits to be 0 or 1.
func AssertBits[E any](eng arith.Engine[E], bits []E) {
	for i := range bits {
		AssertBool(eng, bits[i])
	}
}

// LeSumUnchecked returns sum bits[i] * 2^i without constraining the bits.
func LeSumUnchecked[E any](eng arith.Engine[E], bits []E) E {
	two := eng.FromUint64(2)
	acc := eng.Zero()
	for i := len(bits) - 1; i >= 0; i-- {
		acc = eng.MulAdd(acc, two, bits[i])
	}
	return acc
}

// LeSum constrains the bits to be boolean and returns sum bits[i] * 2^i.
func LeSum[E any](eng arith.Engine[E], bits []E) E {
	AssertBits(eng, bits)
	return LeSumUnchecked(eng, bits)
}

// Select returns a if flag is 1 and b if flag is 0, computed as flag*(a-b) + b.
// The flag is constrained to be boolean.
func Select[E any](eng arith.Engine[E], flag, a, b E) E {
	AssertBool(eng, flag)
	return eng.MulAdd(flag, eng.Sub(a, b), b)
}

// SelectVec is the element-wise Select over vectors of equal length.
// The flag is constrained once.
func SelectVec[E any](eng arith.Engine[E], flag E, a, b []E) (out []E) {
	if len(a) != len(b) {
		panic(fmt.Errorf("cannot SelectVec: length mismatch %d != %d", len(a), len(b)))
	}
	AssertBool(eng, flag)
	out = make([]E, len(a))
	for i := range a {
		out[i] = eng.MulAdd(flag, eng.Sub(a[i], b[i]), b[i])
	}
	return
}

// PlusOrMinus returns -x if sign is 1 and x if sign is 0, computed as sign*(-x-x) + x.
// The sign is constrained to be boolean.
func PlusOrMinus[E any](eng arith.Engine[E], sign, x E) E {
	AssertBool(eng, sign)
	return eng.MulAdd(sign, eng.Sub(eng.Neg(x), x), x)
}

// HalfAdder returns the sum and carry bits of a + b, for boolean a and b.
func HalfAdder[E any](eng arith.Engine[E], a, b E) (sum, carry E) {
	carry = eng.Mul(a, b)
	sum = eng.Sub(eng.Add(a, b), eng.Add(carry, carry))
	return
}

// FullAdder returns the sum and carry bits of a + b + c, for boolean a, b and c.
func FullAdder[E any](eng arith.Engine[E], a, b, c E) (sum, carry E) {
	ab := eng.Mul(a, b)
	xor := eng.Sub(eng.Add(a, b), eng.Add(ab, ab))
	xc := eng.Mul(xor, c)
	sum = eng.Sub(eng.Add(xor, c), eng.Add(xc, xc))
	carry = eng.Add(xc, ab)
	return
}
