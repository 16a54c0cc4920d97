// Package field implements helpers over the Goldilocks prime field p = 2^64 - 2^32 + 1,
// the scalar field every polynomial, ciphertext and trace value of this module lives in.
package field

import (
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// Element is a canonical element of the Goldilocks field.
type Element = goldilocks.Element

const (
	// Modulus is the Goldilocks prime 2^64 - 2^32 + 1.
	Modulus uint64 = 0xffffffff00000001

	// NumBits is the number of bits of the canonical encoding of an Element.
	NumBits = 64

	// TwoAdicity is the largest k such that 2^k divides Modulus-1.
	TwoAdicity = 32
)

// ModulusBits is the little-endian binary decomposition of Modulus.
var ModulusBits = func() (bits [NumBits]uint64) {
	for i := range bits {
		bits[i] = (Modulus >> i) & 1
	}
	return
}()

// NewElement returns the Element of canonical value v mod Modulus.
func NewElement(v uint64) Element {
	return goldilocks.NewElement(v)
}

// FromInt64 returns the Element congruent to v.
func FromInt64(v int64) (e Element) {
	e.SetInt64(v)
	return
}

// NewSlice returns a slice of Elements from a slice of canonical values.
func NewSlice(values []uint64) (s []Element) {
	s = make([]Element, len(values))
	for i, v := range values {
		s[i] = NewElement(v)
	}
	return
}

// Uint64Slice returns the canonical values of s.
func Uint64Slice(s []Element) (values []uint64) {
	values = make([]uint64, len(s))
	for i := range s {
		values[i] = s[i].Uint64()
	}
	return
}

// IsNegative returns true if the most significant bit of the canonical value of x is set.
// This is the sign convention used by the signed digit decomposition.
func IsNegative(x Element) bool {
	return x.Uint64()>>(NumBits-1) == 1
}

// Signed returns the signed integer represented by x: the canonical value
// if its most significant bit is cleared, and minus (Modulus - value) otherwise.
func Signed(x Element) int64 {
	v := x.Uint64()
	if v>>(NumBits-1) == 1 {
		return -int64(Modulus - v)
	}
	return int64(v)
}

// Exp returns x^e.
func Exp(x Element, e uint64) (r Element) {
	r.SetOne()
	for e > 0 {
		if e&1 == 1 {
			r.Mul(&r, &x)
		}
		x.Square(&x)
		e >>= 1
	}
	return
}

// Inverse returns x^-1, or an error if x is zero.
func Inverse(x Element) (r Element, err error) {
	if x.IsZero() {
		return r, fmt.Errorf("cannot Inverse: element is zero")
	}
	r.Inverse(&x)
	return r, nil
}

// BitDecompose returns the NumBits little-endian bits of the canonical value of x as Elements.
func BitDecompose(x Element) []Element {
	return BitDecomposeUint64(x.Uint64())
}

// BitDecomposeUint64 returns the NumBits little-endian bits of v as Elements.
func BitDecomposeUint64(v uint64) (bits []Element) {
	bits = make([]Element, NumBits)
	for i := range bits {
		if (v>>i)&1 == 1 {
			bits[i].SetOne()
		}
	}
	return
}

// Recompose returns the little-endian weighted sum of bits, i.e. sum bits[i] * 2^i.
func Recompose(bits []Element) (r Element) {
	var pow Element
	pow.SetOne()
	var tmp Element
	for i := range bits {
		tmp.Mul(&bits[i], &pow)
		r.Add(&r, &tmp)
		pow.Double(&pow)
	}
	return
}
