package gadget

import (
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/arith"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/utils"
)

const (
	// MinLogBase is the smallest supported log2 of the decomposition base.
	MinLogBase = 1
	// MaxLogBase is the largest supported log2 of the decomposition base.
	MaxLogBase = 32
)

// NumLimbs returns the number of signed digits of a field element in base 2^logB.
func NumLimbs(logB int) int {
	checkLogBase(logB)
	return utils.CeilDiv(field.NumBits, logB)
}

func checkLogBase(logB int) {
	if logB < MinLogBase || logB > MaxLogBase {
		panic(fmt.Errorf("invalid log base: %d not in [%d, %d]", logB, MinLogBase, MaxLogBase))
	}
}

// NegElement returns the little-endian bits of Modulus - x mod 2^64, where x is
// the value represented by the boolean vector bits of length field.NumBits.
// It takes the two's complement of bits and adds the bits of the modulus with a
// ripple-carry adder. Final carries are dropped.
func NegElement[E any](eng arith.Engine[E], bits []E) []E {

	if len(bits) != field.NumBits {
		panic(fmt.Errorf("cannot NegElement: len(bits)=%d != %d", len(bits), field.NumBits))
	}

	one := eng.One()

	twos := make([]E, field.NumBits)
	carry := one
	for i := range bits {
		twos[i], carry = HalfAdder(eng, eng.Sub(one, bits[i]), carry)
	}

	out := make([]E, field.NumBits)
	carry = eng.Zero()
	for i := range twos {
		out[i], carry = FullAdder(eng, twos[i], eng.FromUint64(field.ModulusBits[i]), carry)
	}

	return out
}

// DecomposeCoeff returns the balanced signed digits of x in base 2^logB, least
// significant first, given the claimed little-endian bit decomposition of x.
//
// The bits are constrained to be boolean and, when filter is 1, to recompose to x.
// The sign of x is its most significant bit. Negative values are decomposed through
// their magnitude Modulus - x and the digits are negated. Digits are balanced with a
// carry: a chunk whose top bit is set is lowered by 2^logB and carries one into the
// next chunk, so that every digit lies in [-2^logB/2, 2^logB/2] and
// sum digits[i] * 2^(i*logB) = x.
func DecomposeCoeff[E any](eng arith.Engine[E], filter, x E, bits []E, logB int) []E {

	numLimbs := NumLimbs(logB)

	if len(bits) != field.NumBits {
		panic(fmt.Errorf("cannot DecomposeCoeff: len(bits)=%d != %d", len(bits), field.NumBits))
	}

	recomposed := LeSum(eng, bits)
	eng.AssertZero(eng.Mul(filter, eng.Sub(x, recomposed)))

	sign := bits[field.NumBits-1]
	magnitude := SelectVec(eng, sign, NegElement(eng, bits), bits)

	base := eng.FromUint64(1 << logB)

	digits := make([]E, numLimbs)
	carry := eng.Zero()
	for i := range digits {
		chunk := magnitude[i*logB : min((i+1)*logB, field.NumBits)]
		k := eng.Add(LeSumUnchecked(eng, chunk), carry)
		carry = chunk[len(chunk)-1]
		balanced := eng.Sub(k, eng.Mul(carry, base))
		digits[i] = PlusOrMinus(eng, sign, balanced)
	}

	return digits
}

// DecomposeNative returns the balanced signed digits of x in base 2^logB, as
// computed by DecomposeCoeff on the bit decomposition of x.
func DecomposeNative(x field.Element, logB int) []int64 {

	numLimbs := NumLimbs(logB)

	v := x.Uint64()
	negative := field.IsNegative(x)
	if negative {
		v = field.Modulus - v
	}

	B := int64(1) << logB
	mask := uint64(B - 1)

	digits := make([]int64, numLimbs)
	var carry int64
	for i := range digits {
		chunk := int64((v >> (i * logB)) & mask)
		k := chunk + carry
		carry = (chunk >> (logB - 1)) & 1
		digits[i] = k - carry*B
		if negative {
			digits[i] = -digits[i]
		}
	}

	return digits
}

// DecomposeNativeElements returns DecomposeNative(x, logB) as field elements.
func DecomposeNativeElements(x field.Element, logB int) []field.Element {
	digits := DecomposeNative(x, logB)
	out := make([]field.Element, len(digits))
	for i, d := range digits {
		out[i] = field.FromInt64(d)
	}
	return out
}

// RecomposeDigits returns sum digits[i] * 2^(i*logB) as a field element.
func RecomposeDigits(digits []field.Element, logB int) (r field.Element) {
	checkLogBase(logB)
	base := field.NewElement(1 << logB)
	for i := len(digits) - 1; i >= 0; i-- {
		r.Mul(&r, &base)
		r.Add(&r, &digits[i])
	}
	return
}
