// Package utils implements various helper functions.
package utils

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// BitReverse64 returns the bit-reverse value of the input value, within a context of 2^bitLen.
func BitReverse64(index uint64, bitLen int) uint64 {
	if bitLen == 0 {
		return 0
	}
	return bits.Reverse64(index) >> (64 - bitLen)
}

// IsPowerOfTwo returns true if x is a strictly positive power of two.
func IsPowerOfTwo[T constraints.Integer](x T) bool {
	return x > 0 && x&(x-1) == 0
}

// CeilDiv returns ceil(a/b) for positive a and b.
func CeilDiv[T constraints.Integer](a, b T) T {
	return (a + b - 1) / b
}

// NextPowerOfTwo returns the smallest power of two greater than or equal to x.
func NextPowerOfTwo(x int) int {
	if x <= 1 {
		return 1
	}
	return 1 << bits.Len64(uint64(x-1))
}

// Log2 returns floor(log2(x)) for x > 0.
func Log2[T constraints.Integer](x T) int {
	return bits.Len64(uint64(x)) - 1
}
