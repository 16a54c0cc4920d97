// Package sampling implements secure sampling of bytes, field elements and small integers.
package sampling

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
)

// Uint64 reads a uniform value in [0, 2^64) from prng.
func Uint64(prng PRNG) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(prng, b[:]); err != nil {
		return 0, fmt.Errorf("cannot sample uint64: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// UniformElement samples a uniform Element by rejection.
func UniformElement(prng PRNG) (field.Element, error) {
	for {
		v, err := Uint64(prng)
		if err != nil {
			return field.Element{}, err
		}
		if v < field.Modulus {
			return field.NewElement(v), nil
		}
	}
}

// UniformElements samples n uniform Elements.
func UniformElements(prng PRNG, n int) (s []field.Element, err error) {
	s = make([]field.Element, n)
	for i := range s {
		if s[i], err = UniformElement(prng); err != nil {
			return nil, err
		}
	}
	return
}

// Bits samples n uniform bits.
func Bits(prng PRNG, n int) (s []uint64, err error) {
	s = make([]uint64, n)
	buf := make([]byte, (n+7)/8)
	if _, err = io.ReadFull(prng, buf); err != nil {
		return nil, fmt.Errorf("cannot sample bits: %w", err)
	}
	for i := range s {
		s[i] = uint64(buf[i>>3]>>(i&7)) & 1
	}
	return
}

// Bounded samples a uniform integer in [-bound, bound].
func Bounded(prng PRNG, bound uint64) (int64, error) {
	if bound == 0 {
		return 0, nil
	}
	if bound >= 1<<62 {
		return 0, fmt.Errorf("cannot sample bounded: bound=%d is too large", bound)
	}
	span := 2*bound + 1
	limit := ^uint64(0) - (^uint64(0) % span)
	for {
		v, err := Uint64(prng)
		if err != nil {
			return 0, err
		}
		if v < limit {
			return int64(v%span) - int64(bound), nil
		}
	}
}

// UniformMod samples a uniform integer in [0, modulus).
func UniformMod(prng PRNG, modulus uint64) (uint64, error) {
	if modulus == 0 {
		return 0, fmt.Errorf("cannot sample mod: modulus is zero")
	}
	limit := ^uint64(0) - (^uint64(0) % modulus)
	for {
		v, err := Uint64(prng)
		if err != nil {
			return 0, err
		}
		if v < limit {
			return v % modulus, nil
		}
	}
}
