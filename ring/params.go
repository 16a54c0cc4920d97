// Package ring implements the negacyclic polynomial ring Z_p[X]/(X^N + 1) over the
// Goldilocks field: its NTT tables, the negacyclic number theoretic transform and
// the vector operations the ciphertext algebra is built on.
package ring

import (
	"encoding/json"
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/utils"
	"github.com/google/go-cmp/cmp"
)

const (
	// MinLogN is the minimum supported log2 of the ring degree.
	MinLogN = 1
	// MaxLogN is the maximum supported log2 of the ring degree. The
	// multiplicative group of the field contains 2N-th roots of unity up to this bound.
	MaxLogN = field.TwoAdicity - 1
)

// Factors are the distinct prime factors of field.Modulus - 1.
var Factors = []uint64{2, 3, 5, 17, 257, 65537}

// Parameters stores the ring degree and the NTT tables of Z_p[X]/(X^N + 1).
type Parameters struct {
	logN          int
	primitiveRoot uint64
	psi           uint64

	// rootsForward[k] = psi^bitrev(k), where psi is a primitive 2N-th root of unity.
	rootsForward []uint64
	// rootsBackward[k] = psi^-bitrev(k).
	rootsBackward []uint64
	nInv          uint64
}

// NewParameters generates the NTT tables for the ring of degree 2^logN.
func NewParameters(logN int) (p Parameters, err error) {

	if logN < MinLogN || logN > MaxLogN {
		return Parameters{}, fmt.Errorf("invalid LogN: %d not in [%d, %d]", logN, MinLogN, MaxLogN)
	}

	g, err := PrimitiveRoot(field.Modulus, Factors)
	if err != nil {
		return Parameters{}, err
	}

	p.logN = logN
	p.primitiveRoot = g

	N := 1 << logN
	NthRoot := uint64(2 * N)

	psi := field.Exp(field.NewElement(g), (field.Modulus-1)/NthRoot)
	psiInv, err := field.Inverse(psi)
	if err != nil {
		return Parameters{}, err
	}
	p.psi = psi.Uint64()

	p.rootsForward = make([]uint64, N)
	p.rootsBackward = make([]uint64, N)

	var fwd, bwd field.Element
	fwd.SetOne()
	bwd.SetOne()

	for j := 0; j < N; j++ {
		idx := utils.BitReverse64(uint64(j), logN)
		p.rootsForward[idx] = fwd.Uint64()
		p.rootsBackward[idx] = bwd.Uint64()
		fwd.Mul(&fwd, &psi)
		bwd.Mul(&bwd, &psiInv)
	}

	nInv, err := field.Inverse(field.NewElement(uint64(N)))
	if err != nil {
		return Parameters{}, err
	}
	p.nInv = nInv.Uint64()

	return
}

// N returns the ring degree.
func (p Parameters) N() int {
	return 1 << p.logN
}

// LogN returns log2 of the ring degree.
func (p Parameters) LogN() int {
	return p.logN
}

// NthRoot returns 2N, the order of the roots of unity used by the negacyclic NTT.
func (p Parameters) NthRoot() int {
	return 2 * p.N()
}

// PrimitiveRoot returns the generator of the multiplicative group the roots are derived from.
func (p Parameters) PrimitiveRoot() uint64 {
	return p.primitiveRoot
}

// Psi returns the primitive 2N-th root of unity.
func (p Parameters) Psi() uint64 {
	return p.psi
}

// RootsForward returns a copy of the bit-reversed table of powers of psi.
func (p Parameters) RootsForward() []uint64 {
	return append([]uint64{}, p.rootsForward...)
}

// RootsBackward returns a copy of the bit-reversed table of powers of psi^-1.
func (p Parameters) RootsBackward() []uint64 {
	return append([]uint64{}, p.rootsBackward...)
}

// NInv returns N^-1 mod p.
func (p Parameters) NInv() uint64 {
	return p.nInv
}

// Equal returns true if the receiver and other describe the same ring.
func (p Parameters) Equal(other *Parameters) bool {
	return p.logN == other.logN &&
		p.primitiveRoot == other.primitiveRoot &&
		p.nInv == other.nInv &&
		cmp.Equal(p.rootsForward, other.rootsForward) &&
		cmp.Equal(p.rootsBackward, other.rootsBackward)
}

type parametersLiteral struct {
	LogN int
}

// MarshalJSON encodes the parameters as the JSON object {"LogN": logN}.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(parametersLiteral{LogN: p.logN})
}

// UnmarshalJSON decodes the parameters and regenerates the tables.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var pl parametersLiteral
	if err = json.Unmarshal(data, &pl); err != nil {
		return
	}
	*p, err = NewParameters(pl.LogN)
	return
}

// PrimitiveRoot computes the smallest primitive root of the given prime q,
// given the complete list of distinct prime factors of q-1.
func PrimitiveRoot(q uint64, factors []uint64) (uint64, error) {

	if err := CheckFactors(q-1, factors); err != nil {
		return 0, err
	}

	for g := uint64(2); g < q; g++ {
		if CheckPrimitiveRoot(g, q, factors) == nil {
			return g, nil
		}
	}

	return 0, fmt.Errorf("cannot PrimitiveRoot: no primitive root found")
}

// CheckFactors checks that the given list of factors contains all the unique primes of m.
func CheckFactors(m uint64, factors []uint64) (err error) {

	for _, factor := range factors {

		if factor < 2 {
			return fmt.Errorf("invalid factor %d", factor)
		}

		for m%factor == 0 {
			m /= factor
		}
	}

	if m != 1 {
		return fmt.Errorf("incomplete factor list")
	}

	return
}

// CheckPrimitiveRoot checks that g is a valid primitive root mod q,
// given the factors of q-1. Only q = field.Modulus is supported.
func CheckPrimitiveRoot(g, q uint64, factors []uint64) (err error) {

	if q != field.Modulus {
		return fmt.Errorf("unsupported modulus %d", q)
	}

	if err = CheckFactors(q-1, factors); err != nil {
		return
	}

	for _, factor := range factors {
		// if for any factor of q-1, g^(q-1)/factor = 1 mod q, g is not a primitive root
		if x := field.Exp(field.NewElement(g), (q-1)/factor); x.IsOne() {
			return fmt.Errorf("invalid primitive root")
		}
	}

	return
}
