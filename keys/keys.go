// Package keys implements the secret keys, encryption, decryption and bootstrapping
// key generation that feed the verifiable blind rotation.
package keys

import (
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/glwe"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/utils/sampling"
)

// SecretKey is a GLWE secret key: K-1 polynomials with binary coefficients,
// in the coefficient domain.
type SecretKey struct {
	Value []glwe.Poly[field.Element]
}

// LWESecretKey is a binary LWE secret key.
type LWESecretKey struct {
	Value []uint64
}

// Dimension returns the LWE dimension n.
func (sk LWESecretKey) Dimension() int {
	return len(sk.Value)
}

// LWECiphertext is an LWE ciphertext modulo 2N: n mask elements and the body
// b = <a, s> + m + e mod 2N.
type LWECiphertext struct {
	Mask []uint64
	Body uint64
}

// Dimension returns the LWE dimension n.
func (ct LWECiphertext) Dimension() int {
	return len(ct.Mask)
}

// KeyGenerator generates secret keys from a PRNG.
type KeyGenerator struct {
	params glwe.Parameters
	prng   sampling.PRNG
}

// NewKeyGenerator instantiates a new KeyGenerator.
func NewKeyGenerator(params glwe.Parameters, prng sampling.PRNG) *KeyGenerator {
	return &KeyGenerator{params: params, prng: prng}
}

// GenSecretKeyNew generates a new GLWE secret key with uniform binary coefficients.
func (kgen KeyGenerator) GenSecretKeyNew() (sk *SecretKey, err error) {
	sk = &SecretKey{Value: make([]glwe.Poly[field.Element], kgen.params.K()-1)}
	for i := range sk.Value {
		var bits []uint64
		if bits, err = sampling.Bits(kgen.prng, kgen.params.N()); err != nil {
			return nil, fmt.Errorf("sampling.Bits: %w", err)
		}
		sk.Value[i] = glwe.NewPoly(field.NewSlice(bits))
	}
	return
}

// GenLWESecretKeyNew generates a new binary LWE secret key of dimension n.
func (kgen KeyGenerator) GenLWESecretKeyNew(n int) (sk *LWESecretKey, err error) {
	if n < 1 {
		return nil, fmt.Errorf("invalid LWE dimension: %d < 1", n)
	}
	var bits []uint64
	if bits, err = sampling.Bits(kgen.prng, n); err != nil {
		return nil, fmt.Errorf("sampling.Bits: %w", err)
	}
	return &LWESecretKey{Value: bits}, nil
}
