// Package glwe implements the GLWE, GLEV and GGSW ciphertexts over the negacyclic
// Goldilocks ring and their provable algebra: addition, rotation by a monomial,
// conditional selection, signed gadget decomposition and the external product.
package glwe

import (
	"encoding/json"
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/gadget"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/ring"
)

// ParametersLiteral is a literal representation of GLWE parameters. It has public fields and
// is used to express unchecked user-defined parameters literally into Go programs.
// The [NewParametersFromLiteral] function is used to generate the actual checked parameters
// from the literal representation.
//
// A ciphertext is made of K polynomials of degree N = 2^LogN: K-1 mask polynomials
// followed by the body. Gadget ciphertexts use the base 2^LogBase and keep Ell levels.
// Keeping fewer levels than the number of signed digits of a field element drops the
// least significant digits of the decomposition and must be requested with TruncateLimbs.
type ParametersLiteral struct {
	LogN          int
	K             int
	Ell           int
	LogBase       int
	TruncateLimbs bool `json:",omitempty"`
}

var (
	// ExampleParametersLiteral is a parameter set with N=1024, K=2 and a full
	// decomposition in base 2^8.
	ExampleParametersLiteral = ParametersLiteral{
		LogN:    10,
		K:       2,
		Ell:     8,
		LogBase: 8,
	}

	// TestParametersLiteral is a small parameter set with N=8 for tests.
	TestParametersLiteral = ParametersLiteral{
		LogN:    3,
		K:       2,
		Ell:     8,
		LogBase: 8,
	}
)

// Parameters represents a set of GLWE parameters. Its fields are private and
// immutable. See [ParametersLiteral] for user-specified parameters.
type Parameters struct {
	ring     ring.Parameters
	k        int
	ell      int
	logBase  int
	truncate bool
}

// NewParametersFromLiteral instantiates a set of GLWE parameters from a [ParametersLiteral] specification.
// It returns the empty parameters [Parameters]{} and a non-nil error if the specified parameters are invalid.
func NewParametersFromLiteral(pl ParametersLiteral) (params Parameters, err error) {

	if params.ring, err = ring.NewParameters(pl.LogN); err != nil {
		return Parameters{}, fmt.Errorf("ring.NewParameters: %w", err)
	}

	if pl.K < 2 {
		return Parameters{}, fmt.Errorf("invalid K: %d < 2", pl.K)
	}

	if pl.LogBase < gadget.MinLogBase || pl.LogBase > gadget.MaxLogBase {
		return Parameters{}, fmt.Errorf("invalid LogBase: %d not in [%d, %d]", pl.LogBase, gadget.MinLogBase, gadget.MaxLogBase)
	}

	numLimbs := gadget.NumLimbs(pl.LogBase)

	switch {
	case pl.Ell < 1:
		return Parameters{}, fmt.Errorf("invalid Ell: %d < 1", pl.Ell)
	case pl.Ell > numLimbs:
		return Parameters{}, fmt.Errorf("invalid Ell: %d > number of limbs %d", pl.Ell, numLimbs)
	case pl.Ell < numLimbs && !pl.TruncateLimbs:
		return Parameters{}, fmt.Errorf("invalid Ell: %d < number of limbs %d requires TruncateLimbs", pl.Ell, numLimbs)
	}

	params.k = pl.K
	params.ell = pl.Ell
	params.logBase = pl.LogBase
	params.truncate = pl.Ell < numLimbs

	return
}

// ParametersLiteral returns the [ParametersLiteral] of the target [Parameters].
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		LogN:          p.LogN(),
		K:             p.k,
		Ell:           p.ell,
		LogBase:       p.logBase,
		TruncateLimbs: p.truncate,
	}
}

// RingParameters returns the parameters of the underlying ring.
func (p Parameters) RingParameters() ring.Parameters {
	return p.ring
}

// N returns the ring degree.
func (p Parameters) N() int {
	return p.ring.N()
}

// LogN returns log2 of the ring degree.
func (p Parameters) LogN() int {
	return p.ring.LogN()
}

// NthRoot returns 2N, the order of the monomial X in the ring.
func (p Parameters) NthRoot() int {
	return p.ring.NthRoot()
}

// K returns the number of polynomials of a ciphertext.
func (p Parameters) K() int {
	return p.k
}

// Ell returns the number of levels of a gadget ciphertext.
func (p Parameters) Ell() int {
	return p.ell
}

// LogBase returns log2 of the decomposition base.
func (p Parameters) LogBase() int {
	return p.logBase
}

// Base returns the decomposition base.
func (p Parameters) Base() uint64 {
	return 1 << p.logBase
}

// NumLimbs returns the number of signed digits of a field element.
func (p Parameters) NumLimbs() int {
	return gadget.NumLimbs(p.logBase)
}

// NumBits returns the number of bits of a field element.
func (p Parameters) NumBits() int {
	return field.NumBits
}

// TruncateLimbs returns true if the least significant digits are dropped by the external product.
func (p Parameters) TruncateLimbs() bool {
	return p.truncate
}

// CiphertextSize returns the number of field elements of a ciphertext.
func (p Parameters) CiphertextSize() int {
	return p.k * p.N()
}

// GlevSize returns the number of field elements of a GLEV ciphertext.
func (p Parameters) GlevSize() int {
	return p.ell * p.CiphertextSize()
}

// GgswSize returns the number of field elements of a GGSW ciphertext.
func (p Parameters) GgswSize() int {
	return p.k * p.GlevSize()
}

// Equal returns true if the receiver and other are the same parameters.
func (p Parameters) Equal(other *Parameters) bool {
	return p.ring.Equal(&other.ring) &&
		p.k == other.k &&
		p.ell == other.ell &&
		p.logBase == other.logBase &&
		p.truncate == other.truncate
}

// MarshalJSON returns a JSON representation of this parameter set. See Marshal from the [encoding/json] package.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON representation of a parameter set into the receiver Parameter. See Unmarshal from the [encoding/json] package.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var pl ParametersLiteral
	if err = json.Unmarshal(data, &pl); err != nil {
		return err
	}
	*p, err = NewParametersFromLiteral(pl)
	return
}
