// Package vpbs implements the verifiable blind rotation of TFHE programmable
// bootstrapping: a native step driver, the row layout of its execution trace,
// the provable step evaluated over any arithmetic engine, a STARK-style
// constraint checker over packed rows, and the step as a gnark circuit.
package vpbs

import (
	"encoding/json"
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/glwe"
)

// ParametersLiteral is a literal representation of the blind rotation parameters.
// It has public fields and is used to express unchecked user-defined parameters
// literally into Go programs. The [NewParametersFromLiteral] function is used to
// generate the actual checked parameters from the literal representation.
type ParametersLiteral struct {
	GLWE         glwe.ParametersLiteral
	LWEDimension int
}

// Parameters represents a set of blind rotation parameters. Its fields are private and
// immutable. See [ParametersLiteral] for user-specified parameters.
type Parameters struct {
	glwe.Parameters
	lweDimension int
}

// NewParametersFromLiteral instantiates a set of blind rotation parameters from a
// [ParametersLiteral] specification.
func NewParametersFromLiteral(pl ParametersLiteral) (params Parameters, err error) {

	if params.Parameters, err = glwe.NewParametersFromLiteral(pl.GLWE); err != nil {
		return Parameters{}, fmt.Errorf("glwe.NewParametersFromLiteral: %w", err)
	}

	if pl.LWEDimension < 1 {
		return Parameters{}, fmt.Errorf("invalid LWEDimension: %d < 1", pl.LWEDimension)
	}

	params.lweDimension = pl.LWEDimension

	return
}

// ParametersLiteral returns the [ParametersLiteral] of the target [Parameters].
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		GLWE:         p.Parameters.ParametersLiteral(),
		LWEDimension: p.lweDimension,
	}
}

// GLWEParameters returns the underlying GLWE parameters.
func (p Parameters) GLWEParameters() glwe.Parameters {
	return p.Parameters
}

// LWEDimension returns the dimension n of the bootstrapped LWE ciphertexts.
func (p Parameters) LWEDimension() int {
	return p.lweDimension
}

// NumSteps returns the number of steps of a blind rotation: one rotation by the
// body, one CMUX per mask element and the final key-switching product.
func (p Parameters) NumSteps() int {
	return p.lweDimension + 2
}

// Equal returns true if the receiver and other are the same parameters.
func (p Parameters) Equal(other *Parameters) bool {
	return p.Parameters.Equal(&other.Parameters) && p.lweDimension == other.lweDimension
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
