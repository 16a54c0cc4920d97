package circuit

import (
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/gadget"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/ring"
	"github.com/consensys/gnark/frontend"
)

// NTTCircuit proves that Out is the negacyclic NTT of In.
type NTTCircuit struct {
	params ring.Parameters

	In  []Variable
	Out []Variable `gnark:",public"`
}

// NewNTTCircuit allocates an NTTCircuit for the given ring.
func NewNTTCircuit(params ring.Parameters) *NTTCircuit {
	return &NTTCircuit{
		params: params,
		In:     make([]Variable, params.N()),
		Out:    make([]Variable, params.N()),
	}
}

// Define declares the circuit constraints.
func (c *NTTCircuit) Define(api frontend.API) error {

	eng, err := NewEngine(api)
	if err != nil {
		return err
	}

	if len(c.In) != c.params.N() || len(c.Out) != c.params.N() {
		return fmt.Errorf("invalid NTTCircuit: expected %d coefficients", c.params.N())
	}

	out := ring.Forward[Element](eng, c.params, Refs(c.In))
	for i := range out {
		eng.AssertIsEqual(out[i], &c.Out[i])
	}

	return nil
}

// DecompositionCircuit proves that Digits is the balanced signed decomposition
// in base 2^LogBase of X, whose bits are given as witness.
type DecompositionCircuit struct {
	logBase int

	X      Variable
	Bits   []Variable
	Digits []Variable `gnark:",public"`
}

// NewDecompositionCircuit allocates a DecompositionCircuit for the given base.
func NewDecompositionCircuit(logBase int) *DecompositionCircuit {
	return &DecompositionCircuit{
		logBase: logBase,
		Bits:    make([]Variable, field.NumBits),
		Digits:  make([]Variable, gadget.NumLimbs(logBase)),
	}
}

// Define declares the circuit constraints.
func (c *DecompositionCircuit) Define(api frontend.API) error {

	eng, err := NewEngine(api)
	if err != nil {
		return err
	}

	digits := gadget.DecomposeCoeff[Element](eng, eng.One(), &c.X, Refs(c.Bits), c.logBase)

	if len(digits) != len(c.Digits) {
		return fmt.Errorf("invalid DecompositionCircuit: expected %d digits", len(digits))
	}

	for i := range digits {
		eng.AssertIsEqual(digits[i], &c.Digits[i])
	}

	return nil
}
