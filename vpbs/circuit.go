package vpbs

import (
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/circuit"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/glwe"
	"github.com/consensys/gnark/frontend"
)

// StepCircuit proves that Out is the accumulator produced by one blind rotation
// step from the trace row Row.
type StepCircuit struct {
	params Parameters

	Row []circuit.Variable
	Out []circuit.Variable `gnark:",public"`
}

// NewStepCircuit allocates a StepCircuit for the given parameters.
func NewStepCircuit(params Parameters) *StepCircuit {
	return &StepCircuit{
		params: params,
		Row:    make([]circuit.Variable, NewLayout(params).Width),
		Out:    make([]circuit.Variable, params.CiphertextSize()),
	}
}

// AssignStepCircuit returns the witness of a StepCircuit for a trace row and the
// accumulator it produces.
func AssignStepCircuit(params Parameters, row []field.Element, out glwe.Ciphertext[field.Element]) *StepCircuit {
	return &StepCircuit{
		params: params,
		Row:    circuit.ValuesOf(row),
		Out:    circuit.ValuesOf(out.Flatten()),
	}
}

// Define declares the circuit constraints.
func (c *StepCircuit) Define(api frontend.API) error {

	eng, err := circuit.NewEngine(api)
	if err != nil {
		return err
	}

	if len(c.Out) != c.params.CiphertextSize() {
		return fmt.Errorf("invalid StepCircuit: len(Out)=%d != %d", len(c.Out), c.params.CiphertextSize())
	}

	eval := glwe.NewEvaluator[circuit.Element](c.params.GLWEParameters(), eng)

	out := EvalStep(eval, ReadRow(c.params, circuit.Refs(c.Row))).Flatten()

	for i := range out {
		eng.AssertIsEqual(out[i], &c.Out[i])
	}

	return nil
}
