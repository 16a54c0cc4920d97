package vpbs

import (
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/glwe"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/keys"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/utils"
)

// Evaluator runs the blind rotation natively and generates its execution trace.
type Evaluator struct {
	params Parameters
	eval   *glwe.NativeEvaluator
}

// NewEvaluator instantiates a new Evaluator.
func NewEvaluator(params Parameters) *Evaluator {
	return &Evaluator{
		params: params,
		eval:   glwe.NewNativeEvaluator(params.GLWEParameters()),
	}
}

// Parameters returns the parameters of the evaluator.
func (eval Evaluator) Parameters() Parameters {
	return eval.params
}

// StepWitness holds the bit decompositions a trace row needs on top of the step inputs.
type StepWitness struct {
	MaskBits    []field.Element
	XProdInBits [][][]field.Element
}

// Step runs one step of the blind rotation natively and returns the next
// accumulator together with the bit decompositions of the row.
func (eval Evaluator) Step(step Step, acc glwe.Ciphertext[field.Element], ggsw glwe.Ggsw[field.Element], mask field.Element) (out glwe.Ciphertext[field.Element], witness StepWitness) {

	rotation := mask
	if step.IsFirst() {
		rotation.Neg(&mask)
	}

	shifted := eval.eval.RotateNative(acc, rotation)

	var xprodIn glwe.Ciphertext[field.Element]
	if step.IsLast() {
		xprodIn = acc
	} else {
		xprodIn = eval.eval.Sub(shifted, acc)
	}

	witness.MaskBits = field.BitDecompose(rotation)
	witness.XProdInBits = eval.eval.BitDecomposition(xprodIn)

	switch step.Kind {
	case First:
		out = shifted
	case Interior:
		out = eval.eval.Add(eval.eval.ExternalProductNative(ggsw, xprodIn), acc)
	default:
		out = eval.eval.ExternalProductNative(ggsw, xprodIn)
	}

	return
}

// BlindRotate returns the key-switched encryption of testVector * X^(-b + <a, s>),
// where (a, b) is the LWE ciphertext and s the LWE secret key encrypted by keySet.
func (eval Evaluator) BlindRotate(testVector glwe.Ciphertext[field.Element], ct keys.LWECiphertext, keySet BlindRotationKeySet) (glwe.Ciphertext[field.Element], error) {
	trace, err := eval.run(testVector, ct, keySet, false)
	if err != nil {
		return glwe.Ciphertext[field.Element]{}, err
	}
	return trace.Output, nil
}

// Trace is the execution trace of a blind rotation: one row per step, padded
// with zero rows to a power of two.
type Trace struct {
	Rows       [][]field.Element
	NonPadRows int
	Output     glwe.Ciphertext[field.Element]
}

// GenerateTrace runs the blind rotation and records its execution trace.
func (eval Evaluator) GenerateTrace(testVector glwe.Ciphertext[field.Element], ct keys.LWECiphertext, keySet BlindRotationKeySet) (*Trace, error) {
	return eval.run(testVector, ct, keySet, true)
}

func (eval Evaluator) run(testVector glwe.Ciphertext[field.Element], ct keys.LWECiphertext, keySet BlindRotationKeySet, record bool) (trace *Trace, err error) {

	params := eval.params

	if ct.Dimension() != params.LWEDimension() {
		return nil, fmt.Errorf("invalid LWE ciphertext: dimension %d != %d", ct.Dimension(), params.LWEDimension())
	}

	if testVector.K() != params.K() {
		return nil, fmt.Errorf("invalid test vector: %d polynomials but K=%d", testVector.K(), params.K())
	}

	trace = &Trace{NonPadRows: params.NumSteps()}

	var one field.Element
	one.SetOne()

	acc := testVector
	for i := 0; i < params.NumSteps(); i++ {

		var step Step
		if step, err = StepAt(params, i); err != nil {
			return nil, err
		}

		var ggsw glwe.Ggsw[field.Element]
		if ggsw, err = step.Key(params, keySet); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}

		mask := step.Mask(ct)

		out, witness := eval.Step(step, acc, ggsw, mask)

		if record {
			row := Row[field.Element]{
				Acc:         acc,
				Ggsw:        ggsw,
				Mask:        mask,
				MaskBits:    witness.MaskBits,
				XProdInBits: witness.XProdInBits,
				NonPad:      one,
			}
			if step.IsFirst() {
				row.IsFirst = one
			}
			if step.IsLast() {
				row.IsLast = one
			}
			trace.Rows = append(trace.Rows, WriteRow(params, row))
		}

		acc = out
	}

	if record {
		width := NewLayout(params).Width
		for len(trace.Rows) < utils.NextPowerOfTwo(params.NumSteps()) {
			trace.Rows = append(trace.Rows, make([]field.Element, width))
		}
	}

	trace.Output = acc

	return trace, nil
}

// NewTestVector returns the trivial encryption of the polynomial whose i-th
// coefficient is f(i), to be rotated by the blind rotation.
func NewTestVector(params Parameters, f func(i int) field.Element) glwe.Ciphertext[field.Element] {
	coeffs := make([]field.Element, params.N())
	for i := range coeffs {
		coeffs[i] = f(i)
	}
	return glwe.NewTrivialCiphertext(params.GLWEParameters(), glwe.NewPoly(coeffs))
}
