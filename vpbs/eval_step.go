package vpbs

import (
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/gadget"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/glwe"
)

// EvalStep evaluates one blind rotation step from a trace row, recording every
// constraint of the row through the engine of eval, and returns the next accumulator.
//
// The first row rotates the accumulator by minus the mask. Interior rows compute
// the CMUX acc + GGSW x (X^mask * acc - acc). The last row outputs GGSW x acc.
// All three branches are evaluated and the output is selected by the row flags.
func EvalStep[E any](eval *glwe.Evaluator[E], row Row[E]) glwe.Ciphertext[E] {

	eng := eval.Engine()

	rotation := gadget.PlusOrMinus(eng, row.IsFirst, row.Mask)

	shifted := eval.RotateByBits(row.NonPad, row.Acc, rotation, row.MaskBits)
	diff := eval.Sub(shifted, row.Acc)

	xprodIn := eval.Select(row.IsLast, row.Acc, diff)
	xprodOut := eval.ExternalProduct(row.NonPad, row.Ggsw, xprodIn, row.XProdInBits)

	cmux := eval.Add(xprodOut, row.Acc)
	cmuxOrXProd := eval.Select(row.IsLast, xprodOut, cmux)

	return eval.Select(row.IsFirst, shifted, cmuxOrXProd)
}
