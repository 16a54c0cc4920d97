package glwe

import (
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/arith"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/gadget"
)

// NativeEvaluator is the Evaluator over field elements. On top of the provable
// algebra it computes decompositions and rotations directly from values, and
// produces the bit decompositions that serve as witnesses to the provable algebra.
type NativeEvaluator struct {
	*Evaluator[field.Element]
	native *arith.Native
}

// NewNativeEvaluator instantiates a new NativeEvaluator.
func NewNativeEvaluator(params Parameters) *NativeEvaluator {
	native := arith.NewNative()
	return &NativeEvaluator{
		Evaluator: NewEvaluator[field.Element](params, native),
		native:    native,
	}
}

// Violations returns the number of constraints violated by the provable
// operations evaluated so far.
func (eval NativeEvaluator) Violations() int {
	return eval.native.Violations()
}

// BitDecomposition returns the little-endian bits of every coefficient of ct (K x N x field.NumBits).
func (eval NativeEvaluator) BitDecomposition(ct Ciphertext[field.Element]) [][][]field.Element {
	out := make([][][]field.Element, ct.K())
	for i := range ct.Value {
		out[i] = make([][]field.Element, ct.Value[i].N())
		for j, c := range ct.Value[i].Coeffs {
			out[i][j] = field.BitDecompose(c)
		}
	}
	return out
}

// NegBitDecomposition returns the little-endian bits of the negation of every coefficient of ct.
func (eval NativeEvaluator) NegBitDecomposition(ct Ciphertext[field.Element]) [][][]field.Element {
	out := make([][][]field.Element, ct.K())
	for i := range ct.Value {
		out[i] = make([][]field.Element, ct.Value[i].N())
		for j, c := range ct.Value[i].Coeffs {
			var neg field.Element
			neg.Neg(&c)
			out[i][j] = field.BitDecompose(neg)
		}
	}
	return out
}

// DecomposePolyNative returns the signed gadget decomposition of p as NumLimbs polynomials.
func (eval NativeEvaluator) DecomposePolyNative(p Poly[field.Element]) [][]field.Element {
	limbs := make([][]field.Element, eval.params.NumLimbs())
	for l := range limbs {
		limbs[l] = make([]field.Element, p.N())
	}
	for i, c := range p.Coeffs {
		for l, d := range gadget.DecomposeNativeElements(c, eval.params.logBase) {
			limbs[l][i] = d
		}
	}
	return limbs
}

// ExternalProductNative returns GGSW(m) x ct in the coefficient domain.
func (eval NativeEvaluator) ExternalProductNative(ggsw Ggsw[field.Element], ct Ciphertext[field.Element]) Ciphertext[field.Element] {
	eval.checkCiphertexts("ExternalProductNative", ct)
	limbs := make([][][]field.Element, ct.K())
	for i := range ct.Value {
		limbs[i] = eval.DecomposePolyNative(ct.Value[i])
	}
	return eval.ExternalProductFromLimbs(ggsw, limbs)
}

// RotateNative returns X^v * ct, where v is the signed integer represented by value
// (see field.Signed), reduced modulo 2N.
func (eval NativeEvaluator) RotateNative(ct Ciphertext[field.Element], value field.Element) Ciphertext[field.Element] {
	return eval.Rotate(ct, eval.ShiftOf(value))
}

// ShiftOf returns the rotation in [0, 2N) represented by value.
func (eval NativeEvaluator) ShiftOf(value field.Element) int {
	nthRoot := int64(eval.params.NthRoot())
	shift := field.Signed(value) % nthRoot
	if shift < 0 {
		shift += nthRoot
	}
	return int(shift)
}

// NegacyclicMul returns the product of a and b in Z_p[X]/(X^N + 1), both in the coefficient domain.
func (eval NativeEvaluator) NegacyclicMul(a, b Poly[field.Element]) Poly[field.Element] {
	if a.N() != eval.params.N() || b.N() != eval.params.N() {
		panic(fmt.Errorf("cannot NegacyclicMul: degrees %d and %d != N=%d", a.N(), b.N(), eval.params.N()))
	}
	aNTT := eval.NTTForwardPoly(a)
	bNTT := eval.NTTForwardPoly(b)
	prod := make([]field.Element, a.N())
	for i := range prod {
		prod[i].Mul(&aNTT.Coeffs[i], &bNTT.Coeffs[i])
	}
	return eval.NTTBackwardPoly(Poly[field.Element]{Coeffs: prod})
}
