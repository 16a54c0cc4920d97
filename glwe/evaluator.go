package glwe

import (
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/arith"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/gadget"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/ring"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/utils"
)

// Evaluator implements the ciphertext algebra over elements of type E.
// Every constraint of the algebra (booleanity of bits and flags, consistency
// of bit decompositions) is recorded through the engine.
type Evaluator[E any] struct {
	params Parameters
	eng    arith.Engine[E]
}

// NewEvaluator instantiates a new Evaluator.
func NewEvaluator[E any](params Parameters, eng arith.Engine[E]) *Evaluator[E] {
	return &Evaluator[E]{params: params, eng: eng}
}

// Parameters returns the parameters of the evaluator.
func (eval Evaluator[E]) Parameters() Parameters {
	return eval.params
}

// Engine returns the arithmetic engine of the evaluator.
func (eval Evaluator[E]) Engine() arith.Engine[E] {
	return eval.eng
}

// AddPoly returns op0 + op1.
func (eval Evaluator[E]) AddPoly(op0, op1 Poly[E]) Poly[E] {
	return Poly[E]{Coeffs: ring.VecAdd(eval.eng, op0.Coeffs, op1.Coeffs)}
}

// SubPoly returns op0 - op1.
func (eval Evaluator[E]) SubPoly(op0, op1 Poly[E]) Poly[E] {
	return Poly[E]{Coeffs: ring.VecSub(eval.eng, op0.Coeffs, op1.Coeffs)}
}

// RotatePoly returns X^shift * p in Z_p[X]/(X^N + 1), for shift in [0, 2N).
func (eval Evaluator[E]) RotatePoly(p Poly[E], shift int) Poly[E] {

	N := p.N()

	if shift < 0 || shift >= 2*N {
		panic(fmt.Errorf("cannot RotatePoly: shift=%d not in [0, %d)", shift, 2*N))
	}

	negate := shift >= N
	if negate {
		shift -= N
	}

	out := make([]E, N)
	for i := 0; i < shift; i++ {
		out[i] = eval.eng.Neg(p.Coeffs[N-shift+i])
	}
	copy(out[shift:], p.Coeffs[:N-shift])

	if negate {
		out = ring.VecNeg(eval.eng, out)
	}

	return Poly[E]{Coeffs: out}
}

// NTTForwardPoly returns the NTT of p.
func (eval Evaluator[E]) NTTForwardPoly(p Poly[E]) Poly[E] {
	return Poly[E]{Coeffs: ring.Forward(eval.eng, eval.params.ring, p.Coeffs)}
}

// NTTBackwardPoly returns the inverse NTT of p.
func (eval Evaluator[E]) NTTBackwardPoly(p Poly[E]) Poly[E] {
	return Poly[E]{Coeffs: ring.Backward(eval.eng, eval.params.ring, p.Coeffs)}
}

func (eval Evaluator[E]) checkCiphertexts(op string, cts ...Ciphertext[E]) {
	for _, ct := range cts {
		if ct.K() != eval.params.K() {
			panic(fmt.Errorf("cannot %s: ciphertext has %d polynomials but K=%d", op, ct.K(), eval.params.K()))
		}
	}
}

// Add returns op0 + op1.
func (eval Evaluator[E]) Add(op0, op1 Ciphertext[E]) Ciphertext[E] {
	eval.checkCiphertexts("Add", op0, op1)
	out := Ciphertext[E]{Value: make([]Poly[E], op0.K())}
	for i := range out.Value {
		out.Value[i] = eval.AddPoly(op0.Value[i], op1.Value[i])
	}
	return out
}

// Sub returns op0 - op1.
func (eval Evaluator[E]) Sub(op0, op1 Ciphertext[E]) Ciphertext[E] {
	eval.checkCiphertexts("Sub", op0, op1)
	out := Ciphertext[E]{Value: make([]Poly[E], op0.K())}
	for i := range out.Value {
		out.Value[i] = eval.SubPoly(op0.Value[i], op1.Value[i])
	}
	return out
}

// AddMany returns the sum of the ciphertexts, folded from the zero ciphertext.
func (eval Evaluator[E]) AddMany(cts []Ciphertext[E]) Ciphertext[E] {
	out := ZeroCiphertext(eval.params, eval.eng.Zero())
	for _, ct := range cts {
		out = eval.Add(out, ct)
	}
	return out
}

// Rotate returns X^shift * ct, for shift in [0, 2N).
func (eval Evaluator[E]) Rotate(ct Ciphertext[E], shift int) Ciphertext[E] {
	out := Ciphertext[E]{Value: make([]Poly[E], ct.K())}
	for i := range ct.Value {
		out.Value[i] = eval.RotatePoly(ct.Value[i], shift)
	}
	return out
}

// NTTForward returns the ciphertext with every polynomial in the NTT domain.
func (eval Evaluator[E]) NTTForward(ct Ciphertext[E]) Ciphertext[E] {
	out := Ciphertext[E]{Value: make([]Poly[E], ct.K())}
	for i := range ct.Value {
		out.Value[i] = eval.NTTForwardPoly(ct.Value[i])
	}
	return out
}

// NTTBackward returns the ciphertext with every polynomial in the coefficient domain.
func (eval Evaluator[E]) NTTBackward(ct Ciphertext[E]) Ciphertext[E] {
	out := Ciphertext[E]{Value: make([]Poly[E], ct.K())}
	for i := range ct.Value {
		out.Value[i] = eval.NTTBackwardPoly(ct.Value[i])
	}
	return out
}

// Select returns op0 if flag is 1 and op1 if flag is 0.
// The flag is constrained to be boolean.
func (eval Evaluator[E]) Select(flag E, op0, op1 Ciphertext[E]) Ciphertext[E] {
	eval.checkCiphertexts("Select", op0, op1)
	return CiphertextFromSlice(eval.params, gadget.SelectVec(eval.eng, flag, op0.Flatten(), op1.Flatten()))
}

// DecomposePoly returns the signed gadget decomposition of p as NumLimbs
// polynomials, least significant first, given the claimed bit decomposition of
// every coefficient (N vectors of field.NumBits bits). The bits are checked
// against the coefficients when filter is 1.
func (eval Evaluator[E]) DecomposePoly(filter E, p Poly[E], bits [][]E) [][]E {

	if len(bits) != p.N() {
		panic(fmt.Errorf("cannot DecomposePoly: len(bits)=%d != N=%d", len(bits), p.N()))
	}

	limbs := make([][]E, eval.params.NumLimbs())
	for l := range limbs {
		limbs[l] = make([]E, p.N())
	}

	for i, c := range p.Coeffs {
		digits := gadget.DecomposeCoeff(eval.eng, filter, c, bits[i], eval.params.logBase)
		for l := range digits {
			limbs[l][i] = digits[l]
		}
	}

	return limbs
}

// GlevMul returns the GLWE ciphertext, in the NTT domain, of the product between
// the polynomial whose signed decomposition is limbs and the message of the GLEV.
// Only the Ell most significant limbs are used.
func (eval Evaluator[E]) GlevMul(glev Glev[E], limbs [][]E) Ciphertext[E] {

	params := eval.params

	if len(limbs) != params.NumLimbs() {
		panic(fmt.Errorf("cannot GlevMul: len(limbs)=%d != NumLimbs=%d", len(limbs), params.NumLimbs()))
	}

	if len(glev.Value) != params.Ell() {
		panic(fmt.Errorf("cannot GlevMul: GLEV has %d levels but Ell=%d", len(glev.Value), params.Ell()))
	}

	top := limbs[params.NumLimbs()-params.Ell():]
	limbsNTT := utils.Map(top, func(limb []E) []E {
		return ring.Forward(eval.eng, params.ring, limb)
	})

	out := Ciphertext[E]{Value: make([]Poly[E], params.K())}
	for index := range out.Value {
		out.Value[index] = Poly[E]{Coeffs: ring.VecInnerProduct(eval.eng, params.N(), limbsNTT, glev.Row(index))}
	}

	return out
}

// ExternalProductFromLimbs returns GGSW(m) x GLWE(mu) = GLWE(m * mu) in the coefficient
// domain, given the signed decomposition of every polynomial of the GLWE ciphertext.
// The products of the mask polynomials with the GLEVs encrypting m * S_i are
// subtracted from the product of the body with the GLEV encrypting m.
func (eval Evaluator[E]) ExternalProductFromLimbs(ggsw Ggsw[E], limbs [][][]E) Ciphertext[E] {

	K := eval.params.K()

	if len(ggsw.Value) != K || len(limbs) != K {
		panic(fmt.Errorf("cannot ExternalProduct: GGSW has %d rows and %d decompositions but K=%d", len(ggsw.Value), len(limbs), K))
	}

	products := make([]Ciphertext[E], K)
	for i := range products {
		products[i] = eval.GlevMul(ggsw.Value[i], limbs[i])
	}

	return eval.NTTBackward(eval.Sub(products[K-1], eval.AddMany(products[:K-1])))
}

// ExternalProduct returns GGSW(m) x ct in the coefficient domain, given the claimed
// bit decomposition of every coefficient of ct (K x N x field.NumBits bits).
func (eval Evaluator[E]) ExternalProduct(filter E, ggsw Ggsw[E], ct Ciphertext[E], bits [][][]E) Ciphertext[E] {

	eval.checkCiphertexts("ExternalProduct", ct)

	if len(bits) != ct.K() {
		panic(fmt.Errorf("cannot ExternalProduct: len(bits)=%d != K=%d", len(bits), ct.K()))
	}

	limbs := make([][][]E, ct.K())
	for i := range ct.Value {
		limbs[i] = eval.DecomposePoly(filter, ct.Value[i], bits[i])
	}

	return eval.ExternalProductFromLimbs(ggsw, limbs)
}

// RotateByBits returns X^v * ct, where v is the signed value given by its claimed
// bit decomposition. The bits are constrained to be boolean and, when filter is 1,
// to recompose to value.
//
// The log2(2N) least significant bits select rotations by powers of two. A set
// most significant bit denotes the negative value v - p, and since p = 1 mod 2N
// the result is then corrected by a rotation of 2N - 1.
func (eval Evaluator[E]) RotateByBits(filter E, ct Ciphertext[E], value E, bits []E) Ciphertext[E] {

	if len(bits) != eval.params.NumBits() {
		panic(fmt.Errorf("cannot RotateByBits: len(bits)=%d != %d", len(bits), eval.params.NumBits()))
	}

	eng := eval.eng

	eng.AssertZero(eng.Mul(filter, eng.Sub(value, gadget.LeSum(eng, bits))))

	logNthRoot := eval.params.LogN() + 1
	for j := 0; j < logNthRoot; j++ {
		ct = eval.Select(bits[j], eval.Rotate(ct, 1<<j), ct)
	}

	return eval.Select(bits[len(bits)-1], eval.Rotate(ct, eval.params.NthRoot()-1), ct)
}
