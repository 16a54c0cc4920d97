package keys

import (
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/glwe"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/utils/sampling"
)

// Encryptor encrypts GLWE, GLEV and GGSW ciphertexts under a secret key.
// Masks are uniform and errors are uniform in [-NoiseBound, NoiseBound].
type Encryptor struct {
	params     glwe.Parameters
	eval       *glwe.NativeEvaluator
	sk         *SecretKey
	prng       sampling.PRNG
	noiseBound uint64
}

// NewEncryptor instantiates a new Encryptor.
func NewEncryptor(params glwe.Parameters, sk *SecretKey, prng sampling.PRNG, noiseBound uint64) *Encryptor {

	if len(sk.Value) != params.K()-1 {
		panic(fmt.Errorf("cannot NewEncryptor: secret key has %d polynomials but K-1=%d", len(sk.Value), params.K()-1))
	}

	return &Encryptor{
		params:     params,
		eval:       glwe.NewNativeEvaluator(params),
		sk:         sk,
		prng:       prng,
		noiseBound: noiseBound,
	}
}

// EncryptNew returns a GLWE encryption of m, in the coefficient domain.
func (enc Encryptor) EncryptNew(m glwe.Poly[field.Element]) (ct glwe.Ciphertext[field.Element], err error) {

	params := enc.params

	if m.N() != params.N() {
		return ct, fmt.Errorf("cannot EncryptNew: m.N()=%d != N=%d", m.N(), params.N())
	}

	ct = glwe.NewCiphertext(params)

	body := m.CopyNew()
	for i := 0; i < params.K()-1; i++ {
		var a []field.Element
		if a, err = sampling.UniformElements(enc.prng, params.N()); err != nil {
			return ct, fmt.Errorf("sampling.UniformElements: %w", err)
		}
		ct.Value[i] = glwe.NewPoly(a)
		body = enc.eval.AddPoly(body, enc.eval.NegacyclicMul(ct.Value[i], enc.sk.Value[i]))
	}

	for j := range body.Coeffs {
		var e int64
		if e, err = sampling.Bounded(enc.prng, enc.noiseBound); err != nil {
			return ct, fmt.Errorf("sampling.Bounded: %w", err)
		}
		noise := field.FromInt64(e)
		body.Coeffs[j].Add(&body.Coeffs[j], &noise)
	}

	ct.Value[params.K()-1] = body

	return ct, nil
}

// EncryptZeroNew returns a GLWE encryption of zero, in the coefficient domain.
func (enc Encryptor) EncryptZeroNew() (glwe.Ciphertext[field.Element], error) {
	return enc.EncryptNew(glwe.NewPoly(make([]field.Element, enc.params.N())))
}

// EncryptGlevNew returns a GLEV encryption of m in the NTT domain: its j-th
// ciphertext encrypts m * B^(NumLimbs-Ell+j).
func (enc Encryptor) EncryptGlevNew(m glwe.Poly[field.Element]) (glev glwe.Glev[field.Element], err error) {

	params := enc.params
	offset := uint64(params.NumLimbs() - params.Ell())
	base := field.NewElement(params.Base())

	glev.Value = make([]glwe.Ciphertext[field.Element], params.Ell())
	for j := range glev.Value {

		scale := field.Exp(base, offset+uint64(j))

		scaled := m.CopyNew()
		for i := range scaled.Coeffs {
			scaled.Coeffs[i].Mul(&scaled.Coeffs[i], &scale)
		}

		var ct glwe.Ciphertext[field.Element]
		if ct, err = enc.EncryptNew(scaled); err != nil {
			return
		}

		glev.Value[j] = enc.eval.NTTForward(ct)
	}

	return
}

// EncryptGgswNew returns a GGSW encryption of m: for i < K-1 its i-th GLEV
// encrypts m * S_i, and the last one encrypts m.
func (enc Encryptor) EncryptGgswNew(m glwe.Poly[field.Element]) (ggsw glwe.Ggsw[field.Element], err error) {

	K := enc.params.K()

	ggsw.Value = make([]glwe.Glev[field.Element], K)
	for i := 0; i < K-1; i++ {
		if ggsw.Value[i], err = enc.EncryptGlevNew(enc.eval.NegacyclicMul(m, enc.sk.Value[i])); err != nil {
			return
		}
	}

	ggsw.Value[K-1], err = enc.EncryptGlevNew(m)

	return
}

// EncryptGgswScalarNew returns a GGSW encryption of the constant polynomial c.
func (enc Encryptor) EncryptGgswScalarNew(c int64) (glwe.Ggsw[field.Element], error) {
	m := make([]field.Element, enc.params.N())
	m[0] = field.FromInt64(c)
	return enc.EncryptGgswNew(glwe.NewPoly(m))
}

// EncryptLWENew returns an LWE encryption modulo 2N of m under sk, with an error
// uniform in [-noiseBound, noiseBound].
func EncryptLWENew(params glwe.Parameters, sk *LWESecretKey, m uint64, noiseBound uint64, prng sampling.PRNG) (ct LWECiphertext, err error) {

	nthRoot := uint64(params.NthRoot())

	if noiseBound >= nthRoot {
		return ct, fmt.Errorf("cannot EncryptLWENew: noise bound %d >= 2N=%d", noiseBound, nthRoot)
	}

	ct.Mask = make([]uint64, sk.Dimension())

	var phase uint64
	for i := range ct.Mask {
		if ct.Mask[i], err = sampling.UniformMod(prng, nthRoot); err != nil {
			return ct, fmt.Errorf("sampling.UniformMod: %w", err)
		}
		phase = (phase + ct.Mask[i]*sk.Value[i]) % nthRoot
	}

	var e int64
	if e, err = sampling.Bounded(prng, noiseBound); err != nil {
		return ct, fmt.Errorf("sampling.Bounded: %w", err)
	}

	ct.Body = uint64((int64((phase+m)%nthRoot) + e + int64(nthRoot)) % int64(nthRoot))

	return ct, nil
}

// LWEPhase returns b - <a, s> mod 2N.
func LWEPhase(params glwe.Parameters, sk *LWESecretKey, ct LWECiphertext) uint64 {

	if ct.Dimension() != sk.Dimension() {
		panic(fmt.Errorf("cannot LWEPhase: ciphertext dimension %d != key dimension %d", ct.Dimension(), sk.Dimension()))
	}

	nthRoot := uint64(params.NthRoot())

	var inner uint64
	for i := range ct.Mask {
		inner = (inner + ct.Mask[i]*sk.Value[i]) % nthRoot
	}

	return (ct.Body + nthRoot - inner) % nthRoot
}
