package keys

import (
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/glwe"
)

// Decryptor decrypts GLWE ciphertexts. It stores the secret key.
type Decryptor struct {
	params glwe.Parameters
	eval   *glwe.NativeEvaluator
	sk     *SecretKey
}

// NewDecryptor instantiates a new Decryptor.
func NewDecryptor(params glwe.Parameters, sk *SecretKey) *Decryptor {

	if len(sk.Value) != params.K()-1 {
		panic(fmt.Errorf("cannot NewDecryptor: secret key has %d polynomials but K-1=%d", len(sk.Value), params.K()-1))
	}

	return &Decryptor{
		params: params,
		eval:   glwe.NewNativeEvaluator(params),
		sk:     sk,
	}
}

// DecryptNew returns the phase b - sum a_i * S_i of a ciphertext in the coefficient domain.
func (dec Decryptor) DecryptNew(ct glwe.Ciphertext[field.Element]) glwe.Poly[field.Element] {

	if ct.K() != dec.params.K() {
		panic(fmt.Errorf("cannot DecryptNew: ciphertext has %d polynomials but K=%d", ct.K(), dec.params.K()))
	}

	pt := ct.Body().CopyNew()
	for i := range dec.sk.Value {
		pt = dec.eval.SubPoly(pt, dec.eval.NegacyclicMul(ct.Value[i], dec.sk.Value[i]))
	}

	return pt
}

// DecryptNTTNew returns the phase of a ciphertext in the NTT domain, in the coefficient domain.
func (dec Decryptor) DecryptNTTNew(ct glwe.Ciphertext[field.Element]) glwe.Poly[field.Element] {
	return dec.DecryptNew(dec.eval.NTTBackward(ct))
}

// DecodeNew decrypts ct and rounds every signed coefficient of the phase to the
// nearest multiple of delta, returning the quotients.
func (dec Decryptor) DecodeNew(ct glwe.Ciphertext[field.Element], delta uint64) []int64 {

	if delta == 0 || delta >= 1<<62 {
		panic(fmt.Errorf("cannot DecodeNew: invalid delta %d", delta))
	}

	pt := dec.DecryptNew(ct)

	d := int64(delta)
	out := make([]int64, pt.N())
	for i, c := range pt.Coeffs {
		v := field.Signed(c)
		if v >= 0 {
			out[i] = (v + d/2) / d
		} else {
			out[i] = -((-v + d/2) / d)
		}
	}

	return out
}
