package glwe

import (
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/utils"
	"github.com/google/go-cmp/cmp"
)

// Poly is a polynomial of Z_p[X]/(X^N + 1), given by its N coefficients over
// elements of type E (field elements, packed lanes, or circuit variables).
type Poly[E any] struct {
	Coeffs []E
}

// NewPoly returns the polynomial of the given coefficients.
func NewPoly[E any](coeffs []E) Poly[E] {
	return Poly[E]{Coeffs: coeffs}
}

// N returns the number of coefficients of the polynomial.
func (p Poly[E]) N() int {
	return len(p.Coeffs)
}

// CopyNew returns a deep copy of the polynomial.
func (p Poly[E]) CopyNew() Poly[E] {
	return Poly[E]{Coeffs: append([]E{}, p.Coeffs...)}
}

// Equal performs a deep equality.
func (p Poly[E]) Equal(other *Poly[E]) bool {
	return cmp.Equal(p.Coeffs, other.Coeffs)
}

// Ciphertext is a GLWE ciphertext: K-1 mask polynomials followed by the body
// b = sum a_i * S_i + m + e, where S_i are the secret polynomials.
type Ciphertext[E any] struct {
	Value []Poly[E]
}

// NewCiphertext returns a new ciphertext of zero field elements, usable as
// placeholder where a ciphertext is required but ignored.
func NewCiphertext(params Parameters) Ciphertext[field.Element] {
	return ZeroCiphertext[field.Element](params, field.Element{})
}

// ZeroCiphertext returns a ciphertext whose coefficients are all zero.
func ZeroCiphertext[E any](params Parameters, zero E) Ciphertext[E] {
	return CiphertextFromSlice(params, utils.Fill(params.CiphertextSize(), zero))
}

// NewTrivialCiphertext returns the noiseless encryption of m with zero masks,
// which decrypts to m under every secret key.
func NewTrivialCiphertext(params Parameters, m Poly[field.Element]) Ciphertext[field.Element] {
	if m.N() != params.N() {
		panic(fmt.Errorf("cannot NewTrivialCiphertext: m.N()=%d != N=%d", m.N(), params.N()))
	}
	ct := NewCiphertext(params)
	ct.Value[params.K()-1] = m.CopyNew()
	return ct
}

// CiphertextFromSlice splits a flat slice of K*N elements into a ciphertext.
// The polynomials share the backing array of in.
func CiphertextFromSlice[E any](params Parameters, in []E) Ciphertext[E] {
	if len(in) != params.CiphertextSize() {
		panic(fmt.Errorf("cannot CiphertextFromSlice: len(in)=%d != %d", len(in), params.CiphertextSize()))
	}
	polys := utils.Chunk(in, params.N())
	ct := Ciphertext[E]{Value: make([]Poly[E], len(polys))}
	for i := range polys {
		ct.Value[i] = Poly[E]{Coeffs: polys[i]}
	}
	return ct
}

// K returns the number of polynomials of the ciphertext.
func (ct Ciphertext[E]) K() int {
	return len(ct.Value)
}

// Body returns the last polynomial of the ciphertext.
func (ct Ciphertext[E]) Body() Poly[E] {
	return ct.Value[len(ct.Value)-1]
}

// Flatten returns the coefficients of the ciphertext, polynomial after polynomial.
func (ct Ciphertext[E]) Flatten() []E {
	out := make([][]E, len(ct.Value))
	for i := range ct.Value {
		out[i] = ct.Value[i].Coeffs
	}
	return utils.Flatten2D(out)
}

// CopyNew returns a deep copy of the ciphertext.
func (ct Ciphertext[E]) CopyNew() Ciphertext[E] {
	out := Ciphertext[E]{Value: make([]Poly[E], len(ct.Value))}
	for i := range ct.Value {
		out.Value[i] = ct.Value[i].CopyNew()
	}
	return out
}

// Equal performs a deep equality.
func (ct Ciphertext[E]) Equal(other *Ciphertext[E]) bool {
	return cmp.Equal(ct.Value, other.Value)
}

// Glev is a GLEV ciphertext: Ell GLWE ciphertexts, the j-th encrypting
// m * B^(NumLimbs-Ell+j), stored in the NTT domain.
type Glev[E any] struct {
	Value []Ciphertext[E]
}

// NewGlev returns a new GLEV ciphertext of zero field elements.
func NewGlev(params Parameters) Glev[field.Element] {
	return GlevFromSlice(params, make([]field.Element, params.GlevSize()))
}

// GlevFromSlice splits a flat slice of Ell*K*N elements into a GLEV ciphertext.
func GlevFromSlice[E any](params Parameters, in []E) Glev[E] {
	if len(in) != params.GlevSize() {
		panic(fmt.Errorf("cannot GlevFromSlice: len(in)=%d != %d", len(in), params.GlevSize()))
	}
	chunks := utils.Chunk(in, params.CiphertextSize())
	glev := Glev[E]{Value: make([]Ciphertext[E], len(chunks))}
	for i := range chunks {
		glev.Value[i] = CiphertextFromSlice(params, chunks[i])
	}
	return glev
}

// Row returns the index-th polynomial of every ciphertext of the GLEV.
func (glev Glev[E]) Row(index int) [][]E {
	row := make([][]E, len(glev.Value))
	for j := range glev.Value {
		row[j] = glev.Value[j].Value[index].Coeffs
	}
	return row
}

// Flatten returns the coefficients of the GLEV ciphertext, ciphertext after ciphertext.
func (glev Glev[E]) Flatten() []E {
	out := make([][]E, len(glev.Value))
	for i := range glev.Value {
		out[i] = glev.Value[i].Flatten()
	}
	return utils.Flatten2D(out)
}

// Equal performs a deep equality.
func (glev Glev[E]) Equal(other *Glev[E]) bool {
	return cmp.Equal(glev.Value, other.Value)
}

// Ggsw is a GGSW ciphertext of m: K GLEV ciphertexts, the i-th encrypting
// m * S_i for i < K-1 and the last one encrypting m.
type Ggsw[E any] struct {
	Value []Glev[E]
}

// NewGgsw returns a new GGSW ciphertext of zero field elements. It is the
// placeholder key of the first blind rotation step, which ignores its key.
func NewGgsw(params Parameters) Ggsw[field.Element] {
	return GgswFromSlice(params, make([]field.Element, params.GgswSize()))
}

// GgswFromSlice splits a flat slice of K*Ell*K*N elements into a GGSW ciphertext.
func GgswFromSlice[E any](params Parameters, in []E) Ggsw[E] {
	if len(in) != params.GgswSize() {
		panic(fmt.Errorf("cannot GgswFromSlice: len(in)=%d != %d", len(in), params.GgswSize()))
	}
	chunks := utils.Chunk(in, params.GlevSize())
	ggsw := Ggsw[E]{Value: make([]Glev[E], len(chunks))}
	for i := range chunks {
		ggsw.Value[i] = GlevFromSlice(params, chunks[i])
	}
	return ggsw
}

// Flatten returns the coefficients of the GGSW ciphertext, GLEV after GLEV.
func (ggsw Ggsw[E]) Flatten() []E {
	out := make([][]E, len(ggsw.Value))
	for i := range ggsw.Value {
		out[i] = ggsw.Value[i].Flatten()
	}
	return utils.Flatten2D(out)
}

// Equal performs a deep equality.
func (ggsw Ggsw[E]) Equal(other *Ggsw[E]) bool {
	return cmp.Equal(ggsw.Value, other.Value)
}
