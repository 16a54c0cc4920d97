package vpbs

import (
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/glwe"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/utils"
)

// Layout gives the column offsets of a trace row. A row is laid out as
//
//	acc (K*N) | ggsw (K*Ell*K*N) | mask (1) | mask bits (64) | xprod_in bits (K*N*64) | non-pad | is-first | is-last
type Layout struct {
	Acc         int
	Ggsw        int
	Mask        int
	MaskBits    int
	XProdInBits int
	NonPad      int
	IsFirst     int
	IsLast      int
	Width       int
}

// NewLayout returns the row layout of the given parameters.
func NewLayout(params Parameters) (l Layout) {
	l.Acc = 0
	l.Ggsw = l.Acc + params.CiphertextSize()
	l.Mask = l.Ggsw + params.GgswSize()
	l.MaskBits = l.Mask + 1
	l.XProdInBits = l.MaskBits + field.NumBits
	l.NonPad = l.XProdInBits + field.NumBits*params.CiphertextSize()
	l.IsFirst = l.NonPad + 1
	l.IsLast = l.IsFirst + 1
	l.Width = l.IsLast + 1
	return
}

// Row is a trace row over elements of type E.
type Row[E any] struct {
	// Acc is the accumulator before the step.
	Acc glwe.Ciphertext[E]
	// Ggsw is the key of the step.
	Ggsw glwe.Ggsw[E]
	// Mask is the LWE body or mask element of the step.
	Mask E
	// MaskBits is the bit decomposition of the rotation: of -Mask on the first row, of Mask otherwise.
	MaskBits []E
	// XProdInBits is the bit decomposition of the input of the external product (K x N x 64).
	XProdInBits [][][]E
	NonPad      E
	IsFirst     E
	IsLast      E
}

// ReadRow splits a flat row into its columns. The result shares the backing array of row.
func ReadRow[E any](params Parameters, row []E) Row[E] {

	l := NewLayout(params)

	if len(row) != l.Width {
		panic(fmt.Errorf("cannot ReadRow: len(row)=%d != width=%d", len(row), l.Width))
	}

	p := params.GLWEParameters()

	bits := utils.Chunk(row[l.XProdInBits:l.NonPad], field.NumBits)

	return Row[E]{
		Acc:         glwe.CiphertextFromSlice(p, row[l.Acc:l.Ggsw]),
		Ggsw:        glwe.GgswFromSlice(p, row[l.Ggsw:l.Mask]),
		Mask:        row[l.Mask],
		MaskBits:    row[l.MaskBits:l.XProdInBits],
		XProdInBits: utils.Chunk(bits, p.N()),
		NonPad:      row[l.NonPad],
		IsFirst:     row[l.IsFirst],
		IsLast:      row[l.IsLast],
	}
}

// WriteRow flattens a row of field elements.
func WriteRow(params Parameters, row Row[field.Element]) []field.Element {

	l := NewLayout(params)

	out := make([]field.Element, 0, l.Width)
	out = append(out, row.Acc.Flatten()...)
	out = append(out, row.Ggsw.Flatten()...)
	out = append(out, row.Mask)
	out = append(out, row.MaskBits...)
	for i := range row.XProdInBits {
		out = append(out, utils.Flatten2D(row.XProdInBits[i])...)
	}
	out = append(out, row.NonPad, row.IsFirst, row.IsLast)

	if len(out) != l.Width {
		panic(fmt.Errorf("cannot WriteRow: row has %d columns but width=%d", len(out), l.Width))
	}

	return out
}
