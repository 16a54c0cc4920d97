package ring

import (
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/arith"
)

func checkLen(op string, a, b int) {
	if a != b {
		panic(fmt.Errorf("cannot %s: length mismatch %d != %d", op, a, b))
	}
}

// VecAdd returns the element-wise sum of a and b.
func VecAdd[E any](eng arith.Engine[E], a, b []E) (out []E) {
	checkLen("VecAdd", len(a), len(b))
	out = make([]E, len(a))
	for i := range a {
		out[i] = eng.Add(a[i], b[i])
	}
	return
}

// VecSub returns the element-wise difference a - b.
func VecSub[E any](eng arith.Engine[E], a, b []E) (out []E) {
	checkLen("VecSub", len(a), len(b))
	out = make([]E, len(a))
	for i := range a {
		out[i] = eng.Sub(a[i], b[i])
	}
	return
}

// VecNeg returns the element-wise negation of a.
func VecNeg[E any](eng arith.Engine[E], a []E) (out []E) {
	out = make([]E, len(a))
	for i := range a {
		out[i] = eng.Neg(a[i])
	}
	return
}

// VecMul returns the element-wise product of a and b.
func VecMul[E any](eng arith.Engine[E], a, b []E) (out []E) {
	checkLen("VecMul", len(a), len(b))
	out = make([]E, len(a))
	for i := range a {
		out[i] = eng.Mul(a[i], b[i])
	}
	return
}

// VecMulAdd returns the element-wise a*b + c.
func VecMulAdd[E any](eng arith.Engine[E], a, b, c []E) (out []E) {
	checkLen("VecMulAdd", len(a), len(b))
	checkLen("VecMulAdd", len(a), len(c))
	out = make([]E, len(a))
	for i := range a {
		out[i] = eng.MulAdd(a[i], b[i], c[i])
	}
	return
}

// VecScale returns s * a.
func VecScale[E any](eng arith.Engine[E], s E, a []E) (out []E) {
	out = make([]E, len(a))
	for i := range a {
		out[i] = eng.Mul(s, a[i])
	}
	return
}

// VecAddMany returns the element-wise sum of vectors of length n,
// folded from the zero vector. An empty list yields the zero vector.
func VecAddMany[E any](eng arith.Engine[E], n int, vectors [][]E) (out []E) {
	out = make([]E, n)
	for i := range out {
		out[i] = eng.Zero()
	}
	for _, v := range vectors {
		out = VecAdd(eng, out, v)
	}
	return
}

// VecInnerProduct returns sum a[i] (*) b[i], where (*) is the element-wise
// product of vectors of length n, folded with MulAdd from the zero vector.
// It panics if a and b do not have the same number of vectors.
func VecInnerProduct[E any](eng arith.Engine[E], n int, a, b [][]E) (out []E) {
	checkLen("VecInnerProduct", len(a), len(b))
	out = make([]E, n)
	for i := range out {
		out[i] = eng.Zero()
	}
	for i := range a {
		out = VecMulAdd(eng, a[i], b[i], out)
	}
	return
}
