package ring

import (
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/arith"
)

// Forward returns the negacyclic NTT of p1 (Cooley-Tukey, natural order input,
// bit-reversed order output). The input is not modified.
// Point-wise multiplication of two transforms corresponds to multiplication
// in Z_p[X]/(X^N + 1).
func Forward[E any](eng arith.Engine[E], params Parameters, p1 []E) (p2 []E) {

	N := params.N()

	if len(p1) != N {
		panic(fmt.Errorf("cannot NTT: len(p1)=%d != N=%d", len(p1), N))
	}

	p2 = append([]E{}, p1...)

	roots := arith.Constants(eng, params.rootsForward)

	t := N
	for m := 1; m < N; m <<= 1 {
		t >>= 1
		for i := 0; i < m; i++ {
			j1 := 2 * i * t
			S := roots[m+i]
			for j := j1; j < j1+t; j++ {
				U := p2[j]
				V := eng.Mul(p2[j+t], S)
				p2[j] = eng.Add(U, V)
				p2[j+t] = eng.Sub(U, V)
			}
		}
	}

	return
}

// Backward returns the inverse negacyclic NTT of p1 (Gentleman-Sande, bit-reversed
// order input, natural order output), including the final scaling by N^-1.
// The input is not modified.
func Backward[E any](eng arith.Engine[E], params Parameters, p1 []E) (p2 []E) {

	N := params.N()

	if len(p1) != N {
		panic(fmt.Errorf("cannot INTT: len(p1)=%d != N=%d", len(p1), N))
	}

	p2 = append([]E{}, p1...)

	roots := arith.Constants(eng, params.rootsBackward)

	t := 1
	for m := N >> 1; m >= 1; m >>= 1 {
		j1 := 0
		for i := 0; i < m; i++ {
			S := roots[m+i]
			for j := j1; j < j1+t; j++ {
				U := p2[j]
				V := p2[j+t]
				p2[j] = eng.Add(U, V)
				p2[j+t] = eng.Mul(eng.Sub(U, V), S)
			}
			j1 += 2 * t
		}
		t <<= 1
	}

	NInv := eng.FromUint64(params.nInv)
	for i := range p2 {
		p2[i] = eng.Mul(p2[i], NInv)
	}

	return
}
