// Package arith defines the field arithmetic capability through which every algorithm
// of this module is written once and evaluated in three ways: natively over field
// elements, over packed lanes feeding a constraint consumer, and as constraints of
// an arithmetic circuit (see package circuit).
package arith

// Engine is the arithmetic capability over elements of type E.
// Every operation returns a new value and never mutates its operands.
// AssertZero records the constraint that a equals zero; how it is recorded
// depends on the implementation.
type Engine[E any] interface {
	Zero() E
	One() E
	FromUint64(v uint64) E
	Add(a, b E) E
	Sub(a, b E) E
	Mul(a, b E) E
	Neg(a E) E

	// MulAdd returns a*b + c.
	MulAdd(a, b, c E) E

	AssertZero(a E)
}

// Constants returns the Elements of eng for the given canonical values.
func Constants[E any](eng Engine[E], values []uint64) (out []E) {
	out = make([]E, len(values))
	for i, v := range values {
		out[i] = eng.FromUint64(v)
	}
	return
}

// Double returns a + a.
func Double[E any](eng Engine[E], a E) E {
	return eng.Add(a, a)
}
