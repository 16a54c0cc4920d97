package arith

import (
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
)

// Native is the Engine over field elements.
// A failed AssertZero does not abort the computation: it is counted and can be
// queried with Violations, so that witness generation and constraint checking
// can share the same code path.
// Native is not safe for concurrent use.
type Native struct {
	violations int
}

// NewNative returns a new Native engine.
func NewNative() *Native {
	return &Native{}
}

func (n *Native) Zero() field.Element {
	return field.Element{}
}

func (n *Native) One() (r field.Element) {
	r.SetOne()
	return
}

func (n *Native) FromUint64(v uint64) field.Element {
	return field.NewElement(v)
}

func (n *Native) Add(a, b field.Element) (r field.Element) {
	r.Add(&a, &b)
	return
}

func (n *Native) Sub(a, b field.Element) (r field.Element) {
	r.Sub(&a, &b)
	return
}

func (n *Native) Mul(a, b field.Element) (r field.Element) {
	r.Mul(&a, &b)
	return
}

func (n *Native) Neg(a field.Element) (r field.Element) {
	r.Neg(&a)
	return
}

func (n *Native) MulAdd(a, b, c field.Element) (r field.Element) {
	r.Mul(&a, &b)
	r.Add(&r, &c)
	return
}

func (n *Native) AssertZero(a field.Element) {
	if !a.IsZero() {
		n.violations++
	}
}

// Violations returns the number of failed AssertZero since the last Reset.
func (n *Native) Violations() int {
	return n.violations
}

// Reset clears the violation counter.
func (n *Native) Reset() {
	n.violations = 0
}
