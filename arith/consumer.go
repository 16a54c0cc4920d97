package arith

import (
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
)

// ConstraintConsumer folds constraint evaluations into one accumulator per
// challenge: for each challenge alpha, acc = acc * alpha + c.
// A set of constraints is satisfied on every lane if and only if (with
// overwhelming probability over the challenges) all accumulators are zero.
type ConstraintConsumer struct {
	width        int
	alphas       []field.Element
	accumulators []PackedElement
	count        int
}

// NewConstraintConsumer returns a consumer of packed constraints of the given width.
func NewConstraintConsumer(alphas []field.Element, width int) *ConstraintConsumer {
	if len(alphas) == 0 {
		panic(fmt.Errorf("cannot NewConstraintConsumer: no challenge"))
	}
	accumulators := make([]PackedElement, len(alphas))
	for i := range accumulators {
		accumulators[i] = make(PackedElement, width)
	}
	return &ConstraintConsumer{
		width:        width,
		alphas:       append([]field.Element{}, alphas...),
		accumulators: accumulators,
	}
}

// Constraint folds c into every accumulator.
func (cc *ConstraintConsumer) Constraint(c PackedElement) {
	if len(c) != cc.width {
		panic(fmt.Errorf("cannot Constraint: len(c)=%d != width=%d", len(c), cc.width))
	}
	for i := range cc.accumulators {
		acc := cc.accumulators[i]
		for j := range acc {
			acc[j].Mul(&acc[j], &cc.alphas[i])
			acc[j].Add(&acc[j], &c[j])
		}
	}
	cc.count++
}

// Accumulators returns the accumulators, one per challenge.
func (cc *ConstraintConsumer) Accumulators() []PackedElement {
	return cc.accumulators
}

// Count returns the number of constraints consumed.
func (cc *ConstraintConsumer) Count() int {
	return cc.count
}

// Satisfied returns true if every lane of every accumulator is zero.
func (cc *ConstraintConsumer) Satisfied() bool {
	for _, acc := range cc.accumulators {
		for j := range acc {
			if !acc[j].IsZero() {
				return false
			}
		}
	}
	return true
}
