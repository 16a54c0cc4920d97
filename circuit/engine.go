// Package circuit implements arith.Engine as constraints of a gnark arithmetic
// circuit, emulating the Goldilocks field over the native field of the proof system.
package circuit

import (
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/emulated"
	"github.com/consensys/gnark/std/math/emulated/emparams"
)

// Element is a Goldilocks field element inside a circuit.
type Element = *emulated.Element[emparams.Goldilocks]

// Variable is the type of circuit inputs holding Goldilocks field elements.
type Variable = emulated.Element[emparams.Goldilocks]

// Engine is the arith.Engine over circuit variables. AssertZero emits an
// equality constraint.
type Engine struct {
	f *emulated.Field[emparams.Goldilocks]
}

// NewEngine returns a new Engine emitting constraints through api.
func NewEngine(api frontend.API) (*Engine, error) {
	f, err := emulated.NewField[emparams.Goldilocks](api)
	if err != nil {
		return nil, fmt.Errorf("emulated.NewField: %w", err)
	}
	return &Engine{f: f}, nil
}

func (e *Engine) Zero() Element {
	return e.f.Zero()
}

func (e *Engine) One() Element {
	return e.f.One()
}

func (e *Engine) FromUint64(v uint64) Element {
	c := emulated.ValueOf[emparams.Goldilocks](v)
	return &c
}

func (e *Engine) Add(a, b Element) Element {
	return e.f.Add(a, b)
}

func (e *Engine) Sub(a, b Element) Element {
	return e.f.Sub(a, b)
}

func (e *Engine) Mul(a, b Element) Element {
	return e.f.Mul(a, b)
}

func (e *Engine) Neg(a Element) Element {
	return e.f.Neg(a)
}

func (e *Engine) MulAdd(a, b, c Element) Element {
	return e.f.Add(e.f.Mul(a, b), c)
}

func (e *Engine) AssertZero(a Element) {
	e.f.AssertIsEqual(a, e.f.Zero())
}

// AssertIsEqual constrains a and b to be equal.
func (e *Engine) AssertIsEqual(a, b Element) {
	e.f.AssertIsEqual(a, b)
}

// ValueOf returns the witness assignment of a field element.
func ValueOf(x field.Element) Variable {
	return emulated.ValueOf[emparams.Goldilocks](x.Uint64())
}

// ValuesOf returns the witness assignments of field elements.
func ValuesOf(xs []field.Element) []Variable {
	out := make([]Variable, len(xs))
	for i := range xs {
		out[i] = ValueOf(xs[i])
	}
	return out
}

// Refs returns pointers to the variables, to be used as engine elements.
func Refs(vs []Variable) []Element {
	out := make([]Element, len(vs))
	for i := range vs {
		out[i] = &vs[i]
	}
	return out
}
