// Package autodiff implements scalar reverse-mode automatic differentiation.
//
// Every arithmetic call on a Value returns a new Value that remembers its
// operands and an operation record (see package ops). The values form a
// directed acyclic graph; Backward on the final value walks that graph in
// reverse topological order and accumulates exact gradients into every
// contributing value.
//
// Architecture:
//   - Value: scalar node with data, accumulated gradient and provenance
//   - Operand: sealed union of *Value and Const used at call boundaries
//   - ops.Record: primitive kind plus forward-time operand cache
//   - TopologicalOrder: dependency-first linearization of the graph
//   - Backward: single reverse pass distributing gradients to operands
//
// Usage:
//
//	a := autodiff.Leaf(2)
//	b := autodiff.Leaf(3)
//	c := a.Mul(b).Add(a) // c = a*b + a
//
//	c.Backward()
//	fmt.Println(a.Grad()) // dc/da = b + 1 = 4
//	fmt.Println(b.Grad()) // dc/db = a = 2
//
// Gradients accumulate: call ZeroGrad on the leaves before the next backward
// pass. Values are not safe for concurrent use.
package autodiff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/dust/internal/autodiff/ops"
	"github.com/pkg/errors"
)

// Value is a scalar node in the computation graph.
type Value struct {
	data     float64
	grad     float64
	operands []term      // Own slice per node, never shared
	op       *ops.Record // nil for leaves
}

// Leaf creates a value with no operands (an input or a parameter).
func Leaf(x float64) *Value {
	return &Value{data: x}
}

// New creates a leaf value from x.
//
// Accepted inputs:
//   - any Go integer or floating-point type (converted to float64)
//   - a Const
//   - a numeric string such as "3" or " -1.5e2 " (out-of-range strings
//     such as "1e400" become ±Inf)
//   - a *Value, whose data is copied into a fresh leaf
//
// Anything else returns a *ConstructionError.
func New(x any) (*Value, error) {
	switch x := x.(type) {
	case *Value:
		if x == nil {
			return nil, &ConstructionError{Input: x}
		}
		return Leaf(x.data), nil
	case Const:
		return Leaf(float64(x)), nil
	case string:
		// Out-of-range input parses to ±Inf with ErrRange; keep the infinity.
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, &ConstructionError{Input: x, Err: errors.Wrapf(err, "parse %q", x)}
		}
		return Leaf(f), nil
	}
	if f, ok := numeric(x); ok {
		return Leaf(f), nil
	}
	return nil, &ConstructionError{Input: x}
}

// MustNew is like New but panics on error.
func MustNew(x any) *Value {
	v, err := New(x)
	if err != nil {
		panic(err)
	}
	return v
}

// Data returns the scalar value.
func (v *Value) Data() float64 {
	return v.data
}

// SetData overwrites the scalar value.
//
// Intended for parameter updates between backward passes. Operation records
// of values already computed from v keep the old value.
func (v *Value) SetData(x float64) {
	v.data = x
}

// Grad returns the gradient accumulated by backward passes.
func (v *Value) Grad() float64 {
	return v.grad
}

// ZeroGrad resets the accumulated gradient to zero.
func (v *Value) ZeroGrad() {
	v.grad = 0
}

// IsLeaf reports whether v has no operation record.
func (v *Value) IsLeaf() bool {
	return v.op == nil
}

// Op returns the primitive that produced v, or ops.KindInvalid for leaves.
func (v *Value) Op() ops.Kind {
	if v.op == nil {
		return ops.KindInvalid
	}
	return v.op.Kind()
}

// Operands returns the operands v was computed from, in order.
// Constant operands are returned as Const.
func (v *Value) Operands() []Operand {
	out := make([]Operand, len(v.operands))
	for i, t := range v.operands {
		if t.node != nil {
			out[i] = t.node
		} else {
			out[i] = Const(t.constant)
		}
	}
	return out
}

// String implements fmt.Stringer.
func (v *Value) String() string {
	return fmt.Sprintf("Value(data=%v)", v.data)
}
