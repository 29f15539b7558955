package autodiff

import (
	"math"

	"github.com/born-ml/dust/internal/autodiff/ops"
)

// newValue creates a non-leaf value. The variadic slice is fresh for every
// call, so no two nodes share operand storage.
func newValue(data float64, op *ops.Record, operands ...term) *Value {
	return &Value{data: data, op: op, operands: operands}
}

// binary applies a two-operand primitive. At least one operand must be a node.
func binary(kind ops.Kind, a, b term) *Value {
	av, bv := a.value(), b.value()
	switch kind {
	case ops.KindAdd:
		return newValue(av+bv, ops.NewAddRecord(), a, b)
	case ops.KindSub:
		return newValue(av-bv, ops.NewSubRecord(), a, b)
	case ops.KindMul:
		return newValue(av*bv, ops.NewMulRecord(av, bv), a, b)
	case ops.KindDiv:
		// IEEE-754: x/0 is ±Inf, 0/0 is NaN.
		return newValue(av/bv, ops.NewDivRecord(av, bv), a, b)
	default:
		panic("autodiff: " + kind.String() + " is not a binary primitive")
	}
}

// Neg returns -v.
func (v *Value) Neg() *Value {
	return newValue(-v.data, ops.NewNegRecord(), v.asTerm())
}

// Add returns v + o.
func (v *Value) Add(o Operand) *Value {
	return binary(ops.KindAdd, v.asTerm(), operandTerm(o))
}

// Sub returns v - o.
func (v *Value) Sub(o Operand) *Value {
	return binary(ops.KindSub, v.asTerm(), operandTerm(o))
}

// Mul returns v * o.
func (v *Value) Mul(o Operand) *Value {
	return binary(ops.KindMul, v.asTerm(), operandTerm(o))
}

// Div returns v / o. Division by zero follows floating-point semantics.
func (v *Value) Div(o Operand) *Value {
	return binary(ops.KindDiv, v.asTerm(), operandTerm(o))
}

// Tanh returns the hyperbolic tangent of v.
func (v *Value) Tanh() *Value {
	out := math.Tanh(v.data)
	return newValue(out, ops.NewTanhRecord(out), v.asTerm())
}

// CrossEntropyOf returns the binary cross-entropy of prediction q against
// target p (see ops.CrossEntropy).
//
// Only q is recorded as an operand: p is treated as a constant target even
// when it is a *Value, and never receives gradient.
func CrossEntropyOf(p Operand, q *Value) *Value {
	pv := operandTerm(p).value()
	qt := q.asTerm()
	return newValue(ops.CrossEntropy(pv, qt.value()), ops.NewCrossEntropyRecord(pv, qt.value()), qt)
}

// Sum returns the chained sum of vs. An empty sum is a zero leaf.
func Sum(vs ...*Value) *Value {
	if len(vs) == 0 {
		return Leaf(0)
	}
	out := vs[0]
	for _, v := range vs[1:] {
		out = out.Add(v)
	}
	return out
}

func operandTerm(o Operand) term {
	if o == nil {
		panic("autodiff: nil operand")
	}
	return o.asTerm()
}

// Neg returns -a for a *Value or a plain number.
// A number yields a leaf holding its negation.
func Neg(a any) (*Value, error) {
	t, ok := resolve(a)
	if !ok {
		return nil, &ArithmeticTypeError{Op: ops.KindNeg.String(), Left: typeName(a)}
	}
	if t.node == nil {
		return Leaf(-t.constant), nil
	}
	return t.node.Neg(), nil
}

// Add returns a + b. See Sub for the accepted operand types.
func Add(a, b any) (*Value, error) {
	return binaryAny(ops.KindAdd, a, b)
}

// Sub returns a - b.
//
// Each operand may be a *Value, a Const or any Go integer or floating-point
// number, and at least one must be a *Value. Otherwise Sub returns an
// *ArithmeticTypeError naming both operand types.
func Sub(a, b any) (*Value, error) {
	return binaryAny(ops.KindSub, a, b)
}

// Mul returns a * b. See Sub for the accepted operand types.
func Mul(a, b any) (*Value, error) {
	return binaryAny(ops.KindMul, a, b)
}

// Div returns a / b. See Sub for the accepted operand types.
func Div(a, b any) (*Value, error) {
	return binaryAny(ops.KindDiv, a, b)
}

func binaryAny(kind ops.Kind, a, b any) (*Value, error) {
	ta, okA := resolve(a)
	tb, okB := resolve(b)
	if !okA || !okB || (ta.node == nil && tb.node == nil) {
		return nil, &ArithmeticTypeError{Op: kind.String(), Left: typeName(a), Right: typeName(b)}
	}
	return binary(kind, ta, tb), nil
}

// Tanh returns tanh(a) for a *Value or a plain number.
// A number yields a leaf holding its hyperbolic tangent.
func Tanh(a any) (*Value, error) {
	t, ok := resolve(a)
	if !ok {
		return nil, &ArithmeticTypeError{Op: ops.KindTanh.String(), Left: typeName(a)}
	}
	if t.node == nil {
		return Leaf(math.Tanh(t.constant)), nil
	}
	return t.node.Tanh(), nil
}

// CrossEntropy returns the binary cross-entropy of prediction q against
// target p. The target may be a *Value or a plain number; the prediction must
// be a *Value.
func CrossEntropy(p, q any) (*Value, error) {
	tp, okP := resolve(p)
	tq, okQ := resolve(q)
	if !okP || !okQ || tq.node == nil {
		return nil, &ArithmeticTypeError{Op: ops.KindCrossEntropy.String(), Left: typeName(p), Right: typeName(q)}
	}
	return CrossEntropyOf(Const(tp.value()), tq.node), nil
}
