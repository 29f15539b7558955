// Package ops defines the operation records attached to autodiff values.
//
// A Record identifies the primitive that produced a value and caches the
// operand values its local gradients depend on. The values are captured when
// the record is created: operands may be mutated later (for example by an
// optimizer step), and the gradient formulas must use the forward-time values.
//
// Supported primitives:
//   - Neg: -a (d/da = -1)
//   - Add: a + b (d/da = 1, d/db = 1)
//   - Sub: a - b (d/da = 1, d/db = -1)
//   - Mul: a * b (d/da = b, d/db = a)
//   - Div: a / b (d/da = 1/b, d/db = -a/b²)
//   - Tanh: tanh(a) (d/da = 1 - tanh²(a))
//   - CrossEntropy: binary cross-entropy of p against q (gradient w.r.t. q only)
package ops

import "fmt"

// Kind identifies a differentiable primitive.
type Kind uint8

// Primitive kinds.
const (
	KindInvalid Kind = iota
	KindNeg
	KindAdd
	KindSub
	KindMul
	KindDiv
	KindTanh
	KindCrossEntropy
)

var kindNames = [...]string{
	KindInvalid:      "invalid",
	KindNeg:          "neg",
	KindAdd:          "add",
	KindSub:          "sub",
	KindMul:          "mul",
	KindDiv:          "div",
	KindTanh:         "tanh",
	KindCrossEntropy: "cross_entropy",
}

// String returns the lowercase name of the primitive.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Arity returns the number of operands a value produced by k carries.
// Cross entropy has one: only the prediction q is an operand.
func (k Kind) Arity() int {
	switch k {
	case KindNeg, KindTanh, KindCrossEntropy:
		return 1
	case KindAdd, KindSub, KindMul, KindDiv:
		return 2
	default:
		return 0
	}
}

// Record is the operation record of a non-leaf value.
type Record struct {
	kind  Kind
	cache [2]float64
}

// NewNegRecord creates the record for -a.
func NewNegRecord() *Record { return &Record{kind: KindNeg} }

// NewAddRecord creates the record for a + b.
func NewAddRecord() *Record { return &Record{kind: KindAdd} }

// NewSubRecord creates the record for a - b.
func NewSubRecord() *Record { return &Record{kind: KindSub} }

// NewMulRecord creates the record for a * b, caching both operand values.
func NewMulRecord(a, b float64) *Record {
	return &Record{kind: KindMul, cache: [2]float64{a, b}}
}

// NewDivRecord creates the record for a / b, caching both operand values.
func NewDivRecord(a, b float64) *Record {
	return &Record{kind: KindDiv, cache: [2]float64{a, b}}
}

// NewTanhRecord creates the record for tanh(a).
// It caches the forward output, not the input: d/da = 1 - out².
func NewTanhRecord(out float64) *Record {
	return &Record{kind: KindTanh, cache: [2]float64{out}}
}

// NewCrossEntropyRecord creates the record for cross_entropy(p, q).
func NewCrossEntropyRecord(p, q float64) *Record {
	return &Record{kind: KindCrossEntropy, cache: [2]float64{p, q}}
}

// Kind returns the primitive that produced the value.
func (r *Record) Kind() Kind {
	return r.kind
}

// Cache returns the operand values captured at construction time.
func (r *Record) Cache() [2]float64 {
	return r.cache
}

// Backward computes the gradient contribution for each operand given the
// upstream gradient of the value this record belongs to.
//
// The returned slice has Arity() entries, in operand order. An invalid kind is
// an internal consistency failure and panics.
func (r *Record) Backward(grad float64) []float64 {
	c := r.cache
	switch r.kind {
	case KindNeg:
		return []float64{-grad}
	case KindAdd:
		return []float64{grad, grad}
	case KindSub:
		return []float64{grad, -grad}
	case KindMul:
		return []float64{grad * c[1], grad * c[0]}
	case KindDiv:
		return []float64{grad / c[1], -grad * c[0] / (c[1] * c[1])}
	case KindTanh:
		return []float64{grad * (1 - c[0]*c[0])}
	case KindCrossEntropy:
		return []float64{grad * CrossEntropyGrad(c[0], c[1])}
	default:
		panic(fmt.Sprintf("ops: backward on record with %v kind", r.kind))
	}
}
