package autodiff

import "fmt"

// Operand is an input to a primitive: either a *Value or a Const.
//
// The set of implementations is closed. Constants take part in the forward
// computation but never receive gradient.
type Operand interface {
	asTerm() term
}

// Const is a plain numeric constant used as an operand.
type Const float64

func (c Const) asTerm() term {
	return term{constant: float64(c)}
}

func (v *Value) asTerm() term {
	if v == nil {
		panic("autodiff: nil *Value used as operand")
	}
	return term{node: v}
}

// term is the resolved operand stored on a node.
// Exactly one variant is meaningful: node when non-nil, constant otherwise.
type term struct {
	node     *Value
	constant float64
}

func (t term) value() float64 {
	if t.node != nil {
		return t.node.data
	}
	return t.constant
}

// resolve converts a dynamically typed operand into a term.
func resolve(x any) (term, bool) {
	switch x := x.(type) {
	case *Value:
		if x == nil {
			return term{}, false
		}
		return term{node: x}, true
	case Const:
		return x.asTerm(), true
	}
	if f, ok := numeric(x); ok {
		return term{constant: f}, true
	}
	return term{}, false
}

// numeric converts Go integer and floating-point kinds to float64.
func numeric(x any) (float64, bool) {
	switch x := x.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	default:
		return 0, false
	}
}

func typeName(x any) string {
	if x == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", x)
}
