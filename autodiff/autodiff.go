// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides scalar reverse-mode automatic differentiation.
//
// Example:
//
//	import "github.com/born-ml/dust/autodiff"
//
//	func main() {
//	    a := autodiff.Leaf(2)
//	    b := autodiff.Leaf(3)
//	    c := a.Mul(b).Add(a) // c = a*b + a
//
//	    c.Backward()
//	    fmt.Println(a.Grad(), b.Grad()) // 4 2
//	}
package autodiff

import (
	"github.com/born-ml/dust/internal/autodiff"
	"github.com/born-ml/dust/internal/autodiff/ops"
)

// Value is a scalar node of the computation graph.
type Value = autodiff.Value

// Operand is an input to a primitive: a *Value or a Const.
type Operand = autodiff.Operand

// Const is a plain numeric operand that never receives gradient.
type Const = autodiff.Const

// Kind identifies the primitive that produced a value.
type Kind = ops.Kind

// Error taxonomy.
type (
	// ConstructionError reports an input New cannot convert to a number.
	ConstructionError = autodiff.ConstructionError

	// ArithmeticTypeError reports an operand that is neither a *Value nor a number.
	ArithmeticTypeError = autodiff.ArithmeticTypeError
)

// Sentinel errors for errors.Is matching.
var (
	ErrConstruction   = autodiff.ErrConstruction
	ErrArithmeticType = autodiff.ErrArithmeticType
)

// Epsilon is the stabilizer added to the cross-entropy logarithm arguments.
const Epsilon = ops.Epsilon

// Leaf creates a value with no operands.
func Leaf(x float64) *Value {
	return autodiff.Leaf(x)
}

// New creates a leaf from a number, a numeric string or another value.
func New(x any) (*Value, error) {
	return autodiff.New(x)
}

// MustNew is like New but panics on error.
func MustNew(x any) *Value {
	return autodiff.MustNew(x)
}

// Neg returns -a.
func Neg(a any) (*Value, error) {
	return autodiff.Neg(a)
}

// Add returns a + b.
func Add(a, b any) (*Value, error) {
	return autodiff.Add(a, b)
}

// Sub returns a - b.
func Sub(a, b any) (*Value, error) {
	return autodiff.Sub(a, b)
}

// Mul returns a * b.
func Mul(a, b any) (*Value, error) {
	return autodiff.Mul(a, b)
}

// Div returns a / b.
func Div(a, b any) (*Value, error) {
	return autodiff.Div(a, b)
}

// Tanh returns tanh(a).
func Tanh(a any) (*Value, error) {
	return autodiff.Tanh(a)
}

// CrossEntropy returns the binary cross-entropy of prediction q against target p.
func CrossEntropy(p, q any) (*Value, error) {
	return autodiff.CrossEntropy(p, q)
}

// CrossEntropyOf is the typed form of CrossEntropy.
func CrossEntropyOf(p Operand, q *Value) *Value {
	return autodiff.CrossEntropyOf(p, q)
}

// Sum returns the chained sum of vs.
func Sum(vs ...*Value) *Value {
	return autodiff.Sum(vs...)
}

// TopologicalOrder returns every value reachable from root, dependency first.
func TopologicalOrder(root *Value) []*Value {
	return autodiff.TopologicalOrder(root)
}

// CheckGradient compares analytic and finite-difference gradients of f at the point at.
func CheckGradient(f func(xs []*Value) *Value, at []float64, tol float64) error {
	return autodiff.CheckGradient(f, at, tol)
}

// CompareGradients reports the first entry where analytic and numerical disagree.
func CompareGradients(analytic, numerical []float64, tol float64) error {
	return autodiff.CompareGradients(analytic, numerical, tol)
}
