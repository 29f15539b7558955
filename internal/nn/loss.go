package nn

import (
	"fmt"

	"github.com/born-ml/dust/internal/autodiff"
)

// Loss reduces predictions and targets to a scalar value.
type Loss interface {
	Forward(predictions []*autodiff.Value, targets []float64) *autodiff.Value
}

// MSELoss computes Mean Squared Error loss.
//
// Loss = mean((predictions - targets)²)
type MSELoss struct{}

// NewMSELoss creates a new MSE loss function.
func NewMSELoss() *MSELoss {
	return &MSELoss{}
}

// Forward computes the MSE loss.
func (MSELoss) Forward(predictions []*autodiff.Value, targets []float64) *autodiff.Value {
	checkLengths("MSELoss", predictions, targets)

	terms := make([]*autodiff.Value, len(predictions))
	for i, p := range predictions {
		diff := p.Sub(autodiff.Const(targets[i]))
		terms[i] = diff.Mul(diff)
	}
	return autodiff.Sum(terms...).Div(autodiff.Const(float64(len(terms))))
}

// BCELoss computes the mean binary cross-entropy of predictions against
// targets (see autodiff.CrossEntropyOf).
//
// Predictions are expected in [0, 1]; map tanh outputs with Probability first.
type BCELoss struct{}

// NewBCELoss creates a new binary cross-entropy loss function.
func NewBCELoss() *BCELoss {
	return &BCELoss{}
}

// Forward computes the BCE loss.
func (BCELoss) Forward(predictions []*autodiff.Value, targets []float64) *autodiff.Value {
	checkLengths("BCELoss", predictions, targets)

	terms := make([]*autodiff.Value, len(predictions))
	for i, p := range predictions {
		terms[i] = autodiff.CrossEntropyOf(autodiff.Const(targets[i]), p)
	}
	return autodiff.Sum(terms...).Div(autodiff.Const(float64(len(terms))))
}

// Probability maps a tanh output in (-1, 1) to (0, 1): (v + 1) / 2.
func Probability(v *autodiff.Value) *autodiff.Value {
	return v.Add(autodiff.Const(1)).Mul(autodiff.Const(0.5))
}

func checkLengths(name string, predictions []*autodiff.Value, targets []float64) {
	if len(predictions) == 0 || len(predictions) != len(targets) {
		panic(fmt.Sprintf("%s: got %d predictions for %d targets", name, len(predictions), len(targets)))
	}
}
