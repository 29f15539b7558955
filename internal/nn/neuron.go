package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/dust/internal/autodiff"
)

// Neuron computes tanh(Σ xᵢ·wᵢ + b).
//
// Weights are initialized uniformly in [-1, 1), the bias to zero.
type Neuron struct {
	weights []*autodiff.Value
	bias    *autodiff.Value
}

// NewNeuron creates a neuron with inFeatures weights.
func NewNeuron(inFeatures int, config Config) *Neuron {
	return newNeuron(inFeatures, config.rng())
}

func newNeuron(inFeatures int, r *rand.Rand) *Neuron {
	if inFeatures <= 0 {
		panic(fmt.Sprintf("nn: neuron needs at least one input, got %d", inFeatures))
	}
	return &Neuron{
		weights: Uniform(inFeatures, r),
		bias:    autodiff.Leaf(0),
	}
}

// Forward computes the activation for one input vector.
func (n *Neuron) Forward(x []*autodiff.Value) *autodiff.Value {
	if len(x) != len(n.weights) {
		panic(fmt.Sprintf("nn: neuron expects %d inputs, got %d", len(n.weights), len(x)))
	}

	terms := make([]*autodiff.Value, len(x))
	for i := range x {
		terms[i] = x[i].Mul(n.weights[i])
	}
	return autodiff.Sum(terms...).Add(n.bias).Tanh()
}

// Weights returns the weight values.
func (n *Neuron) Weights() []*autodiff.Value {
	return n.weights
}

// Bias returns the bias value.
func (n *Neuron) Bias() *autodiff.Value {
	return n.bias
}

// Parameters returns the weights followed by the bias.
func (n *Neuron) Parameters() []*autodiff.Value {
	params := make([]*autodiff.Value, 0, len(n.weights)+1)
	params = append(params, n.weights...)
	return append(params, n.bias)
}
