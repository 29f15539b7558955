// Package nn implements a minimal feed-forward network on scalar autodiff values.
//
// This package provides:
//   - Module interface: base interface for layers and networks
//   - Neuron: tanh(Σ xᵢ·wᵢ + b)
//   - Layer: a row of independent neurons over the same inputs
//   - MLP: a stack of layers
//   - Loss functions: BCE, MSE
//
// Every weight and bias is an *autodiff.Value leaf, so a forward pass builds a
// computation graph and Backward on the loss fills in parameter gradients.
package nn

import (
	"math/rand"

	"github.com/born-ml/dust/internal/autodiff"
)

// Module is the base interface for network components.
type Module interface {
	// Forward computes the outputs for one input vector.
	// Panics if len(x) does not match the input width.
	Forward(x []*autodiff.Value) []*autodiff.Value

	// Parameters returns every trainable value, in a stable order.
	Parameters() []*autodiff.Value
}

// Config holds network construction options.
type Config struct {
	Seed int64      // Seed for weight initialization (used when Rand is nil)
	Rand *rand.Rand // Source for weight initialization (optional)
}

func (c Config) rng() *rand.Rand {
	if c.Rand != nil {
		return c.Rand
	}
	//nolint:gosec // Using math/rand for weight initialization (not security-critical)
	return rand.New(rand.NewSource(c.Seed))
}

// ZeroGrad resets the gradient of every parameter of m.
func ZeroGrad(m Module) {
	for _, p := range m.Parameters() {
		p.ZeroGrad()
	}
}

// NumParameters returns the number of trainable values of m.
func NumParameters(m Module) int {
	return len(m.Parameters())
}

// Inputs lifts plain numbers into leaf values for Forward.
func Inputs(xs []float64) []*autodiff.Value {
	out := make([]*autodiff.Value, len(xs))
	for i, x := range xs {
		out[i] = autodiff.Leaf(x)
	}
	return out
}

// Data extracts the scalar data of vs.
func Data(vs []*autodiff.Value) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v.Data()
	}
	return out
}
