package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/dust/internal/autodiff"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Layer is a fully connected layer of tanh neurons.
//
// Every neuron sees the whole input vector, so the layer maps
// inFeatures inputs to outFeatures outputs.
//
// Example:
//
//	layer := nn.NewLayer(3, 4, nn.Config{Seed: 1})
//	out := layer.Forward(nn.Inputs([]float64{1, 2, 3})) // 4 values
type Layer struct {
	inFeatures  int
	outFeatures int
	neurons     []*Neuron
}

// NewLayer creates a layer with outFeatures neurons of inFeatures inputs each.
func NewLayer(inFeatures, outFeatures int, config Config) *Layer {
	return newLayer(inFeatures, outFeatures, config.rng())
}

func newLayer(inFeatures, outFeatures int, r *rand.Rand) *Layer {
	if outFeatures <= 0 {
		panic(fmt.Sprintf("nn: layer needs at least one neuron, got %d", outFeatures))
	}
	neurons := make([]*Neuron, outFeatures)
	for i := range neurons {
		neurons[i] = newNeuron(inFeatures, r)
	}
	return &Layer{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		neurons:     neurons,
	}
}

// Forward computes every neuron on x.
func (l *Layer) Forward(x []*autodiff.Value) []*autodiff.Value {
	if len(x) != l.inFeatures {
		panic(fmt.Sprintf("nn: layer expects %d inputs, got %d", l.inFeatures, len(x)))
	}
	out := make([]*autodiff.Value, len(l.neurons))
	for i, n := range l.neurons {
		out[i] = n.Forward(x)
	}
	return out
}

// Parameters returns the parameters of every neuron, neuron by neuron.
func (l *Layer) Parameters() []*autodiff.Value {
	params := make([]*autodiff.Value, 0, l.outFeatures*(l.inFeatures+1))
	for _, n := range l.neurons {
		params = append(params, n.Parameters()...)
	}
	return params
}

// Neurons returns the neurons of the layer.
func (l *Layer) Neurons() []*Neuron {
	return l.neurons
}

// InFeatures returns the input width.
func (l *Layer) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the output width.
func (l *Layer) OutFeatures() int {
	return l.outFeatures
}

// WeightMatrix returns a snapshot of the weights as an
// [outFeatures × inFeatures] matrix.
func (l *Layer) WeightMatrix() *mat.Dense {
	w := mat.NewDense(l.outFeatures, l.inFeatures, nil)
	for i, n := range l.neurons {
		for j, v := range n.weights {
			w.Set(i, j, v.Data())
		}
	}
	return w
}

// BiasVector returns a snapshot of the biases.
func (l *Layer) BiasVector() *mat.VecDense {
	b := mat.NewVecDense(l.outFeatures, nil)
	for i, n := range l.neurons {
		b.SetVec(i, n.bias.Data())
	}
	return b
}

// SetWeights copies w and b into the layer parameters.
// The dimensions must match the layer.
func (l *Layer) SetWeights(w mat.Matrix, b mat.Vector) error {
	r, c := w.Dims()
	if r != l.outFeatures || c != l.inFeatures {
		return errors.Errorf("weight shape mismatch: expected %dx%d, got %dx%d",
			l.outFeatures, l.inFeatures, r, c)
	}
	if b.Len() != l.outFeatures {
		return errors.Errorf("bias length mismatch: expected %d, got %d", l.outFeatures, b.Len())
	}
	for i, n := range l.neurons {
		for j, v := range n.weights {
			v.SetData(w.At(i, j))
		}
		n.bias.SetData(b.AtVec(i))
	}
	return nil
}
