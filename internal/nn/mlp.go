package nn

import (
	"fmt"

	"github.com/born-ml/dust/internal/autodiff"
	"gonum.org/v1/gonum/mat"
)

// MLP is a multi-layer perceptron of tanh layers.
//
// The layer widths are inFeatures → hidden[0] → … → hidden[n-1] → outFeatures.
// With no hidden widths the network is a single layer.
//
// Example:
//
//	model := nn.NewMLP(2, 1, []int{4, 4}, nn.Config{Seed: 42})
//	out := model.Forward(nn.Inputs([]float64{0, 1}))
//	loss := nn.NewMSELoss().Forward(out, []float64{1})
//	loss.Backward()
type MLP struct {
	inFeatures  int
	outFeatures int
	layers      []*Layer
	seq         *Sequential
}

// NewMLP creates a new MLP.
func NewMLP(inFeatures, outFeatures int, hidden []int, config Config) *MLP {
	widths := make([]int, 0, len(hidden)+2)
	widths = append(widths, inFeatures)
	widths = append(widths, hidden...)
	widths = append(widths, outFeatures)

	r := config.rng()
	layers := make([]*Layer, len(widths)-1)
	modules := make([]Module, len(layers))
	for i := range layers {
		layers[i] = newLayer(widths[i], widths[i+1], r)
		modules[i] = layers[i]
	}

	return &MLP{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		layers:      layers,
		seq:         NewSequential(modules...),
	}
}

// Forward runs x through every layer.
func (m *MLP) Forward(x []*autodiff.Value) []*autodiff.Value {
	if len(x) != m.inFeatures {
		panic(fmt.Sprintf("nn: mlp expects %d inputs, got %d", m.inFeatures, len(x)))
	}
	return m.seq.Forward(x)
}

// Parameters returns every parameter, layer by layer.
func (m *MLP) Parameters() []*autodiff.Value {
	return m.seq.Parameters()
}

// Layers returns the layers of the network.
func (m *MLP) Layers() []*Layer {
	return m.layers
}

// Depth returns the number of layers.
func (m *MLP) Depth() int {
	return len(m.layers)
}

// Predict runs an inference pass on x and returns the outputs.
// The graph built for the pass is discarded.
func (m *MLP) Predict(x mat.Vector) *mat.VecDense {
	in := make([]float64, x.Len())
	for i := range in {
		in[i] = x.AtVec(i)
	}
	return mat.NewVecDense(m.outFeatures, Data(m.Forward(Inputs(in))))
}
