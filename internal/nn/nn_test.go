package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/born-ml/dust/internal/autodiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestNeuron_Forward tests tanh(Σ xᵢ·wᵢ + b) against a direct computation.
func TestNeuron_Forward(t *testing.T) {
	n := NewNeuron(3, Config{Seed: 7})
	x := []float64{0.5, -1, 2}

	want := n.Bias().Data()
	for i, w := range n.Weights() {
		want += x[i] * w.Data()
	}
	want = math.Tanh(want)

	out := n.Forward(Inputs(x))
	assert.InDelta(t, want, out.Data(), 1e-12)
}

func TestNeuron_Init(t *testing.T) {
	n := NewNeuron(100, Config{Seed: 1})

	require.Len(t, n.Parameters(), 101)
	assert.Equal(t, 0.0, n.Bias().Data())
	for _, w := range n.Weights() {
		assert.GreaterOrEqual(t, w.Data(), -1.0)
		assert.Less(t, w.Data(), 1.0)
		assert.True(t, w.IsLeaf())
	}
}

func TestNeuron_InputMismatchPanics(t *testing.T) {
	n := NewNeuron(2, Config{})
	assert.Panics(t, func() { n.Forward(Inputs([]float64{1})) })
	assert.Panics(t, func() { NewNeuron(0, Config{}) })
}

// TestNeuron_Gradients tests parameter gradients for a single neuron.
func TestNeuron_Gradients(t *testing.T) {
	n := NewNeuron(2, Config{Seed: 3})
	x := []float64{0.3, -0.7}

	out := n.Forward(Inputs(x))
	out.Backward()

	dTanh := 1 - out.Data()*out.Data()
	assert.InDelta(t, dTanh*x[0], n.Weights()[0].Grad(), 1e-12)
	assert.InDelta(t, dTanh*x[1], n.Weights()[1].Grad(), 1e-12)
	assert.InDelta(t, dTanh, n.Bias().Grad(), 1e-12)
}

func TestLayer_Shapes(t *testing.T) {
	l := NewLayer(3, 4, Config{Seed: 2})

	out := l.Forward(Inputs([]float64{1, 2, 3}))
	assert.Len(t, out, 4)
	assert.Equal(t, 4*(3+1), NumParameters(l))
	assert.Equal(t, 3, l.InFeatures())
	assert.Equal(t, 4, l.OutFeatures())
	assert.Panics(t, func() { l.Forward(Inputs([]float64{1})) })
}

// TestLayer_WeightMatrix tests the gonum export and import round trip.
func TestLayer_WeightMatrix(t *testing.T) {
	l := NewLayer(2, 3, Config{Seed: 5})

	w := l.WeightMatrix()
	r, c := w.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 2, c)
	for i, n := range l.Neurons() {
		for j, v := range n.Weights() {
			assert.Equal(t, v.Data(), w.At(i, j))
		}
	}

	newW := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	newB := mat.NewVecDense(3, []float64{-1, -2, -3})
	require.NoError(t, l.SetWeights(newW, newB))
	assert.True(t, mat.Equal(newW, l.WeightMatrix()))
	assert.True(t, mat.Equal(newB, l.BiasVector()))

	// Forward matches tanh(W·x + b).
	x := mat.NewVecDense(2, []float64{0.1, -0.2})
	var want mat.VecDense
	want.MulVec(newW, x)
	want.AddVec(&want, newB)
	out := Data(l.Forward(Inputs([]float64{0.1, -0.2})))
	for i := range out {
		assert.InDelta(t, math.Tanh(want.AtVec(i)), out[i], 1e-12)
	}

	err := l.SetWeights(mat.NewDense(2, 2, nil), newB)
	assert.ErrorContains(t, err, "weight shape mismatch")
	err = l.SetWeights(newW, mat.NewVecDense(2, nil))
	assert.ErrorContains(t, err, "bias length mismatch")
}

func TestMLP_Structure(t *testing.T) {
	m := NewMLP(3, 2, []int{4, 5}, Config{Seed: 11})

	require.Equal(t, 3, m.Depth())
	assert.Equal(t, 3, m.Layers()[0].InFeatures())
	assert.Equal(t, 4, m.Layers()[0].OutFeatures())
	assert.Equal(t, 5, m.Layers()[1].OutFeatures())
	assert.Equal(t, 2, m.Layers()[2].OutFeatures())

	want := 4*(3+1) + 5*(4+1) + 2*(5+1)
	assert.Equal(t, want, NumParameters(m))

	single := NewMLP(2, 1, nil, Config{})
	assert.Equal(t, 1, single.Depth())
}

func TestMLP_Deterministic(t *testing.T) {
	a := NewMLP(2, 1, []int{3}, Config{Seed: 9})
	b := NewMLP(2, 1, []int{3}, Config{Seed: 9})
	assert.Equal(t, Data(a.Parameters()), Data(b.Parameters()))

	c := NewMLP(2, 1, []int{3}, Config{Rand: rand.New(rand.NewSource(10))})
	assert.NotEqual(t, Data(a.Parameters()), Data(c.Parameters()))
}

func TestMLP_Predict(t *testing.T) {
	m := NewMLP(2, 2, []int{3}, Config{Seed: 4})

	x := []float64{0.5, -0.5}
	got := m.Predict(mat.NewVecDense(2, x))
	want := Data(m.Forward(Inputs(x)))

	require.Equal(t, 2, got.Len())
	assert.InDeltaSlice(t, want, got.RawVector().Data, 1e-15)
	assert.Panics(t, func() { m.Forward(Inputs([]float64{1})) })
}

// TestMLP_GradientCheck compares MLP parameter gradients with finite differences.
func TestMLP_GradientCheck(t *testing.T) {
	m := NewMLP(2, 1, []int{3}, Config{Seed: 21})
	at := Data(m.Parameters())
	x := []float64{0.4, -0.9}

	f := func(ps []*autodiff.Value) *autodiff.Value {
		clone := cloneWith(m, ps)
		return NewMSELoss().Forward(clone.Forward(Inputs(x)), []float64{0.25})
	}

	require.NoError(t, autodiff.CheckGradient(f, at, 1e-4))
}

// cloneWith returns an MLP with the structure of m whose parameters are ps.
func cloneWith(m *MLP, ps []*autodiff.Value) *MLP {
	layers := make([]*Layer, len(m.layers))
	modules := make([]Module, len(m.layers))
	k := 0
	for i, l := range m.layers {
		neurons := make([]*Neuron, len(l.neurons))
		for j, n := range l.neurons {
			weights := ps[k : k+len(n.weights)]
			k += len(n.weights)
			neurons[j] = &Neuron{weights: weights, bias: ps[k]}
			k++
		}
		layers[i] = &Layer{inFeatures: l.inFeatures, outFeatures: l.outFeatures, neurons: neurons}
		modules[i] = layers[i]
	}
	return &MLP{inFeatures: m.inFeatures, outFeatures: m.outFeatures, layers: layers, seq: NewSequential(modules...)}
}

func TestZeroGrad(t *testing.T) {
	m := NewMLP(2, 1, []int{2}, Config{Seed: 1})
	out := m.Forward(Inputs([]float64{1, 1}))
	out[0].Backward()

	nonZero := 0
	for _, p := range m.Parameters() {
		if p.Grad() != 0 {
			nonZero++
		}
	}
	require.Positive(t, nonZero)

	ZeroGrad(m)
	for _, p := range m.Parameters() {
		assert.Equal(t, 0.0, p.Grad())
	}
}

func TestMSELoss(t *testing.T) {
	preds := Inputs([]float64{1, 2, 3})
	loss := NewMSELoss().Forward(preds, []float64{1, 0, 5})

	assert.InDelta(t, (0+4+4)/3.0, loss.Data(), 1e-12)

	loss.Backward()
	assert.InDeltaSlice(t, []float64{0, 2 * 2 / 3.0, 2 * -2 / 3.0},
		[]float64{preds[0].Grad(), preds[1].Grad(), preds[2].Grad()}, 1e-12)

	assert.Panics(t, func() { NewMSELoss().Forward(preds, []float64{1}) })
	assert.Panics(t, func() { NewMSELoss().Forward(nil, nil) })
}

func TestBCELoss(t *testing.T) {
	preds := Inputs([]float64{0.5, 0.5})
	loss := NewBCELoss().Forward(preds, []float64{1, 0})

	want := (autodiff.CrossEntropyOf(autodiff.Const(1), autodiff.Leaf(0.5)).Data() +
		autodiff.CrossEntropyOf(autodiff.Const(0), autodiff.Leaf(0.5)).Data()) / 2
	assert.InDelta(t, want, loss.Data(), 1e-12)

	loss.Backward()
	assert.Less(t, preds[0].Grad(), 0.0, "raising q towards target 1 lowers the loss")
	assert.Greater(t, preds[1].Grad(), 0.0)
}

func TestProbability(t *testing.T) {
	v := autodiff.Leaf(0)
	p := Probability(v)
	assert.Equal(t, 0.5, p.Data())

	p.Backward()
	assert.Equal(t, 0.5, v.Grad())
}

func TestSequential(t *testing.T) {
	cfg := Config{Seed: 3}
	s := NewSequential(NewLayer(2, 3, cfg))
	s.Add(NewLayer(3, 1, cfg))

	require.Len(t, s.Modules(), 2)
	assert.Len(t, s.Forward(Inputs([]float64{1, 2})), 1)
	assert.Equal(t, 3*3+1*4, len(s.Parameters()))
}
