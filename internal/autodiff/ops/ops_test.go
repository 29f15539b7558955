package ops_test

import (
	"math"
	"testing"

	"github.com/born-ml/dust/internal/autodiff/ops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecord_Backward checks every local-gradient rule against its closed form.
func TestRecord_Backward(t *testing.T) {
	const upstream = 2.0

	tests := []struct {
		name   string
		record *ops.Record
		want   []float64
	}{
		{"neg", ops.NewNegRecord(), []float64{-2}},
		{"add", ops.NewAddRecord(), []float64{2, 2}},
		{"sub", ops.NewSubRecord(), []float64{2, -2}},
		{"mul", ops.NewMulRecord(3, 5), []float64{2 * 5, 2 * 3}},
		{"div", ops.NewDivRecord(3, 4), []float64{2.0 / 4, -2.0 * 3 / 16}},
		{"tanh", ops.NewTanhRecord(0.5), []float64{2 * (1 - 0.25)}},
		{"cross_entropy", ops.NewCrossEntropyRecord(1, 0.5), []float64{2 * -0.5 / (0.5 + ops.Epsilon)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.record.Backward(upstream)
			require.Len(t, got, tt.record.Kind().Arity())
			assert.InDeltaSlice(t, tt.want, got, 1e-12)
		})
	}
}

// TestRecord_CachedValues verifies the record keeps the construction-time values.
func TestRecord_CachedValues(t *testing.T) {
	r := ops.NewDivRecord(3, 4)

	assert.Equal(t, [2]float64{3, 4}, r.Cache())
	assert.InDeltaSlice(t, []float64{0.25, -3.0 / 16}, r.Backward(1), 1e-12)
}

// TestRecord_InvalidKindPanics tests that a zero record is treated as fatal.
func TestRecord_InvalidKindPanics(t *testing.T) {
	var r ops.Record
	assert.Panics(t, func() { r.Backward(1) })
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "mul", ops.KindMul.String())
	assert.Equal(t, "cross_entropy", ops.KindCrossEntropy.String())
	assert.Equal(t, "Kind(42)", ops.Kind(42).String())
}

func TestKind_Arity(t *testing.T) {
	assert.Equal(t, 1, ops.KindNeg.Arity())
	assert.Equal(t, 2, ops.KindDiv.Arity())
	assert.Equal(t, 1, ops.KindCrossEntropy.Arity())
	assert.Equal(t, 0, ops.KindInvalid.Arity())
}

// TestCrossEntropy_Values tests forward values and the gradient closed form.
func TestCrossEntropy_Values(t *testing.T) {
	// p=1, q=0.5: -0.5·log2(0.5001) ≈ 0.5
	assert.InDelta(t, 0.5, ops.CrossEntropy(1, 0.5), 1e-3)
	assert.InDelta(t, -0.5*math.Log2(0.5+ops.Epsilon), ops.CrossEntropy(1, 0.5), 1e-15)

	// Perfect prediction stays finite thanks to the stabilizer.
	assert.False(t, math.IsInf(ops.CrossEntropy(0, 1), 0))
	assert.False(t, math.IsInf(ops.CrossEntropyGrad(1, 0), 0))

	// Symmetric targets give opposite gradients at q=0.5.
	assert.InDelta(t, -ops.CrossEntropyGrad(1, 0.5), ops.CrossEntropyGrad(0, 0.5), 1e-12)
}
