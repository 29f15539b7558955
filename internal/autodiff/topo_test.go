package autodiff_test

import (
	"testing"

	"github.com/born-ml/dust/internal/autodiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertDependencyFirst checks every operand precedes its consumer and
// every value appears once.
func assertDependencyFirst(t *testing.T, order []*autodiff.Value) {
	t.Helper()

	pos := make(map[*autodiff.Value]int, len(order))
	for i, v := range order {
		_, dup := pos[v]
		require.False(t, dup, "value %v appears twice", v)
		pos[v] = i
	}

	for i, v := range order {
		for _, o := range v.Operands() {
			node, ok := o.(*autodiff.Value)
			if !ok {
				continue
			}
			j, found := pos[node]
			require.True(t, found, "operand %v of %v missing from order", node, v)
			assert.Less(t, j, i, "operand %v must precede %v", node, v)
		}
	}
}

// TestTopologicalOrder_Diamond tests fan-in through two paths.
func TestTopologicalOrder_Diamond(t *testing.T) {
	x := autodiff.Leaf(1)
	left := x.Mul(autodiff.Const(2))
	right := x.Add(autodiff.Const(2))
	z := left.Mul(right)

	order := autodiff.TopologicalOrder(z)

	require.Len(t, order, 4)
	assert.Same(t, x, order[0])
	assert.Same(t, z, order[3])
	assertDependencyFirst(t, order)
}

// TestTopologicalOrder_IdentityNotValue tests equal numbers are distinct values.
func TestTopologicalOrder_IdentityNotValue(t *testing.T) {
	a := autodiff.Leaf(1)
	b := autodiff.Leaf(1)
	c := a.Add(b)

	order := autodiff.TopologicalOrder(c)
	assert.Len(t, order, 3)
}

// TestTopologicalOrder_HighFanIn tests one value consumed many times.
func TestTopologicalOrder_HighFanIn(t *testing.T) {
	x := autodiff.Leaf(0.5)
	acc := x
	for i := 0; i < 50; i++ {
		acc = acc.Add(x.Mul(x))
	}

	order := autodiff.TopologicalOrder(acc)
	assert.Len(t, order, 1+50*2)
	assertDependencyFirst(t, order)

	acc.Backward()
	assert.InDelta(t, 1+50*2*0.5, x.Grad(), 1e-12)
}

// TestTopologicalOrder_DeepChain tests a long chain completes.
func TestTopologicalOrder_DeepChain(t *testing.T) {
	x := autodiff.Leaf(0)
	acc := x
	for i := 0; i < 10000; i++ {
		acc = acc.Add(autodiff.Const(1))
	}

	order := autodiff.TopologicalOrder(acc)
	require.Len(t, order, 10001)
	assert.Equal(t, 10000.0, acc.Data())

	acc.Backward()
	assert.Equal(t, 1.0, x.Grad())
}

func TestTopologicalOrder_Leaf(t *testing.T) {
	x := autodiff.Leaf(3)
	assert.Equal(t, []*autodiff.Value{x}, autodiff.TopologicalOrder(x))
	assert.Nil(t, autodiff.TopologicalOrder(nil))
}
