package autodiff

import "fmt"

// Backward computes the gradient of v with respect to every value it was
// computed from and adds it to their accumulated gradients.
//
// Algorithm:
//  1. Seed v with gradient 1 (dv/dv)
//  2. Walk the topological order of v in reverse, so every value is reached
//     after all of its consumers
//  3. For each non-leaf value, pass its upstream gradient through its
//     operation record and add the contributions to its node operands
//
// Contributions for one pass are summed in a per-pass map and added to each
// value's gradient once, when the value is reached. Calling Backward twice
// without ZeroGrad therefore doubles every gradient.
func (v *Value) Backward() {
	order := TopologicalOrder(v)

	upstream := make(map[*Value]float64, len(order))
	upstream[v] = 1.0

	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]
		grad := upstream[node]
		node.grad += grad

		if node.op == nil {
			continue // Leaf: nothing to propagate
		}
		propagate(node, grad, upstream)
	}
}

// propagate distributes grad to the node operands of node.
func propagate(node *Value, grad float64, upstream map[*Value]float64) {
	grads := node.op.Backward(grad)
	if len(grads) != len(node.operands) {
		panic(fmt.Sprintf("autodiff: %s record produced %d gradients for %d operands",
			node.op.Kind(), len(grads), len(node.operands)))
	}
	for i, t := range node.operands {
		if t.node == nil {
			continue // Constants receive no gradient
		}
		upstream[t.node] += grads[i]
	}
}
