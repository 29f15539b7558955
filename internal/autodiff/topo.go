package autodiff

// TopologicalOrder returns every value reachable from root, dependency first:
// each value appears after all of its operands and exactly once, however many
// paths lead to it. Constant operands are not values and are not included.
//
// The visited set is keyed on identity, so two distinct values holding the
// same number are both visited.
func TopologicalOrder(root *Value) []*Value {
	if root == nil {
		return nil
	}

	var order []*Value
	visited := make(map[*Value]struct{})

	var visit func(v *Value)
	visit = func(v *Value) {
		if _, ok := visited[v]; ok {
			return
		}
		visited[v] = struct{}{}
		for _, t := range v.operands {
			if t.node != nil {
				visit(t.node)
			}
		}
		order = append(order, v)
	}
	visit(root)

	return order
}
