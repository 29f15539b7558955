package nn

import (
	"math/rand"

	"github.com/born-ml/dust/internal/autodiff"
)

// Uniform returns n leaves drawn uniformly from [-1, 1).
func Uniform(n int, r *rand.Rand) []*autodiff.Value {
	out := make([]*autodiff.Value, n)
	for i := range out {
		out[i] = autodiff.Leaf(r.Float64()*2 - 1)
	}
	return out
}
