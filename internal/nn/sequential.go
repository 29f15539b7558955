package nn

import (
	"github.com/born-ml/dust/internal/autodiff"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input.
//
// Example:
//
//	model := nn.NewSequential(
//	    nn.NewLayer(2, 4, cfg),
//	    nn.NewLayer(4, 1, cfg),
//	)
//
//	output := model.Forward(nn.Inputs([]float64{0, 1}))
type Sequential struct {
	modules []Module
}

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{
		modules: modules,
	}
}

// Forward applies all modules in sequence.
func (s *Sequential) Forward(x []*autodiff.Value) []*autodiff.Value {
	out := x
	for _, m := range s.modules {
		out = m.Forward(out)
	}
	return out
}

// Parameters returns all trainable parameters from all modules, in order.
func (s *Sequential) Parameters() []*autodiff.Value {
	var params []*autodiff.Value
	for _, m := range s.modules {
		params = append(params, m.Parameters()...)
	}
	return params
}

// Modules returns the contained modules.
func (s *Sequential) Modules() []Module {
	return s.modules
}

// Add appends a module to the end of the sequence.
func (s *Sequential) Add(m Module) {
	s.modules = append(s.modules, m)
}
