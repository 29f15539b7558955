// Package optim implements gradient-descent optimizers for autodiff parameters.
//
// This package provides:
//   - Optimizer interface: base interface for all optimizers
//   - SGD: gradient descent with optional momentum and L1/L2 weight decay
//   - Adam: Adaptive Moment Estimation
//
// Optimizers read the gradient accumulated on each parameter by Backward and
// write the parameter's data in place.
//
// Example usage:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.05})
//
//	for epoch := range epochs {
//	    optimizer.ZeroGrad()
//	    loss := lossFn.Forward(model.Forward(x), y)
//	    loss.Backward()
//	    optimizer.Step()
//	}
package optim

import "github.com/born-ml/dust/internal/autodiff"

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one update to every parameter from its accumulated gradient.
	Step()

	// ZeroGrad clears all parameter gradients.
	//
	// Gradients accumulate across backward passes, so this should be
	// called before each one.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}

func zeroGrad(params []*autodiff.Value) {
	for _, p := range params {
		p.ZeroGrad()
	}
}
