// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides a minimal feed-forward network built on scalar autodiff values.
//
// # Overview
//
// This package contains:
//   - Neuron: tanh(Σ xᵢ·wᵢ + b) with uniform [-1, 1) weights and zero bias
//   - Layer: fully connected row of neurons
//   - MLP: stack of layers, Sequential container
//   - Loss functions: MSELoss, BCELoss
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/dust/nn"
//	    "github.com/born-ml/dust/optim"
//	)
//
//	func main() {
//	    model := nn.NewMLP(2, 1, []int{4}, nn.Config{Seed: 1})
//	    optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1})
//	    criterion := nn.NewMSELoss()
//
//	    for range 100 {
//	        optimizer.ZeroGrad()
//	        loss := criterion.Forward(model.Forward(nn.Inputs(x)), y)
//	        loss.Backward()
//	        optimizer.Step()
//	    }
//	}
package nn
