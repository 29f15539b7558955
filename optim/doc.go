// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient-descent optimizers for autodiff parameters.
//
// # Overview
//
// This package contains:
//   - SGD: gradient descent with momentum and L1/L2 weight decay
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// # Training Loop Pattern
//
//	for epoch := range numEpochs {
//	    // 1. Zero gradients
//	    optimizer.ZeroGrad()
//
//	    // 2. Forward pass
//	    loss := criterion.Forward(model.Forward(x), y)
//
//	    // 3. Backward pass
//	    loss.Backward()
//
//	    // 4. Update parameters
//	    optimizer.Step()
//	}
package optim
