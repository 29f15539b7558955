// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/dust/autodiff"
	"github.com/born-ml/dust/internal/nn"
)

// Module interface defines the common interface for network components.
type Module = nn.Module

// Config holds network construction options.
type Config = nn.Config

// ZeroGrad resets the gradient of every parameter of m.
func ZeroGrad(m Module) {
	nn.ZeroGrad(m)
}

// NumParameters returns the number of trainable values of m.
func NumParameters(m Module) int {
	return nn.NumParameters(m)
}

// Inputs lifts plain numbers into leaf values.
func Inputs(xs []float64) []*autodiff.Value {
	return nn.Inputs(xs)
}

// Data extracts the scalar data of vs.
func Data(vs []*autodiff.Value) []float64 {
	return nn.Data(vs)
}
