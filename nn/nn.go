// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/dust/autodiff"
	"github.com/born-ml/dust/internal/nn"
)

// Layers

// Neuron computes tanh(Σ xᵢ·wᵢ + b).
type Neuron = nn.Neuron

// NewNeuron creates a neuron with inFeatures weights.
func NewNeuron(inFeatures int, config Config) *Neuron {
	return nn.NewNeuron(inFeatures, config)
}

// Layer is a fully connected layer of tanh neurons.
type Layer = nn.Layer

// NewLayer creates a layer mapping inFeatures inputs to outFeatures outputs.
//
// Example:
//
//	layer := nn.NewLayer(784, 128, nn.Config{Seed: 1})
func NewLayer(inFeatures, outFeatures int, config Config) *Layer {
	return nn.NewLayer(inFeatures, outFeatures, config)
}

// MLP is a multi-layer perceptron.
type MLP = nn.MLP

// NewMLP creates an MLP with the given hidden widths.
//
// Example:
//
//	model := nn.NewMLP(3, 1, []int{4, 4}, nn.Config{Seed: 42})
func NewMLP(inFeatures, outFeatures int, hidden []int, config Config) *MLP {
	return nn.NewMLP(inFeatures, outFeatures, hidden, config)
}

// Sequential chains modules.
type Sequential = nn.Sequential

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// Loss functions

// Loss reduces predictions and targets to a scalar value.
type Loss = nn.Loss

// MSELoss computes mean squared error.
type MSELoss = nn.MSELoss

// NewMSELoss creates a new MSE loss.
func NewMSELoss() *MSELoss {
	return nn.NewMSELoss()
}

// BCELoss computes mean binary cross-entropy.
type BCELoss = nn.BCELoss

// NewBCELoss creates a new BCE loss.
func NewBCELoss() *BCELoss {
	return nn.NewBCELoss()
}

// Probability maps a tanh output in [-1, 1] to [0, 1].
func Probability(v *autodiff.Value) *autodiff.Value {
	return nn.Probability(v)
}

// Checkpoint is a training state snapshot.
type Checkpoint = nn.Checkpoint

// OptimizerState is an optimizer whose state can be checkpointed.
type OptimizerState = nn.OptimizerState

// LoadCheckpoint reads a checkpoint into model and optimizer.
func LoadCheckpoint(path string, model Module, optimizer OptimizerState) (*Checkpoint, error) {
	return nn.LoadCheckpoint(path, model, optimizer)
}
