package optim

import (
	"fmt"

	"github.com/born-ml/dust/internal/autodiff"
	"github.com/pkg/errors"
)

// DecayType selects the weight-decay penalty applied by SGD.
type DecayType int

// Weight-decay penalties.
const (
	DecayL2 DecayType = iota // Penalty wd·v², step wd·2v
	DecayL1                  // Penalty wd·|v|, step wd·sign(v)
)

func (d DecayType) String() string {
	switch d {
	case DecayL2:
		return "l2"
	case DecayL1:
		return "l1"
	default:
		return fmt.Sprintf("DecayType(%d)", int(d))
	}
}

// SGD implements gradient descent with optional momentum and weight decay.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Weight decay, when set, is applied after the gradient step:
//
//	L2: param = param - weightDecay * 2 * param_before_step
//	L1: param = param - weightDecay * sign(param)
//
// Example:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:          0.05,
//	    WeightDecay: 1e-4,
//	})
type SGD struct {
	params      []*autodiff.Value
	lr          float64
	momentum    float64
	weightDecay float64
	decay       DecayType
	velocities  map[*autodiff.Value]float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR          float64   // Learning rate (default: 0.001)
	Momentum    float64   // Momentum factor (default: 0, range: [0, 1))
	WeightDecay float64   // Weight-decay coefficient (default: 0, disabled)
	Decay       DecayType // Weight-decay penalty (default: DecayL2)
}

// NewSGD creates a new SGD optimizer.
func NewSGD(params []*autodiff.Value, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.001
	}

	return &SGD{
		params:      params,
		lr:          config.LR,
		momentum:    config.Momentum,
		weightDecay: config.WeightDecay,
		decay:       config.Decay,
		velocities:  make(map[*autodiff.Value]float64),
	}
}

// Step performs a single optimization step.
func (s *SGD) Step() {
	for _, p := range s.params {
		step := p.Grad()
		if s.momentum != 0 {
			v := s.momentum*s.velocities[p] + step
			s.velocities[p] = v
			step = v
		}

		before := p.Data()
		after := before - s.lr*step

		if s.weightDecay != 0 {
			switch s.decay {
			case DecayL1:
				after -= s.weightDecay * sign(after)
			default:
				after -= s.weightDecay * 2 * before
			}
		}
		p.SetData(after)
	}
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD) ZeroGrad() {
	zeroGrad(s.params)
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

// StateDict returns the optimizer state for serialization.
//
// With momentum, this exports the velocity of each parameter that has one.
// Without momentum, returns an empty map.
//
// State keys: "velocity.{param_index}".
func (s *SGD) StateDict() map[string]float64 {
	state := make(map[string]float64)
	if s.momentum == 0 {
		return state
	}
	for i, p := range s.params {
		if v, ok := s.velocities[p]; ok {
			state[fmt.Sprintf("velocity.%d", i)] = v
		}
	}
	return state
}

// LoadStateDict restores velocities exported by StateDict.
// On error the current velocities are kept.
//
// Returns an error for keys that name no parameter.
func (s *SGD) LoadStateDict(state map[string]float64) error {
	if s.momentum == 0 {
		return nil
	}

	velocities := make(map[*autodiff.Value]float64, len(state))
	for key, v := range state {
		var i int
		if _, err := fmt.Sscanf(key, "velocity.%d", &i); err != nil {
			return errors.Wrapf(err, "invalid state key %q", key)
		}
		if i < 0 || i >= len(s.params) {
			return errors.Errorf("state key %q: parameter index out of range [0, %d)", key, len(s.params))
		}
		velocities[s.params[i]] = v
	}
	s.velocities = velocities
	return nil
}
