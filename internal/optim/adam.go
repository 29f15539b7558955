package optim

import (
	"fmt"
	"math"

	"github.com/born-ml/dust/internal/autodiff"
	"github.com/pkg/errors"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)  // Parameter update
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	params []*autodiff.Value
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	t      int                         // Timestep for bias correction
	m      map[*autodiff.Value]float64 // First moment estimates
	v      map[*autodiff.Value]float64 // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer.
func NewAdam(params []*autodiff.Value, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		params: params,
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		m:      make(map[*autodiff.Value]float64),
		v:      make(map[*autodiff.Value]float64),
	}
}

// Step performs a single optimization step.
func (a *Adam) Step() {
	a.t++

	biasCorrection1 := 1.0 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1.0 - math.Pow(a.beta2, float64(a.t))

	for _, p := range a.params {
		g := p.Grad()

		m := a.beta1*a.m[p] + (1-a.beta1)*g
		v := a.beta2*a.v[p] + (1-a.beta2)*g*g
		a.m[p], a.v[p] = m, v

		mHat := m / biasCorrection1
		vHat := v / biasCorrection2
		p.SetData(p.Data() - a.lr*mHat/(math.Sqrt(vHat)+a.eps))
	}
}

// ZeroGrad clears gradients for all parameters.
func (a *Adam) ZeroGrad() {
	zeroGrad(a.params)
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float64) {
	a.lr = lr
}

// GetTimestep returns the number of steps taken.
func (a *Adam) GetTimestep() int {
	return a.t
}

// StateDict exports the moment estimates and timestep.
//
// State keys: "t", "m.{param_index}", "v.{param_index}".
func (a *Adam) StateDict() map[string]float64 {
	state := map[string]float64{"t": float64(a.t)}
	for i, p := range a.params {
		if m, ok := a.m[p]; ok {
			state[fmt.Sprintf("m.%d", i)] = m
		}
		if v, ok := a.v[p]; ok {
			state[fmt.Sprintf("v.%d", i)] = v
		}
	}
	return state
}

// LoadStateDict restores state exported by StateDict.
// On error the current state is kept.
func (a *Adam) LoadStateDict(state map[string]float64) error {
	m := make(map[*autodiff.Value]float64, len(a.params))
	v := make(map[*autodiff.Value]float64, len(a.params))
	t := 0
	for key, x := range state {
		if key == "t" {
			t = int(x)
			continue
		}
		var (
			moment rune
			i      int
		)
		if _, err := fmt.Sscanf(key, "%c.%d", &moment, &i); err != nil {
			return errors.Wrapf(err, "invalid state key %q", key)
		}
		if i < 0 || i >= len(a.params) {
			return errors.Errorf("state key %q: parameter index out of range [0, %d)", key, len(a.params))
		}
		switch moment {
		case 'm':
			m[a.params[i]] = x
		case 'v':
			v[a.params[i]] = x
		default:
			return errors.Errorf("invalid state key %q", key)
		}
	}
	a.t, a.m, a.v = t, m, v
	return nil
}
