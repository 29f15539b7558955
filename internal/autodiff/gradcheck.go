package autodiff

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/diff/fd"
)

// DefaultStep is the finite-difference step used by NumericalGradient.
const DefaultStep = 1e-6

// AnalyticGradient builds f on fresh leaves holding at, runs Backward on the
// result and returns the gradient of every leaf.
func AnalyticGradient(f func(xs []*Value) *Value, at []float64) []float64 {
	xs := leaves(at)
	f(xs).Backward()

	grads := make([]float64, len(xs))
	for i, x := range xs {
		grads[i] = x.Grad()
	}
	return grads
}

// NumericalGradient estimates the gradient of f at the point at with central
// differences. A step of 0 uses DefaultStep.
func NumericalGradient(f func(xs []*Value) *Value, at []float64, step float64) []float64 {
	if step == 0 {
		step = DefaultStep
	}
	forward := func(x []float64) float64 {
		return f(leaves(x)).Data()
	}
	return fd.Gradient(nil, forward, at, &fd.Settings{
		Formula: fd.Central,
		Step:    step,
	})
}

// CheckGradient compares the analytic and numerical gradients of f at the
// point at. Entries differing by more than tol·max(1, |numerical|) are
// reported in the returned error.
//
// Note that cross entropy reports its gradient scaled by ln 2 (see
// ops.CrossEntropyGrad); graphs containing it do not pass this check.
func CheckGradient(f func(xs []*Value) *Value, at []float64, tol float64) error {
	if err := CompareGradients(AnalyticGradient(f, at), NumericalGradient(f, at, 0), tol); err != nil {
		return errors.Wrapf(err, "at %v", at)
	}
	return nil
}

// CompareGradients reports the first entry where analytic and numerical differ
// by more than tol·max(1, |numerical|). NaN on either side is a mismatch.
func CompareGradients(analytic, numerical []float64, tol float64) error {
	if len(analytic) != len(numerical) {
		return errors.Errorf("autodiff: %d analytic gradients for %d numerical", len(analytic), len(numerical))
	}
	for i := range analytic {
		diff := math.Abs(analytic[i] - numerical[i])
		if math.IsNaN(diff) || diff > tol*math.Max(1, math.Abs(numerical[i])) {
			return errors.Errorf("autodiff: gradient mismatch for input %d: analytic %g, numerical %g",
				i, analytic[i], numerical[i])
		}
	}
	return nil
}

func leaves(at []float64) []*Value {
	xs := make([]*Value, len(at))
	for i, x := range at {
		xs[i] = Leaf(x)
	}
	return xs
}
