package ops

import "math"

// Epsilon stabilizes the logarithm arguments of the binary cross-entropy.
// Predictions in [0, 1] never reach log2(0).
const Epsilon = 1e-4

// CrossEntropy computes the binary cross-entropy of prediction q against target p:
//
//	-0.5·p·log2(q+ε) - 0.5·(1-p)·log2(1-q+ε)
func CrossEntropy(p, q float64) float64 {
	return -0.5*p*math.Log2(q+Epsilon) - 0.5*(1-p)*math.Log2(1-q+Epsilon)
}

// CrossEntropyGrad computes d/dq of CrossEntropy(p, q) as used by the engine:
//
//	-0.5·p/(q+ε) + 0.5·(1-p)/(1-q+ε)
//
// Note: this is the exact derivative of CrossEntropy multiplied by ln 2.
func CrossEntropyGrad(p, q float64) float64 {
	return -0.5*p/(q+Epsilon) + 0.5*(1-p)/(1-q+Epsilon)
}
