package main

import (
	"flag"
	"fmt"
	"math"

	"github.com/born-ml/dust/internal/autodiff"
	"github.com/pkg/errors"
)

type gradCase struct {
	name string
	at   []float64
	f    func(xs []*autodiff.Value) *autodiff.Value
	// scale multiplies the numerical gradient before comparison.
	scale float64
}

var gradCases = []gradCase{
	{name: "neg", at: []float64{0.7}, f: func(xs []*autodiff.Value) *autodiff.Value { return xs[0].Neg() }},
	{name: "add", at: []float64{0.3, -1.2}, f: func(xs []*autodiff.Value) *autodiff.Value { return xs[0].Add(xs[1]) }},
	{name: "sub", at: []float64{0.3, -1.2}, f: func(xs []*autodiff.Value) *autodiff.Value { return xs[0].Sub(xs[1]) }},
	{name: "mul", at: []float64{1e-3, 4}, f: func(xs []*autodiff.Value) *autodiff.Value { return xs[0].Mul(xs[1]) }},
	{name: "div", at: []float64{2, -0.5}, f: func(xs []*autodiff.Value) *autodiff.Value { return xs[0].Div(xs[1]) }},
	{name: "tanh", at: []float64{0.4}, f: func(xs []*autodiff.Value) *autodiff.Value { return xs[0].Tanh() }},
	{
		name:  "cross_entropy",
		at:    []float64{0.3},
		f:     func(xs []*autodiff.Value) *autodiff.Value { return autodiff.CrossEntropyOf(autodiff.Const(1), xs[0]) },
		scale: math.Ln2,
	},
	{
		name: "composite",
		at:   []float64{0.5, -0.3, 2},
		f: func(xs []*autodiff.Value) *autodiff.Value {
			return xs[0].Mul(xs[1]).Add(xs[0].Div(xs[2])).Tanh().Sub(xs[1].Mul(xs[1]))
		},
	},
}

func runGradCheck(args []string) error {
	fs := flag.NewFlagSet("gradcheck", flag.ContinueOnError)
	tol := fs.Float64("tol", 1e-4, "Relative tolerance")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return checkCases(gradCases, *tol)
}

// checkCases prints one OK/FAIL line per case and fails if any case fails.
func checkCases(cases []gradCase, tol float64) error {
	failed := 0
	for _, c := range cases {
		analytic := autodiff.AnalyticGradient(c.f, c.at)
		numerical := autodiff.NumericalGradient(c.f, c.at, 0)

		scale := c.scale
		if scale == 0 {
			scale = 1
		}
		want := make([]float64, len(numerical))
		for i, n := range numerical {
			want[i] = n * scale
		}

		status := "OK"
		if err := autodiff.CompareGradients(analytic, want, tol); err != nil {
			status = "FAIL"
			failed++
		}
		fmt.Printf("   %-14s %-4s analytic=%v numerical=%v\n", c.name, status, analytic, numerical)
	}

	if failed > 0 {
		return errors.Errorf("%d of %d gradient checks failed", failed, len(cases))
	}
	fmt.Printf("All %d gradient checks passed\n", len(cases))
	return nil
}
