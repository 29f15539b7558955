package main

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/born-ml/dust/internal/autodiff"
	"github.com/born-ml/dust/internal/nn"
	"github.com/born-ml/dust/internal/optim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWidths(t *testing.T) {
	widths, err := parseWidths(" 4, 8 ")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 8}, widths)

	widths, err = parseWidths("")
	require.NoError(t, err)
	assert.Nil(t, widths)

	_, err = parseWidths("4,x")
	assert.ErrorContains(t, err, "hidden width 1")

	_, err = parseWidths("0")
	assert.ErrorContains(t, err, "must be positive")
}

func TestParseTrainFlags(t *testing.T) {
	cfg, err := parseTrainFlags([]string{"-data", "toy", "-decay", "l1", "-hidden", "3", "-every", "0"})
	require.NoError(t, err)
	assert.Equal(t, "toy", cfg.data)
	assert.Equal(t, optim.DecayL1, cfg.decay)
	assert.Equal(t, []int{3}, cfg.hidden)
	assert.Equal(t, cfg.epochs, cfg.every)

	for _, args := range [][]string{
		{"-data", "mnist"},
		{"-decay", "l3"},
		{"-optimizer", "rmsprop"},
		{"-loss", "hinge"},
		{"-epochs", "0"},
	} {
		_, err := parseTrainFlags(args)
		assert.Error(t, err, "args %v", args)
	}
}

func TestRunTrain(t *testing.T) {
	require.NoError(t, runTrain([]string{"-epochs", "5", "-every", "5"}))
	require.NoError(t, runTrain([]string{"-epochs", "5", "-loss", "bce", "-optimizer", "adam", "-data", "toy"}))
}

func TestRunTrain_PrintWeights(t *testing.T) {
	require.NoError(t, runTrain([]string{"-epochs", "2", "-hidden", "2", "-weights"}))
}

func TestParseTrainFlags_ExplicitLR(t *testing.T) {
	cfg, err := parseTrainFlags(nil)
	require.NoError(t, err)
	assert.False(t, cfg.lrSet)

	cfg, err = parseTrainFlags([]string{"-lr", "0.2"})
	require.NoError(t, err)
	assert.True(t, cfg.lrSet)
	assert.Equal(t, 0.2, cfg.lr)
}

func TestEpochLoss_Decreases(t *testing.T) {
	data := datasets["xor"]
	model := nn.NewMLP(2, 1, []int{4}, nn.Config{Seed: 3})
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.05})

	first := epochLoss(model, data, "mse").Data()
	for i := 0; i < 50; i++ {
		opt.ZeroGrad()
		l := epochLoss(model, data, "mse")
		l.Backward()
		opt.Step()
	}
	assert.Less(t, epochLoss(model, data, "mse").Data(), first)
}

func TestRunTrain_SaveResume(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xor.json")
	require.NoError(t, runTrain([]string{"-epochs", "3", "-momentum", "0.5", "-save", path}))
	require.NoError(t, runTrain([]string{"-epochs", "3", "-momentum", "0.5", "-resume", path, "-save", path}))

	model := nn.NewMLP(2, 1, []int{4, 4}, nn.Config{})
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.9, Momentum: 0.5})
	ckpt, err := nn.LoadCheckpoint(path, model, opt)
	require.NoError(t, err)
	assert.Equal(t, 6, ckpt.Epoch)
	assert.Equal(t, "xor", ckpt.Metadata["dataset"])
	assert.Equal(t, 0.05, opt.GetLR())

	require.NoError(t, runTrain([]string{"-epochs", "1", "-lr", "0.01", "-resume", path, "-save", path}))
	_, err = nn.LoadCheckpoint(path, model, opt)
	require.NoError(t, err)
	assert.Equal(t, 0.01, opt.GetLR())
}

func TestRunGradCheck(t *testing.T) {
	assert.NoError(t, runGradCheck(nil))
	assert.Error(t, runGradCheck([]string{"-tol"}))
}

func TestCheckCases_NaNFails(t *testing.T) {
	nan := gradCase{
		name: "nan",
		at:   []float64{1},
		f:    func(xs []*autodiff.Value) *autodiff.Value { return xs[0].Mul(autodiff.Const(math.NaN())) },
	}
	err := checkCases([]gradCase{nan}, 1e-4)
	assert.ErrorContains(t, err, "1 of 1 gradient checks failed")
}
