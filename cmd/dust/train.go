package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/dust/internal/autodiff"
	"github.com/born-ml/dust/internal/nn"
	"github.com/born-ml/dust/internal/optim"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// dataset is a tiny labelled set with targets in {-1, 1}.
type dataset struct {
	inputs  [][]float64
	targets []float64
}

var datasets = map[string]dataset{
	"xor": {
		inputs:  [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		targets: []float64{-1, 1, 1, -1},
	},
	"toy": {
		inputs:  [][]float64{{2, 3, -1}, {3, -1, 0.5}, {0.5, 1, 1}, {1, 1, -1}},
		targets: []float64{1, -1, -1, 1},
	},
}

type trainConfig struct {
	data        string
	hidden      []int
	epochs      int
	lr          float64
	momentum    float64
	weightDecay float64
	decay       optim.DecayType
	optimizer   string
	loss        string
	seed        int64
	every       int
	save        string
	resume      string
	weights     bool
	lrSet       bool
}

func parseTrainFlags(args []string) (trainConfig, error) {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	data := fs.String("data", "xor", "Dataset: xor or toy")
	hidden := fs.String("hidden", "4,4", "Comma-separated hidden layer widths")
	epochs := fs.Int("epochs", 200, "Number of training epochs")
	lr := fs.Float64("lr", 0.05, "Learning rate")
	momentum := fs.Float64("momentum", 0, "SGD momentum")
	weightDecay := fs.Float64("weight-decay", 0, "Weight-decay coefficient (0 disables)")
	decay := fs.String("decay", "l2", "Weight-decay penalty: l1 or l2")
	optimizer := fs.String("optimizer", "sgd", "Optimizer: sgd or adam")
	loss := fs.String("loss", "mse", "Loss: mse or bce")
	seed := fs.Int64("seed", 1, "Seed for weight initialization")
	every := fs.Int("every", 20, "Print the loss every N epochs")
	save := fs.String("save", "", "Write a checkpoint to this path after training")
	resume := fs.String("resume", "", "Resume from a checkpoint written by -save")
	weights := fs.Bool("weights", false, "Print every layer's weights and biases after training")
	if err := fs.Parse(args); err != nil {
		return trainConfig{}, err
	}

	cfg := trainConfig{
		data:        *data,
		epochs:      *epochs,
		lr:          *lr,
		momentum:    *momentum,
		weightDecay: *weightDecay,
		optimizer:   *optimizer,
		loss:        *loss,
		seed:        *seed,
		every:       *every,
		save:        *save,
		resume:      *resume,
		weights:     *weights,
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "lr" {
			cfg.lrSet = true
		}
	})

	var err error
	if cfg.hidden, err = parseWidths(*hidden); err != nil {
		return trainConfig{}, err
	}

	switch *decay {
	case "l2":
		cfg.decay = optim.DecayL2
	case "l1":
		cfg.decay = optim.DecayL1
	default:
		return trainConfig{}, errors.Errorf("unknown decay %q", *decay)
	}

	if _, ok := datasets[cfg.data]; !ok {
		return trainConfig{}, errors.Errorf("unknown dataset %q", cfg.data)
	}
	if cfg.optimizer != "sgd" && cfg.optimizer != "adam" {
		return trainConfig{}, errors.Errorf("unknown optimizer %q", cfg.optimizer)
	}
	if cfg.loss != "mse" && cfg.loss != "bce" {
		return trainConfig{}, errors.Errorf("unknown loss %q", cfg.loss)
	}
	if cfg.epochs <= 0 || cfg.lr <= 0 {
		return trainConfig{}, errors.Errorf("epochs and lr must be positive, got %d and %g", cfg.epochs, cfg.lr)
	}
	if cfg.every <= 0 {
		cfg.every = cfg.epochs
	}
	return cfg, nil
}

// parseWidths parses "4,4" into []int{4, 4}. An empty string means no hidden layer.
func parseWidths(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	widths := make([]int, len(parts))
	for i, p := range parts {
		w, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.Wrapf(err, "hidden width %d", i)
		}
		if w <= 0 {
			return nil, errors.Errorf("hidden width %d must be positive, got %d", i, w)
		}
		widths[i] = w
	}
	return widths, nil
}

func runTrain(args []string) error {
	cfg, err := parseTrainFlags(args)
	if err != nil {
		return err
	}

	data := datasets[cfg.data]
	model := nn.NewMLP(len(data.inputs[0]), 1, cfg.hidden, nn.Config{Seed: cfg.seed})

	var opt interface {
		optim.Optimizer
		nn.OptimizerState
	}
	switch cfg.optimizer {
	case "adam":
		opt = optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: cfg.lr})
	default:
		opt = optim.NewSGD(model.Parameters(), optim.SGDConfig{
			LR:          cfg.lr,
			Momentum:    cfg.momentum,
			WeightDecay: cfg.weightDecay,
			Decay:       cfg.decay,
		})
	}

	fmt.Printf("Training MLP %d -> %v -> 1 on %q (%d parameters)\n",
		len(data.inputs[0]), cfg.hidden, cfg.data, nn.NumParameters(model))
	fmt.Printf("   Optimizer: %s (lr=%g), loss: %s\n", cfg.optimizer, opt.GetLR(), cfg.loss)

	start := 1
	if cfg.resume != "" {
		ckpt, err := nn.LoadCheckpoint(cfg.resume, model, opt)
		if err != nil {
			return err
		}
		start = ckpt.Epoch + 1
		if cfg.lrSet {
			opt.SetLR(cfg.lr)
		}
		fmt.Printf("   Resumed from %s at epoch %d (loss=%.6f, lr=%g)\n", cfg.resume, ckpt.Epoch, ckpt.Loss, opt.GetLR())
	}

	var loss float64
	end := start + cfg.epochs - 1
	for epoch := start; epoch <= end; epoch++ {
		opt.ZeroGrad()
		l := epochLoss(model, data, cfg.loss)
		l.Backward()
		opt.Step()

		loss = l.Data()
		if epoch%cfg.every == 0 || epoch == end {
			fmt.Printf("   Epoch %4d: loss=%.6f\n", epoch, loss)
		}
	}

	if cfg.save != "" {
		ckpt := &nn.Checkpoint{
			Model:     model,
			Optimizer: opt,
			Epoch:     end,
			Loss:      loss,
			Metadata:  map[string]string{"dataset": cfg.data, "loss": cfg.loss, "optimizer": cfg.optimizer},
		}
		if err := ckpt.Save(cfg.save); err != nil {
			return err
		}
		fmt.Printf("   Saved checkpoint to %s\n", cfg.save)
	}

	fmt.Println("Predictions:")
	for i, x := range data.inputs {
		out := model.Predict(mat.NewVecDense(len(x), x)).AtVec(0)
		fmt.Printf("   %v -> %+.4f (target %+.0f)\n", x, out, data.targets[i])
	}

	if cfg.weights {
		printWeights(model)
	}
	return nil
}

func printWeights(model *nn.MLP) {
	for i, l := range model.Layers() {
		fmt.Printf("Layer %d (%d -> %d):\n", i, l.InFeatures(), l.OutFeatures())
		fmt.Printf("   W = %v\n", mat.Formatted(l.WeightMatrix(), mat.Prefix("       "), mat.Squeeze()))
		fmt.Printf("   b = %v\n", mat.Formatted(l.BiasVector().T(), mat.Prefix("       "), mat.Squeeze()))
	}
}

// epochLoss builds the summed loss over the whole dataset.
func epochLoss(model *nn.MLP, data dataset, loss string) *autodiff.Value {
	terms := make([]*autodiff.Value, len(data.inputs))
	for i, x := range data.inputs {
		out := model.Forward(nn.Inputs(x))
		switch loss {
		case "bce":
			target := (data.targets[i] + 1) / 2
			terms[i] = nn.NewBCELoss().Forward([]*autodiff.Value{nn.Probability(out[0])}, []float64{target})
		default:
			terms[i] = nn.NewMSELoss().Forward(out, data.targets[i:i+1])
		}
	}
	return autodiff.Sum(terms...)
}
