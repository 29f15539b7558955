package nn

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// CheckpointFormatVersion is the version written into every checkpoint.
const CheckpointFormatVersion = 1

// OptimizerState represents an optimizer that can save/load its state.
//
// Optimizers from the optim package implement this interface.
type OptimizerState interface {
	// StateDict returns the optimizer state for serialization.
	StateDict() map[string]float64

	// LoadStateDict loads optimizer state from serialization.
	LoadStateDict(state map[string]float64) error

	// GetLR returns the current learning rate.
	GetLR() float64

	// SetLR updates the learning rate.
	SetLR(lr float64)
}

// Checkpoint represents a training state snapshot.
//
// A checkpoint includes:
//   - Model parameters, in Parameters() order
//   - Optimizer state (momentum velocities, Adam moments, learning rate)
//   - Training metadata (epoch, loss)
//
// Example:
//
//	ckpt := &nn.Checkpoint{Model: model, Optimizer: opt, Epoch: 10, Loss: 0.12}
//	err := ckpt.Save("xor.json")
//
// To resume training:
//
//	ckpt, err := nn.LoadCheckpoint("xor.json", model, opt)
//	startEpoch := ckpt.Epoch + 1
type Checkpoint struct {
	Model     Module            // The network
	Optimizer OptimizerState    // Optional optimizer
	Epoch     int               // Training epoch number
	Loss      float64           // Loss value at this checkpoint
	Metadata  map[string]string // Additional training metadata
	CreatedAt time.Time         // When the checkpoint was created
}

// checkpointFile is the on-disk JSON layout.
type checkpointFile struct {
	FormatVersion int                  `json:"format_version"`
	CreatedAt     time.Time            `json:"created_at"`
	Epoch         int                  `json:"epoch"`
	Loss          jsonFloat            `json:"loss"`
	LR            jsonFloat            `json:"lr,omitempty"`
	Parameters    []jsonFloat          `json:"parameters"`
	Optimizer     map[string]jsonFloat `json:"optimizer,omitempty"`
	Metadata      map[string]string    `json:"metadata,omitempty"`
}

// jsonFloat is a float64 whose non-finite values are encoded as the strings
// "NaN", "+Inf" and "-Inf".
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	x := float64(f)
	switch {
	case math.IsNaN(x):
		return []byte(`"NaN"`), nil
	case math.IsInf(x, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(x, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, x, 'g', -1, 64), nil
}

func (f *jsonFloat) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid number %s", data)
	}
	*f = jsonFloat(x)
	return nil
}

func toJSONFloats(xs []float64) []jsonFloat {
	out := make([]jsonFloat, len(xs))
	for i, x := range xs {
		out[i] = jsonFloat(x)
	}
	return out
}

// Save writes the checkpoint to path as JSON.
func (c *Checkpoint) Save(path string) error {
	created := c.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	file := checkpointFile{
		FormatVersion: CheckpointFormatVersion,
		CreatedAt:     created,
		Epoch:         c.Epoch,
		Loss:          jsonFloat(c.Loss),
		Parameters:    toJSONFloats(Data(c.Model.Parameters())),
		Metadata:      c.Metadata,
	}
	if c.Optimizer != nil {
		file.LR = jsonFloat(c.Optimizer.GetLR())
		state := c.Optimizer.StateDict()
		file.Optimizer = make(map[string]jsonFloat, len(state))
		for k, v := range state {
			file.Optimizer[k] = jsonFloat(v)
		}
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode checkpoint")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(err, "failed to write checkpoint")
	}
	return nil
}

// LoadCheckpoint reads a checkpoint written by Save into model and optimizer.
//
// The model must have the same architecture as when the checkpoint was saved.
// optimizer may be nil, in which case stored optimizer state is ignored;
// otherwise its state and learning rate are restored. On error neither the
// model nor the optimizer is modified.
func LoadCheckpoint(path string, model Module, optimizer OptimizerState) (*Checkpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read checkpoint")
	}

	var file checkpointFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to decode checkpoint")
	}
	if file.FormatVersion != CheckpointFormatVersion {
		return nil, errors.Errorf("unsupported checkpoint version %d", file.FormatVersion)
	}

	params := model.Parameters()
	if len(file.Parameters) != len(params) {
		return nil, errors.Errorf("checkpoint has %d parameters, model has %d", len(file.Parameters), len(params))
	}

	// LoadStateDict leaves the optimizer untouched on error, so it runs before
	// any parameter is written.
	if optimizer != nil && file.Optimizer != nil {
		state := make(map[string]float64, len(file.Optimizer))
		for k, v := range file.Optimizer {
			state[k] = float64(v)
		}
		if err := optimizer.LoadStateDict(state); err != nil {
			return nil, errors.Wrap(err, "failed to load optimizer state")
		}
	}
	if optimizer != nil && file.LR > 0 {
		optimizer.SetLR(float64(file.LR))
	}

	for i, p := range params {
		p.SetData(float64(file.Parameters[i]))
		p.ZeroGrad()
	}

	return &Checkpoint{
		Model:     model,
		Optimizer: optimizer,
		Epoch:     file.Epoch,
		Loss:      float64(file.Loss),
		Metadata:  file.Metadata,
		CreatedAt: file.CreatedAt,
	}, nil
}
