package autodiff

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors for errors.Is matching.
var (
	ErrConstruction   = errors.New("autodiff: invalid value input")
	ErrArithmeticType = errors.New("autodiff: invalid operand type")
)

// ConstructionError reports an input that is neither numeric nor convertible
// to a number.
type ConstructionError struct {
	Input any
	Err   error // Underlying parse error, if any
}

func (e *ConstructionError) Error() string {
	msg := fmt.Sprintf("autodiff: cannot construct value from %s %v", typeName(e.Input), e.Input)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying parse error.
func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrConstruction.
func (e *ConstructionError) Is(target error) bool {
	return target == ErrConstruction
}

// ArithmeticTypeError reports a primitive called with an operand that is
// neither a *Value nor a plain number. Right is empty for unary primitives.
type ArithmeticTypeError struct {
	Op    string
	Left  string
	Right string
}

func (e *ArithmeticTypeError) Error() string {
	if e.Right == "" {
		return fmt.Sprintf("autodiff: %s: unsupported operand type %s", e.Op, e.Left)
	}
	return fmt.Sprintf("autodiff: %s: unsupported operand types %s and %s", e.Op, e.Left, e.Right)
}

// Is reports whether target is ErrArithmeticType.
func (e *ArithmeticTypeError) Is(target error) bool {
	return target == ErrArithmeticType
}
