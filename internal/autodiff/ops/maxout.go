package ops

import (
	"github.com/born-ml/maxout/internal/maxout"
	"github.com/born-ml/maxout/internal/tensor"
)

// MaxoutOp records a maxout reduction for gradient routing.
//
// Forward:
//
//	output[..., c, ...] = max(input[..., c*groups+k, ...] for k in [0, groups))
//
// Backward:
//   - Each output gradient flows to the single input channel that attained
//     the group maximum in the forward pass
//   - The other groups-1 channels of the group receive zero gradient
//
// The operation deliberately stores no arg-max indices: the backward pass
// recomputes the winner from the recorded input with the same scan order as
// the forward kernel, which is why the input must stay alive until Backward
// has run.
type MaxoutOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	groups int
	axis   int
}

// NewMaxoutOp creates a new maxout operation record.
// Fails with MissingInput/MissingOutput when the host did not bind the
// required tensors.
func NewMaxoutOp(input, output *tensor.RawTensor, groups, axis int) (*MaxoutOp, error) {
	if input == nil {
		return nil, maxout.ErrMissingInput
	}
	if output == nil {
		return nil, maxout.ErrMissingOutput
	}
	return &MaxoutOp{
		input:  input,
		output: output,
		groups: groups,
		axis:   axis,
	}, nil
}

// Inputs returns the input tensors.
func (op *MaxoutOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *MaxoutOp) Output() *tensor.RawTensor {
	return op.output
}

// Groups returns the group count attribute.
func (op *MaxoutOp) Groups() int {
	return op.groups
}

// Axis returns the channel axis attribute.
func (op *MaxoutOp) Axis() int {
	return op.axis
}

// Backward computes the input gradient. This is pure orchestration -
// the backend recomputes the arg-max and routes the gradient.
func (op *MaxoutOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) ([]*tensor.RawTensor, error) {
	if outputGrad == nil {
		return nil, maxout.ErrMissingOutput
	}

	inputGrad, err := backend.MaxoutBackward(op.input, outputGrad, op.groups, op.axis)
	if err != nil {
		return nil, err
	}

	return []*tensor.RawTensor{inputGrad}, nil
}
