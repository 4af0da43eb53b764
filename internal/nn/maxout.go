// Package nn provides the layer-level wrapper for the maxout operator.
package nn

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/maxout/internal/maxout"
	"github.com/born-ml/maxout/internal/tensor"
)

// Maxout is a maxout activation layer.
//
// Maxout partitions the channel dimension into runs of `groups` consecutive
// channels and keeps only the maximum of each run, so the layer divides the
// channel count by groups. Unlike Conv2D, Maxout has no learnable parameters.
//
// Input shape:  [batch, channels, height, width] for axis=1 (NCHW)
//
//	[batch, height, width, channels] for axis=3 or -1 (NHWC)
//
// Output shape: input shape with channels / groups
//
// Example:
//
//	// Halve the channel count of NCHW features
//	layer, err := nn.NewMaxout[float32](2, maxout.DefaultAxis, backend)
//
//	input, _ := tensor.FromSlice(data, tensor.Shape{32, 64, 28, 28}, backend)
//	output, err := layer.Forward(input) // [32, 32, 28, 28]
type Maxout[T tensor.DType, B tensor.Backend] struct {
	cfg     maxout.Config
	backend B
}

// NewMaxout creates a new maxout layer.
//
// Parameters:
//   - groups: consecutive channels reduced into each output channel, must be > 1
//   - axis: channel dimension, 1 for NCHW, 3 or -1 for NHWC
//   - backend: backend for computation
//
// Groups and axis are fixed for the lifetime of the layer. Divisibility of
// the channel dimension is checked per call, since it depends on the input.
func NewMaxout[T tensor.DType, B tensor.Backend](groups, axis int, backend B) (*Maxout[T, B], error) {
	cfg := maxout.Config{Groups: groups, Axis: axis}
	if groups <= 1 {
		return nil, errors.Wrapf(maxout.ErrInvalidArgument, "groups must be larger than 1, got %d", groups)
	}
	if _, err := cfg.ResolveAxis(); err != nil {
		return nil, err
	}

	return &Maxout[T, B]{
		cfg:     cfg,
		backend: backend,
	}, nil
}

// Forward performs the forward pass.
func (m *Maxout[T, B]) Forward(input *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	if input == nil {
		return nil, maxout.ErrMissingInput
	}

	outputRaw, err := m.backend.Maxout(input.Raw(), m.cfg.Groups, m.cfg.Axis)
	if err != nil {
		return nil, err
	}

	return tensor.New[T, B](outputRaw, m.backend), nil
}

// Backward computes the gradient w.r.t. the forward input, given the
// gradient w.r.t. the forward output. The forward input must be supplied
// again: the arg-max choice is recomputed, not cached.
func (m *Maxout[T, B]) Backward(input, outputGrad *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	if input == nil {
		return nil, maxout.ErrMissingInput
	}
	if outputGrad == nil {
		return nil, maxout.ErrMissingOutput
	}

	inputGradRaw, err := m.backend.MaxoutBackward(input.Raw(), outputGrad.Raw(), m.cfg.Groups, m.cfg.Axis)
	if err != nil {
		return nil, err
	}

	return tensor.New[T, B](inputGradRaw, m.backend), nil
}

// InferShape computes the output shape for a given input shape without
// touching any buffer.
func (m *Maxout[T, B]) InferShape(input tensor.Shape) (tensor.Shape, error) {
	return maxout.InferShape(input, m.cfg)
}

// Parameters returns the trainable parameters. Always empty: maxout has none.
func (m *Maxout[T, B]) Parameters() []*tensor.Tensor[T, B] {
	return []*tensor.Tensor[T, B]{}
}

// Groups returns the group count.
func (m *Maxout[T, B]) Groups() int {
	return m.cfg.Groups
}

// Axis returns the channel axis as configured (possibly negative).
func (m *Maxout[T, B]) Axis() int {
	return m.cfg.Axis
}

// OutputChannels computes the output channel count for a given input
// channel count.
func (m *Maxout[T, B]) OutputChannels(inChannels int) int {
	return inChannels / m.cfg.Groups
}

// String returns a string representation of the layer.
func (m *Maxout[T, B]) String() string {
	return fmt.Sprintf("Maxout(groups=%d, axis=%d)", m.cfg.Groups, m.cfg.Axis)
}
