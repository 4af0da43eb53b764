// Package maxout implements shape inference and validation for the maxout
// channel reduction.
//
// Maxout splits the channel dimension of a rank-4 feature tensor into runs
// of `groups` consecutive channels and reduces each run to its element-wise
// maximum, so the output channel count is the input channel count divided
// by groups:
//
//	out[axis] = in[axis] / groups
//
// Shape inference is a pure function of the input shape and the operator
// attributes; it never touches buffers, so hosts can plan allocations before
// any data exists. The gradient operator's output shape is simply the input
// shape, unchanged.
package maxout

import (
	"github.com/pkg/errors"

	"github.com/born-ml/maxout/internal/tensor"
)

// Rank is the tensor rank the operator is defined over.
const Rank = 4

// DefaultAxis is the channel dimension for channel-first (NCHW) layouts.
// Channel-last (NHWC) hosts pass 3 or -1.
const DefaultAxis = 1

// Config carries the operator attributes. They are set once at operator
// construction and read-only afterwards.
type Config struct {
	// Groups is the number of consecutive input channels reduced into each
	// output channel. Must be > 1.
	Groups int

	// Axis is the channel dimension. Negative values count from the end,
	// so -1 denotes the last dimension.
	Axis int
}

// ResolveAxis normalizes a possibly negative axis against Rank.
func (c Config) ResolveAxis() (int, error) {
	axis := c.Axis
	if axis < 0 {
		axis += Rank
	}
	if axis < 0 || axis >= Rank {
		return 0, errors.Wrapf(ErrInvalidArgument,
			"axis %d does not resolve to a dimension of a rank-%d tensor", c.Axis, Rank)
	}
	return axis, nil
}

// Validate checks the configuration against an input shape and returns the
// resolved axis. All failures are InvalidArgument: wrong rank, groups <= 1,
// an axis outside [-Rank, Rank), or a channel dimension the group count does
// not evenly divide.
func (c Config) Validate(input tensor.Shape) (int, error) {
	if len(input) != Rank {
		return 0, errors.Wrapf(ErrInvalidArgument,
			"expected rank-%d input, got %dD shape %v", Rank, len(input), input)
	}
	if c.Groups <= 1 {
		return 0, errors.Wrapf(ErrInvalidArgument,
			"groups must be larger than 1, got %d", c.Groups)
	}
	axis, err := c.ResolveAxis()
	if err != nil {
		return 0, err
	}
	if input[axis]%c.Groups != 0 {
		return 0, errors.Wrapf(ErrInvalidArgument,
			"channel dimension %d (axis %d) is not divisible by groups %d", input[axis], axis, c.Groups)
	}
	return axis, nil
}

// InferShape computes the forward output shape: identical to the input shape
// except the channel dimension shrinks by the group count.
func InferShape(input tensor.Shape, cfg Config) (tensor.Shape, error) {
	axis, err := cfg.Validate(input)
	if err != nil {
		return nil, err
	}
	out := input.Clone()
	out[axis] = input[axis] / cfg.Groups
	return out, nil
}
