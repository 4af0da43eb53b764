package cpu

import (
	"github.com/pkg/errors"

	"github.com/born-ml/maxout/internal/maxout"
	"github.com/born-ml/maxout/internal/parallel"
	"github.com/born-ml/maxout/internal/tensor"
)

// MaxoutBackward computes the gradient of Maxout w.r.t. its input.
//
// No arg-max index survives the forward pass, so the winner of every group
// is recomputed from the input with the identical scan as the forward kernel.
// Each output gradient is then assigned entirely to the winning input
// position; the remaining groups-1 positions of the group stay zero:
//
//	d max(x_k) / d x_j = 1 if j = argmax_k(x_k), else 0
//
// The returned tensor has the input's shape. The output gradient must have
// the inferred forward output shape and the input's dtype.
func (cpu *CPUBackend) MaxoutBackward(input, outputGrad *tensor.RawTensor, groups, axis int) (*tensor.RawTensor, error) {
	if input == nil {
		return nil, maxout.ErrMissingInput
	}
	if outputGrad == nil {
		return nil, maxout.ErrMissingOutput
	}

	cfg := maxout.Config{Groups: groups, Axis: axis}
	outShape, err := maxout.InferShape(input.Shape(), cfg)
	if err != nil {
		return nil, err
	}
	if !outputGrad.Shape().Equal(outShape) {
		return nil, errors.Wrapf(maxout.ErrInvalidArgument,
			"output gradient shape %v does not match inferred shape %v", outputGrad.Shape(), outShape)
	}
	if outputGrad.DType() != input.DType() {
		return nil, errors.Wrapf(maxout.ErrInvalidArgument,
			"output gradient dtype %v does not match input dtype %v", outputGrad.DType(), input.DType())
	}

	// NewRaw hands back a zeroed buffer: positions that lose the arg-max
	// are never written and stay zero.
	inputGrad, err := tensor.NewRaw(input.Shape(), input.DType(), cpu.device)
	if err != nil {
		return nil, errors.Wrap(err, "maxout: allocating input gradient")
	}

	resolved, _ := cfg.ResolveAxis() // already validated by InferShape
	geom := newGeometry(input.Shape(), resolved, groups)

	switch input.DType() {
	case tensor.Float32:
		maxoutBackward(inputGrad.AsFloat32(), input.AsFloat32(), outputGrad.AsFloat32(), geom, cpu.pool)
	case tensor.Float64:
		maxoutBackward(inputGrad.AsFloat64(), input.AsFloat64(), outputGrad.AsFloat64(), geom, cpu.pool)
	default:
		return nil, errors.Wrapf(maxout.ErrInvalidArgument, "unsupported dtype %v", input.DType())
	}

	return inputGrad, nil
}

// maxoutBackward routes each output gradient to the arg-max position of its
// group. Each (outer, channel) pair writes only inside its own block of
// groups*inner input positions, so the workers need no synchronization.
func maxoutBackward[T tensor.DType](inputGrad, input, outputGrad []T, g geometry, pool parallel.Config) {
	parallel.ForOuter(g.outer, g.outChannels, func(o, c int) {
		inBase := (o*g.outChannels + c) * g.groups * g.inner
		outBase := (o*g.outChannels + c) * g.inner
		for j := 0; j < g.inner; j++ {
			k, _ := argmaxGroup(input, inBase+j, g.groups, g.inner)
			inputGrad[inBase+j+k*g.inner] = outputGrad[outBase+j]
		}
	}, pool)
}
