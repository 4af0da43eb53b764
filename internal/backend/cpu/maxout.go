package cpu

import (
	"github.com/pkg/errors"

	"github.com/born-ml/maxout/internal/maxout"
	"github.com/born-ml/maxout/internal/parallel"
	"github.com/born-ml/maxout/internal/tensor"
)

// Maxout reduces the channel dimension by per-group maximum.
//
// The input's channel dimension is reinterpreted (no copy) as
// (outChannels, groups): output channel c holds, for every surrounding
// coordinate, the maximum over input channels [c*groups, (c+1)*groups).
//
// Input shape:  4-D, float32 or float64
// Output shape: input shape with shape[axis] / groups channels
//
// Example (groups=2, axis=1, shape [1,4,1,1]):
//
//	Input channels: [1, 5, 3, 2]  ->  Output channels: [max(1,5), max(3,2)] = [5, 3]
//
// The input is never mutated; the output buffer is freshly allocated.
func (cpu *CPUBackend) Maxout(input *tensor.RawTensor, groups, axis int) (*tensor.RawTensor, error) {
	if input == nil {
		return nil, maxout.ErrMissingInput
	}

	cfg := maxout.Config{Groups: groups, Axis: axis}
	outShape, err := maxout.InferShape(input.Shape(), cfg)
	if err != nil {
		return nil, err
	}

	output, err := tensor.NewRaw(outShape, input.DType(), cpu.device)
	if err != nil {
		return nil, errors.Wrap(err, "maxout: allocating output")
	}

	resolved, _ := cfg.ResolveAxis() // already validated by InferShape
	geom := newGeometry(input.Shape(), resolved, groups)

	switch input.DType() {
	case tensor.Float32:
		maxoutForward(output.AsFloat32(), input.AsFloat32(), geom, cpu.pool)
	case tensor.Float64:
		maxoutForward(output.AsFloat64(), input.AsFloat64(), geom, cpu.pool)
	default:
		return nil, errors.Wrapf(maxout.ErrInvalidArgument, "unsupported dtype %v", input.DType())
	}

	return output, nil
}

// maxoutForward fills every output position with its group maximum.
// Each (outer, channel) pair owns a disjoint slice of the output, so the
// workers need no synchronization.
func maxoutForward[T tensor.DType](output, input []T, g geometry, pool parallel.Config) {
	parallel.ForOuter(g.outer, g.outChannels, func(o, c int) {
		inBase := (o*g.outChannels + c) * g.groups * g.inner
		outBase := (o*g.outChannels + c) * g.inner
		for j := 0; j < g.inner; j++ {
			_, best := argmaxGroup(input, inBase+j, g.groups, g.inner)
			output[outBase+j] = best
		}
	}, pool)
}
