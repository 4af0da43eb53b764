// Package cpu implements the CPU backend for the maxout operator pair.
package cpu

import (
	"github.com/born-ml/maxout/internal/parallel"
	"github.com/born-ml/maxout/internal/tensor"
)

// CPUBackend implements the maxout forward and backward kernels in pure Go,
// partitioning work across goroutines for coordinates outside the reduced axis.
type CPUBackend struct {
	device tensor.Device
	pool   parallel.Config
}

// Compile-time check that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		pool:   parallel.DefaultConfig(),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// geometry captures the flattened, row-major view of a rank-4 tensor around
// the reduced axis: `outer` coordinates before it, outChannels*groups along
// it, `inner` coordinates after it. Input channel outCh*groups+k and output
// channel outCh refer to the same (outer, inner) coordinate.
type geometry struct {
	outer       int // product of dimensions before the axis
	outChannels int // input channels / groups
	groups      int
	inner       int // product of dimensions after the axis
}

func newGeometry(shape tensor.Shape, axis, groups int) geometry {
	outer, inner := 1, 1
	for i := 0; i < axis; i++ {
		outer *= shape[i]
	}
	for i := axis + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	return geometry{
		outer:       outer,
		outChannels: shape[axis] / groups,
		groups:      groups,
		inner:       inner,
	}
}

// argmaxGroup scans a group's channels in increasing offset order and returns
// the first offset attaining the maximum, together with the maximum itself.
// Element k of the group lives at data[base+k*stride].
//
// The scan replaces the incumbent only on a strict > comparison, so equal
// maxima resolve to the lowest offset. Under IEEE semantics a NaN never wins
// such a comparison, so a NaN is kept only when it occupies offset 0.
//
// Both the forward and backward kernels go through this function; the
// gradient is routed correctly only because they share the exact same scan.
func argmaxGroup[T tensor.DType](data []T, base, groups, stride int) (int, T) {
	bestK := 0
	best := data[base]
	for k := 1; k < groups; k++ {
		if v := data[base+k*stride]; v > best {
			best = v
			bestK = k
		}
	}
	return bestK, best
}
