// Package ops defines the differentiable operation contract a graph host
// consumes, together with the maxout operation record.
//
// Each operation captures the tensors bound during the forward pass and
// computes input gradients during the backward pass. The host owns graph
// construction, scheduling and gradient accumulation; operations only
// answer "given the gradient of my output, what is the gradient of my
// inputs".
package ops

import "github.com/born-ml/maxout/internal/tensor"

// Operation represents a differentiable operation in a computation graph.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns a slice of gradients corresponding to each input tensor.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) ([]*tensor.RawTensor, error)

	// Inputs returns the input tensors bound to this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
