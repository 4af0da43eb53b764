// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package maxout provides the public API for the maxout operator:
// shape inference, the operator attributes, and the error taxonomy.
//
// Maxout reduces the channel dimension of a rank-4 feature tensor by
// taking, for each run of `groups` consecutive channels, their element-wise
// maximum (Goodfellow et al., "Maxout Networks", ICML 2013). The gradient
// operator routes each output gradient back to the channel that attained
// the maximum.
//
// Example:
//
//	import (
//	    "github.com/born-ml/maxout"
//	    "github.com/born-ml/maxout/backend/cpu"
//	    "github.com/born-ml/maxout/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x, _ := tensor.FromSlice([]float32{1, 5, 3, 2}, tensor.Shape{1, 4, 1, 1}, backend)
//	    out, _ := backend.Maxout(x.Raw(), 2, maxout.DefaultAxis)
//	    // out channels: [5, 3]
//	}
package maxout

import (
	internal "github.com/born-ml/maxout/internal/maxout"
	"github.com/born-ml/maxout/tensor"
)

// Rank is the tensor rank the operator is defined over.
const Rank = internal.Rank

// DefaultAxis is the channel dimension for channel-first (NCHW) layouts.
const DefaultAxis = internal.DefaultAxis

// Config carries the operator attributes, fixed at operator construction.
type Config = internal.Config

// Common errors. All validation failures unwrap to ErrInvalidArgument;
// unbound tensors surface ErrMissingInput or ErrMissingOutput.
var (
	ErrInvalidArgument = internal.ErrInvalidArgument
	ErrMissingInput    = internal.ErrMissingInput
	ErrMissingOutput   = internal.ErrMissingOutput
)

// InferShape computes the forward output shape for an input shape and
// configuration: identical to the input except the channel dimension is
// divided by the group count. Pure shape-only reasoning, callable before
// any buffer exists.
func InferShape(input tensor.Shape, cfg Config) (tensor.Shape, error) {
	return internal.InferShape(input, cfg)
}
