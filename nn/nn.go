// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public layer API for the maxout operator.
package nn

import (
	internalnn "github.com/born-ml/maxout/internal/nn"
	"github.com/born-ml/maxout/tensor"
)

// Maxout is a maxout activation layer: it divides the channel count of a
// rank-4 input by its group count, keeping the maximum of each run of
// consecutive channels. The layer has no trainable parameters.
type Maxout[T tensor.DType, B tensor.Backend] = internalnn.Maxout[T, B]

// NewMaxout creates a new maxout layer.
//
// Example:
//
//	import (
//	    "github.com/born-ml/maxout"
//	    "github.com/born-ml/maxout/backend/cpu"
//	    "github.com/born-ml/maxout/nn"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    layer, err := nn.NewMaxout[float32](2, maxout.DefaultAxis, backend)
//	    ...
//	}
func NewMaxout[T tensor.DType, B tensor.Backend](groups, axis int, backend B) (*Maxout[T, B], error) {
	return internalnn.NewMaxout[T, B](groups, axis, backend)
}
