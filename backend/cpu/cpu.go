// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu exposes the CPU backend for the maxout operator.
package cpu

import (
	internalcpu "github.com/born-ml/maxout/internal/backend/cpu"
	"github.com/born-ml/maxout/tensor"
)

// Backend represents the CPU backend implementation.
//
// The CPU backend provides pure Go implementations of the maxout forward
// and backward kernels, parallelized across coordinates outside the
// reduced axis.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/maxout/backend/cpu"
//	    "github.com/born-ml/maxout/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x, _ := tensor.FromSlice([]float32{1, 5, 3, 2}, tensor.Shape{1, 4, 1, 1}, backend)
//	    out, _ := backend.Maxout(x.Raw(), 2, 1)
//	}
func New() *Backend {
	return internalcpu.New()
}
