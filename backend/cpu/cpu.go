// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/vqvae/internal/backend/cpu"
	"github.com/born-ml/vqvae/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Option configures a Backend.
type Option = internalcpu.Option

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Without options the worker limit is read from VQVAE_NUM_WORKERS
// (default: one worker per CPU).
//
// Example:
//
//	import (
//	    "github.com/born-ml/vqvae/backend/cpu"
//	    "github.com/born-ml/vqvae/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New(cpu.WithWorkers(4))
//	    x := tensor.Zeros[float32](tensor.Shape{2, 1, 2, 200}, backend)
//	}
func New(opts ...Option) *Backend {
	return internalcpu.New(opts...)
}

// WithWorkers caps the number of goroutines a single operation may use.
// n <= 0 means one per CPU; n == 1 runs every kernel on the calling goroutine.
func WithWorkers(n int) Option {
	return internalcpu.WithWorkers(n)
}
