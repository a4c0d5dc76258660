// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Im2col convolutions on gonum BLAS
//   - Float32 and Float64 support
//   - NumPy-compatible broadcasting for Add
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/vqvae/backend/cpu"
//	    "github.com/born-ml/vqvae/vqvae"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    enc, err := vqvae.NewEncoder(backend, vqvae.DefaultConfig())
//	    ...
//	}
//
// # Performance
//
// Convolutions process batch items in parallel. The number of goroutines
// per operation is set with WithWorkers or the VQVAE_NUM_WORKERS
// environment variable.
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation
// allocates its own output and does not share mutable state.
package cpu
