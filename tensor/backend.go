// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/vqvae/internal/tensor"

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - backend/cpu: Pure Go, im2col convolutions on gonum BLAS
//
// Every operation returns a new tensor and leaves its operands untouched.
// Misuse (bad shapes, failed allocation) panics with an error wrapping
// ErrInvalidShape or ErrAllocation.
//
// Example:
//
//	import (
//	    "github.com/born-ml/vqvae/backend/cpu"
//	    "github.com/born-ml/vqvae/tensor"
//	)
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)  // Uses backend.Add under the hood
type Backend = tensor.Backend
