// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the tensor types the encoder consumes and produces.
//
// # Overview
//
// A tensor is a dense, row-major array with a runtime shape. Encoder inputs
// and outputs are always 4D, laid out as [batch, channels, height, width].
//
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting for Add
//   - Device abstraction (CPU only for now)
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/vqvae/backend/cpu"
//	    "github.com/born-ml/vqvae/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x, err := tensor.FromSlice([]float32{1, -2, 3, -4}, tensor.Shape{1, 1, 2, 2}, backend)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    y := x.ReLU() // [1, 0, 3, 0]
//	}
//
// # Supported Data Types
//
// float32 is used throughout the encoder. float64 is supported by the CPU
// backend for Add, ReLU and Conv2D.
//
// # Immutability
//
// Operations never write into their operands. Every result is a fresh
// tensor, so a tensor shared between goroutines stays valid as long as no
// one calls Set or writes through Data.
package tensor
