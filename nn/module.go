// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/vqvae/internal/nn"
	"github.com/born-ml/vqvae/tensor"
)

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: Compute output from input
//   - Parameters: Return all trainable parameters
//   - StateDict: Export parameters keyed by name
//   - LoadStateDict: Import parameters keyed like StateDict
//
// Modules can be composed to build larger blocks:
//
//	block := nn.NewSequential[*cpu.Backend](
//	    nn.NewReLU[*cpu.Backend](),
//	    nn.NewConv2D(128, 64, 3, 3, 1, 1, false, rng, backend),
//	    nn.NewReLU[*cpu.Backend](),
//	    nn.NewConv2D(64, 128, 1, 1, 1, 0, false, rng, backend),
//	)
//
// Forward must not modify its input. Modules are safe for concurrent
// Forward calls as long as nobody writes to their parameters meanwhile.
type Module[B tensor.Backend] = nn.Module[B]
