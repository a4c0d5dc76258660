// Package cpu implements the pure Go CPU backend.
package cpu

import (
	"fmt"

	"github.com/born-ml/vqvae/internal/envconfig"
	"github.com/born-ml/vqvae/internal/parallel"
	"github.com/born-ml/vqvae/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
//
// Every operation allocates its result and never writes into its inputs,
// so a single CPUBackend is safe for concurrent use.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// Option configures a CPUBackend.
type Option func(*CPUBackend)

// WithWorkers caps the number of goroutines used per operation.
// n <= 0 means one per CPU; n == 1 runs every kernel sequentially.
func WithWorkers(n int) Option {
	return func(cpu *CPUBackend) {
		cpu.par = parallel.DefaultConfig().WithWorkers(n)
	}
}

// New creates a new CPU backend. Without options the worker limit comes from
// VQVAE_NUM_WORKERS.
func New(opts ...Option) *CPUBackend {
	cpu := &CPUBackend{
		device: tensor.CPU,
		par:    parallel.DefaultConfig().WithWorkers(envconfig.NumWorkers()),
	}
	for _, opt := range opts {
		opt(cpu)
	}
	return cpu
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Workers returns the configured worker limit.
func (cpu *CPUBackend) Workers() int {
	if !cpu.par.Enabled {
		return 1
	}
	return cpu.par.NumWorkers
}

// alloc creates a result tensor or panics with the engine error.
func (cpu *CPUBackend) alloc(op string, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Errorf("%s: %w", op, err))
	}
	return result
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Errorf("add: %w: dtype mismatch %s vs %s", tensor.ErrInvalidShape, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Errorf("add: %w", err))
	}

	result := cpu.alloc("add", outShape, a.DType())

	switch a.DType() {
	case tensor.Float32:
		if needsBroadcast {
			addBroadcast(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape)
		} else {
			addVectorized(result.AsFloat32(), a.AsFloat32(), b.AsFloat32())
		}
	case tensor.Float64:
		if needsBroadcast {
			addBroadcast(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape)
		} else {
			addVectorized(result.AsFloat64(), a.AsFloat64(), b.AsFloat64())
		}
	default:
		panic(fmt.Sprintf("add: unsupported dtype %s", a.DType()))
	}

	return result
}

// Reshape returns a copy of t with a new shape.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result, err := t.WithShape(newShape)
	if err != nil {
		panic(fmt.Errorf("reshape: %w", err))
	}
	return result
}

func addVectorized[T float32 | float64](dst, a, b []T) {
	for i := range a {
		dst[i] = a[i] + b[i]
	}
}

func addBroadcast[T float32 | float64](dst, a, b []T, aShape, bShape, outShape tensor.Shape) {
	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(aShape, outShape)
	bStrides := broadcastStrides(bShape, outShape)

	for i := range dst {
		dst[i] = a[flatIndex(i, outStrides, aStrides)] + b[flatIndex(i, outStrides, bStrides)]
	}
}
