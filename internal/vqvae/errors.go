package vqvae

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by this package matches exactly one of
// them under errors.Is. None is retryable: the same call fails the same way.
var (
	ErrConfiguration = errors.New("invalid encoder configuration")
	ErrShape         = errors.New("input shape incompatible with encoder")
	ErrResource      = errors.New("tensor engine resource failure")
)

// ConfigError reports an invalid constructor argument.
type ConfigError struct {
	Field  string // Config field name, e.g. "h_dim"
	Value  int    // Offending value
	Reason string // What the value must satisfy
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("vqvae: invalid config: %s=%d: %s", e.Field, e.Value, e.Reason)
}

// Unwrap returns ErrConfiguration.
func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// ShapeError reports an input the encoder cannot process.
//
// Stage is 0 when the input itself is rejected (rank, a non-positive
// dimension or the channel count) and 1..3 when the named convolution stage
// would produce a non-positive spatial size. Axis and Size then identify the computed dimension.
type ShapeError struct {
	Stage  int
	Axis   string // "rank", "batch", "channels", "height" or "width"
	Size   int    // Computed (or received) size along Axis
	Input  []int  // Input shape as received
	Detail string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Stage == 0 {
		return fmt.Sprintf("vqvae: input %v: %s %d: %s", e.Input, e.Axis, e.Size, e.Detail)
	}
	return fmt.Sprintf("vqvae: input %v: stage %d output %s would be %d: %s",
		e.Input, e.Stage, e.Axis, e.Size, e.Detail)
}

// Unwrap returns ErrShape.
func (e *ShapeError) Unwrap() error {
	return ErrShape
}

// ResourceError reports an allocation failure inside the tensor engine.
// The engine's error is kept unmodified and is reachable through errors.Is
// and errors.As.
type ResourceError struct {
	Op  string // "build" or "forward"
	Err error  // Engine error
}

// Error implements the error interface.
func (e *ResourceError) Error() string {
	return fmt.Sprintf("vqvae: %s: %v", e.Op, e.Err)
}

// Unwrap returns ErrResource and the engine error.
func (e *ResourceError) Unwrap() []error {
	return []error{ErrResource, e.Err}
}
