// Package vqvae implements the encoder of a VQ-VAE: a fixed pipeline that
// maps a [batch, in_dim, H, W] tensor to a [batch, h_dim, H', W'] latent
// feature map for a downstream vector quantizer.
package vqvae

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/born-ml/vqvae/internal/nn"
	"github.com/born-ml/vqvae/internal/tensor"
)

// State dict key prefixes. The layout follows the module tree
// conv_stack = [conv, relu, conv, relu, conv, residual_stack].
const (
	convStackPrefix = "conv_stack."
	refinerPrefix   = convStackPrefix + "5."
)

// inputAxes names the dimensions of an encoder input.
var inputAxes = [4]string{"batch", "channels", "height", "width"}

// Encoder composes a ConvDownsampler and a ResidualRefiner.
//
// Forward is a pure function of the parameters and the input: it keeps no
// state between calls and never writes to its input or its parameters, so
// concurrent Forward calls on one Encoder are safe. Mutating parameters
// (through Parameters or LoadStateDict) while a Forward is running gives
// unspecified numeric results; callers that update weights must serialize
// updates against inference themselves, e.g. with a sync.RWMutex.
type Encoder[B tensor.Backend] struct {
	cfg     Config
	down    *ConvDownsampler[B]
	refiner *ResidualRefiner[B]
	logger  *slog.Logger
}

// NewEncoder validates cfg and eagerly builds every layer and parameter.
//
// Returns a *ConfigError for invalid cfg and a *ResourceError when the
// backend cannot allocate the parameters.
//
// Example:
//
//	enc, err := vqvae.NewEncoder(cpu.New(), vqvae.Config{InDim: 1, HDim: 128, NResLayers: 3, ResHDim: 64})
//	if err != nil {
//	    return err
//	}
//	z, err := enc.Forward(x) // [200, 1, 2, 200] -> [200, 128, 6, 198]
func NewEncoder[B tensor.Backend](backend B, cfg Config, opts ...Option) (enc *Encoder[B], err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	defer recoverResource("build", &err)

	enc = &Encoder[B]{
		cfg:     cfg,
		down:    NewConvDownsampler(cfg.InDim, cfg.HDim, o.rng, backend),
		refiner: NewResidualRefiner(cfg.HDim, cfg.ResHDim, cfg.NResLayers, o.rng, backend),
		logger:  o.logger,
	}

	enc.logger.Debug("encoder built",
		"config", cfg.String(),
		"backend", backend.Name(),
		"parameters", enc.NumParameters(),
	)

	return enc, nil
}

// Forward maps x [batch, in_dim, H, W] to z [batch, h_dim, H', W'].
//
// The input is checked against the whole stage schedule before any compute
// runs, so a *ShapeError never comes with partial work. Engine allocation
// failures surface as *ResourceError. x is never modified.
func (e *Encoder[B]) Forward(x *tensor.Tensor[float32, B]) (z *tensor.Tensor[float32, B], err error) {
	if x == nil {
		return nil, &ShapeError{Axis: "rank", Detail: "nil input tensor"}
	}
	if _, err := e.OutputShape(x.Shape()); err != nil {
		return nil, err
	}

	defer recoverResource("forward", &err)

	z = e.refiner.Forward(e.down.Forward(x))

	e.logger.Debug("encoder forward", "input", x.Shape(), "output", z.Shape())
	return z, nil
}

// OutputShape returns the latent shape Forward would produce for an input
// of shape in, or the *ShapeError Forward would return.
func (e *Encoder[B]) OutputShape(in tensor.Shape) (tensor.Shape, error) {
	plan, err := e.Plan(in)
	if err != nil {
		return nil, err
	}
	last := plan[len(plan)-1]
	return tensor.Shape{in[0], last.Channels, last.Height, last.Width}, nil
}

// Plan validates in and returns the per-stage output sizes of the
// downsampler. The residual refiner keeps the last stage's shape.
func (e *Encoder[B]) Plan(in tensor.Shape) ([]StageShape, error) {
	return Plan(e.cfg, in)
}

// Plan computes the stage schedule of an encoder built from cfg for an
// input of shape in, without allocating any weights.
func Plan(cfg Config, in tensor.Shape) ([]StageShape, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	input := []int(in.Clone())
	if len(in) != 4 {
		return nil, &ShapeError{Axis: "rank", Size: len(in), Input: input, Detail: "expected 4D [batch, channels, height, width]"}
	}
	for i, dim := range in {
		if dim <= 0 {
			return nil, &ShapeError{Axis: inputAxes[i], Size: dim, Input: input, Detail: "must be positive"}
		}
	}
	if in[1] != cfg.InDim {
		return nil, &ShapeError{Axis: "channels", Size: in[1], Input: input,
			Detail: fmt.Sprintf("expected in_dim=%d", cfg.InDim)}
	}

	plan, err := planStages(cfg.HDim, in[2], in[3])
	if err != nil {
		var shapeErr *ShapeError
		if errors.As(err, &shapeErr) {
			shapeErr.Input = input
		}
		return nil, err
	}
	return plan, nil
}

// Config returns a copy of the encoder configuration.
func (e *Encoder[B]) Config() Config {
	return e.cfg
}

// Downsampler returns the convolution stages.
func (e *Encoder[B]) Downsampler() *ConvDownsampler[B] {
	return e.down
}

// Refiner returns the residual refiner.
func (e *Encoder[B]) Refiner() *ResidualRefiner[B] {
	return e.refiner
}

// Parameters returns every trainable parameter, downsampler first.
func (e *Encoder[B]) Parameters() []*nn.Parameter[B] {
	return append(e.down.Parameters(), e.refiner.Parameters()...)
}

// NumParameters returns the total number of scalar weights.
func (e *Encoder[B]) NumParameters() int {
	n := 0
	for _, p := range e.Parameters() {
		n += p.NumElements()
	}
	return n
}

// StateDict returns all parameters keyed by their path in the module tree,
// e.g. "conv_stack.0.weight" or "conv_stack.5.stack.2.res_block.3.weight".
// The returned tensors are the live parameter storage.
func (e *Encoder[B]) StateDict() map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor)
	for name, raw := range e.down.StateDict() {
		stateDict[convStackPrefix+name] = raw
	}
	for name, raw := range e.refiner.StateDict() {
		stateDict[refinerPrefix+name] = raw
	}
	return stateDict
}

// LoadStateDict copies weights into the encoder. Keys must match StateDict
// exactly; missing or unknown keys are an error. Not safe to call
// concurrently with Forward.
func (e *Encoder[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	own := e.StateDict()
	for key := range stateDict {
		if _, ok := own[key]; !ok {
			return fmt.Errorf("vqvae: unexpected key %q in state dict", key)
		}
	}

	down := make(map[string]*tensor.RawTensor)
	refiner := make(map[string]*tensor.RawTensor)
	for key, raw := range stateDict {
		if name, ok := strings.CutPrefix(key, refinerPrefix); ok {
			refiner[name] = raw
		} else if name, ok := strings.CutPrefix(key, convStackPrefix); ok {
			down[name] = raw
		}
	}

	if err := e.down.LoadStateDict(down); err != nil {
		return fmt.Errorf("vqvae: downsampler: %w", err)
	}
	if err := e.refiner.LoadStateDict(refiner); err != nil {
		return fmt.Errorf("vqvae: refiner: %w", err)
	}
	return nil
}

// String returns a string representation of the encoder.
func (e *Encoder[B]) String() string {
	return fmt.Sprintf("Encoder(%s)", e.cfg)
}

// recoverResource turns an engine allocation panic into a *ResourceError.
// Any other panic is a programming error and is re-raised.
func recoverResource(op string, err *error) {
	r := recover()
	if r == nil {
		return
	}
	if engineErr, ok := r.(error); ok && errors.Is(engineErr, tensor.ErrAllocation) {
		*err = &ResourceError{Op: op, Err: engineErr}
		return
	}
	panic(r)
}
