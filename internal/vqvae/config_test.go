package vqvae

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"default", DefaultConfig(), ""},
		{"no residual layers", Config{InDim: 3, HDim: 2, NResLayers: 0, ResHDim: 1}, ""},
		{"zero in_dim", Config{InDim: 0, HDim: 128, NResLayers: 3, ResHDim: 64}, "in_dim"},
		{"negative h_dim", Config{InDim: 1, HDim: -2, NResLayers: 3, ResHDim: 64}, "h_dim"},
		{"odd h_dim", Config{InDim: 1, HDim: 127, NResLayers: 3, ResHDim: 64}, "h_dim"},
		{"negative layers", Config{InDim: 1, HDim: 128, NResLayers: -1, ResHDim: 64}, "n_res_layers"},
		{"zero res_h_dim", Config{InDim: 1, HDim: 128, NResLayers: 3, ResHDim: 0}, "res_h_dim"},
		{"first field wins", Config{InDim: 0, HDim: 3, NResLayers: -1, ResHDim: 0}, "in_dim"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
			assert.NotErrorIs(t, err, ErrShape)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestConfig_String(t *testing.T) {
	assert.Equal(t, "in_dim=1, h_dim=128, n_res_layers=3, res_h_dim=64", DefaultConfig().String())
}

func TestErrors_Messages(t *testing.T) {
	err := &ConfigError{Field: "h_dim", Value: 7, Reason: "must be even"}
	assert.Equal(t, "vqvae: invalid config: h_dim=7: must be even", err.Error())

	shapeErr := &ShapeError{Stage: 2, Axis: "width", Size: 0, Input: []int{1, 1, 4, 2}, Detail: "d"}
	assert.Equal(t, "vqvae: input [1 1 4 2]: stage 2 output width would be 0: d", shapeErr.Error())

	engineErr := errors.New("out of memory")
	resErr := &ResourceError{Op: "forward", Err: engineErr}
	assert.ErrorIs(t, resErr, ErrResource)
	assert.ErrorIs(t, resErr, engineErr)
	assert.NotErrorIs(t, resErr, ErrConfiguration)
	assert.Equal(t, "vqvae: forward: out of memory", resErr.Error())
}
