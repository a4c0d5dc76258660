package vqvae

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/vqvae/internal/backend/cpu"
	"github.com/born-ml/vqvae/internal/tensor"
)

func TestConvDownsampler_Plan(t *testing.T) {
	down := NewConvDownsampler(1, 8, nil, cpu.New())

	plan, err := down.Plan(2, 200)
	require.NoError(t, err)

	want := []StageShape{
		{Stage: 1, Channels: 4, Height: 3, Width: 199},
		{Stage: 2, Channels: 8, Height: 4, Width: 198},
		{Stage: 3, Channels: 8, Height: 6, Width: 198},
	}
	if diff := cmp.Diff(want, plan); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestConvDownsampler_PlanRejectsNarrowInput(t *testing.T) {
	down := NewConvDownsampler(1, 8, nil, cpu.New())

	tests := []struct {
		name   string
		height int
		width  int
		stage  int
	}{
		{"width 1 collapses at stage 1", 2, 1, 1},
		{"width 2 collapses at stage 2", 2, 2, 2},
		{"width 2 with tall input", 50, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := down.Plan(tt.height, tt.width)
			require.Error(t, err)
			assert.Nil(t, plan)
			assert.ErrorIs(t, err, ErrShape)

			var shapeErr *ShapeError
			require.True(t, errors.As(err, &shapeErr))
			assert.Equal(t, tt.stage, shapeErr.Stage)
			assert.Equal(t, "width", shapeErr.Axis)
			assert.Equal(t, 0, shapeErr.Size)
		})
	}
}

func TestConvDownsampler_SmallestInputs(t *testing.T) {
	down := NewConvDownsampler(1, 2, nil, cpu.New())

	// A single row grows to three rows, so height never limits the schedule.
	plan, err := down.Plan(1, 3)
	require.NoError(t, err)
	assert.Equal(t, StageShape{Stage: 3, Channels: 2, Height: 5, Width: 1}, plan[2])
}

func TestConvDownsampler_StageChannels(t *testing.T) {
	down := NewConvDownsampler(3, 16, nil, cpu.New())

	assert.Equal(t, 3, down.Stage(1).InChannels())
	assert.Equal(t, 8, down.Stage(1).OutChannels())
	assert.Equal(t, 8, down.Stage(2).InChannels())
	assert.Equal(t, 16, down.Stage(2).OutChannels())
	assert.Equal(t, 16, down.Stage(3).InChannels())
	assert.Equal(t, 16, down.Stage(3).OutChannels())

	assert.Equal(t, [2]int{2, 4}, down.Stage(1).KernelSize())
	assert.Equal(t, [2]int{2, 4}, down.Stage(2).KernelSize())
	assert.Equal(t, [2]int{1, 3}, down.Stage(3).KernelSize())
	assert.Len(t, down.Parameters(), 6)
}

func TestConvDownsampler_ForwardMatchesPlan(t *testing.T) {
	backend := cpu.New()
	down := NewConvDownsampler(2, 6, rand.New(rand.NewSource(1)), backend)

	x := tensor.Randn[float32](tensor.Shape{3, 2, 5, 9}, rand.New(rand.NewSource(2)), backend)
	plan, err := down.Plan(5, 9)
	require.NoError(t, err)

	y := down.Forward(x)
	last := plan[len(plan)-1]
	assert.Equal(t, tensor.Shape{3, 6, last.Height, last.Width}, y.Shape())
}

func TestConvDownsampler_StateDictKeys(t *testing.T) {
	down := NewConvDownsampler(1, 4, nil, cpu.New())

	keys := make([]string, 0)
	for k := range down.StateDict() {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"0.weight", "0.bias", "2.weight", "2.bias", "4.weight", "4.bias"}, keys)
}
