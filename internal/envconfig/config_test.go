package envconfig

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumWorkers(t *testing.T) {
	cases := map[string]int{
		"":                     0,
		"4":                    4,
		" '8' ":                8,
		"-1":                   0,
		"many":                 0,
		"18446744073709551615": maxWorkers,
		"70000":                maxWorkers,
	}

	for value, want := range cases {
		t.Run(value, func(t *testing.T) {
			t.Setenv("VQVAE_NUM_WORKERS", value)
			assert.Equal(t, want, NumWorkers())
		})
	}
}

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"false": slog.LevelInfo,
		"0":     slog.LevelInfo,
		"1":     slog.LevelDebug,
		"true":  slog.LevelDebug,
		"2":     slog.Level(-8),
	}

	for value, want := range cases {
		t.Run(value, func(t *testing.T) {
			t.Setenv("VQVAE_DEBUG", value)
			assert.Equal(t, want, LogLevel())
		})
	}
}

func TestValues(t *testing.T) {
	t.Setenv("VQVAE_NUM_WORKERS", "3")
	t.Setenv("VQVAE_DEBUG", "1")
	assert.Equal(t, map[string]string{
		"VQVAE_NUM_WORKERS": "3",
		"VQVAE_DEBUG":       "DEBUG",
	}, Values())
}
