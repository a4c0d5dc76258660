// Package envconfig reads encoder runtime settings from the environment.
package envconfig

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// maxWorkers caps VQVAE_NUM_WORKERS.
const maxWorkers = 1 << 16

// NumWorkers returns the worker limit for the CPU backend.
// Configurable via VQVAE_NUM_WORKERS; 0 (default) means one per CPU.
// Values above 65536 are clamped.
func NumWorkers() int {
	n := Uint("VQVAE_NUM_WORKERS", 0)()
	if n > maxWorkers {
		slog.Warn("environment variable out of range, clamping", "key", "VQVAE_NUM_WORKERS", "value", n, "max", maxWorkers)
		return maxWorkers
	}
	return int(n)
}

// LogLevel returns the log level.
// Configurable via VQVAE_DEBUG: 0/false = INFO (default), 1/true = DEBUG,
// other integers n map to slog.Level(-4n).
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("VQVAE_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// Uint returns a reader for an unsigned integer variable with a default.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			n, err := strconv.ParseUint(s, 10, 64)
			if err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
				return defaultValue
			}
			return uint(n)
		}
		return defaultValue
	}
}

// Var returns an environment variable stripped of surrounding quotes and
// whitespace.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// Values returns the effective settings, for diagnostics.
func Values() map[string]string {
	return map[string]string{
		"VQVAE_NUM_WORKERS": strconv.Itoa(NumWorkers()),
		"VQVAE_DEBUG":       LogLevel().String(),
	}
}
