package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/born-ml/vqvae/backend/cpu"
	"github.com/born-ml/vqvae/internal/envconfig"
	"github.com/born-ml/vqvae/internal/vqvae"
	"github.com/born-ml/vqvae/tensor"
)

const version = "v0.1.0-dev"

// NewCLI builds the root command.
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "vqvae",
		Short:         "VQ-VAE encoder",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			if v, _ := cmd.Flags().GetBool("version"); v {
				versionHandler(cmd, args)
				return
			}
			_ = cmd.Help()
		},
	}
	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a random input batch and report the latent shape",
		Args:  cobra.NoArgs,
		RunE:  EncodeHandler,
	}
	addConfigFlags(encodeCmd)
	encodeCmd.Flags().Int("batch", 200, "Batch size")
	encodeCmd.Flags().Int("height", 2, "Input height")
	encodeCmd.Flags().Int("width", 200, "Input width")
	encodeCmd.Flags().Int64("seed", 1, "Seed for weights and input")
	encodeCmd.Flags().Int("workers", 0, "Goroutines per operation (default VQVAE_NUM_WORKERS or one per CPU)")

	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the per-stage shape schedule without building weights",
		Args:  cobra.NoArgs,
		RunE:  PlanHandler,
	}
	addConfigFlags(planCmd)
	planCmd.Flags().Int("batch", 200, "Batch size")
	planCmd.Flags().Int("height", 2, "Input height")
	planCmd.Flags().Int("width", 200, "Input width")

	envCmd := &cobra.Command{
		Use:   "env",
		Short: "Show effective environment settings",
		Args:  cobra.NoArgs,
		Run:   EnvHandler,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run:   versionHandler,
	}

	rootCmd.AddCommand(encodeCmd, planCmd, envCmd, versionCmd)

	return rootCmd
}

func addConfigFlags(cmd *cobra.Command) {
	def := vqvae.DefaultConfig()
	cmd.Flags().Int("in-dim", def.InDim, "Input channels")
	cmd.Flags().Int("h-dim", def.HDim, "Latent channels (even)")
	cmd.Flags().Int("n-res-layers", def.NResLayers, "Residual blocks")
	cmd.Flags().Int("res-h-dim", def.ResHDim, "Hidden width of each residual block")
}

func configFromFlags(cmd *cobra.Command) (vqvae.Config, error) {
	var cfg vqvae.Config
	var err error
	if cfg.InDim, err = cmd.Flags().GetInt("in-dim"); err != nil {
		return cfg, err
	}
	if cfg.HDim, err = cmd.Flags().GetInt("h-dim"); err != nil {
		return cfg, err
	}
	if cfg.NResLayers, err = cmd.Flags().GetInt("n-res-layers"); err != nil {
		return cfg, err
	}
	if cfg.ResHDim, err = cmd.Flags().GetInt("res-h-dim"); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func inputShapeFromFlags(cmd *cobra.Command, cfg vqvae.Config) (tensor.Shape, error) {
	batch, err := cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}
	height, err := cmd.Flags().GetInt("height")
	if err != nil {
		return nil, err
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return nil, err
	}
	return tensor.Shape{batch, cfg.InDim, height, width}, nil
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: envconfig.LogLevel()}))
}

// EncodeHandler builds an encoder, runs it on a random batch and prints the
// input and latent shapes with summary statistics of the latent.
func EncodeHandler(cmd *cobra.Command, _ []string) error {
	cfg, err := configFromFlags(cmd)
	if err != nil {
		return err
	}
	shape, err := inputShapeFromFlags(cmd, cfg)
	if err != nil {
		return err
	}
	seed, err := cmd.Flags().GetInt64("seed")
	if err != nil {
		return err
	}

	var opts []cpu.Option
	if cmd.Flags().Changed("workers") {
		workers, _ := cmd.Flags().GetInt("workers")
		opts = append(opts, cpu.WithWorkers(workers))
	}
	backend := cpu.New(opts...)
	logger := newLogger(cmd.ErrOrStderr())

	// Reject bad input before spending time on weight initialization.
	if _, err := vqvae.Plan(cfg, shape); err != nil {
		return err
	}

	enc, err := vqvae.NewEncoder(backend, cfg, vqvae.WithSeed(seed), vqvae.WithLogger(logger))
	if err != nil {
		return err
	}

	x := tensor.Randn[float32](shape, rand.New(rand.NewSource(seed+1)), backend) //nolint:gosec // G404: test input
	start := time.Now()
	z, err := enc.Forward(x)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	minV, maxV, mean := summarize(z.Data())
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "encoder:    %s\n", enc)
	fmt.Fprintf(out, "backend:    %s (workers=%d, features=%s)\n",
		backend.Name(), backend.Workers(), strings.Join(backend.Features(), ","))
	fmt.Fprintf(out, "parameters: %d\n", enc.NumParameters())
	fmt.Fprintf(out, "input:      %v\n", x.Shape())
	fmt.Fprintf(out, "output:     %v\n", z.Shape())
	fmt.Fprintf(out, "stats:      min=%.4f max=%.4f mean=%.4f\n", minV, maxV, mean)
	logger.Info("encode finished", "elapsed", elapsed, "workers", backend.Workers())
	return nil
}

// PlanHandler prints the shape after every stage.
func PlanHandler(cmd *cobra.Command, _ []string) error {
	cfg, err := configFromFlags(cmd)
	if err != nil {
		return err
	}
	shape, err := inputShapeFromFlags(cmd, cfg)
	if err != nil {
		return err
	}

	plan, err := vqvae.Plan(cfg, shape)
	if err != nil {
		var shapeErr *vqvae.ShapeError
		if errors.As(err, &shapeErr) && shapeErr.Stage > 0 {
			return fmt.Errorf("input does not survive stage %d: %w", shapeErr.Stage, err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "input    %v\n", shape)
	for _, s := range plan {
		fmt.Fprintf(out, "stage %d  %v\n", s.Stage, tensor.Shape{shape[0], s.Channels, s.Height, s.Width})
	}
	last := plan[len(plan)-1]
	fmt.Fprintf(out, "output   %v (%d residual layers)\n", tensor.Shape{shape[0], last.Channels, last.Height, last.Width}, cfg.NResLayers)
	return nil
}

// EnvHandler prints the effective VQVAE_* settings.
func EnvHandler(cmd *cobra.Command, _ []string) {
	values := envconfig.Values()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, values[k])
	}
}

func versionHandler(cmd *cobra.Command, _ []string) {
	fmt.Fprintf(cmd.OutOrStdout(), "vqvae version %s\n", version)
}

func summarize(data []float32) (minV, maxV, mean float64) {
	minV, maxV = math.Inf(1), math.Inf(-1)
	var sum float64
	for _, v := range data {
		f := float64(v)
		minV = math.Min(minV, f)
		maxV = math.Max(maxV, f)
		sum += f
	}
	if len(data) > 0 {
		mean = sum / float64(len(data))
	}
	return minV, maxV, mean
}
