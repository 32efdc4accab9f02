package main

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eigenein/raytracer/pkg/imageio"
	"github.com/eigenein/raytracer/pkg/renderer"
	"github.com/eigenein/raytracer/pkg/scene"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "raytracer",
		Short:         "Spectral Monte-Carlo path tracer",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRenderCommand(), newSchemaCommand())
	return root
}

func newRenderCommand() *cobra.Command {
	var (
		width   int
		height  int
		options = renderer.DefaultOptions()
	)

	command := &cobra.Command{
		Use:   "render INPUT OUTPUT",
		Short: "Render a scene file into a 16-bit image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer logger.Sync()

			inputPath, outputPath := args[0], args[1]

			loadedScene, err := scene.Load(inputPath)
			if err != nil {
				logger.Error("failed to load the scene", zap.Error(err))
				return err
			}
			logger.Info("loaded the scene",
				zap.String("path", inputPath),
				zap.Int("surfaces", len(loadedScene.Surfaces)),
			)

			startTime := time.Now()
			tracer := renderer.NewTracer(loadedScene, width, height, options)
			img := tracer.Render(newBarProgress(height), logger)
			logger.Info("traced the scene", zap.Duration("elapsed", time.Since(startTime)))

			if err := imageio.Write(img, outputPath); err != nil {
				logger.Error("failed to write the image", zap.Error(err))
				return err
			}
			logger.Info("saved the image", zap.String("path", outputPath))
			return nil
		},
	}

	flags := command.Flags()
	flags.IntVar(&width, "width", 1920, "output image width")
	flags.IntVar(&height, "height", 1080, "output image height")
	flags.IntVar(&options.SamplesPerPixel, "samples", options.SamplesPerPixel,
		"samples per pixel")
	flags.IntVar(&options.MaxBounces, "max-bounces", options.MaxBounces,
		"maximum number of ray bounces")
	flags.Float64Var(&options.MinHitDistance, "min-hit-distance", options.MinHitDistance,
		"lower bound of every hit query")
	flags.Float64Var(&options.MinAttenuation, "min-attenuation", options.MinAttenuation,
		"throughput floor that terminates a path")
	flags.IntVar(&options.Threads, "threads", 0,
		"number of worker threads (0 = all CPUs)")
	flags.IntVar(&options.MaxBVHLeafSize, "max-bvh-leaf-size", options.MaxBVHLeafSize,
		"maximum number of surfaces per BVH leaf")
	flags.Float64Var(&options.Gamma, "gamma", options.Gamma,
		"extra gamma applied after the sRGB transfer")
	flags.Int64Var(&options.Seed, "seed", 0,
		"master seed of the per-row random streams")
	return command
}

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the scene file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := scene.JSONSchema()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(schema))
			return nil
		},
	}
}

// barProgress renders a terminal progress bar, one tick per finished row
type barProgress struct {
	bar *progressbar.ProgressBar
}

func newBarProgress(totalRows int) *barProgress {
	return &barProgress{
		bar: progressbar.NewOptions(totalRows,
			progressbar.OptionSetDescription("tracing (rows)"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
		),
	}
}

func (p *barProgress) Increment() {
	p.bar.Add(1)
}

func (p *barProgress) Finish() {
	p.bar.Finish()
}
