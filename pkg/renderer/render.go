package renderer

import (
	"image"
	"math/rand"
	"runtime"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/eigenein/raytracer/pkg/color"
)

// rowSeedMix decorrelates the per-row PRNG streams derived from the master seed
const rowSeedMix = 0x2545F4914F6CDD1D

// Render traces the whole image and assembles the final 16-bit picture.
// Rows are shuffled and handed to a worker pool; each row is traced with
// its own PRNG seeded from (row, master seed), so the result is
// reproducible for a fixed seed at any thread count
func (t *Tracer) Render(progress ProgressSink, logger *zap.Logger) *image.RGBA64 {
	logger.Info("starting the render",
		zap.Int("width", t.width),
		zap.Int("height", t.height),
		zap.Int("samples_per_pixel", t.options.SamplesPerPixel),
		zap.Int("max_bounces", t.options.MaxBounces),
		zap.Float64("min_hit_distance", t.options.MinHitDistance),
		zap.Float64("min_attenuation", t.options.MinAttenuation),
		zap.Stringer("camera_location", t.scene.Camera.Location),
		zap.Stringer("camera_look_at", t.scene.Camera.LookAt),
		zap.Stringer("viewport_dx", t.viewport.DX),
		zap.Stringer("viewport_dy", t.viewport.DY),
	)

	rowIndices := rand.New(rand.NewSource(t.options.Seed)).Perm(t.height)

	threads := t.options.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	pool := pond.NewPool(threads)

	// Rows are disjoint: every worker writes only the row it owns
	rows := make([][]color.XYZ, t.height)
	for _, index := range rowIndices {
		y := index
		pool.Submit(func() {
			rows[y] = t.renderRow(y)
			progress.Increment()
		})
	}
	pool.StopAndWait()
	progress.Finish()

	logger.Info("render finished, assembling the image")
	return t.assemble(rows)
}

// newRowRNG derives a row-specific PRNG from the master seed
func (t *Tracer) newRowRNG(y int) *rand.Rand {
	return rand.New(rand.NewSource(t.options.Seed ^ (int64(y)+1)*rowSeedMix))
}

// renderRow traces one image row with a row-specific PRNG
func (t *Tracer) renderRow(y int) []color.XYZ {
	rng := t.newRowRNG(y)

	row := make([]color.XYZ, t.width)
	for x := range row {
		row[x] = t.RenderPixel(x, y, rng)
	}
	return row
}

// assemble normalizes the accumulated flux by the maximum intensity and
// converts it to a gamma-corrected 16-bit sRGB image
func (t *Tracer) assemble(rows [][]color.XYZ) *image.RGBA64 {
	maxIntensity := 1.0
	for _, row := range rows {
		for _, flux := range row {
			if component := flux.MaxComponent(); component > maxIntensity {
				maxIntensity = component
			}
		}
	}
	scale := 1 / maxIntensity

	img := image.NewRGBA64(image.Rect(0, 0, t.width, t.height))
	for y, row := range rows {
		for x, flux := range row {
			rgb := flux.Scale(scale).ToSRGB().ApplyGamma(t.options.Gamma)
			img.SetRGBA64(x, y, rgb.RGBA64())
		}
	}
	return img
}
