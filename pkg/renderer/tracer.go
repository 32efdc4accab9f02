package renderer

import (
	"math"
	"math/rand"

	"github.com/eigenein/raytracer/pkg/color"
	"github.com/eigenein/raytracer/pkg/core"
	"github.com/eigenein/raytracer/pkg/geometry"
	"github.com/eigenein/raytracer/pkg/optics"
	"github.com/eigenein/raytracer/pkg/scene"
)

// Options configures the tracer
type Options struct {
	SamplesPerPixel int     // Traced rays per pixel
	MaxBounces      int     // Cap on the bounce loop
	MinHitDistance  float64 // Lower bound of every hit query
	MinAttenuation  float64 // Throughput floor that terminates a path
	MaxBVHLeafSize  int     // Cap on surfaces per BVH leaf
	Gamma           float64 // Extra gamma applied after the sRGB transfer
	Threads         int     // Worker count, 0 for all CPUs
	Seed            int64   // Master seed of the per-row PRNGs
}

// DefaultOptions returns the default tracer configuration
func DefaultOptions() Options {
	return Options{
		SamplesPerPixel: 1,
		MaxBounces:      5,
		MinHitDistance:  1e-6,
		MinAttenuation:  1e-6,
		MaxBVHLeafSize:  geometry.DefaultMaxLeafSize,
		Gamma:           1.0,
	}
}

// Tracer renders a scene into per-pixel XYZ flux. The scene and the BVH
// are immutable during the render and shared by all workers
type Tracer struct {
	scene    *scene.Scene
	bvh      *geometry.BVH
	viewport Viewport
	options  Options
	width    int
	height   int
}

// NewTracer builds the viewport and the BVH for a scene
func NewTracer(s *scene.Scene, width, height int, options Options) *Tracer {
	// The build permutes the slice, so give the BVH its own copy
	surfaces := make([]geometry.Surface, len(s.Surfaces))
	copy(surfaces, s.Surfaces)

	return &Tracer{
		scene:    s,
		bvh:      geometry.NewBVH(surfaces, options.MaxBVHLeafSize),
		viewport: NewViewport(s.Camera, width, height),
		options:  options,
		width:    width,
		height:   height,
	}
}

// RenderPixel accumulates the XYZ flux of a single pixel over all samples
func (t *Tracer) RenderPixel(x, y int, rng *rand.Rand) color.XYZ {
	// Independent sequences per pixel so sample dimensions do not correlate;
	// the pixel's own uniform offsets decorrelate neighboring pixels
	subPixel := core.NewOffsetHalton2(5, 3, core.NewVec2(rng.Float64(), rng.Float64()))
	wavelengths := core.NewVanDerCorput(2)
	directions := core.NewOffsetHalton2(2, 3, core.NewVec2(rng.Float64(), rng.Float64()))

	var total color.XYZ
	for sample := 0; sample < t.options.SamplesPerPixel; sample++ {
		offset := subPixel.Next2D()
		wavelength := color.MinWavelength +
			wavelengths.Next()*(color.MaxWavelength-color.MinWavelength)

		ray := t.primaryRay(x, y, offset)
		radiance := t.traceRay(ray, wavelength, rng, directions)
		total = total.Add(color.FromWavelength(wavelength).Scale(radiance))
	}
	return total
}

// primaryRay casts a ray from the camera through the given pixel
func (t *Tracer) primaryRay(x, y int, offset core.Vec2) core.Ray {
	viewportPoint := t.scene.Camera.LookAt.
		Add(t.viewport.At(float64(x)+offset.X, float64(y)+offset.Y))
	return core.NewRayTo(t.scene.Camera.Location, viewportPoint)
}

// traceRay follows a single wavelength through the scene and returns the
// collected spectral radiance. The loop is iterative: each bounce picks
// exactly one scattered ray and accumulates throughput
func (t *Tracer) traceRay(ray core.Ray, wavelength float64, rng *rand.Rand, directions core.Sequence2D) float64 {
	ambient := t.scene.AmbientEmittance.At(wavelength)

	totalRadiance := 0.0
	throughput := 1.0

	for bounce := 0; bounce < t.options.MaxBounces; bounce++ {
		if throughput < t.options.MinAttenuation {
			break
		}

		hit, ok := t.bvh.Hit(ray, t.options.MinHitDistance, math.Inf(1), rng)
		if !ok {
			// The ray escaped the scene
			totalRadiance += throughput * ambient
			break
		}

		if hit.Type == geometry.HitEnter && hit.Material.Emittance != nil {
			totalRadiance += throughput * hit.Material.Emittance.At(wavelength)
		}

		cosTheta1 := math.Max(0, math.Min(-hit.Normal.Dot(ray.Direction), 1))

		scattered, attenuation, ok := t.traceRefraction(ray, hit, wavelength, cosTheta1, rng)
		if !ok {
			scattered, attenuation, ok = t.traceDiffusion(hit, wavelength, rng, directions)
		}
		if !ok {
			scattered, attenuation, ok = t.traceSpecularReflection(ray, hit, wavelength, directions)
		}
		if !ok {
			// The surface neither reflects nor refracts
			break
		}

		throughput *= attenuation
		ray = scattered
	}

	return totalRadiance
}

// traceRefraction attempts the dielectric branch: Snell's law with
// Schlick's approximation deciding between refraction and reflection.
// See: https://en.wikipedia.org/wiki/Snell%27s_law#Vector_form
func (t *Tracer) traceRefraction(
	ray core.Ray,
	hit *geometry.Hit,
	wavelength float64,
	cosTheta1 float64,
	rng *rand.Rand,
) (core.Ray, float64, bool) {
	transmittance := hit.Material.Transmittance
	if transmittance == nil {
		return core.Ray{}, 0, false
	}

	var index optics.RelativeRefractiveIndex
	if hit.Type == geometry.HitLeave {
		index = optics.RelativeRefractiveIndex{
			Incident:  transmittance.RefractedIndex.At(wavelength),
			Refracted: transmittance.IncidentIndex.At(wavelength),
		}
	} else {
		index = optics.RelativeRefractiveIndex{
			Incident:  transmittance.IncidentIndex.At(wavelength),
			Refracted: transmittance.RefractedIndex.At(wavelength),
		}
	}

	mu := index.Ratio()
	sinSquaredTheta2 := mu * mu * (1 - cosTheta1*cosTheta1)
	if sinSquaredTheta2 > 1 {
		// Total internal reflection, refraction is not possible
		return core.Ray{}, 0, false
	}

	if index.Reflectance(cosTheta1) > rng.Float64() {
		// Reflectance wins over transmission
		return core.Ray{}, 0, false
	}

	cosTheta2 := math.Sqrt(1 - sinSquaredTheta2)
	direction := ray.Direction.Multiply(mu).
		Add(hit.Normal.Multiply(mu*cosTheta1 - cosTheta2))

	attenuation := 1.0
	if hit.Type == geometry.HitLeave && transmittance.AttenuationCoefficient != nil {
		// The ray has just crossed the body: apply Beer-Lambert decay
		// over the traversed chord
		attenuation = math.Exp(-hit.Distance * transmittance.AttenuationCoefficient.At(wavelength))
	}

	return core.NewRay(hit.Point, direction), attenuation, true
}

// traceDiffusion attempts Lambertian scattering:
// https://en.wikipedia.org/wiki/Lambertian_reflectance
func (t *Tracer) traceDiffusion(
	hit *geometry.Hit,
	wavelength float64,
	rng *rand.Rand,
	directions core.Sequence2D,
) (core.Ray, float64, bool) {
	reflectance := hit.Material.Reflectance
	if reflectance == nil || reflectance.Diffusion == nil {
		return core.Ray{}, 0, false
	}
	if rng.Float64() >= *reflectance.Diffusion {
		return core.Ray{}, 0, false
	}

	direction := hit.Normal.Add(core.SampleUnitVector(directions.Next2D()))

	// |normal + unit| ∈ [0, 2]: the factor makes the throughput
	// cosine-weighted; a near-zero sum degenerates to the normal itself
	length := direction.Length()
	if length < 1e-12 {
		direction = hit.Normal
		length = 1
	}
	attenuation := reflectance.Attenuation.At(wavelength) * length / 2

	return core.NewRay(hit.Point, direction), attenuation, true
}

// traceSpecularReflection attempts mirror reflection, optionally fuzzed:
// https://en.wikipedia.org/wiki/Specular_reflection
func (t *Tracer) traceSpecularReflection(
	ray core.Ray,
	hit *geometry.Hit,
	wavelength float64,
	directions core.Sequence2D,
) (core.Ray, float64, bool) {
	reflectance := hit.Material.Reflectance
	if reflectance == nil {
		return core.Ray{}, 0, false
	}

	direction := ray.Direction.ReflectAbout(hit.Normal)
	if reflectance.Fuzz != nil {
		direction = direction.
			Add(core.SampleUnitVector(directions.Next2D()).Multiply(*reflectance.Fuzz))
	}

	attenuation := reflectance.Attenuation.At(wavelength)
	return core.NewRay(hit.Point, direction), attenuation, true
}
