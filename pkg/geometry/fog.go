package geometry

import (
	"math"
	"math/rand"

	"github.com/eigenein/raytracer/pkg/core"
	"github.com/eigenein/raytracer/pkg/optics"
)

// UniformFog is a participating medium of uniform density filling an AABB.
// Scattering points are drawn by free-flight sampling: the distance to the
// next interaction is exponentially distributed with mean 1/density.
type UniformFog struct {
	Bounds   core.AABB // May be unbounded to fill all space
	Density  float64   // Reciprocal meters
	Material *optics.Material
}

// NewUniformFog creates a new uniform fog
func NewUniformFog(bounds core.AABB, density float64, material *optics.Material) *UniformFog {
	return &UniformFog{Bounds: bounds, Density: density, Material: material}
}

// Hit samples a scattering point along the ray's passage through the fog.
// A hit is a forward scatter: type Refract with the normal facing back
// along the ray.
func (f *UniformFog) Hit(ray core.Ray, tMin, tMax float64, rng *rand.Rand) (*Hit, bool) {
	tEnter, tExit, ok := f.Bounds.HitInterval(ray, tMin, tMax)
	if !ok {
		return nil, false
	}

	// Free flight from the entry point; rng.Float64() may return 0,
	// pushing the sample to infinity, which is a clean miss
	distance := tEnter - math.Log(rng.Float64())/f.Density
	if distance >= tExit {
		return nil, false
	}

	return &Hit{
		Point:    ray.At(distance),
		Normal:   ray.Direction.Negate(),
		Distance: distance,
		Type:     HitRefract,
		Material: f.Material,
	}, true
}

// AABB returns the bounds of the fog
func (f *UniformFog) AABB() core.AABB {
	return f.Bounds
}
