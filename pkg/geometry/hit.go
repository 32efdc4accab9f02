package geometry

import (
	"math/rand"

	"github.com/eigenein/raytracer/pkg/core"
	"github.com/eigenein/raytracer/pkg/optics"
)

// HitType classifies how a ray interacted with a surface
type HitType int

const (
	// HitEnter means the ray entered a body from the outside
	HitEnter HitType = iota

	// HitLeave means the ray exited a body from the inside
	HitLeave

	// HitRefract means the ray passed through an infinitesimal scattering
	// element, as in a participating medium or a thin sheet
	HitRefract
)

func (t HitType) String() string {
	switch t {
	case HitEnter:
		return "Enter"
	case HitLeave:
		return "Leave"
	case HitRefract:
		return "Refract"
	default:
		return "Unknown"
	}
}

// Hit contains information about a ray-surface intersection.
// For Enter and Leave hits the normal faces against the incoming ray:
// Normal·Direction <= 0.
type Hit struct {
	Point    core.Vec3        // Point of intersection
	Normal   core.Vec3        // Unit surface normal at the intersection
	Distance float64          // Distance along the ray
	Type     HitType          // How the ray interacted with the surface
	Material *optics.Material // Material of the hit surface
}

// Surface is anything a ray can hit
type Surface interface {
	// AABB returns the axis-aligned bounding box of the surface
	AABB() core.AABB

	// Hit tests the ray against the surface within [tMin, tMax].
	// Stochastic surfaces such as fogs draw from the provided PRNG
	Hit(ray core.Ray, tMin, tMax float64, rng *rand.Rand) (*Hit, bool)
}
