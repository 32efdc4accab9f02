package geometry

import (
	"math"
	"math/rand"

	"github.com/eigenein/raytracer/pkg/core"
	"github.com/eigenein/raytracer/pkg/optics"
)

// Sphere represents a sphere surface
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material *optics.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material *optics.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: material}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64, _ *rand.Rand) (*Hit, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	// Try the closer intersection point first
	sqrtD := math.Sqrt(discriminant)
	distance := (-halfB - sqrtD) / a
	if distance < tMin || distance > tMax {
		distance = (-halfB + sqrtD) / a
		if distance < tMin || distance > tMax {
			return nil, false
		}
	}

	point := ray.At(distance)
	outwardNormal := point.Subtract(s.Center).Multiply(1 / s.Radius)

	hit := &Hit{
		Point:    point,
		Distance: distance,
		Material: s.Material,
	}
	if outwardNormal.Dot(ray.Direction) < 0 {
		hit.Type = HitEnter
		hit.Normal = outwardNormal
	} else {
		hit.Type = HitLeave
		hit.Normal = outwardNormal.Negate()
	}
	return hit, true
}

// AABB returns the axis-aligned bounding box of the sphere
func (s *Sphere) AABB() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(radius), s.Center.Add(radius))
}
