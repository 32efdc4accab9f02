package geometry

import (
	"math/rand"

	"github.com/eigenein/raytracer/pkg/core"
	"github.com/eigenein/raytracer/pkg/optics"
)

// Triangle represents a single triangle defined by three vertices.
// It is treated as a thin scatterer: hits carry the Refract type and
// the normal is flipped to face the incoming ray.
type Triangle struct {
	V0, V1, V2 core.Vec3
	Material   *optics.Material

	normal core.Vec3 // Cached unit normal
	bbox   core.AABB // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, material *optics.Material) *Triangle {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)
	return &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
		normal:   edge1.Cross(edge2).Normalize(),
		bbox:     core.NewAABBFromPoints(v0, v1, v2),
	}
}

// Hit tests if a ray intersects with the triangle using the
// Möller-Trumbore algorithm:
// https://en.wikipedia.org/wiki/M%C3%B6ller%E2%80%93Trumbore_intersection_algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64, _ *rand.Rand) (*Hit, bool) {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray is parallel to the triangle's plane
	const epsilon = 1e-12
	if a > -epsilon && a < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return nil, false
	}

	distance := f * edge2.Dot(q)
	if distance < tMin || distance > tMax {
		return nil, false
	}

	// Flip the cached normal to face the incoming ray
	normal := t.normal
	if normal.Dot(ray.Direction) > 0 {
		normal = normal.Negate()
	}

	return &Hit{
		Point:    ray.At(distance),
		Normal:   normal,
		Distance: distance,
		Type:     HitRefract,
		Material: t.Material,
	}, true
}

// AABB returns the axis-aligned bounding box of the triangle
func (t *Triangle) AABB() core.AABB {
	return t.bbox
}
