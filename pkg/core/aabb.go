package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, point := range points[1:] {
		box.Min = box.Min.Min(point)
		box.Max = box.Max.Max(point)
	}
	return box
}

// UnboundedAABB returns the box that fills all space.
// Its slab test passes any ray through with the distance range unchanged.
func UnboundedAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: NewVec3(-inf, -inf, -inf),
		Max: NewVec3(inf, inf, inf),
	}
}

// IsUnbounded returns true if both corners are infinite
func (aabb AABB) IsUnbounded() bool {
	return aabb.Min.IsInfinite() && aabb.Max.IsInfinite()
}

// HitInterval intersects a ray with the box using the slab method and returns
// the entry and exit distances clamped to [tMin, tMax].
// See: https://gamedev.stackexchange.com/a/18459/171067
func (aabb AABB) HitInterval(ray Ray, tMin, tMax float64) (float64, float64, bool) {
	if aabb.IsUnbounded() {
		return tMin, tMax, true
	}

	// Per-axis plane distances; division by a zero direction component
	// yields ±Inf, which the min/max folding handles
	minPlanes := aabb.Min.Subtract(ray.Origin).Divide(ray.Direction)
	maxPlanes := aabb.Max.Subtract(ray.Origin).Divide(ray.Direction)

	tExit := math.Min(minPlanes.Max(maxPlanes).MinElement(), tMax)
	if tExit < 0 {
		// The ray's line crosses the box, but the box is behind the origin
		return 0, 0, false
	}

	tEnter := math.Max(minPlanes.Min(maxPlanes).MaxElement(), tMin)
	if tEnter > tExit {
		return 0, 0, false
	}
	return tEnter, tExit, true
}

// Hit tests whether a ray intersects the box within [tMin, tMax]
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	_, _, ok := aabb.HitInterval(ray, tMin, tMax)
	return ok
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: aabb.Min.Min(other.Min),
		Max: aabb.Max.Max(other.Max),
	}
}

// Contains returns true if the other AABB lies entirely inside this one
func (aabb AABB) Contains(other AABB) bool {
	return aabb.Min.X <= other.Min.X && aabb.Min.Y <= other.Min.Y && aabb.Min.Z <= other.Min.Z &&
		aabb.Max.X >= other.Max.X && aabb.Max.Y >= other.Max.Y && aabb.Max.Z >= other.Max.Z
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// AxisValue returns the coordinate of a vector along the given axis
func AxisValue(v Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
