package scene

import (
	"github.com/eigenein/raytracer/pkg/core"
	"github.com/eigenein/raytracer/pkg/geometry"
	"github.com/eigenein/raytracer/pkg/optics"
)

// Camera defines the eye position and orientation
type Camera struct {
	Location    core.Vec3
	LookAt      core.Vec3
	Up          core.Vec3
	VerticalFOV float64 // Degrees
}

// Scene is everything the tracer needs: a camera, an ambient emitter and
// the surfaces. It is constructed once and never mutated during a render
type Scene struct {
	Camera           Camera
	AmbientEmittance optics.Property
	Surfaces         []geometry.Surface
}
