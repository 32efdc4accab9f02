package renderer

import (
	"math"

	"github.com/eigenein/raytracer/pkg/core"
	"github.com/eigenein/raytracer/pkg/scene"
)

// Viewport maps image pixels onto the world-space projection plane that
// passes through the camera's look-at point. DX and DY are the world-space
// steps of one pixel
type Viewport struct {
	DX, DY     core.Vec3
	halfWidth  float64
	halfHeight float64
}

// NewViewport derives the pixel step vectors from the camera
func NewViewport(camera scene.Camera, imageWidth, imageHeight int) Viewport {
	principal := camera.Location.Subtract(camera.LookAt)
	focalLength := principal.Length()
	principal = principal.Multiply(1 / focalLength)

	dx := principal.Cross(camera.Up).Normalize()
	dy := dx.RotateAbout(principal, math.Pi/2)

	// Scale the unit steps to the actual field of view
	fov := camera.VerticalFOV * math.Pi / 180
	viewportHeight := 2 * focalLength * math.Sin(fov/2)
	scale := viewportHeight / float64(imageHeight)

	return Viewport{
		DX:         dx.Multiply(scale),
		DY:         dy.Multiply(scale),
		halfWidth:  float64(imageWidth) / 2,
		halfHeight: float64(imageHeight) / 2,
	}
}

// At returns the world offset from the look-at point for the given
// continuous image coordinates (pixel index plus sub-pixel offset)
func (v Viewport) At(imageX, imageY float64) core.Vec3 {
	return v.DX.Multiply(imageX - v.halfWidth).Add(v.DY.Multiply(imageY - v.halfHeight))
}
