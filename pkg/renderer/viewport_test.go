package renderer

import (
	"math"
	"testing"

	"github.com/eigenein/raytracer/pkg/core"
	"github.com/eigenein/raytracer/pkg/scene"
)

func testCamera() scene.Camera {
	return scene.Camera{
		Location:    core.NewVec3(0, 0, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VerticalFOV: 90,
	}
}

func TestViewportBasis(t *testing.T) {
	viewport := NewViewport(testCamera(), 100, 100)

	// The pixel steps are orthogonal to each other and to the principal axis
	principal := core.NewVec3(0, 0, 1)
	if math.Abs(viewport.DX.Dot(viewport.DY)) > 1e-12 {
		t.Errorf("dx·dy = %v", viewport.DX.Dot(viewport.DY))
	}
	if math.Abs(viewport.DX.Dot(principal)) > 1e-12 {
		t.Errorf("dx is not orthogonal to the principal axis")
	}
	if math.Abs(viewport.DY.Dot(principal)) > 1e-12 {
		t.Errorf("dy is not orthogonal to the principal axis")
	}

	// viewport_height = 2·f·sin(fov/2) = 2·3·sin(45°), split over 100 pixels
	expectedScale := 2 * 3 * math.Sin(math.Pi/4) / 100
	if math.Abs(viewport.DX.Length()-expectedScale) > 1e-12 {
		t.Errorf("|dx| = %v, expected %v", viewport.DX.Length(), expectedScale)
	}
	if math.Abs(viewport.DY.Length()-expectedScale) > 1e-12 {
		t.Errorf("|dy| = %v, expected %v", viewport.DY.Length(), expectedScale)
	}
}

func TestViewportCenterMapsToLookAt(t *testing.T) {
	viewport := NewViewport(testCamera(), 64, 48)

	// The image center has a zero world offset from the look-at point
	center := viewport.At(32, 24)
	if !center.Equals(core.NewVec3(0, 0, 0)) {
		t.Errorf("center offset = %v, expected zero", center)
	}

	// One pixel to the right moves by exactly dx
	right := viewport.At(33, 24)
	if !right.Equals(viewport.DX) {
		t.Errorf("pixel step = %v, expected %v", right, viewport.DX)
	}
}

func TestViewportOrientation(t *testing.T) {
	viewport := NewViewport(testCamera(), 100, 100)

	// With a y-up camera looking down -z, increasing image y must move
	// the viewport point downward in world space (origin is top-left)
	if viewport.DY.Y >= 0 {
		t.Errorf("dy = %v, expected it to point downward", viewport.DY)
	}
}
