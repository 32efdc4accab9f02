package optics

import (
	"math"
	"testing"
)

func TestRefractiveIndexPresets(t *testing.T) {
	const sodiumD = 589e-9

	tests := []struct {
		name     string
		index    RefractiveIndex
		expected float64
	}{
		{"vacuum", Vacuum(), 1.0},
		{"water", Water(), 1.333},
		{"fused quartz", FusedQuartz(), 1.468},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.index.At(sodiumD)
			if math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("n(589nm) = %v, expected ≈ %v", got, tt.expected)
			}
		})
	}
}

func TestCauchyDispersion(t *testing.T) {
	// Normal dispersion: shorter wavelengths refract more
	quartz := FusedQuartz()
	if quartz.At(400e-9) <= quartz.At(700e-9) {
		t.Errorf("expected n(400nm) > n(700nm), got %v <= %v",
			quartz.At(400e-9), quartz.At(700e-9))
	}
}

func TestSchlickReflectance(t *testing.T) {
	index := RelativeRefractiveIndex{Incident: 1.0, Refracted: 1.5}

	// At normal incidence the reflectance is R₀ = ((n₁−n₂)/(n₁+n₂))²
	r0 := index.Reflectance(1.0)
	if math.Abs(r0-0.04) > 1e-12 {
		t.Errorf("normal-incidence reflectance = %v, expected 0.04", r0)
	}

	// At grazing incidence the reflectance approaches 1
	grazing := index.Reflectance(0.0)
	if math.Abs(grazing-1.0) > 1e-12 {
		t.Errorf("grazing reflectance = %v, expected 1", grazing)
	}

	// Reflectance grows monotonically toward grazing angles
	previous := r0
	for cos := 0.9; cos >= 0; cos -= 0.1 {
		current := index.Reflectance(cos)
		if current < previous {
			t.Fatalf("reflectance is not monotonic at cosθ = %v", cos)
		}
		previous = current
	}
}

func TestRelativeRatio(t *testing.T) {
	index := RelativeRefractiveIndex{Incident: 1.5, Refracted: 1.0}
	if got := index.Ratio(); math.Abs(got-1.5) > 1e-12 {
		t.Errorf("Ratio = %v", got)
	}
}
