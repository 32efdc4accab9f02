package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestReflectAbout(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		normal := SampleUnitVector(NewVec2(random.Float64(), random.Float64()))
		direction := SampleUnitVector(NewVec2(random.Float64(), random.Float64()))
		if direction.Dot(normal) > 0 {
			direction = direction.Negate() // incoming rays point against the normal
		}

		reflected := direction.ReflectAbout(normal)

		// Angle of reflection equals angle of incidence
		if math.Abs(reflected.Dot(normal)+direction.Dot(normal)) > 1e-12 {
			t.Errorf("reflection does not mirror the incidence angle: in=%v out=%v normal=%v",
				direction, reflected, normal)
		}

		// Reflection preserves length
		if math.Abs(reflected.Length()-direction.Length()) > 1e-12 {
			t.Errorf("reflection changed the length: %f -> %f", direction.Length(), reflected.Length())
		}
	}
}

func TestReflectAbout_HeadOn(t *testing.T) {
	normal := NewVec3(0, 0, 1)
	direction := NewVec3(0, 0, -1)

	reflected := direction.ReflectAbout(normal)
	if !reflected.Equals(NewVec3(0, 0, 1)) {
		t.Errorf("head-on reflection should reverse the ray, got %v", reflected)
	}
}

func TestSampleUnitVector(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	var sum Vec3
	const numSamples = 10000
	for i := 0; i < numSamples; i++ {
		v := SampleUnitVector(NewVec2(random.Float64(), random.Float64()))
		if math.Abs(v.Length()-1.0) > 1e-12 {
			t.Fatalf("sampled vector is not unit: |v| = %.15f", v.Length())
		}
		sum = sum.Add(v)
	}

	// Uniform sampling should average out near the origin
	mean := sum.Multiply(1.0 / numSamples)
	if mean.Length() > 0.05 {
		t.Errorf("sampled directions are not uniform, mean = %v", mean)
	}
}

func TestRotateAbout(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		axis     Vec3
		angle    float64
		expected Vec3
	}{
		{"quarter turn about Z", NewVec3(1, 0, 0), NewVec3(0, 0, 1), math.Pi / 2, NewVec3(0, 1, 0)},
		{"half turn about Z", NewVec3(1, 0, 0), NewVec3(0, 0, 1), math.Pi, NewVec3(-1, 0, 0)},
		{"quarter turn about X", NewVec3(0, 1, 0), NewVec3(1, 0, 0), math.Pi / 2, NewVec3(0, 0, 1)},
		{"rotation about itself", NewVec3(0, 0, 2), NewVec3(0, 0, 1), 1.234, NewVec3(0, 0, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v.RotateAbout(tt.axis, tt.angle)
			if !result.Equals(tt.expected) {
				t.Errorf("RotateAbout(%v, %v, %f) = %v, expected %v",
					tt.v, tt.axis, tt.angle, result, tt.expected)
			}
		})
	}
}

func TestRotateAbout_PreservesLength(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		v := NewVec3(random.NormFloat64(), random.NormFloat64(), random.NormFloat64())
		axis := SampleUnitVector(NewVec2(random.Float64(), random.Float64()))
		angle := random.Float64() * 2 * math.Pi

		rotated := v.RotateAbout(axis, angle)
		if math.Abs(rotated.Length()-v.Length()) > 1e-9 {
			t.Errorf("rotation changed the length: %f -> %f", v.Length(), rotated.Length())
		}
	}
}

func TestNewRay_NormalizesDirection(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 3, 4))
	if math.Abs(ray.Direction.Length()-1.0) > 1e-12 {
		t.Errorf("ray direction is not unit: %v", ray.Direction)
	}
	if !ray.Direction.Equals(NewVec3(0, 0.6, 0.8)) {
		t.Errorf("unexpected direction: %v", ray.Direction)
	}
}

func TestRayAt(t *testing.T) {
	ray := NewRayTo(NewVec3(0, 0, 0), NewVec3(2, 0, 0))
	if !ray.At(3).Equals(NewVec3(3, 0, 0)) {
		t.Errorf("At(3) = %v", ray.At(3))
	}
}

func TestVec3MinMaxElements(t *testing.T) {
	v := NewVec3(3, -1, 2)
	if v.MinElement() != -1 {
		t.Errorf("MinElement = %f", v.MinElement())
	}
	if v.MaxElement() != 3 {
		t.Errorf("MaxElement = %f", v.MaxElement())
	}

	other := NewVec3(1, 0, 5)
	if !v.Min(other).Equals(NewVec3(1, -1, 2)) {
		t.Errorf("Min = %v", v.Min(other))
	}
	if !v.Max(other).Equals(NewVec3(3, 0, 5)) {
		t.Errorf("Max = %v", v.Max(other))
	}
}
