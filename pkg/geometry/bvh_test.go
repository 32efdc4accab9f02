package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/eigenein/raytracer/pkg/core"
)

// linearScan is the reference oracle: the nearest hit over a plain slice
func linearScan(surfaces []Surface, ray core.Ray, tMin, tMax float64, rng *rand.Rand) (*Hit, bool) {
	var closest *Hit
	for _, surface := range surfaces {
		if hit, ok := surface.Hit(ray, tMin, tMax, rng); ok {
			if closest == nil || hit.Distance < closest.Distance {
				closest = hit
			}
		}
	}
	return closest, closest != nil
}

func randomSpheres(random *rand.Rand, count int) []Surface {
	surfaces := make([]Surface, count)
	for i := range surfaces {
		center := core.NewVec3(
			random.Float64()*20-10,
			random.Float64()*20-10,
			random.Float64()*20-10,
		)
		surfaces[i] = NewSphere(center, 0.1+random.Float64(), testMaterial())
	}
	return surfaces
}

func TestBVHMatchesLinearScan(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	surfaces := randomSpheres(random, 200)

	// The oracle scans the original order; the BVH permutes its own copy
	reference := make([]Surface, len(surfaces))
	copy(reference, surfaces)
	bvh := NewBVH(surfaces, DefaultMaxLeafSize)

	for i := 0; i < 2000; i++ {
		origin := core.NewVec3(
			random.Float64()*30-15,
			random.Float64()*30-15,
			random.Float64()*30-15,
		)
		direction := core.SampleUnitVector(core.NewVec2(random.Float64(), random.Float64()))
		ray := core.NewRay(origin, direction)

		tMin := random.Float64() * 0.1
		tMax := math.Inf(1)
		if random.Float64() < 0.3 {
			tMax = random.Float64() * 20
		}

		bvhHit, bvhOk := bvh.Hit(ray, tMin, tMax, nil)
		scanHit, scanOk := linearScan(reference, ray, tMin, tMax, nil)

		if bvhOk != scanOk {
			t.Fatalf("ray %d: BVH hit=%v, linear scan hit=%v", i, bvhOk, scanOk)
		}
		if bvhOk && math.Abs(bvhHit.Distance-scanHit.Distance) > 1e-12 {
			t.Fatalf("ray %d: BVH distance=%v, linear scan distance=%v",
				i, bvhHit.Distance, scanHit.Distance)
		}
	}
}

func TestBVHEmpty(t *testing.T) {
	bvh := NewBVH(nil, DefaultMaxLeafSize)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	if _, ok := bvh.Hit(ray, 0, math.Inf(1), nil); ok {
		t.Error("an empty BVH must not report hits")
	}
}

func TestBVHSingleSurface(t *testing.T) {
	surfaces := []Surface{NewSphere(core.NewVec3(0, 0, -5), 1, testMaterial())}
	bvh := NewBVH(surfaces, DefaultMaxLeafSize)

	hit, ok := bvh.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0, math.Inf(1), nil)
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(hit.Distance-4) > 1e-12 {
		t.Errorf("Distance = %v, expected 4", hit.Distance)
	}
}

func TestBVHPermutesInPlace(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	surfaces := randomSpheres(random, 64)

	before := make(map[Surface]bool, len(surfaces))
	for _, surface := range surfaces {
		before[surface] = true
	}

	NewBVH(surfaces, 2)

	// Same surfaces, possibly reordered
	for _, surface := range surfaces {
		if !before[surface] {
			t.Fatal("build must permute, not replace, the slice")
		}
	}
}

func TestBVHBoundingBoxCoversAll(t *testing.T) {
	random := rand.New(rand.NewSource(3))
	surfaces := randomSpheres(random, 50)
	bvh := NewBVH(surfaces, DefaultMaxLeafSize)

	box := bvh.AABB()
	for i, surface := range surfaces {
		if !box.Contains(surface.AABB()) {
			t.Errorf("surface %d is outside the root box", i)
		}
	}
}
