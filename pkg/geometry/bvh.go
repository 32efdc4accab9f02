package geometry

import (
	"math/rand"
	"sort"

	"github.com/eigenein/raytracer/pkg/core"
)

// DefaultMaxLeafSize is the default cap on surfaces per BVH leaf
const DefaultMaxLeafSize = 4

// BVH is a bounding volume hierarchy for fast ray-surface intersection.
// The build permutes the surface slice in place so that every leaf
// references a contiguous sub-slice; the slice must not be mutated while
// the BVH exists. Queries are read-only and safe to run concurrently.
type BVH struct {
	root *bvhNode
}

// bvhNode is a node of the hierarchy: a leaf holds surfaces, an internal
// node delegates to its children. A nil node is an empty tree.
type bvhNode struct {
	boundingBox core.AABB
	left, right *bvhNode
	surfaces    []Surface // Non-nil for leaf nodes only
}

// NewBVH builds a hierarchy over the given surfaces, permuting the slice
func NewBVH(surfaces []Surface, maxLeafSize int) *BVH {
	if maxLeafSize < 1 {
		maxLeafSize = DefaultMaxLeafSize
	}
	if len(surfaces) == 0 {
		return &BVH{}
	}
	return &BVH{root: buildBVH(surfaces, maxLeafSize)}
}

// buildBVH recursively splits the slice at the median along the longest
// axis of the union bounding box
func buildBVH(surfaces []Surface, maxLeafSize int) *bvhNode {
	boundingBox := surfaces[0].AABB()
	for _, surface := range surfaces[1:] {
		boundingBox = boundingBox.Union(surface.AABB())
	}

	if len(surfaces) <= maxLeafSize {
		return &bvhNode{boundingBox: boundingBox, surfaces: surfaces}
	}

	axis := boundingBox.LongestAxis()
	sort.Slice(surfaces, func(i, j int) bool {
		return core.AxisValue(surfaces[i].AABB().Center(), axis) <
			core.AxisValue(surfaces[j].AABB().Center(), axis)
	})

	middle := len(surfaces) / 2
	return &bvhNode{
		boundingBox: boundingBox,
		left:        buildBVH(surfaces[:middle], maxLeafSize),
		right:       buildBVH(surfaces[middle:], maxLeafSize),
	}
}

// Hit returns the nearest hit among all surfaces within [tMin, tMax]
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64, rng *rand.Rand) (*Hit, bool) {
	if bvh.root == nil {
		return nil, false
	}
	return bvh.root.hit(ray, tMin, tMax, rng)
}

// AABB returns the bounding box of the whole hierarchy
func (bvh *BVH) AABB() core.AABB {
	if bvh.root == nil {
		return core.AABB{}
	}
	return bvh.root.boundingBox
}

func (node *bvhNode) hit(ray core.Ray, tMin, tMax float64, rng *rand.Rand) (*Hit, bool) {
	if !node.boundingBox.Hit(ray, tMin, tMax) {
		return nil, false
	}

	// Leaf: sequential search, keeping the nearest hit.
	// Shrinking tMax prunes everything past the best hit so far
	if node.surfaces != nil {
		var closest *Hit
		for _, surface := range node.surfaces {
			if hit, ok := surface.Hit(ray, tMin, tMax, rng); ok {
				closest = hit
				tMax = hit.Distance
			}
		}
		return closest, closest != nil
	}

	// Internal node: delegate to both children, nearer hit wins
	closest, ok := node.left.hit(ray, tMin, tMax, rng)
	if ok {
		tMax = closest.Distance
	}
	if rightHit, rightOk := node.right.hit(ray, tMin, tMax, rng); rightOk {
		return rightHit, true
	}
	return closest, ok
}
