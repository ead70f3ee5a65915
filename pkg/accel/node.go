// Package accel implements the spatial accelerator: a K-wide BVH
// (K = core.WideWidth, 4 or 8 depending on CPU SIMD width) built over any
// geometry.Shape via binned SAH, with struct-of-arrays child bounds and
// lane-packed triangle/line leaf batches. A ray descends the tree by
// testing every child lane of an interior node in one step instead of
// one child at a time, the way a binary BVH would.
package accel

import "github.com/dwlcj/sortgo/pkg/core"

// triLane is one SIMD-style lane of a leaf's packed triangle batch: the
// vertex data needed for Möller-Trumbore plus the originating primitive
// index (for SurfaceInteraction.PrimitiveIndex and material lookup).
type triLane struct {
	v0, v1, v2 core.Vec3
	normal     core.Vec3
	primIndex  int
}

// lineLane is one lane of a leaf's packed hair-curve batch.
type lineLane struct {
	p0, p1    core.Vec3
	r0, r1    float64
	primIndex int
}

// Node is one node of the wide BVH. Interior nodes hold up to Width()
// children with SoA-packed bounds; leaf nodes hold lane-packed
// triangle/line batches plus a fallback list of primitive indices for
// shapes that are neither Triangulable nor Lineable.
type Node struct {
	bounds   core.AABB
	soa      *BoxSoA // nil for leaves; children's packed bounds
	children []*Node // nil for leaves, len(children) == soa.Width() otherwise

	triLanes  []triLane
	lineLanes []lineLane
	fallback  []int // primitive indices tested via Shape.Hit directly
}

func (n *Node) isLeaf() bool { return n.children == nil }
