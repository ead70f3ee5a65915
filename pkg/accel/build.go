package accel

import (
	"math"
	"sort"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/geometry"
)

// BuildConfig parameterizes the binned-SAH wide-BVH builder.
type BuildConfig struct {
	Wide           int // child fan-out per interior node: 4 or 8
	MaxPrimsInLeaf int
	MaxDepth       int
	NumBins        int // SAH candidate split count per binary split
	TraversalCost  float64
	IntersectCost  float64
}

// DefaultBuildConfig returns a BuildConfig sized for core.WideWidth.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Wide:           core.WideWidth,
		MaxPrimsInLeaf: 4,
		MaxDepth:       48,
		NumBins:        12,
		TraversalCost:  1.0,
		IntersectCost:  1.5,
	}
}

// Tree is a K-wide BVH built over a fixed slice of shapes. It holds
// shapes by index, never by pointer copy, so callers can map a hit's
// PrimitiveIndex back to scene-level material/light bindings.
type Tree struct {
	shapes []geometry.Shape
	root   *Node
	cfg    BuildConfig
	depth  int
}

// Build constructs a Tree over shapes using cfg (zero value selects
// DefaultBuildConfig's field values where unset).
func Build(shapes []geometry.Shape, cfg BuildConfig) *Tree {
	if cfg.Wide == 0 {
		cfg.Wide = core.WideWidth
	}
	if cfg.MaxPrimsInLeaf == 0 {
		cfg.MaxPrimsInLeaf = 4
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = 48
	}
	if cfg.NumBins == 0 {
		cfg.NumBins = 12
	}
	if cfg.IntersectCost == 0 {
		cfg.IntersectCost = 1.5
	}
	if cfg.TraversalCost == 0 {
		cfg.TraversalCost = 1.0
	}

	t := &Tree{shapes: shapes, cfg: cfg}

	if len(shapes) == 0 {
		t.root = &Node{fallback: nil}
		return t
	}

	bounds := make([]core.AABB, len(shapes))
	centroids := make([]core.Vec3, len(shapes))
	for i, s := range shapes {
		bounds[i] = s.BoundingBox()
		centroids[i] = bounds[i].Center()
	}

	indices := make([]int, len(shapes))
	for i := range indices {
		indices[i] = i
	}

	b := &builder{tree: t, bounds: bounds, centroids: centroids}
	t.root = b.build(indices, 0)
	t.depth = b.maxDepthSeen
	return t
}

type builder struct {
	tree         *Tree
	bounds       []core.AABB
	centroids    []core.Vec3
	maxDepthSeen int
}

func (b *builder) unionBounds(indices []int) core.AABB {
	box := core.NeverHitBox
	for _, i := range indices {
		box = box.Union(b.bounds[i])
	}
	return box
}

func (b *builder) build(indices []int, depth int) *Node {
	if depth > b.maxDepthSeen {
		b.maxDepthSeen = depth
	}

	bbox := b.unionBounds(indices)

	if len(indices) <= b.tree.cfg.MaxPrimsInLeaf || depth >= b.tree.cfg.MaxDepth {
		return b.makeLeaf(indices, bbox)
	}

	partitions := [][]int{indices}
	for len(partitions) < b.tree.cfg.Wide {
		splitIdx, left, right, ok := b.bestSplit(partitions)
		if !ok {
			break
		}
		next := make([][]int, 0, len(partitions)+1)
		next = append(next, partitions[:splitIdx]...)
		next = append(next, left, right)
		next = append(next, partitions[splitIdx+1:]...)
		partitions = next
	}

	if len(partitions) <= 1 {
		return b.makeLeaf(indices, bbox)
	}

	node := &Node{bounds: bbox, soa: newBoxSoA(len(partitions)), children: make([]*Node, len(partitions))}
	for i, part := range partitions {
		child := b.build(part, depth+1)
		node.children[i] = child
		node.soa.Set(i, childBounds(child))
	}
	return node
}

func childBounds(n *Node) core.AABB { return n.bounds }

// bestSplit finds the largest partition (by primitive count, first one
// on ties) among the current set that has a beneficial binary SAH
// split, and returns its split in place of the original partition.
// Returns ok=false if no partition can be beneficially split further.
func (b *builder) bestSplit(partitions [][]int) (idx int, left, right []int, ok bool) {
	bestSize := 0
	bestIdx := -1
	var bestLeft, bestRight []int

	for i, part := range partitions {
		if len(part) <= 1 || len(part) <= bestSize {
			continue
		}
		l, r, _, split := b.binarySAHSplit(part)
		if split {
			bestSize = len(part)
			bestIdx = i
			bestLeft, bestRight = l, r
		}
	}

	if bestIdx < 0 {
		return 0, nil, nil, false
	}
	return bestIdx, bestLeft, bestRight, true
}

// binarySAHSplit bins indices' centroids along the longest axis of their
// bounds into cfg.NumBins buckets, evaluates the SAH cost of every bucket
// boundary, and returns the cheapest split found (if it beats the
// no-split leaf cost).
func (b *builder) binarySAHSplit(indices []int) (left, right []int, gain float64, ok bool) {
	cfg := b.tree.cfg

	centroidBounds := core.NeverHitBox
	for _, i := range indices {
		centroidBounds = centroidBounds.Union(core.NewAABB(b.centroids[i], b.centroids[i]))
	}
	axis := centroidBounds.LongestAxis()
	extent := axisExtent(centroidBounds, axis)
	if extent < 1e-12 {
		return nil, nil, 0, false
	}

	type bin struct {
		bounds core.AABB
		count  int
	}
	bins := make([]bin, cfg.NumBins)
	for i := range bins {
		bins[i].bounds = core.NeverHitBox
	}

	minC := axisComponent(centroidBounds.Min, axis)
	binIndexOf := func(i int) int {
		off := (axisComponent(b.centroids[i], axis) - minC) / extent
		idx := int(off * float64(cfg.NumBins))
		if idx >= cfg.NumBins {
			idx = cfg.NumBins - 1
		}
		if idx < 0 {
			idx = 0
		}
		return idx
	}

	for _, i := range indices {
		bi := binIndexOf(i)
		bins[bi].bounds = bins[bi].bounds.Union(b.bounds[i])
		bins[bi].count++
	}

	// Prefix/suffix sweep over bucket boundaries to evaluate SAH cost in
	// O(NumBins) rather than O(NumBins^2).
	leftBounds := make([]core.AABB, cfg.NumBins)
	leftCount := make([]int, cfg.NumBins)
	acc := core.NeverHitBox
	accCount := 0
	for i := 0; i < cfg.NumBins; i++ {
		acc = acc.Union(bins[i].bounds)
		accCount += bins[i].count
		leftBounds[i] = acc
		leftCount[i] = accCount
	}

	rightBounds := make([]core.AABB, cfg.NumBins)
	rightCount := make([]int, cfg.NumBins)
	acc = core.NeverHitBox
	accCount = 0
	for i := cfg.NumBins - 1; i >= 0; i-- {
		acc = acc.Union(bins[i].bounds)
		accCount += bins[i].count
		rightBounds[i] = acc
		rightCount[i] = accCount
	}

	totalBounds := leftBounds[cfg.NumBins-1]
	totalArea := totalBounds.SurfaceArea()
	if totalArea <= 0 {
		return nil, nil, 0, false
	}
	leafCost := cfg.IntersectCost * float64(len(indices))

	bestCost := math.Inf(1)
	bestBin := -1
	for i := 0; i < cfg.NumBins-1; i++ {
		lc, rc := leftCount[i], rightCount[i+1]
		if lc == 0 || rc == 0 {
			continue
		}
		cost := cfg.TraversalCost + (leftBounds[i].SurfaceArea()*float64(lc)+rightBounds[i+1].SurfaceArea()*float64(rc))/totalArea*cfg.IntersectCost
		if cost < bestCost {
			bestCost = cost
			bestBin = i
		}
	}

	if bestBin < 0 || bestCost >= leafCost {
		return nil, nil, 0, false
	}

	for _, i := range indices {
		if binIndexOf(i) <= bestBin {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return nil, nil, 0, false
	}

	return left, right, leafCost - bestCost, true
}

func axisExtent(box core.AABB, axis int) float64 {
	size := box.Size()
	switch axis {
	case 0:
		return size.X
	case 1:
		return size.Y
	default:
		return size.Z
	}
}

func axisComponent(v core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// makeLeaf stores one lane record per triangle and per line from indices
// (triLanes/lineLanes), falling back to direct Shape.Hit indices for
// everything else. Lanes are not grouped into core.WideWidth-sized
// batches and no padding lanes are added.
func (b *builder) makeLeaf(indices []int, bbox core.AABB) *Node {
	leaf := &Node{bounds: bbox}

	var triIdx, lineIdx []int
	for _, i := range indices {
		switch b.tree.shapes[i].(type) {
		case geometry.Triangulable:
			triIdx = append(triIdx, i)
		case geometry.Lineable:
			lineIdx = append(lineIdx, i)
		default:
			leaf.fallback = append(leaf.fallback, i)
		}
	}

	for _, i := range triIdx {
		tri := b.tree.shapes[i].(geometry.Triangulable)
		v0, v1, v2 := tri.TriangleVerts()
		leaf.triLanes = append(leaf.triLanes, triLane{
			v0: v0, v1: v1, v2: v2,
			normal:    v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize(),
			primIndex: i,
		})
	}

	for _, i := range lineIdx {
		line := b.tree.shapes[i].(geometry.Lineable)
		p0, p1, r0, r1 := line.LineVerts()
		leaf.lineLanes = append(leaf.lineLanes, lineLane{p0: p0, p1: p1, r0: r0, r1: r1, primIndex: i})
	}

	sort.Ints(leaf.fallback)
	return leaf
}

// MaxDepth reports the deepest leaf found during construction.
func (t *Tree) MaxDepth() int { return t.depth }

// Wide reports the child fan-out this tree was built with.
func (t *Tree) Wide() int { return t.cfg.Wide }

// PrimitiveCount reports how many shapes the tree indexes.
func (t *Tree) PrimitiveCount() int { return len(t.shapes) }
