package accel

import (
	"math"
	"sort"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/geometry"
)

// stackEntry is one pending node on a traversal's explicit stack, along
// with the ray parameter at which it was entered (used to prune stale
// entries once a closer hit has already been found).
type stackEntry struct {
	node   *Node
	tEntry float64
}

// Traverser holds a reusable traversal stack and SoA scratch buffer for
// one goroutine, so repeated NearestHit/AnyHit/MultiHit calls across
// many samples don't reallocate the stack or the lane buffer (per-node
// hit lists and MultiHit's result bag are still allocated per call). A
// Traverser is not safe for concurrent use.
type Traverser struct {
	tree   *Tree
	stack  []stackEntry
	lanesT []float64
}

// NewTraverser returns a Traverser scratch object for repeated queries
// against t.
func (t *Tree) NewTraverser() *Traverser {
	stackCap := (t.depth + 1) * t.cfg.Wide
	if stackCap < t.cfg.Wide {
		stackCap = t.cfg.Wide
	}
	return &Traverser{
		tree:   t,
		stack:  make([]stackEntry, 0, stackCap),
		lanesT: make([]float64, t.cfg.Wide),
	}
}

// NearestHit finds the closest intersection along ray. Convenience
// one-shot entry point; hot render loops should use a persistent
// Traverser instead so the stack isn't reallocated per sample.
func (t *Tree) NearestHit(ray core.Ray) (geometry.SurfaceInteraction, bool) {
	return t.NewTraverser().NearestHit(ray)
}

// AnyHit reports whether ray hits anything in [ray.TMin, ray.TMax],
// stopping at the first hit found (shadow-ray test).
func (t *Tree) AnyHit(ray core.Ray) bool {
	return t.NewTraverser().AnyHit(ray)
}

// MultiHit collects up to maxHits intersections along ray, for BSSRDF
// candidate probing.
func (t *Tree) MultiHit(ray core.Ray, maxHits int) []geometry.SurfaceInteraction {
	return t.NewTraverser().MultiHit(ray, maxHits)
}

func (tr *Traverser) reset() { tr.stack = tr.stack[:0] }

// pushChildren tests every child lane of an interior node against probe
// and pushes the hit ones onto the stack in farthest-first order, so the
// nearest child is popped (and descended) first.
func (tr *Traverser) pushChildren(node *Node, probe *core.Ray) {
	width := node.soa.Width()
	if cap(tr.lanesT) < width {
		tr.lanesT = make([]float64, width)
	}
	lanesT := tr.lanesT[:width]
	node.soa.IntersectAll(probe, lanesT)

	type hitChild struct {
		idx int
		t   float64
	}
	var hits []hitChild
	for i, t := range lanesT {
		if t >= 0 && t <= probe.TMax {
			hits = append(hits, hitChild{i, t})
		}
	}

	switch len(hits) {
	case 0:
		return
	case 1:
		tr.stack = append(tr.stack, stackEntry{node.children[hits[0].idx], hits[0].t})
		return
	case 2:
		far, near := hits[0], hits[1]
		if near.t > far.t {
			far, near = near, far
		}
		tr.stack = append(tr.stack, stackEntry{node.children[far.idx], far.t}, stackEntry{node.children[near.idx], near.t})
		return
	default:
		sort.Slice(hits, func(a, b int) bool { return hits[a].t > hits[b].t }) // farthest first
		for _, h := range hits {
			tr.stack = append(tr.stack, stackEntry{node.children[h.idx], h.t})
		}
	}
}

// NearestHit finds the closest intersection along ray.
func (tr *Traverser) NearestHit(ray core.Ray) (geometry.SurfaceInteraction, bool) {
	tr.reset()
	if tr.tree.root == nil {
		return geometry.SurfaceInteraction{}, false
	}

	probe := ray
	probe.Prepare()

	var best geometry.SurfaceInteraction
	found := false

	tr.stack = append(tr.stack, stackEntry{tr.tree.root, 0})
	for len(tr.stack) > 0 {
		top := tr.stack[len(tr.stack)-1]
		tr.stack = tr.stack[:len(tr.stack)-1]

		if top.tEntry > probe.TMax {
			continue // stale: a closer hit was found after this was pushed
		}

		node := top.node
		if node.isLeaf() {
			if hit, ok := tr.hitLeaf(node, probe); ok {
				best = hit
				found = true
				probe.TMax = hit.T
			}
			continue
		}

		tr.pushChildren(node, &probe)
	}

	return best, found
}

// AnyHit reports whether ray hits anything, stopping at the first hit.
func (tr *Traverser) AnyHit(ray core.Ray) bool {
	tr.reset()
	if tr.tree.root == nil {
		return false
	}

	probe := ray
	probe.Prepare()

	tr.stack = append(tr.stack, stackEntry{tr.tree.root, 0})
	for len(tr.stack) > 0 {
		top := tr.stack[len(tr.stack)-1]
		tr.stack = tr.stack[:len(tr.stack)-1]

		node := top.node
		if node.isLeaf() {
			if _, ok := tr.hitLeaf(node, probe); ok {
				return true
			}
			continue
		}

		tr.pushChildren(node, &probe)
	}

	return false
}

// MultiHit collects up to maxHits intersections along ray. When the bag
// is full, the farthest recorded hit is evicted on each new closer find
// and the probe's TMax is clamped to the bag's new farthest t, so the
// remaining traversal only looks for intersections that could still
// make the cut.
func (tr *Traverser) MultiHit(ray core.Ray, maxHits int) []geometry.SurfaceInteraction {
	tr.reset()
	if tr.tree.root == nil || maxHits <= 0 {
		return nil
	}

	probe := ray
	probe.Prepare()

	bag := make([]geometry.SurfaceInteraction, 0, maxHits)

	tr.stack = append(tr.stack, stackEntry{tr.tree.root, 0})
	for len(tr.stack) > 0 {
		top := tr.stack[len(tr.stack)-1]
		tr.stack = tr.stack[:len(tr.stack)-1]

		if top.tEntry > probe.TMax {
			continue
		}

		node := top.node
		if node.isLeaf() {
			hits := tr.hitLeafAll(node, probe)
			for _, hit := range hits {
				bag = append(bag, hit)
				if len(bag) > maxHits {
					evictIdx, maxT := 0, bag[0].T
					for i, h := range bag {
						if h.T > maxT {
							evictIdx, maxT = i, h.T
						}
					}
					bag = append(bag[:evictIdx], bag[evictIdx+1:]...)
				}
				if len(bag) == maxHits {
					newMax := bag[0].T
					for _, h := range bag {
						newMax = math.Max(newMax, h.T)
					}
					probe.TMax = newMax
				}
			}
			continue
		}

		tr.pushChildren(node, &probe)
	}

	return bag
}

// hitLeaf returns the closest intersection within this leaf's batches.
func (tr *Traverser) hitLeaf(node *Node, probe core.Ray) (geometry.SurfaceInteraction, bool) {
	var best geometry.SurfaceInteraction
	found := false
	cur := probe

	for _, lane := range node.triLanes {
		if hit, ok := hitTriLane(lane, cur); ok {
			best, found, cur.TMax = hit, true, hit.T
		}
	}
	for _, lane := range node.lineLanes {
		if hit, ok := hitLineLane(lane, cur); ok {
			best, found, cur.TMax = hit, true, hit.T
		}
	}
	for _, i := range node.fallback {
		if hit, ok := tr.tree.shapes[i].Hit(cur); ok {
			hit.PrimitiveIndex = i
			best, found, cur.TMax = hit, true, hit.T
		}
	}

	return best, found
}

// hitLeafAll returns every intersection this leaf's batches produce
// within [probe.TMin, probe.TMax], for MultiHit's bag collection.
func (tr *Traverser) hitLeafAll(node *Node, probe core.Ray) []geometry.SurfaceInteraction {
	var out []geometry.SurfaceInteraction

	for _, lane := range node.triLanes {
		if hit, ok := hitTriLane(lane, probe); ok {
			out = append(out, hit)
		}
	}
	for _, lane := range node.lineLanes {
		if hit, ok := hitLineLane(lane, probe); ok {
			out = append(out, hit)
		}
	}
	for _, i := range node.fallback {
		if hit, ok := tr.tree.shapes[i].Hit(probe); ok {
			hit.PrimitiveIndex = i
			out = append(out, hit)
		}
	}

	return out
}

// hitTriLane runs Möller-Trumbore against one packed triangle lane.
func hitTriLane(lane triLane, ray core.Ray) (geometry.SurfaceInteraction, bool) {
	const epsilon = 1e-8

	edge1 := lane.v1.Subtract(lane.v0)
	edge2 := lane.v2.Subtract(lane.v0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return geometry.SurfaceInteraction{}, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(lane.v0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return geometry.SurfaceInteraction{}, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return geometry.SurfaceInteraction{}, false
	}

	t := f * edge2.Dot(q)
	if t < ray.TMin || t > ray.TMax {
		return geometry.SurfaceInteraction{}, false
	}

	point := ray.At(t)
	si := geometry.SurfaceInteraction{T: t, Point: point, UV: core.NewVec2(u, v), PrimitiveIndex: lane.primIndex}
	si.SetFaceNormal(ray, lane.normal)
	return si, true
}

// hitLineLane runs the capsule test against one packed hair-curve lane.
func hitLineLane(lane lineLane, ray core.Ray) (geometry.SurfaceInteraction, bool) {
	seg := geometry.NewCurveSegment(lane.p0, lane.p1, lane.r0, lane.r1)
	si, ok := seg.Hit(ray)
	if !ok {
		return geometry.SurfaceInteraction{}, false
	}
	si.PrimitiveIndex = lane.primIndex
	return si, true
}
