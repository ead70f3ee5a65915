package scene

import (
	"github.com/dwlcj/sortgo/pkg/geometry"
)

// Primitive binds a shape to its material and (optionally) the light it
// emits as, by index rather than pointer — Scene owns the slice and the
// accelerator only ever refers back into it by SurfaceInteraction's
// PrimitiveIndex, so primitives can be freely reordered/rebuilt without
// invalidating anything outside Scene.
type Primitive struct {
	Shape         geometry.Shape
	MaterialIndex int
	LightIndex    int // -1 if this primitive is not a light
}

// NoLight marks a Primitive as not being bound to any light.
const NoLight = -1

// BSSRDFIntersections is a fixed-capacity bag of surface hits along one
// probe ray, used by a subsurface-scattering solver to gather every
// crossing of a translucent object's boundary. Capacity is bounded at
// TotalSSSIntersectionCount; once full, the intersection with the
// largest T is evicted in favor of a closer one, and MaxT is recomputed
// to the new farthest-remaining hit so later probes can early-out.
const TotalSSSIntersectionCount = 4

type BSSRDFIntersections struct {
	hits [TotalSSSIntersectionCount]geometry.SurfaceInteraction
	n    int
	MaxT float64
}

// Add inserts hit, evicting the farthest current entry if the bag is
// already at capacity and hit is closer than the farthest entry.
func (b *BSSRDFIntersections) Add(hit geometry.SurfaceInteraction) {
	if b.n < len(b.hits) {
		b.hits[b.n] = hit
		b.n++
		b.recomputeMaxT()
		return
	}
	farthest := 0
	for i := 1; i < b.n; i++ {
		if b.hits[i].T > b.hits[farthest].T {
			farthest = i
		}
	}
	if hit.T < b.hits[farthest].T {
		b.hits[farthest] = hit
		b.recomputeMaxT()
	}
}

func (b *BSSRDFIntersections) recomputeMaxT() {
	maxT := 0.0
	for i := 0; i < b.n; i++ {
		if b.hits[i].T > maxT {
			maxT = b.hits[i].T
		}
	}
	b.MaxT = maxT
}

// Count returns the number of hits currently held.
func (b *BSSRDFIntersections) Count() int { return b.n }

// Hits returns the bag's current entries.
func (b *BSSRDFIntersections) Hits() []geometry.SurfaceInteraction { return b.hits[:b.n] }
