package accel

import "github.com/dwlcj/sortgo/pkg/core"

// BoxSoA packs up to core.WideWidth child AABBs in struct-of-arrays
// layout (all mins-X together, all maxs-X together, etc.) so a single
// traversal step tests every child's bounds against the ray without
// re-deriving an AABB value per child. Unused lanes are padded with
// core.NeverHitBox so they always report a miss.
type BoxSoA struct {
	MinX, MinY, MinZ []float64
	MaxX, MaxY, MaxZ []float64
}

func newBoxSoA(width int) *BoxSoA {
	b := &BoxSoA{
		MinX: make([]float64, width), MinY: make([]float64, width), MinZ: make([]float64, width),
		MaxX: make([]float64, width), MaxY: make([]float64, width), MaxZ: make([]float64, width),
	}
	for i := 0; i < width; i++ {
		b.Set(i, core.NeverHitBox)
	}
	return b
}

// Set writes lane i's bounds.
func (b *BoxSoA) Set(i int, box core.AABB) {
	b.MinX[i], b.MinY[i], b.MinZ[i] = box.Min.X, box.Min.Y, box.Min.Z
	b.MaxX[i], b.MaxY[i], b.MaxZ[i] = box.Max.X, box.Max.Y, box.Max.Z
}

// Get reconstructs lane i's bounds as a regular AABB.
func (b *BoxSoA) Get(i int) core.AABB {
	return core.NewAABB(
		core.NewVec3(b.MinX[i], b.MinY[i], b.MinZ[i]),
		core.NewVec3(b.MaxX[i], b.MaxY[i], b.MaxZ[i]),
	)
}

// Width returns the number of lanes this box batch holds.
func (b *BoxSoA) Width() int { return len(b.MinX) }

// IntersectAll runs the slab test against every lane, writing each lane's
// near-t into out (or -1 for a miss). out must have length Width().
func (b *BoxSoA) IntersectAll(ray *core.Ray, out []float64) {
	for i := range out {
		out[i] = b.Get(i).IntersectT(ray)
	}
}
