package geometry

import "github.com/dwlcj/sortgo/pkg/core"

// Box is a rectangular box made up of 6 quads with optional rotation.
type Box struct {
	Center   core.Vec3
	Size     core.Vec3
	Rotation core.Vec3
	faces    [6]*Quad
	bbox     core.AABB
}

// NewBox creates a new box with the given center, size (half-extents) and
// rotation in radians around X, Y, Z (applied in that order).
func NewBox(center, size, rotation core.Vec3) *Box {
	box := &Box{Center: center, Size: size, Rotation: rotation}
	box.generateFaces()
	return box
}

// NewAxisAlignedBox creates a new axis-aligned box (no rotation).
func NewAxisAlignedBox(center, size core.Vec3) *Box {
	return NewBox(center, size, core.NewVec3(0, 0, 0))
}

func (b *Box) generateFaces() {
	corners := [8]core.Vec3{
		core.NewVec3(-1, -1, -1),
		core.NewVec3(1, -1, -1),
		core.NewVec3(1, 1, -1),
		core.NewVec3(-1, 1, -1),
		core.NewVec3(-1, -1, 1),
		core.NewVec3(1, -1, 1),
		core.NewVec3(1, 1, 1),
		core.NewVec3(-1, 1, 1),
	}

	for i := range corners {
		corners[i] = core.NewVec3(corners[i].X*b.Size.X, corners[i].Y*b.Size.Y, corners[i].Z*b.Size.Z)
		corners[i] = corners[i].Rotate(b.Rotation)
		corners[i] = corners[i].Add(b.Center)
	}

	b.faces[0] = NewQuad(corners[4], corners[5].Subtract(corners[4]), corners[7].Subtract(corners[4])) // front (Z+)
	b.faces[1] = NewQuad(corners[1], corners[0].Subtract(corners[1]), corners[2].Subtract(corners[1])) // back (Z-)
	b.faces[2] = NewQuad(corners[5], corners[1].Subtract(corners[5]), corners[6].Subtract(corners[5])) // right (X+)
	b.faces[3] = NewQuad(corners[0], corners[4].Subtract(corners[0]), corners[3].Subtract(corners[0])) // left (X-)
	b.faces[4] = NewQuad(corners[3], corners[7].Subtract(corners[3]), corners[2].Subtract(corners[3])) // top (Y+)
	b.faces[5] = NewQuad(corners[4], corners[0].Subtract(corners[4]), corners[5].Subtract(corners[4])) // bottom (Y-)

	b.bbox = core.NewAABBFromPoints(corners[0], corners[1], corners[2], corners[3],
		corners[4], corners[5], corners[6], corners[7])
}

// Hit tests if a ray intersects with any face of the box.
func (b *Box) Hit(ray core.Ray) (SurfaceInteraction, bool) {
	var closestHit SurfaceInteraction
	found := false
	closestT := ray.TMax

	probe := ray
	for _, face := range b.faces {
		probe.TMax = closestT
		if hit, ok := face.Hit(probe); ok {
			closestT = hit.T
			closestHit = hit
			found = true
		}
	}

	return closestHit, found
}

// BoundingBox returns the axis-aligned bounding box for this box.
func (b *Box) BoundingBox() core.AABB { return b.bbox }
