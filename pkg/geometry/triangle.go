package geometry

import "github.com/dwlcj/sortgo/pkg/core"

// Triangle is a single triangle defined by three vertices, optionally
// carrying per-vertex UVs and a shading normal distinct from its
// geometric one (for smooth-shaded meshes).
type Triangle struct {
	V0, V1, V2    core.Vec3
	UV0, UV1, UV2 core.Vec2
	hasUVs        bool
	normal        core.Vec3
	bbox          core.AABB
}

// NewTriangle creates a triangle with a normal derived from its winding.
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2}
	t.normal = edgeNormal(v0, v1, v2)
	t.bbox = core.NewAABBFromPoints(v0, v1, v2)
	return t
}

// NewTriangleWithNormal creates a triangle with an explicit shading normal.
func NewTriangleWithNormal(v0, v1, v2, normal core.Vec3) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, normal: normal.Normalize()}
	t.bbox = core.NewAABBFromPoints(v0, v1, v2)
	return t
}

// NewTriangleWithUVs creates a triangle with per-vertex UV coordinates.
func NewTriangleWithUVs(v0, v1, v2 core.Vec3, uv0, uv1, uv2 core.Vec2) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, UV0: uv0, UV1: uv1, UV2: uv2, hasUVs: true}
	t.normal = edgeNormal(v0, v1, v2)
	t.bbox = core.NewAABBFromPoints(v0, v1, v2)
	return t
}

// NewTriangleWithNormalAndUVs creates a triangle with both an explicit
// shading normal and per-vertex UV coordinates.
func NewTriangleWithNormalAndUVs(v0, v1, v2 core.Vec3, uv0, uv1, uv2 core.Vec2, normal core.Vec3) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, UV0: uv0, UV1: uv1, UV2: uv2, hasUVs: true, normal: normal.Normalize()}
	t.bbox = core.NewAABBFromPoints(v0, v1, v2)
	return t
}

func edgeNormal(v0, v1, v2 core.Vec3) core.Vec3 {
	return v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
}

// Hit implements the Möller-Trumbore ray-triangle intersection test.
func (t *Triangle) Hit(ray core.Ray) (SurfaceInteraction, bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return SurfaceInteraction{}, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return SurfaceInteraction{}, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return SurfaceInteraction{}, false
	}

	tHit := f * edge2.Dot(q)
	if tHit < ray.TMin || tHit > ray.TMax {
		return SurfaceInteraction{}, false
	}

	hitPoint := ray.At(tHit)

	var uv core.Vec2
	if t.hasUVs {
		w := 1.0 - u - v
		uv = t.UV0.Multiply(w).Add(t.UV1.Multiply(u)).Add(t.UV2.Multiply(v))
	} else {
		uv = core.NewVec2(u, v)
	}

	si := SurfaceInteraction{T: tHit, Point: hitPoint, UV: uv, Tangent: edge1.Normalize()}
	si.SetFaceNormal(ray, t.normal)
	return si, true
}

// BoundingBox returns the triangle's axis-aligned bounding box.
func (t *Triangle) BoundingBox() core.AABB { return t.bbox }

// GetNormal returns the triangle's geometric/shading normal.
func (t *Triangle) GetNormal() core.Vec3 { return t.normal }

// TriangleVerts implements Triangulable for the accelerator's SIMD leaf packer.
func (t *Triangle) TriangleVerts() (v0, v1, v2 core.Vec3) { return t.V0, t.V1, t.V2 }
