package geometry

import (
	"fmt"

	"github.com/dwlcj/sortgo/pkg/core"
)

// TriangleMesh is a collection of triangles built from an indexed vertex
// buffer. Scene construction flattens a mesh's Triangles into the
// top-level accelerator rather than nesting a second BVH inside it; Hit
// here is a brute-force linear scan used only when a mesh is queried on
// its own (e.g. in tests).
type TriangleMesh struct {
	Triangles []*Triangle
	bbox      core.AABB
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation.
type TriangleMeshOptions struct {
	Normals   []core.Vec3 // optional custom normals, one per triangle
	Rotation  *core.Vec3
	Center    *core.Vec3
	VertexUVs []core.Vec2 // optional per-vertex texture coordinates
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices.
// faces holds triangle indices in groups of three.
func NewTriangleMesh(vertices []core.Vec3, faces []int, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face indices must be a multiple of 3, got %d", len(faces))
	}

	numTriangles := len(faces) / 3

	if options != nil {
		if options.Normals != nil && len(options.Normals) != numTriangles {
			return nil, fmt.Errorf("number of normals (%d) must match number of triangles (%d)", len(options.Normals), numTriangles)
		}
		if options.VertexUVs != nil && len(options.VertexUVs) != len(vertices) {
			return nil, fmt.Errorf("number of vertex UVs (%d) must match number of vertices (%d)", len(options.VertexUVs), len(vertices))
		}
	}

	workingVertices := vertices
	if options != nil && options.Rotation != nil {
		workingVertices = make([]core.Vec3, len(vertices))
		for i, vertex := range vertices {
			if options.Center != nil {
				vertex = vertex.Subtract(*options.Center)
			}
			vertex = vertex.Rotate(*options.Rotation)
			if options.Center != nil {
				vertex = vertex.Add(*options.Center)
			}
			workingVertices[i] = vertex
		}
	}

	triangles := make([]*Triangle, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		if i0 >= len(workingVertices) || i1 >= len(workingVertices) || i2 >= len(workingVertices) ||
			i0 < 0 || i1 < 0 || i2 < 0 {
			return nil, fmt.Errorf("face index out of bounds at triangle %d", i)
		}

		v0, v1, v2 := workingVertices[i0], workingVertices[i1], workingVertices[i2]

		hasUVs := options != nil && options.VertexUVs != nil
		hasNormals := options != nil && options.Normals != nil

		switch {
		case hasUVs && hasNormals:
			triangles[i] = NewTriangleWithNormalAndUVs(v0, v1, v2, options.VertexUVs[i0], options.VertexUVs[i1], options.VertexUVs[i2], options.Normals[i])
		case hasUVs:
			triangles[i] = NewTriangleWithUVs(v0, v1, v2, options.VertexUVs[i0], options.VertexUVs[i1], options.VertexUVs[i2])
		case hasNormals:
			triangles[i] = NewTriangleWithNormal(v0, v1, v2, options.Normals[i])
		default:
			triangles[i] = NewTriangle(v0, v1, v2)
		}
	}

	bbox := core.NeverHitBox
	for _, t := range triangles {
		bbox = bbox.Union(t.BoundingBox())
	}

	return &TriangleMesh{Triangles: triangles, bbox: bbox}, nil
}

// Hit tests if a ray intersects with any triangle in the mesh.
func (tm *TriangleMesh) Hit(ray core.Ray) (SurfaceInteraction, bool) {
	var closest SurfaceInteraction
	found := false
	probe := ray

	for _, t := range tm.Triangles {
		if hit, ok := t.Hit(probe); ok {
			closest = hit
			found = true
			probe.TMax = hit.T
		}
	}

	return closest, found
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh.
func (tm *TriangleMesh) BoundingBox() core.AABB { return tm.bbox }

// TriangleCount returns the number of triangles in this mesh.
func (tm *TriangleMesh) TriangleCount() int { return len(tm.Triangles) }
