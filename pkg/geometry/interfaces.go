// Package geometry implements the geometric kernel's shape layer: the
// analytic and triangulated primitives a Scene is built from, their
// ray-intersection routines, and the SurfaceInteraction record those
// routines fill in.
package geometry

import "github.com/dwlcj/sortgo/pkg/core"

// SurfaceInteraction is the result of a successful ray-shape intersection:
// the hit parameter, position, shading data, and a non-owning index back
// to the material/light bound to the primitive that was hit. The
// accelerator fills PrimitiveIndex; individual Shape.Hit implementations
// leave it at its zero value since they don't know their own index.
type SurfaceInteraction struct {
	T               float64
	Point           core.Vec3
	Normal          core.Vec3 // shading normal, faced toward the incoming ray
	GeometricNormal core.Vec3 // true surface normal, independent of shading interpolation
	Tangent         core.Vec3 // tangent of the local shading frame
	UV              core.Vec2
	FrontFace       bool
	PrimitiveIndex  int
}

// SetFaceNormal sets Normal/GeometricNormal from an outward-facing normal,
// flipping it to face the incoming ray and recording which side was hit.
func (si *SurfaceInteraction) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	si.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if si.FrontFace {
		si.Normal = outwardNormal
		si.GeometricNormal = outwardNormal
	} else {
		si.Normal = outwardNormal.Negate()
		si.GeometricNormal = outwardNormal.Negate()
	}
}

// Shape is anything that can be hit by a ray and bounded by an AABB. Hit
// consults ray.TMin/ray.TMax for the valid parametric range.
type Shape interface {
	Hit(ray core.Ray) (SurfaceInteraction, bool)
	BoundingBox() core.AABB
}

// AreaSampler is implemented by shapes usable as area lights: they can
// draw a uniform point on their surface and report its area, so a caller
// can convert an area-measure PDF to solid angle.
type AreaSampler interface {
	SampleArea(u core.Vec2) (point, normal core.Vec3)
	Area() float64
}

// Triangulable is implemented by shapes the accelerator can lane-pack into
// a SIMD triangle batch at BVH-leaf build time.
type Triangulable interface {
	TriangleVerts() (v0, v1, v2 core.Vec3)
}

// Lineable is implemented by shapes (hair curve segments) the accelerator
// can lane-pack into a SIMD line batch.
type Lineable interface {
	LineVerts() (p0, p1 core.Vec3, r0, r1 float64)
}

// Preprocessor is implemented by shapes/lights that need a finalization
// pass once the Scene's finite world bounds are known (e.g. infinite
// lights sizing their sampling disk to the scene radius).
type Preprocessor interface {
	Preprocess(worldCenter core.Vec3, worldRadius float64) error
}
