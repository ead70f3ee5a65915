package geometry

import (
	"math"

	"github.com/dwlcj/sortgo/pkg/core"
)

// CurveSegment is a single straight segment of a hair/fiber curve: a
// cylinder between two endpoints with per-end radii R0 and R1 (Hit uses
// their average). The accelerator stores these as per-primitive line
// lanes via Lineable, the same way it stores Triangle as triangle lanes.
type CurveSegment struct {
	P0, P1 core.Vec3
	R0, R1 float64
	bbox   core.AABB
}

// NewCurveSegment creates a curve segment between p0 and p1 with per-end radii.
func NewCurveSegment(p0, p1 core.Vec3, r0, r1 float64) *CurveSegment {
	maxR := math.Max(r0, r1)
	pad := core.NewVec3(maxR, maxR, maxR)
	bbox := core.NewAABBFromPoints(p0.Subtract(pad), p0.Add(pad), p1.Subtract(pad), p1.Add(pad))
	return &CurveSegment{P0: p0, P1: p1, R0: r0, R1: r1, bbox: bbox}
}

// Hit tests a ray against an open cylinder of radius (R0+R1)/2 around
// the segment's axis, clipped to the segment's length. The radius does
// not vary along the axis and there are no end caps.
func (c *CurveSegment) Hit(ray core.Ray) (SurfaceInteraction, bool) {
	axis := c.P1.Subtract(c.P0)
	length := axis.Length()
	if length < 1e-12 {
		return SurfaceInteraction{}, false
	}
	dir := axis.Multiply(1 / length)

	// Approximate the varying-radius capsule by its average radius: solving
	// the exact linear-radius cone-cylinder blend is not worth the extra
	// quadratic terms for hair-width curves where R0 ~ R1.
	avgR := 0.5 * (c.R0 + c.R1)

	delta := ray.Origin.Subtract(c.P0)
	dv := ray.Direction.Dot(dir)
	deltaV := delta.Dot(dir)

	a := ray.Direction.LengthSquared() - dv*dv
	b := 2.0 * (delta.Dot(ray.Direction) - deltaV*dv)
	cc := delta.LengthSquared() - deltaV*deltaV - avgR*avgR

	const epsilon = 1e-10
	if math.Abs(a) < epsilon {
		return SurfaceInteraction{}, false
	}

	discriminant := b*b - 4*a*cc
	if discriminant < 0 {
		return SurfaceInteraction{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	tryRoot := func(t float64) (SurfaceInteraction, bool) {
		if t < ray.TMin || t > ray.TMax {
			return SurfaceInteraction{}, false
		}
		point := ray.At(t)
		h := point.Subtract(c.P0).Dot(dir)
		if h < 0 || h > length {
			return SurfaceInteraction{}, false
		}
		axisPoint := c.P0.Add(dir.Multiply(h))
		outwardNormal := point.Subtract(axisPoint).Normalize()
		si := SurfaceInteraction{T: t, Point: point, UV: core.NewVec2(h/length, 0), Tangent: dir}
		si.SetFaceNormal(ray, outwardNormal)
		return si, true
	}

	if hit, ok := tryRoot((-b - sqrtD) / (2 * a)); ok {
		return hit, true
	}
	return tryRoot((-b + sqrtD) / (2 * a))
}

// BoundingBox returns the segment's axis-aligned bounding box.
func (c *CurveSegment) BoundingBox() core.AABB { return c.bbox }

// LineVerts implements Lineable for the accelerator's SIMD line packer.
func (c *CurveSegment) LineVerts() (p0, p1 core.Vec3, r0, r1 float64) {
	return c.P0, c.P1, c.R0, c.R1
}
