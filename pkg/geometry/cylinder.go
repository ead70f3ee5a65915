package geometry

import (
	"math"

	"github.com/dwlcj/sortgo/pkg/core"
)

// Cylinder is a finite cylinder shape.
type Cylinder struct {
	BaseCenter core.Vec3
	TopCenter  core.Vec3
	Radius     float64
	Capped     bool

	axis   core.Vec3
	height float64
}

// NewCylinder creates a new cylinder.
func NewCylinder(baseCenter, topCenter core.Vec3, radius float64, capped bool) *Cylinder {
	axisVector := topCenter.Subtract(baseCenter)
	height := axisVector.Length()
	axis := axisVector.Normalize()

	return &Cylinder{BaseCenter: baseCenter, TopCenter: topCenter, Radius: radius, Capped: capped, axis: axis, height: height}
}

// BoundingBox returns the axis-aligned bounding box for this cylinder.
func (c *Cylinder) BoundingBox() core.AABB {
	minCorner := core.NewVec3(
		math.Min(c.BaseCenter.X, c.TopCenter.X),
		math.Min(c.BaseCenter.Y, c.TopCenter.Y),
		math.Min(c.BaseCenter.Z, c.TopCenter.Z),
	)
	maxCorner := core.NewVec3(
		math.Max(c.BaseCenter.X, c.TopCenter.X),
		math.Max(c.BaseCenter.Y, c.TopCenter.Y),
		math.Max(c.BaseCenter.Z, c.TopCenter.Z),
	)

	const parallelThreshold = 0.9999
	extentX, extentY, extentZ := c.Radius, c.Radius, c.Radius
	if math.Abs(c.axis.X) > parallelThreshold {
		extentX = 0
	}
	if math.Abs(c.axis.Y) > parallelThreshold {
		extentY = 0
	}
	if math.Abs(c.axis.Z) > parallelThreshold {
		extentZ = 0
	}

	return core.NewAABB(
		core.NewVec3(minCorner.X-extentX, minCorner.Y-extentY, minCorner.Z-extentZ),
		core.NewVec3(maxCorner.X+extentX, maxCorner.Y+extentY, maxCorner.Z+extentZ),
	)
}

// Hit tests if a ray intersects with the cylinder.
func (c *Cylinder) Hit(ray core.Ray) (SurfaceInteraction, bool) {
	var closest SurfaceInteraction
	found := false
	closestT := ray.TMax

	if hit, ok := c.hitBody(ray, ray.TMin, closestT); ok {
		closest, found, closestT = hit, true, hit.T
	}

	if c.Capped {
		if hit, ok := c.hitCap(ray, c.BaseCenter, c.axis.Negate(), ray.TMin, closestT); ok {
			closest, found, closestT = hit, true, hit.T
		}
		if hit, ok := c.hitCap(ray, c.TopCenter, c.axis, ray.TMin, closestT); ok {
			closest, found, closestT = hit, true, hit.T
		}
	}

	return closest, found
}

func (c *Cylinder) hitBody(ray core.Ray, tMin, tMax float64) (SurfaceInteraction, bool) {
	delta := ray.Origin.Subtract(c.BaseCenter)

	dv := ray.Direction.Dot(c.axis)
	deltaV := delta.Dot(c.axis)

	a := ray.Direction.LengthSquared() - dv*dv
	b := 2.0 * (delta.Dot(ray.Direction) - deltaV*dv)
	cc := delta.LengthSquared() - deltaV*deltaV - c.Radius*c.Radius

	const epsilon = 1e-8
	if math.Abs(a) < epsilon {
		return SurfaceInteraction{}, false
	}

	discriminant := b*b - 4*a*cc
	if discriminant < 0 {
		return SurfaceInteraction{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	tryRoot := func(t float64) (SurfaceInteraction, bool) {
		if t < tMin || t > tMax {
			return SurfaceInteraction{}, false
		}
		point := ray.At(t)
		h := point.Subtract(c.BaseCenter).Dot(c.axis)
		if h < 0 || h > c.height {
			return SurfaceInteraction{}, false
		}

		axisPoint := c.BaseCenter.Add(c.axis.Multiply(h))
		outwardNormal := point.Subtract(axisPoint).Normalize()

		v := h / c.height
		radial := point.Subtract(axisPoint)
		var refVector core.Vec3
		if math.Abs(c.axis.Y) < 0.9 {
			refVector = core.NewVec3(0, 1, 0)
		} else {
			refVector = core.NewVec3(1, 0, 0)
		}
		tangent := c.axis.Cross(refVector).Normalize()
		bitangent := c.axis.Cross(tangent)

		u := math.Atan2(radial.Dot(bitangent), radial.Dot(tangent))
		u = (u + math.Pi) / (2.0 * math.Pi)

		si := SurfaceInteraction{T: t, Point: point, UV: core.NewVec2(u, v), Tangent: tangent}
		si.SetFaceNormal(ray, outwardNormal)
		return si, true
	}

	if hit, ok := tryRoot((-b - sqrtD) / (2 * a)); ok {
		return hit, true
	}
	return tryRoot((-b + sqrtD) / (2 * a))
}

func (c *Cylinder) hitCap(ray core.Ray, center, normal core.Vec3, tMin, tMax float64) (SurfaceInteraction, bool) {
	const epsilon = 1e-8

	denom := ray.Direction.Dot(normal)
	if math.Abs(denom) < epsilon {
		return SurfaceInteraction{}, false
	}

	t := center.Subtract(ray.Origin).Dot(normal) / denom
	if t < tMin || t > tMax {
		return SurfaceInteraction{}, false
	}

	point := ray.At(t)
	if point.Subtract(center).Length() > c.Radius {
		return SurfaceInteraction{}, false
	}

	localPoint := point.Subtract(center)
	var refVector core.Vec3
	if math.Abs(normal.Y) < 0.9 {
		refVector = core.NewVec3(0, 1, 0)
	} else {
		refVector = core.NewVec3(1, 0, 0)
	}
	tangent := normal.Cross(refVector).Normalize()
	bitangent := normal.Cross(tangent)

	u := (localPoint.Dot(tangent)/c.Radius + 1.0) / 2.0
	v := (localPoint.Dot(bitangent)/c.Radius + 1.0) / 2.0

	si := SurfaceInteraction{T: t, Point: point, UV: core.NewVec2(u, v)}
	si.SetFaceNormal(ray, normal)
	return si, true
}
