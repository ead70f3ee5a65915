package geometry

import (
	"math"

	"github.com/dwlcj/sortgo/pkg/core"
)

// Plane is an infinite plane defined by a point and normal.
type Plane struct {
	Point  core.Vec3
	Normal core.Vec3
}

// NewPlane creates a new plane.
func NewPlane(point, normal core.Vec3) *Plane {
	return &Plane{Point: point, Normal: normal.Normalize()}
}

// Hit tests if a ray intersects with the plane.
func (p *Plane) Hit(ray core.Ray) (SurfaceInteraction, bool) {
	denominator := ray.Direction.Dot(p.Normal)
	if math.Abs(denominator) < 1e-8 {
		return SurfaceInteraction{}, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < ray.TMin || t > ray.TMax {
		return SurfaceInteraction{}, false
	}

	hitPoint := ray.At(t)
	si := SurfaceInteraction{T: t, Point: hitPoint}
	si.SetFaceNormal(ray, p.Normal)
	return si, true
}

// BoundingBox returns an unbounded box; planes are only usable in scenes
// that also contain finite geometry, never as the sole accelerator leaf.
func (p *Plane) BoundingBox() core.AABB {
	return core.AABB{
		Min: core.NewVec3(math.Inf(-1), math.Inf(-1), math.Inf(-1)),
		Max: core.NewVec3(math.Inf(1), math.Inf(1), math.Inf(1)),
	}
}
