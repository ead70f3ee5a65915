package geometry

import (
	"math"

	"github.com/dwlcj/sortgo/pkg/core"
)

// Disc is a circular disc in 3D space, usable as a quad-light-like area
// emitter host.
type Disc struct {
	Center core.Vec3
	Normal core.Vec3
	Radius float64
	Right  core.Vec3
	Up     core.Vec3
}

// NewDisc creates a new disc.
func NewDisc(center, normal core.Vec3, radius float64) *Disc {
	normalNormalized := normal.Normalize()

	var right core.Vec3
	if math.Abs(normalNormalized.X) > 0.1 {
		right = core.NewVec3(0, 1, 0)
	} else {
		right = core.NewVec3(1, 0, 0)
	}
	right = right.Cross(normalNormalized).Normalize()
	up := normalNormalized.Cross(right).Normalize()

	return &Disc{Center: center, Normal: normalNormalized, Radius: radius, Right: right, Up: up}
}

// Hit implements the Shape interface.
func (d *Disc) Hit(ray core.Ray) (SurfaceInteraction, bool) {
	denom := d.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-6 {
		return SurfaceInteraction{}, false
	}

	t := d.Normal.Dot(d.Center.Subtract(ray.Origin)) / denom
	if t < ray.TMin || t > ray.TMax {
		return SurfaceInteraction{}, false
	}

	hitPoint := ray.At(t)
	centerToHit := hitPoint.Subtract(d.Center)
	if centerToHit.LengthSquared() > d.Radius*d.Radius {
		return SurfaceInteraction{}, false
	}

	si := SurfaceInteraction{Point: hitPoint, T: t}
	si.SetFaceNormal(ray, d.Normal)
	return si, true
}

// BoundingBox implements the Shape interface.
func (d *Disc) BoundingBox() core.AABB {
	rightExtent := d.Right.Multiply(d.Radius)
	upExtent := d.Up.Multiply(d.Radius)

	corner1 := d.Center.Add(rightExtent).Add(upExtent)
	corner2 := d.Center.Add(rightExtent).Subtract(upExtent)
	corner3 := d.Center.Subtract(rightExtent).Add(upExtent)
	corner4 := d.Center.Subtract(rightExtent).Subtract(upExtent)

	return core.NewAABBFromPoints(corner1, corner2, corner3, corner4)
}

// Area returns the disc's surface area.
func (d *Disc) Area() float64 { return math.Pi * d.Radius * d.Radius }

// SampleArea draws a uniform point on the disc via concentric-disk mapping.
func (d *Disc) SampleArea(u core.Vec2) (point, normal core.Vec3) {
	p := core.ConcentricSampleDisk(u).Multiply(d.Radius)
	return d.Center.Add(d.Right.Multiply(p.X)).Add(d.Up.Multiply(p.Y)), d.Normal
}
