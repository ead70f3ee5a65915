package geometry

import (
	"math"

	"github.com/dwlcj/sortgo/pkg/core"
)

// Sphere is a sphere shape.
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere.
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

// Hit tests if a ray intersects with the sphere.
func (s *Sphere) Hit(ray core.Ray) (SurfaceInteraction, bool) {
	oc := ray.Origin.Subtract(s.Center)

	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return SurfaceInteraction{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root < ray.TMin || root > ray.TMax {
		root = (-halfB + sqrtD) / a
		if root < ray.TMin || root > ray.TMax {
			return SurfaceInteraction{}, false
		}
	}

	point := ray.At(root)
	outwardNormal := point.Subtract(s.Center).Multiply(1.0 / s.Radius)

	theta := math.Acos(-outwardNormal.Y)
	phi := math.Atan2(-outwardNormal.Z, outwardNormal.X) + math.Pi
	uv := core.NewVec2(phi/(2.0*math.Pi), theta/math.Pi)

	si := SurfaceInteraction{T: root, Point: point, UV: uv}
	si.SetFaceNormal(ray, outwardNormal)
	return si, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere.
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(radius), s.Center.Add(radius))
}

// Area returns the sphere's surface area, for area-light PDF conversion.
func (s *Sphere) Area() float64 { return 4 * math.Pi * s.Radius * s.Radius }

// SampleArea draws a uniform point on the sphere's surface.
func (s *Sphere) SampleArea(u core.Vec2) (point, normal core.Vec3) {
	d := core.UniformSampleSphere(u)
	return s.Center.Add(d.Multiply(s.Radius)), d
}
