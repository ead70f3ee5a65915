package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return AABB{Min: min, Max: max}
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	min := Vec3{
		X: math.Min(aabb.Min.X, other.Min.X),
		Y: math.Min(aabb.Min.Y, other.Min.Y),
		Z: math.Min(aabb.Min.Z, other.Min.Z),
	}
	max := Vec3{
		X: math.Max(aabb.Max.X, other.Max.X),
		Y: math.Max(aabb.Max.Y, other.Max.Y),
		Z: math.Max(aabb.Max.Z, other.Max.Z),
	}
	return AABB{Min: min, Max: max}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// SurfaceArea returns the surface area of the AABB
func (aabb AABB) SurfaceArea() float64 {
	size := aabb.Size()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0 // X axis
	}
	if size.Y > size.Z {
		return 1 // Y axis
	}
	return 2 // Z axis
}

// NeverHitBox is a degenerate AABB (min > max on every axis) used to pad
// unused child slots in a wide BVH node's SoA layout; IntersectT always
// reports a miss against it.
var NeverHitBox = AABB{Min: Vec3{X: infinity, Y: infinity, Z: infinity}, Max: Vec3{X: -infinity, Y: -infinity, Z: -infinity}}

// IntersectT runs the slab test against ray and returns the near
// intersection parameter, or a negative value if the ray misses the box
// or the hit falls outside [ray.TMin, ray.TMax]. A ray whose origin is
// inside the box returns max(ray.TMin, 0), the start of its range. An
// inverted box (Min > Max on any axis, such as NeverHitBox) is a miss.
func (aabb AABB) IntersectT(ray *Ray) float64 {
	if aabb.Min.X > aabb.Max.X || aabb.Min.Y > aabb.Max.Y || aabb.Min.Z > aabb.Max.Z {
		return -1
	}
	invDir := ray.InvDirection()
	tMin, tMax := ray.TMin, ray.TMax

	t1 := (aabb.Min.X - ray.Origin.X) * invDir.X
	t2 := (aabb.Max.X - ray.Origin.X) * invDir.X
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	tMin, tMax = math.Max(tMin, t1), math.Min(tMax, t2)
	if tMin > tMax {
		return -1
	}

	t1 = (aabb.Min.Y - ray.Origin.Y) * invDir.Y
	t2 = (aabb.Max.Y - ray.Origin.Y) * invDir.Y
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	tMin, tMax = math.Max(tMin, t1), math.Min(tMax, t2)
	if tMin > tMax {
		return -1
	}

	t1 = (aabb.Min.Z - ray.Origin.Z) * invDir.Z
	t2 = (aabb.Max.Z - ray.Origin.Z) * invDir.Z
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	tMin, tMax = math.Max(tMin, t1), math.Min(tMax, t2)
	if tMin > tMax {
		return -1
	}

	return math.Max(tMin, 0)
}
