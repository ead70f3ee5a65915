package geometry

import (
	"math"

	"github.com/dwlcj/sortgo/pkg/core"
)

type axisAlignment int

const (
	notAxisAligned axisAlignment = iota
	xAxisAligned
	yAxisAligned
	zAxisAligned
)

func getAxisAlignment(normal core.Vec3) axisAlignment {
	const threshold = 0.9999
	const tolerance = 0.0001

	if math.Abs(normal.X) > threshold && math.Abs(normal.Y) < tolerance && math.Abs(normal.Z) < tolerance {
		return xAxisAligned
	}
	if math.Abs(normal.Y) > threshold && math.Abs(normal.X) < tolerance && math.Abs(normal.Z) < tolerance {
		return yAxisAligned
	}
	if math.Abs(normal.Z) > threshold && math.Abs(normal.X) < tolerance && math.Abs(normal.Y) < tolerance {
		return zAxisAligned
	}
	return notAxisAligned
}

func createAxisAlignedAABB(corners []core.Vec3, alignment axisAlignment, fixedCoord float64) core.AABB {
	const epsilon = 0.001

	switch alignment {
	case xAxisAligned:
		minY, maxY := findMinMax(corners, func(v core.Vec3) float64 { return v.Y })
		minZ, maxZ := findMinMax(corners, func(v core.Vec3) float64 { return v.Z })
		return core.NewAABB(
			core.NewVec3(fixedCoord-epsilon, minY, minZ),
			core.NewVec3(fixedCoord+epsilon, maxY, maxZ),
		)
	case yAxisAligned:
		minX, maxX := findMinMax(corners, func(v core.Vec3) float64 { return v.X })
		minZ, maxZ := findMinMax(corners, func(v core.Vec3) float64 { return v.Z })
		return core.NewAABB(
			core.NewVec3(minX, fixedCoord-epsilon, minZ),
			core.NewVec3(maxX, fixedCoord+epsilon, maxZ),
		)
	case zAxisAligned:
		minX, maxX := findMinMax(corners, func(v core.Vec3) float64 { return v.X })
		minY, maxY := findMinMax(corners, func(v core.Vec3) float64 { return v.Y })
		return core.NewAABB(
			core.NewVec3(minX, minY, fixedCoord-epsilon),
			core.NewVec3(maxX, maxY, fixedCoord+epsilon),
		)
	default:
		return core.NewAABBFromPoints(corners[0], corners[1], corners[2], corners[3])
	}
}

func findMinMax(corners []core.Vec3, accessor func(core.Vec3) float64) (float64, float64) {
	minV := accessor(corners[0])
	maxV := minV
	for i := 1; i < len(corners); i++ {
		val := accessor(corners[i])
		minV = math.Min(minV, val)
		maxV = math.Max(maxV, val)
	}
	return minV, maxV
}

// Quad is a rectangular surface defined by a corner and two edge vectors.
type Quad struct {
	Corner core.Vec3
	U      core.Vec3
	V      core.Vec3
	Normal core.Vec3
	D      float64
	W      core.Vec3
}

// NewQuad creates a new quad from a corner point and two edge vectors.
func NewQuad(corner, u, v core.Vec3) *Quad {
	normal := u.Cross(v).Normalize()
	d := normal.Dot(corner)

	cross := u.Cross(v)
	w := normal.Multiply(1.0 / normal.Dot(cross))

	return &Quad{Corner: corner, U: u, V: v, Normal: normal, D: d, W: w}
}

// Hit tests if a ray intersects with the quad.
func (q *Quad) Hit(ray core.Ray) (SurfaceInteraction, bool) {
	denominator := ray.Direction.Dot(q.Normal)
	if math.Abs(denominator) < 1e-8 {
		return SurfaceInteraction{}, false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if t < ray.TMin || t > ray.TMax {
		return SurfaceInteraction{}, false
	}

	hitPoint := ray.At(t)
	hitVector := hitPoint.Subtract(q.Corner)

	alpha := q.W.Dot(hitVector.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return SurfaceInteraction{}, false
	}

	si := SurfaceInteraction{T: t, Point: hitPoint, UV: core.NewVec2(alpha, beta), Tangent: q.U.Normalize()}
	si.SetFaceNormal(ray, q.Normal)
	return si, true
}

// BoundingBox returns the axis-aligned bounding box for this quad.
func (q *Quad) BoundingBox() core.AABB {
	corners := []core.Vec3{
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	}

	alignment := getAxisAlignment(q.Normal)
	if alignment != notAxisAligned {
		var fixedCoord float64
		switch alignment {
		case xAxisAligned:
			fixedCoord = corners[0].X
		case yAxisAligned:
			fixedCoord = corners[0].Y
		case zAxisAligned:
			fixedCoord = corners[0].Z
		}
		return createAxisAlignedAABB(corners, alignment, fixedCoord)
	}

	return core.NewAABBFromPoints(corners[0], corners[1], corners[2], corners[3])
}

// Area returns the quad's surface area.
func (q *Quad) Area() float64 { return q.U.Cross(q.V).Length() }

// SampleArea draws a uniform point on the quad.
func (q *Quad) SampleArea(u core.Vec2) (point, normal core.Vec3) {
	return q.Corner.Add(q.U.Multiply(u.X)).Add(q.V.Multiply(u.Y)), q.Normal
}
