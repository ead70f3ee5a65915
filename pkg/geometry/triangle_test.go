package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dwlcj/sortgo/pkg/core"
)

func TestTriangleHitCenter(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
	)

	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	si, ok := tri.Hit(ray)
	require.True(t, ok)
	require.InDelta(t, 5.0, si.T, 1e-9)
	require.InDelta(t, 0, si.Point.X, 1e-9)
	require.InDelta(t, 0, si.Point.Y, 1e-9)
}

func TestTriangleMissesOutsideEdges(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
	)

	ray := core.NewRay(core.NewVec3(5, 5, -5), core.NewVec3(0, 0, 1))
	_, ok := tri.Hit(ray)
	require.False(t, ok)
}

func TestTriangleRespectsTMax(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
	)

	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	ray.TMax = 2.0
	_, ok := tri.Hit(ray)
	require.False(t, ok, "hit beyond TMax must be rejected")
}

func TestSphereHitNormalPointsOutward(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))

	si, ok := sphere.Hit(ray)
	require.True(t, ok)
	require.InDelta(t, 4.0, si.T, 1e-9)
	require.InDelta(t, -1.0, si.Normal.Z, 1e-9)
}

func TestSphereBoundingBox(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 2.0)
	box := sphere.BoundingBox()
	require.InDelta(t, -1.0, box.Min.X, 1e-9)
	require.InDelta(t, 3.0, box.Max.X, 1e-9)
}

func TestQuadHitWithinBounds(t *testing.T) {
	quad := NewQuad(core.NewVec3(-1, -1, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0))
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))

	si, ok := quad.Hit(ray)
	require.True(t, ok)
	require.InDelta(t, 5.0, si.T, 1e-9)
}

func TestCurveSegmentHit(t *testing.T) {
	curve := NewCurveSegment(core.NewVec3(-5, 0, 0), core.NewVec3(5, 0, 0), 0.1, 0.1)
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

	si, ok := curve.Hit(ray)
	require.True(t, ok)
	require.InDelta(t, 4.9, si.T, 1e-6)
}
