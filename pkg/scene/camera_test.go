package scene

import (
	"testing"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/stretchr/testify/require"
)

func pinholeConfig() CameraConfig {
	return CameraConfig{
		Center: core.NewVec3(0, 0, 0), LookAt: core.NewVec3(0, 0, -1), Up: core.NewVec3(0, 1, 0),
		Width: 800, AspectRatio: 16.0 / 9.0, VFov: 90, Aperture: 0, FocusDistance: 1,
	}
}

func TestCameraCenterRayPointsAtLookAt(t *testing.T) {
	cam := NewCamera(pinholeConfig())
	ray := cam.GetRay(cam.Width()/2, cam.Height()/2, core.Vec2{}, core.NewVec2(0.5, 0.5))
	require.Greater(t, -ray.Direction.Z, 0.9) // looks roughly down -Z
}

func TestCameraMapRayToPixelRoundTrips(t *testing.T) {
	cam := NewCamera(pinholeConfig())
	px, py := cam.Width()/2, cam.Height()/2
	ray := cam.GetRay(px, py, core.Vec2{}, core.NewVec2(0.5, 0.5))

	x, y, ok := cam.MapRayToPixel(ray)
	require.True(t, ok)
	require.InDelta(t, px, x, 2)
	require.InDelta(t, py, y, 2)
}

func TestCameraSampleFromPointBehindCameraReturnsNil(t *testing.T) {
	cam := NewCamera(pinholeConfig())
	behind := core.NewVec3(0, 0, 1)
	sample := cam.SampleCameraFromPoint(behind, core.NewVec2(0.5, 0.5))
	require.Nil(t, sample)
}

func TestCameraSampleFromPointInFrontReturnsPositivePDF(t *testing.T) {
	cam := NewCamera(pinholeConfig())
	inFront := core.NewVec3(0, 0, -5)
	sample := cam.SampleCameraFromPoint(inFront, core.NewVec2(0.5, 0.5))
	require.NotNil(t, sample)
	require.Greater(t, sample.PDF, 0.0)
}
