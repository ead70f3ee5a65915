package light

import (
	"math"
	"testing"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/stretchr/testify/require"
)

func TestPointLightIntensityFallsOffWithDistanceSquared(t *testing.T) {
	pt := NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(100, 100, 100))
	near := pt.Sample(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), core.Vec2{})
	far := pt.Sample(core.NewVec3(0, -5, 0), core.NewVec3(0, 1, 0), core.Vec2{})

	require.InDelta(t, near.Emission.X*4, far.Emission.X, 1e-9)
}

func TestPointLightPDFIsZero(t *testing.T) {
	pt := NewPointLight(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))
	require.Equal(t, 0.0, pt.PDF(core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0)))
}

func TestSpotLightFalloffZeroOutsideCone(t *testing.T) {
	spot := NewSpotLight(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), core.NewVec3(10, 10, 10), 30, 20)
	require.Equal(t, 0.0, spot.falloff(core.NewVec3(1, 0, 0)))
	require.Equal(t, 1.0, spot.falloff(core.NewVec3(0, 0, -1)))
}

func TestSpotLightFalloffSmoothBetweenStartAndWidth(t *testing.T) {
	spot := NewSpotLight(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), core.NewVec3(1, 1, 1), 30, 20)
	midAngle := 25.0 * math.Pi / 180
	dir := core.NewVec3(math.Sin(midAngle), 0, -math.Cos(midAngle))
	falloff := spot.falloff(dir)
	require.Greater(t, falloff, 0.0)
	require.Less(t, falloff, 1.0)
}

func TestSpotLightSampleEmissionStaysWithinCone(t *testing.T) {
	spot := NewSpotLight(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), core.NewVec3(1, 1, 1), 30, 10)
	sample := spot.SampleEmission(core.NewVec2(0.25, 0.6), core.NewVec2(0.1, 0.9))
	cosTheta := spot.Direction.Dot(sample.Direction)
	require.GreaterOrEqual(t, cosTheta, spot.CosTotalWidth-1e-9)
	require.Greater(t, sample.DirectionPDF, 0.0)
}
