package light

import (
	"testing"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/stretchr/testify/require"
)

func testLights() []Light {
	return []Light{
		NewPointLight(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1)),
		NewPointLight(core.NewVec3(1, 1, 0), core.NewVec3(1, 1, 1)),
		NewPointLight(core.NewVec3(0, 1, 1), core.NewVec3(1, 1, 1)),
	}
}

func TestUniformSamplerSelectsEachLightWithEqualProbability(t *testing.T) {
	lights := testLights()
	s := NewUniformSampler(lights)
	require.Equal(t, 3, s.Count())
	for i := range lights {
		require.InDelta(t, 1.0/3, s.LightProbability(i, core.Vec3{}, core.Vec3{}), 1e-9)
	}

	lt, pdf, idx := s.SampleLight(core.Vec3{}, core.Vec3{}, 0.9)
	require.Equal(t, lights[idx], lt)
	require.InDelta(t, 1.0/3, pdf, 1e-9)
}

func TestPowerSamplerWeightsSelectionProportionally(t *testing.T) {
	lights := testLights()
	weights := []float64{1, 3, 0}
	s := NewPowerSampler(lights, weights, 10)

	require.Equal(t, 0.0, s.LightProbability(2, core.Vec3{}, core.Vec3{}))
	require.InDelta(t, 0.25, s.LightProbability(0, core.Vec3{}, core.Vec3{}), 1e-9)
	require.InDelta(t, 0.75, s.LightProbability(1, core.Vec3{}, core.Vec3{}), 1e-9)

	lt, pdf, idx := s.SampleLight(core.Vec3{}, core.Vec3{}, 0.99)
	require.Equal(t, lights[1], lt)
	require.Equal(t, 1, idx)
	require.InDelta(t, 0.75, pdf, 1e-9)
}

func TestPowerSamplerAllZeroWeightsReturnsNoLight(t *testing.T) {
	lights := testLights()
	s := NewPowerSampler(lights, []float64{0, 0, 0}, 10)
	lt, pdf, idx := s.SampleLight(core.Vec3{}, core.Vec3{}, 0.5)
	require.Nil(t, lt)
	require.Equal(t, 0.0, pdf)
	require.Equal(t, -1, idx)
}
