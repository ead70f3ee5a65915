package light

import (
	"testing"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/sampler"
	"github.com/stretchr/testify/require"
)

func TestCombinedPDFSumsOverAllLights(t *testing.T) {
	emission := core.NewVec3(1, 1, 1)
	quadA := NewQuadLight(core.NewVec3(-0.5, -0.5, 2), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), emission)
	quadB := NewQuadLight(core.NewVec3(-0.5, -0.5, -2), core.NewVec3(1, 0, 0), core.NewVec3(0, -1, 0), emission)
	lights := []Light{quadA, quadB}
	s := NewUniformSampler(lights)

	point := core.NewVec3(0, 0, 0)
	normal := core.NewVec3(0, 0, 1)
	direction := core.NewVec3(0, 0, 1)

	combined := CombinedPDF(lights, s, point, normal, direction)
	direct := quadA.PDF(point, normal, direction) * 0.5
	require.InDelta(t, direct, combined, 1e-9)
}

func TestCombinedPDFZeroWithNoLights(t *testing.T) {
	s := NewUniformSampler(nil)
	require.Equal(t, 0.0, CombinedPDF(nil, s, core.Vec3{}, core.Vec3{}, core.Vec3{}))
}

func TestSampleDirectCombinesSelectionAndLightPDF(t *testing.T) {
	emission := core.NewVec3(2, 2, 2)
	pointLight := NewPointLight(core.NewVec3(0, 5, 0), emission)
	lights := []Light{pointLight}
	s := NewUniformSampler(lights)
	samp := sampler.NewHaltonSampler(1)

	sample, lt, ok := SampleDirect(lights, s, core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), samp)
	require.True(t, ok)
	require.Equal(t, pointLight, lt)
	require.Equal(t, 1.0, sample.PDF) // point light PDF is 1, selection PDF is 1 (single light)
}

func TestSampleDirectNoLightsReturnsFalse(t *testing.T) {
	s := NewUniformSampler(nil)
	samp := sampler.NewHaltonSampler(1)
	_, _, ok := SampleDirect(nil, s, core.Vec3{}, core.Vec3{}, samp)
	require.False(t, ok)
}

func TestSampleEmissionPathSelectsAndScalesAreaPDF(t *testing.T) {
	pointLight := NewPointLight(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))
	lights := []Light{pointLight}
	s := NewUniformSampler(lights)
	samp := sampler.NewHaltonSampler(2)

	sample, ok := SampleEmissionPath(lights, s, samp)
	require.True(t, ok)
	require.Equal(t, 1.0, sample.AreaPDF)
}
