package scene

import (
	"testing"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/geometry"
	"github.com/stretchr/testify/require"
)

func TestBuildRejectsEmptyScene(t *testing.T) {
	_, err := Build(nil, nil, nil, nil, nil, SamplingConfig{})
	require.Error(t, err)
}

func TestBuildComputesWorldBoundsAndPreprocessesLights(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 0), 2)
	primitives := []Primitive{{Shape: sphere, MaterialIndex: 0, LightIndex: NoLight}}
	closures := []*ClosureNode{lambertClosure(core.NewVec3(0.5, 0.5, 0.5))}

	cam := NewCamera(pinholeConfig())
	s, err := Build(cam, primitives, closures, nil, nil, SamplingConfig{Width: 10, Height: 10})
	require.NoError(t, err)
	require.NotNil(t, s.Tree)
	require.NotNil(t, s.LightSampler)

	center, radius := s.WorldBounds()
	require.InDelta(t, 0, center.X, 1e-9)
	require.Greater(t, radius, 0.0)
}

func TestBuildScatteringEventResolvesPrimitiveClosure(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 0), 1)
	primitives := []Primitive{{Shape: sphere, MaterialIndex: 0, LightIndex: NoLight}}
	closures := []*ClosureNode{lambertClosure(core.NewVec3(0.4, 0.4, 0.4))}
	cam := NewCamera(pinholeConfig())
	s, err := Build(cam, primitives, closures, nil, nil, SamplingConfig{Width: 10, Height: 10})
	require.NoError(t, err)

	hit := geometry.SurfaceInteraction{
		T: 1, Point: core.NewVec3(0, 0, 1), Normal: core.NewVec3(0, 0, 1),
		Tangent: core.NewVec3(1, 0, 0), PrimitiveIndex: 0,
	}
	event := s.BuildScatteringEvent(hit)
	require.NotNil(t, event.BSDF)
	require.Equal(t, 1, event.BSDF.NumLobes())
	require.True(t, event.Emission.IsZero())
}
