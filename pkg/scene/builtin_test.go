package scene

import (
	"testing"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/stretchr/testify/require"
)

func TestNewFurnaceSceneBuildsSinglePrimitiveWithInfiniteLight(t *testing.T) {
	closure := lambertClosure(core.NewVec3(0.5, 0.5, 0.5))
	emission := core.NewVec3(0.8, 0.8, 0.8)
	s, err := NewFurnaceScene(closure, emission, SamplingConfig{Width: 20, Height: 20, SamplesPerPixel: 4, MaxDepth: 8})
	require.NoError(t, err)
	require.Len(t, s.Primitives, 1)
	require.Len(t, s.Lights, 1)
	require.NotNil(t, s.Tree)
}

func TestNewCornellSceneBuildsExpectedGeometryAndLight(t *testing.T) {
	s, err := NewCornellScene(SamplingConfig{Width: 50, Height: 50, SamplesPerPixel: 4, MaxDepth: 8})
	require.NoError(t, err)
	require.Len(t, s.Primitives, 6) // 5 walls + emissive ceiling quad
	require.Len(t, s.Lights, 1)

	center, radius := s.WorldBounds()
	require.InDelta(t, 277.5, center.X, 50)
	require.Greater(t, radius, 0.0)
}
