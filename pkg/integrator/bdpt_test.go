package integrator

import (
	"context"
	"testing"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/sampler"
	"github.com/dwlcj/sortgo/pkg/scene"
	"github.com/stretchr/testify/require"
)

func TestBDPTCombinesCameraPathAndSplatsWithoutNegativeRadiance(t *testing.T) {
	sc, err := scene.NewCornellScene(scene.SamplingConfig{Width: 50, Height: 50, SamplesPerPixel: 1, MaxDepth: 8})
	require.NoError(t, err)

	bd := NewBDPT(8, 2)
	samp := sampler.NewHaltonSampler(40)

	var total int
	for i := 0; i < 32; i++ {
		samp.StartPixelSample([2]int{25, 25}, i)
		ray := sc.Camera.GetRay(25, 25, core.NewVec2(0.5, 0.5), core.NewVec2(0.5, 0.5))
		color, splats := bd.Li(context.Background(), ray, sc, samp)

		require.GreaterOrEqual(t, color.X, 0.0)
		require.GreaterOrEqual(t, color.Y, 0.0)
		require.GreaterOrEqual(t, color.Z, 0.0)
		for _, s := range splats {
			require.GreaterOrEqual(t, s.Value.X, 0.0)
			total++
		}
	}
	_ = total
}

func TestBDPTReturnsBackgroundWhenCameraPathIsEmpty(t *testing.T) {
	closure := &scene.ClosureNode{Kind: scene.Lambert, Reflectance: core.NewVec3(0.5, 0.5, 0.5)}
	emission := core.NewVec3(0.4, 0.5, 0.6)
	sc, err := scene.NewFurnaceScene(closure, emission, scene.SamplingConfig{Width: 10, Height: 10, SamplesPerPixel: 1, MaxDepth: 4})
	require.NoError(t, err)

	bd := NewBDPT(4, 0)
	samp := sampler.NewHaltonSampler(41)
	samp.StartPixelSample([2]int{0, 0}, 0)

	ray := core.NewRay(core.NewVec3(0, 0, 10), core.NewVec3(0, 1, 0))
	color, splats := bd.Li(context.Background(), ray, sc, samp)
	require.Nil(t, splats)
	require.Equal(t, emission, color)
}

func TestPathLengthWeightDecreasesWithCombinedPathLength(t *testing.T) {
	require.Greater(t, pathLengthWeight(0, 0), pathLengthWeight(1, 0))
	require.Greater(t, pathLengthWeight(0, 0), pathLengthWeight(0, 1))
	require.InDelta(t, 0.5, pathLengthWeight(0, 0), 1e-9)
}
