package integrator

import (
	"context"
	"testing"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/sampler"
	"github.com/dwlcj/sortgo/pkg/scene"
	"github.com/stretchr/testify/require"
)

func TestAmbientOcclusionIsBinaryInsideCornellBox(t *testing.T) {
	sc, err := scene.NewCornellScene(scene.SamplingConfig{Width: 50, Height: 50, SamplesPerPixel: 1, MaxDepth: 8})
	require.NoError(t, err)

	ao := NewAmbientOcclusion(1e6)
	samp := sampler.NewHaltonSampler(3)

	ray := sc.Camera.GetRay(25, 25, core.NewVec2(0.5, 0.5), core.NewVec2(0.5, 0.5))
	samp.StartPixelSample([2]int{25, 25}, 0)
	color, splats := ao.Li(context.Background(), ray, sc, samp)

	require.Nil(t, splats)
	require.Contains(t, []float64{0.0, 1.0}, color.X)
}

func TestAmbientOcclusionReturnsOneWhenNoOcclusion(t *testing.T) {
	closure := &scene.ClosureNode{Kind: scene.Lambert, Reflectance: core.NewVec3(0.5, 0.5, 0.5)}
	sc, err := scene.NewFurnaceScene(closure, core.NewVec3(1, 1, 1), scene.SamplingConfig{Width: 10, Height: 10, SamplesPerPixel: 1, MaxDepth: 8})
	require.NoError(t, err)

	ao := NewAmbientOcclusion(0.0001)
	samp := sampler.NewHaltonSampler(4)
	samp.StartPixelSample([2]int{5, 5}, 0)
	ray := sc.Camera.GetRay(5, 5, core.NewVec2(0.5, 0.5), core.NewVec2(0.5, 0.5))

	color, _ := ao.Li(context.Background(), ray, sc, samp)
	require.InDelta(t, 1.0, color.X, 0.01)
}
