package integrator

import (
	"context"
	"testing"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/sampler"
	"github.com/dwlcj/sortgo/pkg/scene"
	"github.com/stretchr/testify/require"
)

func TestDirectLightingIlluminatesCornellFloor(t *testing.T) {
	sc, err := scene.NewCornellScene(scene.SamplingConfig{Width: 50, Height: 50, SamplesPerPixel: 1, MaxDepth: 8})
	require.NoError(t, err)

	dl := NewDirectLighting()
	samp := sampler.NewHaltonSampler(5)
	samp.StartPixelSample([2]int{25, 25}, 0)
	ray := sc.Camera.GetRay(25, 25, core.NewVec2(0.5, 0.5), core.NewVec2(0.5, 0.5))

	color, splats := dl.Li(context.Background(), ray, sc, samp)
	require.Nil(t, splats)
	require.GreaterOrEqual(t, color.X, 0.0)
	require.GreaterOrEqual(t, color.Y, 0.0)
	require.GreaterOrEqual(t, color.Z, 0.0)
}

func TestDirectLightingReturnsBackgroundWhenRayEscapes(t *testing.T) {
	closure := &scene.ClosureNode{Kind: scene.Lambert, Reflectance: core.NewVec3(0.5, 0.5, 0.5)}
	emission := core.NewVec3(0.3, 0.4, 0.6)
	sc, err := scene.NewFurnaceScene(closure, emission, scene.SamplingConfig{Width: 10, Height: 10, SamplesPerPixel: 1, MaxDepth: 8})
	require.NoError(t, err)

	dl := NewDirectLighting()
	samp := sampler.NewHaltonSampler(6)
	samp.StartPixelSample([2]int{0, 0}, 0)

	ray := core.NewRay(core.NewVec3(0, 0, 10), core.NewVec3(0, 1, 0))
	color, _ := dl.Li(context.Background(), ray, sc, samp)
	require.Equal(t, emission, color)
}
