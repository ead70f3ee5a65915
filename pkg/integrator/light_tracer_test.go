package integrator

import (
	"context"
	"testing"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/sampler"
	"github.com/dwlcj/sortgo/pkg/scene"
	"github.com/stretchr/testify/require"
)

func TestLightTracerProducesSplatsWithValidPixels(t *testing.T) {
	sc, err := scene.NewCornellScene(scene.SamplingConfig{Width: 50, Height: 50, SamplesPerPixel: 1, MaxDepth: 12})
	require.NoError(t, err)

	lt := NewLightTracer(12, 0)
	samp := sampler.NewHaltonSampler(20)

	var total int
	for i := 0; i < 64; i++ {
		samp.StartPixelSample([2]int{25, 25}, i)
		ray := sc.Camera.GetRay(25, 25, core.NewVec2(0.5, 0.5), core.NewVec2(0.5, 0.5))
		_, splats := lt.Li(context.Background(), ray, sc, samp)
		for _, s := range splats {
			require.GreaterOrEqual(t, s.Pixel[0], 0)
			require.Less(t, s.Pixel[0], 50)
			require.GreaterOrEqual(t, s.Pixel[1], 0)
			require.Less(t, s.Pixel[1], 50)
			require.GreaterOrEqual(t, s.Value.X, 0.0)
			total++
		}
	}
	require.Greater(t, total, 0)
}

func TestLightTracerDirectRayHitsLightSurfaceEmission(t *testing.T) {
	sc, err := scene.NewCornellScene(scene.SamplingConfig{Width: 50, Height: 50, SamplesPerPixel: 1, MaxDepth: 4})
	require.NoError(t, err)

	lt := NewLightTracer(4, 0)
	samp := sampler.NewHaltonSampler(21)
	samp.StartPixelSample([2]int{25, 25}, 0)

	ray := core.NewRay(core.NewVec3(278, 278, -800), core.NewVec3(0, 0.47, 1).Normalize())
	color, _ := lt.Li(context.Background(), ray, sc, samp)
	require.GreaterOrEqual(t, color.X, 0.0)
}
