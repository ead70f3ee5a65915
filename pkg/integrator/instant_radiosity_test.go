package integrator

import (
	"context"
	"testing"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/sampler"
	"github.com/dwlcj/sortgo/pkg/scene"
	"github.com/stretchr/testify/require"
)

func TestInstantRadiosityGathersNonNegativeRadiance(t *testing.T) {
	sc, err := scene.NewCornellScene(scene.SamplingConfig{Width: 50, Height: 50, SamplesPerPixel: 1, MaxDepth: 8})
	require.NoError(t, err)

	ir := NewInstantRadiosity(32)
	samp := sampler.NewHaltonSampler(30)
	samp.StartPixelSample([2]int{25, 25}, 0)
	ray := sc.Camera.GetRay(25, 25, core.NewVec2(0.5, 0.5), core.NewVec2(0.5, 0.5))

	color, splats := ir.Li(context.Background(), ray, sc, samp)
	require.Nil(t, splats)
	require.GreaterOrEqual(t, color.X, 0.0)
	require.GreaterOrEqual(t, color.Y, 0.0)
	require.GreaterOrEqual(t, color.Z, 0.0)
}

func TestInstantRadiosityVPLSetIsBuiltOnceAndReused(t *testing.T) {
	sc, err := scene.NewCornellScene(scene.SamplingConfig{Width: 50, Height: 50, SamplesPerPixel: 1, MaxDepth: 8})
	require.NoError(t, err)

	ir := NewInstantRadiosity(16)
	samp := sampler.NewHaltonSampler(31)

	for i := 0; i < 5; i++ {
		samp.StartPixelSample([2]int{25, 25}, i)
		ray := sc.Camera.GetRay(25, 25, core.NewVec2(0.5, 0.5), core.NewVec2(0.5, 0.5))
		_, _ = ir.Li(context.Background(), ray, sc, samp)
	}

	require.NotEmpty(t, ir.vpls)
	require.LessOrEqual(t, len(ir.vpls), 16)
}
