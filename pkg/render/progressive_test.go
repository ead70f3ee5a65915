package render

import (
	"context"
	"math"
	"testing"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/integrator"
	"github.com/dwlcj/sortgo/pkg/sampler"
	"github.com/dwlcj/sortgo/pkg/scene"
	"github.com/stretchr/testify/require"
)

func TestProgressiveRendererFillsEveryPixel(t *testing.T) {
	sc, err := scene.NewCornellScene(scene.SamplingConfig{Width: 16, Height: 16, SamplesPerPixel: 2, MaxDepth: 4})
	require.NoError(t, err)

	r := NewProgressiveRenderer(sc, integrator.NewDirectLighting(), 2, 8)
	stats, err := r.Render(context.Background())
	require.NoError(t, err)

	require.Equal(t, 16*16, stats.TotalPixels)
	require.Equal(t, 16*16*2, stats.TotalSamples)

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			require.Equal(t, 2, r.Film.SampleCount(x, y))
			color := r.Film.At(x, y)
			require.GreaterOrEqual(t, color.X, 0.0)
		}
	}
}

func TestProgressiveRendererDiscardsNonFiniteSamples(t *testing.T) {
	sc, err := scene.NewCornellScene(scene.SamplingConfig{Width: 4, Height: 4, SamplesPerPixel: 1, MaxDepth: 2})
	require.NoError(t, err)

	r := NewProgressiveRenderer(sc, nanIntegrator{}, 1, 4)
	_, err = r.Render(context.Background())
	require.NoError(t, err)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			require.Equal(t, core.Spectrum{}, r.Film.At(x, y))
		}
	}
}

// nanIntegrator always returns a non-finite radiance, exercising the
// renderer's discard-on-NaN/Inf path (§7's "numerical conditions are
// discarded, never propagated as an error" handled inline).
type nanIntegrator struct{}

func (nanIntegrator) Li(ctx context.Context, ray core.Ray, sc *scene.Scene, samp sampler.Sampler) (core.Spectrum, []scene.Splat) {
	return core.NewVec3(math.NaN(), 0, 0), nil
}
