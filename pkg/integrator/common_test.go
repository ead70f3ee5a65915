package integrator

import (
	"context"
	"testing"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/sampler"
	"github.com/dwlcj/sortgo/pkg/scene"
	"github.com/stretchr/testify/require"
)

func TestMISHeuristicWeightMatchesSelectedFunction(t *testing.T) {
	lightPDF, bsdfPDF := 2.0, 5.0

	require.Equal(t, core.BalanceHeuristic(1, lightPDF, 1, bsdfPDF), Balance.weight(1, lightPDF, 1, bsdfPDF))
	require.Equal(t, core.PowerHeuristic(1, lightPDF, 1, bsdfPDF), Power.weight(1, lightPDF, 1, bsdfPDF))
}

func TestMISHeuristicDefaultsToBalance(t *testing.T) {
	var h MISHeuristic
	require.Equal(t, Balance, h)
}

// TestPathTracerHeuristicIsSelectable checks that PathTracer.Heuristic
// is a real per-instance config, not a hardcoded constant: both values
// are assignable and Li runs to completion under either.
func TestPathTracerHeuristicIsSelectable(t *testing.T) {
	closure := &scene.ClosureNode{Kind: scene.Lambert, Reflectance: core.NewVec3(0.9, 0.9, 0.9)}
	sc, err := scene.NewFurnaceScene(closure, core.NewVec3(0.5, 0.5, 0.5), scene.SamplingConfig{
		Width: 20, Height: 20, SamplesPerPixel: 4, MaxDepth: 4, RussianRouletteMinBounces: 4,
	})
	require.NoError(t, err)

	balance := &PathTracer{MaxDepth: 4, MinBounces: 4, Heuristic: Balance}
	power := &PathTracer{MaxDepth: 4, MinBounces: 4, Heuristic: Power}
	require.Equal(t, Balance, balance.Heuristic)
	require.Equal(t, Power, power.Heuristic)

	samp := sampler.NewHaltonSampler(9)
	samp.StartPixelSample([2]int{10, 10}, 0)
	ray := sc.Camera.GetRay(10, 10, core.NewVec2(0.5, 0.5), core.NewVec2(0.5, 0.5))

	_, splatsA := balance.Li(context.Background(), ray, sc, samp)
	_, splatsB := power.Li(context.Background(), ray, sc, samp)
	require.Nil(t, splatsA)
	require.Nil(t, splatsB)
}
