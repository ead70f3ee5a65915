package bxdf

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dwlcj/sortgo/pkg/core"
)

func TestHairAbsorptionReducesFBelowPDF(t *testing.T) {
	h := NewHair(core.NewVec3(0.3, 0.4, 0.5), 0.25, 0.3, 1.55)
	rng := rand.New(rand.NewSource(101))
	for i := 0; i < 50; i++ {
		wo := randomHemisphereDir(rng, true)
		wi := randomHemisphereDir(rng, true)
		f := h.F(wo, wi)
		pdf := h.PDF(wo, wi)
		if pdf <= 0 {
			continue
		}
		// each channel is attenuated by exp(-sigmaA), strictly below 1
		// for a strand with nonzero absorption.
		require.Less(t, f.X, pdf)
		require.Less(t, f.Y, pdf)
		require.Less(t, f.Z, pdf)
		require.InDelta(t, math.Exp(-0.3), f.X/pdf, 1e-9)
		require.InDelta(t, math.Exp(-0.4), f.Y/pdf, 1e-9)
		require.InDelta(t, math.Exp(-0.5), f.Z/pdf, 1e-9)
	}
}

func TestHairSampleFMatchesAbsorbedF(t *testing.T) {
	h := NewHair(core.NewVec3(0.1, 0.2, 0.3), 0.4, 0.3, 1.55)
	wo := core.NewVec3(0, 0, 1)
	f, wi, pdf, ok := h.SampleF(wo, core.NewVec2(0.3, 0.7))
	require.True(t, ok)
	require.InDelta(t, h.PDF(wo, wi), pdf, 1e-12)
	require.InDelta(t, math.Exp(-0.1)*pdf, f.X, 1e-9)
}

func TestHairOppositeHemisphereIsZero(t *testing.T) {
	h := NewHair(core.Splat(0.3), 0.3, 0.3, 1.55)
	wo := core.NewVec3(0, 0, 1)
	wi := core.NewVec3(0, 0, -1)
	f := h.F(wo, wi)
	require.Equal(t, 0.0, f.X)
	require.Equal(t, 0.0, h.PDF(wo, wi))
}

func TestHairWhiteFurnaceConserves(t *testing.T) {
	// a non-absorbing (SigmaA == 0) strand must produce an importance
	// weight of exactly 1 for every valid sample: the furnace-test
	// property this construction guarantees only in the white case.
	h := NewHair(core.Splat(0), 0.3, 0.3, 1.55)
	rng := rand.New(rand.NewSource(103))
	wo := core.NewVec3(0.1, 0.2, 0.97).Normalize()
	for i := 0; i < 200; i++ {
		u := core.NewVec2(rng.Float64(), rng.Float64())
		f, _, pdf, ok := h.SampleF(wo, u)
		if !ok {
			continue
		}
		require.InDelta(t, 1.0, f.X/pdf, 1e-9)
	}
}

func TestHairBetaMWidensLongitudinalLobe(t *testing.T) {
	// narrower beta_m concentrates the longitudinal lobe right at its
	// peak, so away from the peak its density falls off faster than a
	// wide lobe's (both share the same peak value of 1 by construction).
	narrow := NewHair(core.Splat(0), 0.05, 0.3, 1.55)
	wide := NewHair(core.Splat(0), 0.8, 0.3, 1.55)
	wo := core.NewVec3(0, 0, 1)
	wi := core.NewVec3(0.3, 0, 0.9539).Normalize() // off-peak elevation

	require.Less(t, narrow.PDF(wo, wi), wide.PDF(wo, wi))
}

func TestHairBetaNWidensAzimuthalLobe(t *testing.T) {
	narrow := NewHair(core.Splat(0), 0.3, 0.05, 1.55)
	wide := NewHair(core.Splat(0), 0.3, 0.9, 1.55)
	wo := core.NewVec3(0.6, 0, 0.8).Normalize()
	wi := core.NewVec3(0.6, 0.3, 0.74).Normalize() // off-plane azimuth shift

	require.Less(t, narrow.PDF(wo, wi), wide.PDF(wo, wi))
}
