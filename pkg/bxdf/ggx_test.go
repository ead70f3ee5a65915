package bxdf

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dwlcj/sortgo/pkg/core"
)

func TestGGXDNormalizesOverHemisphere(t *testing.T) {
	// Integrate D(wh) * cos(theta_h) over the hemisphere via stratified
	// sampling in (cos(theta_h), phi), where dω = dcos(theta_h) dphi; the
	// result should approach 1 for a valid microfacet NDF.
	d := NewGGXDistribution(0.4, 0.4)
	const n = 200
	sum := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			u := (float64(i) + 0.5) / n
			v := (float64(j) + 0.5) / n
			theta := math.Acos(u)
			phi := 2 * math.Pi * v
			wh := core.NewVec3(math.Sin(theta)*math.Cos(phi), math.Sin(theta)*math.Sin(phi), math.Cos(theta))
			sum += d.D(wh) * math.Cos(theta)
		}
	}
	integral := sum * (1.0 / n) * (2 * math.Pi / n)
	require.InDelta(t, 1.0, integral, 0.05)
}

func TestBeckmannDNormalizesOverHemisphere(t *testing.T) {
	d := NewBeckmannDistribution(0.4, 0.4)
	const n = 200
	sum := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			u := (float64(i) + 0.5) / n
			v := (float64(j) + 0.5) / n
			theta := math.Acos(u)
			phi := 2 * math.Pi * v
			wh := core.NewVec3(math.Sin(theta)*math.Cos(phi), math.Sin(theta)*math.Sin(phi), math.Cos(theta))
			sum += d.D(wh) * math.Cos(theta)
		}
	}
	integral := sum * (1.0 / n) * (2 * math.Pi / n)
	require.InDelta(t, 1.0, integral, 0.05)
}

func TestSmithGBoundedByOne(t *testing.T) {
	rng := rand.New(rand.NewSource(41))
	d := NewGGXDistribution(0.3, 0.3)
	for i := 0; i < 200; i++ {
		wo := randomHemisphereDir(rng, true)
		wi := randomHemisphereDir(rng, true)
		g := smithG(wo, wi, d)
		require.GreaterOrEqual(t, g, 0.0)
		require.LessOrEqual(t, g, 1.0+1e-9)
	}
}

func TestMicrofacetReflectionMatchesMirrorAtZeroRoughness(t *testing.T) {
	// As roughness -> 0, SampleWh should draw a half vector very close
	// to the surface normal, making wi close to a mirror reflection.
	ggx := NewGGXDistribution(1e-4, 1e-4)
	m := NewMicrofacetReflection(core.Splat(1), ggx, ConstantFresnel{Value: core.Splat(1)})
	wo := core.NewVec3(0.1, 0.2, math.Sqrt(1-0.01-0.04))

	_, wi, _, ok := m.SampleF(wo, core.NewVec2(0.1, 0.5))
	require.True(t, ok)
	require.InDelta(t, -wo.X, wi.X, 0.05)
	require.InDelta(t, -wo.Y, wi.Y, 0.05)
	require.InDelta(t, wo.Z, wi.Z, 0.05)
}

func TestMicrofacetTransmissionZeroUnderTotalInternalReflection(t *testing.T) {
	ggx := NewGGXDistribution(0.2, 0.2)
	m := NewMicrofacetTransmission(core.Splat(1), ggx, 1.5, 1.0)

	// A grazing-angle wo entering from the dense medium side should hit
	// total internal reflection for at least some of the sampled half
	// vectors; SampleF must report ok=false rather than a negative or
	// NaN spectrum in that case.
	wo := core.NewVec3(0.99, 0, math.Sqrt(1-0.99*0.99))
	_, _, pdf, ok := m.SampleF(wo, core.NewVec2(0.9, 0.5))
	if !ok {
		require.Equal(t, 0.0, pdf)
	}
}

func TestFresnelDielectricAtNormalIncidenceMatchesSchlick(t *testing.T) {
	etaI, etaT := 1.0, 1.5
	r0 := math.Pow((etaT-etaI)/(etaT+etaI), 2)
	got := frDielectric(1, etaI, etaT)
	require.InDelta(t, r0, got, 1e-9)
}

func TestFresnelDielectricTotalInternalReflection(t *testing.T) {
	// Going from dense to rare medium at a steep angle should total-internally-reflect.
	got := frDielectric(0.05, 1.5, 1.0)
	require.Equal(t, 1.0, got)
}
