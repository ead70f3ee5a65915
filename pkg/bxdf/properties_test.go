package bxdf

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dwlcj/sortgo/pkg/core"
)

// nonDelta lists the finite-PDF BxDFs exercised by the
// energy/consistency checks below (not every such BxDF: MERL and
// Fourier, for example, are not in it). Delta distributions (Mirror,
// Dielectric) have no well-defined F/PDF pair to check this way.
func nonDelta() map[string]BxDF {
	ggx := NewGGXDistribution(0.3, 0.3)
	beckmann := NewBeckmannDistribution(0.3, 0.3)
	return map[string]BxDF{
		"lambertian":     NewLambertian(core.NewVec3(0.5, 0.6, 0.7)),
		"lambertianTx":   NewLambertianTransmission(core.NewVec3(0.5, 0.6, 0.7)),
		"orenNayar":      NewOrenNayar(core.NewVec3(0.5, 0.5, 0.5), 0.4),
		"microfacetGGX":  NewMicrofacetReflection(core.NewVec3(0.8, 0.8, 0.8), ggx, ConstantFresnel{Value: core.Splat(1)}),
		"microfacetBeck": NewMicrofacetReflection(core.NewVec3(0.8, 0.8, 0.8), beckmann, ConstantFresnel{Value: core.Splat(1)}),
		"hair":           NewHair(core.NewVec3(0.2, 0.2, 0.2), 0.3, 0.3, 1.55),
		"fabric":         NewFabric(core.NewVec3(0.6, 0.3, 0.3), 0.5, core.NewVec3(0.1, 0.1, 0.1), 2),
		"disney":         NewDisney(core.NewVec3(0.6, 0.4, 0.3), 0.2, 0.4, 0.5, 0, 0.2, 0.5, 0.1, 0.3),
		"phong":          NewPhong(core.NewVec3(0.5, 0.4, 0.3), core.NewVec3(0.3, 0.3, 0.3), 20),
		"ashikhmin":      NewAshikhminShirley(core.NewVec3(0.5, 0.4, 0.3), core.NewVec3(0.2, 0.2, 0.2), 30),
	}
}

// reciprocal is the subset of nonDelta that satisfies Helmholtz
// reciprocity; Hair is intentionally excluded (its F is its sampling
// PDF's lobe shape times a wi/wo-independent absorption scalar, not a
// physically reciprocal BRDF).
func reciprocal() map[string]BxDF {
	all := nonDelta()
	delete(all, "hair")
	return all
}

func randomHemisphereDir(rng *rand.Rand, upper bool) core.Vec3 {
	u := core.NewVec2(rng.Float64(), rng.Float64())
	v := core.CosineSampleHemisphere(u)
	if !upper {
		v.Z = -v.Z
	}
	return v
}

// TestReciprocity checks Helmholtz reciprocity: f(wo, wi) == f(wi, wo).
func TestReciprocity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for name, bx := range reciprocal() {
		for i := 0; i < 50; i++ {
			wo := randomHemisphereDir(rng, true)
			wi := randomHemisphereDir(rng, rng.Float64() < 0.5)
			a := bx.F(wo, wi)
			b := bx.F(wi, wo)
			require.InDelta(t, a.X, b.X, 1e-6, "%s reciprocity X", name)
			require.InDelta(t, a.Y, b.Y, 1e-6, "%s reciprocity Y", name)
			require.InDelta(t, a.Z, b.Z, 1e-6, "%s reciprocity Z", name)
		}
	}
}

// TestEnergyConservation Monte-Carlo integrates each BxDF's hemispherical
// reflectance and checks it never exceeds 1 (within sampling noise).
func TestEnergyConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	const samples = 4000

	for name, bx := range nonDelta() {
		wo := core.NewVec3(0.2, 0.1, 0.97).Normalize()
		sum := core.Spectrum{}
		for i := 0; i < samples; i++ {
			u := core.NewVec2(rng.Float64(), rng.Float64())
			f, wi, pdf, ok := bx.SampleF(wo, u)
			if !ok || pdf <= 0 {
				continue
			}
			weight := absCosTheta(wi) / pdf
			sum = sum.Add(f.Multiply(weight))
		}
		avg := sum.Multiply(1 / float64(samples))
		require.Lessf(t, avg.X, 1.2, "%s energy X = %v exceeds budget", name, avg.X)
		require.Lessf(t, avg.Y, 1.2, "%s energy Y = %v exceeds budget", name, avg.Y)
		require.Lessf(t, avg.Z, 1.2, "%s energy Z = %v exceeds budget", name, avg.Z)
	}
}

// TestSampleConsistency checks that the (f, pdf) SampleF reports agrees
// with calling F/PDF directly on the same pair of directions.
func TestSampleConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	for name, bx := range nonDelta() {
		for i := 0; i < 50; i++ {
			wo := randomHemisphereDir(rng, true)
			u := core.NewVec2(rng.Float64(), rng.Float64())
			f, wi, pdf, ok := bx.SampleF(wo, u)
			if !ok {
				continue
			}
			wantF := bx.F(wo, wi)
			wantPDF := bx.PDF(wo, wi)
			require.InDelta(t, wantF.X, f.X, 1e-6, "%s f/SampleF mismatch", name)
			require.InDelta(t, wantPDF, pdf, 1e-6, "%s pdf/SampleF mismatch", name)
		}
	}
}

// TestNonNegative checks F never goes negative, a common symptom of a
// sign error in a microfacet or Oren-Nayar formula.
func TestNonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for name, bx := range nonDelta() {
		for i := 0; i < 100; i++ {
			wo := randomHemisphereDir(rng, true)
			wi := randomHemisphereDir(rng, rng.Float64() < 0.5)
			f := bx.F(wo, wi)
			require.GreaterOrEqual(t, f.X, -1e-9, "%s negative F.X", name)
			require.GreaterOrEqual(t, f.Y, -1e-9, "%s negative F.Y", name)
			require.GreaterOrEqual(t, f.Z, -1e-9, "%s negative F.Z", name)
		}
	}
}

func TestSpecularBxDFsHaveZeroFAndPDF(t *testing.T) {
	mirror := NewMirror(core.Splat(0.9))
	dielectric := NewDielectric(core.Splat(1), core.Splat(1), 1, 1.5)
	wo := core.NewVec3(0, 0, 1)
	wi := core.NewVec3(0.1, 0.1, 0.98).Normalize()

	for _, bx := range []BxDF{mirror, dielectric} {
		require.True(t, bx.F(wo, wi).X == 0 && bx.F(wo, wi).Y == 0 && bx.F(wo, wi).Z == 0)
		require.Equal(t, 0.0, bx.PDF(wo, wi))
	}
}

func TestMirrorReflectsAboutNormal(t *testing.T) {
	mirror := NewMirror(core.Splat(1))
	wo := core.NewVec3(0.3, 0.4, math.Sqrt(1-0.09-0.16))
	_, wi, pdf, ok := mirror.SampleF(wo, core.NewVec2(0, 0))
	require.True(t, ok)
	require.Equal(t, 1.0, pdf)
	require.InDelta(t, -wo.X, wi.X, 1e-9)
	require.InDelta(t, -wo.Y, wi.Y, 1e-9)
	require.InDelta(t, wo.Z, wi.Z, 1e-9)
}
