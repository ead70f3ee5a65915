package bxdf

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dwlcj/sortgo/pkg/core"
)

func TestDisneyFullyMetallicHasNoDiffuseWeight(t *testing.T) {
	d := NewDisney(core.NewVec3(0.8, 0.6, 0.4), 1.0, 0.3, 0.5, 0, 0, 0, 0, 0)
	pDiffuse, _, _ := d.lobeWeights()
	require.Equal(t, 0.0, pDiffuse)
}

func TestDisneyFullyDielectricHasDiffuseWeight(t *testing.T) {
	d := NewDisney(core.NewVec3(0.8, 0.6, 0.4), 0.0, 0.5, 0.5, 0, 0, 0, 0, 0)
	pDiffuse, _, _ := d.lobeWeights()
	require.Greater(t, pDiffuse, 0.0)
}

func TestDisneySampleFProducesUpperHemisphereForUpperWo(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	d := NewDisney(core.NewVec3(0.7, 0.5, 0.3), 0.3, 0.4, 0.5, 0.2, 0.3, 0.5, 0.2, 0.4)
	wo := core.NewVec3(0.1, 0.1, 0.98).Normalize()

	for i := 0; i < 200; i++ {
		u1 := core.NewVec2(rng.Float64(), rng.Float64())
		_, wi, pdf, ok := d.SampleF(wo, u1)
		if !ok {
			continue
		}
		require.Greater(t, wi.Z, 0.0)
		require.Greater(t, pdf, 0.0)
	}
}

func TestDisneyClearcoatAddsEnergyNearNormalIncidence(t *testing.T) {
	base := NewDisney(core.NewVec3(0.5, 0.5, 0.5), 0, 0.5, 0.5, 0, 0, 0, 0, 0)
	coated := NewDisney(core.NewVec3(0.5, 0.5, 0.5), 0, 0.5, 0.5, 0, 0, 0, 1.0, 0.3)

	wo := core.NewVec3(0.05, 0, 0.998749).Normalize()
	wi := core.NewVec3(-0.05, 0, 0.998749).Normalize()

	require.Greater(t, luminance(coated.F(wo, wi)), luminance(base.F(wo, wi)))
}
