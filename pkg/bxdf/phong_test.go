package bxdf

import (
	"math"
	"testing"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/stretchr/testify/require"
)

func TestPhongPeaksAtMirrorDirection(t *testing.T) {
	p := NewPhong(core.Splat(0.1), core.Splat(0.9), 100)
	wo := core.NewVec3(0, 0, 1)
	mirror := core.NewVec3(0, 0, 1)
	offAxis := core.NewVec3(0.3, 0, math.Sqrt(1-0.09)).Normalize()

	require.Greater(t, p.F(wo, mirror).X, p.F(wo, offAxis).X)
}

func TestAshikhminShirleyDiffuseVanishesAtGrazingAngle(t *testing.T) {
	a := NewAshikhminShirley(core.Splat(0.8), core.Splat(0.04), 10)
	grazing := core.NewVec3(0.995, 0, math.Sqrt(1-0.995*0.995))
	normal := core.NewVec3(0, 0, 1)
	d := a.diffuseTerm(grazing, normal)
	straight := a.diffuseTerm(normal, normal)
	require.Less(t, d.X, straight.X)
}
