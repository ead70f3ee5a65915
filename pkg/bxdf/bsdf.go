package bxdf

import (
	"github.com/dwlcj/sortgo/pkg/core"
)

// MaxLobes bounds how many BxDF lobes a single BSDF can composite, per
// the fixed-capacity shading-closure contract: no allocation happens
// per intersection, every BSDF reuses a [MaxLobes]BxDF array.
const MaxLobes = 8

// BSDF composites up to MaxLobes BxDFs under one shading frame,
// transforming world-space directions into the local space each BxDF
// expects (+Z along the shading normal) before delegating.
type BSDF struct {
	lobes     [MaxLobes]BxDF
	numLobes  int
	tangent   core.Vec3
	bitangent core.Vec3
	normal    core.Vec3
}

// NewBSDF builds a shading frame from the geometric shading normal and
// tangent, ready to accept lobes via AddLobe.
func NewBSDF(normal, tangent core.Vec3) *BSDF {
	t := tangent.Subtract(normal.Multiply(normal.Dot(tangent))).Normalize()
	b := normal.Cross(t)
	return &BSDF{normal: normal, tangent: t, bitangent: b}
}

// AddLobe appends a BxDF to the composite, ignoring the call once
// MaxLobes is reached (a material definition that overflows this is a
// scene-authoring bug that should be caught well before shading).
func (b *BSDF) AddLobe(bx BxDF) {
	if b.numLobes >= MaxLobes {
		return
	}
	b.lobes[b.numLobes] = bx
	b.numLobes++
}

func (b *BSDF) NumLobes() int { return b.numLobes }

func (b *BSDF) worldToLocal(v core.Vec3) core.Vec3 {
	return core.NewVec3(v.Dot(b.tangent), v.Dot(b.bitangent), v.Dot(b.normal))
}

func (b *BSDF) localToWorld(v core.Vec3) core.Vec3 {
	return b.tangent.Multiply(v.X).Add(b.bitangent.Multiply(v.Y)).Add(b.normal.Multiply(v.Z))
}

// F evaluates the sum of every matching lobe (filtered by kind) for a
// pair of world-space directions.
func (b *BSDF) F(woWorld, wiWorld core.Vec3, kind Kind) core.Spectrum {
	wo, wi := b.worldToLocal(woWorld), b.worldToLocal(wiWorld)
	if wo.Z == 0 {
		return core.Spectrum{}
	}
	total := core.Spectrum{}
	for i := 0; i < b.numLobes; i++ {
		if b.lobes[i].Kind()&kind != 0 {
			total = total.Add(b.lobes[i].F(wo, wi))
		}
	}
	return total
}

// PDF averages the solid-angle density over every matching lobe (delta
// lobes count toward the average but contribute a density of 0),
// matching the uniform choice SampleF uses to pick one.
func (b *BSDF) PDF(woWorld, wiWorld core.Vec3, kind Kind) float64 {
	wo, wi := b.worldToLocal(woWorld), b.worldToLocal(wiWorld)
	if wo.Z == 0 {
		return 0
	}
	var sum float64
	var n int
	for i := 0; i < b.numLobes; i++ {
		if b.lobes[i].Kind()&kind == 0 {
			continue
		}
		sum += b.lobes[i].PDF(wo, wi)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// SampleF picks one matching lobe uniformly at random (the final
// component of u1 selects the lobe, the remaining 2D sample drives that
// lobe's own SampleF), then reports the aggregate f and pdf across
// every matching lobe so the result stays an unbiased estimator of the
// full composite BSDF rather than just the chosen lobe.
func (b *BSDF) SampleF(woWorld core.Vec3, u1 float64, u2 core.Vec2, kind Kind) (f core.Spectrum, wiWorld core.Vec3, pdf float64, sampledKind Kind, ok bool) {
	wo := b.worldToLocal(woWorld)
	if wo.Z == 0 {
		return core.Spectrum{}, core.Vec3{}, 0, 0, false
	}

	var matches []int
	for i := 0; i < b.numLobes; i++ {
		if b.lobes[i].Kind()&kind != 0 {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		return core.Spectrum{}, core.Vec3{}, 0, 0, false
	}

	chosen := matches[int(u1*float64(len(matches)))%len(matches)]
	lobe := b.lobes[chosen]

	lf, wi, lpdf, lok := lobe.SampleF(wo, u2)
	if !lok || lpdf <= 0 {
		return core.Spectrum{}, core.Vec3{}, 0, 0, false
	}
	sampledKind = lobe.Kind()

	if lobe.Kind()&Specular != 0 {
		return lf, b.localToWorld(wi), lpdf / float64(len(matches)), sampledKind, true
	}

	totalF := core.Spectrum{}
	totalPDF := 0.0
	for _, i := range matches {
		totalF = totalF.Add(b.lobes[i].F(wo, wi))
		totalPDF += b.lobes[i].PDF(wo, wi)
	}
	totalPDF /= float64(len(matches))
	if totalPDF <= 0 {
		return core.Spectrum{}, core.Vec3{}, 0, 0, false
	}
	return totalF, b.localToWorld(wi), totalPDF, sampledKind, true
}
