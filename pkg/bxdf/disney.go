package bxdf

import (
	"math"

	"github.com/dwlcj/sortgo/pkg/core"
)

// Disney is the principled multi-lobe BRDF (diffuse + retroreflection +
// sheen + clearcoat + metallic specular), combined as a single BxDF
// with internal one-sample MIS across its component lobes rather than
// the legacy single-lobe approximation some renderers ship — every
// SampleF call picks one lobe proportional to its sampling weight, then
// reports the full multi-lobe f/pdf so the result stays an unbiased
// estimator of the composite BRDF.
type Disney struct {
	BaseColor       core.Spectrum
	Metallic        float64
	Roughness       float64
	Specular        float64
	SpecularTint    float64
	Sheen           float64
	SheenTint       float64
	Clearcoat       float64
	ClearcoatGloss  float64

	diffuseWeight, specWeight, clearcoatWeight float64
	distribution                               *GGXDistribution
	clearcoatDistribution                      *GGXDistribution
}

func NewDisney(baseColor core.Spectrum, metallic, roughness, specular, specularTint, sheen, sheenTint, clearcoat, clearcoatGloss float64) *Disney {
	d := &Disney{
		BaseColor: baseColor, Metallic: metallic, Roughness: roughness,
		Specular: specular, SpecularTint: specularTint,
		Sheen: sheen, SheenTint: sheenTint,
		Clearcoat: clearcoat, ClearcoatGloss: clearcoatGloss,
	}
	alpha := math.Max(1e-3, roughness*roughness)
	d.distribution = NewGGXDistribution(alpha, alpha)
	ccAlpha := 0.1*(1-clearcoatGloss) + 0.001*clearcoatGloss
	d.clearcoatDistribution = NewGGXDistribution(ccAlpha, ccAlpha)

	d.diffuseWeight = (1 - metallic)
	d.specWeight = 1
	d.clearcoatWeight = 0.25 * clearcoat
	return d
}

func (d *Disney) Kind() Kind { return Reflection | Diffuse | Glossy }

func (d *Disney) F(wo, wi core.Vec3) core.Spectrum {
	if !sameHemisphere(wo, wi) {
		return core.Spectrum{}
	}
	wh := wo.Add(wi)
	if wh.X == 0 && wh.Y == 0 && wh.Z == 0 {
		return core.Spectrum{}
	}
	wh = wh.Normalize()

	total := core.Spectrum{}
	if d.diffuseWeight > 0 {
		total = total.Add(d.diffuseLobe(wo, wi, wh).Multiply(d.diffuseWeight))
	}
	total = total.Add(d.specularLobe(wo, wi, wh))
	if d.Clearcoat > 0 {
		total = total.Add(core.Splat(d.clearcoatLobe(wo, wi, wh)))
	}
	return total
}

func (d *Disney) diffuseLobe(wo, wi, wh core.Vec3) core.Spectrum {
	fo, fi := schlickWeight(absCosTheta(wo)), schlickWeight(absCosTheta(wi))
	cosThetaD := wi.Dot(wh)
	rr := 2 * d.Roughness * cosThetaD * cosThetaD
	retro := rr * (fo + fi + fo*fi*(rr-1))
	lambert := (1 - 0.5*fo) * (1 - 0.5*fi)
	sheen := d.sheenLobe(wi, wh)
	return d.BaseColor.Multiply((lambert + retro) / math.Pi).Add(sheen)
}

func (d *Disney) sheenLobe(wi, wh core.Vec3) core.Spectrum {
	if d.Sheen <= 0 {
		return core.Spectrum{}
	}
	lum := luminance(d.BaseColor)
	tint := core.Splat(1)
	if lum > 0 {
		tint = d.BaseColor.Multiply(1 / lum)
	}
	sheenColor := core.Splat(1-d.SheenTint).Add(tint.Multiply(d.SheenTint))
	cosThetaD := wi.Dot(wh)
	return sheenColor.Multiply(d.Sheen * schlickWeight(cosThetaD))
}

func (d *Disney) specularLobe(wo, wi, wh core.Vec3) core.Spectrum {
	lum := luminance(d.BaseColor)
	tint := core.Splat(1)
	if lum > 0 {
		tint = d.BaseColor.Multiply(1 / lum)
	}
	specColor := core.Splat(1-d.SpecularTint).Add(tint.Multiply(d.SpecularTint))
	r0 := core.Splat(0.08 * d.Specular).MultiplyVec(specColor)
	r0 = r0.Multiply(1 - d.Metallic).Add(d.BaseColor.Multiply(d.Metallic))

	fr := SchlickFresnel{R0: r0}.Evaluate(wi.Dot(wh))
	dd := d.distribution.D(wh)
	g := smithG(wo, wi, d.distribution)
	denom := 4 * absCosTheta(wo) * absCosTheta(wi)
	if denom < 1e-9 {
		return core.Spectrum{}
	}
	return fr.Multiply(dd * g / denom)
}

func (d *Disney) clearcoatLobe(wo, wi, wh core.Vec3) float64 {
	dd := d.clearcoatDistribution.D(wh)
	fr := 0.04 + 0.96*schlickWeight(wi.Dot(wh))
	g := smithG(wo, wi, d.clearcoatDistribution)
	denom := 4 * absCosTheta(wo) * absCosTheta(wi)
	if denom < 1e-9 {
		return 0
	}
	return d.Clearcoat * dd * fr * g / denom
}

func (d *Disney) lobeWeights() (diffuse, spec, clearcoat float64) {
	diffuse = d.diffuseWeight
	spec = d.specWeight
	clearcoat = d.clearcoatWeight
	total := diffuse + spec + clearcoat
	if total <= 0 {
		return 1, 0, 0
	}
	return diffuse / total, spec / total, clearcoat / total
}

func (d *Disney) SampleF(wo core.Vec3, u core.Vec2) (core.Spectrum, core.Vec3, float64, bool) {
	pDiffuse, pSpec, pClearcoat := d.lobeWeights()

	var wi core.Vec3
	switch {
	case u.X < pDiffuse:
		u2 := core.Vec2{X: u.X / pDiffuse, Y: u.Y}
		wi = core.CosineSampleHemisphere(u2)
		if wo.Z < 0 {
			wi.Z = -wi.Z
		}
	case u.X < pDiffuse+pSpec:
		u2 := core.Vec2{X: (u.X - pDiffuse) / pSpec, Y: u.Y}
		wh := d.distribution.SampleWh(wo, u2)
		wi = reflectAbout(wo, wh)
	default:
		u2 := core.Vec2{X: (u.X - pDiffuse - pSpec) / math.Max(1e-9, pClearcoat), Y: u.Y}
		wh := d.clearcoatDistribution.SampleWh(wo, u2)
		wi = reflectAbout(wo, wh)
	}

	if !sameHemisphere(wo, wi) {
		return core.Spectrum{}, core.Vec3{}, 0, false
	}
	pdf := d.PDF(wo, wi)
	if pdf <= 0 {
		return core.Spectrum{}, core.Vec3{}, 0, false
	}
	return d.F(wo, wi), wi, pdf, true
}

func (d *Disney) PDF(wo, wi core.Vec3) float64 {
	if !sameHemisphere(wo, wi) {
		return 0
	}
	wh := wo.Add(wi)
	if wh.X == 0 && wh.Y == 0 && wh.Z == 0 {
		return 0
	}
	wh = wh.Normalize()

	pDiffuse, pSpec, pClearcoat := d.lobeWeights()
	diffusePDF := core.CosineHemispherePDF(absCosTheta(wi))
	specPDF := d.distribution.PDF(wo, wh) / (4 * math.Max(1e-9, wo.Dot(wh)))
	clearcoatPDF := d.clearcoatDistribution.PDF(wo, wh) / (4 * math.Max(1e-9, wo.Dot(wh)))

	return pDiffuse*diffusePDF + pSpec*specPDF + pClearcoat*clearcoatPDF
}

func schlickWeight(cosTheta float64) float64 {
	m := clampUnit(1 - math.Abs(cosTheta))
	m2 := m * m
	return m2 * m2 * m
}

func luminance(s core.Spectrum) float64 {
	return 0.2126*s.X + 0.7152*s.Y + 0.0722*s.Z
}
