package bxdf

import (
	"math"

	"github.com/dwlcj/sortgo/pkg/core"
)

// Phong is the classic diffuse+specular BRDF (Lafortune & Willems'
// energy-conserving normalization of Phong's original model), sampled by
// choosing between a cosine-weighted diffuse lobe and a specular lobe
// importance-sampled around the mirror reflection direction.
type Phong struct {
	Diffuse  core.Spectrum
	Specular core.Spectrum
	Exponent float64

	diffuseWeight float64
}

func NewPhong(diffuse, specular core.Spectrum, exponent float64) *Phong {
	d, s := luminance(diffuse), luminance(specular)
	weight := 0.5
	if d+s > 0 {
		weight = d / (d + s)
	}
	return &Phong{Diffuse: diffuse, Specular: specular, Exponent: math.Max(1, exponent), diffuseWeight: weight}
}

func (p *Phong) Kind() Kind { return Reflection | Diffuse | Glossy }

func (p *Phong) reflectWo(wo core.Vec3) core.Vec3 { return core.NewVec3(-wo.X, -wo.Y, wo.Z) }

func (p *Phong) F(wo, wi core.Vec3) core.Spectrum {
	if !sameHemisphere(wo, wi) {
		return core.Spectrum{}
	}
	diffuse := p.Diffuse.Multiply(1 / math.Pi)
	r := p.reflectWo(wo)
	cosAlpha := math.Max(0, r.Dot(wi))
	specular := p.Specular.Multiply((p.Exponent + 2) / (2 * math.Pi) * math.Pow(cosAlpha, p.Exponent))
	return diffuse.Add(specular)
}

func (p *Phong) PDF(wo, wi core.Vec3) float64 {
	if !sameHemisphere(wo, wi) {
		return 0
	}
	diffusePDF := core.CosineHemispherePDF(absCosTheta(wi))
	r := p.reflectWo(wo)
	cosAlpha := math.Max(0, r.Dot(wi))
	specularPDF := (p.Exponent + 1) / (2 * math.Pi) * math.Pow(cosAlpha, p.Exponent)
	return p.diffuseWeight*diffusePDF + (1-p.diffuseWeight)*specularPDF
}

func (p *Phong) SampleF(wo core.Vec3, u core.Vec2) (core.Spectrum, core.Vec3, float64, bool) {
	var wi core.Vec3
	if u.X < p.diffuseWeight {
		u2 := core.NewVec2(u.X/p.diffuseWeight, u.Y)
		wi = core.CosineSampleHemisphere(u2)
		if wo.Z < 0 {
			wi.Z = -wi.Z
		}
	} else {
		u2 := core.NewVec2((u.X-p.diffuseWeight)/(1-p.diffuseWeight), u.Y)
		cosAlpha := math.Pow(u2.X, 1/(p.Exponent+1))
		sinAlpha := math.Sqrt(math.Max(0, 1-cosAlpha*cosAlpha))
		phi := 2 * math.Pi * u2.Y
		local := core.NewVec3(sinAlpha*math.Cos(phi), sinAlpha*math.Sin(phi), cosAlpha)
		r := p.reflectWo(wo)
		t, b := core.CoordinateSystem(r)
		wi = core.LocalToWorld(local, t, b, r)
	}
	if !sameHemisphere(wo, wi) {
		return core.Spectrum{}, core.Vec3{}, 0, false
	}
	pdf := p.PDF(wo, wi)
	if pdf <= 0 {
		return core.Spectrum{}, core.Vec3{}, 0, false
	}
	return p.F(wo, wi), wi, pdf, true
}

// AshikhminShirley is the Ashikhmin-Shirley (2000) anisotropic Phong-
// lobe BRDF, restricted to its isotropic case: a Fresnel-weighted
// specular lobe over a Phong-exponent distribution plus a Schlick-style
// "velvety" diffuse term that vanishes at grazing angles on both sides.
type AshikhminShirley struct {
	Diffuse  core.Spectrum
	Specular core.Spectrum
	Exponent float64

	specularWeight float64
}

func NewAshikhminShirley(diffuse, specular core.Spectrum, exponent float64) *AshikhminShirley {
	d, s := luminance(diffuse), luminance(specular)
	weight := 0.5
	if d+s > 0 {
		weight = s / (d + s)
	}
	return &AshikhminShirley{Diffuse: diffuse, Specular: specular, Exponent: math.Max(1, exponent), specularWeight: weight}
}

func (a *AshikhminShirley) Kind() Kind { return Reflection | Diffuse | Glossy }

func (a *AshikhminShirley) diffuseTerm(wo, wi core.Vec3) core.Spectrum {
	fresnelWo := schlickWeight(absCosTheta(wo))
	fresnelWi := schlickWeight(absCosTheta(wi))
	scale := 28.0 / (23.0 * math.Pi) * (1 - fresnelWo) * (1 - fresnelWi)
	return a.Diffuse.Multiply(scale)
}

func (a *AshikhminShirley) specularTerm(wo, wi core.Vec3) core.Spectrum {
	wh := wo.Add(wi)
	if wh.LengthSquared() < 1e-12 {
		return core.Spectrum{}
	}
	wh = wh.Normalize()
	cosThetaH := absCosTheta(wh)
	woDotH := wo.Dot(wh)
	if woDotH <= 0 {
		return core.Spectrum{}
	}
	denom := woDotH * math.Max(absCosTheta(wo), absCosTheta(wi))
	if denom <= 0 {
		return core.Spectrum{}
	}
	norm := math.Sqrt((a.Exponent + 1) * (a.Exponent + 1)) / (8 * math.Pi)
	d := norm * math.Pow(cosThetaH, a.Exponent) / denom
	fresnel := a.Specular.Add(core.Splat(1).Subtract(a.Specular).Multiply(schlickWeight(woDotH)))
	return fresnel.Multiply(d)
}

func (a *AshikhminShirley) F(wo, wi core.Vec3) core.Spectrum {
	if !sameHemisphere(wo, wi) {
		return core.Spectrum{}
	}
	return a.diffuseTerm(wo, wi).Add(a.specularTerm(wo, wi))
}

func (a *AshikhminShirley) PDF(wo, wi core.Vec3) float64 {
	if !sameHemisphere(wo, wi) {
		return 0
	}
	diffusePDF := core.CosineHemispherePDF(absCosTheta(wi))
	wh := wo.Add(wi)
	specularPDF := diffusePDF
	if wh.LengthSquared() > 1e-12 {
		wh = wh.Normalize()
		cosThetaH := absCosTheta(wh)
		woDotH := wo.Dot(wh)
		if woDotH > 1e-9 {
			specularPDF = (a.Exponent + 1) / (2 * math.Pi) * math.Pow(cosThetaH, a.Exponent) / (4 * woDotH)
		}
	}
	return (1-a.specularWeight)*diffusePDF + a.specularWeight*specularPDF
}

func (a *AshikhminShirley) SampleF(wo core.Vec3, u core.Vec2) (core.Spectrum, core.Vec3, float64, bool) {
	var wi core.Vec3
	if u.X < a.specularWeight {
		u2 := core.NewVec2(u.X/a.specularWeight, u.Y)
		cosThetaH := math.Pow(u2.X, 1/(a.Exponent+1))
		sinThetaH := math.Sqrt(math.Max(0, 1-cosThetaH*cosThetaH))
		phi := 2 * math.Pi * u2.Y
		wh := core.NewVec3(sinThetaH*math.Cos(phi), sinThetaH*math.Sin(phi), cosThetaH)
		if wo.Z < 0 {
			wh.Z = -wh.Z
		}
		wi = wh.Multiply(2 * wo.Dot(wh)).Subtract(wo)
	} else {
		u2 := core.NewVec2((u.X-a.specularWeight)/(1-a.specularWeight), u.Y)
		wi = core.CosineSampleHemisphere(u2)
		if wo.Z < 0 {
			wi.Z = -wi.Z
		}
	}
	if !sameHemisphere(wo, wi) {
		return core.Spectrum{}, core.Vec3{}, 0, false
	}
	pdf := a.PDF(wo, wi)
	if pdf <= 0 {
		return core.Spectrum{}, core.Vec3{}, 0, false
	}
	return a.F(wo, wi), wi, pdf, true
}
