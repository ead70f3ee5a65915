package bxdf

import (
	"math"

	"github.com/dwlcj/sortgo/pkg/core"
)

// Coat layers a thin dielectric specular coat (e.g. lacquer, varnish)
// over a base BxDF, attenuating the base layer's contribution by the
// fraction of light the coat doesn't reflect at each angle.
type Coat struct {
	Base    BxDF
	Fresnel DielectricFresnel
	Weight  float64
}

func NewCoat(base BxDF, etaCoat float64, weight float64) *Coat {
	return &Coat{Base: base, Fresnel: DielectricFresnel{EtaI: 1, EtaT: etaCoat}, Weight: weight}
}

func (c *Coat) Kind() Kind { return c.Base.Kind() | Reflection | Specular }

func (c *Coat) F(wo, wi core.Vec3) core.Spectrum {
	attenO := c.Fresnel.Evaluate(absCosTheta(wo))
	attenI := c.Fresnel.Evaluate(absCosTheta(wi))
	one := core.Splat(1)
	transO := one.Subtract(attenO)
	transI := one.Subtract(attenI)
	return c.Base.F(wo, wi).MultiplyVec(transO).MultiplyVec(transI)
}

func (c *Coat) PDF(wo, wi core.Vec3) float64 { return (1 - c.Weight) * c.Base.PDF(wo, wi) }

func (c *Coat) SampleF(wo core.Vec3, u core.Vec2) (core.Spectrum, core.Vec3, float64, bool) {
	fr := frDielectric(cosTheta(wo), 1, c.Fresnel.EtaT)
	if u.X < c.Weight*fr {
		wi := core.NewVec3(-wo.X, -wo.Y, wo.Z)
		if absCosTheta(wi) < 1e-9 {
			return core.Spectrum{}, core.Vec3{}, 0, false
		}
		f := core.Splat(fr / absCosTheta(wi))
		return f, wi, c.Weight * fr, true
	}

	remap := core.Vec2{X: (u.X - c.Weight*fr) / math.Max(1e-9, 1-c.Weight*fr), Y: u.Y}
	f, wi, pdf, ok := c.Base.SampleF(wo, remap)
	if !ok {
		return core.Spectrum{}, core.Vec3{}, 0, false
	}
	attenO := c.Fresnel.Evaluate(absCosTheta(wo))
	attenI := c.Fresnel.Evaluate(absCosTheta(wi))
	one := core.Splat(1)
	f = f.MultiplyVec(one.Subtract(attenO)).MultiplyVec(one.Subtract(attenI))
	return f, wi, pdf * (1 - c.Weight), true
}

// DoubleSided mirrors wo/wi into the canonical (+Z) hemisphere before
// deferring to the wrapped BxDF, so a lobe authored assuming a
// front-facing normal also shades correctly on back-facing geometry
// (e.g. thin leaves, cloth, paper).
type DoubleSided struct {
	Base BxDF
}

func NewDoubleSided(base BxDF) *DoubleSided { return &DoubleSided{Base: base} }

func (d *DoubleSided) Kind() Kind { return d.Base.Kind() }

func flipToFront(w core.Vec3) core.Vec3 {
	if w.Z < 0 {
		return core.NewVec3(w.X, w.Y, -w.Z)
	}
	return w
}

func (d *DoubleSided) F(wo, wi core.Vec3) core.Spectrum {
	return d.Base.F(flipToFront(wo), flipToFront(wi))
}

func (d *DoubleSided) PDF(wo, wi core.Vec3) float64 {
	return d.Base.PDF(flipToFront(wo), flipToFront(wi))
}

func (d *DoubleSided) SampleF(wo core.Vec3, u core.Vec2) (core.Spectrum, core.Vec3, float64, bool) {
	flipped := wo.Z < 0
	f, wi, pdf, ok := d.Base.SampleF(flipToFront(wo), u)
	if !ok {
		return f, wi, pdf, ok
	}
	if flipped {
		wi = core.NewVec3(wi.X, wi.Y, -wi.Z)
	}
	return f, wi, pdf, ok
}

// Fabric is a velvet/satin-style BRDF combining an Oren-Nayar diffuse
// base with a grazing-angle sheen lobe, the same decomposition Disney's
// sheen term uses but exposed standalone for cloth-only materials.
type Fabric struct {
	Diffuse *OrenNayar
	Sheen   core.Spectrum
	Gloss   float64
}

func NewFabric(albedo core.Spectrum, roughness float64, sheen core.Spectrum, gloss float64) *Fabric {
	return &Fabric{Diffuse: NewOrenNayar(albedo, roughness), Sheen: sheen, Gloss: math.Max(1, gloss)}
}

func (f *Fabric) Kind() Kind { return Reflection | Diffuse | Glossy }

func (f *Fabric) F(wo, wi core.Vec3) core.Spectrum {
	if !sameHemisphere(wo, wi) {
		return core.Spectrum{}
	}
	wh := wo.Add(wi)
	if wh.X == 0 && wh.Y == 0 && wh.Z == 0 {
		return f.Diffuse.F(wo, wi)
	}
	wh = wh.Normalize()
	sheenTerm := f.Sheen.Multiply(math.Pow(1-absCosTheta(wh), f.Gloss))
	return f.Diffuse.F(wo, wi).Add(sheenTerm)
}

func (f *Fabric) SampleF(wo core.Vec3, u core.Vec2) (core.Spectrum, core.Vec3, float64, bool) {
	wi := core.CosineSampleHemisphere(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	return f.F(wo, wi), wi, f.PDF(wo, wi), true
}

func (f *Fabric) PDF(wo, wi core.Vec3) float64 { return f.Diffuse.PDF(wo, wi) }
