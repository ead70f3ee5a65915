package bxdf

import (
	"github.com/dwlcj/sortgo/pkg/core"
)

// Mirror is a perfect specular reflector. Like all delta distributions,
// F and PDF are zero everywhere; the entire contribution flows through
// SampleF at the single direction mirror reflection demands.
type Mirror struct {
	Reflectance core.Spectrum
}

func NewMirror(reflectance core.Spectrum) *Mirror { return &Mirror{Reflectance: reflectance} }

func (m *Mirror) Kind() Kind { return Reflection | Specular }

func (m *Mirror) F(wo, wi core.Vec3) core.Spectrum { return core.Spectrum{} }

func (m *Mirror) SampleF(wo core.Vec3, u core.Vec2) (core.Spectrum, core.Vec3, float64, bool) {
	wi := core.NewVec3(-wo.X, -wo.Y, wo.Z)
	if absCosTheta(wi) < 1e-9 {
		return core.Spectrum{}, core.Vec3{}, 0, false
	}
	f := m.Reflectance.Multiply(1 / absCosTheta(wi))
	return f, wi, 1, true
}

func (m *Mirror) PDF(wo, wi core.Vec3) float64 { return 0 }

// Dielectric is a perfectly specular interface that both reflects and
// refracts, weighted by the exact Fresnel equations and chosen
// stochastically in SampleF (the standard "russian roulette on
// reflect-vs-transmit" specular dielectric BxDF).
type Dielectric struct {
	Reflectance   core.Spectrum
	Transmittance core.Spectrum
	EtaA, EtaB    float64 // EtaA: outside IOR, EtaB: inside IOR
}

func NewDielectric(reflectance, transmittance core.Spectrum, etaA, etaB float64) *Dielectric {
	return &Dielectric{Reflectance: reflectance, Transmittance: transmittance, EtaA: etaA, EtaB: etaB}
}

func (d *Dielectric) Kind() Kind { return Reflection | Transmission | Specular }

func (d *Dielectric) F(wo, wi core.Vec3) core.Spectrum { return core.Spectrum{} }

func (d *Dielectric) PDF(wo, wi core.Vec3) float64 { return 0 }

func (d *Dielectric) SampleF(wo core.Vec3, u core.Vec2) (core.Spectrum, core.Vec3, float64, bool) {
	entering := cosTheta(wo) > 0
	etaI, etaT := d.EtaA, d.EtaB
	if !entering {
		etaI, etaT = d.EtaB, d.EtaA
	}

	fr := frDielectric(cosTheta(wo), etaI, etaT)

	if u.X < fr {
		wi := core.NewVec3(-wo.X, -wo.Y, wo.Z)
		pdf := fr
		f := d.Reflectance.Multiply(fr / absCosTheta(wi))
		return f, wi, pdf, true
	}

	n := core.NewVec3(0, 0, 1)
	if cosTheta(wo) < 0 {
		n = n.Multiply(-1)
	}
	wi, ok := refract(wo, n, etaI/etaT)
	if !ok {
		return core.Spectrum{}, core.Vec3{}, 0, false
	}

	ft := (1 - fr)
	pdf := 1 - fr
	scale := (etaI * etaI) / (etaT * etaT) // radiance scaling for transport mode (non-adjoint path tracing)
	f := d.Transmittance.Multiply(ft * scale / absCosTheta(wi))
	return f, wi, pdf, true
}
