package bxdf

import (
	"math"

	"github.com/dwlcj/sortgo/pkg/core"
)

// MicrofacetReflection is a glossy BRDF built from a microfacet
// distribution and a Fresnel term (Cook-Torrance model).
type MicrofacetReflection struct {
	Reflectance  core.Spectrum
	Distribution Distribution
	Fresnel      Fresnel
}

func NewMicrofacetReflection(reflectance core.Spectrum, d Distribution, fr Fresnel) *MicrofacetReflection {
	return &MicrofacetReflection{Reflectance: reflectance, Distribution: d, Fresnel: fr}
}

func (m *MicrofacetReflection) Kind() Kind { return Reflection | Glossy }

func (m *MicrofacetReflection) F(wo, wi core.Vec3) core.Spectrum {
	if !sameHemisphere(wo, wi) {
		return core.Spectrum{}
	}
	cosThetaO, cosThetaI := absCosTheta(wo), absCosTheta(wi)
	if cosThetaO < 1e-9 || cosThetaI < 1e-9 {
		return core.Spectrum{}
	}
	wh := wi.Add(wo)
	if wh.X == 0 && wh.Y == 0 && wh.Z == 0 {
		return core.Spectrum{}
	}
	wh = wh.Normalize()

	d := m.Distribution.D(wh)
	g := smithG(wo, wi, m.Distribution)
	fr := m.Fresnel.Evaluate(wi.Dot(wh))

	return m.Reflectance.MultiplyVec(fr).Multiply(d * g / (4 * cosThetaI * cosThetaO))
}

func (m *MicrofacetReflection) SampleF(wo core.Vec3, u core.Vec2) (core.Spectrum, core.Vec3, float64, bool) {
	if wo.Z == 0 {
		return core.Spectrum{}, core.Vec3{}, 0, false
	}
	wh := m.Distribution.SampleWh(wo, u)
	wi := reflectAbout(wo, wh)
	if !sameHemisphere(wo, wi) {
		return core.Spectrum{}, core.Vec3{}, 0, false
	}
	pdf := m.Distribution.PDF(wo, wh) / (4 * wo.Dot(wh))
	return m.F(wo, wi), wi, pdf, true
}

func (m *MicrofacetReflection) PDF(wo, wi core.Vec3) float64 {
	if !sameHemisphere(wo, wi) {
		return 0
	}
	wh := wi.Add(wo)
	if wh.X == 0 && wh.Y == 0 && wh.Z == 0 {
		return 0
	}
	wh = wh.Normalize()
	if wo.Dot(wh) == 0 {
		return 0
	}
	return m.Distribution.PDF(wo, wh) / (4 * wo.Dot(wh))
}

func reflectAbout(wo, n core.Vec3) core.Vec3 {
	return n.Multiply(2 * wo.Dot(n)).Subtract(wo)
}

// MicrofacetTransmission is a rough dielectric BTDF. It returns the zero
// spectrum/pdf under total internal reflection, per the furnace-test
// requirement that energy neither leaks nor vanishes asymmetrically.
type MicrofacetTransmission struct {
	Transmittance core.Spectrum
	Distribution  Distribution
	EtaA, EtaB    float64 // EtaA: medium on the wo side; EtaB: medium on the wi side
	Fresnel       DielectricFresnel
}

func NewMicrofacetTransmission(t core.Spectrum, d Distribution, etaA, etaB float64) *MicrofacetTransmission {
	return &MicrofacetTransmission{
		Transmittance: t,
		Distribution:  d,
		EtaA:          etaA,
		EtaB:          etaB,
		Fresnel:       DielectricFresnel{EtaI: etaA, EtaT: etaB},
	}
}

func (m *MicrofacetTransmission) Kind() Kind { return Transmission | Glossy }

func (m *MicrofacetTransmission) F(wo, wi core.Vec3) core.Spectrum {
	if sameHemisphere(wo, wi) {
		return core.Spectrum{}
	}
	cosThetaO, cosThetaI := cosTheta(wo), cosTheta(wi)
	if cosThetaO == 0 || cosThetaI == 0 {
		return core.Spectrum{}
	}

	eta := m.EtaB / m.EtaA
	if cosThetaO < 0 {
		eta = m.EtaA / m.EtaB
	}

	wh := wo.Add(wi.Multiply(eta)).Normalize()
	if wh.Z < 0 {
		wh = wh.Multiply(-1)
	}
	if wo.Dot(wh)*wi.Dot(wh) > 0 {
		return core.Spectrum{}
	}

	fr := m.Fresnel.Evaluate(wo.Dot(wh))
	d := m.Distribution.D(wh)
	g := smithG(wo, wi, m.Distribution)

	sqrtDenom := wo.Dot(wh) + eta*wi.Dot(wh)
	if math.Abs(sqrtDenom) < 1e-9 {
		return core.Spectrum{}
	}
	factor := 1 / eta

	num := d * g * eta * eta * math.Abs(wi.Dot(wh)) * math.Abs(wo.Dot(wh))
	denom := cosThetaI * cosThetaO * sqrtDenom * sqrtDenom

	one := core.Splat(1).Subtract(fr)
	return m.Transmittance.MultiplyVec(one).Multiply(math.Abs(num / denom * factor * factor))
}

func (m *MicrofacetTransmission) SampleF(wo core.Vec3, u core.Vec2) (core.Spectrum, core.Vec3, float64, bool) {
	if wo.Z == 0 {
		return core.Spectrum{}, core.Vec3{}, 0, false
	}
	wh := m.Distribution.SampleWh(wo, u)
	if wo.Dot(wh) < 0 {
		return core.Spectrum{}, core.Vec3{}, 0, false
	}

	eta := m.EtaA / m.EtaB
	if cosTheta(wo) < 0 {
		eta = m.EtaB / m.EtaA
	}

	wi, ok := refract(wo, wh, eta)
	if !ok {
		return core.Spectrum{}, core.Vec3{}, 0, false // total internal reflection
	}
	return m.F(wo, wi), wi, m.PDF(wo, wi), true
}

func (m *MicrofacetTransmission) PDF(wo, wi core.Vec3) float64 {
	if sameHemisphere(wo, wi) {
		return 0
	}
	eta := m.EtaB / m.EtaA
	if cosTheta(wo) < 0 {
		eta = m.EtaA / m.EtaB
	}
	wh := wo.Add(wi.Multiply(eta)).Normalize()
	if wh.Z < 0 {
		wh = wh.Multiply(-1)
	}
	if wo.Dot(wh)*wi.Dot(wh) > 0 {
		return 0
	}
	sqrtDenom := wo.Dot(wh) + eta*wi.Dot(wh)
	if math.Abs(sqrtDenom) < 1e-9 {
		return 0
	}
	dwhDwi := math.Abs((eta * eta * wi.Dot(wh)) / (sqrtDenom * sqrtDenom))
	return m.Distribution.PDF(wo, wh) * dwhDwi
}

// refract computes the transmitted direction for incident wi measured
// from the surface normal n (local +Z convention), given relative IOR
// eta = etaI/etaT. ok is false on total internal reflection.
func refract(wi, n core.Vec3, eta float64) (core.Vec3, bool) {
	cosThetaI := n.Dot(wi)
	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := eta * eta * sin2ThetaI
	if sin2ThetaT >= 1 {
		return core.Vec3{}, false
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	wt := wi.Multiply(-1).Multiply(eta).Add(n.Multiply(eta*cosThetaI - cosThetaT))
	return wt, true
}
