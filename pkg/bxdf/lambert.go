package bxdf

import (
	"math"

	"github.com/dwlcj/sortgo/pkg/core"
)

// Lambertian is a perfectly diffuse reflective BRDF.
type Lambertian struct {
	Albedo core.Spectrum
}

// NewLambertian creates a Lambertian BRDF with the given albedo.
func NewLambertian(albedo core.Spectrum) *Lambertian { return &Lambertian{Albedo: albedo} }

func (l *Lambertian) Kind() Kind { return Reflection | Diffuse }

func (l *Lambertian) F(wo, wi core.Vec3) core.Spectrum {
	if !sameHemisphere(wo, wi) {
		return core.Spectrum{}
	}
	return l.Albedo.Multiply(1 / math.Pi)
}

func (l *Lambertian) SampleF(wo core.Vec3, u core.Vec2) (core.Spectrum, core.Vec3, float64, bool) {
	wi := core.CosineSampleHemisphere(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	return l.F(wo, wi), wi, l.PDF(wo, wi), true
}

func (l *Lambertian) PDF(wo, wi core.Vec3) float64 {
	if !sameHemisphere(wo, wi) {
		return 0
	}
	return core.CosineHemispherePDF(absCosTheta(wi))
}

// LambertianTransmission is a perfectly diffuse transmissive BTDF (light
// passes through, scattered uniformly over the opposite hemisphere).
type LambertianTransmission struct {
	Albedo core.Spectrum
}

// NewLambertianTransmission creates a diffuse BTDF with the given albedo.
func NewLambertianTransmission(albedo core.Spectrum) *LambertianTransmission {
	return &LambertianTransmission{Albedo: albedo}
}

func (l *LambertianTransmission) Kind() Kind { return Transmission | Diffuse }

func (l *LambertianTransmission) F(wo, wi core.Vec3) core.Spectrum {
	if sameHemisphere(wo, wi) {
		return core.Spectrum{}
	}
	return l.Albedo.Multiply(1 / math.Pi)
}

func (l *LambertianTransmission) SampleF(wo core.Vec3, u core.Vec2) (core.Spectrum, core.Vec3, float64, bool) {
	wi := core.CosineSampleHemisphere(u)
	if wo.Z > 0 {
		wi.Z = -wi.Z
	}
	return l.F(wo, wi), wi, l.PDF(wo, wi), true
}

func (l *LambertianTransmission) PDF(wo, wi core.Vec3) float64 {
	if sameHemisphere(wo, wi) {
		return 0
	}
	return core.CosineHemispherePDF(absCosTheta(wi))
}

// OrenNayar is a microfacet-motivated rough-diffuse BRDF accounting for
// retroreflection that pure Lambertian shading misses at grazing angles.
type OrenNayar struct {
	Albedo    core.Spectrum
	A, B      float64 // precomputed roughness coefficients
	Roughness float64 // standard deviation of facet slope, in radians
}

// NewOrenNayar creates an Oren-Nayar BRDF for the given albedo and
// roughness (standard deviation of the facet-slope angle, in radians).
func NewOrenNayar(albedo core.Spectrum, roughness float64) *OrenNayar {
	sigma2 := roughness * roughness
	return &OrenNayar{
		Albedo:    albedo,
		A:         1 - sigma2/(2*(sigma2+0.33)),
		B:         0.45 * sigma2 / (sigma2 + 0.09),
		Roughness: roughness,
	}
}

func (o *OrenNayar) Kind() Kind { return Reflection | Diffuse }

func (o *OrenNayar) F(wo, wi core.Vec3) core.Spectrum {
	if !sameHemisphere(wo, wi) {
		return core.Spectrum{}
	}

	sinThetaI := sinTheta(wi)
	sinThetaO := sinTheta(wo)

	maxCos := 0.0
	if sinThetaI > 1e-9 && sinThetaO > 1e-9 {
		sinPhiI, cosPhiI := sinCosPhi(wi)
		sinPhiO, cosPhiO := sinCosPhi(wo)
		maxCos = math.Max(0, cosPhiI*cosPhiO+sinPhiI*sinPhiO)
	}

	var sinAlpha, tanBeta float64
	if absCosTheta(wi) > absCosTheta(wo) {
		sinAlpha, tanBeta = sinThetaO, sinThetaI/absCosTheta(wi)
	} else {
		sinAlpha, tanBeta = sinThetaI, sinThetaO/absCosTheta(wo)
	}

	return o.Albedo.Multiply((o.A + o.B*maxCos*sinAlpha*tanBeta) / math.Pi)
}

func (o *OrenNayar) SampleF(wo core.Vec3, u core.Vec2) (core.Spectrum, core.Vec3, float64, bool) {
	wi := core.CosineSampleHemisphere(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	return o.F(wo, wi), wi, o.PDF(wo, wi), true
}

func (o *OrenNayar) PDF(wo, wi core.Vec3) float64 {
	if !sameHemisphere(wo, wi) {
		return 0
	}
	return core.CosineHemispherePDF(absCosTheta(wi))
}

func sinTheta(w core.Vec3) float64 {
	return math.Sqrt(math.Max(0, 1-w.Z*w.Z))
}

func sinCosPhi(w core.Vec3) (sinPhi, cosPhi float64) {
	st := sinTheta(w)
	if st < 1e-9 {
		return 0, 1
	}
	return clampUnit(w.Y / st), clampUnit(w.X / st)
}

func clampUnit(v float64) float64 { return math.Max(-1, math.Min(1, v)) }
