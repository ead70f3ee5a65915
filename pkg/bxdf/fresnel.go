package bxdf

import (
	"math"

	"github.com/dwlcj/sortgo/pkg/core"
)

// Fresnel computes the fraction of light reflected (as opposed to
// refracted/absorbed) at a given incidence angle.
type Fresnel interface {
	Evaluate(cosThetaI float64) core.Spectrum
}

// DielectricFresnel is the exact Fresnel equations for a dielectric
// (non-conducting) interface, e.g. glass or water.
type DielectricFresnel struct {
	EtaI, EtaT float64
}

func (f DielectricFresnel) Evaluate(cosThetaI float64) core.Spectrum {
	return core.Splat(frDielectric(cosThetaI, f.EtaI, f.EtaT))
}

func frDielectric(cosThetaI, etaI, etaT float64) float64 {
	cosThetaI = clampUnit(cosThetaI)
	if cosThetaI < 0 {
		etaI, etaT = etaT, etaI
		cosThetaI = -cosThetaI
	}

	sinThetaI := math.Sqrt(math.Max(0, 1-cosThetaI*cosThetaI))
	sinThetaT := etaI / etaT * sinThetaI
	if sinThetaT >= 1 {
		return 1 // total internal reflection
	}
	cosThetaT := math.Sqrt(math.Max(0, 1-sinThetaT*sinThetaT))

	rParallel := ((etaT * cosThetaI) - (etaI * cosThetaT)) / ((etaT * cosThetaI) + (etaI * cosThetaT))
	rPerp := ((etaI * cosThetaI) - (etaT * cosThetaT)) / ((etaI * cosThetaI) + (etaT * cosThetaT))
	return (rParallel*rParallel + rPerp*rPerp) / 2
}

// ConductorFresnel is the Fresnel equations for a conducting (metallic)
// interface, parameterized by complex index of refraction (eta, k).
type ConductorFresnel struct {
	EtaI       core.Spectrum
	Eta, K     core.Spectrum
}

func (f ConductorFresnel) Evaluate(cosThetaI float64) core.Spectrum {
	return core.Vec3{
		X: frConductor(cosThetaI, f.EtaI.X, f.Eta.X, f.K.X),
		Y: frConductor(cosThetaI, f.EtaI.Y, f.Eta.Y, f.K.Y),
		Z: frConductor(cosThetaI, f.EtaI.Z, f.Eta.Z, f.K.Z),
	}
}

func frConductor(cosThetaI, etaI, eta, k float64) float64 {
	cosThetaI = math.Abs(clampUnit(cosThetaI))
	cos2 := cosThetaI * cosThetaI
	sin2 := 1 - cos2

	eta2 := (eta / etaI) * (eta / etaI)
	k2 := (k / etaI) * (k / etaI)

	t0 := eta2 - k2 - sin2
	a2b2 := math.Sqrt(math.Max(0, t0*t0+4*eta2*k2))
	t1 := a2b2 + cos2
	a := math.Sqrt(math.Max(0, 0.5*(a2b2+t0)))
	t2 := 2 * a * cosThetaI
	rs := (t1 - t2) / (t1 + t2)

	t3 := cos2*a2b2 + sin2*sin2
	t4 := t2 * sin2
	rp := rs * (t3 - t4) / (t3 + t4)

	return 0.5 * (rp + rs)
}

// SchlickFresnel is Schlick's cheap approximation of the dielectric
// Fresnel equations, parameterized by normal-incidence reflectance R0.
type SchlickFresnel struct {
	R0 core.Spectrum
}

func (f SchlickFresnel) Evaluate(cosThetaI float64) core.Spectrum {
	c := clampUnit(math.Abs(cosThetaI))
	w := math.Pow(1-c, 5)
	return f.R0.Add(core.Splat(1).Subtract(f.R0).Multiply(w))
}

// ConstantFresnel always reflects a fixed fraction, used by BxDFs (e.g.
// a tinted mirror coat) that want Fresnel-free weighting.
type ConstantFresnel struct{ Value core.Spectrum }

func (f ConstantFresnel) Evaluate(float64) core.Spectrum { return f.Value }

// DisneyFresnel blends a dielectric Fresnel response toward the tinted
// specular-metallic response Disney's principled BRDF uses, governed by
// the Metallic parameter.
type DisneyFresnel struct {
	R0       core.Spectrum
	Metallic float64
	Eta      float64
}

func (f DisneyFresnel) Evaluate(cosThetaI float64) core.Spectrum {
	dielectric := core.Splat(frDielectric(cosThetaI, 1, f.Eta))
	metallicFr := SchlickFresnel{R0: f.R0}.Evaluate(cosThetaI)
	return dielectric.Multiply(1 - f.Metallic).Add(metallicFr.Multiply(f.Metallic))
}
