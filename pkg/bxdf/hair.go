package bxdf

import (
	"math"

	"github.com/dwlcj/sortgo/pkg/core"
)

// Hair is a simplified longitudinal/azimuthal hair BCSDF, parameterized
// the way the full Marschner-style R/TT/TRT model is (absorption, two
// beta roughness terms, index of refraction). It collapses the model's
// three light paths (R, TT, TRT) into a single lobe whose width is
// driven by BetaM/BetaN and whose spectrum is attenuated by SigmaA via
// Beer-Lambert absorption, rather than tracing each path separately.
// F equals PDF only in the non-absorbing (SigmaA == 0) case; the
// absorption term scales F below PDF per channel otherwise.
type Hair struct {
	SigmaA core.Spectrum
	BetaM  float64
	BetaN  float64
	Eta    float64
}

func NewHair(sigmaA core.Spectrum, betaM, betaN, eta float64) *Hair {
	return &Hair{SigmaA: sigmaA, BetaM: math.Max(1e-3, betaM), BetaN: math.Max(1e-3, betaN), Eta: eta}
}

func (h *Hair) Kind() Kind { return Reflection | Glossy }

// longitudinalVariance maps BetaM onto the longitudinal lobe's angular
// variance, the roughness-to-variance polynomial Marschner-style hair
// models use (v grows steeply as BetaM approaches 1).
func (h *Hair) longitudinalVariance() float64 {
	v := 0.726*h.BetaM + 0.812*h.BetaM*h.BetaM + 3.7*math.Pow(h.BetaM, 20)
	return v * v
}

// azimuthalStdDev maps BetaN onto the azimuthal lobe's angular spread
// around the fiber, the matching polynomial for the azimuthal term.
func (h *Hair) azimuthalStdDev() float64 {
	return 0.265*h.BetaN + 1.194*h.BetaN*h.BetaN + 5.372*math.Pow(h.BetaN, 22)
}

// lobeShape is the longitudinal-times-azimuthal weighting, peaked at 1
// when wi mirrors wo exactly and falling off as BetaM/BetaN widen it.
func (h *Hair) lobeShape(wo, wi core.Vec3) float64 {
	thetaO := math.Asin(clampUnit(wo.Z))
	thetaI := math.Asin(clampUnit(wi.Z))
	v := h.longitudinalVariance()
	dTheta := thetaI - thetaO
	longitudinal := math.Exp(-(dTheta * dTheta) / (2 * v))

	phiO := math.Atan2(wo.Y, wo.X)
	phiI := math.Atan2(wi.Y, wi.X)
	dPhi := wrapAngle(phiI - phiO)
	s := h.azimuthalStdDev()
	azimuthal := math.Exp(-(dPhi * dPhi) / (2 * s * s))

	return longitudinal * azimuthal
}

// wrapAngle folds a radian difference into (-pi, pi].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// absorption is the per-channel Beer-Lambert attenuation SigmaA applies
// to the reflected spectrum; zero absorption (a pure white strand)
// leaves F identical to PDF, the furnace-test property.
func (h *Hair) absorption() core.Spectrum {
	return core.NewVec3(math.Exp(-h.SigmaA.X), math.Exp(-h.SigmaA.Y), math.Exp(-h.SigmaA.Z))
}

// lobeValue is PDF's value and F's unattenuated magnitude: a
// cosine-weighted hemisphere density shaped by the longitudinal and
// azimuthal terms above.
func (h *Hair) lobeValue(wo, wi core.Vec3) float64 {
	if !sameHemisphere(wo, wi) {
		return 0
	}
	return core.CosineHemispherePDF(absCosTheta(wi)) * h.lobeShape(wo, wi)
}

func (h *Hair) F(wo, wi core.Vec3) core.Spectrum {
	return h.absorption().Multiply(h.lobeValue(wo, wi))
}

func (h *Hair) PDF(wo, wi core.Vec3) float64 {
	return h.lobeValue(wo, wi)
}

func (h *Hair) SampleF(wo core.Vec3, u core.Vec2) (core.Spectrum, core.Vec3, float64, bool) {
	wi := core.CosineSampleHemisphere(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	pdf := h.lobeValue(wo, wi)
	if pdf <= 0 {
		return core.Spectrum{}, core.Vec3{}, 0, false
	}
	return h.absorption().Multiply(pdf), wi, pdf, true
}
