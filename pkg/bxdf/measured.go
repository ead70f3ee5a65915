package bxdf

import (
	"math"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dwlcj/sortgo/pkg/core"
)

// MERLTable is a tabulated isotropic BRDF sampled over (theta-half,
// theta-diff, phi-diff), the parameterization the MERL database uses.
// Loading the on-disk binary format is out of scope; callers build a
// Table directly (e.g. from a measured-material asset pipeline) and
// hand it to NewMERL.
type MERLTable struct {
	ThetaHalfSamples, ThetaDiffSamples, PhiDiffSamples int
	Data                                               []core.Spectrum
}

func (t *MERLTable) at(thIdx, tdIdx, pdIdx int) core.Spectrum {
	idx := (thIdx*t.ThetaDiffSamples+tdIdx)*t.PhiDiffSamples + pdIdx
	if idx < 0 || idx >= len(t.Data) {
		return core.Spectrum{}
	}
	return t.Data[idx]
}

// merlTableCache deduplicates repeated loads of the same measured
// material across many primitives sharing it, bounded so a scene with
// hundreds of distinct measured materials doesn't pin every table in
// memory at once.
var merlTableCache, _ = lru.New[string, *MERLTable](64)

// RegisterMERLTable makes a table available to NewMERLByName under the
// given asset key.
func RegisterMERLTable(key string, table *MERLTable) { merlTableCache.Add(key, table) }

// MERL is a BRDF backed by a measured reflectance table.
type MERL struct {
	Table *MERLTable
}

func NewMERL(table *MERLTable) *MERL { return &MERL{Table: table} }

// NewMERLByName looks up a previously registered table by asset key.
func NewMERLByName(key string) (*MERL, bool) {
	t, ok := merlTableCache.Get(key)
	if !ok {
		return nil, false
	}
	return &MERL{Table: t}, true
}

func (m *MERL) Kind() Kind { return Reflection | Glossy }

func (m *MERL) F(wo, wi core.Vec3) core.Spectrum {
	if !sameHemisphere(wo, wi) || m.Table == nil {
		return core.Spectrum{}
	}
	wh := wo.Add(wi)
	if wh.X == 0 && wh.Y == 0 && wh.Z == 0 {
		return core.Spectrum{}
	}
	wh = wh.Normalize()

	thetaHalf := math.Acos(clampUnit(wh.Z))
	diff := rotateToLocal(wi, wh)
	thetaDiff := math.Acos(clampUnit(diff.Z))
	phiDiff := math.Atan2(diff.Y, diff.X)
	if phiDiff < 0 {
		phiDiff += math.Pi
	}

	thIdx := thetaToIndex(thetaHalf, m.Table.ThetaHalfSamples, math.Pi/2)
	tdIdx := thetaToIndex(thetaDiff, m.Table.ThetaDiffSamples, math.Pi/2)
	pdIdx := thetaToIndex(phiDiff, m.Table.PhiDiffSamples, math.Pi)

	return m.Table.at(thIdx, tdIdx, pdIdx)
}

func (m *MERL) SampleF(wo core.Vec3, u core.Vec2) (core.Spectrum, core.Vec3, float64, bool) {
	wi := core.CosineSampleHemisphere(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	return m.F(wo, wi), wi, m.PDF(wo, wi), true
}

func (m *MERL) PDF(wo, wi core.Vec3) float64 {
	if !sameHemisphere(wo, wi) {
		return 0
	}
	return core.CosineHemispherePDF(absCosTheta(wi))
}

func thetaToIndex(theta float64, samples int, max float64) int {
	idx := int(clampUnit(theta/max) * float64(samples-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= samples {
		idx = samples - 1
	}
	return idx
}

func rotateToLocal(w, axis core.Vec3) core.Vec3 {
	t, b := core.CoordinateSystem(axis)
	return core.NewVec3(w.Dot(t), w.Dot(b), w.Dot(axis))
}

// FourierTable is a tabulated anisotropic BSDF represented as Fourier
// coefficients over the difference azimuthal angle, parameterized by
// (muI, muO) pairs of cosine-of-incidence/exitance, per Jakob et al.'s
// "Comprehensive Framework for Rendering Layered Materials". As with
// MERLTable, parsing the on-disk format is out of scope; a Table is
// built directly by the asset pipeline.
type FourierTable struct {
	Mu          []float64
	Coeffs      [][]float64 // indexed by (muI, muO) pair position into Mu
	Eta         float64
}

// fourierTableCache mirrors merlTableCache's dedup/bound rationale for
// Fourier-measured materials.
var fourierTableCache, _ = lru.New[string, *FourierTable](64)

func RegisterFourierTable(key string, table *FourierTable) { fourierTableCache.Add(key, table) }

type Fourier struct {
	Table *FourierTable
}

func NewFourier(table *FourierTable) *Fourier { return &Fourier{Table: table} }

func NewFourierByName(key string) (*Fourier, bool) {
	t, ok := fourierTableCache.Get(key)
	if !ok {
		return nil, false
	}
	return &Fourier{Table: t}, true
}

func (f *Fourier) Kind() Kind { return Reflection | Transmission | Glossy }

func (f *Fourier) F(wo, wi core.Vec3) core.Spectrum {
	if f.Table == nil || len(f.Table.Mu) == 0 {
		return core.Spectrum{}
	}
	muI, muO := cosTheta(wi), cosTheta(wo)
	iIdx := nearestMuIndex(f.Table.Mu, muI)
	oIdx := nearestMuIndex(f.Table.Mu, muO)
	coeffs := f.fetchCoeffs(iIdx, oIdx)
	if len(coeffs) == 0 {
		return core.Spectrum{}
	}

	phi := relativeAzimuth(wo, wi)
	val := evalFourierSeries(coeffs, phi)
	return core.Splat(math.Max(0, val))
}

func (f *Fourier) fetchCoeffs(iIdx, oIdx int) []float64 {
	pos := iIdx*len(f.Table.Mu) + oIdx
	if pos < 0 || pos >= len(f.Table.Coeffs) {
		return nil
	}
	return f.Table.Coeffs[pos]
}

func (f *Fourier) SampleF(wo core.Vec3, u core.Vec2) (core.Spectrum, core.Vec3, float64, bool) {
	wi := core.CosineSampleHemisphere(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	return f.F(wo, wi), wi, f.PDF(wo, wi), true
}

func (f *Fourier) PDF(wo, wi core.Vec3) float64 {
	if !sameHemisphere(wo, wi) {
		return 0
	}
	return core.CosineHemispherePDF(absCosTheta(wi))
}

func nearestMuIndex(mu []float64, val float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, m := range mu {
		if d := math.Abs(m - val); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func relativeAzimuth(wo, wi core.Vec3) float64 {
	soA, coA := sinCosPhi(wo)
	siA, ciA := sinCosPhi(wi)
	cosPhi := clampUnit(coA*ciA + soA*siA)
	return math.Acos(cosPhi)
}

func evalFourierSeries(coeffs []float64, phi float64) float64 {
	sum := 0.0
	for k, a := range coeffs {
		sum += a * math.Cos(float64(k)*phi)
	}
	return sum
}
