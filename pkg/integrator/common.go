package integrator

import (
	"math"

	"github.com/dwlcj/sortgo/pkg/bxdf"
	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/light"
	"github.com/dwlcj/sortgo/pkg/sampler"
	"github.com/dwlcj/sortgo/pkg/scene"
)

// MISHeuristic selects which weighting function combines the light and
// BSDF sampling strategies in next-event-estimation MIS. Balance is the
// zero value and every integrator's default; Power is kept available
// and selectable per integrator since both are carried from the
// teacher's core.BalanceHeuristic/core.PowerHeuristic.
type MISHeuristic int

const (
	Balance MISHeuristic = iota
	Power
)

func (h MISHeuristic) weight(nf int, fPdf float64, ng int, gPdf float64) float64 {
	if h == Power {
		return core.PowerHeuristic(nf, fPdf, ng, gPdf)
	}
	return core.BalanceHeuristic(nf, fPdf, ng, gPdf)
}

// sampleDirectLighting draws one light sample and one implicit BSDF
// evaluation toward it, combining them with the given MIS heuristic —
// the light half of next-event-estimation MIS every non-specular
// integrator below shares. Grounded on the teacher's
// PathTracingIntegrator.CalculateDirectLighting, generalized from the
// teacher's concrete Material.EvaluateBRDF/PDF pair to bxdf.BSDF.F/PDF.
func sampleDirectLighting(sc *scene.Scene, point, normal, wo core.Vec3, bsdf *bxdf.BSDF, samp sampler.Sampler, heuristic MISHeuristic) core.Spectrum {
	ls, _, ok := light.SampleDirect(sc.Lights, sc.LightSampler, point, normal, samp)
	if !ok || ls.PDF <= 0 || ls.Emission.IsZero() {
		return core.Spectrum{}
	}

	cosTheta := ls.Direction.Dot(normal)
	if cosTheta <= 0 {
		return core.Spectrum{}
	}

	shadowRay := core.NewRayTo(point, ls.Point)
	if sc.Tree.AnyHit(shadowRay) {
		return core.Spectrum{}
	}

	f := bsdf.F(wo, ls.Direction, bxdf.All)
	if f.IsZero() {
		return core.Spectrum{}
	}
	bsdfPDF := bsdf.PDF(wo, ls.Direction, bxdf.All)
	misWeight := heuristic.weight(1, ls.PDF, 1, bsdfPDF)

	return f.MultiplyVec(ls.Emission).Multiply(cosTheta * misWeight / ls.PDF)
}

// applyRussianRoulette decides whether a path should terminate after
// minBounces bounces, and the compensation factor to apply if it
// survives — unbiased termination based on throughput luminance,
// matching the teacher's PathTracingIntegrator.ApplyRussianRoulette.
func applyRussianRoulette(bounce, minBounces int, throughput core.Spectrum, u float64) (terminate bool, compensation float64) {
	if bounce < minBounces {
		return false, 1.0
	}
	survivalProb := math.Min(0.95, math.Max(0.05, throughput.Luminance()))
	if u > survivalProb {
		return true, 0.0
	}
	return false, 1.0 / survivalProb
}

// connectToCamera evaluates a light-subpath vertex's BSDF toward a
// sampled point on the camera lens and, if the connection is
// unoccluded, returns the splat it deposits. Shared by LightTracer and
// BDPT's t=1 strategy.
func connectToCamera(sc *scene.Scene, point, normal, wo core.Vec3, b *bxdf.BSDF, beta core.Spectrum, samp sampler.Sampler) (scene.Splat, bool) {
	cs := sc.Camera.SampleCameraFromPoint(point, samp.Get2D())
	if cs == nil || cs.PDF <= 0 {
		return scene.Splat{}, false
	}

	toCamera := cs.Ray.Origin.Subtract(point)
	dist := toCamera.Length()
	if dist <= 0 {
		return scene.Splat{}, false
	}
	wi := toCamera.Multiply(1 / dist)

	cosTheta := wi.Dot(normal)
	if cosTheta <= 0 {
		return scene.Splat{}, false
	}

	shadowRay := core.NewRayTo(point, cs.Ray.Origin)
	if sc.Tree.AnyHit(shadowRay) {
		return scene.Splat{}, false
	}

	f := b.F(wo, wi, bxdf.All)
	if f.IsZero() {
		return scene.Splat{}, false
	}

	contribution := beta.MultiplyVec(f).MultiplyVec(cs.Weight).Multiply(cosTheta / cs.PDF)
	return scene.Splat{Pixel: cs.Pixel, Value: contribution}, true
}

// backgroundLight sums emission from every infinite light along a ray
// that escaped the scene.
func backgroundLight(sc *scene.Scene, ray core.Ray) core.Spectrum {
	total := core.Spectrum{}
	for _, lt := range sc.Lights {
		if lt.Kind() == light.KindInfinite {
			total = total.Add(lt.Emit(ray))
		}
	}
	return total
}
