package integrator

import (
	"context"

	"github.com/dwlcj/sortgo/pkg/bxdf"
	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/geometry"
	"github.com/dwlcj/sortgo/pkg/light"
	"github.com/dwlcj/sortgo/pkg/sampler"
	"github.com/dwlcj/sortgo/pkg/scene"
)

// PathTracer implements unidirectional path tracing with next-event
// estimation and multiple importance sampling: at every non-specular
// bounce it draws one light sample and one BSDF sample, combining the
// two with the MIS heuristic chosen by Heuristic (balance unless set to
// Power), and terminates with Russian roulette
// once throughput drops low enough and the path has run at least
// MinBounces. Grounded directly on the teacher's
// PathTracingIntegrator.rayColorRecursive, generalized from the
// teacher's concrete Material/ScatterResult pair to scene.ScatteringEvent
// and bxdf.BSDF.
type PathTracer struct {
	MaxDepth   int
	MinBounces int
	Heuristic  MISHeuristic // defaults to Balance; set to Power to opt in
}

func NewPathTracer(maxDepth, minBounces int) *PathTracer {
	return &PathTracer{MaxDepth: maxDepth, MinBounces: minBounces}
}

func (pt *PathTracer) Li(ctx context.Context, ray core.Ray, sc *scene.Scene, samp sampler.Sampler) (core.Spectrum, []scene.Splat) {
	throughput := core.NewVec3(1, 1, 1)
	return pt.li(ray, sc, samp, pt.MaxDepth, throughput), nil
}

func (pt *PathTracer) li(ray core.Ray, sc *scene.Scene, samp sampler.Sampler, depth int, throughput core.Spectrum) core.Spectrum {
	if depth <= 0 {
		return core.Spectrum{}
	}

	bounce := pt.MaxDepth - depth
	terminate, rrCompensation := applyRussianRoulette(bounce, pt.MinBounces, throughput, samp.Get1D())
	if terminate {
		return core.Spectrum{}
	}

	hit, isHit := sc.Tree.NearestHit(ray)
	if !isHit {
		return backgroundLight(sc, ray).Multiply(rrCompensation)
	}

	event := sc.BuildScatteringEvent(hit)
	emitted := event.Emission

	if event.BSDF.NumLobes() == 0 {
		return emitted.Multiply(rrCompensation)
	}

	wo := ray.Direction.Multiply(-1)
	direct := sampleDirectLighting(sc, hit.Point, hit.Normal, wo, event.BSDF, samp, pt.Heuristic)
	indirect := pt.indirect(event, hit, wo, sc, samp, depth, throughput)

	return emitted.Add(direct).Add(indirect).Multiply(rrCompensation)
}

// indirect samples one BSDF direction, recurses along it, and combines
// the result with the light strategy's MIS weight (unless the sampled
// lobe was specular, which can't be hit by light sampling at all).
func (pt *PathTracer) indirect(event scene.ScatteringEvent, hit geometry.SurfaceInteraction, wo core.Vec3, sc *scene.Scene, samp sampler.Sampler, depth int, throughput core.Spectrum) core.Spectrum {
	f, wi, pdf, kind, ok := event.BSDF.SampleF(wo, samp.Get1D(), samp.Get2D(), bxdf.All)
	if !ok || pdf <= 0 {
		return core.Spectrum{}
	}

	cosTheta := wi.Dot(hit.Normal)
	if cosTheta < 0 {
		cosTheta = -cosTheta
	}
	if cosTheta <= 0 {
		return core.Spectrum{}
	}

	misWeight := 1.0
	if kind&bxdf.Specular == 0 {
		lightPDF := light.CombinedPDF(sc.Lights, sc.LightSampler, hit.Point, hit.Normal, wi)
		misWeight = pt.Heuristic.weight(1, pdf, 1, lightPDF)
	}

	newThroughput := throughput.MultiplyVec(f).Multiply(cosTheta / pdf)
	incoming := pt.li(core.NewRay(hit.Point, wi), sc, samp, depth-1, newThroughput)

	return f.MultiplyVec(incoming).Multiply(cosTheta * misWeight / pdf)
}
