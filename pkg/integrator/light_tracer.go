package integrator

import (
	"context"
	"math"

	"github.com/dwlcj/sortgo/pkg/bxdf"
	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/light"
	"github.com/dwlcj/sortgo/pkg/sampler"
	"github.com/dwlcj/sortgo/pkg/scene"
)

// LightTracer traces paths forward from the lights and connects every
// non-specular vertex to the camera via scene.Camera.SampleCameraFromPoint,
// depositing the contribution as a splat on whichever pixel that
// connection lands on rather than the pixel the driving camera ray
// belongs to. The camera ray itself only ever contributes directly
// visible emission (a light surface the ray happens to hit head-on);
// everything else arrives through splats. Grounded on the teacher's
// light-subpath generation in bdpt.go, stripped down to the single
// light-to-camera connection strategy (BDPT's s-vertex, t=1 case)
// instead of the full s×t strategy grid.
type LightTracer struct {
	MaxDepth   int
	MinBounces int
}

func NewLightTracer(maxDepth, minBounces int) *LightTracer {
	return &LightTracer{MaxDepth: maxDepth, MinBounces: minBounces}
}

func (lt *LightTracer) Li(ctx context.Context, ray core.Ray, sc *scene.Scene, samp sampler.Sampler) (core.Spectrum, []scene.Splat) {
	var direct core.Spectrum
	if hit, isHit := sc.Tree.NearestHit(ray); isHit {
		direct = sc.BuildScatteringEvent(hit).Emission
	} else {
		direct = backgroundLight(sc, ray)
	}

	return direct, lt.traceLightPath(sc, samp)
}

func (lt *LightTracer) traceLightPath(sc *scene.Scene, samp sampler.Sampler) []scene.Splat {
	es, ok := light.SampleEmissionPath(sc.Lights, sc.LightSampler, samp)
	if !ok || es.AreaPDF <= 0 || es.DirectionPDF <= 0 {
		return nil
	}
	cosLight := es.Direction.Dot(es.Normal)
	if cosLight <= 0 {
		return nil
	}
	beta := es.Emission.Multiply(cosLight / (es.AreaPDF * es.DirectionPDF))
	ray := core.NewRay(es.Point, es.Direction)

	var splats []scene.Splat
	for depth := 0; depth < lt.MaxDepth; depth++ {
		hit, isHit := sc.Tree.NearestHit(ray)
		if !isHit {
			break
		}
		event := sc.BuildScatteringEvent(hit)
		wo := ray.Direction.Multiply(-1)

		if event.BSDF.NumLobes() > 0 {
			if splat, connected := connectToCamera(sc, hit.Point, hit.Normal, wo, event.BSDF, beta, samp); connected {
				splats = append(splats, splat)
			}
		}
		if event.BSDF.NumLobes() == 0 {
			break
		}

		f, wi, pdf, _, sampled := event.BSDF.SampleF(wo, samp.Get1D(), samp.Get2D(), bxdf.All)
		if !sampled || pdf <= 0 {
			break
		}
		cosTheta := math.Abs(wi.Dot(hit.Normal))
		beta = beta.MultiplyVec(f).Multiply(cosTheta / pdf)

		terminate, compensation := applyRussianRoulette(depth, lt.MinBounces, beta, samp.Get1D())
		if terminate {
			break
		}
		beta = beta.Multiply(compensation)
		ray = core.NewRay(hit.Point, wi)
	}
	return splats
}
