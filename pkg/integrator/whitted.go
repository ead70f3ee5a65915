package integrator

import (
	"context"

	"github.com/dwlcj/sortgo/pkg/bxdf"
	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/sampler"
	"github.com/dwlcj/sortgo/pkg/scene"
)

// Whitted implements recursive ray tracing: direct lighting at every
// hit plus recursive tracing through specular (mirror/dielectric)
// lobes only. Non-specular indirect light is never gathered, the
// classic Whitted-style limitation that path tracing exists to fix.
type Whitted struct {
	MaxDepth  int
	Heuristic MISHeuristic // defaults to Balance; set to Power to opt in
}

func NewWhitted(maxDepth int) *Whitted {
	return &Whitted{MaxDepth: maxDepth}
}

func (w *Whitted) Li(ctx context.Context, ray core.Ray, sc *scene.Scene, samp sampler.Sampler) (core.Spectrum, []scene.Splat) {
	return w.li(ray, sc, samp, w.MaxDepth), nil
}

func (w *Whitted) li(ray core.Ray, sc *scene.Scene, samp sampler.Sampler, depth int) core.Spectrum {
	if depth <= 0 {
		return core.Spectrum{}
	}

	hit, isHit := sc.Tree.NearestHit(ray)
	if !isHit {
		return backgroundLight(sc, ray)
	}

	event := sc.BuildScatteringEvent(hit)
	wo := ray.Direction.Multiply(-1)

	color := event.Emission
	if event.BSDF.NumLobes() == 0 {
		return color
	}

	color = color.Add(sampleDirectLighting(sc, hit.Point, hit.Normal, wo, event.BSDF, samp, w.Heuristic))

	f, wi, pdf, kind, ok := event.BSDF.SampleF(wo, samp.Get1D(), samp.Get2D(), bxdf.Specular)
	if !ok || pdf <= 0 || kind&bxdf.Specular == 0 {
		return color
	}

	cosTheta := wi.Dot(hit.Normal)
	if cosTheta < 0 {
		cosTheta = -cosTheta // transmission through the surface
	}

	reflected := w.li(core.NewRay(hit.Point, wi), sc, samp, depth-1)
	contribution := f.MultiplyVec(reflected).Multiply(cosTheta / pdf)
	return color.Add(contribution)
}
