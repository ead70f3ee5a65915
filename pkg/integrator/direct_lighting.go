package integrator

import (
	"context"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/sampler"
	"github.com/dwlcj/sortgo/pkg/scene"
)

// DirectLighting estimates only the first bounce of direct
// illumination at the camera ray's first hit: one light sample, MIS
// weighted against the BSDF, no further recursion. Indirect light
// (light that arrives after more than one bounce) is entirely absent,
// the simplest integrator beyond pure ambient occlusion that actually
// evaluates materials and lights.
type DirectLighting struct {
	Heuristic MISHeuristic // defaults to Balance; set to Power to opt in
}

func NewDirectLighting() *DirectLighting { return &DirectLighting{} }

func (dl *DirectLighting) Li(ctx context.Context, ray core.Ray, sc *scene.Scene, samp sampler.Sampler) (core.Spectrum, []scene.Splat) {
	hit, isHit := sc.Tree.NearestHit(ray)
	if !isHit {
		return backgroundLight(sc, ray), nil
	}

	event := sc.BuildScatteringEvent(hit)
	color := event.Emission
	if event.BSDF.NumLobes() == 0 {
		return color, nil
	}

	wo := ray.Direction.Multiply(-1)
	color = color.Add(sampleDirectLighting(sc, hit.Point, hit.Normal, wo, event.BSDF, samp, dl.Heuristic))
	return color, nil
}
