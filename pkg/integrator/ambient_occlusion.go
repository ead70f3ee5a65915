package integrator

import (
	"context"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/sampler"
	"github.com/dwlcj/sortgo/pkg/scene"
)

// AmbientOcclusion estimates occlusion only: one cosine-weighted
// hemisphere sample per hit, scored 1 if it escapes to infinity and 0
// if it hits anything within MaxDistance. No light or material
// response is evaluated, the simplest possible integrator and the one
// the teacher itself starts from.
type AmbientOcclusion struct {
	MaxDistance float64 // 0 means unbounded (any occluder at any distance counts)
}

func NewAmbientOcclusion(maxDistance float64) *AmbientOcclusion {
	return &AmbientOcclusion{MaxDistance: maxDistance}
}

func (ao *AmbientOcclusion) Li(ctx context.Context, ray core.Ray, sc *scene.Scene, samp sampler.Sampler) (core.Spectrum, []scene.Splat) {
	hit, isHit := sc.Tree.NearestHit(ray)
	if !isHit {
		return core.Spectrum{}, nil
	}

	dir := core.CosineSampleHemisphere(samp.Get2D())
	tangent := hit.Tangent
	bitangent := hit.Normal.Cross(tangent)
	worldDir := core.LocalToWorld(dir, tangent, bitangent, hit.Normal)

	probe := core.NewRay(hit.Point, worldDir)
	if ao.MaxDistance > 0 {
		probe.TMax = ao.MaxDistance
	}

	if sc.Tree.AnyHit(probe) {
		return core.Spectrum{}, nil
	}
	return core.NewVec3(1, 1, 1), nil
}
