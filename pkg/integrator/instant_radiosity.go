package integrator

import (
	"context"
	"math"
	"sync"

	"github.com/dwlcj/sortgo/pkg/bxdf"
	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/geometry"
	"github.com/dwlcj/sortgo/pkg/light"
	"github.com/dwlcj/sortgo/pkg/sampler"
	"github.com/dwlcj/sortgo/pkg/scene"
)

// virtualPointLight is one bounce point from a light subpath, treated
// as a point light for the camera-side gather step (the classic
// Keller instant-radiosity approximation: indirect illumination as a
// sum of point lights rather than further path recursion).
type virtualPointLight struct {
	Point, Normal core.Vec3
	Power         core.Spectrum
}

// InstantRadiosity approximates indirect illumination with a fixed set
// of virtual point lights generated once from the scene's own lights
// (via sync.Once, since the VPL set depends only on the immutable
// Scene and is shared by every camera ray of the render) and gathered
// at every camera-visible hit alongside ordinary direct lighting.
// Grounded on the teacher's light-subpath emission sampling (shared
// with LightTracer/BDPT) for generating the VPLs themselves; the
// gather step is a straight point-light evaluation, not a further
// recursive trace.
type InstantRadiosity struct {
	NumVPLs   int
	Heuristic MISHeuristic // defaults to Balance; set to Power to opt in

	once sync.Once
	vpls []virtualPointLight
}

func NewInstantRadiosity(numVPLs int) *InstantRadiosity {
	return &InstantRadiosity{NumVPLs: numVPLs}
}

func (ir *InstantRadiosity) Li(ctx context.Context, ray core.Ray, sc *scene.Scene, samp sampler.Sampler) (core.Spectrum, []scene.Splat) {
	ir.once.Do(func() { ir.vpls = generateVPLs(sc, ir.NumVPLs) })

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
	color = color.Add(sampleDirectLighting(sc, hit.Point, hit.Normal, wo, event.BSDF, samp, ir.Heuristic))

	for _, v := range ir.vpls {
		color = color.Add(ir.gather(sc, hit, wo, event.BSDF, v))
	}
	return color, nil
}

func (ir *InstantRadiosity) gather(sc *scene.Scene, hit geometry.SurfaceInteraction, wo core.Vec3, b *bxdf.BSDF, v virtualPointLight) core.Spectrum {
	toVPL := v.Point.Subtract(hit.Point)
	distSq := toVPL.LengthSquared()
	if distSq < 1e-6 {
		return core.Spectrum{}
	}
	dist := math.Sqrt(distSq)
	wi := toVPL.Multiply(1 / dist)

	cosSurface := wi.Dot(hit.Normal)
	if cosSurface <= 0 {
		return core.Spectrum{}
	}
	cosVPL := wi.Multiply(-1).Dot(v.Normal)
	if cosVPL <= 0 {
		return core.Spectrum{}
	}

	shadowRay := core.NewRayTo(hit.Point, v.Point)
	if sc.Tree.AnyHit(shadowRay) {
		return core.Spectrum{}
	}

	f := b.F(wo, wi, bxdf.All)
	if f.IsZero() {
		return core.Spectrum{}
	}

	geometryTerm := cosSurface * cosVPL / distSq
	return f.MultiplyVec(v.Power).Multiply(geometryTerm / float64(len(ir.vpls)))
}

// generateVPLs traces n single-bounce light subpaths with a dedicated
// Halton sampler (independent of the per-pixel samplers driving camera
// rays, since this set is built once and shared) and keeps the first
// surface hit of each as a virtual point light.
func generateVPLs(sc *scene.Scene, n int) []virtualPointLight {
	samp := sampler.NewHaltonSampler(1)
	vpls := make([]virtualPointLight, 0, n)

	for i := 0; i < n; i++ {
		samp.StartPixelSample([2]int{0, 0}, i)
		es, ok := light.SampleEmissionPath(sc.Lights, sc.LightSampler, samp)
		if !ok || es.AreaPDF <= 0 || es.DirectionPDF <= 0 {
			continue
		}
		cosLight := es.Direction.Dot(es.Normal)
		if cosLight <= 0 {
			continue
		}

		ray := core.NewRay(es.Point, es.Direction)
		hit, isHit := sc.Tree.NearestHit(ray)
		if !isHit {
			continue
		}

		power := es.Emission.Multiply(cosLight / (es.AreaPDF * es.DirectionPDF))
		vpls = append(vpls, virtualPointLight{Point: hit.Point, Normal: hit.Normal, Power: power})
	}
	return vpls
}
