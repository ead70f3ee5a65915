package scene

import (
	"github.com/pkg/errors"

	"github.com/dwlcj/sortgo/pkg/accel"
	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/geometry"
	"github.com/dwlcj/sortgo/pkg/light"
)

// SamplingConfig parameterizes the render: image resolution, samples
// per pixel, and path-termination behavior.
type SamplingConfig struct {
	Width                     int
	Height                    int
	SamplesPerPixel           int
	MaxDepth                  int
	RussianRouletteMinBounces int
}

// Scene is the immutable, read-only-during-rendering world description:
// primitives and their closure trees, lights and their sampler, the
// camera, and the spatial accelerator built over every primitive's
// shape. Every worker goroutine shares one Scene; nothing here is
// mutated once Build returns.
type Scene struct {
	Camera       *Camera
	Primitives   []Primitive
	Closures     []*ClosureNode // indexed by Primitive.MaterialIndex; primitives may share a closure
	Lights       []light.Light
	LightSampler light.Sampler
	Config       SamplingConfig
	Tree         *accel.Tree

	worldCenter core.Vec3
	worldRadius float64
}

// Build assembles a Scene: computes world bounds from every primitive's
// shape, builds the spatial accelerator, preprocesses every
// Preprocessor-implementing light and shape against those bounds
// (matching the teacher's Scene.Preprocess two-pass structure: build the
// BVH first so its bounds exist, then hand them to anything that needs
// scene-scale sizing), and installs a uniform light sampler if none was
// supplied.
func Build(camera *Camera, primitives []Primitive, closures []*ClosureNode, lights []light.Light, sampler light.Sampler, cfg SamplingConfig) (*Scene, error) {
	if len(primitives) == 0 {
		return nil, errors.New("scene: cannot build with zero primitives")
	}

	shapes := make([]geometry.Shape, len(primitives))
	bounds := primitives[0].Shape.BoundingBox()
	for i, p := range primitives {
		shapes[i] = p.Shape
		bounds = bounds.Union(p.Shape.BoundingBox())
	}

	tree := accel.Build(shapes, accel.DefaultBuildConfig())

	worldCenter := bounds.Center()
	worldRadius := bounds.Size().Length() / 2

	for _, lt := range lights {
		if pre, ok := lt.(geometry.Preprocessor); ok {
			if err := pre.Preprocess(worldCenter, worldRadius); err != nil {
				return nil, errors.Wrap(err, "scene: preprocessing light")
			}
		}
	}
	for _, p := range primitives {
		if pre, ok := p.Shape.(geometry.Preprocessor); ok {
			if err := pre.Preprocess(worldCenter, worldRadius); err != nil {
				return nil, errors.Wrap(err, "scene: preprocessing shape")
			}
		}
	}

	if sampler == nil {
		sampler = light.NewUniformSampler(lights)
	}

	return &Scene{
		Camera: camera, Primitives: primitives, Closures: closures,
		Lights: lights, LightSampler: sampler, Config: cfg, Tree: tree,
		worldCenter: worldCenter, worldRadius: worldRadius,
	}, nil
}

// WorldBounds returns the scene's bounding sphere center and radius, as
// handed to every Preprocessor during Build.
func (s *Scene) WorldBounds() (center core.Vec3, radius float64) { return s.worldCenter, s.worldRadius }

// BuildScatteringEvent builds the ScatteringEvent for a surface hit,
// looking up the primitive's closure tree and constructing its BSDF in
// the hit's local shading frame.
func (s *Scene) BuildScatteringEvent(hit geometry.SurfaceInteraction) ScatteringEvent {
	prim := s.Primitives[hit.PrimitiveIndex]
	tree := s.Closures[prim.MaterialIndex]
	bsdf := BuildBSDF(tree, hit.Normal, hit.Tangent)

	var emission core.Spectrum
	if prim.LightIndex != NoLight {
		emission = s.Lights[prim.LightIndex].Emit(core.NewRay(hit.Point, hit.Normal))
	}
	return ScatteringEvent{BSDF: bsdf, Emission: emission}
}
