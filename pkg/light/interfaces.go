// Package light implements the light library: area lights attached to
// geometry, point/spot lights, and infinite environment lights, plus
// the light-sampler strategies an integrator uses to pick among them.
// Unlike pkg/geometry's shapes, a Light owns its emission directly
// (core.Spectrum) rather than going through a material index, since
// emission sampling needs it on the hot path regardless of how the
// scene's material/light binding is organized.
package light

import "github.com/dwlcj/sortgo/pkg/core"

type Kind string

const (
	KindArea     Kind = "area"
	KindPoint    Kind = "point"
	KindInfinite Kind = "infinite"
)

// Light is sampled for direct lighting (Sample/PDF) and for light-path
// generation in bidirectional integrators (SampleEmission/EmissionPDF).
type Light interface {
	Kind() Kind

	// Sample draws a point on the light visible from point, returning
	// the direction from point to the light and the emission/PDF there.
	Sample(point, normal core.Vec3, u core.Vec2) Sample

	// PDF returns the solid-angle density Sample would produce for the
	// given direction from point, without actually sampling.
	PDF(point, normal, direction core.Vec3) float64

	// SampleEmission draws a point and direction on the light surface
	// itself, for light-tracing/BDPT light subpaths.
	SampleEmission(samplePoint, sampleDirection core.Vec2) EmissionSample

	// EmissionPDF returns the area-measure density of samplePoint
	// having been chosen by SampleEmission.
	EmissionPDF(point, direction core.Vec3) float64

	// Emit evaluates emission along a ray that escaped the scene and
	// hit this light (always zero for finite-area and point lights;
	// non-zero only for infinite lights).
	Emit(ray core.Ray) core.Spectrum
}

// Sample is a single light-sampling result for direct lighting.
type Sample struct {
	Point     core.Vec3
	Normal    core.Vec3
	Direction core.Vec3
	Distance  float64
	Emission  core.Spectrum
	PDF       float64
}

// EmissionSample is a single emission-sampling result for light-path
// generation, with position and direction densities reported
// separately so BDPT can combine them with its own MIS weights.
type EmissionSample struct {
	Point        core.Vec3
	Normal       core.Vec3
	Direction    core.Vec3
	Emission     core.Spectrum
	AreaPDF      float64
	DirectionPDF float64
}

// Sampler picks a light (and its selection probability) for a given
// shading point or for emission sampling.
type Sampler interface {
	SampleLight(point, normal core.Vec3, u float64) (lt Light, pdf float64, index int)
	SampleLightEmission(u float64) (lt Light, pdf float64, index int)
	LightProbability(index int, point, normal core.Vec3) float64
	Count() int
}
