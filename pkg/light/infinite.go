package light

import (
	"math"

	"github.com/dwlcj/sortgo/pkg/core"
)

// sampleInfiniteDisk maps a position sample onto a disc of worldRadius
// perpendicular to a sampled emission direction, offset to worldRadius
// on the far side of the scene — the standard PBRT construction for
// turning an infinite light into a finite emission ray for BDPT/light
// tracing. Returns the emission ray, its area PDF, and direction PDF.
func sampleInfiniteDisk(worldCenter core.Vec3, worldRadius float64, samplePoint, sampleDirection core.Vec2) (core.Ray, float64, float64) {
	dir := core.UniformSampleSphere(sampleDirection)
	t, b := core.CoordinateSystem(dir)
	disk := core.ConcentricSampleDisk(samplePoint).Multiply(worldRadius)

	origin := worldCenter.
		Add(dir.Multiply(worldRadius)).
		Add(t.Multiply(disk.X)).
		Add(b.Multiply(disk.Y))

	areaPDF := 1 / (math.Pi * worldRadius * worldRadius)
	directionPDF := core.UniformSpherePDF()
	return core.NewRay(origin, dir.Multiply(-1)), areaPDF, directionPDF
}

// UniformInfiniteLight is a constant-emission environment light
// (uniform sky), sampled cosine-weighted over the visible hemisphere
// at a shading point since the cosine term cancels in the rendering
// equation that way.
type UniformInfiniteLight struct {
	Emission    core.Spectrum
	worldCenter core.Vec3
	worldRadius float64
}

func NewUniformInfiniteLight(emission core.Spectrum) *UniformInfiniteLight {
	return &UniformInfiniteLight{Emission: emission}
}

func (u *UniformInfiniteLight) Kind() Kind { return KindInfinite }

func (u *UniformInfiniteLight) Sample(point, normal core.Vec3, s core.Vec2) Sample {
	dir := core.CosineSampleHemisphere(s)
	dir = alignToNormal(dir, normal)
	cosTheta := dir.Dot(normal)
	return Sample{
		Point:     point.Add(dir.Multiply(2 * u.worldRadius)),
		Normal:    dir.Multiply(-1),
		Direction: dir,
		Distance:  math.Inf(1),
		Emission:  u.Emission,
		PDF:       core.CosineHemispherePDF(cosTheta),
	}
}

func (u *UniformInfiniteLight) PDF(point, normal, direction core.Vec3) float64 {
	cosTheta := direction.Dot(normal)
	if cosTheta <= 0 {
		return 0
	}
	return core.CosineHemispherePDF(cosTheta)
}

func (u *UniformInfiniteLight) SampleEmission(samplePoint, sampleDirection core.Vec2) EmissionSample {
	ray, areaPDF, directionPDF := sampleInfiniteDisk(u.worldCenter, u.worldRadius, samplePoint, sampleDirection)
	return EmissionSample{
		Point:        ray.Origin,
		Normal:       ray.Direction.Multiply(-1),
		Direction:    ray.Direction,
		Emission:     u.Emission,
		AreaPDF:      areaPDF,
		DirectionPDF: directionPDF,
	}
}

func (u *UniformInfiniteLight) EmissionPDF(point, direction core.Vec3) float64 {
	if u.worldRadius <= 0 {
		return 0
	}
	return 1 / (math.Pi * u.worldRadius * u.worldRadius)
}

func (u *UniformInfiniteLight) Emit(ray core.Ray) core.Spectrum { return u.Emission }

func (u *UniformInfiniteLight) Preprocess(worldCenter core.Vec3, worldRadius float64) error {
	u.worldCenter, u.worldRadius = worldCenter, worldRadius
	return nil
}

// GradientInfiniteLight is a vertically-interpolated sky gradient,
// matching the classic "ground to sky" background used for quick
// lighting tests.
type GradientInfiniteLight struct {
	TopColor, BottomColor core.Spectrum
	worldCenter           core.Vec3
	worldRadius           float64
}

func NewGradientInfiniteLight(top, bottom core.Spectrum) *GradientInfiniteLight {
	return &GradientInfiniteLight{TopColor: top, BottomColor: bottom}
}

func (g *GradientInfiniteLight) Kind() Kind { return KindInfinite }

func (g *GradientInfiniteLight) colorFor(direction core.Vec3) core.Spectrum {
	dir := direction.Normalize()
	t := 0.5 * (dir.Y + 1)
	return g.BottomColor.Multiply(1 - t).Add(g.TopColor.Multiply(t))
}

func (g *GradientInfiniteLight) Sample(point, normal core.Vec3, s core.Vec2) Sample {
	dir := core.CosineSampleHemisphere(s)
	dir = alignToNormal(dir, normal)
	cosTheta := dir.Dot(normal)
	return Sample{
		Point:     point.Add(dir.Multiply(2 * g.worldRadius)),
		Normal:    dir.Multiply(-1),
		Direction: dir,
		Distance:  math.Inf(1),
		Emission:  g.colorFor(dir),
		PDF:       core.CosineHemispherePDF(cosTheta),
	}
}

func (g *GradientInfiniteLight) PDF(point, normal, direction core.Vec3) float64 {
	cosTheta := direction.Dot(normal)
	if cosTheta <= 0 {
		return 0
	}
	return core.CosineHemispherePDF(cosTheta)
}

func (g *GradientInfiniteLight) SampleEmission(samplePoint, sampleDirection core.Vec2) EmissionSample {
	ray, areaPDF, directionPDF := sampleInfiniteDisk(g.worldCenter, g.worldRadius, samplePoint, sampleDirection)
	return EmissionSample{
		Point:        ray.Origin,
		Normal:       ray.Direction.Multiply(-1),
		Direction:    ray.Direction,
		Emission:     g.colorFor(ray.Direction),
		AreaPDF:      areaPDF,
		DirectionPDF: directionPDF,
	}
}

func (g *GradientInfiniteLight) EmissionPDF(point, direction core.Vec3) float64 {
	if g.worldRadius <= 0 {
		return 0
	}
	return 1 / (math.Pi * g.worldRadius * g.worldRadius)
}

func (g *GradientInfiniteLight) Emit(ray core.Ray) core.Spectrum { return g.colorFor(ray.Direction) }

func (g *GradientInfiniteLight) Preprocess(worldCenter core.Vec3, worldRadius float64) error {
	g.worldCenter, g.worldRadius = worldCenter, worldRadius
	return nil
}
