package light

import (
	"math"

	"github.com/dwlcj/sortgo/pkg/core"
)

// PointLight is a delta-position light: all of its energy radiates
// from a single point, uniformly in every direction.
type PointLight struct {
	Position core.Vec3
	Intensity core.Spectrum // radiant intensity (W/sr), not radiance
}

func NewPointLight(position core.Vec3, intensity core.Spectrum) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

func (p *PointLight) Kind() Kind { return KindPoint }

func (p *PointLight) Sample(point, normal core.Vec3, u core.Vec2) Sample {
	toLight := p.Position.Subtract(point)
	distance := toLight.Length()
	if distance < 1e-9 {
		return Sample{}
	}
	direction := toLight.Multiply(1 / distance)
	emission := p.Intensity.Multiply(1 / (distance * distance))
	return Sample{Point: p.Position, Normal: direction.Multiply(-1), Direction: direction, Distance: distance, Emission: emission, PDF: 1}
}

// PDF is 0: a delta-position light can never be hit by a randomly
// sampled ray, so BSDF-sampling strategies must never expect a finite
// density here (MIS weight collapses to the light-sampling term alone).
func (p *PointLight) PDF(point, normal, direction core.Vec3) float64 { return 0 }

func (p *PointLight) SampleEmission(samplePoint, sampleDirection core.Vec2) EmissionSample {
	dir := core.UniformSampleSphere(sampleDirection)
	return EmissionSample{
		Point:        p.Position,
		Normal:       dir,
		Direction:    dir,
		Emission:     p.Intensity,
		AreaPDF:      1,
		DirectionPDF: 1 / (4 * math.Pi),
	}
}

func (p *PointLight) EmissionPDF(point, direction core.Vec3) float64 { return 1 }

func (p *PointLight) Emit(ray core.Ray) core.Spectrum { return core.Spectrum{} }

// SpotLight is a point light restricted to a cone, with a smooth
// falloff between the inner (full intensity) and outer (zero
// intensity) half-angles.
type SpotLight struct {
	Position, Direction core.Vec3
	Intensity           core.Spectrum
	CosFalloffStart     float64
	CosTotalWidth       float64
}

func NewSpotLight(position, direction core.Vec3, intensity core.Spectrum, totalWidthDeg, falloffStartDeg float64) *SpotLight {
	return &SpotLight{
		Position:        position,
		Direction:       direction.Normalize(),
		Intensity:       intensity,
		CosFalloffStart: math.Cos(falloffStartDeg * math.Pi / 180),
		CosTotalWidth:   math.Cos(totalWidthDeg * math.Pi / 180),
	}
}

func (s *SpotLight) Kind() Kind { return KindPoint }

func (s *SpotLight) falloff(direction core.Vec3) float64 {
	cosTheta := s.Direction.Dot(direction)
	if cosTheta < s.CosTotalWidth {
		return 0
	}
	if cosTheta > s.CosFalloffStart {
		return 1
	}
	delta := (cosTheta - s.CosTotalWidth) / (s.CosFalloffStart - s.CosTotalWidth)
	return delta * delta * delta * delta
}

func (s *SpotLight) Sample(point, normal core.Vec3, u core.Vec2) Sample {
	toLight := s.Position.Subtract(point)
	distance := toLight.Length()
	if distance < 1e-9 {
		return Sample{}
	}
	direction := toLight.Multiply(1 / distance)
	falloff := s.falloff(direction.Multiply(-1))
	emission := s.Intensity.Multiply(falloff / (distance * distance))
	return Sample{Point: s.Position, Normal: direction.Multiply(-1), Direction: direction, Distance: distance, Emission: emission, PDF: 1}
}

func (s *SpotLight) PDF(point, normal, direction core.Vec3) float64 { return 0 }

func (s *SpotLight) SampleEmission(samplePoint, sampleDirection core.Vec2) EmissionSample {
	dir := core.UniformSampleCone(sampleDirection, s.CosTotalWidth)
	dir = alignToNormal(dir, s.Direction)
	return EmissionSample{
		Point:        s.Position,
		Normal:       dir,
		Direction:    dir,
		Emission:     s.Intensity.Multiply(s.falloff(dir)),
		AreaPDF:      1,
		DirectionPDF: core.UniformConePDF(s.CosTotalWidth),
	}
}

func (s *SpotLight) EmissionPDF(point, direction core.Vec3) float64 { return 1 }

func (s *SpotLight) Emit(ray core.Ray) core.Spectrum { return core.Spectrum{} }
