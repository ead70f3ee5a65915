package light

import (
	"math"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/geometry"
)

// areaToSolidAnglePDF is the shared uniform-area-sample-to-solid-angle-PDF
// conversion every finite area light (quad/sphere/disc) uses.
func areaToSolidAnglePDF(areaPDF, distance, cosTheta float64) float64 {
	if cosTheta < 1e-8 {
		return 0
	}
	return areaPDF * distance * distance / cosTheta
}

// QuadLight is a rectangular area light spanning corner, corner+u,
// corner+v and corner+u+v, emitting only from the front face (the side
// the geometric normal points toward).
type QuadLight struct {
	Corner, U, V core.Vec3
	Normal       core.Vec3
	Emission     core.Spectrum
	Area         float64
}

func NewQuadLight(corner, u, v core.Vec3, emission core.Spectrum) *QuadLight {
	normal := u.Cross(v).Normalize()
	return &QuadLight{Corner: corner, U: u, V: v, Normal: normal, Emission: emission, Area: u.Cross(v).Length()}
}

func (q *QuadLight) Kind() Kind { return KindArea }

func (q *QuadLight) Sample(point, normal core.Vec3, u core.Vec2) Sample {
	samplePoint := q.Corner.Add(q.U.Multiply(u.X)).Add(q.V.Multiply(u.Y))
	toLight := samplePoint.Subtract(point)
	distance := toLight.Length()
	direction := toLight.Multiply(1 / distance)

	cosTheta := math.Abs(q.Normal.Dot(direction.Multiply(-1)))
	pdf := areaToSolidAnglePDF(1/q.Area, distance, cosTheta)

	emission := core.Spectrum{}
	if direction.Dot(q.Normal) < 0 && pdf > 0 {
		emission = q.Emission
	}

	return Sample{Point: samplePoint, Normal: q.Normal, Direction: direction, Distance: distance, Emission: emission, PDF: pdf}
}

func (q *QuadLight) PDF(point, normal, direction core.Vec3) float64 {
	quad := geometry.NewQuad(q.Corner, q.U, q.V)
	ray := core.NewRay(point, direction)
	ray.TMin, ray.TMax = 1e-4, math.Inf(1)
	hit, ok := quad.Hit(ray)
	if !ok {
		return 0
	}
	cosTheta := math.Abs(q.Normal.Dot(direction.Multiply(-1)))
	return areaToSolidAnglePDF(1/q.Area, hit.T, cosTheta)
}

func (q *QuadLight) SampleEmission(samplePoint, sampleDirection core.Vec2) EmissionSample {
	point := q.Corner.Add(q.U.Multiply(samplePoint.X)).Add(q.V.Multiply(samplePoint.Y))
	dir := core.CosineSampleHemisphere(sampleDirection)
	dir = alignToNormal(dir, q.Normal)

	areaPDF := 1 / q.Area
	directionPDF := core.CosineHemispherePDF(dir.Dot(q.Normal))

	return EmissionSample{Point: point, Normal: q.Normal, Direction: dir, Emission: q.Emission, AreaPDF: areaPDF, DirectionPDF: directionPDF}
}

func (q *QuadLight) EmissionPDF(point, direction core.Vec3) float64 { return 1 / q.Area }

func (q *QuadLight) Emit(ray core.Ray) core.Spectrum { return core.Spectrum{} }

// SphereLight is a spherical area light emitting uniformly from its
// entire surface.
type SphereLight struct {
	Center    core.Vec3
	Radius    float64
	Emission  core.Spectrum
	Area      float64
}

func NewSphereLight(center core.Vec3, radius float64, emission core.Spectrum) *SphereLight {
	return &SphereLight{Center: center, Radius: radius, Emission: emission, Area: 4 * math.Pi * radius * radius}
}

func (s *SphereLight) Kind() Kind { return KindArea }

func (s *SphereLight) Sample(point, normal core.Vec3, u core.Vec2) Sample {
	n := core.UniformSampleSphere(u)
	samplePoint := s.Center.Add(n.Multiply(s.Radius))
	toLight := samplePoint.Subtract(point)
	distance := toLight.Length()
	if distance < 1e-9 {
		return Sample{}
	}
	direction := toLight.Multiply(1 / distance)

	cosTheta := math.Abs(n.Dot(direction.Multiply(-1)))
	pdf := areaToSolidAnglePDF(1/s.Area, distance, cosTheta)

	emission := core.Spectrum{}
	if direction.Dot(n) < 0 {
		emission = s.Emission
	}
	return Sample{Point: samplePoint, Normal: n, Direction: direction, Distance: distance, Emission: emission, PDF: pdf}
}

func (s *SphereLight) PDF(point, normal, direction core.Vec3) float64 {
	sphere := geometry.NewSphere(s.Center, s.Radius)
	ray := core.NewRay(point, direction)
	ray.TMin, ray.TMax = 1e-4, math.Inf(1)
	hit, ok := sphere.Hit(ray)
	if !ok {
		return 0
	}
	n := hit.Point.Subtract(s.Center).Multiply(1 / s.Radius)
	cosTheta := math.Abs(n.Dot(direction.Multiply(-1)))
	return areaToSolidAnglePDF(1/s.Area, hit.T, cosTheta)
}

func (s *SphereLight) SampleEmission(samplePoint, sampleDirection core.Vec2) EmissionSample {
	n := core.UniformSampleSphere(samplePoint)
	point := s.Center.Add(n.Multiply(s.Radius))
	dir := core.CosineSampleHemisphere(sampleDirection)
	dir = alignToNormal(dir, n)

	areaPDF := 1 / s.Area
	directionPDF := core.CosineHemispherePDF(dir.Dot(n))
	return EmissionSample{Point: point, Normal: n, Direction: dir, Emission: s.Emission, AreaPDF: areaPDF, DirectionPDF: directionPDF}
}

func (s *SphereLight) EmissionPDF(point, direction core.Vec3) float64 { return 1 / s.Area }

func (s *SphereLight) Emit(ray core.Ray) core.Spectrum { return core.Spectrum{} }

// DiscLight is a flat circular area light, emitting from its front face only.
type DiscLight struct {
	Center, Normal core.Vec3
	Radius         float64
	Emission       core.Spectrum
	Area           float64
}

func NewDiscLight(center, normal core.Vec3, radius float64, emission core.Spectrum) *DiscLight {
	return &DiscLight{Center: center, Normal: normal.Normalize(), Radius: radius, Emission: emission, Area: math.Pi * radius * radius}
}

func (d *DiscLight) Kind() Kind { return KindArea }

func (d *DiscLight) Sample(point, normal core.Vec3, u core.Vec2) Sample {
	tangent, bitangent := core.CoordinateSystem(d.Normal)
	disk := core.ConcentricSampleDisk(u).Multiply(d.Radius)
	samplePoint := d.Center.Add(tangent.Multiply(disk.X)).Add(bitangent.Multiply(disk.Y))

	toLight := samplePoint.Subtract(point)
	distance := toLight.Length()
	direction := toLight.Multiply(1 / distance)

	cosTheta := math.Abs(d.Normal.Dot(direction.Multiply(-1)))
	pdf := areaToSolidAnglePDF(1/d.Area, distance, cosTheta)

	emission := core.Spectrum{}
	if direction.Dot(d.Normal) < 0 && pdf > 0 {
		emission = d.Emission
	}
	return Sample{Point: samplePoint, Normal: d.Normal, Direction: direction, Distance: distance, Emission: emission, PDF: pdf}
}

func (d *DiscLight) PDF(point, normal, direction core.Vec3) float64 {
	disc := geometry.NewDisc(d.Center, d.Normal, d.Radius)
	ray := core.NewRay(point, direction)
	ray.TMin, ray.TMax = 1e-4, math.Inf(1)
	hit, ok := disc.Hit(ray)
	if !ok {
		return 0
	}
	cosTheta := math.Abs(d.Normal.Dot(direction.Multiply(-1)))
	return areaToSolidAnglePDF(1/d.Area, hit.T, cosTheta)
}

func (d *DiscLight) SampleEmission(samplePoint, sampleDirection core.Vec2) EmissionSample {
	tangent, bitangent := core.CoordinateSystem(d.Normal)
	disk := core.ConcentricSampleDisk(samplePoint).Multiply(d.Radius)
	point := d.Center.Add(tangent.Multiply(disk.X)).Add(bitangent.Multiply(disk.Y))

	dir := core.CosineSampleHemisphere(sampleDirection)
	dir = alignToNormal(dir, d.Normal)

	areaPDF := 1 / d.Area
	directionPDF := core.CosineHemispherePDF(dir.Dot(d.Normal))
	return EmissionSample{Point: point, Normal: d.Normal, Direction: dir, Emission: d.Emission, AreaPDF: areaPDF, DirectionPDF: directionPDF}
}

func (d *DiscLight) EmissionPDF(point, direction core.Vec3) float64 { return 1 / d.Area }

func (d *DiscLight) Emit(ray core.Ray) core.Spectrum { return core.Spectrum{} }

// alignToNormal rotates a local-space direction (sampled with +Z as
// "up") into world space around the given normal.
func alignToNormal(local, normal core.Vec3) core.Vec3 {
	t, b := core.CoordinateSystem(normal)
	return core.LocalToWorld(local, t, b, normal)
}
