package scene

import (
	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/geometry"
	"github.com/dwlcj/sortgo/pkg/light"
)

func lambertClosure(albedo core.Spectrum) *ClosureNode {
	return &ClosureNode{Kind: Lambert, Reflectance: albedo}
}

// NewFurnaceScene builds the white-furnace convergence test scene: a
// single sphere of a given BSDF enclosed in a uniform infinite light.
// With a reflectance-1 BSDF every path returns L == the furnace's
// emission regardless of how many times it scatters (property 7,
// scenario A); a lower reflectance gives a darker result.
func NewFurnaceScene(closure *ClosureNode, emission core.Spectrum, cfg SamplingConfig) (*Scene, error) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 0), 1)
	primitives := []Primitive{{Shape: sphere, MaterialIndex: 0, LightIndex: NoLight}}
	closures := []*ClosureNode{closure}

	sky := light.NewUniformInfiniteLight(emission)
	lights := []light.Light{sky}

	camera := NewCamera(CameraConfig{
		Center: core.NewVec3(0, 0, 4), LookAt: core.NewVec3(0, 0, 0), Up: core.NewVec3(0, 1, 0),
		Width: cfg.Width, AspectRatio: float64(cfg.Width) / float64(cfg.Height), VFov: 40, FocusDistance: 4,
	})

	return Build(camera, primitives, closures, lights, nil, cfg)
}

// NewCornellScene builds the classic 555-unit Cornell box: five
// Lambertian quad walls and a quad area light in the ceiling. Grounded
// on the teacher's NewCornellScene (same box dimensions, wall colors,
// and camera placement), rebuilt over scene.Primitive/ClosureNode/Camera
// instead of the teacher's geometry.Shape/material.Material/
// renderer.Camera types.
func NewCornellScene(cfg SamplingConfig) (*Scene, error) {
	const boxSize = 555.0
	white := lambertClosure(core.NewVec3(0.73, 0.73, 0.73))
	red := lambertClosure(core.NewVec3(0.65, 0.05, 0.05))
	green := lambertClosure(core.NewVec3(0.12, 0.45, 0.15))

	closures := []*ClosureNode{white, red, green}
	const (
		iWhite = 0
		iRed   = 1
		iGreen = 2
	)

	floor := geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize))
	ceiling := geometry.NewQuad(core.NewVec3(0, boxSize, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, -boxSize))
	back := geometry.NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0))
	leftWall := geometry.NewQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0))
	rightWall := geometry.NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(0, 0, -boxSize), core.NewVec3(0, boxSize, 0))

	primitives := []Primitive{
		{Shape: floor, MaterialIndex: iWhite, LightIndex: NoLight},
		{Shape: ceiling, MaterialIndex: iWhite, LightIndex: NoLight},
		{Shape: back, MaterialIndex: iWhite, LightIndex: NoLight},
		{Shape: leftWall, MaterialIndex: iGreen, LightIndex: NoLight},
		{Shape: rightWall, MaterialIndex: iRed, LightIndex: NoLight},
	}

	lightEmission := core.NewVec3(15, 15, 15)
	quadLight := light.NewQuadLight(
		core.NewVec3(213, boxSize-1, 227), core.NewVec3(130, 0, 0), core.NewVec3(0, 0, 105), lightEmission)
	lightQuad := geometry.NewQuad(core.NewVec3(213, boxSize-1, 227), core.NewVec3(130, 0, 0), core.NewVec3(0, 0, 105))

	closures = append(closures, &ClosureNode{Kind: SSS}) // emissive quad carries no reflective closure
	primitives = append(primitives, Primitive{Shape: lightQuad, MaterialIndex: len(closures) - 1, LightIndex: 0})

	lights := []light.Light{quadLight}

	camera := NewCamera(CameraConfig{
		Center: core.NewVec3(278, 278, -800), LookAt: core.NewVec3(278, 278, 0), Up: core.NewVec3(0, 1, 0),
		Width: cfg.Width, AspectRatio: 1, VFov: 40, FocusDistance: 800,
	})

	return Build(camera, primitives, closures, lights, nil, cfg)
}
