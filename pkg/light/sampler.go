package light

import "github.com/dwlcj/sortgo/pkg/core"

// UniformSampler selects among the scene's lights with equal
// probability, regardless of power or distance — the simplest
// unbiased strategy and the fallback when per-light weights aren't
// available.
type UniformSampler struct {
	lights []Light
}

func NewUniformSampler(lights []Light) *UniformSampler {
	return &UniformSampler{lights: lights}
}

func (s *UniformSampler) Count() int { return len(s.lights) }

func (s *UniformSampler) SampleLight(point, normal core.Vec3, u float64) (Light, float64, int) {
	if len(s.lights) == 0 {
		return nil, 0, -1
	}
	idx := int(u * float64(len(s.lights)))
	if idx >= len(s.lights) {
		idx = len(s.lights) - 1
	}
	return s.lights[idx], 1 / float64(len(s.lights)), idx
}

func (s *UniformSampler) SampleLightEmission(u float64) (Light, float64, int) {
	return s.SampleLight(core.Vec3{}, core.Vec3{}, u)
}

func (s *UniformSampler) LightProbability(index int, point, normal core.Vec3) float64 {
	if len(s.lights) == 0 {
		return 0
	}
	return 1 / float64(len(s.lights))
}

// PowerSampler selects lights proportional to a fixed per-light weight
// (typically total radiant power), via a prefix-sum binary search —
// lights that contribute more radiance to the scene get sampled more
// often, reducing variance relative to uniform selection.
type PowerSampler struct {
	lights    []Light
	weights   []float64
	prefix    []float64
	total     float64
	sceneRadius float64
}

func NewPowerSampler(lights []Light, weights []float64, sceneRadius float64) *PowerSampler {
	prefix := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		if w < 0 {
			w = 0
		}
		total += w
		prefix[i] = total
	}
	return &PowerSampler{lights: lights, weights: weights, prefix: prefix, total: total, sceneRadius: sceneRadius}
}

func (s *PowerSampler) Count() int { return len(s.lights) }

func (s *PowerSampler) pick(u float64) int {
	if s.total <= 0 || len(s.lights) == 0 {
		return -1
	}
	target := u * s.total
	lo, hi := 0, len(s.prefix)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if s.prefix[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func (s *PowerSampler) SampleLight(point, normal core.Vec3, u float64) (Light, float64, int) {
	idx := s.pick(u)
	if idx < 0 {
		return nil, 0, -1
	}
	return s.lights[idx], s.LightProbability(idx, point, normal), idx
}

func (s *PowerSampler) SampleLightEmission(u float64) (Light, float64, int) {
	return s.SampleLight(core.Vec3{}, core.Vec3{}, u)
}

func (s *PowerSampler) LightProbability(index int, point, normal core.Vec3) float64 {
	if index < 0 || index >= len(s.weights) || s.total <= 0 {
		return 0
	}
	return s.weights[index] / s.total
}
