package light

import (
	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/sampler"
)

// CombinedPDF returns the total solid-angle density of every light in
// the scene producing the given direction from point, weighted by each
// light's selection probability under s — the quantity an integrator's
// MIS weight against a BSDF sample needs.
func CombinedPDF(lights []Light, s Sampler, point, normal, direction core.Vec3) float64 {
	if len(lights) == 0 {
		return 0
	}
	total := 0.0
	for i, lt := range lights {
		total += lt.PDF(point, normal, direction) * s.LightProbability(i, point, normal)
	}
	return total
}

// SampleDirect selects and samples a light for direct lighting at
// point, combining the light's own solid-angle PDF with its selection
// probability into a single MIS-ready density.
func SampleDirect(lights []Light, s Sampler, point, normal core.Vec3, samp sampler.Sampler) (Sample, Light, bool) {
	if len(lights) == 0 {
		return Sample{}, nil, false
	}
	lt, selectionPDF, _ := s.SampleLight(point, normal, samp.Get1D())
	if lt == nil {
		return Sample{}, nil, false
	}
	sample := lt.Sample(point, normal, samp.Get2D())
	sample.PDF *= selectionPDF
	return sample, lt, true
}

// SampleEmissionPath selects and samples emission from a light for
// light-path generation (BDPT/light tracing).
func SampleEmissionPath(lights []Light, s Sampler, samp sampler.Sampler) (EmissionSample, bool) {
	if len(lights) == 0 {
		return EmissionSample{}, false
	}
	lt, selectionPDF, _ := s.SampleLightEmission(samp.Get1D())
	if lt == nil {
		return EmissionSample{}, false
	}
	sample := lt.SampleEmission(samp.Get2D(), samp.Get2D())
	sample.AreaPDF *= selectionPDF
	return sample, true
}
