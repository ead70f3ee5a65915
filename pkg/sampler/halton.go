package sampler

import (
	"math/rand"

	"github.com/dwlcj/sortgo/pkg/core"
)

// HaltonSampler draws a scrambled Halton sequence: each dimension is a
// radical inverse in a distinct prime base, Cranley-Patterson rotated by a
// per-seed random offset so that independent pixels (and independent
// per-tile workers) don't share the same low-discrepancy pattern. This is
// what spec.md's "low-discrepancy" sampler contract calls for -- uniform
// math/rand sampling does not stratify dimensions against each other the
// way the integrators' per-pixel tables assume.
type HaltonSampler struct {
	seed      int
	rotations [64]float64 // Cranley-Patterson rotation per dimension, seeded once

	pixelIndex uint64 // Halton index for the current (pixel, sampleIndex)
	dimension  int
}

// NewHaltonSampler creates a sampler whose Cranley-Patterson rotations are
// derived from seed, so different workers/tiles get independent streams.
func NewHaltonSampler(seed int) *HaltonSampler {
	h := &HaltonSampler{seed: seed}
	rng := rand.New(rand.NewSource(int64(seed)*0x9E3779B9 + 1))
	for i := range h.rotations {
		h.rotations[i] = rng.Float64()
	}
	return h
}

// StartPixelSample resets the dimension counter and derives a Halton index
// from the pixel coordinates and sample index, so repeated renders of the
// same (pixel, sampleIndex) reproduce the same sample.
func (h *HaltonSampler) StartPixelSample(pixel [2]int, sampleIndex int) {
	const wrap = 1 << 16
	px := uint64(pixel[0]&(wrap-1)) * wrap
	py := uint64(pixel[1] & (wrap - 1))
	h.pixelIndex = (px+py)*1009 + uint64(sampleIndex)
	h.dimension = 0
}

func (h *HaltonSampler) nextBase() uint64 {
	base := primeBases[h.dimension%len(primeBases)]
	h.dimension++
	return base
}

// Get1D returns the next Halton dimension, Cranley-Patterson rotated.
func (h *HaltonSampler) Get1D() float64 {
	dim := h.dimension
	base := h.nextBase()
	v := radicalInverse(base, h.pixelIndex) + h.rotations[dim%len(h.rotations)]
	if v >= 1 {
		v -= 1
	}
	return v
}

// Get2D returns the next pair of Halton dimensions.
func (h *HaltonSampler) Get2D() core.Vec2 {
	return core.Vec2{X: h.Get1D(), Y: h.Get1D()}
}

// Clone returns an independent HaltonSampler seeded from seed; used to hand
// each worker goroutine its own sampler state.
func (h *HaltonSampler) Clone(seed int) Sampler {
	return NewHaltonSampler(seed)
}
