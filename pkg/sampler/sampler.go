// Package sampler produces the low-discrepancy per-pixel samples the
// integrators draw BSDF and light directions from, and the allocator that
// lays out per-pixel sample tables so no bounce needs to allocate.
package sampler

import (
	"math"

	"github.com/dwlcj/sortgo/pkg/core"
)

// Sampler draws the next 1D or 2D sample in the current pixel's sequence.
type Sampler interface {
	Get1D() float64
	Get2D() core.Vec2
	// StartPixelSample resets the sequence for (pixel, sampleIndex), so
	// that repeated renders of the same pixel/sample are reproducible.
	StartPixelSample(pixel [2]int, sampleIndex int)
	// Clone returns an independent copy for use by another goroutine; the
	// clone starts at dimension 0 of its own stream.
	Clone(seed int) Sampler
}

// Offset identifies a requested sample table within a PixelSample.
type Offset int

// Allocator lets each integrator declare, before rendering starts, the
// sample tables it will need per pixel (e.g. "16 light samples, 16 BSDF
// samples"). The sampler returns opaque offsets; at render time the
// integrator indexes its PixelSample by those offsets instead of drawing
// ad hoc samples mid-bounce, which keeps dimensions stratified and avoids
// per-bounce allocation.
type Allocator struct {
	dims1D []int // count requested per 1D table
	dims2D []int // count requested per 2D table
}

// NewAllocator creates an empty sample-table allocator.
func NewAllocator() *Allocator { return &Allocator{} }

// Request1D reserves a table of `count` independent 1D samples per pixel
// and returns the offset to index it by later.
func (a *Allocator) Request1D(count int) Offset {
	a.dims1D = append(a.dims1D, count)
	return Offset(len(a.dims1D) - 1)
}

// Request2D reserves a table of `count` independent 2D samples per pixel.
func (a *Allocator) Request2D(count int) Offset {
	a.dims2D = append(a.dims2D, count)
	return Offset(len(a.dims2D) - 1)
}

// PixelSample holds one pixel sample's worth of pre-drawn table values.
type PixelSample struct {
	CameraSample core.Vec2 // offset within the pixel, for AA jitter
	LensSample   core.Vec2 // offset on the lens, for depth of field

	tables1D [][]float64
	tables2D [][]core.Vec2
}

// Get1D returns the requested index of the 1D table at offset, wrapping if
// the integrator draws more values than it requested (defensive only --
// well-behaved integrators never exceed their own request).
func (p *PixelSample) Get1D(offset Offset, index int) float64 {
	t := p.tables1D[offset]
	return t[index%len(t)]
}

// Get2D returns the requested index of the 2D table at offset.
func (p *PixelSample) Get2D(offset Offset, index int) core.Vec2 {
	t := p.tables2D[offset]
	return t[index%len(t)]
}

// Count1D returns how many samples table `offset` holds.
func (p *PixelSample) Count1D(offset Offset) int { return len(p.tables1D[offset]) }

// Count2D returns how many samples table `offset` holds.
func (p *PixelSample) Count2D(offset Offset) int { return len(p.tables2D[offset]) }

// Generate draws one fully-populated PixelSample for (pixel, sampleIndex)
// from s, following the allocator's schedule.
func (a *Allocator) Generate(s Sampler, pixel [2]int, sampleIndex int) *PixelSample {
	s.StartPixelSample(pixel, sampleIndex)

	ps := &PixelSample{
		CameraSample: s.Get2D(),
		LensSample:   s.Get2D(),
	}

	ps.tables1D = make([][]float64, len(a.dims1D))
	for i, n := range a.dims1D {
		table := make([]float64, n)
		for j := range table {
			table[j] = s.Get1D()
		}
		ps.tables1D[i] = table
	}

	ps.tables2D = make([][]core.Vec2, len(a.dims2D))
	for i, n := range a.dims2D {
		table := make([]core.Vec2, n)
		for j := range table {
			table[j] = s.Get2D()
		}
		ps.tables2D[i] = table
	}

	return ps
}

// radicalInverse computes the radical inverse of n in the given prime base,
// the building block of the Halton sequence.
func radicalInverse(base, n uint64) float64 {
	invBase := 1.0 / float64(base)
	reversed := uint64(0)
	invBaseN := 1.0
	for n > 0 {
		next := n / base
		digit := n - next*base
		reversed = reversed*base + digit
		invBaseN *= invBase
		n = next
	}
	return math.Min(float64(reversed)*invBaseN, 1-1e-15)
}

// primeBases lists the first sequence of prime bases, enough dimensions
// for any realistic per-pixel sample schedule (camera, lens, and a
// generous number of light/BSDF dimensions for deep path depths).
var primeBases = []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71}
