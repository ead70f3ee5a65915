package render

import "github.com/dwlcj/sortgo/pkg/core"

// Film is the linear-radiance accumulation buffer: one running color
// sum and sample count per pixel, pixel (0,0) top-left. Accumulation
// itself needs no synchronization because every Tile owns a disjoint
// rectangle of pixels for the lifetime of a pass; only splats (which
// can land on any pixel from any tile) go through SplatQueue's atomics.
// Grounded on the teacher's PixelStats.ColorAccum/SampleCount, folded
// into a single flat buffer instead of a [][]PixelStats grid.
type Film struct {
	width, height int
	color         []core.Spectrum
	samples       []int
}

func NewFilm(width, height int) *Film {
	return &Film{
		width:   width,
		height:  height,
		color:   make([]core.Spectrum, width*height),
		samples: make([]int, width*height),
	}
}

func (f *Film) Width() int  { return f.width }
func (f *Film) Height() int { return f.height }

func (f *Film) index(x, y int) int { return y*f.width + x }

// AddSample accumulates one radiance estimate into pixel (x,y). Not
// safe for concurrent calls on the same pixel from different
// goroutines; callers rely on tile ownership to guarantee that.
func (f *Film) AddSample(x, y int, c core.Spectrum) {
	idx := f.index(x, y)
	f.color[idx] = f.color[idx].Add(c)
	f.samples[idx]++
}

// addRaw adds a contribution without incrementing the sample count,
// used by SplatQueue.Drain to deposit splat energy that was never
// drawn as one of the pixel's own samples.
func (f *Film) addRaw(x, y int, c core.Spectrum) {
	idx := f.index(x, y)
	f.color[idx] = f.color[idx].Add(c)
}

// At returns the mean radiance accumulated at (x,y) so far: the summed
// color (splat deposits included) divided by the pixel's own sample
// count. A pixel with no samples of its own returns its summed color
// undivided, which is zero unless splats were drained onto it.
func (f *Film) At(x, y int) core.Spectrum {
	idx := f.index(x, y)
	n := f.samples[idx]
	if n == 0 {
		return f.color[idx]
	}
	return f.color[idx].Multiply(1.0 / float64(n))
}

// SampleCount returns how many of the pixel's own samples (not
// counting splat deposits) have been accumulated.
func (f *Film) SampleCount(x, y int) int {
	return f.samples[f.index(x, y)]
}
