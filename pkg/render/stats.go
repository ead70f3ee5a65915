package render

// Stats summarizes one render: total pixels and samples taken, and the
// number of tiles rendered. Grounded on the teacher's RenderStats,
// trimmed of the adaptive-sampling-specific fields (no per-tile or
// per-pixel min/max sample counts are kept, since this port samples
// every pixel in a tile for the same fixed budget rather than
// adaptively stopping early per pixel).
type Stats struct {
	TotalPixels  int
	TotalSamples int
	TileCount    int
}

// Merge folds another tile's thread-local Stats into this one. Each
// tile's render accumulates into its own Stats value, and
// WorkerPool.Run merges those into the total only once, at the
// shutdown barrier after its errgroup.Wait returns — never while other
// goroutines might still be writing their own thread-local copies.
func (s *Stats) Merge(other Stats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.TileCount += other.TileCount
}

// AverageSamples returns the mean number of samples taken per pixel.
func (s Stats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}
