package render

import (
	"testing"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/stretchr/testify/require"
)

func TestFilmAtReturnsZeroBeforeAnySample(t *testing.T) {
	f := NewFilm(4, 4)
	require.Equal(t, core.Spectrum{}, f.At(1, 1))
	require.Equal(t, 0, f.SampleCount(1, 1))
}

func TestFilmAtAveragesAccumulatedSamples(t *testing.T) {
	f := NewFilm(4, 4)
	f.AddSample(2, 3, core.NewVec3(1, 0, 0))
	f.AddSample(2, 3, core.NewVec3(0, 1, 0))

	mean := f.At(2, 3)
	require.InDelta(t, 0.5, mean.X, 1e-9)
	require.InDelta(t, 0.5, mean.Y, 1e-9)
	require.Equal(t, 2, f.SampleCount(2, 3))
}

func TestFilmAddRawDoesNotAdvanceSampleCount(t *testing.T) {
	f := NewFilm(2, 2)
	f.AddSample(0, 0, core.NewVec3(1, 1, 1))
	f.addRaw(0, 0, core.NewVec3(1, 1, 1))

	require.Equal(t, 1, f.SampleCount(0, 0))
	require.InDelta(t, 2.0, f.At(0, 0).X, 1e-9)
}
