package render

import (
	"sync"
	"testing"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/scene"
	"github.com/stretchr/testify/require"
)

func TestSplatQueueDrainsIntoFilmScaledBySampleCount(t *testing.T) {
	q := NewSplatQueue(4, 4)
	q.Add([2]int{1, 1}, core.NewVec3(2, 4, 6))

	film := NewFilm(4, 4)
	q.Drain(film, 2)

	color := film.At(1, 1)
	require.InDelta(t, 1.0, color.X, 1e-9)
	require.InDelta(t, 2.0, color.Y, 1e-9)
	require.InDelta(t, 3.0, color.Z, 1e-9)
	require.Equal(t, 0, film.SampleCount(1, 1)) // splats don't count as the pixel's own samples
}

func TestSplatQueueIgnoresOutOfBoundsPixels(t *testing.T) {
	q := NewSplatQueue(4, 4)
	q.Add([2]int{-1, 0}, core.NewVec3(1, 1, 1))
	q.Add([2]int{10, 10}, core.NewVec3(1, 1, 1))

	film := NewFilm(4, 4)
	q.Drain(film, 1)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			require.Equal(t, core.Spectrum{}, film.At(x, y))
		}
	}
}

func TestSplatQueueAddSplatsDispatchesEachSplat(t *testing.T) {
	q := NewSplatQueue(4, 4)
	q.AddSplats([]scene.Splat{
		{Pixel: [2]int{0, 0}, Value: core.NewVec3(1, 0, 0)},
		{Pixel: [2]int{0, 0}, Value: core.NewVec3(1, 0, 0)},
	})

	film := NewFilm(4, 4)
	q.Drain(film, 1)
	require.InDelta(t, 2.0, film.At(0, 0).X, 1e-9)
}

func TestSplatQueueAddIsSafeForConcurrentUse(t *testing.T) {
	q := NewSplatQueue(8, 8)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				q.Add([2]int{3, 3}, core.NewVec3(1, 1, 1))
			}
		}()
	}
	wg.Wait()

	film := NewFilm(8, 8)
	q.Drain(film, 1)
	require.InDelta(t, 1000.0, film.At(3, 3).X, 1e-6)
}
