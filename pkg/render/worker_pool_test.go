package render

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkerPoolRunMergesStatsAcrossTiles(t *testing.T) {
	pool := NewWorkerPool(4)
	tiles := Tiles(16, 16, 4)

	var rendered int32
	stats, err := pool.Run(context.Background(), tiles, func(ctx context.Context, tile Tile) (Stats, error) {
		atomic.AddInt32(&rendered, 1)
		n := tile.Bounds.Dx() * tile.Bounds.Dy()
		return Stats{TotalPixels: n, TotalSamples: n, TileCount: 1}, nil
	})

	require.NoError(t, err)
	require.Equal(t, len(tiles), int(rendered))
	require.Equal(t, 16*16, stats.TotalPixels)
	require.Equal(t, len(tiles), stats.TileCount)
}

func TestWorkerPoolRunPropagatesFirstError(t *testing.T) {
	pool := NewWorkerPool(2)
	tiles := Tiles(8, 8, 4)
	boom := errors.New("boom")

	_, err := pool.Run(context.Background(), tiles, func(ctx context.Context, tile Tile) (Stats, error) {
		if tile.ID == 0 {
			return Stats{}, boom
		}
		return Stats{}, nil
	})

	require.ErrorIs(t, err, boom)
}

func TestWorkerPoolRunDefaultsWorkerCountWhenNonPositive(t *testing.T) {
	pool := NewWorkerPool(0)
	require.Greater(t, pool.NumWorkers, 0)
}
