package render

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WorkerPool runs a fixed number of tile-rendering goroutines over an
// errgroup.Group instead of the teacher's hand-rolled task/result
// channel pair (pkg/renderer/worker_pool.go's TileTask/TileResult/
// stopChan machinery). Every tile is an independent, run-to-completion
// unit of work — ctx is only ever consulted between tiles, never
// mid-sample, so a cancellation can't leave a tile's Film writes
// half-applied. errgroup.Group.Wait returns the first worker error
// (or ctx.Err() once a sibling tile's cancellation propagates), which
// replaces the teacher's manual error field on TileResult.
type WorkerPool struct {
	NumWorkers int
}

func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{NumWorkers: numWorkers}
}

// Run renders every tile with render, bounded to NumWorkers concurrent
// tiles, and returns the merged Stats across all of them. render is
// called with a context that is cancelled the moment any tile returns
// an error; it must only check ctx at its own entry, before starting a
// tile's samples, never partway through one.
func (wp *WorkerPool) Run(ctx context.Context, tiles []Tile, render func(ctx context.Context, tile Tile) (Stats, error)) (Stats, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.NumWorkers)

	// Each tile's Stats stays private to its goroutine until the Wait
	// barrier below, where they are merged once.
	perTile := make([]Stats, len(tiles))

	for i, tile := range tiles {
		i, tile := i, tile
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			stats, err := render(gctx, tile)
			if err != nil {
				return err
			}

			perTile[i] = stats
			return nil
		})
	}

	err := g.Wait()
	total := Stats{}
	for _, s := range perTile {
		total.Merge(s)
	}
	return total, err
}
