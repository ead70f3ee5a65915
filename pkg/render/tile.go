package render

import "image"

// Tile is one independently-schedulable rectangle of the film. Bounds
// never overlap between tiles in the same pass, which is what lets
// Film.AddSample skip synchronization. Grounded on the teacher's Tile
// type in progressive.go, trimmed to what a single-pass worker pool
// needs (no PassesCompleted bookkeeping; this port renders each tile's
// full sample budget in one shot rather than interleaving passes
// across tiles).
type Tile struct {
	ID     int
	Bounds image.Rectangle
}

// Tiles partitions a width x height film into tileSize x tileSize
// tiles (the last row/column may be smaller), in raster order.
func Tiles(width, height, tileSize int) []Tile {
	var tiles []Tile
	id := 0
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			maxX := x + tileSize
			if maxX > width {
				maxX = width
			}
			maxY := y + tileSize
			if maxY > height {
				maxY = height
			}
			tiles = append(tiles, Tile{
				ID:     id,
				Bounds: image.Rect(x, y, maxX, maxY),
			})
			id++
		}
	}
	return tiles
}
