package render

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTilesCoverTheWholeFilmWithoutOverlap(t *testing.T) {
	tiles := Tiles(10, 7, 4)

	var covered [7][10]bool
	for _, tile := range tiles {
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				require.False(t, covered[y][x], "pixel (%d,%d) covered by more than one tile", x, y)
				covered[y][x] = true
			}
		}
	}
	for y := 0; y < 7; y++ {
		for x := 0; x < 10; x++ {
			require.True(t, covered[y][x], "pixel (%d,%d) not covered by any tile", x, y)
		}
	}
}

func TestTilesClampsTrailingEdgeTiles(t *testing.T) {
	tiles := Tiles(10, 10, 8)
	for _, tile := range tiles {
		require.True(t, tile.Bounds.In(image.Rect(0, 0, 10, 10)))
	}
}
