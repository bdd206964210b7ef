package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels in the image
	PixelsRendered int           // Pixels actually traced
	TotalTiles     int           // Number of tiles the image was split into
	TilesRendered  int           // Tiles completed before the render ended
	NumWorkers     int           // Number of parallel workers used
	Duration       time.Duration // Wall time of the render
}

// TileStats tracks the work done for a single tile
type TileStats struct {
	Pixels int // Pixels traced in the tile
}

// Merge adds the work of a finished tile
func (rs *RenderStats) Merge(tile TileStats) {
	rs.PixelsRendered += tile.Pixels
	rs.TilesRendered++
}

// Complete reports whether every pixel of the image was traced
func (rs RenderStats) Complete() bool {
	return rs.TotalPixels > 0 && rs.PixelsRendered == rs.TotalPixels
}

// PixelsPerSecond returns the tracing throughput
func (rs RenderStats) PixelsPerSecond() float64 {
	if rs.Duration <= 0 {
		return 0
	}
	return float64(rs.PixelsRendered) / rs.Duration.Seconds()
}
