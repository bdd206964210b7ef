package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrSceneNotReady is returned when rendering a scene that has not been
// preprocessed
var ErrSceneNotReady = errors.New("scene has no camera, call Preprocess first")

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains configuration for parallel rendering
type Config struct {
	TileSize   int // Size of each tile (64x64 recommended)
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   64,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// TileProgress describes a finished tile for progress callbacks
type TileProgress struct {
	Tile       *Tile
	Frame      *Frame // Frame being rendered; pixels inside Tile.Bounds are final
	TileNumber int    // Tiles finished so far, including this one (1-based)
	TotalTiles int
}

// Raytracer renders a whole frame by splitting it into tiles and tracing
// them on a worker pool
type Raytracer struct {
	scene        *scene.Scene
	width        int
	height       int
	config       Config
	tileRenderer *TileRenderer
	logger       core.Logger
}

// NewRaytracer creates a new raytracer for a preprocessed scene
func NewRaytracer(scene *scene.Scene, integratorInst integrator.Integrator, config Config, logger core.Logger) *Raytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &Raytracer{
		scene:        scene,
		width:        scene.Config.Width,
		height:       scene.Config.Height,
		config:       config,
		tileRenderer: NewTileRenderer(scene, integratorInst),
		logger:       logger,
	}
}

// Render traces every pixel of the frame. onTile, if not nil, is called
// from the calling goroutine once per finished tile. Cancelling ctx stops
// the render between tiles and returns ctx.Err().
func (rt *Raytracer) Render(ctx context.Context, onTile func(TileProgress)) (*Frame, RenderStats, error) {
	if rt.scene.GetCamera() == nil {
		return nil, RenderStats{}, ErrSceneNotReady
	}

	startTime := time.Now()
	frame := NewFrame(rt.width, rt.height)
	tiles := NewTileGrid(rt.width, rt.height, rt.config.TileSize)

	workerPool := NewWorkerPool(rt.tileRenderer, len(tiles), rt.config.NumWorkers)
	workerPool.Start()
	defer workerPool.Stop()

	stats := RenderStats{
		TotalPixels: rt.width * rt.height,
		TotalTiles:  len(tiles),
		NumWorkers:  workerPool.GetNumWorkers(),
	}

	rt.logger.Printf("Rendering %dx%d in %d tiles (using %d workers)...\n",
		rt.width, rt.height, len(tiles), stats.NumWorkers)

	for i, tile := range tiles {
		workerPool.SubmitTask(TileTask{
			Ctx:    ctx,
			Tile:   tile,
			TaskID: i,
			Frame:  frame,
		})
	}

	// Collect every result so the pool can shut down cleanly
	var renderErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			return nil, stats, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}

		stats.Merge(result.Stats)
		if onTile != nil {
			onTile(TileProgress{
				Tile:       tiles[result.TaskID],
				Frame:      frame,
				TileNumber: stats.TilesRendered,
				TotalTiles: len(tiles),
			})
		}
	}

	stats.Duration = time.Since(startTime)

	if renderErr != nil {
		rt.logger.Printf("Rendering cancelled after %d of %d tiles\n", stats.TilesRendered, len(tiles))
		return nil, stats, renderErr
	}

	rt.logger.Printf("Render completed in %v (%.0f pixels/s)\n", stats.Duration, stats.PixelsPerSecond())
	return frame, stats, nil
}
