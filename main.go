package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// options holds the command line settings
type options struct {
	sceneType  string
	width      int
	height     int
	depth      int
	numWorkers int
	tileSize   int
	format     string
	outputPath string
}

func main() {
	// Parse command line flags
	var opts options
	flag.StringVar(&opts.sceneType, "scene", "default", "Scene: built-in name (default, mirror, shadow, glass) or path to a .json scene file")
	flag.IntVar(&opts.width, "width", 0, "Image width (0 = scene value)")
	flag.IntVar(&opts.height, "height", 0, "Image height (0 = scene value)")
	flag.IntVar(&opts.depth, "depth", -1, "Maximum reflection/refraction depth (-1 = scene value)")
	flag.IntVar(&opts.numWorkers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	flag.IntVar(&opts.tileSize, "tile", renderer.DefaultConfig().TileSize, "Tile size in pixels")
	flag.StringVar(&opts.format, "format", "ppm", "Output format: 'ppm' or 'png'")
	flag.StringVar(&opts.outputPath, "output", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		showHelp()
		return
	}

	fmt.Println("Starting Whitted Raytracer...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	filename, err := run(ctx, opts, renderer.NewDefaultLogger())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

func showHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Printf("  %-8s - %s\n", info.ID, info.Description)
	}
	fmt.Println("  <file>.json - Scene description file (see scenes/)")
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.<format>")
}

// run renders the selected scene and writes the image, returning its path
func run(ctx context.Context, opts options, logger core.Logger) (string, error) {
	if !slices.Contains(output.Formats, opts.format) {
		return "", fmt.Errorf("unknown output format %q", opts.format)
	}

	selectedScene, err := createScene(opts.sceneType)
	if err != nil {
		return "", err
	}

	// Command line values override the scene's own
	if opts.width > 0 {
		selectedScene.Config.Width = opts.width
	}
	if opts.height > 0 {
		selectedScene.Config.Height = opts.height
	}
	if opts.depth >= 0 {
		selectedScene.Config.MaxDepth = opts.depth
	}
	if err := selectedScene.Preprocess(); err != nil {
		return "", fmt.Errorf("invalid scene: %w", err)
	}

	logger.Printf("Scene %q: %d primitives, %d lights, %dx%d, max depth %d\n",
		selectedScene.Name, selectedScene.GetPrimitiveCount(), len(selectedScene.Lights),
		selectedScene.Config.Width, selectedScene.Config.Height, selectedScene.Config.MaxDepth)

	whitted := integrator.NewWhittedIntegrator(integrator.Config{
		MaxDepth: selectedScene.Config.MaxDepth,
		Bias:     integrator.DefaultConfig().Bias,
	})

	config := renderer.DefaultConfig()
	config.NumWorkers = opts.numWorkers
	if opts.tileSize > 0 {
		config.TileSize = opts.tileSize
	}

	raytracer := renderer.NewRaytracer(selectedScene, whitted, config, logger)

	// Report progress roughly every 10%
	lastReported := 0
	frame, stats, err := raytracer.Render(ctx, func(p renderer.TileProgress) {
		percent := p.TileNumber * 100 / p.TotalTiles
		if percent >= lastReported+10 || p.TileNumber == p.TotalTiles {
			logger.Printf("  %3d%% (%d/%d tiles)\n", percent, p.TileNumber, p.TotalTiles)
			lastReported = percent
		}
	})
	if err != nil {
		return "", fmt.Errorf("render failed: %w", err)
	}

	logger.Printf("Rendered %d pixels with %d workers in %v\n", stats.PixelsRendered, stats.NumWorkers, stats.Duration)

	filename := opts.outputPath
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(createOutputDir(opts.sceneType), fmt.Sprintf("render_%s.%s", timestamp, opts.format))
	}

	if err := output.Save(filename, frame); err != nil {
		return "", err
	}
	return filename, nil
}

// createScene returns a built-in scene by name or loads a .json scene file
func createScene(sceneType string) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("scene name cannot be empty")
	}

	if strings.HasSuffix(strings.ToLower(sceneType), ".json") {
		return scene.NewFileScene(sceneType)
	}

	return scene.NewBuiltinScene(sceneType)
}

// createOutputDir returns the output directory for a scene: the scene name
// for built-ins, the file name without extension for scene files
func createOutputDir(sceneType string) string {
	base := filepath.Base(sceneType)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join("output", base)
}
