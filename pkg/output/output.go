package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned for file extensions with no writer
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Formats lists the supported output formats
var Formats = []string{"ppm", "png"}

// Save writes the frame to path, choosing the format from the file
// extension. Missing parent directories are created.
func Save(path string, frame *renderer.Frame) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	switch ext {
	case "ppm":
		return SavePPM(path, frame)
	case "png":
		return SavePNG(path, frame)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
