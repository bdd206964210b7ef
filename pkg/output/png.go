package output

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// SavePNG writes the frame to a PNG file
func SavePNG(path string, frame *renderer.Frame) error {
	dc := gg.NewContextForRGBA(frame.ToRGBA())
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("error saving PNG: %w", err)
	}
	return nil
}

// EncodePNG writes the frame to w as PNG data
func EncodePNG(w io.Writer, frame *renderer.Frame) error {
	dc := gg.NewContextForRGBA(frame.ToRGBA())
	return dc.EncodePNG(w)
}
