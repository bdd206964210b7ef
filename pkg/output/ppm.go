package output

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// WritePPM writes the frame as an ASCII (P3) PPM image, one pixel per line,
// top row first
func WritePPM(w io.Writer, frame *renderer.Frame) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", frame.Width, frame.Height); err != nil {
		return err
	}

	for _, c := range frame.Pixels {
		r, g, b := renderer.ToByte(c.R), renderer.ToByte(c.G), renderer.ToByte(c.B)
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// SavePPM writes the frame to a PPM file
func SavePPM(path string, frame *renderer.Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	if err := WritePPM(file, frame); err != nil {
		file.Close()
		return fmt.Errorf("error writing PPM: %w", err)
	}
	return file.Close()
}
