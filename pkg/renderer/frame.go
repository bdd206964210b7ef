package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Frame is a rendered image: one color per pixel in row-major order, with
// channels in [0,1]
type Frame struct {
	Width  int
	Height int
	Pixels []core.Color
}

// NewFrame creates a black frame of the given size
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// At returns the color of pixel (x, y)
func (f *Frame) At(x, y int) core.Color {
	return f.Pixels[y*f.Width+x]
}

// Set stores the color of pixel (x, y)
func (f *Frame) Set(x, y int, c core.Color) {
	f.Pixels[y*f.Width+x] = c
}

// ToByte scales a channel in [0,1] to 0-255, rounding half away from zero
func ToByte(channel float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, channel)) * 255))
}

// colorToRGBA converts a frame color to an opaque 8-bit pixel
func colorToRGBA(c core.Color) color.RGBA {
	return color.RGBA{
		R: ToByte(c.R),
		G: ToByte(c.G),
		B: ToByte(c.B),
		A: 255,
	}
}

// ToRGBA converts the frame to an image
func (f *Frame) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, colorToRGBA(f.At(x, y)))
		}
	}
	return img
}

// SubImage extracts the pixels inside bounds as a standalone image
func (f *Frame) SubImage(bounds image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, colorToRGBA(f.At(x, y)))
		}
	}
	return img
}
