package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PointLight emits equally in all directions from a single position.
// There is no falloff with distance.
type PointLight struct {
	Position  core.Vec3
	Color     core.Color
	Intensity float64
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, color core.Color, intensity float64) *PointLight {
	return &PointLight{
		Position:  position,
		Color:     color,
		Intensity: intensity,
	}
}

// NewWhiteLight creates a unit-intensity white point light
func NewWhiteLight(position core.Vec3) *PointLight {
	return NewPointLight(position, core.White, 1.0)
}

// Radiance returns the light color scaled by its intensity
func (pl *PointLight) Radiance() core.Color {
	return pl.Color.Multiply(pl.Intensity)
}

// Sample implements the Light interface
func (pl *PointLight) Sample(point core.Vec3) LightSample {
	toLight := pl.Position.Subtract(point)
	distance := toLight.Length()

	if distance == 0 {
		// Shading point coincides with the light; nothing arrives
		return LightSample{Direction: core.NewVec3(0, 1, 0)}
	}

	return LightSample{
		Direction: toLight.Multiply(1.0 / distance),
		Distance:  distance,
		Radiance:  pl.Radiance(),
	}
}

// Validate rejects negative or non-finite intensities and colors
func (pl *PointLight) Validate() error {
	for _, v := range []float64{pl.Intensity, pl.Color.R, pl.Color.G, pl.Color.B} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: point light at %v has intensity %v and color %v", ErrInvalidLight, pl.Position, pl.Intensity, pl.Color)
		}
	}
	return nil
}
