package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidMaterial is returned when a material's coefficients are unusable
var ErrInvalidMaterial = errors.New("invalid material")

// Material holds the optical properties of a surface. Materials are shared
// by pointer between primitives and must not be modified once a render has
// started.
type Material struct {
	Color            core.Color // Base surface color
	Ka               float64    // Ambient coefficient
	Kd               float64    // Diffuse coefficient
	Ks               float64    // Specular coefficient
	SpecularExponent float64    // Phong exponent
	Kr               float64    // Reflectivity, used only when Reflective is set
	Kt               float64    // Transmission, used only when Refractive is set
	RefractiveIndex  float64    // Index of refraction relative to the surrounding medium
	Reflective       bool
	Refractive       bool
}

// Validate checks that every coefficient is finite and non-negative and that
// refractive materials carry a usable index of refraction
func (m *Material) Validate() error {
	coefficients := []struct {
		name  string
		value float64
	}{
		{"ka", m.Ka},
		{"kd", m.Kd},
		{"ks", m.Ks},
		{"specular exponent", m.SpecularExponent},
		{"kr", m.Kr},
		{"kt", m.Kt},
		{"refractive index", m.RefractiveIndex},
		{"color red", m.Color.R},
		{"color green", m.Color.G},
		{"color blue", m.Color.B},
	}
	for _, c := range coefficients {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) || c.value < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number, got %v", ErrInvalidMaterial, c.name, c.value)
		}
	}

	if m.Refractive && m.RefractiveIndex <= 0 {
		return fmt.Errorf("%w: refractive material needs a positive refractive index", ErrInvalidMaterial)
	}

	return nil
}

// IsTerminal reports whether shading this material never spawns secondary rays
func (m *Material) IsTerminal() bool {
	return !m.Reflective && !m.Refractive
}
