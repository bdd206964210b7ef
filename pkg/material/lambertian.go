package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// NewMatte creates a purely diffuse material with an ambient term
func NewMatte(color core.Color, ka, kd float64) *Material {
	return &Material{
		Color:           color,
		Ka:              ka,
		Kd:              kd,
		RefractiveIndex: 1.0,
	}
}

// NewPhong creates a diffuse material with a Phong highlight
func NewPhong(color core.Color, ka, kd, ks, exponent float64) *Material {
	return &Material{
		Color:            color,
		Ka:               ka,
		Kd:               kd,
		Ks:               ks,
		SpecularExponent: exponent,
		RefractiveIndex:  1.0,
	}
}
