package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// NewMirror creates a perfect mirror with no local shading. kr scales the
// reflected color (1.0 = lossless mirror).
func NewMirror(kr float64) *Material {
	return &Material{
		Color:           core.Black,
		Kr:              kr,
		RefractiveIndex: 1.0,
		Reflective:      true,
	}
}

// NewPolishedMetal creates a tinted reflective surface that also receives
// diffuse and specular light
func NewPolishedMetal(color core.Color, kd, ks, exponent, kr float64) *Material {
	return &Material{
		Color:            color,
		Ka:               0.05,
		Kd:               kd,
		Ks:               ks,
		SpecularExponent: exponent,
		Kr:               kr,
		RefractiveIndex:  1.0,
		Reflective:       true,
	}
}

// Reflect mirrors direction d about the unit normal n: d - 2(d·n)n
func Reflect(d, n core.Vec3) core.Vec3 {
	return d.Subtract(n.Multiply(2 * d.Dot(n)))
}
