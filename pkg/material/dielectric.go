package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NewGlass creates a transparent dielectric that both reflects and refracts.
// The split between the two is decided per hit by Fresnel reflectance.
func NewGlass(refractiveIndex float64) *Material {
	return &Material{
		Color:            core.White,
		Ks:               0.5,
		SpecularExponent: 100,
		Kr:               1.0,
		Kt:               1.0,
		RefractiveIndex:  refractiveIndex,
		Reflective:       true,
		Refractive:       true,
	}
}

// RefractionRatio returns n1/n2 for a ray crossing the surface. Front-face
// hits enter the material from the surrounding medium (index 1).
func RefractionRatio(refractiveIndex float64, frontFace bool) float64 {
	if frontFace {
		return 1.0 / refractiveIndex
	}
	return refractiveIndex
}

// Refract bends the unit direction d through a surface whose unit normal n
// faces against d, using Snell's law with eta = n1/n2. It returns false when
// the discriminant is negative (total internal reflection).
func Refract(d, n core.Vec3, eta float64) (core.Vec3, bool) {
	cosI := math.Min(-d.Dot(n), 1.0)
	k := 1 - eta*eta*(1-cosI*cosI)
	if k < 0 {
		return core.Vec3{}, false
	}
	return d.Multiply(eta).Add(n.Multiply(eta*cosI - math.Sqrt(k))), true
}

// Fresnel returns the fraction of unpolarised light reflected at a
// dielectric interface, averaging the s and p polarised Fresnel equations.
// d and n follow the same conventions as Refract. Total internal reflection
// yields 1.
func Fresnel(d, n core.Vec3, eta float64) float64 {
	cosI := math.Min(-d.Dot(n), 1.0)
	sinT := eta * math.Sqrt(math.Max(0, 1-cosI*cosI))
	if sinT >= 1 {
		return 1
	}
	cosT := math.Sqrt(math.Max(0, 1-sinT*sinT))

	rs := (eta*cosI - cosT) / (eta*cosI + cosT)
	rp := (cosI - eta*cosT) / (cosI + eta*cosT)
	return (rs*rs + rp*rp) / 2
}
