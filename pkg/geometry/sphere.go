package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material *material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material *material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Intersect solves the ray/sphere equation geometrically.
//
// With L = origin - center the roots are -L·d ± sqrt((L·d)² - |L|² + r²).
// If either root is negative the ray starts inside the sphere (or the
// sphere is behind it) and the larger root, the exit point, is used.
// Otherwise the smaller root is the nearest forward hit. Distances not
// beyond Epsilon are rejected.
func (s *Sphere) Intersect(ray core.Ray) (float64, bool) {
	l := ray.Origin.Subtract(s.Center)
	a := l.Dot(ray.Direction)
	b := l.Length()
	c2 := a*a - b*b + s.Radius*s.Radius

	if c2 < 0 {
		return 0, false
	}

	sqrtC2 := math.Sqrt(c2)
	t1 := -a + sqrtC2
	t2 := -a - sqrtC2

	var t float64
	if t1 < 0 || t2 < 0 {
		t = max(t1, t2)
	} else {
		t = min(t1, t2)
	}

	return t, t > Epsilon
}

// NormalAt returns (point - center) / radius
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Multiply(1.0 / s.Radius)
}

// GetMaterial returns the sphere's material
func (s *Sphere) GetMaterial() *material.Material {
	return s.Material
}

// Validate rejects non-positive radii and missing materials
func (s *Sphere) Validate() error {
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
		return fmt.Errorf("%w: sphere at %v has radius %v", ErrInvalidPrimitive, s.Center, s.Radius)
	}
	if s.Material == nil {
		return fmt.Errorf("%w: sphere at %v has no material", ErrInvalidPrimitive, s.Center)
	}
	return nil
}
