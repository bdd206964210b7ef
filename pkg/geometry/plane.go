package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3          // A point on the plane
	Normal   core.Vec3          // Unit normal
	Material *material.Material // Material of the plane
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, material *material.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(), // Ensure normal is normalized
		Material: material,
	}
}

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray core.Ray) (float64, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray is parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return 0, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	return t, t > Epsilon
}

// NormalAt returns the plane normal, which is the same everywhere
func (p *Plane) NormalAt(point core.Vec3) core.Vec3 {
	return p.Normal
}

// GetMaterial returns the plane's material
func (p *Plane) GetMaterial() *material.Material {
	return p.Material
}

// Validate rejects planes without a unit normal or a material
func (p *Plane) Validate() error {
	if p.Normal.IsZero() {
		return fmt.Errorf("%w: plane through %v has a zero normal", ErrInvalidPrimitive, p.Point)
	}
	if math.Abs(p.Normal.Length()-1) > 1e-9 {
		return fmt.Errorf("%w: plane through %v has non-unit normal %v", ErrInvalidPrimitive, p.Point, p.Normal)
	}
	if p.Material == nil {
		return fmt.Errorf("%w: plane through %v has no material", ErrInvalidPrimitive, p.Point)
	}
	return nil
}
