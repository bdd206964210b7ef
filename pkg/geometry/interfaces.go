package geometry

import (
	"errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Epsilon is the minimum accepted hit distance. It keeps a ray leaving a
// surface from re-hitting that same surface.
const Epsilon = 1e-5

// ErrInvalidPrimitive is returned for degenerate geometry
var ErrInvalidPrimitive = errors.New("invalid primitive")

// Primitive is a surface that rays can hit
type Primitive interface {
	// Intersect returns the distance along the ray to the surface
	Intersect(ray core.Ray) (float64, bool)
	// NormalAt returns the outward unit normal at a point on the surface
	NormalAt(point core.Vec3) core.Vec3
	GetMaterial() *material.Material
	// Validate rejects degenerate geometry before rendering starts
	Validate() error
}

// Hit records the nearest intersection found for a ray
type Hit struct {
	T         float64   // Distance along the ray
	Point     core.Vec3 // Point of intersection
	Primitive Primitive // Primitive that was hit
}

// SurfaceInteraction is the shading view of a hit: the normal faces the
// incoming ray and FrontFace says whether the outward normal already did
type SurfaceInteraction struct {
	Point     core.Vec3
	Normal    core.Vec3
	FrontFace bool
	Material  *material.Material
}

// Interaction builds the shading data for a hit of the given ray
func (h Hit) Interaction(ray core.Ray) SurfaceInteraction {
	si := SurfaceInteraction{
		Point:    h.Point,
		Material: h.Primitive.GetMaterial(),
	}
	si.SetFaceNormal(ray, h.Primitive.NormalAt(h.Point))
	return si
}

// SetFaceNormal sets the normal vector and determines front/back face
func (si *SurfaceInteraction) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	si.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if si.FrontFace {
		si.Normal = outwardNormal
	} else {
		si.Normal = outwardNormal.Negate()
	}
}
