package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config contains the tracer settings
type Config struct {
	MaxDepth int     // Number of reflection/refraction bounces allowed
	Bias     float64 // Offset of secondary ray origins along the surface normal
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxDepth: 5,
		Bias:     1e-4,
	}
}

// WhittedIntegrator implements recursive Whitted-style ray tracing: Phong
// local illumination with hard shadows from point lights, plus mirror
// reflection and refraction weighted by Fresnel reflectance
type WhittedIntegrator struct {
	config Config
}

// NewWhittedIntegrator creates a new Whitted integrator
func NewWhittedIntegrator(config Config) *WhittedIntegrator {
	return &WhittedIntegrator{config: config}
}

// RayColor traces a primary ray with the full depth budget
func (wi *WhittedIntegrator) RayColor(ray core.Ray, scene *scene.Scene) core.Color {
	return wi.trace(ray, scene, wi.config.MaxDepth)
}

// trace returns the color along a ray with depth bounces left
func (wi *WhittedIntegrator) trace(ray core.Ray, scene *scene.Scene, depth int) core.Color {
	hit, isHit := scene.Hit(ray)
	if !isHit {
		return scene.Background
	}

	si := hit.Interaction(ray)
	mat := si.Material

	// Direct light saturates before the ambient term is added
	local := wi.calculateDirectLighting(ray, scene, si).Clamp(0, 1)
	local = local.Add(mat.Color.Multiply(mat.Ka)).Clamp(0, 1)

	if depth <= 0 || mat.IsTerminal() {
		return local
	}

	return local.Add(wi.calculateSecondary(ray, scene, si, depth)).Clamp(0, 1)
}

// calculateDirectLighting sums the diffuse and Phong specular contribution
// of every light that is visible from the hit point
func (wi *WhittedIntegrator) calculateDirectLighting(ray core.Ray, scene *scene.Scene, si geometry.SurfaceInteraction) core.Color {
	mat := si.Material
	if mat.Kd == 0 && mat.Ks == 0 {
		return core.Black
	}

	shadowOrigin := wi.offset(si.Point, si.Normal)
	viewDir := ray.Direction.Negate()

	color := core.Black
	for _, light := range scene.Lights {
		sample := light.Sample(si.Point)
		if sample.Distance == 0 {
			continue
		}

		// Light is behind the surface
		cosine := si.Normal.Dot(sample.Direction)
		if cosine <= 0 {
			continue
		}

		shadowRay := core.NewRay(shadowOrigin, sample.Direction)
		if scene.Occluded(shadowRay, sample.Distance) {
			continue
		}

		diffuse := mat.Color.MultiplyColor(sample.Radiance).Multiply(cosine * mat.Kd)
		color = color.Add(diffuse)

		if mat.Ks > 0 {
			// Reflection of the light direction about the normal
			reflected := si.Normal.Multiply(2 * cosine).Subtract(sample.Direction)
			// No highlight once the mirrored light points away from the viewer,
			// even for a zero exponent
			if specAngle := reflected.Dot(viewDir); specAngle > 0 {
				color = color.Add(sample.Radiance.Multiply(mat.Ks * math.Pow(specAngle, mat.SpecularExponent)))
			}
		}
	}

	return color
}

// calculateSecondary spawns the reflection and refraction rays for a hit
// and returns their weighted sum
func (wi *WhittedIntegrator) calculateSecondary(ray core.Ray, scene *scene.Scene, si geometry.SurfaceInteraction, depth int) core.Color {
	mat := si.Material

	reflectRay := core.NewRay(
		wi.offset(si.Point, si.Normal),
		material.Reflect(ray.Direction, si.Normal).Normalize(),
	)

	if !mat.Refractive {
		return wi.trace(reflectRay, scene, depth-1).Multiply(mat.Kr)
	}

	eta := material.RefractionRatio(mat.RefractiveIndex, si.FrontFace)
	reflectance := material.Fresnel(ray.Direction, si.Normal, eta)

	color := core.Black
	if mat.Reflective && reflectance > 0 {
		color = color.Add(wi.trace(reflectRay, scene, depth-1).Multiply(mat.Kr * reflectance))
	}

	refracted, ok := material.Refract(ray.Direction, si.Normal, eta)
	if !ok {
		// Total internal reflection. A reflective material already carries
		// all of it through the Fresnel term above.
		if !mat.Reflective {
			color = color.Add(wi.trace(reflectRay, scene, depth-1).Multiply(mat.Kt))
		}
		return color
	}

	if transmittance := 1 - reflectance; transmittance > 0 {
		refractRay := core.NewRay(wi.offset(si.Point, si.Normal.Negate()), refracted.Normalize())
		color = color.Add(wi.trace(refractRay, scene, depth-1).Multiply(mat.Kt * transmittance))
	}

	return color
}

// offset moves a surface point off the surface along direction n
func (wi *WhittedIntegrator) offset(point, n core.Vec3) core.Vec3 {
	return point.Add(n.Multiply(wi.config.Bias))
}
