package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrInvalidConfig is returned for unusable render settings
var ErrInvalidConfig = errors.New("invalid render config")

// DefaultBackground is the color of rays that escape the scene
var DefaultBackground = core.NewColor(0, 0.5, 0.5)

// Scene contains all the elements needed for rendering. It is assembled
// once, prepared with Preprocess, and then only read while rendering.
type Scene struct {
	Name         string
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
	Primitives   []geometry.Primitive // Objects in the scene, in list order
	Lights       []lights.Light       // Lights in the scene
	Background   core.Color
	Config       RenderConfig
}

// RenderConfig contains rendering configuration
type RenderConfig struct {
	Width    int // Image width
	Height   int // Image height
	MaxDepth int // Maximum number of reflection/refraction bounces
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:    800,
		Height:   500,
		MaxDepth: 5,
	}
}

// AspectRatio returns width / height
func (c RenderConfig) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// Validate checks the image size and depth budget
func (c RenderConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	return nil
}

// NewScene creates an empty scene with default configuration
func NewScene(name string) *Scene {
	return &Scene{
		Name:         name,
		CameraConfig: geometry.DefaultCameraConfig(),
		Primitives:   make([]geometry.Primitive, 0),
		Lights:       make([]lights.Light, 0),
		Background:   DefaultBackground,
		Config:       DefaultRenderConfig(),
	}
}

// Add appends primitives to the scene
func (s *Scene) Add(primitives ...geometry.Primitive) {
	s.Primitives = append(s.Primitives, primitives...)
}

// AddLight appends lights to the scene
func (s *Scene) AddLight(l ...lights.Light) {
	s.Lights = append(s.Lights, l...)
}

// Preprocess validates the scene and builds the camera. Degenerate
// geometry, bad materials and unusable settings are reported here so that
// tracing only ever sees well-formed input.
func (s *Scene) Preprocess() error {
	if err := s.Config.Validate(); err != nil {
		return err
	}

	// Cameras without an explicit aspect ratio follow the image size
	cameraConfig := s.CameraConfig
	if cameraConfig.AspectRatio == 0 {
		cameraConfig.AspectRatio = s.Config.AspectRatio()
	}
	if err := cameraConfig.Validate(); err != nil {
		return err
	}
	s.Camera = geometry.NewCamera(cameraConfig)

	validated := make(map[*material.Material]bool)
	for i, primitive := range s.Primitives {
		if primitive == nil {
			return fmt.Errorf("%w: primitive %d is nil", geometry.ErrInvalidPrimitive, i)
		}
		if err := primitive.Validate(); err != nil {
			return fmt.Errorf("primitive %d: %w", i, err)
		}
		mat := primitive.GetMaterial()
		if validated[mat] {
			continue
		}
		if err := mat.Validate(); err != nil {
			return fmt.Errorf("primitive %d: %w", i, err)
		}
		validated[mat] = true
	}

	for i, light := range s.Lights {
		if err := light.Validate(); err != nil {
			return fmt.Errorf("light %d: %w", i, err)
		}
	}

	return nil
}

// GetCamera returns the camera built by Preprocess
func (s *Scene) GetCamera() *geometry.Camera {
	return s.Camera
}

// Hit returns the nearest intersection along the ray. Every primitive is
// tested; on exactly equal distances the earlier primitive wins.
func (s *Scene) Hit(ray core.Ray) (geometry.Hit, bool) {
	closest := geometry.Hit{T: math.Inf(1)}
	hitAnything := false

	for _, primitive := range s.Primitives {
		if t, ok := primitive.Intersect(ray); ok && t < closest.T {
			closest.T = t
			closest.Primitive = primitive
			hitAnything = true
		}
	}

	if hitAnything {
		closest.Point = ray.At(closest.T)
	}
	return closest, hitAnything
}

// Occluded reports whether any primitive lies along the ray closer than
// maxDistance
func (s *Scene) Occluded(ray core.Ray, maxDistance float64) bool {
	for _, primitive := range s.Primitives {
		if t, ok := primitive.Intersect(ray); ok && t < maxDistance {
			return true
		}
	}
	return false
}

// GetPrimitiveCount returns the number of primitives in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Primitives)
}
