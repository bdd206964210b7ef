package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidCamera is returned for camera settings that cannot produce rays
var ErrInvalidCamera = errors.New("invalid camera")

// CameraConfig describes a pinhole camera
type CameraConfig struct {
	Center      core.Vec3 // Center of projection
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Up direction
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
}

// DefaultCameraConfig looks down -z from the origin with a 100 degree field of view
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        100,
		AspectRatio: 16.0 / 10.0,
	}
}

// Validate checks that the configuration spans a proper view
func (c CameraConfig) Validate() error {
	if !(c.VFov > 0 && c.VFov < 180) {
		return fmt.Errorf("%w: field of view must be in (0, 180) degrees, got %v", ErrInvalidCamera, c.VFov)
	}
	if !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0) {
		return fmt.Errorf("%w: aspect ratio must be positive, got %v", ErrInvalidCamera, c.AspectRatio)
	}
	forward := c.LookAt.Subtract(c.Center)
	if forward.IsZero() {
		return fmt.Errorf("%w: look-at point equals the camera center", ErrInvalidCamera)
	}
	if c.Up.Cross(forward).IsZero() {
		return fmt.Errorf("%w: up vector is parallel to the view direction", ErrInvalidCamera)
	}
	return nil
}

// Camera generates primary rays
type Camera struct {
	origin     core.Vec3
	u, v, w    core.Vec3 // Orthonormal basis; the camera looks along -w
	halfHeight float64   // tan(vfov/2)
	aspect     float64
}

// NewCamera creates a camera from a validated configuration
func NewCamera(config CameraConfig) *Camera {
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	return &Camera{
		origin:     config.Center,
		u:          u,
		v:          v,
		w:          w,
		halfHeight: math.Tan(config.VFov * math.Pi / 180 / 2),
		aspect:     config.AspectRatio,
	}
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1,
// s running left to right and t top to bottom
func (c *Camera) GetRay(s, t float64) core.Ray {
	camX := (2*s - 1) * c.aspect * c.halfHeight
	camY := (1 - 2*t) * c.halfHeight

	direction := c.u.Multiply(camX).
		Add(c.v.Multiply(camY)).
		Subtract(c.w).
		Normalize()

	return core.NewRay(c.origin, direction)
}

// Origin returns the center of projection
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}
