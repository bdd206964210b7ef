package lights

import (
	"errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidLight is returned for lights that cannot illuminate anything
var ErrInvalidLight = errors.New("invalid light")

// Light is a source that can be sampled for direct lighting
type Light interface {
	// Sample returns the direction and distance FROM the shading point TO
	// the light along with the radiance arriving there when unoccluded
	Sample(point core.Vec3) LightSample

	Validate() error
}

// LightSample contains information about the light as seen from a point
type LightSample struct {
	Direction core.Vec3  // Unit direction from shading point to light
	Distance  float64    // Distance to light
	Radiance  core.Color // Incoming light color scaled by intensity
}
