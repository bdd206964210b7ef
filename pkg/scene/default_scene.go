package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates the classic five red spheres lit by one white
// light, seen from the origin looking down -z
func NewDefaultScene() *Scene {
	s := NewScene("default")
	s.Config = RenderConfig{Width: 800, Height: 500, MaxDepth: 5}
	s.CameraConfig = geometry.CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   100,
	}
	s.Background = DefaultBackground

	red := material.NewMatte(core.Red, 0.1, 1.0)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, -20), 5, red),
		geometry.NewSphere(core.NewVec3(2, 1, -15), 1, red),
		geometry.NewSphere(core.NewVec3(4, 4, -22), 2.5, red),
		geometry.NewSphere(core.NewVec3(80, -6, -150), 5, red),
		geometry.NewSphere(core.NewVec3(-4, 4, -5), 2.5, red),
	)
	s.AddLight(lights.NewWhiteLight(core.NewVec3(30, 30, -2)))

	return s
}
