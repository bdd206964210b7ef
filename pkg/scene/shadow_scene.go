package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewShadowScene creates a floor with spheres casting shadows from two
// colored lights
func NewShadowScene() *Scene {
	s := NewScene("shadow")
	s.Config = RenderConfig{Width: 800, Height: 500, MaxDepth: 2}
	s.CameraConfig = geometry.CameraConfig{
		Center: core.NewVec3(0, 4, 6),
		LookAt: core.NewVec3(0, 0, -6),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   55,
	}
	s.Background = core.Black

	floor := material.NewMatte(core.NewColor(0.9, 0.9, 0.9), 0.1, 0.9)
	orange := material.NewPhong(core.NewColor(1, 0.6, 0.2), 0.1, 0.9, 0.4, 30)
	white := material.NewPhong(core.White, 0.1, 0.9, 0.4, 30)

	s.Add(
		geometry.NewPlane(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0), floor),
		geometry.NewSphere(core.NewVec3(0, 0, -8), 2, orange),
		geometry.NewSphere(core.NewVec3(-3, -1, -4), 1, white),
		geometry.NewSphere(core.NewVec3(3.5, -1.25, -5), 0.75, white),
	)
	s.AddLight(
		lights.NewPointLight(core.NewVec3(-8, 10, 0), core.NewColor(0.6, 0.7, 1.0), 0.8),
		lights.NewPointLight(core.NewVec3(8, 6, -2), core.NewColor(1.0, 0.8, 0.6), 0.8),
	)

	return s
}
