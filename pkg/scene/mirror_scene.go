package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewMirrorScene creates a mirror sphere surrounded by colored Phong
// spheres on a slightly reflective floor
func NewMirrorScene() *Scene {
	s := NewScene("mirror")
	s.Config = RenderConfig{Width: 800, Height: 500, MaxDepth: 5}
	s.CameraConfig = geometry.CameraConfig{
		Center: core.NewVec3(0, 1.5, 4),
		LookAt: core.NewVec3(0, 0.5, -4),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   60,
	}
	s.Background = core.NewColor(0.05, 0.05, 0.1)

	floor := material.NewPolishedMetal(core.NewColor(0.8, 0.8, 0.8), 0.7, 0.1, 10, 0.2)
	mirror := material.NewMirror(0.9)
	red := material.NewPhong(core.NewColor(0.9, 0.1, 0.1), 0.1, 0.8, 0.5, 50)
	green := material.NewPhong(core.NewColor(0.1, 0.8, 0.2), 0.1, 0.8, 0.5, 50)
	blue := material.NewPhong(core.NewColor(0.1, 0.2, 0.9), 0.1, 0.8, 0.5, 50)

	s.Add(
		geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), floor),
		geometry.NewSphere(core.NewVec3(0, 0.5, -4), 1.5, mirror),
		geometry.NewSphere(core.NewVec3(-2.5, 0, -2.5), 1, red),
		geometry.NewSphere(core.NewVec3(2.5, 0, -2.5), 1, green),
		geometry.NewSphere(core.NewVec3(0, -0.5, -1), 0.5, blue),
	)
	s.AddLight(
		lights.NewWhiteLight(core.NewVec3(-5, 8, 2)),
		lights.NewPointLight(core.NewVec3(6, 4, -1), core.NewColor(1, 0.9, 0.7), 0.6),
	)

	return s
}
