package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewGlassScene creates a glass sphere in front of a row of colored spheres
func NewGlassScene() *Scene {
	s := NewScene("glass")
	s.Config = RenderConfig{Width: 800, Height: 500, MaxDepth: 6}
	s.CameraConfig = geometry.CameraConfig{
		Center: core.NewVec3(0, 1, 3),
		LookAt: core.NewVec3(0, 0, -6),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   60,
	}
	s.Background = core.NewColor(0.6, 0.75, 0.9)

	glass := material.NewGlass(1.5)
	floor := material.NewMatte(core.NewColor(0.7, 0.7, 0.6), 0.15, 0.8)

	s.Add(
		geometry.NewPlane(core.NewVec3(0, -1.5, 0), core.NewVec3(0, 1, 0), floor),
		geometry.NewSphere(core.NewVec3(0, 0, -4), 1.5, glass),
	)

	colors := []core.Color{
		core.NewColor(0.9, 0.2, 0.2),
		core.NewColor(0.9, 0.7, 0.1),
		core.NewColor(0.2, 0.8, 0.3),
		core.NewColor(0.2, 0.4, 0.9),
		core.NewColor(0.7, 0.2, 0.8),
	}
	for i, c := range colors {
		x := float64(i-len(colors)/2) * 2.2
		s.Add(geometry.NewSphere(core.NewVec3(x, -0.5, -10), 1, material.NewPhong(c, 0.1, 0.8, 0.3, 40)))
	}

	s.AddLight(lights.NewWhiteLight(core.NewVec3(4, 8, 2)))

	return s
}
