package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const tolerance = 1e-9

func colorsClose(a, b core.Color) bool {
	return math.Abs(a.R-b.R) < tolerance &&
		math.Abs(a.G-b.G) < tolerance &&
		math.Abs(a.B-b.B) < tolerance
}

func newIntegrator(maxDepth int) *WhittedIntegrator {
	config := DefaultConfig()
	config.MaxDepth = maxDepth
	return NewWhittedIntegrator(config)
}

// createMirrorTestScene places a mirror sphere ahead of the origin and a red
// sphere behind it, lit by a white light at the origin
func createMirrorTestScene(kr float64) *scene.Scene {
	s := scene.NewScene("mirror-test")
	red := material.NewMatte(core.Red, 0.25, 0.5)
	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, -10), 2, material.NewMirror(kr)),
		geometry.NewSphere(core.NewVec3(0, 0, 10), 2, red),
	)
	s.AddLight(lights.NewWhiteLight(core.NewVec3(0, 0, 0)))
	return s
}

func TestWhitted_MissReturnsBackground(t *testing.T) {
	s := scene.NewDefaultScene()
	s.Background = core.NewColor(0.1, 0.2, 0.3)
	integrator := newIntegrator(5)

	color := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), s)
	if color != s.Background {
		t.Errorf("Expected background %v, got %v", s.Background, color)
	}
}

func TestWhitted_SingleSphereDiffuseAndAmbient(t *testing.T) {
	s := scene.NewScene("single-sphere")
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -20), 5, material.NewMatte(core.Red, 0.1, 1.0)))
	s.AddLight(lights.NewWhiteLight(core.NewVec3(30, 30, -2)))

	color := newIntegrator(5).RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), s)

	// Hit at (0,0,-15) with normal +z; the light direction is (30,30,13)/|.|
	cosine := 13 / math.Sqrt(30*30+30*30+13*13)
	expected := core.NewColor(0.1+cosine, 0, 0)
	if !colorsClose(color, expected) {
		t.Errorf("Expected %v, got %v", expected, color)
	}
	if color.R <= 0.1 {
		t.Errorf("Expected lit red above ambient 0.1, got %v", color.R)
	}
}

func TestWhitted_DefaultSceneCenterIsShadowed(t *testing.T) {
	s := scene.NewDefaultScene()

	// The small sphere at (2,1,-15) sits between the center hit and the light
	color := newIntegrator(5).RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), s)
	expected := core.NewColor(0.1, 0, 0)
	if !colorsClose(color, expected) {
		t.Errorf("Expected ambient-only %v, got %v", expected, color)
	}
}

func TestWhitted_SpecularWithZeroExponent(t *testing.T) {
	shiny := &material.Material{Ks: 1, RefractiveIndex: 1}

	tests := []struct {
		name     string
		light    core.Vec3
		expected core.Color
	}{
		// Mirrored light direction points away from the viewer
		{"highlight facing away", core.NewVec3(-1, 1, 0), core.Black},
		{"highlight facing viewer", core.NewVec3(3, 1, 0), core.White},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scene.NewScene("specular-test")
			s.Add(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), shiny))
			s.AddLight(lights.NewWhiteLight(tt.light))

			// Hits the plane at (1,0,0)
			ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, -1, 0).Normalize())
			color := newIntegrator(0).RayColor(ray, s)
			if !colorsClose(color, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
		})
	}
}

func TestWhitted_MirrorHandComputed(t *testing.T) {
	tests := []struct {
		name     string
		kr       float64
		expected core.Color
	}{
		// Red sphere: ambient 0.25 + diffuse 0.5, seen through the mirror
		{"full mirror", 1.0, core.NewColor(0.75, 0, 0)},
		{"half mirror", 0.5, core.NewColor(0.375, 0, 0)},
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color := newIntegrator(5).RayColor(ray, createMirrorTestScene(tt.kr))
			if !colorsClose(color, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
		})
	}
}

func TestWhitted_MirrorAtDepthZero(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	color := newIntegrator(0).RayColor(ray, createMirrorTestScene(1.0))
	if color != core.Black {
		t.Errorf("Expected a black mirror with no bounces left, got %v", color)
	}
}

func TestWhitted_ShadowedSphereIsAmbientOnly(t *testing.T) {
	target := material.NewMatte(core.Red, 0.2, 0.8)
	occluder := material.NewMatte(core.Blue, 0.1, 0.9)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	build := func(withOccluder bool) *scene.Scene {
		s := scene.NewScene("shadow-test")
		s.Add(geometry.NewSphere(core.NewVec3(0, 0, -20), 5, target))
		if withOccluder {
			// Sits halfway between the hit point (0,0,-15) and the light
			s.Add(geometry.NewSphere(core.NewVec3(5, 0, -10), 1, occluder))
		}
		s.AddLight(lights.NewWhiteLight(core.NewVec3(10, 0, -5)))
		return s
	}

	shadowed := newIntegrator(5).RayColor(ray, build(true))
	ambient := core.Red.Multiply(0.2)
	if !colorsClose(shadowed, ambient) {
		t.Errorf("Expected ambient-only %v, got %v", ambient, shadowed)
	}

	lit := newIntegrator(5).RayColor(ray, build(false))
	if lit.R <= ambient.R {
		t.Errorf("Expected the unoccluded sphere to be brighter than ambient, got %v", lit)
	}
}

func TestWhitted_LightBehindSurface(t *testing.T) {
	s := scene.NewScene("backlit")
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -20), 5, material.NewPhong(core.Green, 0.3, 0.7, 0.5, 20)))
	s.AddLight(lights.NewWhiteLight(core.NewVec3(0, 0, -40)))

	color := newIntegrator(5).RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), s)
	expected := core.Green.Multiply(0.3)
	if !colorsClose(color, expected) {
		t.Errorf("Expected ambient-only %v, got %v", expected, color)
	}
}

func TestWhitted_NonReflectiveDepthIndependent(t *testing.T) {
	s := scene.NewDefaultScene()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0.05, 0.02, -1).Normalize())

	shallow := newIntegrator(1).RayColor(ray, s)
	deep := newIntegrator(10).RayColor(ray, s)
	if shallow != deep {
		t.Errorf("Expected identical colors for depth 1 and 10, got %v and %v", shallow, deep)
	}
}

func TestWhitted_RefractionThroughSphere(t *testing.T) {
	// Transmissive only: no reflection term, no local light
	clear := &material.Material{Kt: 1, RefractiveIndex: 1.5, Refractive: true}

	s := scene.NewScene("refraction-test")
	s.Background = core.NewColor(0.2, 0.4, 0.6)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -5), 1, clear))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	tests := []struct {
		name     string
		maxDepth int
		expected core.Color
	}{
		// Entering and leaving at normal incidence each transmit 1 - 0.04
		{"passes through", 2, s.Background.Multiply(0.96 * 0.96)},
		{"budget ends inside", 1, core.Black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color := newIntegrator(tt.maxDepth).RayColor(ray, s)
			if !colorsClose(color, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
		})
	}
}

func TestWhitted_TotalInternalReflection(t *testing.T) {
	// A ray inside the sphere meets the surface at sin = 0.9, past the
	// critical angle for ior 1.5, and keeps that angle on every bounce
	ray := core.NewRay(core.NewVec3(0, 0.9, 0), core.NewVec3(1, 0, 0))

	tests := []struct {
		name     string
		kt       float64
		expected float64
	}{
		// c(d) = 0.1 + kt*c(d-1), c(0) = 0.1
		{"lossless", 1.0, 0.4},
		{"half transmission", 0.5, 0.1875},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mat := &material.Material{Color: core.White, Ka: 0.1, Kt: tt.kt, RefractiveIndex: 1.5, Refractive: true}
			s := scene.NewScene("tir-test")
			s.Background = core.NewColor(1, 0, 1)
			s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mat))

			color := newIntegrator(3).RayColor(ray, s)
			expected := core.NewColor(tt.expected, tt.expected, tt.expected)
			if !colorsClose(color, expected) {
				t.Errorf("Expected %v, got %v", expected, color)
			}
		})
	}
}

func TestWhitted_GlassStaysInRange(t *testing.T) {
	s := scene.NewGlassScene()
	if err := s.Preprocess(); err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	camera := s.GetCamera()
	integrator := newIntegrator(s.Config.MaxDepth)

	for _, st := range [][2]float64{{0.5, 0.5}, {0.45, 0.55}, {0.52, 0.4}, {0.1, 0.9}} {
		color := integrator.RayColor(camera.GetRay(st[0], st[1]), s)
		for _, c := range []float64{color.R, color.G, color.B} {
			if c < 0 || c > 1 || math.IsNaN(c) {
				t.Errorf("Expected channels in [0,1] at %v, got %v", st, color)
			}
		}
	}
}
