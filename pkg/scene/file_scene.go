package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewFileScene creates a scene from a JSON scene file. The returned scene
// has already been preprocessed.
func NewFileScene(filepath string) (*Scene, error) {
	sf, err := loaders.LoadSceneFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene file: %w", err)
	}

	scene, err := FromSceneFile(sf)
	if err != nil {
		return nil, err
	}
	if err := scene.Preprocess(); err != nil {
		return nil, fmt.Errorf("invalid scene %s: %w", filepath, err)
	}
	return scene, nil
}

// FromSceneFile resolves the named references of a parsed scene file into
// a scene. Primitives that name the same material share one instance.
func FromSceneFile(sf *loaders.SceneFile) (*Scene, error) {
	scene := NewScene(sf.Name)

	if sf.Width > 0 {
		scene.Config.Width = sf.Width
	}
	if sf.Height > 0 {
		scene.Config.Height = sf.Height
	}
	if sf.MaxDepth != nil {
		scene.Config.MaxDepth = *sf.MaxDepth
	}

	if sf.Background != nil {
		background, err := sf.ResolveColor(*sf.Background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		scene.Background = background
	}

	scene.CameraConfig = convertCamera(sf.Camera)

	materials, err := convertMaterials(sf)
	if err != nil {
		return nil, err
	}

	for i, spec := range sf.Lights {
		light, err := convertLight(sf, spec)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		scene.AddLight(light)
	}

	for i, spec := range sf.Primitives {
		mat, ok := materials[spec.Material]
		if !ok {
			return nil, fmt.Errorf("primitive %d: %w: material %q", i, loaders.ErrUnresolvedReference, spec.Material)
		}
		primitive, err := convertPrimitive(spec, mat)
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
		scene.Add(primitive)
	}

	return scene, nil
}

// convertCamera fills omitted camera fields with defaults. The aspect ratio
// is left to follow the image size.
func convertCamera(spec *loaders.CameraSpec) geometry.CameraConfig {
	config := geometry.DefaultCameraConfig()
	config.AspectRatio = 0
	if spec == nil {
		return config
	}

	if spec.Center != nil {
		config.Center = spec.Center.Vec3()
	}
	if spec.LookAt != nil {
		config.LookAt = spec.LookAt.Vec3()
	}
	if spec.Up != nil {
		config.Up = spec.Up.Vec3()
	}
	if spec.FOV != nil {
		config.VFov = *spec.FOV
	}
	return config
}

// convertMaterials builds one material per named entry
func convertMaterials(sf *loaders.SceneFile) (map[string]*material.Material, error) {
	// Sorted so that the first reported error does not depend on map order
	names := make([]string, 0, len(sf.Materials))
	for name := range sf.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	materials := make(map[string]*material.Material, len(names))
	for _, name := range names {
		spec := sf.Materials[name]

		color, err := sf.ResolveColor(spec.Color)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}

		ior := spec.IOR
		if ior == 0 && !spec.Refractive {
			ior = 1
		}

		materials[name] = &material.Material{
			Color:            color,
			Ka:               spec.Ka,
			Kd:               spec.Kd,
			Ks:               spec.Ks,
			SpecularExponent: spec.Exponent,
			Kr:               spec.Kr,
			Kt:               spec.Kt,
			RefractiveIndex:  ior,
			Reflective:       spec.Reflective,
			Refractive:       spec.Refractive,
		}
	}
	return materials, nil
}

func convertLight(sf *loaders.SceneFile, spec loaders.LightSpec) (lights.Light, error) {
	color := core.White
	if spec.Color != nil {
		c, err := sf.ResolveColor(*spec.Color)
		if err != nil {
			return nil, err
		}
		color = c
	}

	intensity := 1.0
	if spec.Intensity != nil {
		intensity = *spec.Intensity
	}

	return lights.NewPointLight(spec.Position.Vec3(), color, intensity), nil
}

func convertPrimitive(spec loaders.PrimitiveSpec, mat *material.Material) (geometry.Primitive, error) {
	switch spec.Type {
	case "sphere":
		if spec.Center == nil {
			return nil, fmt.Errorf("%w: sphere requires a center", geometry.ErrInvalidPrimitive)
		}
		return geometry.NewSphere(spec.Center.Vec3(), spec.Radius, mat), nil
	case "plane":
		if spec.Point == nil || spec.Normal == nil {
			return nil, fmt.Errorf("%w: plane requires a point and a normal", geometry.ErrInvalidPrimitive)
		}
		return geometry.NewPlane(spec.Point.Vec3(), spec.Normal.Vec3(), mat), nil
	default:
		return nil, fmt.Errorf("%w: %q", loaders.ErrUnknownPrimitive, spec.Type)
	}
}
