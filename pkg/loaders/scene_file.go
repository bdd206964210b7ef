package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var (
	// ErrUnresolvedReference is returned when a named color or material is not defined
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrUnknownPrimitive is returned for primitive types the loader does not know
	ErrUnknownPrimitive = errors.New("unknown primitive type")
)

// builtinColors can be referenced by name without being declared
var builtinColors = map[string]core.Color{
	"white": core.White,
	"black": core.Black,
	"red":   core.Red,
	"green": core.Green,
	"blue":  core.Blue,
}

// SceneFile is the parsed form of a JSON scene description. References
// between its parts are still by name; ResolveColor and the scene package
// turn it into a scene graph.
type SceneFile struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Width       int                     `json:"width"`
	Height      int                     `json:"height"`
	MaxDepth    *int                    `json:"maxDepth"`
	Background  *ColorRef               `json:"background"`
	Camera      *CameraSpec             `json:"camera"`
	Colors      map[string]Vector       `json:"colors"`
	Materials   map[string]MaterialSpec `json:"materials"`
	Lights      []LightSpec             `json:"lights"`
	Primitives  []PrimitiveSpec         `json:"primitives"`
}

// CameraSpec describes the camera. Omitted fields keep their defaults.
type CameraSpec struct {
	Center *Vector  `json:"center"`
	LookAt *Vector  `json:"lookAt"`
	Up     *Vector  `json:"up"`
	FOV    *float64 `json:"fov"`
}

// MaterialSpec holds the shading coefficients of a named material
type MaterialSpec struct {
	Color      ColorRef `json:"color"`
	Ka         float64  `json:"ka"`
	Kd         float64  `json:"kd"`
	Ks         float64  `json:"ks"`
	Exponent   float64  `json:"exponent"`
	Kr         float64  `json:"kr"`
	Kt         float64  `json:"kt"`
	IOR        float64  `json:"ior"`
	Reflective bool     `json:"reflective"`
	Refractive bool     `json:"refractive"`
}

// LightSpec describes a point light. Color defaults to white and intensity to 1.
type LightSpec struct {
	Position  Vector    `json:"position"`
	Color     *ColorRef `json:"color"`
	Intensity *float64  `json:"intensity"`
}

// PrimitiveSpec describes a sphere (center, radius) or a plane (point, normal)
type PrimitiveSpec struct {
	Type     string  `json:"type"`
	Center   *Vector `json:"center"`
	Radius   float64 `json:"radius"`
	Point    *Vector `json:"point"`
	Normal   *Vector `json:"normal"`
	Material string  `json:"material"`
}

// validate checks that the fields required by the primitive type are present
func (p PrimitiveSpec) validate() error {
	switch p.Type {
	case "sphere":
		if p.Center == nil {
			return fmt.Errorf("sphere requires a center")
		}
	case "plane":
		if p.Point == nil || p.Normal == nil {
			return fmt.Errorf("plane requires a point and a normal")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPrimitive, p.Type)
	}
	return nil
}

// Vector is a JSON [x, y, z] triple
type Vector [3]float64

// UnmarshalJSON requires exactly three numbers
func (v *Vector) UnmarshalJSON(data []byte) error {
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	if len(values) != 3 {
		return fmt.Errorf("expected 3 components, got %d", len(values))
	}
	copy(v[:], values)
	return nil
}

// Vec3 converts the triple to a vector
func (v Vector) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// Color converts the triple to a color
func (v Vector) Color() core.Color {
	return core.NewColor(v[0], v[1], v[2])
}

// ColorRef is either an inline [r, g, b] value or the name of a color
type ColorRef struct {
	RGB  *Vector
	Name string
}

// UnmarshalJSON accepts a string name or an [r, g, b] array
func (c *ColorRef) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		c.Name = name
		c.RGB = nil
		return nil
	}

	var rgb Vector
	if err := json.Unmarshal(data, &rgb); err != nil {
		return fmt.Errorf("color must be a name or [r, g, b]: %w", err)
	}
	c.RGB = &rgb
	c.Name = ""
	return nil
}

// ResolveColor returns the value of a color reference, looking names up in
// the file's colors table and then in the built-in colors
func (sf *SceneFile) ResolveColor(ref ColorRef) (core.Color, error) {
	if ref.RGB != nil {
		return ref.RGB.Color(), nil
	}
	if ref.Name == "" {
		return core.Color{}, fmt.Errorf("%w: empty color", ErrUnresolvedReference)
	}
	if value, ok := sf.Colors[ref.Name]; ok {
		return value.Color(), nil
	}
	if c, ok := builtinColors[strings.ToLower(ref.Name)]; ok {
		return c, nil
	}
	return core.Color{}, fmt.Errorf("%w: color %q", ErrUnresolvedReference, ref.Name)
}

// ParseSceneFile parses a JSON scene description from an io.Reader
func ParseSceneFile(reader io.Reader) (*SceneFile, error) {
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()

	var sf SceneFile
	if err := decoder.Decode(&sf); err != nil {
		return nil, fmt.Errorf("error parsing scene file: %w", err)
	}

	// Every material reference must exist before conversion starts
	for i, p := range sf.Primitives {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
		if _, ok := sf.Materials[p.Material]; !ok {
			return nil, fmt.Errorf("primitive %d: %w: material %q", i, ErrUnresolvedReference, p.Material)
		}
	}

	return &sf, nil
}

// LoadSceneFile loads and parses a JSON scene file
func LoadSceneFile(filename string) (*SceneFile, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	return ParseSceneFile(file)
}

// validateFilePath validates a file path for security issues
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	cleanPath := filepath.Clean(filename)
	if !strings.HasSuffix(strings.ToLower(cleanPath), ".json") {
		return fmt.Errorf("invalid file type: only .json files are allowed")
	}
	if len(cleanPath) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	return nil
}
