package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

const testSceneJSON = `{
	"name": "Test Scene",
	"width": 320,
	"height": 200,
	"maxDepth": 3,
	"background": [0, 0.5, 0.5],
	"camera": {"center": [0, 0, 0], "lookAt": [0, 0, -1], "up": [0, 1, 0], "fov": 90},
	"colors": {"teal": [0, 0.5, 0.5]},
	"materials": {
		"matte": {"color": "red", "ka": 0.1, "kd": 1},
		"shiny": {"color": [0.2, 0.3, 0.4], "ka": 0.1, "kd": 0.6, "ks": 0.4, "exponent": 32, "kr": 0.5, "reflective": true},
		"tinted": {"color": "teal", "kt": 1, "ior": 1.5, "refractive": true}
	},
	"lights": [{"position": [30, 30, -2]}, {"position": [0, 10, 0], "color": "blue", "intensity": 0.5}],
	"primitives": [
		{"type": "sphere", "center": [0, 0, -20], "radius": 5, "material": "matte"},
		{"type": "plane", "point": [0, -5, 0], "normal": [0, 1, 0], "material": "shiny"}
	]
}`

func TestParseSceneFile(t *testing.T) {
	sf, err := ParseSceneFile(strings.NewReader(testSceneJSON))
	if err != nil {
		t.Fatalf("ParseSceneFile failed: %v", err)
	}

	if sf.Name != "Test Scene" || sf.Width != 320 || sf.Height != 200 {
		t.Errorf("Unexpected header: %q %dx%d", sf.Name, sf.Width, sf.Height)
	}
	if sf.MaxDepth == nil || *sf.MaxDepth != 3 {
		t.Errorf("Expected max depth 3, got %v", sf.MaxDepth)
	}
	if sf.Camera == nil || sf.Camera.FOV == nil || *sf.Camera.FOV != 90 {
		t.Error("Expected camera with fov 90")
	}
	if len(sf.Materials) != 3 || len(sf.Lights) != 2 || len(sf.Primitives) != 2 {
		t.Errorf("Expected 3 materials, 2 lights, 2 primitives; got %d, %d, %d",
			len(sf.Materials), len(sf.Lights), len(sf.Primitives))
	}
	if sf.Lights[0].Color != nil || sf.Lights[0].Intensity != nil {
		t.Error("Expected omitted light color and intensity to stay nil")
	}
	if sf.Primitives[1].Normal.Vec3() != core.NewVec3(0, 1, 0) {
		t.Errorf("Unexpected plane normal %v", *sf.Primitives[1].Normal)
	}
}

func TestSceneFile_ResolveColor(t *testing.T) {
	sf, err := ParseSceneFile(strings.NewReader(testSceneJSON))
	if err != nil {
		t.Fatalf("ParseSceneFile failed: %v", err)
	}

	tests := []struct {
		name     string
		ref      ColorRef
		expected core.Color
		wantErr  bool
	}{
		{"inline", ColorRef{RGB: &Vector{0.2, 0.3, 0.4}}, core.NewColor(0.2, 0.3, 0.4), false},
		{"declared", ColorRef{Name: "teal"}, core.NewColor(0, 0.5, 0.5), false},
		{"built-in", ColorRef{Name: "red"}, core.Red, false},
		{"built-in any case", ColorRef{Name: "White"}, core.White, false},
		{"undeclared", ColorRef{Name: "mauve"}, core.Color{}, true},
		{"empty", ColorRef{}, core.Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := sf.ResolveColor(tt.ref)
			if tt.wantErr {
				if !errors.Is(err, ErrUnresolvedReference) {
					t.Errorf("Expected ErrUnresolvedReference, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if c != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, c)
			}
		})
	}
}

func TestParseSceneFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "unknown material",
			input:   `{"materials": {}, "primitives": [{"type": "sphere", "center": [0,0,0], "radius": 1, "material": "gold"}]}`,
			wantErr: ErrUnresolvedReference,
		},
		{
			name:    "unknown primitive type",
			input:   `{"materials": {"m": {"color": "red"}}, "primitives": [{"type": "torus", "material": "m"}]}`,
			wantErr: ErrUnknownPrimitive,
		},
		{
			name:  "sphere without center",
			input: `{"materials": {"m": {"color": "red"}}, "primitives": [{"type": "sphere", "radius": 1, "material": "m"}]}`,
		},
		{
			name:  "short vector",
			input: `{"lights": [{"position": [1, 2]}]}`,
		},
		{
			name:  "bad color",
			input: `{"background": {"r": 1}}`,
		},
		{
			name:  "unknown field",
			input: `{"samples": 100}`,
		},
		{
			name:  "malformed json",
			input: `{"width": `,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSceneFile(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadSceneFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.json")
	if err := os.WriteFile(path, []byte(testSceneJSON), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	sf, err := LoadSceneFile(path)
	if err != nil {
		t.Fatalf("LoadSceneFile failed: %v", err)
	}
	if sf.Name != "Test Scene" {
		t.Errorf("Expected name 'Test Scene', got %q", sf.Name)
	}

	invalid := []string{
		"",
		filepath.Join(dir, "scene.pbrt"),
		filepath.Join(dir, "missing.json"),
		"scene\x00.json",
	}
	for _, p := range invalid {
		if _, err := LoadSceneFile(p); err == nil {
			t.Errorf("Expected error for path %q", p)
		}
	}
}
