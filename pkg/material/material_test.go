package material

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestMaterial_Validate(t *testing.T) {
	tests := []struct {
		name      string
		material  *Material
		expectErr bool
	}{
		{"matte", NewMatte(core.Red, 0.1, 0.9), false},
		{"phong", NewPhong(core.White, 0.1, 0.7, 0.3, 50), false},
		{"mirror", NewMirror(1.0), false},
		{"glass", NewGlass(1.5), false},
		{"negative kd", &Material{Kd: -0.1}, true},
		{"negative color", &Material{Color: core.NewColor(-1, 0, 0)}, true},
		{"nan ks", &Material{Ks: math.NaN()}, true},
		{"refractive without index", &Material{Refractive: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.material.Validate()
			if tt.expectErr {
				if err == nil {
					t.Fatal("Expected validation error")
				}
				if !errors.Is(err, ErrInvalidMaterial) {
					t.Errorf("Expected ErrInvalidMaterial, got %v", err)
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestMaterial_IsTerminal(t *testing.T) {
	if !NewMatte(core.Red, 0.1, 0.9).IsTerminal() {
		t.Error("Matte material should be terminal")
	}
	if NewMirror(1).IsTerminal() {
		t.Error("Mirror should spawn reflection rays")
	}
	if NewGlass(1.5).IsTerminal() {
		t.Error("Glass should spawn secondary rays")
	}
}
