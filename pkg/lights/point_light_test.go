package lights

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPointLight_Sample(t *testing.T) {
	light := NewPointLight(core.NewVec3(30, 30, -2), core.NewColor(1, 0.5, 0.25), 2)

	point := core.NewVec3(0, 0, -15)
	sample := light.Sample(point)

	expectedDistance := core.NewVec3(30, 30, 13).Length()
	if math.Abs(sample.Distance-expectedDistance) > 1e-12 {
		t.Errorf("Expected distance %f, got %f", expectedDistance, sample.Distance)
	}

	if math.Abs(sample.Direction.Length()-1) > 1e-12 {
		t.Errorf("Expected unit direction, got length %f", sample.Direction.Length())
	}

	// Walking the sampled direction for the sampled distance lands on the light
	reached := point.Add(sample.Direction.Multiply(sample.Distance))
	if reached.Subtract(light.Position).Length() > 1e-9 {
		t.Errorf("Expected to reach light at %v, got %v", light.Position, reached)
	}

	if sample.Radiance != core.NewColor(2, 1, 0.5) {
		t.Errorf("Expected radiance scaled by intensity, got %v", sample.Radiance)
	}
}

func TestPointLight_SampleAtLightPosition(t *testing.T) {
	light := NewWhiteLight(core.NewVec3(1, 2, 3))
	sample := light.Sample(core.NewVec3(1, 2, 3))

	if sample.Radiance != core.Black {
		t.Errorf("Expected no radiance at the light position, got %v", sample.Radiance)
	}
	if math.IsNaN(sample.Direction.X) {
		t.Error("Direction must not be NaN")
	}
}

func TestPointLight_Validate(t *testing.T) {
	tests := []struct {
		name      string
		light     *PointLight
		expectErr bool
	}{
		{"white", NewWhiteLight(core.NewVec3(0, 0, 0)), false},
		{"dark", NewPointLight(core.NewVec3(0, 0, 0), core.Black, 0), false},
		{"negative intensity", NewPointLight(core.NewVec3(0, 0, 0), core.White, -1), true},
		{"negative color", NewPointLight(core.NewVec3(0, 0, 0), core.NewColor(0, -1, 0), 1), true},
		{"infinite intensity", NewPointLight(core.NewVec3(0, 0, 0), core.White, math.Inf(1)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.light.Validate()
			if tt.expectErr && !errors.Is(err, ErrInvalidLight) {
				t.Errorf("Expected ErrInvalidLight, got %v", err)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
