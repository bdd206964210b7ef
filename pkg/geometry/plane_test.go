package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPlane_Intersect(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 2, 0), testMaterial)

	tests := []struct {
		name      string
		ray       core.Ray
		expectHit bool
		expectedT float64
	}{
		{"straight down", core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), true, 2},
		{"from below", core.NewRay(core.NewVec3(0, -3, 0), core.NewVec3(0, 1, 0)), true, 2},
		{"oblique", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, -1, 0).Normalize()), true, math.Sqrt2},
		{"parallel", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)), false, 0},
		{"pointing away", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), false, 0},
		{"starting on plane", core.NewRay(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, ok := plane.Intersect(tt.ray)
			if ok != tt.expectHit {
				t.Fatalf("Expected hit=%t, got hit=%t (t=%f)", tt.expectHit, ok, dist)
			}
			if ok && math.Abs(dist-tt.expectedT) > 1e-12 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, dist)
			}
		})
	}
}

func TestPlane_NormalAt(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 5), testMaterial)
	normal := plane.NormalAt(core.NewVec3(3, 4, -10))
	if normal != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected normalized normal (0,0,1), got %v", normal)
	}
}

func TestPlane_Validate(t *testing.T) {
	if err := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), testMaterial).Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := NewPlane(core.NewVec3(0, 0, 0), core.Vec3{}, testMaterial).Validate(); !errors.Is(err, ErrInvalidPrimitive) {
		t.Errorf("Expected ErrInvalidPrimitive for zero normal, got %v", err)
	}
	if err := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), nil).Validate(); !errors.Is(err, ErrInvalidPrimitive) {
		t.Errorf("Expected ErrInvalidPrimitive for missing material, got %v", err)
	}

	// Struct literals skip the normalization done by NewPlane
	literal := &Plane{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 2, 0), Material: testMaterial}
	if err := literal.Validate(); !errors.Is(err, ErrInvalidPrimitive) {
		t.Errorf("Expected ErrInvalidPrimitive for non-unit normal, got %v", err)
	}
	if err := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), testMaterial).Validate(); err != nil {
		t.Errorf("Expected NewPlane to normalize the normal, got %v", err)
	}
}
