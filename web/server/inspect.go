package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Color        [3]float64             `json:"color"`    // Traced color of the pixel
	ColorHex     string                 `json:"colorHex"` // Same color as displayed
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit         bool
	Record      geometry.Hit
	Interaction geometry.SurfaceInteraction
	Color       core.Color
}

// toHex formats a color the way it appears in the rendered image
func toHex(c core.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", renderer.ToByte(c.R), renderer.ToByte(c.G), renderer.ToByte(c.B))
}

// extractMaterialInfo classifies a material and lists its coefficients
func extractMaterialInfo(mat *material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"color":    toHex(mat.Color),
		"ka":       mat.Ka,
		"kd":       mat.Kd,
		"ks":       mat.Ks,
		"exponent": mat.SpecularExponent,
	}
	if mat.Reflective {
		properties["kr"] = mat.Kr
	}
	if mat.Refractive {
		properties["kt"] = mat.Kt
		properties["refractiveIndex"] = mat.RefractiveIndex
	}

	switch {
	case mat.Refractive:
		return "dielectric", properties
	case mat.Reflective:
		return "reflective", properties
	case mat.Ks > 0:
		return "phong", properties
	default:
		return "matte", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(primitive geometry.Primitive) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := primitive.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64{geom.Center.X, geom.Center.Y, geom.Center.Z}
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = [3]float64{geom.Point.X, geom.Point.Y, geom.Point.Z}
		properties["normal"] = [3]float64{geom.Normal.X, geom.Normal.Y, geom.Normal.Z}
		return "plane", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts the primary ray through the center of a pixel and
// reports the first object hit along with the traced color
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	s := (float64(pixelX) + 0.5) / float64(sceneObj.Config.Width)
	t := (float64(pixelY) + 0.5) / float64(sceneObj.Config.Height)
	ray := sceneObj.GetCamera().GetRay(s, t)

	whitted := integrator.NewWhittedIntegrator(integrator.Config{
		MaxDepth: sceneObj.Config.MaxDepth,
		Bias:     integrator.DefaultConfig().Bias,
	})
	result := InspectResult{Color: whitted.RayColor(ray, sceneObj)}

	hit, isHit := sceneObj.Hit(ray)
	if !isHit {
		return result
	}

	result.Hit = true
	result.Record = hit
	result.Interaction = hit.Interaction(ray)
	return result
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		writeError(w, statusForSceneError(err), err.Error())
		return
	}

	if pixelX < 0 || pixelX >= sceneObj.Config.Width || pixelY < 0 || pixelY >= sceneObj.Config.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)

	response := InspectResponse{
		Hit:      result.Hit,
		Color:    [3]float64{result.Color.R, result.Color.G, result.Color.B},
		ColorHex: toHex(result.Color),
	}

	if result.Hit {
		si := result.Interaction
		materialType, materialProps := extractMaterialInfo(si.Material)
		geometryType, geometryProps := extractGeometryInfo(result.Record.Primitive)

		response.MaterialType = materialType
		response.GeometryType = geometryType
		response.Point = [3]float64{si.Point.X, si.Point.Y, si.Point.Z}
		response.Normal = [3]float64{si.Normal.X, si.Normal.Y, si.Normal.Z}
		response.Distance = result.Record.T
		response.FrontFace = si.FrontFace
		response.Properties = map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		}
	}

	writeJSON(w, http.StatusOK, response)
}
