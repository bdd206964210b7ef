package renderer

import (
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	width      int
	height     int
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(scene *scene.Scene, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      scene,
		integrator: integratorInst,
		width:      scene.Config.Width,
		height:     scene.Config.Height,
	}
}

// RenderTileBounds traces one ray through the center of every pixel within
// bounds and writes the results into the frame. Tiles never overlap, so
// concurrent calls with different bounds are safe.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, frame *Frame) TileStats {
	camera := tr.scene.GetCamera()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			s := (float64(x) + 0.5) / float64(tr.width)
			t := (float64(y) + 0.5) / float64(tr.height)

			ray := camera.GetRay(s, t)
			frame.Set(x, y, tr.integrator.RayColor(ray, tr.scene))
		}
	}

	return TileStats{Pixels: bounds.Dx() * bounds.Dy()}
}
