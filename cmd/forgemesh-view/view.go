package main

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/forgemesh/pkg/viewer"
)

// sceneView shows a rendered scene. Drag to orbit, scroll to zoom.
type sceneView struct {
	widget.BaseWidget
	scene  *viewer.Scene
	raster *canvas.Raster
}

func newSceneView(scene *viewer.Scene) *sceneView {
	v := &sceneView{scene: scene}
	v.raster = canvas.NewRaster(func(w, h int) image.Image {
		return v.scene.Render(w, h)
	})
	v.ExtendBaseWidget(v)
	return v
}

func (v *sceneView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.raster)
}

func (v *sceneView) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

// Dragged orbits the camera
func (v *sceneView) Dragged(event *fyne.DragEvent) {
	v.scene.Camera.Orbit(float64(event.Dragged.DY)*0.01, float64(-event.Dragged.DX)*0.01)
	v.raster.Refresh()
}

func (v *sceneView) DragEnd() {}

// Scrolled zooms towards the target
func (v *sceneView) Scrolled(event *fyne.ScrollEvent) {
	v.scene.Camera.Zoom(float64(-event.Scrolled.DY) * 0.002)
	v.raster.Refresh()
}

// setScene replaces the scene keeping the widget
func (v *sceneView) setScene(scene *viewer.Scene) {
	v.scene = scene
	v.raster.Refresh()
}
