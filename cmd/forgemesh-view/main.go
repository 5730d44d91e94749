// Command forgemesh-view shows a model with every face coloured by the kind
// of primitive the decomposition turned it into.
package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/philipparndt/forgemesh/internal/config"
	"github.com/philipparndt/forgemesh/internal/logger"
	"github.com/philipparndt/forgemesh/internal/pipeline"
	"github.com/philipparndt/forgemesh/pkg/analysis"
	"github.com/philipparndt/forgemesh/pkg/forge"
	"github.com/philipparndt/forgemesh/pkg/viewer"
	"github.com/philipparndt/forgemesh/version"
)

type App struct {
	window   fyne.Window
	pipeline *pipeline.Pipeline
	result   *pipeline.Result
	view     *sceneView
	info     *widget.Label
	legend   map[forge.FaceRole]*widget.Label
}

func main() {
	var flags config.Flags
	flags.Register(pflag.CommandLine)
	pflag.Parse()

	cfg, err := flags.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	a := app.New()
	w := a.NewWindow("forgemesh " + version.GetVersion())

	appInstance := &App{
		window:   w,
		pipeline: pipeline.New(cfg, logger.Named("pipeline")),
	}

	if pflag.NArg() > 0 {
		appInstance.loadFile(pflag.Arg(0))
	} else {
		appInstance.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("forgemesh viewer")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	openButton := widget.NewButton("Open Model", a.showFileDialog)

	a.window.SetContent(container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(widget.NewLabel("Open an OBJ, STL or OpenSCAD model to see how it decomposes")),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	))
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

func (a *App) loadFile(filename string) {
	result, err := a.pipeline.Run(context.Background(), filename, pipeline.Selection{})
	if err != nil {
		logger.Error("failed to load model", zap.String("model", filename), zap.Error(err))
		dialog.ShowError(err, a.window)
		return
	}

	a.result = result
	scene := viewer.NewScene(result.Mesh, result.Roles)
	scene.Legend = false

	if a.view == nil {
		a.view = newSceneView(scene)
		a.setupMainUI()
	} else {
		a.view.setScene(scene)
	}
	a.updateInfo()
}

func (a *App) setupMainUI() {
	a.info = widget.NewLabel("")
	a.legend = make(map[forge.FaceRole]*widget.Label)

	palette := viewer.DefaultPalette()
	legend := container.NewVBox()
	for _, role := range []forge.FaceRole{forge.RoleCuboid, forge.RolePlate, forge.RolePolygon} {
		swatch := canvas.NewRectangle(palette[role])
		swatch.SetMinSize(fyne.NewSize(14, 14))
		a.legend[role] = widget.NewLabel("")
		legend.Add(container.NewHBox(container.NewCenter(swatch), a.legend[role]))
	}

	edgesCheck := widget.NewCheck("Show edges", func(checked bool) {
		a.view.scene.Edges = checked
		a.view.raster.Refresh()
	})
	edgesCheck.SetChecked(true)

	resetButton := widget.NewButton("Reset View", func() {
		a.view.scene.Camera = viewer.NewCamera(a.result.Mesh.BoundingBox())
		a.view.raster.Refresh()
	})

	instructions := widget.NewLabel("Drag to orbit the model\nScroll to zoom")
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Model:"),
		widget.NewSeparator(),
		a.info,
		widget.NewSeparator(),
		widget.NewLabel("Faces by primitive:"),
		legend,
		widget.NewSeparator(),
		edgesCheck,
		instructions,
		widget.NewSeparator(),
		widget.NewButton("Open Model", a.showFileDialog),
		resetButton,
		widget.NewButton("Save PNG", a.showSaveDialog),
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(280, 0))

	a.window.SetContent(container.NewBorder(nil, nil, nil, infoScroll, a.view))
}

func (a *App) updateInfo() {
	stats := a.result.Stats
	dims := analysis.AnalyzeMesh(a.result.Mesh).Dimensions

	a.info.SetText(fmt.Sprintf(
		"%s\nFaces: %d\nQuads: %d\nPrimitives: %d\nEstimated build: %s\n\nDimensions:\n  X: %s\n  Y: %s\n  Z: %s",
		a.result.Mesh.Name,
		stats.Faces,
		stats.Quads,
		len(a.result.Primitives),
		analysis.FormatDuration(analysis.EstimateBuildTime(len(a.result.Primitives))),
		analysis.FormatMeasurement(dims.X, ""),
		analysis.FormatMeasurement(dims.Y, ""),
		analysis.FormatMeasurement(dims.Z, ""),
	))

	counts := a.view.scene.Counts()
	for role, label := range a.legend {
		label.SetText(fmt.Sprintf("%s: %d", role, counts[role]))
	}
}

func (a *App) showSaveDialog() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		size := a.view.Size()
		if err := a.view.scene.WritePNG(writer, int(size.Width), int(size.Height)); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		logger.Info("saved snapshot", zap.String("path", writer.URI().Path()))
	}, a.window)
}
