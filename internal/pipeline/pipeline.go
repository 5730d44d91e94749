// Package pipeline runs a model file through loading, decomposition,
// selection and output. It is shared by the convert, primitives, info and
// watch commands.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/philipparndt/forgemesh/internal/config"
	"github.com/philipparndt/forgemesh/pkg/forge"
	"github.com/philipparndt/forgemesh/pkg/macro"
	"github.com/philipparndt/forgemesh/pkg/mesh"
	"github.com/philipparndt/forgemesh/pkg/obj"
	"github.com/philipparndt/forgemesh/pkg/openscad"
	"github.com/philipparndt/forgemesh/pkg/stl"
	"github.com/philipparndt/forgemesh/pkg/viewer"
)

// Selection picks part of the primitive list for output
type Selection struct {
	// Type keeps only primitives of this type; empty keeps all
	Type   forge.PrimitiveType
	Offset int
	Limit  int
}

// Apply filters by type, then takes the offset/limit window
func (s Selection) Apply(primitives []forge.Primitive) []forge.Primitive {
	if s.Type != "" {
		primitives = forge.Filter(primitives, s.Type)
	}
	return forge.Chunk(primitives, s.Offset, s.Limit)
}

// Result is the outcome of one run
type Result struct {
	Mesh       *mesh.Mesh
	Primitives []forge.Primitive
	Selected   []forge.Primitive
	Stats      forge.Stats
	// Roles holds the kind of primitive each mesh face became
	Roles []forge.FaceRole
}

// Pipeline converts model files using one configuration
type Pipeline struct {
	cfg *config.Config
	log *zap.Logger
}

// New creates a pipeline. A nil logger disables logging.
func New(cfg *config.Config, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, log: log}
}

// Run loads the model, decomposes it and applies the selection
func (p *Pipeline) Run(ctx context.Context, path string, sel Selection) (*Result, error) {
	m, err := p.LoadMesh(ctx, path)
	if err != nil {
		return nil, err
	}

	engine := forge.NewEngine(p.cfg.ForgeOptions(), p.log.Named("forge"))
	d, err := engine.Run(m.Faces)
	if err != nil {
		return nil, fmt.Errorf("failed to decompose %s: %w", path, err)
	}
	stats := d.Stats

	result := &Result{
		Mesh:       m,
		Primitives: d.Primitives,
		Selected:   sel.Apply(d.Primitives),
		Stats:      stats,
		Roles:      d.Roles,
	}

	p.log.Info("decomposed model",
		zap.String("model", path),
		zap.Int("faces", stats.Faces),
		zap.Int("cuboids", stats.Cuboids),
		zap.Int("plates", stats.Plates),
		zap.Int("polygons", stats.Polygons),
		zap.Int("selected", len(result.Selected)))
	return result, nil
}

// LoadMesh reads a model by its extension: .obj, .stl, or .scad rendered
// through OpenSCAD
func (p *Pipeline) LoadMesh(ctx context.Context, path string) (*mesh.Mesh, error) {
	normals := p.cfg.Normals()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return obj.Parse(path, obj.Options{Normals: normals})

	case ".stl":
		return stl.Parse(path, stl.Options{Normals: normals})

	case ".scad":
		p.log.Debug("rendering OpenSCAD model", zap.String("model", path))
		stlPath, cleanup, err := p.renderer(path).RenderToTemp(ctx, filepath.Base(path))
		if err != nil {
			return nil, err
		}
		defer cleanup()

		m, err := stl.Parse(stlPath, stl.Options{Normals: normals})
		if err != nil {
			return nil, err
		}
		m.Name = strings.TrimSuffix(filepath.Base(path), ext)
		return m, nil

	default:
		return nil, fmt.Errorf("unsupported model format %q (expected .obj, .stl or .scad)", ext)
	}
}

func (p *Pipeline) renderer(path string) *openscad.Renderer {
	return openscad.NewRenderer(filepath.Dir(path)).WithBinary(p.cfg.Conversion.OpenSCADBinary)
}

// WatchFiles returns the files whose change should trigger a rerun: the
// model and, for OpenSCAD models, everything it uses or includes
func (p *Pipeline) WatchFiles(path string) ([]string, error) {
	if strings.ToLower(filepath.Ext(path)) != ".scad" {
		return []string{path}, nil
	}
	return p.renderer(path).ResolveDependencies(filepath.Base(path))
}

// WriteMacro writes the AutoHotkey macro for primitives to path
func (p *Pipeline) WriteMacro(path string, primitives []forge.Primitive) error {
	emitter := macro.NewEmitter(p.cfg.MacroOptions(), p.log.Named("macro"))
	return writeFile(path, func(f *os.File) error {
		return emitter.Emit(f, primitives)
	})
}

// WritePreview writes an OpenSCAD preview of primitives to path
func (p *Pipeline) WritePreview(path string, primitives []forge.Primitive) error {
	preview := openscad.NewPreview(p.cfg.ForgeOptions().Mapper)
	return writeFile(path, func(f *os.File) error {
		return preview.Write(f, primitives)
	})
}

// Snapshot size in pixels
const (
	SnapshotWidth  = 960
	SnapshotHeight = 720
)

// WriteSnapshot renders the mesh of result, faces coloured by the primitive
// they became, to a PNG file at path
func (p *Pipeline) WriteSnapshot(path string, result *Result) error {
	scene := viewer.NewScene(result.Mesh, result.Roles)
	return writeFile(path, func(f *os.File) error {
		return scene.WritePNG(f, SnapshotWidth, SnapshotHeight)
	})
}

// writeFile writes to a temporary file next to path and renames it into
// place, so a watcher on the output never sees a partial file
func writeFile(path string, write func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
