package pipeline

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/forgemesh/internal/config"
	"github.com/philipparndt/forgemesh/pkg/forge"
	"github.com/philipparndt/forgemesh/pkg/geometry"
)

func TestRunCube(t *testing.T) {
	p := New(config.Default(), nil)

	result, err := p.Run(context.Background(), filepath.Join("testdata", "cube.obj"), Selection{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Stats.Faces != 6 || result.Stats.Cuboids != 1 {
		t.Errorf("Stats failed: expected 6 faces and 1 cuboid, got %+v", result.Stats)
	}
	for i, role := range result.Roles {
		if role != forge.RoleCuboid {
			t.Errorf("Roles failed: expected face %d in the cuboid, got %v", i, role)
		}
	}
	if len(result.Selected) != 1 {
		t.Fatalf("Selected failed: expected 1 primitive, got %d", len(result.Selected))
	}
	p0 := result.Selected[0]
	if p0.Type != forge.Cube || p0.Position != geometry.NewVector3(0, 0, 603) || p0.Size != geometry.NewVector3(3, 3, 3) {
		t.Errorf("primitive failed: got %+v", p0)
	}
}

func TestRunScale(t *testing.T) {
	cfg := config.Default()
	cfg.Conversion.Scale = 10
	p := New(cfg, nil)

	result, err := p.Run(context.Background(), filepath.Join("testdata", "cube.obj"), Selection{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Selected[0].Size != geometry.NewVector3(10, 10, 10) {
		t.Errorf("Size failed: expected (10, 10, 10), got %v", result.Selected[0].Size)
	}
}

func TestRunUnsupportedFormat(t *testing.T) {
	p := New(config.Default(), nil)

	_, err := p.Run(context.Background(), "model.fbx", Selection{})
	if err == nil || !strings.Contains(err.Error(), "unsupported model format") {
		t.Errorf("Run failed: expected unsupported format error, got %v", err)
	}
}

func TestSelection(t *testing.T) {
	primitives := []forge.Primitive{
		{Type: forge.Cube},
		{Type: forge.Polygon},
		{Type: forge.Polygon},
		{Type: forge.Cube},
		{Type: forge.Polygon},
	}

	tests := []struct {
		name     string
		sel      Selection
		expected int
	}{
		{"all", Selection{}, 5},
		{"polygons", Selection{Type: forge.Polygon}, 3},
		{"window", Selection{Offset: 1, Limit: 2}, 2},
		{"polygon window", Selection{Type: forge.Polygon, Offset: 2, Limit: 5}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.sel.Apply(primitives)); got != tt.expected {
				t.Errorf("Apply failed: expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteMacroAndPreview(t *testing.T) {
	dir := t.TempDir()
	p := New(config.Default(), nil)

	result, err := p.Run(context.Background(), filepath.Join("testdata", "cube.obj"), Selection{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	macroPath := filepath.Join(dir, "out", "macro.ahk")
	if err := p.WriteMacro(macroPath, result.Selected); err != nil {
		t.Fatalf("WriteMacro failed: %v", err)
	}
	data, err := os.ReadFile(macroPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "#NoEnv") {
		t.Error("WriteMacro failed: expected AutoHotkey header")
	}

	previewPath := filepath.Join(dir, "preview.scad")
	if err := p.WritePreview(previewPath, result.Selected); err != nil {
		t.Fatalf("WritePreview failed: %v", err)
	}
	data, err = os.ReadFile(previewPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "cube([1, 1, 1]);") {
		t.Errorf("WritePreview failed: expected unit cube, got:\n%s", data)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("WriteMacro failed: expected only the macro in the output directory, got %d entries", len(entries))
	}
}

func TestWriteSnapshot(t *testing.T) {
	p := New(config.Default(), nil)

	result, err := p.Run(context.Background(), filepath.Join("testdata", "cube.obj"), Selection{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "cube.png")
	if err := p.WriteSnapshot(path, result); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer file.Close()

	cfg, err := png.DecodeConfig(file)
	if err != nil {
		t.Fatalf("DecodeConfig failed: %v", err)
	}
	if cfg.Width != SnapshotWidth || cfg.Height != SnapshotHeight {
		t.Errorf("WriteSnapshot failed: expected %dx%d, got %dx%d", SnapshotWidth, SnapshotHeight, cfg.Width, cfg.Height)
	}
}

func TestWatchFiles(t *testing.T) {
	p := New(config.Default(), nil)

	files, err := p.WatchFiles(filepath.Join("testdata", "cube.obj"))
	if err != nil {
		t.Fatalf("WatchFiles failed: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("WatchFiles failed: expected the model only, got %v", files)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.scad"), []byte("include <params.scad>\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "params.scad"), []byte("s = 1;\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	files, err = p.WatchFiles(filepath.Join(dir, "main.scad"))
	if err != nil {
		t.Fatalf("WatchFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("WatchFiles failed: expected the model and its include, got %v", files)
	}
}
