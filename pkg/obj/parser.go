// Package obj loads Wavefront OBJ meshes.
package obj

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	gobj "github.com/flywave/go-obj"

	"github.com/philipparndt/forgemesh/pkg/geometry"
	"github.com/philipparndt/forgemesh/pkg/mesh"
)

// defaultGroup is the name the reader gives faces outside any g record
const defaultGroup = "default group"

// Options controls how faces are built from the file
type Options struct {
	// Normals selects computed normals or the vn records referenced by faces
	Normals mesh.NormalSource
}

// Parse reads an OBJ file and returns its mesh. The mesh is named after the
// file unless the file starts a named group.
func Parse(filename string, opts Options) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return Read(file, name, opts)
}

// Read parses OBJ records from reader. Faces keep their polygon corners as
// written; texture coordinates, groups and materials are not used beyond
// naming the mesh after its first named group. Syntax errors carry the line number.
func Read(reader io.Reader, name string, opts Options) (*mesh.Mesh, error) {
	r := &gobj.ObjReader{}
	if err := r.Read(reader); err != nil {
		return nil, fmt.Errorf("failed to read OBJ: %w", err)
	}

	for _, g := range r.G {
		if g.FaceCount > 0 && g.Name != "" && g.Name != defaultGroup {
			name = g.Name
			break
		}
	}
	m := mesh.NewMesh(name)

	for _, v := range r.V {
		m.AddVertex(geometry.NewVector3(widen(v[0]), widen(v[1]), widen(v[2])))
	}
	for _, n := range r.VN {
		m.Normals = append(m.Normals, geometry.NewVector3(widen(n[0]), widen(n[1]), widen(n[2])))
	}

	for i, f := range r.F {
		indexes := make([]int, len(f.Corners))
		normal := -1
		for j, c := range f.Corners {
			if c.VertexIndex < 0 {
				return nil, fmt.Errorf("face %d: vertex index %d is not valid, OBJ indexes start at 1", i, c.VertexIndex+1)
			}
			indexes[j] = c.VertexIndex
			if c.NormalIndex >= 0 {
				normal = c.NormalIndex
			}
		}

		if err := addFace(m, indexes, normal, opts); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// addFace appends the face with the file normal when requested and usable,
// falling back to the normal computed from the winding
func addFace(m *mesh.Mesh, indexes []int, normal int, opts Options) error {
	if opts.Normals != mesh.NormalFile || normal < 0 {
		return m.AddFace(indexes)
	}
	if normal >= len(m.Normals) {
		return fmt.Errorf("face %d: normal index %d out of range (have %d normals)", len(m.Faces), normal+1, len(m.Normals))
	}
	n, err := m.Normals[normal].Unit()
	if err != nil {
		return m.AddFace(indexes)
	}
	return m.AddFaceWithNormal(indexes, n)
}

// widen converts a coordinate read with single precision to the float64
// closest to its shortest decimal form, so "0.1" reads back as 0.1
func widen(f float32) float64 {
	d, err := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'g', -1, 32), 64)
	if err != nil {
		return float64(f)
	}
	return d
}
