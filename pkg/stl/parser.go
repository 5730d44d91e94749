// Package stl loads ASCII and binary STL files as indexed meshes.
package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/philipparndt/forgemesh/pkg/geometry"
	"github.com/philipparndt/forgemesh/pkg/mesh"
)

// Options controls how facets are turned into faces
type Options struct {
	// Normals selects computed normals or the facet normals stored in the file
	Normals mesh.NormalSource
}

// Parse reads an STL file and returns a Mesh
// It automatically detects whether the file is ASCII or binary format
func Parse(filename string, opts Options) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Read first few bytes to determine format
	header := make([]byte, 6)
	n, err := file.Read(header)
	if err != nil {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}

	// Reset file pointer
	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("failed to reset file pointer: %w", err)
	}

	w := newWelder(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)), opts)

	// Check if it's ASCII format (starts with "solid ")
	if n >= 5 && strings.HasPrefix(string(header[:5]), "solid") {
		err = parseASCII(file, w)
	} else {
		err = parseBinary(file, w)
	}
	if err != nil {
		return nil, err
	}
	return w.mesh, nil
}

// welder builds an indexed mesh from facets, giving every distinct position
// one vertex index so that neighbouring facets share indexes
type welder struct {
	mesh  *mesh.Mesh
	index map[geometry.Vector3]int
	opts  Options
}

func newWelder(name string, opts Options) *welder {
	return &welder{
		mesh:  mesh.NewMesh(name),
		index: make(map[geometry.Vector3]int),
		opts:  opts,
	}
}

func (w *welder) vertex(v geometry.Vector3) int {
	if idx, ok := w.index[v]; ok {
		return idx
	}
	idx := w.mesh.AddVertex(v)
	w.index[v] = idx
	return idx
}

// addFacet appends one triangle. Facets that collapse to a line or a point
// are dropped.
func (w *welder) addFacet(normal geometry.Vector3, vertices [3]geometry.Vector3) error {
	indexes := []int{w.vertex(vertices[0]), w.vertex(vertices[1]), w.vertex(vertices[2])}
	if indexes[0] == indexes[1] || indexes[1] == indexes[2] || indexes[0] == indexes[2] {
		return nil
	}
	if _, err := mesh.ComputeNormal(vertices[:]); err != nil {
		return nil
	}

	if w.opts.Normals == mesh.NormalFile {
		if n, err := normal.Unit(); err == nil {
			return w.mesh.AddFaceWithNormal(indexes, n)
		}
	}
	return w.mesh.AddFace(indexes)
}

// parseASCII parses an ASCII STL file
func parseASCII(reader io.Reader, w *welder) error {
	scanner := bufio.NewScanner(reader)

	var currentNormal geometry.Vector3
	var vertices []geometry.Vector3

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)

		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				w.mesh.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				v, err := parseVector(fields[2:5])
				if err != nil {
					return fmt.Errorf("line %d: facet normal: %w", lineNo, err)
				}
				currentNormal = v
			}

		case "vertex":
			if len(fields) >= 4 {
				v, err := parseVector(fields[1:4])
				if err != nil {
					return fmt.Errorf("line %d: vertex: %w", lineNo, err)
				}
				vertices = append(vertices, v)
			}

		case "endfacet":
			if len(vertices) == 3 {
				if err := w.addFacet(currentNormal, [3]geometry.Vector3{vertices[0], vertices[1], vertices[2]}); err != nil {
					return fmt.Errorf("line %d: %w", lineNo, err)
				}
			}
			vertices = vertices[:0] // Clear vertices
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return nil
}

func parseVector(fields []string) (geometry.Vector3, error) {
	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid coordinate %q: %w", fields[i], err)
		}
		c[i] = f
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// parseBinary parses a binary STL file
func parseBinary(reader io.Reader, w *welder) error {
	// Read 80-byte header
	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	// Extract name from header (if present)
	headerStr := strings.TrimSpace(string(bytes.TrimRight(header, "\x00")))
	if len(headerStr) > 0 {
		w.mesh.Name = headerStr
	}

	// Read triangle count
	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return fmt.Errorf("failed to read triangle count: %w", err)
	}

	// normal, three vertices and the attribute byte count
	var record struct {
		Normal    [3]float32
		Vertices  [3][3]float32
		Attribute uint16
	}

	for i := uint32(0); i < triangleCount; i++ {
		if err := binary.Read(reader, binary.LittleEndian, &record); err != nil {
			return fmt.Errorf("failed to read triangle %d: %w", i, err)
		}

		var vertices [3]geometry.Vector3
		for j, v := range record.Vertices {
			vertices[j] = toVector(v)
		}
		if err := w.addFacet(toVector(record.Normal), vertices); err != nil {
			return fmt.Errorf("triangle %d: %w", i, err)
		}
	}

	return nil
}

func toVector(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}
