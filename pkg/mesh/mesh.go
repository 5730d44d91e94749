package mesh

import (
	"fmt"

	"github.com/philipparndt/forgemesh/pkg/geometry"
)

// NormalSource selects where face normals come from
type NormalSource string

const (
	// NormalComputed derives the normal from the first two edges of the face
	NormalComputed NormalSource = "computed"
	// NormalFile uses the normal stored in the mesh file, when there is one
	NormalFile NormalSource = "file"
)

// ParseNormalSource converts a config or flag value to a NormalSource
func ParseNormalSource(s string) (NormalSource, error) {
	switch NormalSource(s) {
	case NormalComputed, "":
		return NormalComputed, nil
	case NormalFile:
		return NormalFile, nil
	default:
		return "", fmt.Errorf("unknown normal source %q (expected %q or %q)", s, NormalComputed, NormalFile)
	}
}

// Mesh is a loaded polygon mesh: the shared vertex table and its faces
type Mesh struct {
	Name     string
	Vertices []geometry.Vector3
	Normals  []geometry.Vector3
	Faces    []Face
}

// NewMesh creates an empty mesh
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]geometry.Vector3, 0),
		Faces:    make([]Face, 0),
	}
}

// AddVertex appends a vertex and returns its index
func (m *Mesh) AddVertex(v geometry.Vector3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddFace resolves the given vertex indexes against the vertex table and
// appends the face. The normal is computed from the face winding.
func (m *Mesh) AddFace(indexes []int) error {
	face, err := m.resolve(indexes)
	if err != nil {
		return err
	}
	normal, err := ComputeNormal(face.Vertices)
	if err != nil {
		return fmt.Errorf("face %d: %w", len(m.Faces), err)
	}
	face.Normal = normal
	m.Faces = append(m.Faces, face)
	return nil
}

// AddFaceWithNormal appends a face that uses the given normal instead of a
// computed one
func (m *Mesh) AddFaceWithNormal(indexes []int, normal geometry.Vector3) error {
	face, err := m.resolve(indexes)
	if err != nil {
		return err
	}
	face.Normal = normal
	m.Faces = append(m.Faces, face)
	return nil
}

func (m *Mesh) resolve(indexes []int) (Face, error) {
	vertices := make([]geometry.Vector3, len(indexes))
	for i, idx := range indexes {
		if idx < 0 || idx >= len(m.Vertices) {
			return Face{}, fmt.Errorf("face %d: vertex index %d out of range (have %d vertices)", len(m.Faces), idx, len(m.Vertices))
		}
		vertices[i] = m.Vertices[idx]
	}
	own := make([]int, len(indexes))
	copy(own, indexes)
	return Face{VertexIndexes: own, Vertices: vertices}, nil
}

// FaceCount returns the number of faces in the mesh
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// BoundingBox calculates the bounding box of all vertices
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	return geometry.BoundsOf(m.Vertices)
}

// SurfaceArea calculates the total surface area of the mesh
func (m *Mesh) SurfaceArea() float64 {
	totalArea := 0.0
	for _, face := range m.Faces {
		totalArea += face.Area()
	}
	return totalArea
}
