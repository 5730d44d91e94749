// Package mesh holds the polygonal face model shared by the loaders and the
// decomposition engine.
package mesh

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/philipparndt/forgemesh/pkg/geometry"
)

// Validation failures reported by Face.Validate
var (
	ErrTooFewVertices  = errors.New("face has fewer than 3 vertices")
	ErrIndexMismatch   = errors.New("vertex index count does not match vertex count")
	ErrNegativeIndex   = errors.New("negative vertex index")
	ErrDuplicateIndex  = errors.New("vertex index repeated within face")
	ErrMissingNormal   = errors.New("face normal is missing or zero")
	ErrNonFiniteVertex = errors.New("vertex position is not finite")
)

// Face is a planar polygon: an ordered cycle of vertex indexes, the resolved
// positions for those indexes and the face normal
type Face struct {
	VertexIndexes []int
	Vertices      []geometry.Vector3
	Normal        geometry.Vector3
}

// NewFace creates a face and computes its normal from the first three vertices
func NewFace(indexes []int, vertices []geometry.Vector3) (Face, error) {
	face := Face{VertexIndexes: indexes, Vertices: vertices}
	normal, err := ComputeNormal(vertices)
	if err != nil {
		return Face{}, err
	}
	face.Normal = normal
	return face, nil
}

// Len returns the number of vertices in the face
func (f Face) Len() int {
	return len(f.Vertices)
}

// Clone returns an independent copy of the face
func (f Face) Clone() Face {
	indexes := make([]int, len(f.VertexIndexes))
	copy(indexes, f.VertexIndexes)
	vertices := make([]geometry.Vector3, len(f.Vertices))
	copy(vertices, f.Vertices)
	return Face{
		VertexIndexes: indexes,
		Vertices:      vertices,
		Normal:        f.Normal,
	}
}

// WithVertex returns a copy of the face with vertex i moved to position
func (f Face) WithVertex(i int, position geometry.Vector3) Face {
	clone := f.Clone()
	clone.Vertices[i] = position
	return clone
}

// Prev returns the index of the vertex before i in the cycle
func (f Face) Prev(i int) int {
	n := len(f.Vertices)
	return (n + i - 1) % n
}

// Next returns the index of the vertex after i in the cycle
func (f Face) Next(i int) int {
	n := len(f.Vertices)
	return (i + 1) % n
}

// CornerAngle returns the interior angle in degrees at vertex i
func (f Face) CornerAngle(i int) (float64, error) {
	return geometry.CornerAngle(f.Vertices[f.Prev(i)], f.Vertices[i], f.Vertices[f.Next(i)])
}

// EdgeLength returns the length of the edge from vertex i to the next vertex
func (f Face) EdgeLength(i int) float64 {
	return f.Vertices[i].Distance(f.Vertices[f.Next(i)])
}

// Centroid returns the average of the face vertices
func (f Face) Centroid() geometry.Vector3 {
	return geometry.Centroid(f.Vertices)
}

// Validate checks the shape of the face before any geometry is computed
func (f Face) Validate() error {
	if len(f.Vertices) < 3 {
		return ErrTooFewVertices
	}
	if len(f.VertexIndexes) != len(f.Vertices) {
		return fmt.Errorf("%w: %d indexes, %d vertices", ErrIndexMismatch, len(f.VertexIndexes), len(f.Vertices))
	}

	if idx, found := lo.Find(f.VertexIndexes, func(idx int) bool { return idx < 0 }); found {
		return fmt.Errorf("%w: %d", ErrNegativeIndex, idx)
	}
	if dup := lo.FindDuplicates(f.VertexIndexes); len(dup) > 0 {
		return fmt.Errorf("%w: %d", ErrDuplicateIndex, dup[0])
	}

	for _, v := range f.Vertices {
		if !v.IsFinite() {
			return ErrNonFiniteVertex
		}
	}

	if !f.Normal.IsFinite() || f.Normal.Length() == 0 {
		return ErrMissingNormal
	}
	return nil
}

// ComputeNormal returns the unit normal of the plane through the first three
// vertices, following the winding order
func ComputeNormal(vertices []geometry.Vector3) (geometry.Vector3, error) {
	if len(vertices) < 3 {
		return geometry.Vector3{}, ErrTooFewVertices
	}
	edge1 := vertices[1].Sub(vertices[0])
	edge2 := vertices[2].Sub(vertices[0])
	return edge1.Cross(edge2).Unit()
}

// Area returns the surface area of the face, summed over a triangle fan from
// its first vertex
func (f Face) Area() float64 {
	area := 0.0
	for i := 1; i+1 < len(f.Vertices); i++ {
		edge1 := f.Vertices[i].Sub(f.Vertices[0])
		edge2 := f.Vertices[i+1].Sub(f.Vertices[0])
		area += edge1.Cross(edge2).Length() / 2
	}
	return area
}
