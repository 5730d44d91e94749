package forge

import (
	"math"
	"testing"

	"github.com/philipparndt/forgemesh/pkg/geometry"
	"github.com/philipparndt/forgemesh/pkg/mesh"
)

// box returns a closed box from the origin to size as six rectangular faces
// with outward normals, top face first
func box(t *testing.T, size geometry.Vector3) *mesh.Mesh {
	t.Helper()
	m := mesh.NewMesh("box")
	for _, v := range []geometry.Vector3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 1},
		{X: 0, Y: 0, Z: 1},
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 1, Y: 1, Z: 1},
		{X: 0, Y: 1, Z: 1},
	} {
		m.AddVertex(geometry.Vector3{X: v.X * size.X, Y: v.Y * size.Y, Z: v.Z * size.Z})
	}
	for _, f := range boxFaces {
		if err := m.AddFace(f); err != nil {
			t.Fatalf("AddFace failed: %v", err)
		}
	}
	return m
}

var boxFaces = [][]int{
	{4, 7, 6, 5}, // top
	{0, 1, 2, 3}, // bottom
	{0, 4, 5, 1}, // front
	{3, 2, 6, 7}, // back
	{0, 3, 7, 4}, // left
	{1, 5, 6, 2}, // right
}

// triangulatedBox is box with every rectangle split along its first diagonal
func triangulatedBox(t *testing.T, size geometry.Vector3) *mesh.Mesh {
	t.Helper()
	quads := box(t, size)
	m := mesh.NewMesh("triangulated")
	m.Vertices = quads.Vertices
	for _, f := range boxFaces {
		for _, tri := range [][]int{{f[0], f[1], f[2]}, {f[0], f[2], f[3]}} {
			if err := m.AddFace(tri); err != nil {
				t.Fatalf("AddFace failed: %v", err)
			}
		}
	}
	return m
}

// flatFace builds a face in the y=0 plane from x/z pairs
func flatFace(t *testing.T, indexes []int, xz ...[2]float64) mesh.Face {
	t.Helper()
	vertices := make([]geometry.Vector3, len(xz))
	for i, p := range xz {
		vertices[i] = geometry.NewVector3(p[0], 0, p[1])
	}
	face, err := mesh.NewFace(indexes, vertices)
	if err != nil {
		t.Fatalf("NewFace failed: %v", err)
	}
	return face
}

func assertVector(t *testing.T, name string, expected, got geometry.Vector3) {
	t.Helper()
	if math.Abs(expected.X-got.X) > 1e-9 || math.Abs(expected.Y-got.Y) > 1e-9 || math.Abs(expected.Z-got.Z) > 1e-9 {
		t.Errorf("%s failed: expected %v, got %v", name, expected, got)
	}
}

func assertPrimitive(t *testing.T, expected, got Primitive) {
	t.Helper()
	if got.Type != expected.Type {
		t.Errorf("Type failed: expected %v, got %v", expected.Type, got.Type)
	}
	assertVector(t, "Position", expected.Position, got.Position)
	assertVector(t, "Rotation", expected.Rotation, got.Rotation)
	assertVector(t, "Size", expected.Size, got.Size)
}
