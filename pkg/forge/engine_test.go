package forge

import (
	"errors"
	"testing"

	"github.com/philipparndt/forgemesh/pkg/geometry"
	"github.com/philipparndt/forgemesh/pkg/mesh"
)

func TestDecomposeUnitCube(t *testing.T) {
	m := box(t, geometry.NewVector3(1, 1, 1))
	engine := NewEngine(DefaultOptions(), nil)

	d, err := engine.Run(m.Faces)
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	result, stats := d.Primitives, d.Stats
	if len(result) != 1 {
		t.Fatalf("Decompose failed: expected 1 primitive, got %d", len(result))
	}
	assertPrimitive(t, Primitive{
		Type:     Cube,
		Position: geometry.NewVector3(0, 0, 603),
		Rotation: geometry.NewVector3(0, 0, 0),
		Size:     geometry.NewVector3(3, 3, 3),
	}, result[0])

	expected := Stats{Faces: 6, Quads: 6, Cuboids: 1}
	if stats != expected {
		t.Errorf("Stats failed: expected %+v, got %+v", expected, stats)
	}
}

func TestDecomposeTriangulatedCube(t *testing.T) {
	m := triangulatedBox(t, geometry.NewVector3(1, 1, 1))
	engine := NewEngine(DefaultOptions(), nil)

	result, err := engine.Decompose(m.Faces)
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("Decompose failed: expected 1 primitive, got %d", len(result))
	}
	if result[0].Type != Cube {
		t.Errorf("Type failed: expected %v, got %v", Cube, result[0].Type)
	}
	assertVector(t, "Size", geometry.NewVector3(3, 3, 3), result[0].Size)
}

func TestDecomposeRightTriangle(t *testing.T) {
	face := flatFace(t, []int{0, 1, 2}, [2]float64{0, 0}, [2]float64{0, 4}, [2]float64{2, 0})
	engine := NewEngine(DefaultOptions(), nil)

	result, err := engine.Decompose([]mesh.Face{face})
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("Decompose failed: expected 1 primitive, got %d", len(result))
	}
	assertPrimitive(t, Primitive{
		Type:     Polygon,
		Position: geometry.NewVector3(0, 0, 600),
		Rotation: geometry.NewVector3(0, 0, 0),
		Size:     geometry.NewVector3(12, 6, 0),
	}, result[0])
}

func TestDecomposePlate(t *testing.T) {
	square := flatFace(t, []int{0, 1, 2, 3}, [2]float64{0, 0}, [2]float64{0, 1}, [2]float64{1, 1}, [2]float64{1, 0})
	engine := NewEngine(DefaultOptions(), nil)

	result, err := engine.Decompose([]mesh.Face{square})
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("Decompose failed: expected 1 primitive, got %d", len(result))
	}
	assertPrimitive(t, Primitive{
		Type:     Cube,
		Position: geometry.NewVector3(0, 0, 600),
		Rotation: geometry.NewVector3(0, 0, 0),
		Size:     geometry.NewVector3(3, 3, 0),
	}, result[0])
}

func TestDecomposeOrdering(t *testing.T) {
	cube := box(t, geometry.NewVector3(1, 1, 1))
	triangle := flatFace(t, []int{20, 21, 22}, [2]float64{5, 5}, [2]float64{5, 9}, [2]float64{7, 5})
	plate := flatFace(t, []int{10, 11, 12, 13}, [2]float64{3, 0}, [2]float64{3, 1}, [2]float64{4, 1}, [2]float64{4, 0})

	faces := append([]mesh.Face{triangle, plate}, cube.Faces...)
	engine := NewEngine(DefaultOptions(), nil)

	d, err := engine.Run(faces)
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	result, stats := d.Primitives, d.Stats

	expected := []PrimitiveType{Cube, Cube, Polygon}
	if len(result) != len(expected) {
		t.Fatalf("Decompose failed: expected %d primitives, got %d", len(expected), len(result))
	}
	for i, typ := range expected {
		if result[i].Type != typ {
			t.Errorf("Decompose failed: primitive %d expected %v, got %v", i, typ, result[i].Type)
		}
	}
	assertVector(t, "Cuboid size", geometry.NewVector3(3, 3, 3), result[0].Size)
	assertVector(t, "Plate size", geometry.NewVector3(3, 3, 0), result[1].Size)

	if stats.Cuboids != 1 || stats.Plates != 1 || stats.Polygons != 1 {
		t.Errorf("Stats failed: got %+v", stats)
	}

	roles := []FaceRole{RolePolygon, RolePlate}
	for range cube.Faces {
		roles = append(roles, RoleCuboid)
	}
	if len(d.Roles) != len(roles) {
		t.Fatalf("Roles failed: expected %d, got %d", len(roles), len(d.Roles))
	}
	for i, role := range roles {
		if d.Roles[i] != role {
			t.Errorf("Roles failed: face %d expected %v, got %v", i, role, d.Roles[i])
		}
	}
}

func TestDecomposeRolesTriangulatedCube(t *testing.T) {
	m := triangulatedBox(t, geometry.NewVector3(1, 1, 1))
	engine := NewEngine(DefaultOptions(), nil)

	d, err := engine.Run(m.Faces)
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	for i, role := range d.Roles {
		if role != RoleCuboid {
			t.Errorf("Roles failed: face %d expected %v, got %v", i, RoleCuboid, role)
		}
	}
}

func TestDecomposeInvalidFace(t *testing.T) {
	good := flatFace(t, []int{0, 1, 2}, [2]float64{0, 0}, [2]float64{0, 4}, [2]float64{2, 0})

	tests := []struct {
		name string
		face mesh.Face
		err  error
	}{
		{
			name: "too few vertices",
			face: mesh.Face{
				VertexIndexes: []int{0, 1},
				Vertices:      []geometry.Vector3{{}, {X: 1}},
				Normal:        geometry.NewVector3(0, 1, 0),
			},
			err: mesh.ErrTooFewVertices,
		},
		{
			name: "missing normal",
			face: mesh.Face{
				VertexIndexes: []int{0, 1, 2},
				Vertices:      good.Vertices,
			},
			err: mesh.ErrMissingNormal,
		},
		{
			name: "repeated index",
			face: mesh.Face{
				VertexIndexes: []int{0, 1, 1},
				Vertices:      good.Vertices,
				Normal:        good.Normal,
			},
			err: mesh.ErrDuplicateIndex,
		},
	}

	engine := NewEngine(DefaultOptions(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Decompose([]mesh.Face{good, tt.face})

			var invalid *InvalidFaceError
			if !errors.As(err, &invalid) {
				t.Fatalf("Decompose failed: expected InvalidFaceError, got %v", err)
			}
			if invalid.Index != 1 {
				t.Errorf("Decompose failed: expected face 1, got %d", invalid.Index)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("Decompose failed: expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestDecomposeLimitReportsInputIndex(t *testing.T) {
	square := flatFace(t, []int{0, 1, 2, 3}, [2]float64{0, 0}, [2]float64{0, 1}, [2]float64{1, 1}, [2]float64{1, 0})
	oblique := flatFace(t, []int{4, 5, 6}, [2]float64{0, 0}, [2]float64{1, 3}, [2]float64{4, 0})

	engine := NewEngine(DefaultOptions(), nil)
	engine.opts.MaxDepth = 0

	_, err := engine.Decompose([]mesh.Face{square, oblique})
	var limit *SubdivisionLimitExceededError
	if !errors.As(err, &limit) {
		t.Fatalf("Decompose failed: expected SubdivisionLimitExceededError, got %v", err)
	}
	if limit.FaceIndex != 1 {
		t.Errorf("Decompose failed: expected face 1, got %d", limit.FaceIndex)
	}
}

func TestDecomposeEmpty(t *testing.T) {
	engine := NewEngine(DefaultOptions(), nil)

	result, err := engine.Decompose(nil)
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("Decompose failed: expected no primitives, got %d", len(result))
	}
}
