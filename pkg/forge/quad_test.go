package forge

import (
	"errors"
	"testing"

	"github.com/philipparndt/forgemesh/pkg/geometry"
	"github.com/philipparndt/forgemesh/pkg/mesh"
)

// splitSquare returns the unit square in the y=0 plane as the triangles
// [0 1 2] and [0 2 3]
func splitSquare(t *testing.T) (mesh.Face, mesh.Face) {
	t.Helper()
	f1 := flatFace(t, []int{0, 1, 2}, [2]float64{0, 0}, [2]float64{0, 1}, [2]float64{1, 1})
	f2 := flatFace(t, []int{0, 2, 3}, [2]float64{0, 0}, [2]float64{1, 1}, [2]float64{1, 0})
	return f1, f2
}

func TestMatchQuad(t *testing.T) {
	f1, f2 := splitSquare(t)

	quad, ok, err := MatchQuad(f1, f2)
	if err != nil {
		t.Fatalf("MatchQuad failed: %v", err)
	}
	if !ok {
		t.Fatal("MatchQuad failed: expected a quad")
	}

	expectedIndexes := []int{1, 2, 3, 0}
	for i, idx := range expectedIndexes {
		if quad.VertexIndexes[i] != idx {
			t.Errorf("MatchQuad failed: expected indexes %v, got %v", expectedIndexes, quad.VertexIndexes)
			break
		}
	}
	assertVector(t, "Vertex 2", geometry.NewVector3(1, 0, 0), quad.Vertices[2])
	assertVector(t, "Normal", f1.Normal, quad.Normal)

	for i := range quad.Vertices {
		angle, err := quad.CornerAngle(i)
		if err != nil {
			t.Fatalf("CornerAngle failed: %v", err)
		}
		if !isRightAngle(angle) {
			t.Errorf("MatchQuad failed: corner %d is %v degrees", i, angle)
		}
	}
}

func TestMatchQuadNormalMismatch(t *testing.T) {
	f1 := flatFace(t, []int{0, 1, 2}, [2]float64{0, 0}, [2]float64{0, 1}, [2]float64{1, 1})
	f2 := flatFace(t, []int{0, 3, 2}, [2]float64{0, 0}, [2]float64{1, 0}, [2]float64{1, 1})

	_, ok, err := MatchQuad(f1, f2)
	if err != nil {
		t.Fatalf("MatchQuad failed: %v", err)
	}
	if ok {
		t.Error("MatchQuad failed: faces with opposite normals must not match")
	}
}

func TestMatchQuadObliqueTip(t *testing.T) {
	f1 := flatFace(t, []int{0, 1, 2}, [2]float64{0, 0}, [2]float64{0, 1}, [2]float64{2, 1})
	f2 := flatFace(t, []int{0, 2, 3}, [2]float64{0, 0}, [2]float64{2, 1}, [2]float64{1, 0})

	_, ok, err := MatchQuad(f1, f2)
	if err != nil {
		t.Fatalf("MatchQuad failed: %v", err)
	}
	if ok {
		t.Error("MatchQuad failed: a 135 degree tip must not match")
	}
}

func TestMatchQuadSharedIndexes(t *testing.T) {
	f1, _ := splitSquare(t)
	far := flatFace(t, []int{5, 6, 7}, [2]float64{5, 5}, [2]float64{5, 6}, [2]float64{6, 6})

	if _, ok, _ := MatchQuad(f1, far); ok {
		t.Error("MatchQuad failed: faces without a shared edge must not match")
	}
	if _, ok, _ := MatchQuad(f1, f1); ok {
		t.Error("MatchQuad failed: a face must not match itself")
	}
}

func TestPromoteQuad(t *testing.T) {
	square := flatFace(t, []int{0, 1, 2, 3}, [2]float64{0, 0}, [2]float64{0, 1}, [2]float64{1, 1}, [2]float64{1, 0})
	quad, ok, err := PromoteQuad(square)
	if err != nil {
		t.Fatalf("PromoteQuad failed: %v", err)
	}
	if !ok {
		t.Fatal("PromoteQuad failed: expected the square to be promoted")
	}
	quad.Vertices[0] = geometry.NewVector3(9, 9, 9)
	if square.Vertices[0] == quad.Vertices[0] {
		t.Error("PromoteQuad failed: quad shares vertex storage with the face")
	}

	rhombus := flatFace(t, []int{0, 1, 2, 3}, [2]float64{0, 0}, [2]float64{1, 1}, [2]float64{3, 1}, [2]float64{2, 0})
	if _, ok, _ := PromoteQuad(rhombus); ok {
		t.Error("PromoteQuad failed: a parallelogram must not be promoted")
	}

	f1, _ := splitSquare(t)
	if _, ok, _ := PromoteQuad(f1); ok {
		t.Error("PromoteQuad failed: a triangle must not be promoted")
	}
}

func TestPairQuads(t *testing.T) {
	f1, f2 := splitSquare(t)
	lone := flatFace(t, []int{4, 5, 6}, [2]float64{5, 5}, [2]float64{6, 8}, [2]float64{9, 5})
	square := flatFace(t, []int{7, 8, 9, 10}, [2]float64{0, 3}, [2]float64{0, 4}, [2]float64{1, 4}, [2]float64{1, 3})

	quads, unmatched, err := PairQuads([]mesh.Face{lone, f1, square, f2})
	if err != nil {
		t.Fatalf("PairQuads failed: %v", err)
	}
	if len(quads) != 2 {
		t.Fatalf("PairQuads failed: expected 2 quads, got %d", len(quads))
	}
	if quads[0].VertexIndexes[0] != 1 {
		t.Errorf("PairQuads failed: expected the paired square first, got %v", quads[0].VertexIndexes)
	}
	if quads[1].VertexIndexes[0] != 7 {
		t.Errorf("PairQuads failed: expected the promoted square second, got %v", quads[1].VertexIndexes)
	}
	if len(unmatched) != 1 || unmatched[0] != 0 {
		t.Errorf("PairQuads failed: expected unmatched [0], got %v", unmatched)
	}
	if len(quads[0].Sources) != 2 || quads[0].Sources[0] != 1 || quads[0].Sources[1] != 3 {
		t.Errorf("Sources failed: expected [1 3], got %v", quads[0].Sources)
	}
	if len(quads[1].Sources) != 1 || quads[1].Sources[0] != 2 {
		t.Errorf("Sources failed: expected [2], got %v", quads[1].Sources)
	}
}

func TestPairQuadsGreedy(t *testing.T) {
	// two right triangles that could each pair with the middle one
	a := flatFace(t, []int{0, 1, 2}, [2]float64{0, 0}, [2]float64{0, 1}, [2]float64{1, 1})
	b := flatFace(t, []int{0, 2, 3}, [2]float64{0, 0}, [2]float64{1, 1}, [2]float64{1, 0})
	c := flatFace(t, []int{0, 3, 4}, [2]float64{0, 0}, [2]float64{1, 0}, [2]float64{1, -1})

	quads, unmatched, err := PairQuads([]mesh.Face{a, b, c})
	if err != nil {
		t.Fatalf("PairQuads failed: %v", err)
	}
	if len(quads) != 1 {
		t.Fatalf("PairQuads failed: expected 1 quad, got %d", len(quads))
	}
	if len(unmatched) != 1 || unmatched[0] != 2 {
		t.Errorf("PairQuads failed: expected unmatched [2], got %v", unmatched)
	}
}

func TestPairQuadsInvalidFace(t *testing.T) {
	f1, _ := splitSquare(t)
	broken := mesh.Face{
		VertexIndexes: []int{0, 1, 2, 3},
		Vertices: []geometry.Vector3{
			geometry.NewVector3(0, 0, 0),
			geometry.NewVector3(0, 0, 0),
			geometry.NewVector3(1, 0, 1),
			geometry.NewVector3(1, 0, 0),
		},
		Normal: geometry.NewVector3(0, 1, 0),
	}

	_, _, err := PairQuads([]mesh.Face{f1, broken})
	var invalid *InvalidFaceError
	if !errors.As(err, &invalid) {
		t.Fatalf("PairQuads failed: expected InvalidFaceError, got %v", err)
	}
	if invalid.Index != 1 {
		t.Errorf("PairQuads failed: expected face 1, got %d", invalid.Index)
	}
}
