package viewer

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/philipparndt/forgemesh/pkg/forge"
	"github.com/philipparndt/forgemesh/pkg/geometry"
	"github.com/philipparndt/forgemesh/pkg/mesh"
)

func cubeMesh(t *testing.T) *mesh.Mesh {
	t.Helper()

	m := mesh.NewMesh("cube")
	for _, v := range [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1},
		{0, 1, 0}, {1, 1, 0}, {1, 1, 1}, {0, 1, 1},
	} {
		m.AddVertex(geometry.NewVector3(v[0], v[1], v[2]))
	}
	for _, f := range [][]int{
		{4, 7, 6, 5}, {0, 1, 2, 3}, {0, 4, 5, 1},
		{3, 2, 6, 7}, {0, 3, 7, 4}, {1, 5, 6, 2},
	} {
		if err := m.AddFace(f); err != nil {
			t.Fatalf("AddFace failed: %v", err)
		}
	}
	return m
}

func roles(n int, role forge.FaceRole) []forge.FaceRole {
	r := make([]forge.FaceRole, n)
	for i := range r {
		r[i] = role
	}
	return r
}

// countPixels counts pixels whose channel at index c clearly dominates the
// other two
func countPixels(img *image.RGBA, c int) int {
	count := 0
	for i := 0; i+3 < len(img.Pix); i += 4 {
		px := img.Pix[i : i+3]
		if int(px[c]) > int(px[(c+1)%3])+50 && int(px[c]) > int(px[(c+2)%3])+50 {
			count++
		}
	}
	return count
}

func TestRenderColoursByRole(t *testing.T) {
	m := cubeMesh(t)

	cuboid := NewScene(m, roles(6, forge.RoleCuboid))
	cuboid.Legend = false
	img := cuboid.Render(200, 150)

	if blue := countPixels(img, 2); blue < 200*150/20 {
		t.Errorf("Render failed: expected cuboid faces in blue, got %d blue pixels", blue)
	}
	if red := countPixels(img, 0); red != 0 {
		t.Errorf("Render failed: expected no polygon colour, got %d red pixels", red)
	}
	if got := img.RGBAAt(199, 149); got != backgroundColor {
		t.Errorf("Render failed: expected background in the corner, got %v", got)
	}

	polygon := NewScene(m, roles(6, forge.RolePolygon))
	polygon.Legend = false
	img = polygon.Render(200, 150)
	if red := countPixels(img, 0); red < 200*150/20 {
		t.Errorf("Render failed: expected polygon faces in orange, got %d pixels", red)
	}
}

func TestRenderMissingRoles(t *testing.T) {
	scene := NewScene(cubeMesh(t), nil)

	if scene.Role(3) != 0 {
		t.Errorf("Role failed: expected none, got %v", scene.Role(3))
	}
	if counts := scene.Counts(); counts[0] != 6 {
		t.Errorf("Counts failed: expected 6 faces without role, got %v", counts)
	}
	scene.Render(64, 64)
}

func TestWritePNG(t *testing.T) {
	scene := NewScene(cubeMesh(t), roles(6, forge.RolePlate))

	var buf bytes.Buffer
	if err := scene.WritePNG(&buf, 320, 240); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Errorf("WritePNG failed: expected 320x240, got %v", b)
	}
}
