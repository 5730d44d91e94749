// Package viewer renders a decomposed mesh with every face coloured by the
// kind of primitive it became.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/philipparndt/forgemesh/pkg/forge"
	"github.com/philipparndt/forgemesh/pkg/mesh"
)

// Palette maps face roles to their base colour
type Palette map[forge.FaceRole]color.RGBA

// DefaultPalette colours cuboids blue, plates green and polygons orange.
// Faces without a role are grey.
func DefaultPalette() Palette {
	return Palette{
		0:                 {150, 150, 150, 255},
		forge.RoleCuboid:  {66, 133, 244, 255},
		forge.RolePlate:   {52, 168, 83, 255},
		forge.RolePolygon: {251, 140, 0, 255},
	}
}

var (
	backgroundColor = color.RGBA{30, 30, 34, 255}
	edgeColor       = color.RGBA{15, 15, 15, 255}
	textColor       = color.RGBA{230, 230, 230, 255}
)

// Scene is a mesh, the role of each of its faces and how to look at it
type Scene struct {
	Mesh    *mesh.Mesh
	Roles   []forge.FaceRole
	Palette Palette
	Camera  *Camera
	Edges   bool
	Legend  bool
}

// NewScene frames the mesh with a default camera, drawing edges and the
// legend
func NewScene(m *mesh.Mesh, roles []forge.FaceRole) *Scene {
	return &Scene{
		Mesh:    m,
		Roles:   roles,
		Palette: DefaultPalette(),
		Camera:  NewCamera(m.BoundingBox()),
		Edges:   true,
		Legend:  true,
	}
}

// Role returns the role of face i, or zero when it has none
func (s *Scene) Role(i int) forge.FaceRole {
	if i < len(s.Roles) {
		return s.Roles[i]
	}
	return 0
}

// Render draws the scene. Faces are lit by a light at the camera, so faces
// turned towards the viewer are brightest whichever way they wind.
func (s *Scene) Render(width, height int) *image.RGBA {
	f := newFrame(width, height, backgroundColor)
	w, h := float64(width), float64(height)
	view := s.Camera.Forward()
	bias := s.Camera.Distance * 1e-3

	for i, face := range s.Mesh.Faces {
		projected, ok := s.project(face, w, h)
		if !ok {
			continue
		}

		light := 0.35 + 0.65*math.Abs(face.Normal.Dot(view))
		col := shade(s.Palette[s.Role(i)], light)
		for j := 1; j+1 < len(projected); j++ {
			f.fillTriangle(projected[0], projected[j], projected[j+1], col)
		}

		if s.Edges {
			for j := range projected {
				f.drawLine(projected[j], projected[(j+1)%len(projected)], bias, edgeColor)
			}
		}
	}

	if s.Legend {
		s.drawLegend(f.img)
	}
	return f.img
}

// project maps the face corners to the screen; faces reaching behind the
// camera are skipped whole
func (s *Scene) project(face mesh.Face, w, h float64) ([]point, bool) {
	projected := make([]point, len(face.Vertices))
	for j, v := range face.Vertices {
		x, y, z, ok := s.Camera.Project(v, w, h)
		if !ok {
			return nil, false
		}
		projected[j] = point{x, y, z}
	}
	return projected, true
}

// WritePNG renders the scene and encodes it as PNG
func (s *Scene) WritePNG(w io.Writer, width, height int) error {
	if err := png.Encode(w, s.Render(width, height)); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// Counts returns how many faces have each role
func (s *Scene) Counts() map[forge.FaceRole]int {
	counts := make(map[forge.FaceRole]int)
	for i := range s.Mesh.Faces {
		counts[s.Role(i)]++
	}
	return counts
}

func (s *Scene) drawLegend(img *image.RGBA) {
	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil() + 4
	counts := s.Counts()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: face,
	}

	y := 10
	for _, role := range []forge.FaceRole{forge.RoleCuboid, forge.RolePlate, forge.RolePolygon} {
		swatch := image.Rect(10, y, 10+lineHeight-4, y+lineHeight-4)
		draw.Draw(img, swatch, image.NewUniform(s.Palette[role]), image.Point{}, draw.Src)

		d.Dot = fixed.P(swatch.Max.X+6, swatch.Max.Y-2)
		d.DrawString(fmt.Sprintf("%s faces: %d", role, counts[role]))
		y += lineHeight
	}
}

func shade(c color.RGBA, light float64) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(math.Min(255, float64(v)*light))
	}
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), c.A}
}
