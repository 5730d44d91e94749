package openscad

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/philipparndt/forgemesh/pkg/forge"
	"github.com/philipparndt/forgemesh/pkg/geometry"
)

// PlateThickness is the height, in mesh units, given to flat primitives so
// they show up in the preview
const PlateThickness = 0.02

// Preview writes OpenSCAD models of decomposed primitives in mesh space
type Preview struct {
	Mapper forge.Mapper
}

// NewPreview creates a preview that undoes m
func NewPreview(m forge.Mapper) *Preview {
	return &Preview{Mapper: m}
}

// Write emits one solid per primitive. Cubes become boxes and polygons
// right-triangle plates, each placed at its corner and turned by its YXZ
// rotation. The model is wrapped so the mesh's Y-up frame shows Z-up.
func (p *Preview) Write(w io.Writer, primitives []forge.Primitive) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "// %d primitives\n", len(primitives))
	fmt.Fprintf(bw, "plate = %s;\n\n", num(PlateThickness))
	bw.WriteString("rotate([90, 0, 0]) {\n")

	for i, prim := range primitives {
		corner, size, euler := p.unmap(prim)

		fmt.Fprintf(bw, "  // %d: %s\n", i, prim.Type)
		fmt.Fprintf(bw, "  translate([%s, %s, %s])\n", num(corner.X), num(corner.Y), num(corner.Z))
		fmt.Fprintf(bw, "    rotate([0, %s, 0]) rotate([%s, 0, 0]) rotate([0, 0, %s])\n",
			num(euler.Y), num(euler.X), num(euler.Z))

		height := "plate"
		if size.Y > 0 {
			height = num(size.Y)
		}

		switch prim.Type {
		case forge.Cube:
			fmt.Fprintf(bw, "      cube([%s, %s, %s]);\n", num(size.X), height, num(size.Z))
		case forge.Polygon:
			fmt.Fprintf(bw, "      rotate([-90, 0, 0]) linear_extrude(%s) polygon([[0, 0], [%s, 0], [0, %s]]);\n",
				height, num(size.X), num(-size.Z))
		default:
			return fmt.Errorf("primitive %d: unknown type %q", i, prim.Type)
		}
	}

	bw.WriteString("}\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}

// unmap returns the mesh-space corner, the local size (prev edge, height,
// next edge) and the YXZ Euler angles in degrees of a primitive
func (p *Preview) unmap(prim forge.Primitive) (corner, size, euler geometry.Vector3) {
	s := p.Mapper.Scale
	corner = geometry.Vector3{
		X: prim.Position.Y / s,
		Y: (prim.Position.Z - p.Mapper.VerticalOffset) / s,
		Z: prim.Position.X / s,
	}
	size = geometry.Vector3{
		X: prim.Size.Y / s,
		Y: prim.Size.Z / s,
		Z: prim.Size.X / s,
	}
	euler = geometry.Vector3{
		X: -prim.Rotation.Y,
		Y: prim.Rotation.Z,
		Z: prim.Rotation.X,
	}
	return corner, size, euler
}

func num(f float64) string {
	return strconv.FormatFloat(geometry.Round(f, 4), 'f', -1, 64)
}
