package macro

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/philipparndt/forgemesh/pkg/forge"
	"github.com/philipparndt/forgemesh/pkg/geometry"
)

// Menu actions used by the generated instructions
var (
	PathMenu      = Path{"menu"}
	PathSpawnCube = Path{"menu", "spawnPrimitiveBlock"}
	PathSpawnPoly = Path{"menu", "spawnPolygon"}
	PathDuplicate = Path{"menu", "objectProperties", "duplicate"}
	PathTransform = Path{"menu", "objectProperties", "transform"}
)

// Instruction is one step of the macro: either a pause or navigating to an
// action and executing it with arguments
type Instruction struct {
	Path Path
	Args []string
	// Wait, when positive, makes the instruction a pause of that many ms
	Wait int
}

// Wait returns a pause instruction
func Wait(ms int) Instruction {
	return Instruction{Wait: ms}
}

func (i Instruction) String() string {
	if i.Wait > 0 {
		return fmt.Sprintf("wait(%d)", i.Wait)
	}
	name := i.Path.String()
	if name == "" {
		name = "root"
	}
	if len(i.Args) == 0 {
		return name
	}
	return name + "(" + strings.Join(i.Args, ",") + ")"
}

// Instructions plans the steps that build primitives in order. A primitive
// of a different type than its predecessor is spawned from the menu; one of
// the same type duplicates the previous object. Every object is then moved,
// rotated and resized through the transform action.
func Instructions(primitives []forge.Primitive, menuWait int) ([]Instruction, error) {
	out := []Instruction{{Path: PathMenu}, Wait(menuWait)}

	var previous forge.PrimitiveType
	for _, p := range primitives {
		if p.Type != previous {
			spawn, err := spawnPath(p.Type)
			if err != nil {
				return nil, err
			}
			out = append(out, Instruction{Path: spawn})
		} else {
			out = append(out, Instruction{Path: PathDuplicate})
		}
		previous = p.Type

		out = append(out, Instruction{Path: PathTransform, Args: transformArgs(p)})
	}

	return append(out, Instruction{Path: Path{}}), nil
}

func spawnPath(t forge.PrimitiveType) (Path, error) {
	switch t {
	case forge.Cube:
		return PathSpawnCube, nil
	case forge.Polygon:
		return PathSpawnPoly, nil
	default:
		return nil, fmt.Errorf("no spawn action for primitive type %q", t)
	}
}

// transformArgs lists position, rotation and size, x y z each
func transformArgs(p forge.Primitive) []string {
	args := make([]string, 0, 9)
	for _, v := range []geometry.Vector3{p.Position, p.Rotation, p.Size} {
		args = append(args, formatNumber(v.X), formatNumber(v.Y), formatNumber(v.Z))
	}
	return args
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
