// Package forge decomposes mesh faces into placeable primitives: cuboids,
// flat rectangular plates and right-angled polygon plates, each described by
// a position, a YXZ Euler rotation and a size in the editor's frame.
package forge

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/philipparndt/forgemesh/pkg/geometry"
)

// PrimitiveType names the editor object a primitive is built from
type PrimitiveType string

const (
	// Cube is a box, or a flat rectangular plate when one size axis is zero
	Cube PrimitiveType = "cube"
	// Polygon is a flat right-angled plate
	Polygon PrimitiveType = "polygon"
)

// ParsePrimitiveType converts a flag value to a PrimitiveType
func ParsePrimitiveType(s string) (PrimitiveType, error) {
	switch PrimitiveType(s) {
	case Cube, Polygon:
		return PrimitiveType(s), nil
	default:
		return "", fmt.Errorf("unknown primitive type %q (expected %q or %q)", s, Cube, Polygon)
	}
}

// Primitive is one object to place in the editor. All vectors are already
// mapped to the editor frame and must not be mapped again.
type Primitive struct {
	Type     PrimitiveType    `json:"type" yaml:"type"`
	Position geometry.Vector3 `json:"position" yaml:"position"`
	Rotation geometry.Vector3 `json:"rotation" yaml:"rotation"`
	Size     geometry.Vector3 `json:"size" yaml:"size"`
}

// Placement is the position, rotation and size part of a Primitive
type Placement struct {
	Position geometry.Vector3
	Rotation geometry.Vector3
	Size     geometry.Vector3
}

func (p Placement) primitive(t PrimitiveType) Primitive {
	return Primitive{
		Type:     t,
		Position: p.Position,
		Rotation: p.Rotation,
		Size:     p.Size,
	}
}

// Filter returns the primitives of the given type, in order
func Filter(primitives []Primitive, t PrimitiveType) []Primitive {
	return lo.Filter(primitives, func(p Primitive, _ int) bool {
		return p.Type == t
	})
}

// Chunk returns at most limit primitives starting at offset. A limit of zero
// or less means no limit.
func Chunk(primitives []Primitive, offset, limit int) []Primitive {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(primitives) {
		return nil
	}
	end := len(primitives)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return primitives[offset:end]
}
