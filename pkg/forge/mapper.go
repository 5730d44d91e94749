package forge

import (
	"github.com/philipparndt/forgemesh/pkg/geometry"
)

const (
	// DefaultScale converts mesh units to editor units
	DefaultScale = 3.0
	// DefaultVerticalOffset lifts positions above the editor's ground plane
	DefaultVerticalOffset = 600.0

	decimals = 2
)

// Mapper converts mesh-space vectors into the editor's frame: axes are
// permuted (mesh z, x, y become editor x, y, z), scaled and rounded to two
// decimals because the editor's input fields take no more precision.
type Mapper struct {
	Scale          float64
	VerticalOffset float64
}

// DefaultMapper returns the mapper for the editor's default frame
func DefaultMapper() Mapper {
	return Mapper{Scale: DefaultScale, VerticalOffset: DefaultVerticalOffset}
}

// Position maps a mesh-space point to an editor position
func (m Mapper) Position(v geometry.Vector3) geometry.Vector3 {
	return geometry.Vector3{
		X: geometry.Round(v.Z*m.Scale, decimals),
		Y: geometry.Round(v.X*m.Scale, decimals),
		Z: geometry.Round(v.Y*m.Scale+m.VerticalOffset, decimals),
	}
}

// Size maps a mesh-space extent to an editor size
func (m Mapper) Size(v geometry.Vector3) geometry.Vector3 {
	return geometry.Vector3{
		X: geometry.Round(v.Z*m.Scale, decimals),
		Y: geometry.Round(v.X*m.Scale, decimals),
		Z: geometry.Round(v.Y*m.Scale, decimals),
	}
}

// Rotation maps YXZ Euler angles in degrees to the editor's rotation fields
func (m Mapper) Rotation(euler geometry.Vector3) geometry.Vector3 {
	return geometry.Vector3{
		X: geometry.NormalizeAngle(geometry.Round(euler.Z, decimals)),
		Y: 0 - geometry.NormalizeAngle(geometry.Round(euler.X, decimals)),
		Z: geometry.NormalizeAngle(geometry.Round(euler.Y, decimals)),
	}
}

// Place computes the placement of a right-angled corner. The object's
// forward axis runs from corner to next and its up axis along normal; the
// size spans |corner-prev| by height by |corner-next|.
func (m Mapper) Place(corner, prev, next, normal geometry.Vector3, height float64) (Placement, error) {
	forward, err := geometry.Direction(corner, next)
	if err != nil {
		return Placement{}, err
	}
	rotation, err := geometry.LookRotation(forward, normal)
	if err != nil {
		return Placement{}, err
	}

	return Placement{
		Position: m.Position(corner),
		Rotation: m.Rotation(rotation.EulerYXZ()),
		Size: m.Size(geometry.Vector3{
			X: corner.Distance(prev),
			Y: height,
			Z: corner.Distance(next),
		}),
	}, nil
}
