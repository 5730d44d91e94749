package forge

import (
	"math"

	"github.com/samber/lo"

	"github.com/philipparndt/forgemesh/pkg/geometry"
	"github.com/philipparndt/forgemesh/pkg/mesh"
)

// Quad is a rectangular 4-vertex face: either two right-angled faces joined
// along their shared edge, or an input face that is already a rectangle
type Quad struct {
	mesh.Face
	// Sources are the positions of the faces the quad was built from, set by
	// PairQuads
	Sources []int
}

// Placement returns the flat plate placement of the quad at its first vertex
func (q Quad) Placement(m Mapper, height float64) (Placement, error) {
	return m.Place(q.Vertices[0], q.Vertices[3], q.Vertices[1], q.Normal, height)
}

// isRightAngle reports whether angle rounds to exactly 90 degrees
func isRightAngle(angle float64) bool {
	return math.Round(angle) == 90
}

// MatchQuad joins two faces into a quad when they share exactly two vertex
// indexes, face the same way (normals equal to two decimals) and each has a
// single unshared "tip" vertex with a right-angled corner. The quad traces
// tip1, s1, tip2, s2 where s1 follows tip1 in face1, so it keeps face1's
// winding and normal.
func MatchQuad(face1, face2 mesh.Face) (Quad, bool, error) {
	shared := lo.Intersect(face1.VertexIndexes, face2.VertexIndexes)
	if len(shared) != 2 {
		return Quad{}, false, nil
	}

	if face1.Normal.Round(2) != face2.Normal.Round(2) {
		return Quad{}, false, nil
	}

	tip1, ok, err := rightAngledTip(face1, face2)
	if err != nil || !ok {
		return Quad{}, false, err
	}
	tip2, ok, err := rightAngledTip(face2, face1)
	if err != nil || !ok {
		return Quad{}, false, err
	}

	s1 := face1.Next(tip1)
	s2 := face1.Prev(tip1)
	tip2Index := face2.VertexIndexes[tip2]

	quad := Quad{Face: mesh.Face{
		VertexIndexes: []int{
			face1.VertexIndexes[tip1],
			face1.VertexIndexes[s1],
			tip2Index,
			face1.VertexIndexes[s2],
		},
		Vertices: []geometry.Vector3{
			face1.Vertices[tip1],
			face1.Vertices[s1],
			face2.Vertices[tip2],
			face1.Vertices[s2],
		},
		Normal: face1.Normal,
	}}
	return quad, true, nil
}

// rightAngledTip returns the position in face of its only vertex not shared
// with other, if that vertex has a right-angled corner
func rightAngledTip(face, other mesh.Face) (int, bool, error) {
	tips := lo.Without(face.VertexIndexes, other.VertexIndexes...)
	if len(tips) != 1 {
		return 0, false, nil
	}

	i := lo.IndexOf(face.VertexIndexes, tips[0])
	angle, err := face.CornerAngle(i)
	if err != nil {
		return 0, false, err
	}
	return i, isRightAngle(angle), nil
}

// PromoteQuad returns the face as a quad when it already is a rectangle:
// four vertices whose corners all round to 90 degrees
func PromoteQuad(face mesh.Face) (Quad, bool, error) {
	if face.Len() != 4 {
		return Quad{}, false, nil
	}
	for i := range face.Vertices {
		angle, err := face.CornerAngle(i)
		if err != nil {
			return Quad{}, false, err
		}
		if !isRightAngle(angle) {
			return Quad{}, false, nil
		}
	}
	return Quad{Face: face.Clone()}, true, nil
}

// PairQuads promotes rectangular faces and then greedily pairs the remaining
// faces into quads. Every unordered pair is tried once in input order and the
// first match wins; there is no backtracking, so an early pairing can prevent
// a cuboid that a different pairing would have completed.
//
// Returned quads keep input order (promoted and paired quads interleaved by
// the position of their first face); unmatched holds the indexes of the
// faces left over, in order.
func PairQuads(faces []mesh.Face) (quads []Quad, unmatched []int, err error) {
	used := make([]bool, len(faces))
	found := make(map[int]Quad)

	for i, face := range faces {
		quad, ok, err := PromoteQuad(face)
		if err != nil {
			return nil, nil, &InvalidFaceError{Index: i, Err: err}
		}
		if ok {
			used[i] = true
			quad.Sources = []int{i}
			found[i] = quad
		}
	}

	for i := range faces {
		if used[i] {
			continue
		}
		for j := i + 1; j < len(faces); j++ {
			if used[j] {
				continue
			}
			quad, ok, err := MatchQuad(faces[i], faces[j])
			if err != nil {
				return nil, nil, &InvalidFaceError{Index: i, Err: err}
			}
			if ok {
				used[i], used[j] = true, true
				quad.Sources = []int{i, j}
				found[i] = quad
				break
			}
		}
	}

	for i := range faces {
		if quad, ok := found[i]; ok {
			quads = append(quads, quad)
		} else if !used[i] {
			unmatched = append(unmatched, i)
		}
	}
	return quads, unmatched, nil
}
