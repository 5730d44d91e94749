package forge

import (
	"math"

	"go.uber.org/zap"

	"github.com/philipparndt/forgemesh/pkg/geometry"
	"github.com/philipparndt/forgemesh/pkg/mesh"
)

const (
	// DefaultMaxDepth bounds how often a face may be split
	DefaultMaxDepth = 64
	// DefaultTolerance is the slack in degrees around 90 accepted for faces
	// produced by splitting, absorbing floating point drift
	DefaultTolerance = 1.0
)

// Subdivider turns faces into right-angled polygon plates. A face with a
// right-angled corner becomes one plate at that corner; any other face is
// split at the foot of the perpendicular onto its longest edge and both
// halves are processed again with the relaxed tolerance.
type Subdivider struct {
	Mapper    Mapper
	MaxDepth  int
	Tolerance float64
	Logger    *zap.Logger

	// DeepestSplit is the largest depth reached by the last Subdivide call
	DeepestSplit int
}

// NewSubdivider creates a subdivider with the default depth and tolerance
func NewSubdivider(m Mapper) *Subdivider {
	return &Subdivider{
		Mapper:    m,
		MaxDepth:  DefaultMaxDepth,
		Tolerance: DefaultTolerance,
		Logger:    zap.NewNop(),
	}
}

type pendingFace struct {
	face   mesh.Face
	depth  int
	forced bool
	origin int
}

// Subdivide emits polygon primitives for the faces. Pending faces live on an
// explicit stack; output order matches a depth-first walk that finishes each
// face, left half first, before moving on to the next.
func (s *Subdivider) Subdivide(faces []mesh.Face) ([]Primitive, error) {
	var out []Primitive
	s.DeepestSplit = 0

	stack := make([]pendingFace, 0, len(faces))
	for i := len(faces) - 1; i >= 0; i-- {
		stack = append(stack, pendingFace{face: faces[i], origin: i})
	}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if item.depth > s.MaxDepth {
			return nil, &SubdivisionLimitExceededError{FaceIndex: item.origin, Depth: s.MaxDepth}
		}
		if item.depth > s.DeepestSplit {
			s.DeepestSplit = item.depth
		}

		primitive, angles, ok, err := s.rightAngled(item)
		if err != nil {
			return nil, &InvalidFaceError{Index: item.origin, Err: err}
		}
		if ok {
			out = append(out, primitive)
			continue
		}

		children := splitFace(item.face, angles)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, pendingFace{
				face:   children[i],
				depth:  item.depth + 1,
				forced: true,
				origin: item.origin,
			})
		}
	}

	s.Logger.Debug("subdivided faces",
		zap.Int("faces", len(faces)),
		zap.Int("polygons", len(out)),
		zap.Int("deepest_split", s.DeepestSplit))
	return out, nil
}

// rightAngled looks for the first corner that counts as right-angled and
// returns its plate. When there is none it returns every corner angle.
func (s *Subdivider) rightAngled(item pendingFace) (Primitive, []float64, bool, error) {
	face := item.face
	angles := make([]float64, face.Len())

	for j := range face.Vertices {
		angle, err := face.CornerAngle(j)
		if err != nil {
			return Primitive{}, nil, false, err
		}
		angles[j] = angle

		if angle == 90 || (item.forced && angle > 90-s.Tolerance && angle < 90+s.Tolerance) {
			placement, err := s.Mapper.Place(
				face.Vertices[j],
				face.Vertices[face.Prev(j)],
				face.Vertices[face.Next(j)],
				face.Normal,
				0,
			)
			if err != nil {
				return Primitive{}, nil, false, err
			}
			return placement.primitive(Polygon), nil, true, nil
		}
	}
	return Primitive{}, angles, false, nil
}

// splitFace returns the faces to process in place of face. Triangles are
// bisected on their longest edge L-N at the point M where the side before L,
// projected onto L-N, ends: the left half replaces N with M, the right half
// replaces L with M. Larger polygons are first fanned into triangles from
// their first vertex.
func splitFace(face mesh.Face, angles []float64) []mesh.Face {
	n := face.Len()
	if n > 3 {
		fan := make([]mesh.Face, 0, n-2)
		for i := 1; i < n-1; i++ {
			fan = append(fan, mesh.Face{
				VertexIndexes: []int{face.VertexIndexes[0], face.VertexIndexes[i], face.VertexIndexes[i+1]},
				Vertices:      []geometry.Vector3{face.Vertices[0], face.Vertices[i], face.Vertices[i+1]},
				Normal:        face.Normal,
			})
		}
		return fan
	}

	longest := -1
	longestLength := -1.0
	lengths := make([]float64, n)
	for j := 0; j < n; j++ {
		lengths[j] = face.EdgeLength(j)
		if lengths[j] > longestLength {
			longestLength = lengths[j]
			longest = j
		}
	}

	prev := face.Prev(longest)
	next := face.Next(longest)

	base := math.Cos(angles[longest]*(math.Pi/180)) * lengths[prev]
	progress := base / longestLength
	mid := face.Vertices[longest].Lerp(face.Vertices[next], progress)

	left := face.WithVertex(next, mid)
	right := face.WithVertex(longest, mid)
	return []mesh.Face{left, right}
}
