package forge

import (
	"errors"
	"fmt"

	"github.com/philipparndt/forgemesh/pkg/mesh"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Options tunes the decomposition
type Options struct {
	Mapper    Mapper
	MaxDepth  int
	Tolerance float64
}

// DefaultOptions returns the options matching the editor's default frame
func DefaultOptions() Options {
	return Options{
		Mapper:    DefaultMapper(),
		MaxDepth:  DefaultMaxDepth,
		Tolerance: DefaultTolerance,
	}
}

// Stats summarizes one decomposition
type Stats struct {
	Faces        int
	Quads        int
	Cuboids      int
	Plates       int
	Polygons     int
	DeepestSplit int
}

// FaceRole is the kind of primitive an input face ended up in
type FaceRole int

const (
	RoleCuboid FaceRole = iota + 1
	RolePlate
	RolePolygon
)

func (r FaceRole) String() string {
	switch r {
	case RoleCuboid:
		return "cuboid"
	case RolePlate:
		return "plate"
	case RolePolygon:
		return "polygon"
	default:
		return "none"
	}
}

// Decomposition is the full result of one run
type Decomposition struct {
	// Primitives are ordered cuboids, then plates, then polygons
	Primitives []Primitive
	Stats      Stats
	// Roles holds, for every input face, the kind of primitive it became
	Roles []FaceRole
}

// Engine turns a face list into primitives: boxes first, then rectangular
// plates, then right-angled polygon plates
type Engine struct {
	opts Options
	log  *zap.Logger
}

// NewEngine creates an engine. A nil logger disables logging.
func NewEngine(opts Options, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	return &Engine{opts: opts, log: log}
}

// Decompose returns the primitives for the faces, ordered cuboids, then
// quads as flat cubes, then polygons
func (e *Engine) Decompose(faces []mesh.Face) ([]Primitive, error) {
	d, err := e.Run(faces)
	if err != nil {
		return nil, err
	}
	return d.Primitives, nil
}

// Run is Decompose that also reports what each stage produced and which
// primitive kind every face was consumed by
func (e *Engine) Run(faces []mesh.Face) (*Decomposition, error) {
	stats := Stats{Faces: len(faces)}

	for i, face := range faces {
		if err := face.Validate(); err != nil {
			return nil, &InvalidFaceError{Index: i, Err: err}
		}
	}

	quads, unmatched, err := PairQuads(faces)
	if err != nil {
		return nil, err
	}
	rest := lo.Map(unmatched, func(i int, _ int) mesh.Face {
		return faces[i]
	})
	stats.Quads = len(quads)

	cuboids, plates := GroupCuboids(quads)
	stats.Cuboids = len(cuboids)
	stats.Plates = len(plates)

	roles := make([]FaceRole, len(faces))
	for _, c := range cuboids {
		assignRole(roles, c.Quads, RoleCuboid)
	}
	assignRole(roles, plates, RolePlate)
	for _, i := range unmatched {
		roles[i] = RolePolygon
	}

	e.log.Debug("matched quads",
		zap.Int("faces", len(faces)),
		zap.Int("quads", len(quads)),
		zap.Int("cuboids", len(cuboids)),
		zap.Int("plates", len(plates)),
		zap.Int("remaining_faces", len(rest)))

	primitives := make([]Primitive, 0, len(cuboids)+len(plates)+len(rest))
	for i, c := range cuboids {
		p, err := c.Primitive(e.opts.Mapper)
		if err != nil {
			return nil, fmt.Errorf("cuboid %d: %w", i, err)
		}
		primitives = append(primitives, p)
	}

	for i, q := range plates {
		placement, err := q.Placement(e.opts.Mapper, 0)
		if err != nil {
			return nil, fmt.Errorf("quad %d: %w", i, err)
		}
		primitives = append(primitives, placement.primitive(Cube))
	}

	subdivider := &Subdivider{
		Mapper:    e.opts.Mapper,
		MaxDepth:  e.opts.MaxDepth,
		Tolerance: e.opts.Tolerance,
		Logger:    e.log,
	}
	polygons, err := subdivider.Subdivide(rest)
	if err != nil {
		return nil, originFace(err, unmatched)
	}
	stats.Polygons = len(polygons)
	stats.DeepestSplit = subdivider.DeepestSplit

	return &Decomposition{
		Primitives: append(primitives, polygons...),
		Stats:      stats,
		Roles:      roles,
	}, nil
}

func assignRole(roles []FaceRole, quads []Quad, role FaceRole) {
	for _, q := range quads {
		for _, i := range q.Sources {
			roles[i] = role
		}
	}
}

// originFace rewrites face indexes in subdivision errors from positions in
// the unmatched list to positions in the input
func originFace(err error, unmatched []int) error {
	var limit *SubdivisionLimitExceededError
	if errors.As(err, &limit) {
		limit.FaceIndex = unmatched[limit.FaceIndex]
		return limit
	}
	var invalid *InvalidFaceError
	if errors.As(err, &invalid) {
		invalid.Index = unmatched[invalid.Index]
		return invalid
	}
	return err
}
