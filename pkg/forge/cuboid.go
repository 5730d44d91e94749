package forge

import (
	"fmt"

	"github.com/samber/lo"
)

const (
	cuboidVertices   = 8
	quadsPerCorner   = 3
	minSharedIndexes = 2
)

// Cuboid is a group of quads that bound a rectangular box: 8 distinct vertex
// indexes, each touched by exactly 3 quads
type Cuboid struct {
	Quads []Quad
}

// Opposite returns the quad that shares no vertex index with the first quad
func (c Cuboid) Opposite() (Quad, bool) {
	first := c.Quads[0]
	for _, q := range c.Quads[1:] {
		if len(lo.Intersect(first.VertexIndexes, q.VertexIndexes)) == 0 {
			return q, true
		}
	}
	return Quad{}, false
}

// Height returns the distance between the centroids of the first quad and its
// opposite quad
func (c Cuboid) Height() (float64, error) {
	opposite, ok := c.Opposite()
	if !ok {
		return 0, fmt.Errorf("cuboid has no quad opposite its first quad")
	}
	return c.Quads[0].Centroid().Distance(opposite.Centroid()), nil
}

// Primitive returns the cube primitive for the box, anchored at the first
// vertex of its first quad
func (c Cuboid) Primitive(m Mapper) (Primitive, error) {
	height, err := c.Height()
	if err != nil {
		return Primitive{}, err
	}
	placement, err := c.Quads[0].Placement(m, height)
	if err != nil {
		return Primitive{}, err
	}
	return placement.primitive(Cube), nil
}

// GroupCuboids finds groups of quads that enclose a box. For each quad that
// has an adjacent quad later in the list (exactly 2 shared indexes), the
// group grows to every remaining quad sharing at least 2 indexes with the
// vertices collected so far. A group is a cuboid when it touches exactly 8
// vertices, each by exactly 3 of its quads; its quads then leave the pool.
//
// Cuboids are returned in discovery order; rest keeps the input order.
func GroupCuboids(quads []Quad) (cuboids []Cuboid, rest []Quad) {
	consumed := make([]bool, len(quads))

	for i := range quads {
		if consumed[i] || !hasAdjacent(quads, consumed, i) {
			continue
		}

		group := collectGroup(quads, consumed, i)
		if !isCuboid(quads, group) {
			continue
		}

		cuboid := Cuboid{Quads: make([]Quad, 0, len(group))}
		for _, g := range group {
			consumed[g] = true
			cuboid.Quads = append(cuboid.Quads, quads[g])
		}
		cuboids = append(cuboids, cuboid)
	}

	for i, q := range quads {
		if !consumed[i] {
			rest = append(rest, q)
		}
	}
	return cuboids, rest
}

func hasAdjacent(quads []Quad, consumed []bool, i int) bool {
	for j := i + 1; j < len(quads); j++ {
		if !consumed[j] && len(lo.Intersect(quads[i].VertexIndexes, quads[j].VertexIndexes)) == minSharedIndexes {
			return true
		}
	}
	return false
}

// collectGroup returns the indexes of the connected set of quads starting at
// quads[start], in the order they joined
func collectGroup(quads []Quad, consumed []bool, start int) []int {
	group := []int{start}
	inGroup := map[int]bool{start: true}
	combined := lo.Uniq(quads[start].VertexIndexes)

	for grown := true; grown; {
		grown = false
		for j, q := range quads {
			if consumed[j] || inGroup[j] {
				continue
			}
			if len(lo.Intersect(combined, q.VertexIndexes)) < minSharedIndexes {
				continue
			}
			group = append(group, j)
			inGroup[j] = true
			combined = lo.Union(combined, q.VertexIndexes)
			grown = true
		}
	}
	return group
}

func isCuboid(quads []Quad, group []int) bool {
	touches := lo.CountValues(lo.FlatMap(group, func(g int, _ int) []int {
		return quads[g].VertexIndexes
	}))
	if len(touches) != cuboidVertices {
		return false
	}
	return lo.EveryBy(lo.Values(touches), func(n int) bool {
		return n == quadsPerCorner
	})
}
