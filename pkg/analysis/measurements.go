// Package analysis reports statistics about loaded meshes and their
// decomposition.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/philipparndt/forgemesh/pkg/forge"
	"github.com/philipparndt/forgemesh/pkg/geometry"
	"github.com/philipparndt/forgemesh/pkg/mesh"
)

// Build time of a macro with the default key delays
const (
	BuildSetupTime     = 3 * time.Second
	BuildTimePerObject = 3500 * time.Millisecond
)

// EdgeInfo describes one distinct edge of the mesh
type EdgeInfo struct {
	From, To int
	Start    geometry.Vector3
	End      geometry.Vector3
	Length   float64
}

// MeshReport contains measurements of a mesh
type MeshReport struct {
	BoundingBox geometry.BoundingBox
	Dimensions  geometry.Vector3
	SurfaceArea float64
	VertexCount int
	FaceCount   int
	// FacesBySize counts faces by their number of vertices
	FacesBySize map[int]int
	// RightCorners counts face corners that round to 90 degrees
	RightCorners  int
	Corners       int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	Edges         []EdgeInfo
}

// AnalyzeMesh performs comprehensive analysis on a mesh. Edges shared by
// neighbouring faces are counted once.
func AnalyzeMesh(m *mesh.Mesh) *MeshReport {
	result := &MeshReport{
		BoundingBox: m.BoundingBox(),
		SurfaceArea: m.SurfaceArea(),
		VertexCount: len(m.Vertices),
		FaceCount:   m.FaceCount(),
		FacesBySize: lo.CountValuesBy(m.Faces, func(f mesh.Face) int { return f.Len() }),
		Edges:       make([]EdgeInfo, 0),
	}
	result.Dimensions = result.BoundingBox.Size()

	type edgeKey struct{ a, b int }
	seen := make(map[edgeKey]bool)

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, face := range m.Faces {
		for i := range face.Vertices {
			result.Corners++
			if angle, err := face.CornerAngle(i); err == nil && math.Round(angle) == 90 {
				result.RightCorners++
			}

			j := face.Next(i)
			a, b := face.VertexIndexes[i], face.VertexIndexes[j]
			if a > b {
				a, b = b, a
			}
			if seen[edgeKey{a, b}] {
				continue
			}
			seen[edgeKey{a, b}] = true

			length := face.EdgeLength(i)
			result.Edges = append(result.Edges, EdgeInfo{
				From:   face.VertexIndexes[i],
				To:     face.VertexIndexes[j],
				Start:  face.Vertices[i],
				End:    face.Vertices[j],
				Length: length,
			})

			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
		}
	}

	result.EdgeCount = len(result.Edges)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// LongestEdges returns the N longest edges in the mesh
func LongestEdges(result *MeshReport, count int) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.Edges))
	copy(edges, result.Edges)

	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Length > edges[j].Length
	})

	if count > len(edges) {
		count = len(edges)
	}

	return edges[:count]
}

// PrimitiveReport summarizes a decomposition
type PrimitiveReport struct {
	Stats              forge.Stats
	Cubes              int
	Polygons           int
	EstimatedBuildTime time.Duration
}

// AnalyzePrimitives counts primitives by type and estimates how long the
// macro takes to build them
func AnalyzePrimitives(primitives []forge.Primitive, stats forge.Stats) *PrimitiveReport {
	return &PrimitiveReport{
		Stats:              stats,
		Cubes:              lo.CountBy(primitives, func(p forge.Primitive) bool { return p.Type == forge.Cube }),
		Polygons:           lo.CountBy(primitives, func(p forge.Primitive) bool { return p.Type == forge.Polygon }),
		EstimatedBuildTime: EstimateBuildTime(len(primitives)),
	}
}

// EstimateBuildTime returns the time the editor needs to build count
// objects with the default key delays
func EstimateBuildTime(count int) time.Duration {
	return BuildSetupTime + time.Duration(count)*BuildTimePerObject
}

// FormatDuration formats a duration as hh:mm:ss
func FormatDuration(d time.Duration) string {
	total := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60)
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
