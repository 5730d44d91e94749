package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/philipparndt/forgemesh/internal/logger"
	"github.com/philipparndt/forgemesh/internal/pipeline"
	"github.com/philipparndt/forgemesh/pkg/analysis"
)

var infoEdges int

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display information about a model and its decomposition",
	Long:  "Show dimensions, face statistics and how many primitives the model needs, with an estimate of the macro's build time.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().IntVarP(&infoEdges, "edges", "e", 0, "Also list the N longest edges")
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]
	out := cmd.OutOrStdout()

	p := pipeline.New(cfg, logger.Named("pipeline"))
	result, err := p.Run(cmd.Context(), filename, pipeline.Selection{})
	if err != nil {
		return err
	}

	report := analysis.AnalyzeMesh(result.Mesh)
	primitives := analysis.AnalyzePrimitives(result.Primitives, result.Stats)

	fmt.Fprintln(out, "Model Information")
	fmt.Fprintln(out, "=================")
	if result.Mesh.Name != "" {
		fmt.Fprintf(out, "Name: %s\n", result.Mesh.Name)
	}
	fmt.Fprintf(out, "File: %s\n\n", filename)

	fmt.Fprintln(out, "Mesh Statistics:")
	fmt.Fprintf(out, "  Vertices: %d\n", report.VertexCount)
	fmt.Fprintf(out, "  Faces: %d\n", report.FaceCount)
	sizes := make([]int, 0, len(report.FacesBySize))
	for size := range report.FacesBySize {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	for _, size := range sizes {
		fmt.Fprintf(out, "    %d-sided: %d\n", size, report.FacesBySize[size])
	}
	fmt.Fprintf(out, "  Edges: %d\n", report.EdgeCount)
	fmt.Fprintf(out, "  Right-angled corners: %d of %d\n", report.RightCorners, report.Corners)
	fmt.Fprintf(out, "  Surface Area: %.6f square units\n\n", report.SurfaceArea)

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(report.BoundingBox.Min))
	fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(report.BoundingBox.Max))
	fmt.Fprintf(out, "  Size: %s\n\n", analysis.FormatVector(report.Dimensions))

	fmt.Fprintln(out, "Edge Lengths:")
	fmt.Fprintf(out, "  Minimum: %s\n", analysis.FormatMeasurement(report.MinEdgeLength, ""))
	fmt.Fprintf(out, "  Maximum: %s\n", analysis.FormatMeasurement(report.MaxEdgeLength, ""))
	fmt.Fprintf(out, "  Average: %s\n\n", analysis.FormatMeasurement(report.AvgEdgeLength, ""))

	fmt.Fprintln(out, "Decomposition:")
	fmt.Fprintf(out, "  Quads: %d\n", primitives.Stats.Quads)
	fmt.Fprintf(out, "  Cuboids: %d\n", primitives.Stats.Cuboids)
	fmt.Fprintf(out, "  Plates: %d\n", primitives.Stats.Plates)
	fmt.Fprintf(out, "  Polygons: %d\n", primitives.Stats.Polygons)
	fmt.Fprintf(out, "  Deepest split: %d\n", primitives.Stats.DeepestSplit)
	fmt.Fprintf(out, "  Objects: %d (%d cubes, %d polygons)\n", len(result.Primitives), primitives.Cubes, primitives.Polygons)
	fmt.Fprintf(out, "  Estimated build time: %s\n", analysis.FormatDuration(primitives.EstimatedBuildTime))

	if infoEdges > 0 {
		edges := analysis.LongestEdges(report, infoEdges)
		fmt.Fprintf(out, "\nTop %d Longest Edges:\n", len(edges))
		fmt.Fprintf(out, "%-6s %-35s %-35s %-15s\n", "Index", "Start", "End", "Length")
		for i, edge := range edges {
			fmt.Fprintf(out, "%-6d %-35s %-35s %-15.6f\n",
				i+1, analysis.FormatVector(edge.Start), analysis.FormatVector(edge.End), edge.Length)
		}
	}
	return nil
}
