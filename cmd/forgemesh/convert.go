package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipparndt/forgemesh/internal/logger"
	"github.com/philipparndt/forgemesh/internal/pipeline"
	"github.com/philipparndt/forgemesh/pkg/analysis"
	"github.com/philipparndt/forgemesh/pkg/forge"
)

// selectionFlags are shared by every command that outputs primitives
type selectionFlags struct {
	primitiveType string
	offset        int
	limit         int
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.primitiveType, "type", "t", "", "Only output primitives of this type (cube or polygon)")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "Skip this many primitives")
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 0, "Output at most this many primitives (0 for all)")
}

func (f *selectionFlags) selection() (pipeline.Selection, error) {
	sel := pipeline.Selection{Offset: f.offset, Limit: f.limit}
	if f.offset < 0 || f.limit < 0 {
		return sel, fmt.Errorf("offset and limit must not be negative")
	}
	if f.primitiveType != "" {
		t, err := forge.ParsePrimitiveType(f.primitiveType)
		if err != nil {
			return sel, err
		}
		sel.Type = t
	}
	return sel, nil
}

// convertFlags are shared by convert and watch
type convertFlags struct {
	selectionFlags
	output     string
	preview    string
	previewPNG string
}

func (f *convertFlags) register(cmd *cobra.Command) {
	f.selectionFlags.register(cmd)
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Macro output file (default: model name with .ahk)")
	cmd.Flags().StringVarP(&f.preview, "preview", "p", "", "Also write an OpenSCAD preview of the primitives to this file")
	cmd.Flags().StringVar(&f.previewPNG, "preview-png", "", "Also write a PNG of the model, faces coloured by the primitive they became")
}

func (f *convertFlags) outputPath(model string) string {
	if f.output != "" {
		return f.output
	}
	return strings.TrimSuffix(model, filepath.Ext(model)) + ".ahk"
}

var convertOpts convertFlags

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert a model into an AutoHotkey build macro",
	Long: `Decompose an OBJ, STL or OpenSCAD model into primitives and write an
AutoHotkey macro that spawns and places them in the Forge editor.

Use --offset and --limit to split large models into several macros.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args[0], &convertOpts)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertOpts.register(convertCmd)
}

func runConvert(cmd *cobra.Command, filename string, opts *convertFlags) error {
	sel, err := opts.selection()
	if err != nil {
		return err
	}

	p := pipeline.New(cfg, logger.Named("pipeline"))
	result, err := p.Run(cmd.Context(), filename, sel)
	if err != nil {
		return err
	}

	output := opts.outputPath(filename)
	if err := p.WriteMacro(output, result.Selected); err != nil {
		return err
	}
	logger.Info("wrote macro", zap.String("path", output), zap.Int("primitives", len(result.Selected)))

	if opts.preview != "" {
		if err := p.WritePreview(opts.preview, result.Selected); err != nil {
			return err
		}
		logger.Info("wrote preview", zap.String("path", opts.preview))
	}

	if opts.previewPNG != "" {
		if err := p.WriteSnapshot(opts.previewPNG, result); err != nil {
			return err
		}
		logger.Info("wrote snapshot", zap.String("path", opts.previewPNG))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d of %d primitives to %s (estimated build time %s)\n",
		len(result.Selected), len(result.Primitives), output,
		analysis.FormatDuration(analysis.EstimateBuildTime(len(result.Selected))))
	return nil
}
