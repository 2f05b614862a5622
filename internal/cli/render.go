package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shaftworks/shaftdraw/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output           string   // output file path (or base path for multiple formats)
	formats          []string // output formats: "svg", "pdf", "png", "json"
	page             string   // sheet size: "a4", "a3", "letter"
	units            string   // display units: "mm", "in", "fractional-inch"
	title            string   // drawing title override
	datums           bool     // emit datum dimension chains
	noDiameters      bool     // suppress diameter labels
	origin           float64  // tier origin for rail packing
	fallbackDiameter float64  // diameter for auto bodies with no neighbor to inherit from
	density          float64  // PNG pixels per millimeter
	noCache          bool     // disable the result cache
	refresh          bool     // recompute even when cached
}

// newRenderCmd creates the render command for generating drawings.
// It supports multiple output formats (SVG, PDF, PNG, JSON) in one run.
//
// Default settings:
//   - format: svg
//   - page and units: whatever the document declares (a4 / mm if silent)
//   - diameters: shown
func newRenderCmd() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a shaft document to a dimensioned drawing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			var origin *float64
			if cmd.Flags().Changed("origin") {
				origin = &opts.origin
			}
			return runRender(cmd, args[0], &opts, origin)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), pdf, png, json (comma-separated)")
	cmd.Flags().StringVar(&opts.page, "page", "", "sheet size: a4, a3, letter (default from document)")
	cmd.Flags().StringVar(&opts.units, "units", "", "display units: mm, in, fractional-inch (default from document)")
	cmd.Flags().StringVar(&opts.title, "title", "", "drawing title (default from document)")
	cmd.Flags().BoolVar(&opts.datums, "datums", false, "emit datum dimension chains from the measurement origin")
	cmd.Flags().BoolVar(&opts.noDiameters, "no-diameters", false, "suppress diameter labels")
	cmd.Flags().Float64Var(&opts.origin, "origin", 0, "tier dimensions by distance from this position (mm)")
	cmd.Flags().Float64Var(&opts.fallbackDiameter, "fallback-diameter", 0, "diameter for auto bodies with no neighbor (mm)")
	cmd.Flags().Float64Var(&opts.density, "density", 0, "PNG density in pixels per millimeter")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that
// extension. This is used when generating multiple files.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender executes the pipeline on the input document and writes every
// requested format to disk.
func runRender(cmd *cobra.Command, input string, opts *renderOpts, origin *float64) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	runner := newRunner(ctx, opts.noCache)
	defer runner.Close()

	p := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Path:             input,
		Title:            opts.title,
		Page:             opts.page,
		Units:            opts.units,
		Datums:           opts.datums,
		NoDiameters:      opts.noDiameters,
		TierOrigin:       origin,
		FallbackDiameter: opts.fallbackDiameter,
		Formats:          opts.formats,
		PixelsPerMM:      opts.density,
		Refresh:          opts.refresh,
		Logger:           logger,
	})
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	if err := writeArtifacts(input, opts, result.Artifacts); err != nil {
		return err
	}

	printStats(result.Stats.ComponentCount, result.Stats.RailCount,
		result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes each rendered format to its output path.
func writeArtifacts(input string, opts *renderOpts, artifacts map[string][]byte) error {
	if len(opts.formats) == 1 {
		path := opts.output
		if path == "" {
			path = basePath("", input) + "." + opts.formats[0]
		}
		return writeArtifact(path, artifacts[opts.formats[0]])
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		if err := writeArtifact(base+"."+format, artifacts[format]); err != nil {
			return err
		}
	}
	return nil
}

func writeArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	printFile(path)
	return nil
}
