// Package pipeline provides the core drawing pipeline for Shaftdraw.
//
// This package implements the complete load → resolve → layout → render
// pipeline shared by the CLI and the HTTP API. Centralizing it keeps cache
// keys, defaults, and stage behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Parse and validate a TOML shaft document
//  2. Resolve: Expand the authored segments into a gap-free component list
//  3. Layout: Compute the measurement window, scale, dimension rails, and
//     page placement
//  4. Render: Generate output in various formats (SVG, PDF, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Path:    "propeller.toml",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/shaftworks/shaftdraw/pkg/cache"
	"github.com/shaftworks/shaftdraw/pkg/document"
	"github.com/shaftworks/shaftdraw/pkg/drawing"
	"github.com/shaftworks/shaftdraw/pkg/errors"
	"github.com/shaftworks/shaftdraw/pkg/shaft"
)

// Default values shared by CLI and API.
const (
	// DefaultPage is the output sheet used when neither the document nor
	// the options name one.
	DefaultPage = "a4"

	// DefaultUnits is the display unit used when neither the document nor
	// the options name one.
	DefaultUnits = "mm"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPDF:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// Options contains all configuration for the drawing pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of Path or Source must be set.
	Path   string `json:"path,omitempty"`
	Source []byte `json:"source,omitempty"`

	// Overrides for document-level settings. Empty means "use the
	// document's value, then the default".
	Title string `json:"title,omitempty"`
	Page  string `json:"page,omitempty"`
	Units string `json:"units,omitempty"`

	// Layout options
	Datums           bool     `json:"datums,omitempty"`
	NoDiameters      bool     `json:"no_diameters,omitempty"`
	TierOrigin       *float64 `json:"tier_origin,omitempty"`
	FallbackDiameter float64  `json:"fallback_diameter,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	PixelsPerMM float64  `json:"pixels_per_mm,omitempty"` // PNG density

	// Refresh bypasses the cache and overwrites stale entries.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the parsed shaft document.
	Document *document.Document

	// DocHash is the content hash of the raw document bytes.
	DocHash string

	// Resolved is the gap-free component list.
	Resolved []shaft.Resolved

	// Window is the measurement frame for official dimensions.
	Window shaft.Window

	// Layout is the render-ready page.
	Layout drawing.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ComponentCount int
	AutoCount      int
	RailCount      int
	LoadTime       time.Duration
	ResolveTime    time.Duration
	LayoutTime     time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for each cached pipeline stage. Load and
// resolve are recomputed every run; they are far cheaper than a cache
// round-trip.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, pdf, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Path == "" && len(o.Source) == 0 {
		return errors.New(errors.ErrCodeInvalidDocument, "path or source is required")
	}
	if o.Path != "" && len(o.Source) > 0 {
		return errors.New(errors.ErrCodeInvalidDocument, "path and source are mutually exclusive")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// PageName returns the effective sheet name for a document.
func (o *Options) PageName(d *document.Document) string {
	switch {
	case o.Page != "":
		return o.Page
	case d != nil && d.Page != "":
		return d.Page
	default:
		return DefaultPage
	}
}

// UnitsName returns the effective display-unit name for a document.
func (o *Options) UnitsName(d *document.Document) string {
	switch {
	case o.Units != "":
		return o.Units
	case d != nil && d.Units != "":
		return d.Units
	default:
		return DefaultUnits
	}
}

// TitleText returns the effective drawing title for a document.
func (o *Options) TitleText(d *document.Document) string {
	if o.Title != "" {
		return o.Title
	}
	if d != nil {
		return d.Title
	}
	return ""
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(d *document.Document) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Page:             o.PageName(d),
		Units:            o.UnitsName(d),
		Title:            o.TitleText(d),
		Datums:           o.Datums,
		Diameters:        !o.NoDiameters,
		TierOrigin:       o.TierOrigin,
		FallbackDiameter: o.FallbackDiameter,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	ppmm := o.PixelsPerMM
	if format != FormatPNG {
		ppmm = 0 // density only affects rasterization
	}
	return cache.ArtifactKeyOpts{
		Format:      format,
		PixelsPerMM: ppmm,
	}
}
