package pipeline

import (
	"github.com/shaftworks/shaftdraw/pkg/dimension"
	"github.com/shaftworks/shaftdraw/pkg/document"
	"github.com/shaftworks/shaftdraw/pkg/drawing"
	"github.com/shaftworks/shaftdraw/pkg/shaft"
	"github.com/shaftworks/shaftdraw/pkg/units"
)

// ResolveComponents expands the authored segments of a document into the
// gap-free component list the rest of the pipeline works on.
func ResolveComponents(d *document.Document, opts Options) ([]shaft.Resolved, error) {
	var ropts []shaft.ResolveOption
	if opts.FallbackDiameter > 0 {
		ropts = append(ropts, shaft.WithFallbackDiameter(opts.FallbackDiameter))
	}
	return shaft.Resolve(d.OverallLength, d.Segments(), ropts...)
}

// BuildLayout computes the measurement window, dimension rails, and page
// placement for resolved geometry.
func BuildLayout(d *document.Document, resolved []shaft.Resolved, opts Options) (drawing.Layout, shaft.Window, error) {
	span := effectiveSpan(d, resolved)

	w, err := shaft.ComputeWindow(span, d.Segments())
	if err != nil {
		return drawing.Layout{}, shaft.Window{}, err
	}

	unit, err := units.Parse(opts.UnitsName(d))
	if err != nil {
		return drawing.Layout{}, shaft.Window{}, err
	}
	page, err := drawing.ParsePage(opts.PageName(d))
	if err != nil {
		return drawing.Layout{}, shaft.Window{}, err
	}

	spans := dimension.Build(resolved, w, dimension.BuildOptions{
		Unit:      unit,
		Datums:    opts.Datums,
		Diameters: !opts.NoDiameters,
	})

	var topts []dimension.Option
	if opts.TierOrigin != nil {
		topts = append(topts, dimension.WithTierOrigin(*opts.TierOrigin))
	}
	rails := dimension.Assign(spans, topts...)

	layout, err := drawing.Build(resolved, span, rails, page, opts.TitleText(d))
	if err != nil {
		return drawing.Layout{}, shaft.Window{}, err
	}
	return layout, w, nil
}

// effectiveSpan returns the axial extent drawings are sized to. A fixed
// overall length wins; an implicit-length shaft extends to its last
// resolved component.
func effectiveSpan(d *document.Document, resolved []shaft.Resolved) float64 {
	if d.OverallLength > 0 {
		return d.OverallLength
	}
	var span float64
	for _, rc := range resolved {
		if end := rc.End(); end > span {
			span = end
		}
	}
	return span
}
