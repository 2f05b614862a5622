package pipeline

import (
	"encoding/json"

	"github.com/shaftworks/shaftdraw/pkg/drawing"
	"github.com/shaftworks/shaftdraw/pkg/drawing/sink"
	"github.com/shaftworks/shaftdraw/pkg/errors"
)

// RenderFromLayout renders a layout into every requested format.
func RenderFromLayout(l drawing.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		data, err := renderFormat(l, format, opts)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(l drawing.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l)
	case FormatPDF:
		return sink.RenderPDF(l)
	case FormatPNG:
		var popts []sink.PNGOption
		if opts.PixelsPerMM > 0 {
			popts = append(popts, sink.WithDensity(opts.PixelsPerMM))
		}
		return sink.RenderPNG(l, popts...)
	case FormatJSON:
		return json.MarshalIndent(l, "", "  ")
	default:
		return nil, ValidateFormat(format)
	}
}
