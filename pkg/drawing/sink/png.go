package sink

import (
	"bytes"
	"image/png"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/shaftworks/shaftdraw/pkg/drawing"
	"github.com/shaftworks/shaftdraw/pkg/errors"
)

// DefaultPixelsPerMM is roughly 300 dpi, the usual print-proof density.
const DefaultPixelsPerMM = 11.8

// PNGOption configures PNG rasterization.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	pixelsPerMM float64
}

// WithDensity sets the rasterization density in pixels per millimeter.
func WithDensity(ppmm float64) PNGOption {
	return func(r *pngRenderer) { r.pixelsPerMM = ppmm }
}

// RenderPNG rasterizes the layout. Unlike SVG and PDF the output is pixel
// based; density controls how many pixels represent one page millimeter.
func RenderPNG(l drawing.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{pixelsPerMM: DefaultPixelsPerMM}
	for _, opt := range opts {
		opt(&r)
	}
	if err := errors.ValidatePositive("pixels_per_mm", r.pixelsPerMM); err != nil {
		return nil, err
	}

	c, err := scene(l)
	if err != nil {
		return nil, err
	}

	img := rasterizer.Draw(c, canvas.DPMM(r.pixelsPerMM), canvas.DefaultColorSpace)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
