package sink

import (
	"bytes"

	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/shaftworks/shaftdraw/pkg/drawing"
	"github.com/shaftworks/shaftdraw/pkg/errors"
)

// RenderPDF renders the layout as a single-page PDF at exact physical
// scale: page dimensions are the layout's page dimensions in millimeters.
func RenderPDF(l drawing.Layout) ([]byte, error) {
	c, err := scene(l)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := pdf.New(&buf, l.Page.Width, l.Page.Height, nil)
	c.RenderTo(w)
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write pdf")
	}
	return buf.Bytes(), nil
}
