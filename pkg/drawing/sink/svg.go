package sink

import (
	"bytes"

	svgr "github.com/tdewolff/canvas/renderers/svg"

	"github.com/shaftworks/shaftdraw/pkg/drawing"
	"github.com/shaftworks/shaftdraw/pkg/errors"
)

// RenderSVG renders the layout as an SVG document whose user units are
// millimeters, preserving exact physical scale.
func RenderSVG(l drawing.Layout) ([]byte, error) {
	c, err := scene(l)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := svgr.New(&buf, l.Page.Width, l.Page.Height, nil)
	c.RenderTo(w)
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write svg")
	}
	return buf.Bytes(), nil
}
