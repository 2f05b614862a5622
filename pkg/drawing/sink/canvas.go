package sink

import (
	"image/color"
	"sync"

	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/tdewolff/canvas"

	"github.com/shaftworks/shaftdraw/pkg/drawing"
	"github.com/shaftworks/shaftdraw/pkg/errors"
	"github.com/shaftworks/shaftdraw/pkg/shaft"
)

// Line weights in millimeters, following ISO 128 pen widths.
const (
	outlineWidth   = 0.5
	thinWidth      = 0.25
	arrowLength    = 2.5
	arrowHalfWidth = 0.8
	extensionDrop  = 2.0 // extension tick below/above a dimension line
)

var (
	colorOutline = color.RGBA{A: 255}
	colorAuto    = color.RGBA{R: 110, G: 110, B: 110, A: 255}
	colorDim     = color.RGBA{R: 20, G: 20, B: 140, A: 255}
)

var (
	fontOnce   sync.Once
	fontFamily *canvas.FontFamily
	fontErr    error
)

// family returns the shared Latin Modern face family used for all labels.
func family() (*canvas.FontFamily, error) {
	fontOnce.Do(func() {
		fam := canvas.NewFontFamily("latin-modern")
		if err := fam.LoadFont(lmroman10regular.TTF, 0, canvas.FontRegular); err != nil {
			fontErr = errors.Wrap(errors.ErrCodeInternal, err, "load embedded font")
			return
		}
		fontFamily = fam
	})
	return fontFamily, fontErr
}

// scene draws the layout onto a fresh canvas sized to the page.
// Coordinates are Cartesian page millimeters, origin bottom-left, matching
// the layout's coordinate space exactly.
func scene(l drawing.Layout) (*canvas.Canvas, error) {
	fam, err := family()
	if err != nil {
		return nil, err
	}

	c := canvas.New(l.Page.Width, l.Page.Height)
	ctx := canvas.NewContext(c)

	// Sheet background and border.
	ctx.SetFillColor(canvas.White)
	ctx.DrawPath(0, 0, canvas.Rectangle(l.Page.Width, l.Page.Height))
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(colorOutline)
	ctx.SetStrokeWidth(thinWidth)
	m := l.Page.Margin
	ctx.DrawPath(m, m, canvas.Rectangle(l.Page.Width-2*m, l.Page.Height-2*m))

	drawCenterline(ctx, l)
	for _, s := range l.Shapes {
		drawShape(ctx, l, s)
	}

	dimFace := fam.Face(8.0, colorDim, canvas.FontRegular, canvas.FontNormal)
	for _, r := range l.Rails {
		drawRail(ctx, r, dimFace)
	}

	drawTitleStrip(ctx, l, fam)
	return c, nil
}

func drawCenterline(ctx *canvas.Context, l drawing.Layout) {
	ctx.SetStrokeColor(colorOutline)
	ctx.SetStrokeWidth(thinWidth)
	ctx.SetDashes(0, 6, 1.5, 1, 1.5) // long-short chain per ISO 128
	ctx.MoveTo(l.CenterX1, l.CenterY)
	ctx.LineTo(l.CenterX2, l.CenterY)
	ctx.Stroke()
	ctx.SetDashes(0)
}

// drawShape renders one component profile symmetrically about the
// centerline: a rectangle for constant-diameter components, a trapezoid
// for tapers, crest hatching for threads.
func drawShape(ctx *canvas.Context, l drawing.Layout, s drawing.Shape) {
	if s.Width() <= 0 {
		return
	}

	stroke := colorOutline
	if s.Source == shaft.SourceAuto {
		stroke = colorAuto
	}
	ctx.SetStrokeColor(stroke)
	ctx.SetStrokeWidth(outlineWidth)
	ctx.SetFillColor(canvas.Transparent)

	cy := l.CenterY
	ctx.MoveTo(s.Left, cy-s.AftRadius)
	ctx.LineTo(s.Left, cy+s.AftRadius)
	ctx.LineTo(s.Right, cy+s.FwdRadius)
	ctx.LineTo(s.Right, cy-s.FwdRadius)
	ctx.Close()
	ctx.Stroke()

	if s.PitchMM > 0 {
		drawThreadCrests(ctx, l, s)
	}
}

// drawThreadCrests hatches a threaded section with one thin vertical line
// per pitch, the conventional simplified thread representation.
func drawThreadCrests(ctx *canvas.Context, l drawing.Layout, s drawing.Shape) {
	ctx.SetStrokeWidth(thinWidth)
	r := s.AftRadius
	for x := s.Left + s.PitchMM; x < s.Right; x += s.PitchMM {
		ctx.MoveTo(x, l.CenterY-r)
		ctx.LineTo(x, l.CenterY+r)
		ctx.Stroke()
	}
}

// drawRail renders one dimension line with arrowheads, extension ticks,
// and its labels.
func drawRail(ctx *canvas.Context, r drawing.RailLine, face *canvas.FontFace) {
	ctx.SetStrokeColor(colorDim)
	ctx.SetStrokeWidth(thinWidth)

	ctx.MoveTo(r.X1, r.Y)
	ctx.LineTo(r.X2, r.Y)
	ctx.Stroke()

	// Extension ticks at both ends.
	for _, x := range []float64{r.X1, r.X2} {
		ctx.MoveTo(x, r.Y-extensionDrop)
		ctx.LineTo(x, r.Y+extensionDrop/2)
		ctx.Stroke()
	}

	drawArrow(ctx, r.X1, r.Y, 1)
	drawArrow(ctx, r.X2, r.Y, -1)

	mid := (r.X1 + r.X2) / 2
	if r.Top != "" {
		ctx.DrawText(mid, r.Y+0.8, canvas.NewTextLine(face, r.Top, canvas.Center))
	}
	if r.Bottom != "" {
		ctx.DrawText(mid, r.Y-3.6, canvas.NewTextLine(face, r.Bottom, canvas.Center))
	}
}

// drawArrow fills a dimension arrowhead pointing outward; dir is +1 for a
// left end (arrow points left) and -1 for a right end.
func drawArrow(ctx *canvas.Context, x, y float64, dir float64) {
	ctx.SetFillColor(colorDim)
	ctx.MoveTo(x, y)
	ctx.LineTo(x+dir*arrowLength, y+arrowHalfWidth)
	ctx.LineTo(x+dir*arrowLength, y-arrowHalfWidth)
	ctx.Close()
	ctx.Fill()
	ctx.SetFillColor(canvas.Transparent)
}

func drawTitleStrip(ctx *canvas.Context, l drawing.Layout, fam *canvas.FontFamily) {
	titleFace := fam.Face(11.0, colorOutline, canvas.FontRegular, canvas.FontNormal)
	smallFace := fam.Face(8.0, colorOutline, canvas.FontRegular, canvas.FontNormal)

	y := l.Page.Margin + 3
	if l.Title != "" {
		ctx.DrawText(l.Page.Margin+3, y, canvas.NewTextLine(titleFace, l.Title, canvas.Left))
	}
	if l.ScaleLabel != "" {
		ctx.DrawText(l.Page.Width-l.Page.Margin-3, y, canvas.NewTextLine(smallFace, "SCALE "+l.ScaleLabel, canvas.Right))
	}
}
