package drawing

import (
	"fmt"

	"github.com/shaftworks/shaftdraw/pkg/dimension"
	"github.com/shaftworks/shaftdraw/pkg/shaft"
)

// Vertical budget, in page millimeters, for the fixed furniture around the
// geometry band.
const (
	railPitch   = 9.0  // distance between stacked dimension rails
	railGap     = 6.0  // gap between the profile and rail 0
	titleHeight = 12.0 // title strip at the bottom of the sheet
	minGeomBand = 20.0 // geometry band never collapses below this
)

// Shape is one component profile on the drawing plane. All coordinates are
// page millimeters; the profile is symmetric about the layout's CenterY.
type Shape struct {
	ID     string       `json:"id" bson:"id"`
	Kind   shaft.Kind   `json:"kind" bson:"kind"`
	Source shaft.Source `json:"source" bson:"source"`

	Left      float64 `json:"left" bson:"left"`
	Right     float64 `json:"right" bson:"right"`
	AftRadius float64 `json:"aft_radius" bson:"aft_radius"`
	FwdRadius float64 `json:"fwd_radius" bson:"fwd_radius"`
	PitchMM   float64 `json:"pitch_mm,omitempty" bson:"pitch_mm,omitempty"` // drawing-mm thread pitch, 0 for unthreaded
}

// Width returns the axial extent of the shape on the page.
func (s Shape) Width() float64 { return s.Right - s.Left }

// RailLine is one dimension annotation placed on its rail.
type RailLine struct {
	X1     float64         `json:"x1" bson:"x1"`
	X2     float64         `json:"x2" bson:"x2"`
	Y      float64         `json:"y" bson:"y"`
	Top    string          `json:"top,omitempty" bson:"top,omitempty"`
	Bottom string          `json:"bottom,omitempty" bson:"bottom,omitempty"`
	Class  dimension.Class `json:"class" bson:"class"`
}

// Layout is the complete render-ready page. Sinks draw it verbatim; they
// never recompute scale or tiering.
type Layout struct {
	Page    Page    `json:"page" bson:"page"`
	Scale   Scale   `json:"scale" bson:"scale"`
	CenterY float64 `json:"center_y" bson:"center_y"`

	Shapes []Shape    `json:"shapes" bson:"shapes"`
	Rails  []RailLine `json:"rails" bson:"rails"`

	// Centerline extent, slightly past the profile on both sides.
	CenterX1 float64 `json:"center_x1" bson:"center_x1"`
	CenterX2 float64 `json:"center_x2" bson:"center_x2"`

	Title      string `json:"title,omitempty" bson:"title,omitempty"`
	ScaleLabel string `json:"scale_label" bson:"scale_label"`
}

// Build places resolved geometry and tiered dimension spans onto a page.
//
// The vertical space inside the margins is split into a title strip, the
// geometry band, and one rail slot per occupied dimension rail; the
// geometry band gets whatever remains, floored at minGeomBand so crowded
// rail stacks shrink the profile rather than pushing it off the sheet.
// overallLength is the effective axial span (callers substitute the
// resolved content extent when the authored length is implicit).
func Build(resolved []shaft.Resolved, overallLength float64, rails []dimension.RailSpan, page Page, title string) (Layout, error) {
	if err := page.Validate(); err != nil {
		return Layout{}, err
	}

	railCount := dimension.RailCount(rails)
	geomH := page.ContentHeight() - titleHeight - railGap - float64(railCount)*railPitch
	if geomH < minGeomBand {
		geomH = minGeomBand
	}

	scale, err := ComputeScale(resolved, overallLength, page.ContentWidth(), geomH)
	if err != nil {
		return Layout{}, err
	}

	// Center the profile horizontally in the content area.
	span := overallLength
	if span < minAxialLength {
		span = minAxialLength
	}
	scale.OriginX = page.Margin + (page.ContentWidth()-span*scale.Factor)/2

	l := Layout{
		Page:       page,
		Scale:      scale,
		CenterY:    page.Margin + titleHeight + geomH/2,
		Title:      title,
		ScaleLabel: scaleLabel(scale.Factor),
	}

	for _, rc := range resolved {
		l.Shapes = append(l.Shapes, Shape{
			ID:        rc.ID,
			Kind:      rc.Kind,
			Source:    rc.Source,
			Left:      scale.ToX(rc.Start),
			Right:     scale.ToX(rc.End()),
			AftRadius: scale.ToRadius(rc.AftFacingDiameter() / 2),
			FwdRadius: scale.ToRadius(rc.FwdFacingDiameter() / 2),
			PitchMM:   threadPitchMM(rc, scale),
		})
	}

	railBase := page.Margin + titleHeight + geomH + railGap
	for _, rs := range rails {
		l.Rails = append(l.Rails, RailLine{
			X1:     scale.ToX(rs.Lo()),
			X2:     scale.ToX(rs.Hi()),
			Y:      railBase + float64(rs.Rail)*railPitch,
			Top:    rs.Top,
			Bottom: rs.Bottom,
			Class:  rs.Class,
		})
	}

	l.CenterX1 = scale.ToX(scale.MinX) - 5
	l.CenterX2 = scale.ToX(scale.MinX+span) + 5

	return l, nil
}

// threadPitchMM converts a thread's pitch into drawing millimeters for
// crest hatching; zero suppresses hatching for unthreaded components and
// for pitches too fine to draw distinctly.
func threadPitchMM(rc shaft.Resolved, s Scale) float64 {
	if rc.Kind != shaft.KindThread || rc.Pitch <= 0 {
		return 0
	}
	p := s.ToRadius(rc.Pitch) // same linear factor as any length
	if p < 0.75 {
		return 0
	}
	return p
}

// scaleLabel renders the drawing scale as a ratio, e.g. "1:4.2".
func scaleLabel(factor float64) string {
	if factor <= 0 {
		return ""
	}
	if factor >= 1 {
		return fmt.Sprintf("%.3g:1", factor)
	}
	return fmt.Sprintf("1:%.3g", 1/factor)
}
