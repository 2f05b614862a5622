package dimension

import (
	"fmt"

	"github.com/shaftworks/shaftdraw/pkg/shaft"
	"github.com/shaftworks/shaftdraw/pkg/units"
)

// BuildOptions selects which standard annotations Build emits.
type BuildOptions struct {
	// Unit is the display unit for span labels.
	Unit units.Unit
	// Datums adds a chain of spans from the measurement origin to the
	// forward boundary of every explicit component.
	Datums bool
	// Diameters adds component diameters as bottom labels.
	Diameters bool
}

// Build constructs the standard dimension set for a drawing: one local span
// per resolved component, optional datum chains anchored at the measurement
// origin, and the overall-length span over the measurement window.
//
// All span endpoints are physical millimeters; official figures (datum and
// OAL labels) are computed through the window so they reflect measurement
// space. Zero-length components produce no spans.
func Build(resolved []shaft.Resolved, w shaft.Window, opts BuildOptions) []Span {
	var spans []Span

	for _, rc := range resolved {
		if rc.Length <= 0 {
			continue
		}
		s := Span{
			A:     rc.Start,
			B:     rc.End(),
			Top:   units.Format(rc.Length, opts.Unit),
			Class: ClassLocal,
		}
		if opts.Diameters {
			s.Bottom = bottomLabel(rc.Segment, opts.Unit)
		}
		spans = append(spans, s)
	}

	if opts.Datums {
		for _, rc := range resolved {
			if rc.IsAuto() {
				continue
			}
			end := rc.End()
			if m := w.ToMeasure(end); m > 0 && end <= w.End {
				spans = append(spans, Span{
					A:     w.Start,
					B:     end,
					Top:   units.Format(m, opts.Unit),
					Class: ClassDatum,
				})
			}
		}
	}

	if w.Length() > 0 {
		spans = append(spans, Span{
			A:      w.Start,
			B:      w.End,
			Top:    units.Format(w.Length(), opts.Unit),
			Bottom: "OAL",
			Class:  ClassOAL,
		})
	}

	return spans
}

// bottomLabel renders the kind-specific secondary label of a component.
func bottomLabel(s shaft.Segment, u units.Unit) string {
	switch s.Kind {
	case shaft.KindTaper:
		return fmt.Sprintf("⌀%s→⌀%s", units.Format(s.AftDiameter, u), units.Format(s.FwdDiameter, u))
	case shaft.KindThread:
		return fmt.Sprintf("⌀%s × %s", units.Format(s.Diameter, u), units.Format(s.Pitch, u))
	default:
		return "⌀" + units.Format(s.Diameter, u)
	}
}
