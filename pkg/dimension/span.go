package dimension

import "math"

// Class biases which rail a span prefers. It never changes geometry.
//
// Lower values are preferred for low rails: short local dimensions hug the
// drawing while broad datum and overall-length dimensions stair-step above
// them, matching drafting convention.
type Class int

const (
	// ClassLocal is a single-component dimension.
	ClassLocal Class = iota
	// ClassDatum is a dimension from the measurement origin to a feature.
	ClassDatum
	// ClassOAL is the overall-length dimension.
	ClassOAL
)

// String returns the lowercase class name.
func (c Class) String() string {
	switch c {
	case ClassDatum:
		return "datum"
	case ClassOAL:
		return "oal"
	default:
		return "local"
	}
}

// Span is one axial dimension annotation. A and B are positions in the
// caller's coordinate space (physical millimeters in this application) and
// may be given in either order; the original values are preserved for
// drawing regardless of how the span is tiered.
type Span struct {
	A      float64 `json:"a" bson:"a"`
	B      float64 `json:"b" bson:"b"`
	Top    string  `json:"top" bson:"top"`
	Bottom string  `json:"bottom,omitempty" bson:"bottom,omitempty"`
	Class  Class   `json:"class" bson:"class"`
}

// Lo returns the smaller endpoint.
func (s Span) Lo() float64 { return math.Min(s.A, s.B) }

// Hi returns the larger endpoint.
func (s Span) Hi() float64 { return math.Max(s.A, s.B) }

// RailSpan is a span with its assigned rail. Rail 0 is closest to the
// drawing; higher rails stack outward.
type RailSpan struct {
	Span
	Rail int `json:"rail" bson:"rail"`
}
