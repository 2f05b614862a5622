package shaft

import "math"

// Kind identifies the concrete segment variant.
//
// The set of kinds is closed: geometry code switches exhaustively over it
// instead of dispatching through an interface, so adding a kind is a
// compile-visible change in every switch.
type Kind int

// Segment kinds in drawing priority order. When several segments share the
// same start position, lower values render first.
const (
	KindBody Kind = iota
	KindTaper
	KindThread
	KindLiner
)

// String returns the lowercase kind name used in documents and logs.
func (k Kind) String() string {
	switch k {
	case KindBody:
		return "body"
	case KindTaper:
		return "taper"
	case KindThread:
		return "thread"
	case KindLiner:
		return "liner"
	default:
		return "unknown"
	}
}

// Segment is one axial component of the shaft. All positions and diameters
// are canonical millimeters measured from the AFT (zero) end.
//
// Only the fields relevant to a segment's Kind are meaningful:
//
//	Body   — Diameter
//	Taper  — AftDiameter, FwdDiameter (either direction may be larger)
//	Thread — Diameter (major), Pitch, ExcludeFromOAL
//	Liner  — Diameter (outer)
type Segment struct {
	ID     string  `json:"id" toml:"id" bson:"id"`
	Kind   Kind    `json:"kind" toml:"-" bson:"kind"`
	Start  float64 `json:"start" toml:"start" bson:"start"`
	Length float64 `json:"length" toml:"length" bson:"length"`

	Diameter    float64 `json:"diameter,omitempty" toml:"diameter" bson:"diameter,omitempty"`
	AftDiameter float64 `json:"aft_diameter,omitempty" toml:"aft_diameter" bson:"aft_diameter,omitempty"`
	FwdDiameter float64 `json:"fwd_diameter,omitempty" toml:"fwd_diameter" bson:"fwd_diameter,omitempty"`

	Pitch          float64 `json:"pitch,omitempty" toml:"pitch" bson:"pitch,omitempty"`
	ExcludeFromOAL bool    `json:"exclude_from_oal,omitempty" toml:"exclude_from_oal" bson:"exclude_from_oal,omitempty"`
}

// End returns the segment's forward boundary (Start + Length).
func (s Segment) End() float64 { return s.Start + s.Length }

// MaxDiameter returns the largest diameter the segment presents anywhere
// along its length. Used by the layout scaler for the radial fit.
func (s Segment) MaxDiameter() float64 {
	switch s.Kind {
	case KindBody, KindThread, KindLiner:
		return s.Diameter
	case KindTaper:
		return math.Max(s.AftDiameter, s.FwdDiameter)
	default:
		return 0
	}
}

// AftFacingDiameter returns the diameter the segment presents at its AFT
// boundary. Auto-body diameter inheritance reads this off a downstream
// neighbor.
func (s Segment) AftFacingDiameter() float64 {
	if s.Kind == KindTaper {
		return s.AftDiameter
	}
	return s.Diameter
}

// FwdFacingDiameter returns the diameter the segment presents at its FWD
// boundary. Auto-body diameter inheritance reads this off an upstream
// neighbor.
func (s Segment) FwdFacingDiameter() float64 {
	if s.Kind == KindTaper {
		return s.FwdDiameter
	}
	return s.Diameter
}

// Source discriminates authored segments from derived fillers.
type Source int

const (
	// SourceExplicit marks a segment authored by the user.
	SourceExplicit Source = iota
	// SourceAuto marks a filler body derived by Resolve.
	SourceAuto
)

// String returns "explicit" or "auto".
func (s Source) String() string {
	if s == SourceAuto {
		return "auto"
	}
	return "explicit"
}

// Resolved is a segment enriched with its provenance. Auto segments are
// always bodies and carry deterministic IDs derived from their geometry.
type Resolved struct {
	Segment
	Source Source `json:"source" bson:"source"`
}

// IsAuto reports whether the component is a derived filler.
func (r Resolved) IsAuto() bool { return r.Source == SourceAuto }
