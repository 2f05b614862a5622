package shaft

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/shaftworks/shaftdraw/pkg/errors"
)

// DefaultAutoDiameter is the fallback diameter for an auto body with no
// explicit neighbor on either side. It is a product constant, not derivable
// from geometry; override per call with WithFallbackDiameter.
const DefaultAutoDiameter = 25.0

// autoNamespace seeds the SHA1 UUIDs of auto bodies so that identical
// geometry always yields identical identifiers across calls and processes.
var autoNamespace = uuid.MustParse("8f14b7a2-31d4-4c5a-9d6e-02e7c14a9b30")

// ResolveOption adjusts gap-filling behavior.
type ResolveOption func(*resolver)

// WithFallbackDiameter overrides DefaultAutoDiameter for auto bodies that
// have no explicit neighbor to inherit a diameter from.
func WithFallbackDiameter(d float64) ResolveOption {
	return func(r *resolver) { r.fallback = d }
}

type resolver struct {
	fallback float64
}

// Resolve produces the complete, render-ready component list for a shaft:
// every authored segment plus auto bodies covering the gaps between them.
//
// overallLength > 0 means the shaft length is explicitly fixed; leading and
// trailing gaps to the shaft ends are then filled too. overallLength == 0
// means the shaft implicitly ends where authored content ends and only
// interior gaps are filled. With no authored segments at all, a fixed length
// yields a single auto body spanning the whole shaft and an implicit length
// yields nothing.
//
// The result is a pure function of the inputs: identical inputs produce an
// identical, identically ordered output, including auto-body IDs. Downstream
// selection and rendering key off component identity across frames, so this
// determinism is load-bearing, not cosmetic.
//
// Overlapping or partially authored inputs are tolerated (negative gaps are
// skipped); only non-finite or negative geometry is rejected, since that
// indicates a bug upstream rather than a mid-edit state.
func Resolve(overallLength float64, segs []Segment, opts ...ResolveOption) ([]Resolved, error) {
	r := resolver{fallback: DefaultAutoDiameter}
	for _, opt := range opts {
		opt(&r)
	}

	if err := errors.ValidateFinite("overall_length", overallLength); err != nil {
		return nil, err
	}
	if overallLength < 0 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "overall_length must be >= 0, got %v", overallLength)
	}
	for _, s := range segs {
		if err := validateSegment(s); err != nil {
			return nil, err
		}
	}

	explicit := slices.Clone(segs)
	slices.SortStableFunc(explicit, func(a, b Segment) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		default:
			return 0
		}
	})

	var out []Resolved

	if len(explicit) == 0 {
		if overallLength > 0 {
			out = append(out, r.autoBody(0, overallLength, explicit))
		}
		return out, nil
	}

	// Leading gap to the AFT end, only when the length is explicitly fixed.
	if overallLength > 0 && explicit[0].Start > 0 {
		out = append(out, r.autoBody(0, explicit[0].Start, explicit))
	}

	for i, s := range explicit {
		out = append(out, Resolved{Segment: s, Source: SourceExplicit})
		if i+1 < len(explicit) {
			if gap := explicit[i+1].Start - s.End(); gap > 0 {
				out = append(out, r.autoBody(s.End(), explicit[i+1].Start, explicit))
			}
		}
	}

	// Trailing gap to the FWD end.
	last := explicit[len(explicit)-1]
	if overallLength > 0 && overallLength-last.End() > 0 {
		out = append(out, r.autoBody(last.End(), overallLength, explicit))
	}

	slices.SortStableFunc(out, func(a, b Resolved) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		}
		if a.Source != b.Source {
			return int(a.Source) - int(b.Source) // explicit before auto
		}
		return renderRank(a) - renderRank(b)
	})

	return out, nil
}

// renderRank orders same-start components for render determinism:
// explicit body, auto body, taper, thread, liner.
func renderRank(r Resolved) int {
	if r.Kind == KindBody {
		if r.Source == SourceAuto {
			return 1
		}
		return 0
	}
	switch r.Kind {
	case KindTaper:
		return 2
	case KindThread:
		return 3
	default:
		return 4
	}
}

// autoBody builds a filler body over [start, end) inheriting its diameter
// from the nearest explicit neighbor.
func (r resolver) autoBody(start, end float64, sorted []Segment) Resolved {
	return Resolved{
		Segment: Segment{
			ID:       AutoID(start, end),
			Kind:     KindBody,
			Start:    start,
			Length:   end - start,
			Diameter: r.inheritDiameter(start, sorted),
		},
		Source: SourceAuto,
	}
}

// inheritDiameter picks the auto-body diameter by nearest-neighbor lookup:
// the closest upstream explicit body wins; failing that, the closest
// upstream component's forward-facing diameter; failing that (gap before
// everything), the closest downstream component's aft-facing diameter.
// A neighbor with no diameter yet does not stop the chain; every step
// requires a positive diameter before it can win.
func (r resolver) inheritDiameter(gapStart float64, sorted []Segment) float64 {
	var upstream, upstreamBody *Segment
	for i := range sorted {
		s := &sorted[i]
		if s.Start >= gapStart && s.End() > gapStart {
			break
		}
		upstream = s
		if s.Kind == KindBody {
			upstreamBody = s
		}
	}
	if upstreamBody != nil && upstreamBody.Diameter > 0 {
		return upstreamBody.Diameter
	}
	if upstream != nil {
		if d := upstream.FwdFacingDiameter(); d > 0 {
			return d
		}
	}
	for i := range sorted {
		s := &sorted[i]
		if s.Start >= gapStart {
			if d := s.AftFacingDiameter(); d > 0 {
				return d
			}
		}
	}
	return r.fallback
}

// AutoID derives the stable identifier of an auto body from its geometry.
// Positions are fixed to 3 decimal places so float noise below a micrometer
// cannot change the identity.
func AutoID(start, end float64) string {
	name := fmt.Sprintf("auto:%.3f:%.3f", start, end)
	return uuid.NewSHA1(autoNamespace, []byte(name)).String()
}

func validateSegment(s Segment) error {
	if err := errors.ValidateFinite("start", s.Start); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGeometry, err, "segment %s", s.ID)
	}
	if err := errors.ValidateFinite("length", s.Length); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGeometry, err, "segment %s", s.ID)
	}
	if s.Length < 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "segment %s: length must be >= 0, got %v", s.ID, s.Length)
	}
	return nil
}
