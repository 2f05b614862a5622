package dimension

import (
	"math"
	"slices"
	"strings"
)

// DedupeTolerance is the endpoint tolerance, in caller units, within which
// two spans with identical labels count as the same annotation.
const DedupeTolerance = 1e-3

// Option adjusts how Assign tiers spans.
type Option func(*assigner)

// WithTierOrigin tiers spans by the absolute distance of each endpoint from
// origin instead of by raw position. Use this when annotations should stack
// outward from a datum rather than left to right.
func WithTierOrigin(origin float64) Option {
	return func(a *assigner) {
		a.origin = origin
		a.useOrigin = true
	}
}

type assigner struct {
	origin    float64
	useOrigin bool
}

// item carries a span through tiering with its transformed interval.
// lo/hi decide rail placement only; the span's own endpoints are preserved
// untouched for drawing.
type item struct {
	span   Span
	lo, hi float64
	idx    int
}

// Assign packs spans into non-overlapping horizontal rails.
//
// Coincident spans (endpoints equal within DedupeTolerance after order
// normalization, identical label pair) are collapsed first, keeping the one
// whose class tiers lowest; duplicate annotations produced by different
// upstream derivations would otherwise force a needless stair-step.
//
// Remaining spans are processed in a deterministic order (interval start,
// class, interval end, labels) and each is placed on the lowest rail whose
// last interval ends at or before the span's start. Touching endpoints are
// not overlaps and may share a rail. Identical input multisets always yield
// identical assignments regardless of input order.
func Assign(spans []Span, opts ...Option) []RailSpan {
	var a assigner
	for _, opt := range opts {
		opt(&a)
	}

	items := a.dedupe(spans)

	slices.SortStableFunc(items, func(x, y item) int {
		if x.lo != y.lo {
			if x.lo < y.lo {
				return -1
			}
			return 1
		}
		if x.span.Class != y.span.Class {
			return int(x.span.Class) - int(y.span.Class)
		}
		if x.hi != y.hi {
			if x.hi < y.hi {
				return -1
			}
			return 1
		}
		if c := strings.Compare(x.span.Top, y.span.Top); c != 0 {
			return c
		}
		if c := strings.Compare(x.span.Bottom, y.span.Bottom); c != 0 {
			return c
		}
		return x.idx - y.idx
	})

	// Greedy interval rail packing: railEnds[r] is the end of the interval
	// most recently placed on rail r.
	var railEnds []float64
	out := make([]RailSpan, 0, len(items))
	for _, it := range items {
		rail := -1
		for r, end := range railEnds {
			if end <= it.lo {
				rail = r
				break
			}
		}
		if rail == -1 {
			rail = len(railEnds)
			railEnds = append(railEnds, 0)
		}
		railEnds[rail] = it.hi
		out = append(out, RailSpan{Span: it.span, Rail: rail})
	}
	return out
}

// RailCount returns one past the highest rail index in assigned, or zero
// for an empty assignment.
func RailCount(assigned []RailSpan) int {
	max := -1
	for _, rs := range assigned {
		if rs.Rail > max {
			max = rs.Rail
		}
	}
	return max + 1
}

// tierInterval maps a span's endpoints into tiering coordinates.
func (a assigner) tierInterval(s Span) (lo, hi float64) {
	x, y := s.A, s.B
	if a.useOrigin {
		x = math.Abs(x - a.origin)
		y = math.Abs(y - a.origin)
	}
	return math.Min(x, y), math.Max(x, y)
}

// dedupeKey identifies coincident spans: order-normalized endpoints rounded
// to DedupeTolerance plus the exact label pair.
//
// Rounding buckets the axis into fixed DedupeTolerance-wide cells rather
// than comparing pairwise within ±DedupeTolerance, so two endpoints closer
// than the tolerance can still land in adjacent cells and stay distinct.
// That keeps dedupe a single map pass and, unlike pairwise comparison,
// keeps coincidence transitive; the tolerance is three orders of magnitude
// below drawing resolution, so a missed collapse costs at worst one extra
// rail.
type dedupeKey struct {
	lo, hi      int64
	top, bottom string
}

func (a assigner) dedupe(spans []Span) []item {
	keep := make(map[dedupeKey]int, len(spans)) // key -> index into items
	items := make([]item, 0, len(spans))

	for i, s := range spans {
		lo, hi := a.tierInterval(s)
		key := dedupeKey{
			lo:     int64(math.Round(s.Lo() / DedupeTolerance)),
			hi:     int64(math.Round(s.Hi() / DedupeTolerance)),
			top:    s.Top,
			bottom: s.Bottom,
		}
		if j, ok := keep[key]; ok {
			// Keep the tiering-preferred class; earlier input wins ties.
			if s.Class < items[j].span.Class {
				items[j] = item{span: s, lo: lo, hi: hi, idx: items[j].idx}
			}
			continue
		}
		keep[key] = len(items)
		items = append(items, item{span: s, lo: lo, hi: hi, idx: i})
	}
	return items
}
