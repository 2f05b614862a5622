package shaft

import (
	"math"

	"github.com/shaftworks/shaftdraw/pkg/errors"
)

// EndAdjacencyEpsilon is the tolerance, in millimeters, within which a
// thread counts as anchored at a shaft end for OAL-exclusion purposes.
const EndAdjacencyEpsilon = 0.5

// Window is the measurement frame for official overall-length dimensioning.
//
// When end threads are excluded from the OAL figure the measurement origin
// moves inboard of the physical AFT end (and/or the measurement end moves
// inboard of the FWD end), so official dimensions are expressed as distances
// from Start rather than from physical zero.
type Window struct {
	Start float64 `json:"start" bson:"start"`
	End   float64 `json:"end" bson:"end"`
}

// Length returns the measurement-space overall length, never negative.
func (w Window) Length() float64 {
	if w.End < w.Start {
		return 0
	}
	return w.End - w.Start
}

// ToMeasure re-expresses a physical position as a distance from the
// measurement origin.
func (w Window) ToMeasure(physical float64) float64 {
	return physical - w.Start
}

// ComputeWindow derives the measurement window from the authored threads.
//
// A thread shifts the window only when it is both marked ExcludeFromOAL and
// anchored at an end: its physical start within EndAdjacencyEpsilon of zero
// (AFT) or its physical end within the epsilon of overallLength (FWD).
// Interior excluded threads and non-excluded threads have no effect. The
// window start is the largest end of the qualifying AFT threads, the window
// end the smallest start of the qualifying FWD threads; both are clamped to
// [0, overallLength], and a start past the end collapses to a zero-length
// window rather than a negative one.
//
// Non-thread segments in threads are ignored, so callers may pass the full
// authored list.
func ComputeWindow(overallLength float64, threads []Segment) (Window, error) {
	if err := errors.ValidateFinite("overall_length", overallLength); err != nil {
		return Window{}, err
	}
	if overallLength < 0 {
		return Window{}, errors.New(errors.ErrCodeInvalidGeometry, "overall_length must be >= 0, got %v", overallLength)
	}

	w := Window{Start: 0, End: overallLength}

	for _, t := range threads {
		if t.Kind != KindThread || !t.ExcludeFromOAL {
			continue
		}
		if err := validateSegment(t); err != nil {
			return Window{}, err
		}
		if math.Abs(t.Start) <= EndAdjacencyEpsilon && t.End() > w.Start {
			w.Start = t.End()
		}
		if math.Abs(overallLength-t.End()) <= EndAdjacencyEpsilon && t.Start < w.End {
			w.End = t.Start
		}
	}

	// Clamp to the physical shaft, then collapse rather than go negative
	// when the excluded lengths exceed the shaft.
	if w.Start < 0 {
		w.Start = 0
	}
	if w.Start > overallLength {
		w.Start = overallLength
	}
	if w.End < 0 {
		w.End = 0
	}
	if w.End > overallLength {
		w.End = overallLength
	}
	if w.End < w.Start {
		w.End = w.Start
	}

	return w, nil
}
