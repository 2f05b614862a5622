// Package dimension builds and tiers the axial dimension annotations of a
// shaft drawing.
//
// A dimension span is a pair of positions plus labels; many of them overlap
// along the shaft axis, so they are stacked into parallel horizontal rails
// above the drawn geometry. Assign packs an arbitrary set of spans into the
// fewest rails a greedy interval scheduler finds, deterministically: the
// same input multiset always produces the same rail assignment, which keeps
// redraws visually stable while the shaft is being edited.
//
// Build constructs the standard span set (per-component lengths, datum
// chains, the overall length) from a resolved component list and the
// measurement window; callers with custom annotations can hand Assign any
// spans they like.
package dimension
