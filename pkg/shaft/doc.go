// Package shaft models a propeller shaft as a sequence of axial components
// and derives render-ready geometry from it.
//
// A shaft is authored as a list of segments (bodies, tapers, threaded
// sections, liners), each positioned by its offset from the AFT end in
// millimeters. The package provides two pure derivations on top of that
// authored list:
//
//   - Resolve fills the gaps between authored segments with auto bodies,
//     producing a complete, deterministically ordered component list that
//     covers the full shaft.
//   - ComputeWindow derives the measurement frame used for official
//     overall-length dimensioning, which can be shorter than the physical
//     span when end threads are excluded from the OAL figure.
//
// Both derivations recompute their full output from their full input on
// every call and never mutate their arguments, so they are safe to call
// concurrently for different shaft snapshots.
package shaft
