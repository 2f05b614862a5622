// Package drawing turns resolved shaft geometry into a render-ready page
// layout at exact physical scale.
//
// ComputeScale solves the two-axis fit: one linear factor maps canonical
// millimeters to page millimeters such that both the shaft's axial span and
// its largest diameter fit the target rectangle without distorting aspect
// ratio. Build then places the component profile, centerline, and tiered
// dimension rails onto a page; the sink subpackage renders the result to
// SVG, PDF, or PNG without recomputing any geometry.
package drawing
