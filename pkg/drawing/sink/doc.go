// Package sink renders a drawing.Layout to SVG, PDF, or PNG.
//
// All sinks share one canvas scene graph built straight from the layout's
// page-millimeter coordinates, so every output format is at exact physical
// scale: a 297 mm layout produces a 297 mm PDF page. PNG output maps
// millimeters to pixels at a configurable density instead.
package sink
