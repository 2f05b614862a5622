// Package pkg provides the core libraries for Shaftdraw shaft drawings.
//
// # Overview
//
// Shaftdraw turns declarative shaft documents into dimensioned mechanical
// drawings. The pkg directory is organized into four main areas:
//
//  1. [shaft] / [dimension] - Domain logic (component resolution, measurement
//     windows, dimension tiering)
//  2. [drawing] - Page layout and render sinks (SVG, PDF, PNG)
//  3. [document] / [units] - Authored input and display formatting
//  4. [pipeline] - Orchestration (load → resolve → layout → render)
//
// # Architecture
//
// The typical data flow through Shaftdraw:
//
//	TOML shaft document
//	         ↓
//	    [document] package (parse + validate)
//	         ↓
//	    [shaft] package (resolve components, measurement window)
//	         ↓
//	    [dimension] package (build + tier dimension spans)
//	         ↓
//	    [drawing] package (scale, page layout, sinks)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
// Resolve a shaft and render a drawing:
//
//	import (
//	    "github.com/shaftworks/shaftdraw/pkg/dimension"
//	    "github.com/shaftworks/shaftdraw/pkg/document"
//	    "github.com/shaftworks/shaftdraw/pkg/drawing"
//	    "github.com/shaftworks/shaftdraw/pkg/drawing/sink"
//	    "github.com/shaftworks/shaftdraw/pkg/shaft"
//	)
//
//	// 1. Load the document
//	doc, _ := document.Load("propeller.toml")
//
//	// 2. Resolve the authored segments into gap-free components
//	resolved, _ := shaft.Resolve(doc.OverallLength, doc.Segments())
//
//	// 3. Build and tier the dimension set
//	w, _ := shaft.ComputeWindow(doc.OverallLength, doc.Segments())
//	spans := dimension.Build(resolved, w, dimension.BuildOptions{Diameters: true})
//	rails := dimension.Assign(spans)
//
//	// 4. Lay out the page and render to SVG
//	l, _ := drawing.Build(resolved, doc.OverallLength, rails, drawing.PageA4, doc.Title)
//	svg, _ := sink.RenderSVG(l)
//
// Most callers use the [pipeline] package instead, which runs these stages
// with caching and shared defaults.
package pkg
