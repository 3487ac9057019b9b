// Package pkg provides the core libraries for Canvasort canvas compilation.
//
// # Overview
//
// Canvasort recompiles spatial canvas documents — freeform boards of
// positioned nodes and edges — into a deterministic, diff-stable order.
// The pkg directory is organized into five areas:
//
//  1. [canvas] - Document model (nodes, edges, JSON round-tripping)
//  2. [compile] - The compiler (validation, hierarchy, flow, ordering)
//  3. [io] - Reading and writing canvas files
//  4. [ingest] - Synthesizing canvases from plain JSON/JSONL records
//  5. [viz] - Debug rendering of the derived structure (DOT/SVG)
//
// # Architecture
//
// The typical data flow through Canvasort:
//
//	Canvas JSON file
//	         ↓
//	    [io] package (decode, preserve unknown fields)
//	         ↓
//	    [compile] package (validate → hierarchy → flow → sort → flatten)
//	         ↓
//	    [io] package (canonical serialization)
//	         ↓
//	    Diff-stable canvas file
//
// # Quick Start
//
// Compile a canvas document into its canonical order:
//
//	import (
//	    "github.com/matzehuels/canvasort/pkg/compile"
//	    "github.com/matzehuels/canvasort/pkg/io"
//	)
//
//	doc, _ := io.ImportCanvas("board.canvas")
//	out, _ := compile.Compile(doc, compile.DefaultSettings())
//	_ = io.ExportCanvas(out, "board.canvas")
//
// # Main Packages
//
// [canvas] - The permissive document model. Identifiers may be strings,
// numbers, or booleans; unknown JSON keys round-trip verbatim.
//
// [compile] - The deterministic compiler. Pure function of document plus
// settings: same input, same output, regardless of input order.
//
// [io] - Owns the serialization contract: 2-space indented JSON with a
// trailing newline and canonical key order.
//
// [ingest] - The import direction: lays plain records out on a grid,
// optionally clustered into groups and linked by reference edges.
//
// [viz] - Renders the compiler's inferred containment clusters and flow
// depths as Graphviz DOT or SVG, for debugging.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/compile/...  # Compiler only
//
// [canvas]: https://pkg.go.dev/github.com/matzehuels/canvasort/pkg/canvas
// [compile]: https://pkg.go.dev/github.com/matzehuels/canvasort/pkg/compile
// [io]: https://pkg.go.dev/github.com/matzehuels/canvasort/pkg/io
// [ingest]: https://pkg.go.dev/github.com/matzehuels/canvasort/pkg/ingest
// [viz]: https://pkg.go.dev/github.com/matzehuels/canvasort/pkg/viz
package pkg
